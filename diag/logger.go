// Package diag is the simulation's ambient observability layer: a
// structured logger and a metrics registry that a driver (cmd/mapsim)
// wires up, and that collaborator packages such as audio log through
// rather than importing zap directly. The engine package itself does not
// log or record metrics.
package diag

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps a zap.SugaredLogger behind the small key/value-pair
// surface this codebase actually calls, so call sites read
// log.Warn("message", "key", value, ...) instead of threading zap.Field
// construction through every package.
type Logger struct {
	sugar *zap.SugaredLogger
}

// Config selects the logger's output: Path empty means no file sink; a
// non-empty Path writes logs rotated through lumberjack the way the
// teacher's own cmd wiring does for its session logs. Console adds a
// stderr sink.
type Config struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Level      zapcore.Level
	Console    bool
}

// DefaultConfig returns sane defaults for a local cmd/mapsim run.
func DefaultConfig() Config {
	return Config{
		Path:       "mapsim.log",
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Level:      zapcore.InfoLevel,
		Console:    true,
	}
}

// New builds a Logger from cfg. File output always goes through
// lumberjack so long-running simulation drivers don't need external log
// rotation; console output, if enabled, is human-readable while the file
// sink stays JSON for later ingestion.
func New(cfg Config) *Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var cores []zapcore.Core

	if cfg.Path != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.AddSync(rotator),
			cfg.Level,
		)
		cores = append(cores, fileCore)
	}

	if cfg.Console {
		consoleCfg := encoderCfg
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleCore := zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleCfg),
			zapcore.Lock(zapcore.AddSync(os.Stderr)),
			cfg.Level,
		)
		cores = append(cores, consoleCore)
	}

	core := zapcore.NewTee(cores...)
	logger := zap.New(core)
	return &Logger{sugar: logger.Sugar()}
}

// NewNop returns a Logger that discards everything, for tests.
func NewNop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

func (l *Logger) Debug(msg string, kv ...any) { l.sugar.Debugw(msg, kv...) }
func (l *Logger) Info(msg string, kv ...any)  { l.sugar.Infow(msg, kv...) }
func (l *Logger) Warn(msg string, kv ...any)  { l.sugar.Warnw(msg, kv...) }
func (l *Logger) Error(msg string, kv ...any) { l.sugar.Errorw(msg, kv...) }

// Sync flushes any buffered log entries; call before process exit.
func (l *Logger) Sync() error { return l.sugar.Sync() }
