// Package config loads the engine-level tuning settings (an RPG_RT.ini
// analogue) and fixture/scenario data used to drive a Map for testing or
// the cmd/mapsim demo. The simulation engine package itself never touches
// disk; everything here is assembled by a driver before Map construction.
package config

import (
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

// Engine mirrors the handful of RPG_RT.ini keys that affect this core's
// tuning bounds rather than its missing rendering/audio-mixing settings.
type Engine struct {
	TickRate       int  `ini:"TickRate"`
	LoopHorizontal bool `ini:"LoopHorizontal"`
	LoopVertical   bool `ini:"LoopVertical"`
	RandomSeed     uint64 `ini:"RandomSeed"`
}

// DefaultEngine returns the settings a map with no ini file uses.
func DefaultEngine() Engine {
	return Engine{TickRate: 60, RandomSeed: 1}
}

// LoadEngine reads an ini-formatted engine configuration file. A missing
// [Engine] section is not an error: callers get DefaultEngine's values
// for anything the file doesn't override.
func LoadEngine(path string) (Engine, error) {
	cfg := DefaultEngine()

	file, err := ini.Load(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "config: load engine ini %q", path)
	}

	section := file.Section("Engine")
	if err := section.MapTo(&cfg); err != nil {
		return cfg, errors.Wrapf(err, "config: parse [Engine] section of %q", path)
	}
	return cfg, nil
}
