// Package audio plays the sound effects the move-route interpreter's
// play_sound_effect command triggers. It adapts the teacher's mixer/
// speaker wiring (originally driving procedural tone generators) to
// decode real SE file data instead, since this domain's sounds come
// from RPG Maker 2000/2003 asset files rather than synthesized tones.
package audio

import (
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/pkg/errors"

	"github.com/lixenwraith/mapcore/diag"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes sound effects on demand and satisfies engine.SEPlayer.
// Zero value is not usable; construct with NewPlayer.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	dir         string // base directory SE file names are resolved against
	log         *diag.Logger
}

// NewPlayer returns a Player that resolves bare SE file names against
// soundDir (RPG_RT stores SE assets in a flat "Sound" directory).
func NewPlayer(soundDir string, log *diag.Logger) *Player {
	return &Player{mixer: &beep.Mixer{}, dir: soundDir, log: log}
}

// Open initializes the speaker backend. It must be called once before the
// first Play; cmd/mapsim calls it during startup and defers Close.
func (p *Player) Open() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)); err != nil {
		return errors.Wrap(err, "audio: speaker init")
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences and clears the mixer. Safe to call on an unopened Player.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	p.mixer.Clear()
	p.initialized = false
}

// Play decodes file (resolved under the configured sound directory) and
// mixes it in at the given volume (0..100, RPG_RT's convention) and tempo
// (50..150 percent, 100 = unmodified speed), satisfying engine.SEPlayer.
// Decode or playback errors are logged, not returned, matching the
// original engine's behavior: a missing or malformed SE never halts the
// interpreter (spec.md 9).
func (p *Player) Play(file string, volume, tempo int) {
	p.mu.Lock()
	initialized := p.initialized
	p.mu.Unlock()
	if !initialized {
		return
	}

	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.dir, file)
	}

	f, err := os.Open(path)
	if err != nil {
		p.log.Warn("sound effect open failed", "file", path, "error", err.Error())
		return
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		p.log.Warn("sound effect decode failed", "file", path, "error", err.Error())
		return
	}

	var s beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, s)
	}
	if tempo > 0 && tempo != 100 {
		s = beep.ResampleRatio(4, float64(tempo)/100, s)
	}

	vol := &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   volumeToGain(volume),
		Silent:   volume <= 0,
	}

	done := make(chan struct{})
	wrapped := beep.Seq(vol, beep.Callback(func() {
		f.Close()
		close(done)
	}))

	p.mu.Lock()
	p.mixer.Add(wrapped)
	p.mu.Unlock()
}

// volumeToGain converts RPG_RT's 0..100 volume convention into the
// logarithmic gain effects.Volume expects, where 0 is a ~-5 stop cut.
func volumeToGain(volume int) float64 {
	if volume <= 0 {
		return -5
	}
	if volume >= 100 {
		return 0
	}
	return math.Log2(float64(volume) / 100)
}
