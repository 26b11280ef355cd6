// Command mapsim drives a Map through a fixed number of ticks from a YAML
// scenario file, recording per-tick metrics and JSON snapshots of every
// character and logging each character's final snapshot through the
// structured logger — a headless stand-in for the
// original engine's render loop, since this core has no graphics surface
// of its own (spec.md 1, Non-goals).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lixenwraith/mapcore/audio"
	"github.com/lixenwraith/mapcore/component"
	"github.com/lixenwraith/mapcore/config"
	"github.com/lixenwraith/mapcore/diag"
	"github.com/lixenwraith/mapcore/engine"
	"github.com/lixenwraith/mapcore/snapshot"
)

func main() {
	fixturePath := flag.String("fixture", "", "path to a YAML scenario fixture")
	ticks := flag.Int("ticks", 300, "number of logical ticks to simulate")
	soundDir := flag.String("sound-dir", ".", "base directory for sound effect files")
	logPath := flag.String("log", "mapsim.log", "log file path (rotated via lumberjack)")
	flag.Parse()

	logCfg := diag.DefaultConfig()
	logCfg.Path = *logPath
	log := diag.New(logCfg)
	defer log.Sync()

	defer func() {
		if r := recover(); r != nil {
			log.HandleCrash(r)
		}
	}()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "mapsim: -fixture is required")
		os.Exit(2)
	}

	fixture, err := config.LoadFixture(*fixturePath)
	if err != nil {
		log.Error("fixture load failed", "error", err.Error())
		os.Exit(1)
	}

	player := audio.NewPlayer(*soundDir, log)
	if err := player.Open(); err != nil {
		log.Warn("audio init failed, continuing muted", "error", err.Error())
	}
	defer player.Close()

	m := buildMap(fixture, player, log)
	metrics := diag.NewRegistry()
	traces := make(map[component.CharacterID]*snapshot.Trace)

	for tick := 0; tick < *ticks; tick++ {
		m.Tick()
		for _, id := range append([]component.CharacterID{engine.HeroID}, fixtureIDs(fixture)...) {
			c, ok := m.Character(id)
			if !ok {
				continue
			}
			metrics.RecordTick(fmt.Sprintf("char_%d", id), c.MoveFailed)
			trace, ok := traces[id]
			if !ok {
				trace = &snapshot.Trace{}
				traces[id] = trace
			}
			trace.Record(c)
		}
	}

	for id, trace := range traces {
		if last, ok := trace.At(trace.Len() - 1); ok {
			log.Info("final character state", "id", id, "snapshot", last)
		}
	}
}

func fixtureIDs(f config.Fixture) []component.CharacterID {
	ids := make([]component.CharacterID, 0, len(f.Characters))
	for _, spec := range f.Characters {
		ids = append(ids, component.CharacterID(spec.ID))
	}
	return ids
}

func buildMap(f config.Fixture, player *audio.Player, log *diag.Logger) *engine.Map {
	terrain := engine.NewTerrain(f.Width, f.Height)
	for _, edge := range f.BlockedEdges {
		terrain.SetEdgeBlocked(edge.X, edge.Y, config.Direction(edge.Direction), true)
	}

	m := engine.NewMap(engine.MapConfig{
		Width:          f.Width,
		Height:         f.Height,
		LoopHorizontal: f.LoopHorizontal,
		LoopVertical:   f.LoopVertical,
		Terrain:        terrain,
		Audio:          player,
		Seed:           f.Seed,
	})

	for _, spec := range f.Characters {
		c := component.NewCharacter(component.CharacterID(spec.ID), config.Role(spec.Role), spec.X, spec.Y)
		c.Direction = config.Direction(spec.Direction)
		c.SpriteDirection = c.Direction
		c.MoveType = config.MoveType(spec.MoveType)
		if spec.MoveSpeed > 0 {
			c.MoveSpeed = spec.MoveSpeed
		}
		if spec.MoveFrequency > 0 {
			c.MoveFrequency = spec.MoveFrequency
		}
		c.SpriteName = spec.SpriteName
		c.SpriteIndex = spec.SpriteIndex
		engine.RecomputeMaxStopCount(c)

		if len(spec.Route) > 0 {
			route, err := config.BuildRoute(spec.Route, spec.RouteRepeat, spec.RouteSkip)
			if err != nil {
				log.Warn("fixture route rejected", "character_id", spec.ID, "error", err.Error())
			} else {
				c.OriginalMoveRoute = route
			}
		}

		if c.ID == engine.HeroID {
			*m.Hero() = *c
			continue
		}
		m.AddCharacter(c)
	}

	return m
}
