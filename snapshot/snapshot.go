// Package snapshot builds debug-inspectable JSON snapshots of character
// state without round-tripping through encoding/json's struct tags and
// reflection — sjson builds the document field by field, and gjson reads
// individual fields back out for test assertions, the same "poke at a path" style the rest of this domain's
// ecosystem favors over full marshal/unmarshal.
package snapshot

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/lixenwraith/mapcore/component"
)

// Character renders c's externally interesting fields into a JSON
// document. Internal bookkeeping (AnimeCount, StopCount, MaxStopCount,
// WaitCount) is omitted; of these only MaxStopCount can be recomputed
// from the recorded MoveFrequency.
func Character(c *component.Character) string {
	doc := "{}"
	set := func(path string, value any) {
		var err error
		doc, err = sjson.Set(doc, path, value)
		if err != nil {
			// sjson only errors on an unparsable existing document, which
			// doc never becomes since every value here is JSON-safe.
			panic(err)
		}
	}

	set("id", c.ID)
	set("role", int(c.Role))
	set("x", c.X)
	set("y", c.Y)
	set("direction", c.Direction.String())
	set("sprite_direction", c.SpriteDirection.String())
	set("pattern", int(c.Pattern))
	set("move_type", int(c.MoveType))
	set("move_speed", c.MoveSpeed)
	set("move_frequency", c.MoveFrequency)
	set("remaining_step", c.RemainingStep)
	set("jumping", c.Jumping)
	set("through", c.Through)
	set("opacity", c.Opacity)
	set("visible", c.Visible)
	set("sprite_name", c.SpriteName)
	set("sprite_index", c.SpriteIndex)
	set("move_route_overwritten", c.MoveRouteOverwritten)
	set("move_route_index", c.MoveRouteIndex)

	return doc
}

// Field reads a single dotted path back out of a snapshot document,
// returning the zero gjson.Result if the path is absent. Tests use this
// instead of unmarshaling the whole document into a struct.
func Field(doc, path string) gjson.Result {
	return gjson.Get(doc, path)
}

// Trace accumulates one snapshot per tick for a character, letting a
// caller read back any recorded tick's state without re-deriving it from
// the live Character. cmd/mapsim logs only each trace's last entry.
type Trace struct {
	entries []string
}

// Record appends the current state of c as the next tick's entry.
func (t *Trace) Record(c *component.Character) {
	t.entries = append(t.entries, Character(c))
}

// At returns the snapshot recorded for the given tick index (0-based),
// and whether that index was recorded at all.
func (t *Trace) At(tick int) (string, bool) {
	if tick < 0 || tick >= len(t.entries) {
		return "", false
	}
	return t.entries[tick], true
}

// Len returns the number of ticks recorded.
func (t *Trace) Len() int { return len(t.entries) }
