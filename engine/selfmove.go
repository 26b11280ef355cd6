package engine

import (
	"github.com/lixenwraith/mapcore/component"
	"github.com/lixenwraith/mapcore/parameter"
)

// SelfMove dispatches to one of the seven self-move policies (spec.md 4.2)
// once a character's stop_count has elapsed and no forced move route is
// active. MoveCustom is handled by the caller (update.go) since it drives
// the move-route interpreter rather than a single-step policy here.
func SelfMove(m *Map, c *component.Character) {
	switch c.MoveType {
	case component.MoveStationary:
		// nothing to do; stop_count will simply reset and recount.
	case component.MoveRandomPolicy:
		selfMoveRandom(m, c)
	case component.MoveVertical:
		selfMoveCycle(m, c, component.Down, component.Up)
	case component.MoveHorizontal:
		selfMoveCycle(m, c, component.Right, component.Left)
	case component.MoveToward:
		selfMoveChase(m, c, true)
	case component.MoveAway:
		selfMoveChase(m, c, false)
	}
}


// wait adds one move-route `wait` command's worth of delay to a
// self-move policy's failure path (spec.md 4.2's cycle policies call
// `wait()` with no explicit tick count, so this reuses the same constant
// the `wait` move command itself adds per invocation).
func wait(c *component.Character) {
	c.WaitCount += parameter.WaitTicks
}

// selfMoveRandom reproduces the original engine's six-sided die (spec.md
// 4.2): face 0 just resets stop_count (a one-tick stall, always reported
// as a success since nothing was attempted), faces 1-2 step in a random
// cardinal direction, and the remaining three faces move forward in
// whatever direction the character already faces. The returned bool
// reports whether an attempted step actually succeeded, so the move-route
// interpreter's move_random command can tell a real failure from a stall.
func selfMoveRandom(m *Map, c *component.Character) bool {
	switch m.RNG().Intn(parameter.SelfMoveDieSize) {
	case 0:
		c.StopCount = 0
		return true
	case 1, 2:
		return Move(m, c, cardinalFromRoll(m.RNG().Intn(4)))
	default:
		return Move(m, c, c.Direction)
	}
}

// selfMoveCycle implements both the up/down and left/right cycling
// policies: cycle_stat selects which of the two legs to attempt, and a
// failed move waits, resets stop_count, and flips cycle_stat so the next
// attempt tries the opposite leg instead of shoving repeatedly into an
// obstacle (spec.md 4.2). The original engine only flipped cycle_stat
// unconditionally for the vertical policy and left the horizontal one a
// no-op inside its own failure branch; spec.md 9 calls that a bug and
// directs both policies to flip unconditionally, which this does by
// construction.
func selfMoveCycle(m *Map, c *component.Character, increasing, decreasing component.Direction) {
	d := increasing
	if c.CycleStat {
		d = decreasing
	}
	if !Move(m, c, d) {
		wait(c)
		c.StopCount = 0
		c.CycleStat = !c.CycleStat
	}
}

// selfMoveChase drives the toward/away-from-hero policies (spec.md 4.2).
// Beyond a Manhattan distance of HeroChaseGiveUpDistance it gives up and
// falls back to a random step; otherwise a second die roll either takes a
// random step, steps forward, or runs the move-toward axis-priority
// algorithm. Returns whatever the branch it took actually returns.
func selfMoveChase(m *Map, c *component.Character, toward bool) bool {
	hero := m.Hero()
	sx := c.X - hero.X
	sy := c.Y - hero.Y
	if abs(sx)+abs(sy) >= parameter.HeroChaseGiveUpDistance {
		return selfMoveRandom(m, c)
	}

	switch m.RNG().Intn(parameter.SelfMoveDieSize) {
	case 0:
		return selfMoveRandom(m, c)
	case 1:
		return Move(m, c, c.Direction)
	default:
		return moveTowardAxis(m, c, sx, sy, toward)
	}
}

// moveTowardAxis is the move-toward algorithm (spec.md 4.2): the axis with
// the larger absolute delta is tried first; on failure, if the other axis
// is non-zero, it is tried as a fallback. Directions are negated for the
// away-from-hero policy. Reports the outcome of whichever step actually
// decided the result: the fallback axis's result if the primary axis
// failed and a fallback was attempted, the primary axis's success
// otherwise.
func moveTowardAxis(m *Map, c *component.Character, sx, sy int, toward bool) bool {
	horizontal := component.Right
	if sx > 0 {
		horizontal = component.Left
	}
	vertical := component.Down
	if sy > 0 {
		vertical = component.Up
	}
	if !toward {
		horizontal = horizontal.Opposite()
		vertical = vertical.Opposite()
	}

	if abs(sx) > abs(sy) {
		if Move(m, c, horizontal) {
			return true
		}
		if sy != 0 {
			return Move(m, c, vertical)
		}
		return false
	}
	if Move(m, c, vertical) {
		return true
	}
	if sx != 0 {
		return Move(m, c, horizontal)
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
