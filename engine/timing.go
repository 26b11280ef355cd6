package engine

import "github.com/lixenwraith/mapcore/component"

// SteppingSpeed returns the subpixel distance remaining_step is decremented
// by on a single locomotion tick for a given move_speed (spec.md 4.1). Each
// speed level doubles the previous one's distance, so a full
// ScreenTileWidth step takes half as many ticks per speed level.
func SteppingSpeed(moveSpeed int) int {
	return 1 << uint(1+moveSpeed)
}

// JumpSpeed is the per-tick subpixel distance a jump arc advances (spec.md
// 4.1's jump speed table). It is not a multiple of SteppingSpeed: for
// move_speed 1..6 it yields 8, 12, 16, 24, 32, 64 (at move_speed 4 the
// shift 3-move_speed is negative, so the power-of-two term is 0).
func JumpSpeed(moveSpeed int) int {
	if moveSpeed < 5 {
		return 48 / (2 + (1 << uint(3-moveSpeed)))
	}
	return 64 / (7 - moveSpeed)
}

// PatternSteppingSpeed is the "stepping speed" (pattern cadence) table:
// the number of ticks of anime_count needed before the animation-pattern
// sub-machine advances a frame. It has three cases depending on what the
// character is doing this tick, each independently move_speed-dependent
// (spec.md 4.1). All divisions are integer, matching the original engine.
func PatternSteppingSpeed(moveSpeed int, spinning, moving bool) int {
	switch {
	case spinning:
		if moveSpeed < 4 {
			return 48 / (moveSpeed + 1)
		}
		return 24 / (moveSpeed - 1)
	case moving:
		if moveSpeed < 4 {
			return 60 / (moveSpeed + 4)
		}
		return 30 / (moveSpeed + 1)
	default:
		if moveSpeed < 2 {
			return 16
		}
		return 60 / (moveSpeed + 3)
	}
}

// MaxStopCount returns the number of idle ticks a character waits between
// self-move steps once remaining_step has reached zero (spec.md 4.1, 4.4).
// It depends only on move_frequency; frequency 8 (the maximum) never
// stops, matching the "never stands still" setting RPG Maker exposes to
// map authors.
func MaxStopCount(moveFrequency int) int {
	if moveFrequency > 7 {
		return 0
	}
	return 1 << uint(9-moveFrequency)
}

// RecomputeMaxStopCount refreshes c.MaxStopCount from its current
// frequency, the way the original engine does whenever a move command or
// a completed move/jump changes the tuning value mid-route.
func RecomputeMaxStopCount(c *component.Character) {
	c.MaxStopCount = MaxStopCount(c.MoveFrequency)
}
