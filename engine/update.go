package engine

import "github.com/lixenwraith/mapcore/component"

// UpdateCharacter advances one character by a single logical tick,
// implementing the four-step `update()` sequence of spec.md 4.1 verbatim:
// phase select, pattern cycling, wait consumption, idle dispatch. It is
// the shared dispatch path: normal per-tick calls from Map.Tick, and the
// move-route interpreter's begin_jump scan-ahead, both funnel through the
// movement/self-move/route primitives this function sequences.
func UpdateCharacter(m *Map, c *component.Character) {
	switch {
	case c.Jumping:
		updateJump(m, c)
		if c.IsSpinning() {
			c.AnimeCount++
		}
	case c.AnimationType.IsContinuous():
		updateMove(c)
		updateStop(c)
	case c.IsMoving():
		updateMove(c)
	default:
		updateStop(c)
	}

	advancePattern(c)

	if c.WaitCount > 0 {
		c.WaitCount--
		return
	}

	if c.StopCount < c.MaxStopCount {
		return
	}

	if c.MoveRouteOverwritten {
		StepMoveRoute(m, c)
		return
	}
	if m.Message().Waiting() || m.Interpreter().IsRunning() {
		return
	}
	if c.MoveType == component.MoveCustom {
		StepMoveRoute(m, c)
		return
	}
	SelfMove(m, c)
}

// updateMove is the locomotion advance (spec.md 4.1): remaining_step
// counts down by SteppingSpeed, clamped at zero, and anime_count
// accumulates while the character is walk-animated.
func updateMove(c *component.Character) {
	c.RemainingStep -= SteppingSpeed(c.MoveSpeed)
	if c.RemainingStep < 0 {
		c.RemainingStep = 0
	}
	if c.AnimationType != component.AnimFixedGraphic && c.WalkAnimation {
		c.AnimeCount++
	}
}

// updateStop is the stop advance (spec.md 4.1): anime_count only
// accumulates while the pattern hasn't yet settled back to its rest frame
// and the animation type isn't continuous; stop_count always advances,
// driving the idle-dispatch threshold toward max_stop_count.
func updateStop(c *component.Character) {
	if c.Pattern != c.OriginalPattern && !c.AnimationType.IsContinuous() {
		c.AnimeCount++
	}
	c.StopCount++
}

// updateJump is the jump advance (spec.md 4.1): remaining_step counts
// down by the jump speed table; the destination tile was already
// committed by BeginJump, so reaching zero only needs to clear the
// jumping flag.
func updateJump(m *Map, c *component.Character) {
	c.RemainingStep -= JumpSpeed(c.MoveSpeed)
	if c.RemainingStep <= 0 {
		c.RemainingStep = 0
		EndJump(m, c)
	}
}

// advancePattern runs the animation-pattern sub-machine's pattern-cycling
// step (spec.md 4.1 step 2): anime_count accumulates every tick via
// updateMove/updateStop/the spin case above, and once it reaches the
// stepping-speed threshold for the character's current activity, the
// pattern (or, for spin, sprite_direction) advances one notch.
func advancePattern(c *component.Character) {
	moving := !c.Jumping && c.IsMoving()
	threshold := PatternSteppingSpeed(c.MoveSpeed, c.IsSpinning(), moving)
	if threshold <= 0 || c.AnimeCount < threshold {
		return
	}
	c.AnimeCount = 0

	switch {
	case c.IsSpinning():
		c.SpriteDirection = c.SpriteDirection.TurnRight90()
	case !c.AnimationType.IsContinuous() && c.IsStopping():
		c.Pattern = c.OriginalPattern
		if c.LastPattern == component.PatternLeft {
			c.LastPattern = component.PatternRight
		} else {
			c.LastPattern = component.PatternLeft
		}
	default:
		if c.LastPattern == component.PatternLeft {
			if c.Pattern == component.PatternRight {
				c.Pattern = component.PatternMiddle
				c.LastPattern = component.PatternRight
			} else {
				c.Pattern = component.PatternRight
			}
		} else {
			if c.Pattern == component.PatternLeft {
				c.Pattern = component.PatternMiddle
				c.LastPattern = component.PatternLeft
			} else {
				c.Pattern = component.PatternLeft
			}
		}
	}
}
