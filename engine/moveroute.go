package engine

import (
	"github.com/lixenwraith/mapcore/component"
	"github.com/lixenwraith/mapcore/parameter"
	"github.com/lixenwraith/mapcore/vmath"
)

// ForceMoveRoute installs route (driven at frequency) as the overlay move
// route, leaving the character's original route and its index untouched in
// OriginalMoveRoute/OriginalMoveRouteIndex (ActiveRoute returns to them once
// the overlay ends) and saving its frequency so CancelMoveRoute can restore
// it, and enters the character into the map's pending-move registry for
// the duration of the overlay. Clearing
// wait_count and max_stop_count makes the forced route's first command
// fire on this same tick's idle-dispatch window rather than waiting for
// the next one (spec.md 4.3).
func ForceMoveRoute(m *Map, c *component.Character, route component.MoveRoute, frequency int) {
	if !c.MoveRouteOverwritten {
		c.OriginalMoveFrequency = c.MoveFrequency
	}
	c.MoveRoute = route
	c.MoveRouteIndex = 0
	c.MoveFrequency = frequency
	c.MoveRouteOverwritten = true
	c.MoveRouteRepeated = false
	c.WaitCount = 0
	c.MaxStopCount = 0
	m.MarkPending(c.ID)
}

// CancelMoveRoute removes the overlay route, restores whatever route and
// frequency the character had before it was forced, and clears it from
// the pending-move registry (spec.md 4.3, 9).
func CancelMoveRoute(m *Map, c *component.Character) {
	if !c.MoveRouteOverwritten {
		return
	}
	m.ClearPending(c.ID)
	c.MoveRoute = c.OriginalMoveRoute
	c.MoveRouteIndex = c.OriginalMoveRouteIndex
	c.MoveFrequency = c.OriginalMoveFrequency
	c.MoveRouteOverwritten = false
}

// StepMoveRoute runs the custom move-route policy for one tick (spec.md
// 4.3's "Execution step"): it advances active_index through the active
// route's commands, in a single tick, for as long as the character keeps
// stopping and no wait has been set — which in practice means it chains
// consecutive non-movement commands (facing, tuning, switches) together
// within one tick but stops at the first command that either moves the
// character, fails, or sets a wait. A failing command breaks the loop
// immediately; if the route is skippable the index still advances past
// it first, so the next command after it runs on a later tick rather
// than the same one.
func StepMoveRoute(m *Map, c *component.Character) bool {
	for {
		route := c.ActiveRoute()
		index := c.ActiveRouteIndex()
		if route == nil || len(route.Commands) == 0 {
			return false
		}
		if *index >= len(route.Commands) {
			if route.Repeat {
				*index = 0
				c.MoveRouteRepeated = true
				continue
			}
			if c.MoveRouteOverwritten {
				CancelMoveRoute(m, c)
				c.StopCount = 0
			}
			return false
		}

		cmd := route.Commands[*index]
		ok := executeMoveCommand(m, c, route, index, cmd)
		if !ok {
			if route.Skippable {
				*index++
			}
			break
		}
		*index++

		if c.IsMoving() || c.WaitCount > 0 || c.StopCount < c.MaxStopCount {
			break
		}
	}
	return true
}

// executeMoveCommand runs one command and reports whether it succeeded.
// Non-movement commands always succeed; their only failure mode would be
// malformed data, which is rejected at load time (spec.md 9).
func executeMoveCommand(m *Map, c *component.Character, route *component.MoveRoute, index *int, cmd component.MoveCommand) bool {
	if d, isMove := component.DirectionFor(cmd.ID); isMove {
		return Move(m, c, d)
	}
	if d, isFace := component.FaceDirectionFor(cmd.ID); isFace {
		Face(c, d)
		return true
	}

	switch cmd.ID {
	case component.CmdMoveRandom:
		return selfMoveRandom(m, c)
	case component.CmdMoveTowardsHero:
		return selfMoveChase(m, c, true)
	case component.CmdMoveAwayFromHero:
		return selfMoveChase(m, c, false)
	case component.CmdMoveForward:
		return Move(m, c, c.Direction)

	case component.CmdTurn90Right:
		Face(c, c.Direction.TurnRight90())
	case component.CmdTurn90Left:
		Face(c, c.Direction.TurnLeft90())
	case component.CmdTurn180:
		Face(c, c.Direction.Turn180())
	case component.CmdTurn90Random:
		Face(c, randomTurn(m, c.Direction))
	case component.CmdFaceRandomDirection:
		Face(c, cardinalFromRoll(m.RNG().Intn(4)))
	case component.CmdFaceHero:
		faceHero(m, c, true)
	case component.CmdFaceAwayFromHero:
		faceHero(m, c, false)

	case component.CmdWait:
		c.WaitCount += parameter.WaitTicks

	case component.CmdBeginJump:
		return executeBeginJumpScan(m, c, route, index)
	case component.CmdEndJump:
		// reached without a matching begin_jump scan in progress; no-op.

	case component.CmdLockFacing:
		c.FacingLocked = true
	case component.CmdUnlockFacing:
		c.FacingLocked = false

	case component.CmdIncreaseMovementSpeed:
		c.MoveSpeed = vmath.Clamp(c.MoveSpeed+1, parameter.MinMoveSpeed, parameter.MaxMoveSpeed)
		RecomputeMaxStopCount(c)
	case component.CmdDecreaseMovementSpeed:
		c.MoveSpeed = vmath.Clamp(c.MoveSpeed-1, parameter.MinMoveSpeed, parameter.MaxMoveSpeed)
		RecomputeMaxStopCount(c)
	case component.CmdIncreaseMovementFrequency:
		c.MoveFrequency = vmath.Clamp(c.MoveFrequency+1, parameter.MinMoveFrequency, parameter.MaxMoveFrequency)
		RecomputeMaxStopCount(c)
	case component.CmdDecreaseMovementFrequency:
		c.MoveFrequency = vmath.Clamp(c.MoveFrequency-1, parameter.MinMoveFrequency, parameter.MaxMoveFrequency)
		RecomputeMaxStopCount(c)

	case component.CmdSwitchOn:
		m.Switches().Set(cmd.ParameterA, true)
		m.SetNeedRefresh(true)
	case component.CmdSwitchOff:
		m.Switches().Set(cmd.ParameterA, false)
		m.SetNeedRefresh(true)

	case component.CmdChangeGraphic:
		c.SpriteName = cmd.ParameterString
		c.SpriteIndex = cmd.ParameterA
		c.Pattern = component.PatternMiddle

	case component.CmdPlaySoundEffect:
		if cmd.ParameterString != "(OFF)" && cmd.ParameterString != "(Brak)" {
			m.Audio().Play(cmd.ParameterString, cmd.ParameterA, cmd.ParameterB)
		}

	case component.CmdWalkEverywhereOn:
		c.Through = true
	case component.CmdWalkEverywhereOff:
		c.Through = false

	case component.CmdStopAnimation:
		c.WalkAnimation = false
	case component.CmdStartAnimation:
		c.WalkAnimation = true

	case component.CmdIncreaseTransparency:
		c.SetOpacity(vmath.Clamp(c.Opacity-parameter.TranspStep, parameter.MinTranspVia, parameter.MaxOpacity))
	case component.CmdDecreaseTransparency:
		c.SetOpacity(vmath.Clamp(c.Opacity+parameter.TranspStep, parameter.MinOpacity, parameter.MaxOpacity))
	}
	return true
}

// executeBeginJumpScan implements the original engine's begin_jump
// behavior: it scans forward through the route executing every
// intervening command through the same dispatch path, but diverts their
// movement deltas into an accumulator instead of letting them move the
// character, until it reaches a matching end_jump. If none is found
// before the route runs out, the scan abandons the jump and leaves the
// route index where the scan stopped, one past the route's last command,
// rather than wrapping or erroring (spec.md 11, grounded on
// original_source/src/game_character.cpp).
func executeBeginJumpScan(m *Map, c *component.Character, route *component.MoveRoute, index *int) bool {
	c.JumpX, c.JumpY = c.X, c.Y
	c.JumpPlusX, c.JumpPlusY = 0, 0
	c.Jumping = true

	i := *index + 1
	for ; i < len(route.Commands); i++ {
		cmd := route.Commands[i]
		if cmd.ID == component.CmdEndJump {
			break
		}
		// Every command, including moves, dispatches through the normal
		// path: Move's own jumping branch diverts the displacement into
		// jump_plus_x/y instead of stepping the character (spec.md 4.4
		// step 3), while non-movement commands still run for their side
		// effects as the character scans ahead.
		executeMoveCommand(m, c, route, &i, cmd)
	}

	if i >= len(route.Commands) {
		*index = i
		c.Jumping = false
		return false
	}

	*index = i
	return BeginJump(m, c, c.JumpX+c.JumpPlusX, c.JumpY+c.JumpPlusY)
}

func randomTurn(m *Map, current component.Direction) component.Direction {
	if m.RNG().Intn(2) == 0 {
		return current.TurnRight90()
	}
	return current.TurnLeft90()
}

func cardinalFromRoll(roll int) component.Direction {
	switch roll {
	case 0:
		return component.Up
	case 1:
		return component.Right
	case 2:
		return component.Down
	default:
		return component.Left
	}
}

func faceHero(m *Map, c *component.Character, toward bool) {
	hero := m.Hero()
	deltaX := hero.X - c.X
	deltaY := hero.Y - c.Y
	if !toward {
		deltaX, deltaY = -deltaX, -deltaY
	}
	if deltaX == 0 && deltaY == 0 {
		return
	}
	if abs(deltaY) >= abs(deltaX) {
		if deltaY >= 0 {
			Face(c, component.Down)
		} else {
			Face(c, component.Up)
		}
	} else {
		if deltaX >= 0 {
			Face(c, component.Right)
		} else {
			Face(c, component.Left)
		}
	}
}
