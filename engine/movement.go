package engine

import "github.com/lixenwraith/mapcore/component"

// Face turns a character to d without moving it, honoring facing_lock
// (spec.md 4.1, "turn_*" move commands / facing-only turns).
func Face(c *component.Character, d component.Direction) {
	if c.FacingLocked {
		return
	}
	c.Direction = d
	c.SpriteDirection = d
}

// setMoveDirection implements move(dir)'s step 2 (spec.md 4.4):
// direction always follows dir. A direction-fixed animation type keeps its
// sprite_direction untouched for every direction. Otherwise
// sprite_direction follows a cardinal dir directly, and a diagonal
// contributes whichever axis its current sprite_direction isn't already
// showing, so a character walking diagonally alternates its visible facing
// between the two legs rather than snapping to one.
func setMoveDirection(c *component.Character, d component.Direction) {
	c.Direction = d
	if c.AnimationType.IsFixed() {
		return
	}
	if !d.IsDiagonal() {
		c.SpriteDirection = d
		return
	}
	if c.SpriteDirection.IsVertical() {
		c.SpriteDirection = d.HorizontalLeg()
	} else {
		c.SpriteDirection = d.VerticalLeg()
	}
}

// Move attempts to step c one tile in direction d, implementing the
// move(dir) primitive (spec.md 4.4). If a jump is in flight, the offset is
// merely accumulated into jump_plus_x/y rather than moving the character —
// this is also how the begin_jump scan-ahead builds up a multi-leg jump
// when it dispatches through the same command path as a normal tick.
// Otherwise it commits the coordinate change only if the destination is
// passable, and unconditionally resets stop_count/max_stop_count whether
// or not the move succeeded (spec.md 8 scenario 1). On failure it invokes
// c.Hooks.CheckEventTriggerTouch with the blocked target tile; on success,
// c.Hooks.BeginMove — the role-specific capability trait spec.md 9 calls
// for in place of the original engine's per-subclass virtual methods. A
// nil Hooks (the default) makes both a no-op.
func Move(m *Map, c *component.Character, d component.Direction) bool {
	setMoveDirection(c, d)

	if c.Jumping {
		ddx, ddy := d.Delta()
		c.JumpPlusX += ddx
		c.JumpPlusY += ddy
		return true
	}

	ok := m.IsPassable(c.X, c.Y, d, c)
	if ok {
		tx, ty := c.X+dx(d), c.Y+dy(d)
		c.X, c.Y = m.RoundX(tx), m.RoundY(ty)
		c.RemainingStep = component.ScreenTileWidth
		if c.Hooks != nil {
			c.Hooks.BeginMove()
		}
	} else if c.Hooks != nil {
		tx, ty := m.RoundX(c.X+dx(d)), m.RoundY(c.Y+dy(d))
		c.Hooks.CheckEventTriggerTouch(tx, ty)
	}
	c.MoveFailed = !ok
	c.StopCount = 0
	RecomputeMaxStopCount(c)
	return ok
}

// BeginJump resolves the begin_jump command's scanned target (targetX,
// targetY, typically jump_x/jump_y plus the accumulated jump_plus_x/y) and,
// if landable, commits the character's position to it immediately (spec.md
// 4.3): the jump's displacement is settled at the moment begin_jump
// finishes scanning, not at the end of the visual arc — update_jump (spec.md
// 4.1) only ticks remaining_step down afterward to interpolate real_x/y
// back from the origin tile recorded in jump_x/jump_y. An offset of
// (0,0) (begin_jump immediately followed by end_jump) always succeeds
// without a landability check, matching the literal "if jump_plus ≠ (0,0)
// and not landable" guard. If the character is not already mid-scan
// (c.Jumping false), the current tile is recorded as the jump's origin
// first — the begin_jump command's own "reset jump_x,jump_y to current
// position" step, folded in here so a single-leg jump (no intervening
// move commands before end_jump) can be driven with one call. Direction
// is only set from the net offset on that direct, single-call path: when
// resolving a scan already in progress (c.Jumping true on entry, as
// executeBeginJumpScan does), the character's facing was already set by
// whichever move command the scan last dispatched, and the original
// engine never recomputes it from the accumulated offset at resolution.
func BeginJump(m *Map, c *component.Character, targetX, targetY int) bool {
	direct := !c.Jumping
	if direct {
		c.JumpX, c.JumpY = c.X, c.Y
	}
	plusX := targetX - c.JumpX
	plusY := targetY - c.JumpY
	if (plusX != 0 || plusY != 0) && !m.IsLandable(targetX, targetY, c) {
		c.MoveFailed = true
		c.Jumping = false
		return false
	}
	if direct && (plusX != 0 || plusY != 0) {
		setMoveDirection(c, directionOfOffset(plusX, plusY))
	}

	c.JumpPlusX, c.JumpPlusY = plusX, plusY
	c.X, c.Y = m.RoundX(targetX), m.RoundY(targetY)
	c.Jumping = true
	c.RemainingStep = component.ScreenTileWidth
	c.StopCount = 0
	RecomputeMaxStopCount(c)
	c.MoveFailed = false
	return true
}

// EndJump clears jumping state once update_jump has driven remaining_step
// to zero (spec.md 4.1). The destination tile was already committed by
// BeginJump, so nothing but the flags needs resetting here.
func EndJump(m *Map, c *component.Character) {
	c.Jumping = false
	c.JumpPlusX, c.JumpPlusY = 0, 0
}

// directionOfOffset maps a tile offset to the nearest of the eight
// directions, preferring diagonals when both axes are non-zero.
func directionOfOffset(dx, dy int) component.Direction {
	switch {
	case dx > 0 && dy > 0:
		return component.DownRight
	case dx > 0 && dy < 0:
		return component.UpRight
	case dx < 0 && dy > 0:
		return component.DownLeft
	case dx < 0 && dy < 0:
		return component.UpLeft
	case dx > 0:
		return component.Right
	case dx < 0:
		return component.Left
	case dy > 0:
		return component.Down
	default:
		return component.Up
	}
}
