package engine

import (
	"testing"

	"github.com/lixenwraith/mapcore/component"
)

func newTestMap(w, h int) *Map {
	return NewMap(MapConfig{Width: w, Height: h, Seed: 1})
}

func TestMoveIntoWallFails(t *testing.T) {
	m := newTestMap(5, 5)
	c := component.NewCharacter(2, component.RoleEvent, 2, 2)
	m.AddCharacter(c)

	m.terrain.SetEdgeBlocked(2, 2, component.Right, true)

	if Move(m, c, component.Right) {
		t.Fatalf("expected move into blocked edge to fail")
	}
	if !c.MoveFailed {
		t.Fatalf("expected MoveFailed to be set")
	}
	if c.X != 2 || c.Y != 2 {
		t.Fatalf("character should not have moved, got (%d,%d)", c.X, c.Y)
	}
	if c.Direction != component.Right {
		t.Fatalf("a failed move should still turn the character to face it")
	}
}

func TestMoveSucceedsResetsRemainingStep(t *testing.T) {
	m := newTestMap(5, 5)
	c := component.NewCharacter(2, component.RoleEvent, 2, 2)
	m.AddCharacter(c)

	if !Move(m, c, component.Down) {
		t.Fatalf("expected move to succeed on open terrain")
	}
	if c.Y != 3 {
		t.Fatalf("expected y to advance to 3, got %d", c.Y)
	}
	if c.RemainingStep != component.ScreenTileWidth {
		t.Fatalf("expected remaining_step reset to %d, got %d", component.ScreenTileWidth, c.RemainingStep)
	}
}

type recordingHooks struct {
	beginMoveCalls int
	touchedX       int
	touchedY       int
	touched        bool
}

func (h *recordingHooks) BeginMove() { h.beginMoveCalls++ }
func (h *recordingHooks) CheckEventTriggerTouch(x, y int) {
	h.touched = true
	h.touchedX, h.touchedY = x, y
}

func TestMoveCallsBeginMoveHookOnSuccess(t *testing.T) {
	m := newTestMap(5, 5)
	c := component.NewCharacter(2, component.RoleEvent, 2, 2)
	hooks := &recordingHooks{}
	c.Hooks = hooks
	m.AddCharacter(c)

	if !Move(m, c, component.Down) {
		t.Fatalf("expected move to succeed on open terrain")
	}
	if hooks.beginMoveCalls != 1 {
		t.Fatalf("expected BeginMove to be called once, got %d", hooks.beginMoveCalls)
	}
	if hooks.touched {
		t.Fatalf("did not expect CheckEventTriggerTouch on a successful move")
	}
}

func TestMoveCallsEventTriggerTouchHookOnFailure(t *testing.T) {
	m := newTestMap(5, 5)
	c := component.NewCharacter(2, component.RoleEvent, 2, 2)
	hooks := &recordingHooks{}
	c.Hooks = hooks
	m.AddCharacter(c)
	m.terrain.SetEdgeBlocked(2, 2, component.Right, true)

	if Move(m, c, component.Right) {
		t.Fatalf("expected move into blocked edge to fail")
	}
	if hooks.beginMoveCalls != 0 {
		t.Fatalf("did not expect BeginMove on a failed move")
	}
	if !hooks.touched || hooks.touchedX != 3 || hooks.touchedY != 2 {
		t.Fatalf("expected CheckEventTriggerTouch(3,2), got touched=%v (%d,%d)", hooks.touched, hooks.touchedX, hooks.touchedY)
	}
}

func TestMoveWithNilHooksIsNoop(t *testing.T) {
	m := newTestMap(5, 5)
	c := component.NewCharacter(2, component.RoleEvent, 2, 2)
	m.AddCharacter(c)

	if !Move(m, c, component.Down) {
		t.Fatalf("expected move to succeed on open terrain")
	}
}

func TestDiagonalMoveFallsBackToVerticalFirstLeg(t *testing.T) {
	m := newTestMap(5, 5)
	c := component.NewCharacter(2, component.RoleEvent, 2, 2)
	m.AddCharacter(c)

	// Block the horizontal leg's own edge so only vertical-then-horizontal
	// can succeed (spec.md 4.5 fallback order).
	m.terrain.SetEdgeBlocked(2, 2, component.Right, true)

	if !m.IsPassable(2, 2, component.DownRight, c) {
		t.Fatalf("expected diagonal move to fall back to vertical-first leg")
	}
}

func TestDiagonalMoveFailsWhenBothLegOrdersBlocked(t *testing.T) {
	m := newTestMap(5, 5)
	c := component.NewCharacter(2, component.RoleEvent, 2, 2)
	m.AddCharacter(c)

	m.terrain.SetEdgeBlocked(2, 2, component.Right, true)
	m.terrain.SetEdgeBlocked(2, 2, component.Down, true)

	if m.IsPassable(2, 2, component.DownRight, c) {
		t.Fatalf("expected diagonal move to fail when both leg orders are blocked")
	}
}

func TestEventsFreelyShareATile(t *testing.T) {
	m := newTestMap(5, 5)
	a := component.NewCharacter(2, component.RoleEvent, 2, 2)
	b := component.NewCharacter(3, component.RoleEvent, 3, 2)
	a.SpriteName, b.SpriteName = "a", "b"
	m.AddCharacter(a)
	m.AddCharacter(b)

	if !m.IsPassable(2, 2, component.Right, a) {
		t.Fatalf("expected two events to be able to share a tile (spec.md 4.5)")
	}
}

func TestHeroOccupancyBlocksEventEntry(t *testing.T) {
	m := newTestMap(5, 5)
	m.Hero().X, m.Hero().Y = 3, 2
	a := component.NewCharacter(2, component.RoleEvent, 2, 2)
	a.SpriteName = "a"
	a.Layer = component.LayerSame
	m.AddCharacter(a)

	if m.IsPassable(2, 2, component.Right, a) {
		t.Fatalf("expected the hero's own occupancy to block another character's entry")
	}
}

func TestHeroCanEnterAnEventsTile(t *testing.T) {
	m := newTestMap(5, 5)
	hero := m.Hero()
	hero.X, hero.Y = 2, 2
	a := component.NewCharacter(2, component.RoleEvent, 3, 2)
	a.SpriteName = "a"
	m.AddCharacter(a)

	if !m.IsPassable(2, 2, component.Right, hero) {
		t.Fatalf("expected the hero to be able to walk onto an event's tile")
	}
}

func TestSpriteLessEventIgnoresHeroOccupancy(t *testing.T) {
	m := newTestMap(5, 5)
	m.Hero().X, m.Hero().Y = 3, 2
	a := component.NewCharacter(2, component.RoleEvent, 2, 2) // no SpriteName set
	m.AddCharacter(a)

	if !m.IsPassable(2, 2, component.Right, a) {
		t.Fatalf("expected a spriteless event to ignore the hero's occupancy")
	}
}

func TestThroughCharacterIgnoresTerrainAndOccupants(t *testing.T) {
	m := newTestMap(5, 5)
	a := component.NewCharacter(2, component.RoleEvent, 2, 2)
	a.Through = true
	b := component.NewCharacter(3, component.RoleEvent, 3, 2)
	m.AddCharacter(a)
	m.AddCharacter(b)
	m.terrain.SetEdgeBlocked(2, 2, component.Right, true)

	if !m.IsPassable(2, 2, component.Right, a) {
		t.Fatalf("expected through character to ignore both terrain and occupants")
	}
}

func TestBeginJumpRequiresLandableTarget(t *testing.T) {
	m := newTestMap(5, 5)
	c := component.NewCharacter(2, component.RoleEvent, 2, 2)
	m.AddCharacter(c)
	m.terrain.SetLandable(4, 2, false)

	if BeginJump(m, c, 4, 2) {
		t.Fatalf("expected jump to a non-landable tile to fail")
	}
	if c.Jumping {
		t.Fatalf("failed jump should not set Jumping")
	}
}

func TestJumpArcCompletesAndLands(t *testing.T) {
	m := newTestMap(5, 5)
	c := component.NewCharacter(2, component.RoleEvent, 2, 2)
	m.AddCharacter(c)

	if !BeginJump(m, c, 4, 2) {
		t.Fatalf("expected jump to succeed")
	}
	for i := 0; i < 100 && c.Jumping; i++ {
		UpdateCharacter(m, c)
	}
	if c.Jumping {
		t.Fatalf("jump did not complete within 100 ticks")
	}
	if c.X != 4 || c.Y != 2 {
		t.Fatalf("expected landing at (4,2), got (%d,%d)", c.X, c.Y)
	}
}

func TestSelfMoveCycleFlipsBothAxesOnFailure(t *testing.T) {
	m := newTestMap(5, 5)
	c := component.NewCharacter(2, component.RoleEvent, 2, 2)
	c.MoveType = component.MoveHorizontal
	m.AddCharacter(c)
	m.terrain.SetEdgeBlocked(2, 2, component.Left, true)
	m.terrain.SetEdgeBlocked(1, 2, component.Right, true)

	selfMoveCycle(m, c, component.Left, component.Right)
	if !c.CycleStat {
		t.Fatalf("expected CycleStat to flip after a failed move in either cycle policy")
	}

	v := component.NewCharacter(3, component.RoleEvent, 2, 2)
	v.MoveType = component.MoveVertical
	m.AddCharacter(v)
	m.terrain.SetEdgeBlocked(2, 2, component.Down, true)

	selfMoveCycle(m, v, component.Down, component.Up)
	if !v.CycleStat {
		t.Fatalf("expected CycleStat to flip after a failed move in the vertical cycle policy")
	}
}

func TestForceMoveRouteEntersPendingRegistryAndRestoresOnCancel(t *testing.T) {
	m := newTestMap(5, 5)
	c := component.NewCharacter(2, component.RoleEvent, 2, 2)
	m.AddCharacter(c)

	route := component.MoveRoute{Commands: []component.MoveCommand{{ID: component.CmdMoveDown}}}
	ForceMoveRoute(m, c, route, 6)
	if !m.Pending(c.ID) {
		t.Fatalf("expected character to enter pending-move registry when forced")
	}

	CancelMoveRoute(m, c)
	if m.Pending(c.ID) {
		t.Fatalf("expected character to leave pending-move registry on cancel")
	}
	if c.MoveRouteOverwritten {
		t.Fatalf("expected MoveRouteOverwritten cleared on cancel")
	}
}

func TestMoveRouteSkippableAdvancesPastFailedCommand(t *testing.T) {
	m := newTestMap(5, 5)
	c := component.NewCharacter(2, component.RoleEvent, 2, 2)
	m.AddCharacter(c)
	m.terrain.SetEdgeBlocked(2, 2, component.Up, true)

	route := component.MoveRoute{
		Commands:  []component.MoveCommand{{ID: component.CmdMoveUp}, {ID: component.CmdMoveDown}},
		Skippable: true,
	}
	ForceMoveRoute(m, c, route, 6)

	StepMoveRoute(m, c) // blocked move up, skippable -> advances anyway
	if c.MoveRouteIndex != 1 {
		t.Fatalf("expected skippable route to advance past the failed command, index=%d", c.MoveRouteIndex)
	}
}

func TestMoveRouteNonSkippableRetriesBlockedCommand(t *testing.T) {
	m := newTestMap(5, 5)
	c := component.NewCharacter(2, component.RoleEvent, 2, 2)
	m.AddCharacter(c)
	m.terrain.SetEdgeBlocked(2, 2, component.Up, true)

	route := component.MoveRoute{Commands: []component.MoveCommand{{ID: component.CmdMoveUp}}}
	ForceMoveRoute(m, c, route, 6)

	StepMoveRoute(m, c)
	if c.MoveRouteIndex != 0 {
		t.Fatalf("expected non-skippable route to retry the blocked command, index=%d", c.MoveRouteIndex)
	}
}

func TestBeginJumpScanAccumulatesOffsetsThroughEndJump(t *testing.T) {
	m := newTestMap(10, 10)
	c := component.NewCharacter(2, component.RoleEvent, 5, 5)
	m.AddCharacter(c)

	route := component.MoveRoute{Commands: []component.MoveCommand{
		{ID: component.CmdBeginJump},
		{ID: component.CmdMoveRight},
		{ID: component.CmdMoveRight},
		{ID: component.CmdMoveDown},
		{ID: component.CmdEndJump},
	}}
	ForceMoveRoute(m, c, route, 6)

	StepMoveRoute(m, c)
	if !c.Jumping {
		t.Fatalf("expected begin_jump scan to start a jump immediately")
	}
	if c.JumpPlusX != 2 || c.JumpPlusY != 1 {
		t.Fatalf("expected accumulated offset (2,1), got (%d,%d)", c.JumpPlusX, c.JumpPlusY)
	}
	if c.MoveRouteIndex != 5 {
		t.Fatalf("expected route index to advance past end_jump, got %d", c.MoveRouteIndex)
	}
	if c.Direction != component.Down {
		t.Fatalf("expected direction to be left exactly as the last scanned move command (Down) set it, got %v", c.Direction)
	}
}

func TestBeginJumpScanAbandonsWhenNoEndJumpFound(t *testing.T) {
	m := newTestMap(10, 10)
	c := component.NewCharacter(2, component.RoleEvent, 5, 5)
	m.AddCharacter(c)

	route := component.MoveRoute{Commands: []component.MoveCommand{
		{ID: component.CmdBeginJump},
		{ID: component.CmdMoveRight},
	}}
	ForceMoveRoute(m, c, route, 6)

	StepMoveRoute(m, c)
	if c.Jumping {
		t.Fatalf("expected jump to be abandoned when no end_jump is found")
	}
	if c.X != 5 || c.Y != 5 {
		t.Fatalf("expected character not to have moved during an abandoned jump scan")
	}
}

func TestMapQueryLoopingWraparound(t *testing.T) {
	m := NewMap(MapConfig{Width: 5, Height: 5, LoopHorizontal: true, LoopVertical: true, Seed: 1})
	if m.RoundX(-1) != 4 {
		t.Fatalf("expected RoundX(-1) to wrap to 4, got %d", m.RoundX(-1))
	}
	if m.RoundY(5) != 0 {
		t.Fatalf("expected RoundY(5) to wrap to 0, got %d", m.RoundY(5))
	}
	if !m.IsValid(-1, -1) {
		t.Fatalf("expected looping map to treat negative coords as valid")
	}
}

// TestScenario1StationaryBlockedStep reproduces spec.md 8's first literal
// end-to-end scenario verbatim.
func TestScenario1StationaryBlockedStep(t *testing.T) {
	m := newTestMap(5, 5)
	c := component.NewCharacter(2, component.RoleEvent, 3, 3)
	c.Direction = component.Right
	c.MoveSpeed = 4
	c.MoveFrequency = 3
	m.AddCharacter(c)
	m.terrain.SetEdgeBlocked(3, 3, component.Up, true)

	Move(m, c, component.Up)

	if !c.MoveFailed {
		t.Fatalf("expected move_failed=true")
	}
	if c.X != 3 || c.Y != 3 {
		t.Fatalf("expected position to stay (3,3), got (%d,%d)", c.X, c.Y)
	}
	if c.Direction != component.Up || c.SpriteDirection != component.Up {
		t.Fatalf("expected direction and sprite_direction to turn to Up")
	}
	if c.MaxStopCount != 64 {
		t.Fatalf("expected max_stop_count=64, got %d", c.MaxStopCount)
	}
}

// TestScenario2FullWalkingStep reproduces spec.md 8's second literal
// end-to-end scenario verbatim.
func TestScenario2FullWalkingStep(t *testing.T) {
	m := newTestMap(5, 5)
	c := component.NewCharacter(2, component.RoleEvent, 0, 0)
	c.Direction = component.Down
	c.MoveSpeed = 3
	m.AddCharacter(c)

	if !Move(m, c, component.Down) {
		t.Fatalf("expected move onto passable (0,1) to succeed")
	}
	if c.X != 0 || c.Y != 1 || c.RemainingStep != 256 {
		t.Fatalf("expected (0,1) with remaining_step=256 immediately, got (%d,%d) rs=%d", c.X, c.Y, c.RemainingStep)
	}

	UpdateCharacter(m, c)
	if c.RemainingStep != 240 {
		t.Fatalf("expected remaining_step=240 after one tick, got %d", c.RemainingStep)
	}

	for i := 0; i < 15; i++ {
		UpdateCharacter(m, c)
	}
	if c.RemainingStep != 0 || c.IsMoving() {
		t.Fatalf("expected remaining_step=0 and is_moving=false after 16 ticks, got rs=%d moving=%v", c.RemainingStep, c.IsMoving())
	}
}

// TestScenario3WalkCyclePattern reproduces spec.md 8's third literal
// end-to-end scenario verbatim, driving advancePattern directly the way
// updateMove's anime_count accrual would each tick a character keeps
// moving.
func TestScenario3WalkCyclePattern(t *testing.T) {
	c := component.NewCharacter(2, component.RoleEvent, 0, 0)
	c.AnimationType = component.AnimNonContinuous
	c.OriginalPattern = component.PatternMiddle
	c.Pattern = component.PatternMiddle
	c.LastPattern = component.PatternRight
	c.MoveSpeed = 4
	c.RemainingStep = component.ScreenTileWidth // keep is_moving() true throughout

	tick := func(n int) {
		for i := 0; i < n; i++ {
			c.AnimeCount++
			advancePattern(c)
		}
	}

	tick(6)
	if c.Pattern != component.PatternLeft || c.LastPattern != component.PatternRight {
		t.Fatalf("after 6 ticks expected Left/Right, got %v/%v", c.Pattern, c.LastPattern)
	}
	tick(6)
	if c.Pattern != component.PatternMiddle || c.LastPattern != component.PatternLeft {
		t.Fatalf("after 12 ticks expected Middle/Left, got %v/%v", c.Pattern, c.LastPattern)
	}
	tick(6)
	if c.Pattern != component.PatternRight || c.LastPattern != component.PatternLeft {
		t.Fatalf("after 18 ticks expected Right/Left, got %v/%v", c.Pattern, c.LastPattern)
	}
	tick(6)
	if c.Pattern != component.PatternMiddle || c.LastPattern != component.PatternRight {
		t.Fatalf("after 24 ticks expected Middle/Right, got %v/%v", c.Pattern, c.LastPattern)
	}
}

// TestScenario5JumpArc reproduces spec.md 8's fifth literal end-to-end
// scenario verbatim: begin_jump;move_right;move_right;end_jump from (5,5)
// onto the landable (7,5).
func TestScenario5JumpArc(t *testing.T) {
	m := newTestMap(10, 10)
	c := component.NewCharacter(2, component.RoleEvent, 5, 5)
	m.AddCharacter(c)

	route := component.MoveRoute{Commands: []component.MoveCommand{
		{ID: component.CmdBeginJump},
		{ID: component.CmdMoveRight},
		{ID: component.CmdMoveRight},
		{ID: component.CmdEndJump},
	}}
	ForceMoveRoute(m, c, route, 6)
	StepMoveRoute(m, c)

	if c.X != 7 || c.Y != 5 {
		t.Fatalf("expected (7,5) immediately after begin_jump resolves, got (%d,%d)", c.X, c.Y)
	}
	if c.JumpX != 5 || c.JumpY != 5 {
		t.Fatalf("expected jump_x,jump_y=(5,5), got (%d,%d)", c.JumpX, c.JumpY)
	}
	if !c.Jumping {
		t.Fatalf("expected jumping=true")
	}
	if c.RemainingStep != 256 {
		t.Fatalf("expected remaining_step=256, got %d", c.RemainingStep)
	}

	startX := RealX(c)
	if startX != 5*256 {
		t.Fatalf("expected real_x to start at jump_x*256=1280, got %d", startX)
	}
	for c.Jumping {
		UpdateCharacter(m, c)
	}
	if RealX(c) != 7*256 {
		t.Fatalf("expected real_x to land at x*256=1792, got %d", RealX(c))
	}
}

// TestScenario6ForcedRouteOverlayAndCancel reproduces spec.md 8's sixth
// literal end-to-end scenario verbatim, including the natural (non-cancel)
// unwind when a non-repeating forced route runs out.
func TestScenario6ForcedRouteOverlayAndCancel(t *testing.T) {
	m := newTestMap(5, 5)
	c := component.NewCharacter(2, component.RoleEvent, 2, 2)
	c.MoveFrequency = 3
	m.AddCharacter(c)

	route := component.MoveRoute{Commands: []component.MoveCommand{{ID: component.CmdMoveDown}}}
	ForceMoveRoute(m, c, route, 6)

	if c.MoveFrequency != 6 || !m.Pending(c.ID) || c.MoveRouteIndex != 0 {
		t.Fatalf("expected frequency=6, pending registry membership, index=0 after forcing")
	}

	StepMoveRoute(m, c) // runs the single move_down; the character is now mid-step
	// The exhausted, non-repeating route is unwound on the next idle
	// dispatch, once the step has finished and stop_count has caught up.
	for i := 0; i < 100 && c.MoveRouteOverwritten; i++ {
		UpdateCharacter(m, c)
	}
	if c.MoveRouteOverwritten {
		t.Fatalf("expected move_route_overwritten=false once the forced route runs out")
	}
	if c.MoveFrequency != 3 {
		t.Fatalf("expected frequency restored to 3, got %d", c.MoveFrequency)
	}
	if m.Pending(c.ID) {
		t.Fatalf("expected character removed from pending registry")
	}
}

func TestGetCharacterResolvesSpecialAndEventIDs(t *testing.T) {
	m := newTestMap(5, 5)
	ev := component.NewCharacter(10, component.RoleEvent, 1, 1)
	m.AddEvent(3, ev)
	boat := component.NewCharacter(11, component.RoleBoat, 0, 0)
	m.AddCharacter(boat)

	if c, ok := m.GetCharacter(CharPlayer, 0); !ok || c != m.Hero() {
		t.Fatalf("expected CharPlayer to resolve to the hero")
	}
	if c, ok := m.GetCharacter(CharBoat, 0); !ok || c != boat {
		t.Fatalf("expected CharBoat to resolve to the registered boat vehicle")
	}
	if c, ok := m.GetCharacter(CharThisEvent, 3); !ok || c != ev {
		t.Fatalf("expected CharThisEvent to resolve via the calling event's id")
	}
	if c, ok := m.GetCharacter(3, 0); !ok || c != ev {
		t.Fatalf("expected a bare event id to resolve directly, got %v %v", c, ok)
	}
	if _, ok := m.GetCharacter(999, 0); ok {
		t.Fatalf("expected an unknown id to report a miss")
	}
}

func TestRemoveCharacterClearsPendingRegistry(t *testing.T) {
	m := newTestMap(5, 5)
	c := component.NewCharacter(7, component.RoleEvent, 1, 1)
	m.AddCharacter(c)
	m.MarkPending(c.ID)

	m.RemoveCharacter(c.ID)
	if m.Pending(c.ID) {
		t.Fatalf("expected removed character to be cleared from pending registry")
	}
	if _, ok := m.Character(c.ID); ok {
		t.Fatalf("expected removed character to no longer be retrievable")
	}
}
