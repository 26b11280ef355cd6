package engine

import "github.com/lixenwraith/mapcore/component"

// VehicleKind names the three vehicle slots a Map may hold (spec.md 6).
type VehicleKind int

const (
	VehicleBoat VehicleKind = iota
	VehicleShip
	VehicleAirship
)

// HeroID is the reserved CharacterID the hero (game_player) always
// occupies, letting collaborators address it without a cyclic
// Character-to-Character pointer (spec.md 9, "Cyclic references").
const HeroID component.CharacterID = 1

// MapQuery is the subset of Map state the passability/landability/
// projection logic needs (spec.md 6). *Map implements it; the engine's
// movement, route and projection functions take *Map, not a MapQuery.
type MapQuery interface {
	Width() int
	Height() int
	RoundX(x int) int
	RoundY(y int) int
	LoopHorizontal() bool
	LoopVertical() bool
	IsValid(x, y int) bool
	IsPassable(x, y int, d component.Direction, who *component.Character) bool
	IsLandable(x, y int, who *component.Character) bool
	DisplayX() int
	DisplayY() int
	BushDepth(x, y int) int
}

// MessageState reports whether the map-scope message window is blocking
// idle dispatch, and whether it wants the event interpreter to keep
// running while it is up (spec.md 6).
type MessageState interface {
	Waiting() bool
	ContinueEvents() bool
}

// InterpreterState reports whether the external event-command interpreter
// is currently running a script (spec.md 6, "get_interpreter().is_running()").
type InterpreterState interface {
	IsRunning() bool
}

// SEPlayer is the narrow audio collaborator the play_sound_effect move
// command consumes (spec.md 6). The simulation core never decodes or
// mixes audio itself; mapcore/audio provides one concrete implementation.
type SEPlayer interface {
	Play(file string, volume, tempo int)
}

// Switches is an indexable set of booleans, externally synchronized
// (spec.md 5); this core only ever writes through switch_on/switch_off.
type Switches interface {
	Set(id int, value bool)
	Get(id int) bool
}
