package engine

import (
	"github.com/lixenwraith/mapcore/component"
	"github.com/lixenwraith/mapcore/vmath"
)

var _ MapQuery = (*Map)(nil)

// Map owns every Character on a single playfield, the terrain they move
// across, and the pending-move registry of characters with a forced move
// route (spec.md 3, 9). It implements MapQuery; the engine's own functions
// take *Map directly rather than a MapQuery.
type Map struct {
	width, height      int
	loopHorizontal     bool
	loopVertical       bool
	displayX, displayY int
	terrain            *Terrain

	characters map[component.CharacterID]*component.Character
	order      []component.CharacterID // insertion order, fixed for the life of the map (spec.md 5)
	events     map[int]*component.Character
	vehicles   map[VehicleKind]*component.Character
	hero       *component.Character

	pending map[component.CharacterID]struct{}

	needRefresh bool

	switches    Switches
	interpreter InterpreterState
	message     MessageState
	audio       SEPlayer

	rng *vmath.FastRand
}

// MapConfig bundles the external collaborators a Map is constructed with;
// any left nil get an inert default so a Map can be built for unit tests
// without standing up a full runtime.
type MapConfig struct {
	Width, Height  int
	LoopHorizontal bool
	LoopVertical   bool
	Terrain        *Terrain
	Switches       Switches
	Interpreter    InterpreterState
	Message        MessageState
	Audio          SEPlayer
	Seed           uint64
}

type nullSwitches struct{}

func (nullSwitches) Set(int, bool) {}
func (nullSwitches) Get(int) bool  { return false }

type nullInterpreter struct{}

func (nullInterpreter) IsRunning() bool { return false }

type nullMessage struct{}

func (nullMessage) Waiting() bool        { return false }
func (nullMessage) ContinueEvents() bool { return false }

type nullAudio struct{}

func (nullAudio) Play(string, int, int) {}

// NewMap constructs an empty Map; the hero is created and registered
// automatically under HeroID since spec.md treats it as always-present.
func NewMap(cfg MapConfig) *Map {
	terrain := cfg.Terrain
	if terrain == nil {
		terrain = NewTerrain(cfg.Width, cfg.Height)
	}
	switches := cfg.Switches
	if switches == nil {
		switches = nullSwitches{}
	}
	interp := cfg.Interpreter
	if interp == nil {
		interp = nullInterpreter{}
	}
	msg := cfg.Message
	if msg == nil {
		msg = nullMessage{}
	}
	audio := cfg.Audio
	if audio == nil {
		audio = nullAudio{}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = 0x9e3779b97f4a7c15
	}

	m := &Map{
		width:          cfg.Width,
		height:         cfg.Height,
		loopHorizontal: cfg.LoopHorizontal,
		loopVertical:   cfg.LoopVertical,
		terrain:        terrain,
		characters:     make(map[component.CharacterID]*component.Character),
		events:         make(map[int]*component.Character),
		vehicles:       make(map[VehicleKind]*component.Character),
		pending:        make(map[component.CharacterID]struct{}),
		switches:       switches,
		interpreter:    interp,
		message:        msg,
		audio:          audio,
		rng:            vmath.NewFastRand(seed),
	}

	hero := component.NewCharacter(HeroID, component.RoleHero, 0, 0)
	m.AddCharacter(hero)
	m.hero = hero
	return m
}

// AddCharacter registers a character on the map, and in the matching
// vehicle slot for the boat/ship/airship roles. It does not index the
// character by event id; AddEvent does that for get_character(CharThisEvent,
// eventID) style lookups (spec.md 6).
func (m *Map) AddCharacter(c *component.Character) {
	m.characters[c.ID] = c
	m.order = append(m.order, c.ID)
	switch c.Role {
	case component.RoleBoat:
		m.vehicles[VehicleBoat] = c
	case component.RoleShip:
		m.vehicles[VehicleShip] = c
	case component.RoleAirship:
		m.vehicles[VehicleAirship] = c
	}
}

// AddEvent registers a map-event character under its event id for
// CharThisEvent-style resolution.
func (m *Map) AddEvent(eventID int, c *component.Character) {
	m.AddCharacter(c)
	m.events[eventID] = c
}

// RemoveCharacter deregisters a character and clears it from the
// pending-move registry exactly once (spec.md 3, destruction invariant).
func (m *Map) RemoveCharacter(id component.CharacterID) {
	delete(m.pending, id)
	delete(m.characters, id)
	for eid, c := range m.events {
		if c.ID == id {
			delete(m.events, eid)
		}
	}
	for kind, c := range m.vehicles {
		if c.ID == id {
			delete(m.vehicles, kind)
		}
	}
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Character looks up a character by id.
func (m *Map) Character(id component.CharacterID) (*component.Character, bool) {
	c, ok := m.characters[id]
	return c, ok
}

// Hero returns the hero character, always present.
func (m *Map) Hero() *component.Character { return m.hero }

// Vehicle returns the registered vehicle of the given kind, if any.
func (m *Map) Vehicle(kind VehicleKind) (*component.Character, bool) {
	c, ok := m.vehicles[kind]
	return c, ok
}

// Special character_id values GetCharacter dispatches on (spec.md 6),
// matching the original engine's Game_Character::GetCharacter switch.
const (
	CharThisEvent = 0
	CharPlayer    = -1
	CharBoat      = -2
	CharShip      = -3
	CharAirship   = -4
)

// GetCharacter resolves a move-route/event-command character reference
// (spec.md 6, "Character lookup"): CharPlayer to the hero, CharBoat/Ship/
// Airship to the matching vehicle slot, CharThisEvent to the event at
// eventID, and any other value to the event sharing that id. A missing id
// reports false rather than panicking, since the external event
// interpreter this serves must itself check before dereferencing.
func (m *Map) GetCharacter(characterID, eventID int) (*component.Character, bool) {
	switch characterID {
	case CharPlayer:
		return m.hero, true
	case CharBoat:
		return m.Vehicle(VehicleBoat)
	case CharShip:
		return m.Vehicle(VehicleShip)
	case CharAirship:
		return m.Vehicle(VehicleAirship)
	case CharThisEvent:
		c, ok := m.events[eventID]
		return c, ok
	default:
		c, ok := m.events[characterID]
		return c, ok
	}
}

// MarkPending adds id to the pending-move registry (spec.md 9), the set of
// characters with a forced move route; ForceMoveRoute calls it, and
// CancelMoveRoute and RemoveCharacter clear the entry.
func (m *Map) MarkPending(id component.CharacterID) { m.pending[id] = struct{}{} }

// ClearPending removes id from the pending-move registry.
func (m *Map) ClearPending(id component.CharacterID) { delete(m.pending, id) }

// Pending reports whether id is in the pending-move registry.
func (m *Map) Pending(id component.CharacterID) bool {
	_, ok := m.pending[id]
	return ok
}

// PendingIDs returns a snapshot of the pending-move registry.
func (m *Map) PendingIDs() []component.CharacterID {
	ids := make([]component.CharacterID, 0, len(m.pending))
	for id := range m.pending {
		ids = append(ids, id)
	}
	return ids
}

// Width/Height/LoopHorizontal/LoopVertical/DisplayX/DisplayY implement MapQuery.
func (m *Map) Width() int              { return m.width }
func (m *Map) Height() int             { return m.height }
func (m *Map) LoopHorizontal() bool    { return m.loopHorizontal }
func (m *Map) LoopVertical() bool      { return m.loopVertical }
func (m *Map) DisplayX() int           { return m.displayX }
func (m *Map) DisplayY() int           { return m.displayY }
func (m *Map) SetDisplay(x, y int)     { m.displayX, m.displayY = x, y }
func (m *Map) BushDepth(x, y int) int  { return m.terrain.BushDepth(x, y) }

// RoundX wraps an x coordinate into [0,width) when horizontal looping is
// enabled, otherwise returns x unchanged (spec.md 4.6).
func (m *Map) RoundX(x int) int {
	if !m.loopHorizontal || m.width == 0 {
		return x
	}
	return ((x % m.width) + m.width) % m.width
}

// RoundY is RoundX's vertical counterpart.
func (m *Map) RoundY(y int) int {
	if !m.loopVertical || m.height == 0 {
		return y
	}
	return ((y % m.height) + m.height) % m.height
}

// IsValid reports whether (x,y) addresses a map tile, accounting for
// looping edges (spec.md 4.5).
func (m *Map) IsValid(x, y int) bool {
	if m.loopHorizontal {
		x = m.RoundX(x)
	}
	if m.loopVertical {
		y = m.RoundY(y)
	}
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

// heroBlocksPassable reports whether the hero standing on (x,y) blocks who
// from entering it, per spec.md 4.5 / `original_source/src/game_character.cpp`
// `IsPassable` (~lines 113-116): only the hero's occupancy is ever checked
// (two events may freely share a tile), and only when the hero isn't
// through, who has a sprite graphic, and who's on the same layer as the
// tile.
func (m *Map) heroBlocksPassable(x, y int, who *component.Character) bool {
	if who == nil || who == m.hero {
		return false
	}
	if m.hero.X != x || m.hero.Y != y {
		return false
	}
	return !m.hero.Through && who.SpriteName != "" && who.Layer == component.LayerSame
}

// heroBlocksLandable reports whether the hero standing on (x,y) blocks who
// from landing there, per `original_source/src/game_character.cpp`
// `IsLandable` (~lines 130-134): same hero-only occupancy check as
// heroBlocksPassable, but without the layer condition and never blocking
// the hero's own jump onto its own tile.
func (m *Map) heroBlocksLandable(x, y int, who *component.Character) bool {
	if who == nil || who == m.hero {
		return false
	}
	if m.hero.X != x || m.hero.Y != y {
		return false
	}
	return !m.hero.Through && who.SpriteName != ""
}

// IsPassable implements spec.md 4.5: cardinal moves consult the terrain
// edge in both directions plus hero occupancy (two events may freely share
// a tile; only the hero's own occupancy ever blocks another character, per
// heroBlocksPassable); diagonal moves decompose into the two L-shaped leg
// pairs, trying horizontal-then-vertical first and falling back to
// vertical-then-horizontal, matching the original engine.
func (m *Map) IsPassable(x, y int, d component.Direction, who *component.Character) bool {
	if who != nil && who.Through {
		tx, ty := x+dx(d), y+dy(d)
		return m.IsValid(tx, ty)
	}
	if d.IsDiagonal() {
		return m.isPassableDiagonal(x, y, d, who)
	}
	return m.isPassableCardinal(x, y, d, who)
}

func dx(d component.Direction) int { x, _ := d.Delta(); return x }
func dy(d component.Direction) int { _, y := d.Delta(); return y }

func (m *Map) isPassableCardinal(x, y int, d component.Direction, who *component.Character) bool {
	tx, ty := x+dx(d), y+dy(d)
	if !m.IsValid(tx, ty) {
		return false
	}
	if !m.terrain.CanLeave(x, y, d) {
		return false
	}
	if !m.terrain.CanEnter(m.RoundX(tx), m.RoundY(ty), d) {
		return false
	}
	if m.heroBlocksPassable(m.RoundX(tx), m.RoundY(ty), who) {
		return false
	}
	return true
}

func (m *Map) isPassableDiagonal(x, y int, d component.Direction, who *component.Character) bool {
	h := d.HorizontalLeg()
	v := d.VerticalLeg()

	horizontalFirst := m.isPassableCardinal(x, y, h, who)
	if horizontalFirst {
		hx, hy := m.RoundX(x+dx(h)), m.RoundY(y+dy(h))
		if m.isPassableCardinal(hx, hy, v, who) {
			return true
		}
	}
	verticalFirst := m.isPassableCardinal(x, y, v, who)
	if verticalFirst {
		vx, vy := m.RoundX(x+dx(v)), m.RoundY(y+dy(v))
		if m.isPassableCardinal(vx, vy, h, who) {
			return true
		}
	}
	return false
}

// IsLandable reports whether (x,y) is a valid jump target: in bounds,
// terrain-landable, and not blocked by the hero occupying it (spec.md 4.3
// begin_jump).
func (m *Map) IsLandable(x, y int, who *component.Character) bool {
	if !m.IsValid(x, y) {
		return false
	}
	tx, ty := m.RoundX(x), m.RoundY(y)
	if !m.terrain.Landable(tx, ty) {
		return false
	}
	if m.heroBlocksLandable(tx, ty, who) {
		return false
	}
	return true
}

// Switches, Interpreter, Message, Audio, RNG expose the wired
// collaborators to the rest of engine without re-threading them through
// every function signature.
// SetNeedRefresh and NeedRefresh implement the map-refresh request the
// switch_on/switch_off move commands make (spec.md 4.3, 6): a page
// condition may depend on a switch, so the external event layer is
// expected to poll this and re-evaluate event pages when it's set.
func (m *Map) SetNeedRefresh(v bool) { m.needRefresh = v }
func (m *Map) NeedRefresh() bool     { return m.needRefresh }

func (m *Map) Switches() Switches             { return m.switches }
func (m *Map) Interpreter() InterpreterState   { return m.interpreter }
func (m *Map) Message() MessageState          { return m.message }
func (m *Map) Audio() SEPlayer                { return m.audio }
func (m *Map) RNG() *vmath.FastRand           { return m.rng }

// Tick advances every character on the map by one logical frame, in the
// fixed order characters were added (spec.md 5, "ordering guarantees").
// The hero is always advanced first, matching the original engine's
// Game_Player::Update() running before Game_Map::Update() walks events.
func (m *Map) Tick() {
	UpdateCharacter(m, m.hero)
	for _, id := range m.order {
		if id == m.hero.ID {
			continue
		}
		c := m.characters[id]
		UpdateCharacter(m, c)
	}
}
