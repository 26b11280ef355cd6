package component

// CharacterID identifies a character within a Map's arena. The hero
// occupies a reserved id (see engine.HeroID) so collaborators can address
// it without a cyclic Character-to-Character pointer.
type CharacterID uint32

// Role discriminates the hero/event/vehicle variants that the original
// engine modeled as a base-class hierarchy. A single struct plus this
// tag keeps the field layout uniform and lets callers switch on Role
// instead of on a type assertion.
type Role int

const (
	RoleEvent Role = iota
	RoleHero
	RoleBoat
	RoleShip
	RoleAirship
)

// SCREEN_TILE_WIDTH subpixels make up one whole-tile step of remaining_step;
// TileSize is the pixel width/height of one tile. Named per spec.md 4.6.
const (
	ScreenTileWidth = 256
	TileSize        = 16
)

// MoveHooks is the capability trait standing in for the per-role virtual
// methods the original engine's Game_Character subclasses (hero, event,
// vehicle) provided. move(dir) (spec.md 4.4) calls BeginMove after a
// successful step and CheckEventTriggerTouch, with the tile it failed to
// enter, after a blocked one; a Character with a nil Hooks runs the
// movement primitive with neither (spec.md 9, "Deep inheritance").
type MoveHooks interface {
	BeginMove()
	CheckEventTriggerTouch(x, y int)
}

// Character is the central simulation entity: the hero, a map event, or a
// vehicle. It is mutated only by its owning Map's tick, or by forced-route
// installation from the external event-command interpreter (spec.md 3).
type Character struct {
	ID    CharacterID
	Role  Role
	Hooks MoveHooks

	X, Y int // logical tile coords

	Direction       Direction
	SpriteDirection Direction
	FacingLocked    bool

	Pattern         Pattern
	LastPattern     Pattern // Left or Right only: which extreme was last visited
	OriginalPattern Pattern // rest frame to return to

	AnimationType AnimationType
	MoveType      MoveType
	MoveSpeed     int // 1..6
	MoveFrequency int // 1..8

	RemainingStep int // 0..ScreenTileWidth, subpixel progress of current step

	Jumping   bool
	JumpX     int
	JumpY     int
	JumpPlusX int
	JumpPlusY int

	AnimeCount    int
	StopCount     int
	MaxStopCount  int
	WaitCount     int
	WalkAnimation bool

	Through bool
	Opacity int // clamped to [0,255] on every write
	Visible bool

	MoveRoute              MoveRoute
	MoveRouteIndex         int
	OriginalMoveRoute      MoveRoute
	OriginalMoveRouteIndex int
	MoveRouteOverwritten   bool // true iff present in Map's pending-move registry
	MoveRouteRepeated      bool
	OriginalMoveFrequency  int
	MoveFailed             bool

	// CycleStat is the direction-flag used by the vertical/horizontal cycle
	// self-move policies: false means the "increasing" direction (Right or
	// Down), true means the "decreasing" direction (Left or Up).
	CycleStat bool

	SpriteName  string
	SpriteIndex int
	Layer       Layer
}

// NewCharacter returns a Character with the defaults the original engine
// assigns to a freshly constructed event: centered middle pattern, fully
// opaque, visible, and stopped.
func NewCharacter(id CharacterID, role Role, x, y int) *Character {
	return &Character{
		ID:              id,
		Role:            role,
		X:               x,
		Y:               y,
		Direction:       Down,
		SpriteDirection: Down,
		Pattern:         PatternMiddle,
		LastPattern:     PatternRight,
		OriginalPattern: PatternMiddle,
		MoveSpeed:       3,
		MoveFrequency:   3,
		WalkAnimation:   true,
		Opacity:         255,
		Visible:         true,
	}
}

// SetOpacity clamps v to [0,255] before storing it (spec.md 8, "Opacity
// clamp" law).
func (c *Character) SetOpacity(v int) {
	if v < 0 {
		v = 0
	} else if v > 255 {
		v = 255
	}
	c.Opacity = v
}

// IsMoving reports whether a whole-tile step is currently interpolating.
func (c *Character) IsMoving() bool {
	return c.RemainingStep > 0
}

// IsStopping is the negation of IsMoving, named to match the spec's
// vocabulary ("stopping" gates idle dispatch and pattern reset).
func (c *Character) IsStopping() bool {
	return !c.IsMoving()
}

// IsSpinning reports whether the animation type is the spin cycle.
func (c *Character) IsSpinning() bool {
	return c.AnimationType == AnimSpin
}

// ActiveRoute returns the move-command program currently driving the
// custom self-move policy: the forced route when one is overlaid,
// otherwise the character's original route.
func (c *Character) ActiveRoute() *MoveRoute {
	if c.MoveRouteOverwritten {
		return &c.MoveRoute
	}
	return &c.OriginalMoveRoute
}

// ActiveRouteIndex returns a pointer to the program counter of whichever
// route ActiveRoute names, so callers can advance it in place.
func (c *Character) ActiveRouteIndex() *int {
	if c.MoveRouteOverwritten {
		return &c.MoveRouteIndex
	}
	return &c.OriginalMoveRouteIndex
}
