package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/mapcore/component"
)

// Fixture is a declarative scenario: map dimensions, terrain overrides,
// and a set of characters with their starting move routes. cmd/mapsim and
// package-level tests load these instead of hand-building Map/Character
// state for every scenario.
type Fixture struct {
	Width          int              `yaml:"width"`
	Height         int              `yaml:"height"`
	LoopHorizontal bool             `yaml:"loop_horizontal"`
	LoopVertical   bool             `yaml:"loop_vertical"`
	Seed           uint64           `yaml:"seed"`
	BlockedEdges   []BlockedEdge    `yaml:"blocked_edges"`
	Characters     []CharacterSpec  `yaml:"characters"`
}

// BlockedEdge marks one tile edge as impassable, the fixture-file
// equivalent of Terrain.SetEdgeBlocked.
type BlockedEdge struct {
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	Direction string `yaml:"direction"`
}

// CharacterSpec describes one character's starting state and, optionally,
// a move route authored as a list of command names.
type CharacterSpec struct {
	ID            uint32       `yaml:"id"`
	Role          string       `yaml:"role"`
	X             int          `yaml:"x"`
	Y             int          `yaml:"y"`
	Direction     string       `yaml:"direction"`
	MoveType      string       `yaml:"move_type"`
	MoveSpeed     int          `yaml:"move_speed"`
	MoveFrequency int          `yaml:"move_frequency"`
	SpriteName    string       `yaml:"sprite_name"`
	SpriteIndex   int          `yaml:"sprite_index"`
	Route         []RouteStep  `yaml:"route"`
	RouteRepeat   bool         `yaml:"route_repeat"`
	RouteSkip     bool         `yaml:"route_skippable"`
}

// RouteStep is one authored move-route command.
type RouteStep struct {
	Command    string `yaml:"command"`
	ParameterA int    `yaml:"a"`
	ParameterB int    `yaml:"b"`
	Parameter  string `yaml:"s"`
}

// LoadFixture reads and parses a YAML scenario file.
func LoadFixture(path string) (Fixture, error) {
	var f Fixture
	data, err := os.ReadFile(path)
	if err != nil {
		return f, errors.Wrapf(err, "config: read fixture %q", path)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, errors.Wrapf(err, "config: parse fixture %q", path)
	}
	return f, nil
}

var directionNames = map[string]component.Direction{
	"up": component.Up, "right": component.Right, "down": component.Down, "left": component.Left,
	"up_right": component.UpRight, "down_right": component.DownRight,
	"down_left": component.DownLeft, "up_left": component.UpLeft,
}

// Direction resolves a fixture's direction name, defaulting to Down for
// an empty or unrecognized string rather than erroring a whole load over
// one typo'd field.
func Direction(name string) component.Direction {
	if d, ok := directionNames[name]; ok {
		return d
	}
	return component.Down
}

var roleNames = map[string]component.Role{
	"event": component.RoleEvent, "hero": component.RoleHero,
	"boat": component.RoleBoat, "ship": component.RoleShip, "airship": component.RoleAirship,
}

// Role resolves a fixture's role name, defaulting to RoleEvent.
func Role(name string) component.Role {
	if r, ok := roleNames[name]; ok {
		return r
	}
	return component.RoleEvent
}

var moveTypeNames = map[string]component.MoveType{
	"stationary": component.MoveStationary, "random": component.MoveRandomPolicy,
	"vertical": component.MoveVertical, "horizontal": component.MoveHorizontal,
	"toward_hero": component.MoveToward, "away_from_hero": component.MoveAway,
	"custom": component.MoveCustom,
}

// MoveType resolves a fixture's move_type name, defaulting to MoveStationary.
func MoveType(name string) component.MoveType {
	if t, ok := moveTypeNames[name]; ok {
		return t
	}
	return component.MoveStationary
}

var commandNames = map[string]component.CommandID{
	"move_up": component.CmdMoveUp, "move_right": component.CmdMoveRight,
	"move_down": component.CmdMoveDown, "move_left": component.CmdMoveLeft,
	"move_up_right": component.CmdMoveUpRight, "move_down_right": component.CmdMoveDownRight,
	"move_down_left": component.CmdMoveDownLeft, "move_up_left": component.CmdMoveUpLeft,
	"move_random": component.CmdMoveRandom, "move_towards_hero": component.CmdMoveTowardsHero,
	"move_away_from_hero": component.CmdMoveAwayFromHero, "move_forward": component.CmdMoveForward,
	"face_up": component.CmdFaceUp, "face_right": component.CmdFaceRight,
	"face_down": component.CmdFaceDown, "face_left": component.CmdFaceLeft,
	"turn_90_right": component.CmdTurn90Right, "turn_90_left": component.CmdTurn90Left,
	"turn_180": component.CmdTurn180, "turn_90_random": component.CmdTurn90Random,
	"face_random_direction": component.CmdFaceRandomDirection, "face_hero": component.CmdFaceHero,
	"face_away_from_hero": component.CmdFaceAwayFromHero, "wait": component.CmdWait,
	"begin_jump": component.CmdBeginJump, "end_jump": component.CmdEndJump,
	"lock_facing": component.CmdLockFacing, "unlock_facing": component.CmdUnlockFacing,
	"increase_movement_speed": component.CmdIncreaseMovementSpeed,
	"decrease_movement_speed": component.CmdDecreaseMovementSpeed,
	"increase_movement_frequency": component.CmdIncreaseMovementFrequency,
	"decrease_movement_frequency": component.CmdDecreaseMovementFrequency,
	"switch_on": component.CmdSwitchOn, "switch_off": component.CmdSwitchOff,
	"change_graphic": component.CmdChangeGraphic, "play_sound_effect": component.CmdPlaySoundEffect,
	"walk_everywhere_on": component.CmdWalkEverywhereOn, "walk_everywhere_off": component.CmdWalkEverywhereOff,
	"stop_animation": component.CmdStopAnimation, "start_animation": component.CmdStartAnimation,
	"increase_transparency": component.CmdIncreaseTransparency,
	"decrease_transparency": component.CmdDecreaseTransparency,
}

// Command resolves a fixture's command name to a CommandID, and reports
// whether the name was recognized so a loader can reject malformed
// fixture data instead of silently building a no-op route (spec.md 9,
// Open Question on invalid codes extended to fixture authoring).
func Command(name string) (component.CommandID, bool) {
	id, ok := commandNames[name]
	return id, ok
}

// BuildRoute converts authored RouteSteps into a component.MoveRoute,
// rejecting any step whose command name doesn't resolve.
func BuildRoute(steps []RouteStep, repeat, skippable bool) (component.MoveRoute, error) {
	route := component.MoveRoute{Repeat: repeat, Skippable: skippable}
	for i, step := range steps {
		id, ok := Command(step.Command)
		if !ok {
			return route, errors.Errorf("config: unrecognized move command %q at step %d", step.Command, i)
		}
		route.Commands = append(route.Commands, component.MoveCommand{
			ID: id, ParameterA: step.ParameterA, ParameterB: step.ParameterB, ParameterString: step.Parameter,
		})
	}
	return route, nil
}
