package parameter

import "time"

// Game Loop & Engine Timing
const (
	// TickRate is the nominal logical update rate the whole simulation is
	// specified against (spec.md 2).
	TickRate = 60

	// TickInterval is the wall-clock period of one logical tick at TickRate.
	TickInterval = time.Second / TickRate
)

// Character tuning bounds (spec.md 3)
const (
	MinMoveSpeed     = 1
	MaxMoveSpeed     = 6
	MinMoveFrequency = 1
	MaxMoveFrequency = 8
)

// WaitTicks is the number of ticks the `wait` move command adds to
// wait_count (spec.md 4.3).
const WaitTicks = 20

// MinOpacity/MaxOpacity bound Character.Opacity (spec.md 3, 8).
const (
	MinOpacity = 0
	MaxOpacity = 255
)

// Transparency step deltas for the increase_transp/decrease_transp move
// commands (spec.md 4.3).
const (
	TranspStep   = 45
	MinTranspVia = 40 // floor increase_transp settles at, not a hard clamp
)
