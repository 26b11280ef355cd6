package engine

import "github.com/lixenwraith/mapcore/component"

// RealX/RealY return a character's subpixel position in world space
// (spec.md 4.6): ordinarily the destination tile interpolated back by
// remaining_step along whichever axis the character is stepping into it
// from, but while jumping the interpolation runs the full distance from
// jump_x/jump_y (the takeoff tile) instead of one step's delta, since a
// jump's displacement can span several tiles.
func RealX(c *component.Character) int {
	if c.Jumping {
		return c.X*component.ScreenTileWidth - (c.X-c.JumpX)*c.RemainingStep
	}
	dx, _ := c.Direction.Delta()
	return c.X*component.ScreenTileWidth - dx*c.RemainingStep
}

func RealY(c *component.Character) int {
	if c.Jumping {
		return c.Y*component.ScreenTileWidth - (c.Y-c.JumpY)*c.RemainingStep
	}
	_, dy := c.Direction.Delta()
	return c.Y*component.ScreenTileWidth - dy*c.RemainingStep
}

// wrapPixels brings v into [0,span) on a looping axis, the same
// non-negative modulo RoundX/RoundY use for tile coordinates (map.go),
// applied here to screen pixels (spec.md 4.6, `original_source/src/
// game_character.cpp` `GetScreenX`/`GetScreenY`, ~lines 151-168).
func wrapPixels(v, span int) int {
	return ((v % span) + span) % span
}

// ScreenX projects a character's subpixel position into pixel screen
// space relative to the map's display offset (spec.md 4.6), wrapping
// around looping map edges.
func ScreenX(m *Map, c *component.Character) int {
	x := RealX(c)/component.TileSize - m.DisplayX()/component.TileSize + component.TileSize/2
	if m.LoopHorizontal() {
		x = wrapPixels(x, m.Width()*component.TileSize)
	}
	return x
}

// ScreenY is ScreenX's vertical counterpart, additionally deducting the
// jump arc's lift (see jumpArcDeduction) while a character is mid-jump.
func ScreenY(m *Map, c *component.Character) int {
	y := RealY(c)/component.TileSize - m.DisplayY()/component.TileSize + component.TileSize
	if m.LoopVertical() {
		y = wrapPixels(y, m.Height()*component.TileSize)
	}
	return y - jumpArcDeduction(c)
}

// jumpArcDeduction computes the pixel lift a jumping character's sprite
// rises by this tick, derived from how far into the arc remaining_step
// currently is (spec.md 4.6): the lift grows from both ends toward the
// jump's midpoint, then is remapped through a small non-linear table
// rather than scaled directly, matching the original engine's hand-tuned
// arc rather than a true parabola.
func jumpArcDeduction(c *component.Character) int {
	if !c.Jumping {
		return 0
	}
	rs := c.RemainingStep
	var base int
	if rs > component.ScreenTileWidth/2 {
		base = component.ScreenTileWidth - rs
	} else {
		base = rs
	}
	h := base / 8
	switch {
	case h < 5:
		return 2 * h
	case h < 13:
		return h + 4
	default:
		return 16
	}
}

// ScreenZ returns the layer-ordered draw priority for a character
// (spec.md 4.6): a y-sorted depth derived from real_y, biased by the
// character's layer class relative to the tile, clamped to never draw
// below the map's base layer.
func ScreenZ(m *Map, c *component.Character) int {
	z := (RealY(c)-m.DisplayY()+3)/component.TileSize + component.ScreenTileWidth/component.TileSize
	if z < 0 {
		z += m.Height() * component.TileSize
	}
	switch c.Layer {
	case component.LayerBelow:
		z -= component.TileSize
	case component.LayerAbove:
		z += component.TileSize
	}
	if z < 1 {
		z = 1
	}
	return z - 1
}
