// Package sprite resolves a Character's visual state into renderer-facing
// data: a semantic style class plus a concrete tcell.Style, the way the
// original engine separates "what the character looks like" from "how a
// terminal or graphics backend draws that." The simulation core itself
// never imports this package; a driver sitting between Map and a renderer
// calls Resolve once per character per frame (cmd/mapsim does not use it).
package sprite

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/mapcore/component"
)

// Class is the semantic style category a character's current state maps
// to, resolved to a concrete tcell.Style by a renderer rather than baked
// in at simulation time.
type Class uint8

const (
	ClassNormal Class = iota
	ClassTransparent
	ClassGhostThrough // Through enabled: renderer may draw a distinct outline
	ClassHidden       // Visible == false
)

// Glyph is the resolved per-character visual: which sheet cell to draw
// (Name/Index/Pattern/facing), at what opacity class, with a ready-to-use
// tcell.Style for any terminal-backed renderer or debug overlay.
type Glyph struct {
	Name      string
	Index     int
	Pattern   component.Pattern
	Facing    component.Direction
	Class     Class
	Style     tcell.Style
	Opacity   int
	DrawOrder int
}

// Resolve derives a Glyph from a character's current simulation state.
// screenZ is the caller's already-computed draw-order value (see
// engine.ScreenZ); keeping it a parameter instead of recomputing here
// lets callers batch projection and resolution independently.
func Resolve(c *component.Character, screenZ int) Glyph {
	class := ClassNormal
	switch {
	case !c.Visible:
		class = ClassHidden
	case c.Through:
		class = ClassGhostThrough
	case c.Opacity < 255:
		class = ClassTransparent
	}

	style := tcell.StyleDefault
	switch class {
	case ClassTransparent:
		style = style.Dim(true)
	case ClassGhostThrough:
		style = style.Italic(true)
	case ClassHidden:
		// renderer is expected to skip drawing entirely on ClassHidden;
		// the style is left at its default since nothing will consume it.
	}

	return Glyph{
		Name:      c.SpriteName,
		Index:     c.SpriteIndex,
		Pattern:   c.Pattern,
		Facing:    c.SpriteDirection,
		Class:     class,
		Style:     style,
		Opacity:   c.Opacity,
		DrawOrder: screenZ,
	}
}
