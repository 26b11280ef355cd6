package engine

import "github.com/lixenwraith/mapcore/component"

// edgeMask is a per-tile bitmask of which cardinal edges may be crossed.
// Bit i (i = int(component.Up)..int(component.Left)) set means the tile's
// edge on that side does not block a character from crossing it — used
// both when leaving a tile toward a direction and when entering a tile
// from the opposite direction (spec.md 4.5).
type edgeMask uint8

const allEdgesPassable edgeMask = 0b1111

func (m edgeMask) open(d component.Direction) bool {
	return m&(1<<uint(d)) != 0
}

// Terrain is the passability/landability layer a Map consults. Loading a
// terrain from map data files is out of scope (spec.md 1); this type is
// populated directly (by a fixture loader, or by tests) via the Set*
// methods.
type Terrain struct {
	width, height int
	edges         []edgeMask
	landable      []bool
	bushDepth     []int
}

// NewTerrain returns a width x height terrain with every tile fully
// passable and landable, matching the original engine's default when no
// tile-level passability data overrides it.
func NewTerrain(width, height int) *Terrain {
	edges := make([]edgeMask, width*height)
	landable := make([]bool, width*height)
	for i := range edges {
		edges[i] = allEdgesPassable
		landable[i] = true
	}
	return &Terrain{width: width, height: height, edges: edges, landable: landable, bushDepth: make([]int, width*height)}
}

func (t *Terrain) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return 0, false
	}
	return y*t.width + x, true
}

// SetEdgeBlocked marks a tile's edge in direction d as blocking crossing.
func (t *Terrain) SetEdgeBlocked(x, y int, d component.Direction, blocked bool) {
	i, ok := t.index(x, y)
	if !ok {
		return
	}
	if blocked {
		t.edges[i] &^= 1 << uint(d)
	} else {
		t.edges[i] |= 1 << uint(d)
	}
}

// SetLandable overrides a tile's landability (begin_jump target checks).
func (t *Terrain) SetLandable(x, y int, landable bool) {
	if i, ok := t.index(x, y); ok {
		t.landable[i] = landable
	}
}

// SetBushDepth sets the sprite-offset depth a renderer (out of scope) would
// apply for a character standing on this tile (spec.md 11).
func (t *Terrain) SetBushDepth(x, y, depth int) {
	if i, ok := t.index(x, y); ok {
		t.bushDepth[i] = depth
	}
}

// CanLeave reports whether a character may cross this tile's edge toward d.
func (t *Terrain) CanLeave(x, y int, d component.Direction) bool {
	i, ok := t.index(x, y)
	if !ok {
		return false
	}
	return t.edges[i].open(d)
}

// CanEnter reports whether a character may cross into this tile from the
// direction it is arriving from (fromDir is the direction of travel, so
// the edge consulted is the tile's edge facing back the way it came).
func (t *Terrain) CanEnter(x, y int, fromDir component.Direction) bool {
	i, ok := t.index(x, y)
	if !ok {
		return false
	}
	return t.edges[i].open(fromDir.Opposite())
}

// Landable reports a tile's jump-landing eligibility.
func (t *Terrain) Landable(x, y int) bool {
	i, ok := t.index(x, y)
	if !ok {
		return false
	}
	return t.landable[i]
}

// BushDepth returns the sprite-offset depth for a tile.
func (t *Terrain) BushDepth(x, y int) int {
	i, ok := t.index(x, y)
	if !ok {
		return 0
	}
	return t.bushDepth[i]
}
