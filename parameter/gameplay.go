package parameter

// ScreenTileWidth subpixels make up one whole-tile step of remaining_step;
// TileSize is the pixel width/height of one tile (spec.md 4.6). Mirrors
// component.ScreenTileWidth/component.TileSize; the projection and
// locomotion math in engine/ uses the component constants.
const (
	ScreenTileWidth = 256
	TileSize        = 16
)

// Random self-move policy die size (spec.md 4.2, "switch (rand()%6)").
const SelfMoveDieSize = 6

// Distance threshold beyond which the toward/away-from-hero policies fall
// back to a random move instead of homing (spec.md 4.2).
const HeroChaseGiveUpDistance = 20
