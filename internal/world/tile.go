// Package world provides the tile map the viewer walks through and the
// static wall colliders derived from it.
package world

// Tile represents a single map cell.
type Tile rune

const (
	// TileWall represents a solid wall cell.
	TileWall Tile = '#'
	// TileFloor represents an open floor cell.
	TileFloor Tile = '.'
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t == TileFloor
}

// Rune returns the tile's map character.
func (t Tile) Rune() rune {
	return rune(t)
}

// String returns a human-readable tile name.
func (t Tile) String() string {
	switch t {
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	default:
		return "unknown"
	}
}

// parseTile maps a map character to its tile.
func parseTile(r rune) (Tile, bool) {
	switch Tile(r) {
	case TileWall, TileFloor:
		return Tile(r), true
	}
	return 0, false
}
