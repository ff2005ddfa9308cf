// Package world provides the tile grid, the viewer pose and map generation.
package world

// Stair is an optional elevation delta carried by a tile.
// The zero value means the tile is not a stair.
type Stair struct {
	Delta   float64
	Present bool
}

// StairOf returns a present stair with the given delta.
func StairOf(delta float64) Stair {
	return Stair{Delta: delta, Present: true}
}

// Tile is one cell of the world grid.
type Tile struct {
	WallHeight    float64 // 0 means passable, anything above is solid
	FloorHeight   float64
	CeilingHeight float64
	Stair         Stair
}

// Common tiles used by generators and tests.
var (
	// TileOpen is a passable cell with the floor at 0 and the ceiling at 1.
	TileOpen = Tile{CeilingHeight: 1}
	// TileWall is a solid cell of unit height.
	TileWall = Tile{WallHeight: 1, CeilingHeight: 1}
)

// IsSolid returns true if the tile stops a ray.
func (t Tile) IsSolid() bool {
	return t.WallHeight > 0
}

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return !t.IsSolid()
}

// EyeLevel returns the elevation of an observer standing on the tile.
// Stairs raise or lower the observer by their delta.
func (t Tile) EyeLevel() float64 {
	if t.Stair.Present {
		return t.FloorHeight + t.Stair.Delta
	}
	return t.FloorHeight
}
