package world

import (
	"errors"
	"fmt"
)

// ErrInvalidGrid is returned when a tile table is empty or not rectangular.
var ErrInvalidGrid = errors.New("invalid grid")

// Grid is an immutable rectangular table of tiles indexed [x][y].
type Grid struct {
	width  int
	height int
	tiles  []Tile // column-major: tiles[x*height+y]
}

// NewGrid validates and copies the given table. The outer slice is the
// x dimension and every inner slice must have the same length.
// The caller keeps ownership of tiles; later changes to it are not seen.
func NewGrid(tiles [][]Tile) (*Grid, error) {
	if len(tiles) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrInvalidGrid)
	}
	height := len(tiles[0])
	if height == 0 {
		return nil, fmt.Errorf("%w: column 0 is empty", ErrInvalidGrid)
	}
	for x, column := range tiles {
		if len(column) != height {
			return nil, fmt.Errorf("%w: column %d has %d tiles, want %d", ErrInvalidGrid, x, len(column), height)
		}
	}

	g := &Grid{
		width:  len(tiles),
		height: height,
		tiles:  make([]Tile, 0, len(tiles)*height),
	}
	for _, column := range tiles {
		g.tiles = append(g.tiles, column...)
	}
	return g, nil
}

// MustNewGrid is like NewGrid but panics on invalid input.
func MustNewGrid(tiles [][]Tile) *Grid {
	g, err := NewGrid(tiles)
	if err != nil {
		panic(err)
	}
	return g
}

// Fill returns a width x height table where every cell is t.
func Fill(width, height int, t Tile) [][]Tile {
	tiles := make([][]Tile, width)
	for x := range tiles {
		tiles[x] = make([]Tile, height)
		for y := range tiles[x] {
			tiles[x][y] = t
		}
	}
	return tiles
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of tiles per column.
func (g *Grid) Height() int { return g.height }

// InBounds returns true if (x, y) addresses a tile.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the tile at (x, y). Out of range coordinates yield TileWall.
func (g *Grid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return TileWall
	}
	return g.tiles[x*g.height+y]
}

// Tiles returns a fresh [x][y] copy of the grid contents.
func (g *Grid) Tiles() [][]Tile {
	out := make([][]Tile, g.width)
	for x := range out {
		out[x] = make([]Tile, g.height)
		copy(out[x], g.tiles[x*g.height:(x+1)*g.height])
	}
	return out
}
