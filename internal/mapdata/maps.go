package mapdata

import (
	"errors"
	"fmt"

	"github.com/samdwyer/raycaster/internal/world"
)

// ErrInvalidMap is returned for map files that cannot produce a grid.
var ErrInvalidMap = errors.New("invalid map")

// TileDef describes one legend entry of a map file.
type TileDef struct {
	Wall    float64  `json:"wall"`            // Wall height, 0 for open cells
	Floor   float64  `json:"floor"`           // Floor elevation
	Ceiling float64  `json:"ceiling"`         // Ceiling elevation
	Stair   *float64 `json:"stair,omitempty"` // Optional stair delta
}

// Tile converts the definition into a world tile.
func (d TileDef) Tile() world.Tile {
	t := world.Tile{
		WallHeight:    d.Wall,
		FloorHeight:   d.Floor,
		CeilingHeight: d.Ceiling,
	}
	if d.Stair != nil {
		t.Stair = world.StairOf(*d.Stair)
	}
	return t
}

// SpawnDef is the starting pose of a map. Eye height comes from the tile.
type SpawnDef struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

// MapDef is a map file. Rows are listed top to bottom; each glyph is looked
// up in Legend. rows[y][x] becomes tile (x, y).
type MapDef struct {
	ID     string             `json:"id"`
	Name   string             `json:"name"`
	Spawn  SpawnDef           `json:"spawn"`
	Legend map[string]TileDef `json:"legend"`
	Rows   []string           `json:"rows"`
}

// Tiles transposes the rows into an [x][y] table.
func (m *MapDef) Tiles() ([][]world.Tile, error) {
	if len(m.Rows) == 0 {
		return nil, fmt.Errorf("%w %q: no rows", ErrInvalidMap, m.ID)
	}

	width := len([]rune(m.Rows[0]))
	if width == 0 {
		return nil, fmt.Errorf("%w %q: row 0 is empty", ErrInvalidMap, m.ID)
	}

	tiles := make([][]world.Tile, width)
	for x := range tiles {
		tiles[x] = make([]world.Tile, len(m.Rows))
	}

	for y, row := range m.Rows {
		glyphs := []rune(row)
		if len(glyphs) != width {
			return nil, fmt.Errorf("%w %q: row %d has %d cells, want %d", ErrInvalidMap, m.ID, y, len(glyphs), width)
		}
		for x, g := range glyphs {
			def, ok := m.Legend[string(g)]
			if !ok {
				return nil, fmt.Errorf("%w %q: unknown glyph %q at (%d,%d)", ErrInvalidMap, m.ID, g, x, y)
			}
			tiles[x][y] = def.Tile()
		}
	}
	return tiles, nil
}

// Build produces the grid and the spawn pose.
func (m *MapDef) Build() (*world.Grid, world.Pose, error) {
	tiles, err := m.Tiles()
	if err != nil {
		return nil, world.Pose{}, err
	}
	grid, err := world.NewGrid(tiles)
	if err != nil {
		return nil, world.Pose{}, fmt.Errorf("map %q: %w", m.ID, err)
	}

	pose := world.Pose{X: m.Spawn.X, Y: m.Spawn.Y, Angle: m.Spawn.Angle}
	cx, cy := pose.Cell()
	if !grid.InBounds(cx, cy) {
		return nil, world.Pose{}, fmt.Errorf("%w %q: spawn (%v,%v) outside %dx%d", ErrInvalidMap, m.ID, m.Spawn.X, m.Spawn.Y, grid.Width(), grid.Height())
	}
	spawnTile := grid.At(cx, cy)
	if spawnTile.IsSolid() {
		return nil, world.Pose{}, fmt.Errorf("%w %q: spawn (%v,%v) is inside a wall", ErrInvalidMap, m.ID, m.Spawn.X, m.Spawn.Y)
	}
	pose.VerticalOffset = spawnTile.EyeLevel()

	return grid, pose, nil
}

// LoadMap loads maps/<id>.json from the embedded library.
func LoadMap(id string) (*MapDef, error) {
	def, err := Load[MapDef]("maps/" + id + ".json")
	if err != nil {
		return nil, err
	}
	if def.ID == "" {
		def.ID = id
	}
	return &def, nil
}

// MustLoadMap loads a map, panicking on error.
func MustLoadMap(id string) *MapDef {
	def, err := LoadMap(id)
	if err != nil {
		panic(err)
	}
	return def
}
