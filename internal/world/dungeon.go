package world

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/raycaster/internal/telemetry"
)

const (
	// Default dungeon dimensions
	DefaultWidth  = 48
	DefaultHeight = 48

	// BSP parameters
	minRoomSize = 4  // Minimum room dimension
	maxRoomSize = 10 // Maximum room dimension
	minLeafSize = 8  // Minimum BSP leaf size before stopping split
)

// Height profiles rooms are drawn from.
var (
	roomFloors   = []float64{0, 0, 0.5, -0.5, 1}
	roomCeilings = []float64{1, 1.5, 2, 3}
	wallHeights  = []float64{1, 1, 1.5, 2}
)

// Dungeon is a BSP-generated map with varied wall, floor and ceiling heights.
// Cells are indexed [x][y] to match Grid.
type Dungeon struct {
	Width  int
	Height int
	Cells  [][]Tile
	Rooms  []Room
	rng    *rand.Rand
}

// NewDungeon creates a new dungeon filled with walls.
// A nil rng seeds one from the clock.
func NewDungeon(width, height int, rng *rand.Rand) *Dungeon {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Dungeon{
		Width:  width,
		Height: height,
		Cells:  Fill(width, height, TileWall),
		Rooms:  make([]Room, 0),
		rng:    rng,
	}
}

// Generate creates the dungeon layout using BSP algorithm.
func (d *Dungeon) Generate(ctx context.Context) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	// Start BSP with the entire dungeon as root
	root := &bspNode{
		x:      1,
		y:      1,
		width:  d.Width - 2,
		height: d.Height - 2,
	}

	d.splitNode(root)
	d.createRooms(root)
	d.connectRooms(root)
	d.raiseWalls()
	stairs := d.placeStairs()

	span.SetAttributes(
		attribute.Int("dungeon.width", d.Width),
		attribute.Int("dungeon.height", d.Height),
		attribute.Int("dungeon.room_count", len(d.Rooms)),
		attribute.Int("dungeon.stair_count", stairs),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
}

// Grid returns a validated snapshot of the dungeon.
func (d *Dungeon) Grid() (*Grid, error) {
	return NewGrid(d.Cells)
}

// IsPassable returns true if the given position can be walked on.
func (d *Dungeon) IsPassable(x, y int) bool {
	return d.GetTile(x, y).IsPassable()
}

// GetTile returns the tile at the given position.
func (d *Dungeon) GetTile(x, y int) Tile {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return TileWall
	}
	return d.Cells[x][y]
}

// RoomIndexAt returns the index of the room containing the position, or -1 if not in a room.
func (d *Dungeon) RoomIndexAt(x, y int) int {
	for i, room := range d.Rooms {
		if room.Contains(x, y) {
			return i
		}
	}
	return -1
}

// SpawnPose returns a pose at the center of the first room, looking along +x.
// Without rooms it falls back to the middle of the map.
func (d *Dungeon) SpawnPose() Pose {
	cx, cy := d.Width/2, d.Height/2
	if len(d.Rooms) > 0 {
		cx, cy = d.Rooms[0].Center()
	}
	return Pose{
		X:              float64(cx) + 0.5,
		Y:              float64(cy) + 0.5,
		VerticalOffset: d.GetTile(cx, cy).EyeLevel(),
	}
}

// bspNode represents a node in the BSP tree.
type bspNode struct {
	x, y          int
	width, height int
	left, right   *bspNode
	room          *Room
}

// isLeaf returns true if this node has no children.
func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// splitNode recursively splits a BSP node.
func (d *Dungeon) splitNode(node *bspNode) {
	// Stop if too small to split
	if node.width < minLeafSize*2 && node.height < minLeafSize*2 {
		return
	}

	var splitHorizontally bool
	if node.width > node.height && node.width >= minLeafSize*2 {
		splitHorizontally = false
	} else if node.height >= minLeafSize*2 {
		splitHorizontally = true
	} else if node.width >= minLeafSize*2 {
		splitHorizontally = false
	} else {
		return
	}

	span := node.width
	if splitHorizontally {
		span = node.height
	}
	lo, hi := minLeafSize, span-minLeafSize
	if hi <= lo {
		return
	}
	splitPos := lo + d.rng.Intn(hi-lo+1)

	if splitHorizontally {
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPos}
		node.right = &bspNode{x: node.x, y: node.y + splitPos, width: node.width, height: node.height - splitPos}
	} else {
		node.left = &bspNode{x: node.x, y: node.y, width: splitPos, height: node.height}
		node.right = &bspNode{x: node.x + splitPos, y: node.y, width: node.width - splitPos, height: node.height}
	}

	d.splitNode(node.left)
	d.splitNode(node.right)
}

// createRooms creates rooms in leaf nodes of the BSP tree.
func (d *Dungeon) createRooms(node *bspNode) {
	if node == nil {
		return
	}

	if !node.isLeaf() {
		d.createRooms(node.left)
		d.createRooms(node.right)
		return
	}

	if node.width-minRoomSize+1 <= 0 || node.height-minRoomSize+1 <= 0 {
		return
	}
	roomWidth := minRoomSize + d.rng.Intn(min(maxRoomSize-minRoomSize+1, node.width-minRoomSize+1))
	roomHeight := minRoomSize + d.rng.Intn(min(maxRoomSize-minRoomSize+1, node.height-minRoomSize+1))

	// Ensure room fits within leaf
	roomWidth = min(roomWidth, node.width-2)
	roomHeight = min(roomHeight, node.height-2)
	if roomWidth < minRoomSize || roomHeight < minRoomSize {
		return
	}

	room := Room{
		X:             node.x + 1 + d.rng.Intn(node.width-roomWidth-1),
		Y:             node.y + 1 + d.rng.Intn(node.height-roomHeight-1),
		Width:         roomWidth,
		Height:        roomHeight,
		FloorHeight:   roomFloors[d.rng.Intn(len(roomFloors))],
		CeilingHeight: roomCeilings[d.rng.Intn(len(roomCeilings))],
	}
	// Keep headroom above raised floors.
	room.CeilingHeight += max(room.FloorHeight, 0)

	node.room = &room
	d.Rooms = append(d.Rooms, room)
	d.carveRoom(room)
}

// carveRoom sets all tiles within the room to the room's floor tile.
func (d *Dungeon) carveRoom(room Room) {
	for x := room.X; x < room.X+room.Width; x++ {
		for y := room.Y; y < room.Y+room.Height; y++ {
			d.carve(x, y, room.Tile())
		}
	}
}

// carve opens an interior cell; the outer border always stays solid.
func (d *Dungeon) carve(x, y int, t Tile) {
	if x > 0 && x < d.Width-1 && y > 0 && y < d.Height-1 {
		d.Cells[x][y] = t
	}
}

// connectRooms connects rooms with corridors.
func (d *Dungeon) connectRooms(node *bspNode) {
	if node == nil || node.isLeaf() {
		return
	}

	d.connectRooms(node.left)
	d.connectRooms(node.right)

	leftRoom := d.getRoom(node.left)
	rightRoom := d.getRoom(node.right)

	if leftRoom != nil && rightRoom != nil {
		d.carveCorridor(*leftRoom, *rightRoom)
	}
}

// getRoom returns a room from a subtree (any room will do).
func (d *Dungeon) getRoom(node *bspNode) *Room {
	if node == nil {
		return nil
	}
	if node.room != nil {
		return node.room
	}
	if room := d.getRoom(node.left); room != nil {
		return room
	}
	return d.getRoom(node.right)
}

// carveCorridor creates a corridor between two rooms.
// Corridors never overwrite room floors so room heights survive.
func (d *Dungeon) carveCorridor(room1, room2 Room) {
	x1, y1 := room1.Center()
	x2, y2 := room2.Center()

	if d.rng.Intn(2) == 0 {
		d.carveHorizontalTunnel(x1, x2, y1)
		d.carveVerticalTunnel(y1, y2, x2)
	} else {
		d.carveVerticalTunnel(y1, y2, x1)
		d.carveHorizontalTunnel(x1, x2, y2)
	}
}

func (d *Dungeon) carveHorizontalTunnel(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		d.carveCorridorCell(x, y)
	}
}

func (d *Dungeon) carveVerticalTunnel(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		d.carveCorridorCell(x, y)
	}
}

func (d *Dungeon) carveCorridorCell(x, y int) {
	if d.RoomIndexAt(x, y) >= 0 {
		return
	}
	d.carve(x, y, TileOpen)
}

// raiseWalls gives remaining solid cells a random height.
func (d *Dungeon) raiseWalls() {
	for x := range d.Cells {
		for y := range d.Cells[x] {
			if d.Cells[x][y].IsSolid() {
				d.Cells[x][y].WallHeight = wallHeights[d.rng.Intn(len(wallHeights))]
			}
		}
	}
}

// placeStairs marks corridor cells that step into a room at a different
// floor height. It returns the number of stairs placed.
func (d *Dungeon) placeStairs() int {
	count := 0
	neighbours := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for x := 1; x < d.Width-1; x++ {
		for y := 1; y < d.Height-1; y++ {
			cell := d.Cells[x][y]
			if cell.IsSolid() || d.RoomIndexAt(x, y) >= 0 {
				continue
			}
			for _, n := range neighbours {
				idx := d.RoomIndexAt(x+n[0], y+n[1])
				if idx < 0 || d.Rooms[idx].FloorHeight == cell.FloorHeight {
					continue
				}
				d.Cells[x][y].Stair = StairOf((d.Rooms[idx].FloorHeight - cell.FloorHeight) / 2)
				count++
				break
			}
		}
	}
	return count
}
