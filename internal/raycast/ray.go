package raycast

import (
	"math"

	"github.com/samdwyer/raycaster/internal/world"
)

const (
	// FOV is the horizontal field of view (60 degrees).
	FOV = math.Pi / 3
	// StepSize is the distance a ray advances per march step.
	StepSize = 0.05
	// MaxDistance is the render range; rays stop once they travel this far.
	MaxDistance = 20.0
	// HeightScale converts world heights into screen rows.
	HeightScale = 10.0
)

// Termination is why a ray stopped marching.
type Termination int

const (
	// HitWall means the ray entered a tile with a positive wall height.
	HitWall Termination = iota
	// OutOfBounds means the ray left the grid.
	OutOfBounds
	// RangeExceeded means the ray travelled MaxDistance without hitting.
	RangeExceeded
)

// String returns a human-readable termination name.
func (t Termination) String() string {
	switch t {
	case HitWall:
		return "hit_wall"
	case OutOfBounds:
		return "out_of_bounds"
	case RangeExceeded:
		return "range_exceeded"
	default:
		return "unknown"
	}
}

// Ray is the outcome of marching one screen column.
type Ray struct {
	Angle       float64
	Distance    float64 // accumulated march distance at termination
	CellX       int     // last sampled cell
	CellY       int
	Tile        world.Tile // the wall tile; zero unless Termination is HitWall
	Eye         float64    // pose vertical offset the ray was cast from
	Termination Termination
}

// Hit returns true if the ray stopped on a wall.
func (r Ray) Hit() bool {
	return r.Termination == HitWall
}

// columnAngle returns the ray angle for column i of a surface width wide.
func columnAngle(facing float64, i, width int) float64 {
	return facing - FOV/2 + (float64(i)/float64(width))*FOV
}

// march steps from the pose along angle until a wall, the grid edge or the
// render range stops it.
func march(g *world.Grid, pose world.Pose, angle float64) Ray {
	r := Ray{Angle: angle, Eye: pose.VerticalOffset, Termination: RangeExceeded}
	dx, dy := math.Cos(angle), math.Sin(angle)
	x, y := pose.X, pose.Y

	for r.Distance < MaxDistance {
		x += StepSize * dx
		y += StepSize * dy
		r.Distance += StepSize

		r.CellX, r.CellY = int(math.Floor(x)), int(math.Floor(y))
		if !g.InBounds(r.CellX, r.CellY) {
			r.Termination = OutOfBounds
			return r
		}
		if tile := g.At(r.CellX, r.CellY); tile.IsSolid() {
			r.Tile = tile
			r.Termination = HitWall
			return r
		}
	}
	return r
}

// Span is the vertical projection of a ray onto a column of a given height.
// Rows in [Top, Bottom] are wall, rows below Bottom are floor and rows above
// Top are ceiling.
type Span struct {
	WallPixelHeight float64
	FloorY          float64
	CeilingY        float64
	Top             float64
	Bottom          float64
}

// Project maps the ray onto a column height rows tall. For misses the span
// is empty and the horizon splits ceiling from floor.
func (r Ray) Project(height int) Span {
	h := float64(height)
	if !r.Hit() {
		return Span{FloorY: h / 2, CeilingY: h / 2, Top: math.Inf(1), Bottom: h / 2}
	}

	s := Span{
		WallPixelHeight: math.Min(h, (h/r.Distance)*r.Tile.WallHeight*2),
		FloorY:          h/2 + (r.Eye-r.Tile.FloorHeight)*HeightScale,
		CeilingY:        h/2 - (r.Tile.CeilingHeight-r.Eye)*HeightScale,
	}
	s.Top = math.Max(0, s.CeilingY)
	s.Bottom = math.Min(h, s.FloorY)
	return s
}

// Clip narrows the wall band to the perspective wall height centred on the
// horizon.
func (s Span) Clip(height int) Span {
	half := float64(height) / 2
	s.Top = math.Max(s.Top, half-s.WallPixelHeight/2)
	s.Bottom = math.Min(s.Bottom, half+s.WallPixelHeight/2)
	return s
}

// Color classifies row y of the span.
func (s Span) Color(y int) ColorIndex {
	fy := float64(y)
	switch {
	case fy >= s.Top && fy <= s.Bottom:
		return ColorWall
	case fy > s.Bottom:
		return ColorFloor
	default:
		return ColorCeiling
	}
}

// WallRows returns how many rows of a column height rows tall are wall.
func (s Span) WallRows(height int) int {
	n := 0
	for y := 0; y < height; y++ {
		if s.Color(y) == ColorWall {
			n++
		}
	}
	return n
}
