package world

import "math"

// Pose is the viewer's position, eye height and facing.
// X and Y are grid-space coordinates; Angle is in radians and need not be
// normalised.
type Pose struct {
	X, Y           float64
	VerticalOffset float64
	Angle          float64
}

// Cell returns the grid cell containing the pose.
func (p Pose) Cell() (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

// Direction returns the unit facing vector.
func (p Pose) Direction() (float64, float64) {
	return math.Cos(p.Angle), math.Sin(p.Angle)
}
