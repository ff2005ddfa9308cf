// Package entity provides the viewer-controlled player.
package entity

import (
	"math"

	"github.com/samdwyer/raycaster/internal/world"
)

const (
	// DefaultStride is how far one step moves the player.
	DefaultStride = 0.25
	// DefaultTurn is how far one turn rotates the player, in radians.
	DefaultTurn = math.Pi / 24
	// DefaultLift is how far one lift changes the eye offset.
	DefaultLift = 0.1
)

// Player owns the pose the scene is rendered from.
// Movement does not collide with walls.
type Player struct {
	pose world.Pose
	lift float64 // manual eye adjustment on top of the tile's eye level
}

// NewPlayer creates a player at the given pose.
func NewPlayer(pose world.Pose) *Player {
	return &Player{pose: pose}
}

// Pose returns the current pose.
func (p *Player) Pose() world.Pose {
	return p.pose
}

// Turn rotates by delta radians.
func (p *Player) Turn(delta float64) {
	p.pose.Angle += delta
}

// Walk moves forward (positive) or backward (negative) along the facing
// and settles the eye on the tile underneath.
func (p *Player) Walk(g *world.Grid, distance float64) {
	dx, dy := p.pose.Direction()
	p.moveBy(g, dx*distance, dy*distance)
}

// Strafe moves sideways; positive is to the right of the facing.
func (p *Player) Strafe(g *world.Grid, distance float64) {
	dx, dy := p.pose.Direction()
	p.moveBy(g, -dy*distance, dx*distance)
}

// Lift raises or lowers the eye relative to the ground.
func (p *Player) Lift(delta float64) {
	p.lift += delta
	p.pose.VerticalOffset += delta
}

// Place moves the player to a new pose, clearing any manual lift.
func (p *Player) Place(pose world.Pose) {
	p.pose = pose
	p.lift = 0
}

// Position returns the current x, y coordinates.
func (p *Player) Position() (float64, float64) {
	return p.pose.X, p.pose.Y
}

func (p *Player) moveBy(g *world.Grid, dx, dy float64) {
	p.pose.X += dx
	p.pose.Y += dy
	if g == nil {
		return
	}
	cx, cy := p.pose.Cell()
	if g.InBounds(cx, cy) {
		p.pose.VerticalOffset = g.At(cx, cy).EyeLevel() + p.lift
	}
}
