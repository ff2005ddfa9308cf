package entity

import (
	"math"
	"testing"

	"github.com/samdwyer/raycaster/internal/world"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func stairGrid(t *testing.T) *world.Grid {
	t.Helper()
	tiles := world.Fill(4, 1, world.TileOpen)
	tiles[1][0] = world.Tile{CeilingHeight: 2, Stair: world.StairOf(0.5)}
	tiles[2][0] = world.Tile{FloorHeight: 1, CeilingHeight: 2}
	tiles[3][0] = world.TileWall
	return world.MustNewGrid(tiles)
}

func TestPlayerTurn(t *testing.T) {
	p := NewPlayer(world.Pose{})
	p.Turn(math.Pi / 2)
	p.Turn(math.Pi / 2)

	if !near(p.Pose().Angle, math.Pi) {
		t.Errorf("Angle = %v, want pi", p.Pose().Angle)
	}
}

func TestPlayerWalkFollowsTerrain(t *testing.T) {
	g := stairGrid(t)
	p := NewPlayer(world.Pose{X: 0.5, Y: 0.5})

	tests := []struct {
		stride  float64
		x       float64
		eyeWant float64
	}{
		{1, 1.5, 0.5}, // onto the stair
		{1, 2.5, 1},   // onto the raised floor
		{1, 3.5, 1},   // into the wall: no collision, eye keeps wall floor + lift
		{-3, 0.5, 0},  // back to the start
	}

	for i, tt := range tests {
		p.Walk(g, tt.stride)
		pose := p.Pose()
		if !near(pose.X, tt.x) || !near(pose.Y, 0.5) {
			t.Errorf("step %d: position = (%v,%v), want (%v,0.5)", i, pose.X, pose.Y, tt.x)
		}
		if i == 2 {
			continue
		}
		if !near(pose.VerticalOffset, tt.eyeWant) {
			t.Errorf("step %d: VerticalOffset = %v, want %v", i, pose.VerticalOffset, tt.eyeWant)
		}
	}
}

func TestPlayerStrafe(t *testing.T) {
	p := NewPlayer(world.Pose{X: 1, Y: 1})
	p.Strafe(nil, 1)

	x, y := p.Position()
	if !near(x, 1) || !near(y, 2) {
		t.Errorf("strafe right from facing +x = (%v,%v), want (1,2)", x, y)
	}
}

func TestPlayerLiftSurvivesWalking(t *testing.T) {
	g := stairGrid(t)
	p := NewPlayer(world.Pose{X: 0.5, Y: 0.5})

	p.Lift(0.3)
	if !near(p.Pose().VerticalOffset, 0.3) {
		t.Fatalf("VerticalOffset after lift = %v, want 0.3", p.Pose().VerticalOffset)
	}

	p.Walk(g, 2)
	if !near(p.Pose().VerticalOffset, 1.3) {
		t.Errorf("VerticalOffset on raised floor = %v, want 1.3", p.Pose().VerticalOffset)
	}

	p.Place(world.Pose{X: 0.5, Y: 0.5})
	p.Walk(g, 0)
	if !near(p.Pose().VerticalOffset, 0) {
		t.Errorf("VerticalOffset after Place = %v, want 0", p.Pose().VerticalOffset)
	}
}
