package raycast

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/raycaster/internal/telemetry"
	"github.com/samdwyer/raycaster/internal/world"
)

// Options tune projection.
type Options struct {
	// ClipToWallHeight bounds the wall band by the perspective wall height.
	// When false the band spans from the ceiling line to the floor line only.
	ClipToWallHeight bool
}

// Scene holds the current grid and pose and renders them. The zero value is
// ready to use. Setters and Render may be called from different goroutines;
// every Render sees one consistent grid and pose.
type Scene struct {
	mu      sync.RWMutex
	grid    *world.Grid
	pose    world.Pose
	hasPose bool
	opts    Options
}

// NewScene creates an empty scene with the given options.
func NewScene(opts Options) *Scene {
	return &Scene{opts: opts}
}

// SetGrid validates tiles and makes them the current grid.
// On error the previous grid is kept.
func (s *Scene) SetGrid(tiles [][]world.Tile) error {
	g, err := world.NewGrid(tiles)
	if err != nil {
		return err
	}
	return s.SetWorld(g)
}

// SetWorld makes an already built grid current.
func (s *Scene) SetWorld(g *world.Grid) error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", ErrInvalidGrid)
	}
	s.mu.Lock()
	s.grid = g
	s.mu.Unlock()
	return nil
}

// SetPose replaces the current pose.
func (s *Scene) SetPose(p world.Pose) {
	s.mu.Lock()
	s.pose = p
	s.hasPose = true
	s.mu.Unlock()
}

// SetOptions replaces the projection options.
func (s *Scene) SetOptions(opts Options) {
	s.mu.Lock()
	s.opts = opts
	s.mu.Unlock()
}

// Grid returns the current grid, or nil if none was set.
func (s *Scene) Grid() *world.Grid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid
}

// Pose returns the current pose and whether one was set.
func (s *Scene) Pose() (world.Pose, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pose, s.hasPose
}

// Options returns the projection options.
func (s *Scene) Options() Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}

type snapshot struct {
	grid *world.Grid
	pose world.Pose
	opts Options
}

func (s *Scene) snapshot() (snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.grid == nil || !s.hasPose {
		return snapshot{}, ErrNotInitialized
	}
	return snapshot{grid: s.grid, pose: s.pose, opts: s.opts}, nil
}

// Render repaints every pixel of dst with the view from the current pose.
func (s *Scene) Render(ctx context.Context, dst Surface) error {
	tracer := telemetry.Tracer("raycast")
	_, span := tracer.Start(ctx, "scene.render")
	defer span.End()

	snap, err := s.snapshot()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if dst == nil || dst.Width() < 1 || dst.Height() < 1 {
		err := ErrInvalidSurface
		if dst != nil {
			err = fmt.Errorf("%w: %dx%d", ErrInvalidSurface, dst.Width(), dst.Height())
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	width, height := dst.Width(), dst.Height()
	dst.Fill(ColorBackground)

	hits := 0
	for i := 0; i < width; i++ {
		ray := march(snap.grid, snap.pose, columnAngle(snap.pose.Angle, i, width))
		if ray.Hit() {
			hits++
		}
		band := ray.Project(height)
		if snap.opts.ClipToWallHeight {
			band = band.Clip(height)
		}
		for y := 0; y < height; y++ {
			dst.SetPixel(i, y, band.Color(y))
		}
	}

	span.SetAttributes(
		attribute.Int("surface.width", width),
		attribute.Int("surface.height", height),
		attribute.Int("grid.width", snap.grid.Width()),
		attribute.Int("grid.height", snap.grid.Height()),
		attribute.Int("render.hits", hits),
		attribute.Int("render.misses", width-hits),
		attribute.Bool("render.clip", snap.opts.ClipToWallHeight),
	)
	return nil
}

// CastColumn marches the ray for one column of a surface width pixels wide
// without drawing anything.
func (s *Scene) CastColumn(column, width int) (Ray, error) {
	snap, err := s.snapshot()
	if err != nil {
		return Ray{}, err
	}
	if width < 1 || column < 0 || column >= width {
		return Ray{}, fmt.Errorf("%w: column %d of width %d", ErrInvalidSurface, column, width)
	}
	return march(snap.grid, snap.pose, columnAngle(snap.pose.Angle, column, width)), nil
}
