package game

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/raycaster/internal/entity"
	"github.com/samdwyer/raycaster/internal/mapdata"
	"github.com/samdwyer/raycaster/internal/raycast"
	"github.com/samdwyer/raycaster/internal/telemetry"
	"github.com/samdwyer/raycaster/internal/ui"
	"github.com/samdwyer/raycaster/internal/world"
)

// Game holds the viewer state. It redraws only in response to input.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer
	scene    *raycast.Scene
	maps     *mapdata.MapRegistry
	rng      *rand.Rand
	player   *entity.Player
	mapID    string
	mapName  string
	mode     ViewMode
	running  bool
}

// New creates a viewer on the terminal.
func New(cfg Config) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	g, err := NewWithScreen(cfg, screen)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return g, nil
}

// NewWithScreen creates a viewer drawing to an existing screen.
func NewWithScreen(cfg Config, screen *ui.Screen) (*Game, error) {
	maps, err := mapdata.LoadMapRegistry()
	if err != nil {
		return nil, err
	}
	palette, err := mapdata.LoadPalette()
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Game{
		cfg:      cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen, palette),
		scene:    raycast.NewScene(raycast.Options{ClipToWallHeight: cfg.Clip}),
		maps:     maps,
		rng:      rand.New(rand.NewSource(seed)),
		player:   entity.NewPlayer(world.Pose{}),
		mode:     ModeView,
		running:  true,
	}, nil
}

// Run executes the main viewer loop.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	ctx, initSpan := tracer.Start(ctx, "game.init")
	err := g.loadMap(ctx, g.cfg.Map)
	initSpan.SetAttributes(
		attribute.String("map.id", g.cfg.Map),
		attribute.Bool("render.clip", g.cfg.Clip),
	)
	if err != nil {
		initSpan.RecordError(err)
	}
	initSpan.End()
	if err != nil {
		g.screen.Close()
		return err
	}

	for g.running {
		if err := g.draw(ctx); err != nil {
			g.screen.Close()
			return err
		}
		g.handleInput(ctx)
	}

	g.screen.Close()
	return nil
}

// loadMap makes the named map current and places the player at its spawn.
func (g *Game) loadMap(ctx context.Context, id string) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.load_map")
	defer span.End()

	var (
		grid *world.Grid
		pose world.Pose
		name string
	)
	if id == GeneratedMap {
		d := world.NewDungeon(g.cfg.DungeonWidth, g.cfg.DungeonHeight, g.rng)
		d.Generate(ctx)
		var err error
		if grid, err = d.Grid(); err != nil {
			return fmt.Errorf("generated map: %w", err)
		}
		pose = d.SpawnPose()
		name = fmt.Sprintf("Dungeon (%d rooms)", len(d.Rooms))
	} else {
		def := g.maps.GetByID(id)
		if def == nil {
			return fmt.Errorf("unknown map %q (have %v and %q)", id, g.maps.IDs(), GeneratedMap)
		}
		var err error
		if grid, pose, err = def.Build(); err != nil {
			return err
		}
		name = def.Name
	}

	if err := g.scene.SetWorld(grid); err != nil {
		return err
	}
	g.player.Place(pose)
	g.scene.SetPose(g.player.Pose())
	g.mapID = id
	g.mapName = name

	span.SetAttributes(
		attribute.String("map.id", id),
		attribute.Int("grid.width", grid.Width()),
		attribute.Int("grid.height", grid.Height()),
	)
	return nil
}

// nextMapID cycles through the embedded maps and then a generated dungeon.
func (g *Game) nextMapID() string {
	ids := append(g.maps.IDs(), GeneratedMap)
	for i, id := range ids {
		if id == g.mapID {
			return ids[(i+1)%len(ids)]
		}
	}
	return ids[0]
}

// draw renders the current pose and presents it.
func (g *Game) draw(ctx context.Context) error {
	frame := g.renderer.Frame()
	err := g.scene.Render(ctx, frame)
	if errors.Is(err, raycast.ErrInvalidSurface) {
		// Terminal too small for a view; keep the status line.
		frame = nil
	} else if err != nil {
		return err
	}

	g.renderer.Present(ui.View{
		Frame:       frame,
		Grid:        g.scene.Grid(),
		Pose:        g.player.Pose(),
		ShowMinimap: g.mode == ModeMinimap,
		Status:      g.status(),
	})
	return nil
}

// status builds the bottom line.
func (g *Game) status() string {
	pose := g.player.Pose()
	degrees := math.Mod(pose.Angle*180/math.Pi, 360)
	if degrees < 0 {
		degrees += 360
	}
	return fmt.Sprintf("%s  x=%.2f y=%.2f eye=%.2f %3.0f°  clip=%v  wasd/arrows pgup/pgdn m c n q",
		g.mapName, pose.X, pose.Y, pose.VerticalOffset, degrees, g.scene.Options().ClipToWallHeight)
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.apply(ctx, keyAction(ev.Key(), ev.Rune()))
	case *tcell.EventResize:
		g.screen.Sync()
		g.renderer.Invalidate()
	case nil:
		// Screen finalized.
		g.running = false
	}
}

// apply performs an action and pushes the resulting pose to the scene.
func (g *Game) apply(ctx context.Context, a Action) {
	grid := g.scene.Grid()

	switch a {
	case ActionQuit:
		g.running = false
	case ActionForward:
		g.player.Walk(grid, entity.DefaultStride)
	case ActionBack:
		g.player.Walk(grid, -entity.DefaultStride)
	case ActionTurnLeft:
		g.player.Turn(-entity.DefaultTurn)
	case ActionTurnRight:
		g.player.Turn(entity.DefaultTurn)
	case ActionStrafeLeft:
		g.player.Strafe(grid, -entity.DefaultStride)
	case ActionStrafeRight:
		g.player.Strafe(grid, entity.DefaultStride)
	case ActionRaise:
		g.player.Lift(entity.DefaultLift)
	case ActionLower:
		g.player.Lift(-entity.DefaultLift)
	case ActionToggleMap:
		g.mode = g.mode.Toggle()
	case ActionToggleClip:
		opts := g.scene.Options()
		opts.ClipToWallHeight = !opts.ClipToWallHeight
		g.scene.SetOptions(opts)
	case ActionNextMap:
		if err := g.loadMap(ctx, g.nextMapID()); err != nil {
			g.mapName = "error: " + err.Error()
		}
	}

	g.scene.SetPose(g.player.Pose())
}

// Close cleans up viewer resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
