package game

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/raycaster/internal/entity"
	"github.com/samdwyer/raycaster/internal/ui"
)

func newTestGame(t *testing.T, cfg Config) *Game {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("NewScreenFrom error: %v", err)
	}
	sim.SetSize(40, 20)
	t.Cleanup(screen.Close)

	g, err := NewWithScreen(cfg, screen)
	if err != nil {
		t.Fatalf("NewWithScreen error: %v", err)
	}
	return g
}

func TestViewModeString(t *testing.T) {
	tests := []struct {
		mode     ViewMode
		expected string
	}{
		{ModeView, "view"},
		{ModeMinimap, "minimap"},
		{ViewMode(99), "unknown"},
	}

	for _, tt := range tests {
		got := tt.mode.String()
		if got != tt.expected {
			t.Errorf("ViewMode(%d).String() = %q, want %q", tt.mode, got, tt.expected)
		}
	}

	if ModeView.Toggle() != ModeMinimap || ModeMinimap.Toggle() != ModeView {
		t.Error("Toggle should alternate between view and minimap")
	}
}

func TestKeyAction(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		want Action
	}{
		{tcell.KeyEscape, 0, ActionQuit},
		{tcell.KeyCtrlC, 0, ActionQuit},
		{tcell.KeyUp, 0, ActionForward},
		{tcell.KeyDown, 0, ActionBack},
		{tcell.KeyLeft, 0, ActionTurnLeft},
		{tcell.KeyRight, 0, ActionTurnRight},
		{tcell.KeyPgUp, 0, ActionRaise},
		{tcell.KeyPgDn, 0, ActionLower},
		{tcell.KeyRune, 'q', ActionQuit},
		{tcell.KeyRune, 'W', ActionForward},
		{tcell.KeyRune, 's', ActionBack},
		{tcell.KeyRune, 'a', ActionStrafeLeft},
		{tcell.KeyRune, 'd', ActionStrafeRight},
		{tcell.KeyRune, 'm', ActionToggleMap},
		{tcell.KeyRune, 'c', ActionToggleClip},
		{tcell.KeyRune, 'n', ActionNextMap},
		{tcell.KeyRune, 'x', ActionNone},
		{tcell.KeyTab, 0, ActionNone},
	}

	for _, tt := range tests {
		if got := keyAction(tt.key, tt.r); got != tt.want {
			t.Errorf("keyAction(%v, %q) = %v, want %v", tt.key, tt.r, got, tt.want)
		}
	}
}

func TestLoadMapPlacesPlayer(t *testing.T) {
	g := newTestGame(t, DefaultConfig())
	ctx := context.Background()

	if err := g.loadMap(ctx, "fixture"); err != nil {
		t.Fatalf("loadMap error: %v", err)
	}

	pose, ok := g.scene.Pose()
	if !ok {
		t.Fatal("scene has no pose after loadMap")
	}
	if pose.X != 1.5 || pose.Y != 1.5 {
		t.Errorf("pose = %+v, want spawn at (1.5,1.5)", pose)
	}
	if g.scene.Grid().Width() != 3 {
		t.Errorf("grid width = %d, want 3", g.scene.Grid().Width())
	}

	if err := g.loadMap(ctx, "nowhere"); err == nil {
		t.Error("loadMap of an unknown map should fail")
	}
	if g.mapID != "fixture" {
		t.Errorf("failed load changed mapID to %q", g.mapID)
	}
}

func TestLoadGeneratedMapIsReproducible(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 77
	cfg.Map = GeneratedMap
	ctx := context.Background()

	a, b := newTestGame(t, cfg), newTestGame(t, cfg)
	if err := a.loadMap(ctx, GeneratedMap); err != nil {
		t.Fatalf("loadMap error: %v", err)
	}
	if err := b.loadMap(ctx, GeneratedMap); err != nil {
		t.Fatalf("loadMap error: %v", err)
	}

	pa, _ := a.scene.Pose()
	pb, _ := b.scene.Pose()
	if pa != pb {
		t.Errorf("spawn poses differ with the same seed: %+v != %+v", pa, pb)
	}
	if a.mapName != b.mapName {
		t.Errorf("map names differ: %q != %q", a.mapName, b.mapName)
	}
}

func TestApplyActions(t *testing.T) {
	g := newTestGame(t, DefaultConfig())
	ctx := context.Background()
	if err := g.loadMap(ctx, "courtyard"); err != nil {
		t.Fatalf("loadMap error: %v", err)
	}
	start, _ := g.scene.Pose()

	g.apply(ctx, ActionTurnRight)
	pose, _ := g.scene.Pose()
	if math.Abs(pose.Angle-(start.Angle+entity.DefaultTurn)) > 1e-9 {
		t.Errorf("angle after turning right = %v, want %v", pose.Angle, start.Angle+entity.DefaultTurn)
	}

	g.apply(ctx, ActionForward)
	moved, _ := g.scene.Pose()
	if moved.X == pose.X && moved.Y == pose.Y {
		t.Error("forward did not move the scene pose")
	}

	g.apply(ctx, ActionRaise)
	raised, _ := g.scene.Pose()
	if math.Abs(raised.VerticalOffset-(moved.VerticalOffset+entity.DefaultLift)) > 1e-9 {
		t.Errorf("eye after raise = %v, want %v", raised.VerticalOffset, moved.VerticalOffset+entity.DefaultLift)
	}

	g.apply(ctx, ActionToggleClip)
	if !g.scene.Options().ClipToWallHeight {
		t.Error("clip toggle did not enable clipping")
	}
	g.apply(ctx, ActionToggleMap)
	if g.mode != ModeMinimap {
		t.Errorf("mode = %v, want minimap", g.mode)
	}

	g.apply(ctx, ActionQuit)
	if g.running {
		t.Error("quit did not stop the loop")
	}
}

func TestNextMapCycles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 1
	g := newTestGame(t, cfg)
	ctx := context.Background()
	if err := g.loadMap(ctx, "courtyard"); err != nil {
		t.Fatalf("loadMap error: %v", err)
	}

	want := []string{"fixture", "stairwell", GeneratedMap, "courtyard"}
	for _, id := range want {
		g.apply(ctx, ActionNextMap)
		if g.mapID != id {
			t.Fatalf("after next map: %q, want %q", g.mapID, id)
		}
	}
}

func TestDrawPresentsFrame(t *testing.T) {
	g := newTestGame(t, DefaultConfig())
	ctx := context.Background()
	if err := g.loadMap(ctx, "fixture"); err != nil {
		t.Fatalf("loadMap error: %v", err)
	}

	g.mode = ModeMinimap
	if err := g.draw(ctx); err != nil {
		t.Fatalf("draw error: %v", err)
	}

	if !strings.Contains(g.status(), "Regression Fixture") {
		t.Errorf("status %q does not name the map", g.status())
	}
}

func TestLoadConfigFrom(t *testing.T) {
	env := map[string]string{
		"RAYCASTER_SEED":           "42",
		"RAYCASTER_MAP":            "stairwell",
		"RAYCASTER_CLIP":           "true",
		"RAYCASTER_DUNGEON_WIDTH":  "30",
		"RAYCASTER_DUNGEON_HEIGHT": "20",
	}
	cfg, err := LoadConfigFrom(func(k string) string { return env[k] })
	if err != nil {
		t.Fatalf("LoadConfigFrom error: %v", err)
	}

	want := Config{Seed: 42, Map: "stairwell", Clip: true, DungeonWidth: 30, DungeonHeight: 20}
	if cfg != want {
		t.Errorf("config = %+v, want %+v", cfg, want)
	}

	empty, err := LoadConfigFrom(func(string) string { return "" })
	if err != nil {
		t.Fatalf("LoadConfigFrom(empty) error: %v", err)
	}
	if empty != DefaultConfig() {
		t.Errorf("empty env config = %+v, want defaults %+v", empty, DefaultConfig())
	}
}

func TestLoadConfigFromRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"RAYCASTER_SEED", "abc"},
		{"RAYCASTER_CLIP", "maybe"},
		{"RAYCASTER_DUNGEON_WIDTH", "wide"},
		{"RAYCASTER_DUNGEON_HEIGHT", "2"},
	}

	for _, tt := range tests {
		_, err := LoadConfigFrom(func(k string) string {
			if k == tt.key {
				return tt.value
			}
			return ""
		})
		if err == nil {
			t.Errorf("%s=%q should be rejected", tt.key, tt.value)
		}
	}
}
