package mapdata

import (
	"errors"
	"testing"

	"github.com/samdwyer/raycaster/internal/raycast"
	"github.com/samdwyer/raycaster/internal/world"
)

func TestLoadMapRegistry(t *testing.T) {
	registry, err := LoadMapRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	if registry.Count() != 3 {
		t.Errorf("Expected 3 maps, got %d", registry.Count())
	}

	expectedIDs := map[string]bool{"courtyard": false, "fixture": false, "stairwell": false}
	for _, id := range registry.IDs() {
		if _, ok := expectedIDs[id]; ok {
			expectedIDs[id] = true
		}
	}
	for id, found := range expectedIDs {
		if !found {
			t.Errorf("Expected map %q not found", id)
		}
	}

	// Every embedded map must build.
	for _, id := range registry.IDs() {
		if _, _, err := registry.GetByID(id).Build(); err != nil {
			t.Errorf("map %q does not build: %v", id, err)
		}
	}
}

func TestMapRegistryNext(t *testing.T) {
	registry := MustLoadMapRegistry()
	ids := registry.IDs()

	for i, id := range ids {
		want := ids[(i+1)%len(ids)]
		if got := registry.Next(id).ID; got != want {
			t.Errorf("Next(%q) = %q, want %q", id, got, want)
		}
	}
	if got := registry.Next("missing").ID; got != ids[0] {
		t.Errorf("Next(missing) = %q, want %q", got, ids[0])
	}
	if registry.GetByID("missing") != nil {
		t.Error("GetByID(missing) should be nil")
	}
}

func TestFixtureMapMatchesLayout(t *testing.T) {
	grid, pose, err := MustLoadMap("fixture").Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	if grid.Width() != 3 || grid.Height() != 3 {
		t.Fatalf("fixture size = %dx%d, want 3x3", grid.Width(), grid.Height())
	}
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			wantSolid := x == 2 && y == 1
			if grid.At(x, y).IsSolid() != wantSolid {
				t.Errorf("tile (%d,%d) solid = %v, want %v", x, y, !wantSolid, wantSolid)
			}
		}
	}
	want := world.Pose{X: 1.5, Y: 1.5}
	if pose != want {
		t.Errorf("spawn pose = %+v, want %+v", pose, want)
	}
}

func TestStairwellCarriesStairs(t *testing.T) {
	grid, _, err := MustLoadMap("stairwell").Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	lower := grid.At(4, 3)
	if !lower.Stair.Present || lower.Stair.Delta != 0.5 {
		t.Errorf("tile (4,3) stair = %+v, want present 0.5", lower.Stair)
	}
	upper := grid.At(5, 3)
	if upper.EyeLevel() != 0.5 {
		t.Errorf("tile (5,3) eye level = %v, want 0.5", upper.EyeLevel())
	}
	if grid.At(1, 1).Stair.Present {
		t.Error("plain floor tile should not be a stair")
	}
}

func TestMapDefValidation(t *testing.T) {
	legend := map[string]TileDef{
		".": {Ceiling: 1},
		"#": {Wall: 1, Ceiling: 1},
	}

	tests := []struct {
		name string
		def  MapDef
	}{
		{"no rows", MapDef{ID: "a", Legend: legend}},
		{"empty row", MapDef{ID: "b", Legend: legend, Rows: []string{""}}},
		{"ragged", MapDef{ID: "c", Legend: legend, Rows: []string{"...", ".."}}},
		{"unknown glyph", MapDef{ID: "d", Legend: legend, Rows: []string{".?."}}},
		{"spawn outside", MapDef{ID: "e", Legend: legend, Rows: []string{"..."}, Spawn: SpawnDef{X: 5, Y: 0.5}}},
		{"spawn in wall", MapDef{ID: "f", Legend: legend, Rows: []string{".#."}, Spawn: SpawnDef{X: 1.5, Y: 0.5}}},
	}

	for _, tt := range tests {
		_, _, err := tt.def.Build()
		if !errors.Is(err, ErrInvalidMap) {
			t.Errorf("%s: Build error = %v, want ErrInvalidMap", tt.name, err)
		}
	}
}

func TestLoadMapMissing(t *testing.T) {
	if _, err := LoadMap("does-not-exist"); err == nil {
		t.Error("LoadMap of a missing file should fail")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00FF00", true},
		{"#0000FF", true},
		{"#FFFFFF", true},
		{"#000000", true},
		{"invalid", false},
		{"#FFF", false}, // Too short
		{"#GG0000", false},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}

func TestLoadPalette(t *testing.T) {
	p, err := LoadPalette()
	if err != nil {
		t.Fatalf("LoadPalette error: %v", err)
	}

	for _, idx := range []raycast.ColorIndex{raycast.ColorBackground, raycast.ColorCeiling, raycast.ColorFloor, raycast.ColorWall} {
		if !p.Has(idx) {
			t.Errorf("palette missing index %d", idx)
		}
	}

	if r, g, b := p.Color(raycast.ColorWall).RGB255(); r != 255 || g != 255 || b != 255 {
		t.Errorf("wall color = %d,%d,%d, want white", r, g, b)
	}
	if r, g, b := p.Color(raycast.ColorIndex(7)).RGB255(); r != 0 || g != 0 || b != 0 {
		t.Errorf("unmapped index = %d,%d,%d, want black", r, g, b)
	}

	if _, err := NewPalette(PaletteFile{Colors: map[string]string{"x": "#FFFFFF"}}); err == nil {
		t.Error("non-numeric palette index should fail")
	}
	if _, err := NewPalette(PaletteFile{Colors: map[string]string{"300": "#FFFFFF"}}); err == nil {
		t.Error("palette index above 255 should fail")
	}
}
