package mapdata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/raycaster/internal/raycast"
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000").
func ParseHexColor(hex string) (colorful.Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return colorful.Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}
	return c, nil
}

// MustParseHexColor converts a hex color string, panicking on error.
func MustParseHexColor(hex string) colorful.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}

// PaletteFile represents the structure of palette.json.
// Keys are color indices written as decimal strings.
type PaletteFile struct {
	Colors map[string]string `json:"colors"`
}

// Palette maps renderer color indices to display colors.
type Palette struct {
	colors map[raycast.ColorIndex]colorful.Color
}

// NewPalette parses a palette file.
func NewPalette(file PaletteFile) (*Palette, error) {
	p := &Palette{colors: make(map[raycast.ColorIndex]colorful.Color, len(file.Colors))}
	for key, hex := range file.Colors {
		idx, err := strconv.ParseUint(key, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid palette index %q: %w", key, err)
		}
		c, err := ParseHexColor(hex)
		if err != nil {
			return nil, fmt.Errorf("palette index %s: %w", key, err)
		}
		p.colors[raycast.ColorIndex(idx)] = c
	}
	return p, nil
}

// LoadPalette loads the embedded palette.json.
func LoadPalette() (*Palette, error) {
	file, err := Load[PaletteFile]("palette.json")
	if err != nil {
		return nil, err
	}
	return NewPalette(file)
}

// MustLoadPalette loads the palette, panicking on error.
func MustLoadPalette() *Palette {
	p, err := LoadPalette()
	if err != nil {
		panic(err)
	}
	return p
}

// Color returns the color for an index. Unmapped indices are black.
func (p *Palette) Color(i raycast.ColorIndex) colorful.Color {
	if c, ok := p.colors[i]; ok {
		return c
	}
	return colorful.Color{}
}

// Has reports whether the palette defines index i.
func (p *Palette) Has(i raycast.ColorIndex) bool {
	_, ok := p.colors[i]
	return ok
}
