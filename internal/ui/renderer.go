package ui

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/raycaster/internal/mapdata"
	"github.com/samdwyer/raycaster/internal/raycast"
	"github.com/samdwyer/raycaster/internal/world"
)

// halfBlock draws the upper pixel as foreground and the lower as background.
const halfBlock = '▀'

// Minimap extent in cells, centred on the player.
const (
	minimapWidth  = 25
	minimapHeight = 13
)

// View is everything drawn in one screen update.
type View struct {
	Frame       *raycast.Frame
	Grid        *world.Grid
	Pose        world.Pose
	ShowMinimap bool
	Status      string
}

// viewKey identifies a drawn view so unchanged views can be skipped.
type viewKey struct {
	frame   uint64
	status  string
	minimap bool
	pose    world.Pose
	width   int
	height  int
}

// Renderer handles drawing frames to the screen.
type Renderer struct {
	screen  *Screen
	palette *mapdata.Palette
	colors  map[raycast.ColorIndex]tcell.Color
	frame   *raycast.Frame
	last    viewKey
	drawn   bool
}

// NewRenderer creates a new renderer for the given screen and palette.
func NewRenderer(screen *Screen, palette *mapdata.Palette) *Renderer {
	return &Renderer{
		screen:  screen,
		palette: palette,
		colors:  make(map[raycast.ColorIndex]tcell.Color),
		frame:   raycast.NewFrame(0, 0),
	}
}

// FrameSize returns the pixel size available for the 3D view: every cell
// holds two pixels and the last row is kept for the status line.
func (r *Renderer) FrameSize() (int, int) {
	w, h := r.screen.Size()
	return max(w, 0), max(h-1, 0) * 2
}

// Frame returns the reusable frame sized to the current screen.
func (r *Renderer) Frame() *raycast.Frame {
	w, h := r.FrameSize()
	if r.frame.Width() != w || r.frame.Height() != h {
		r.frame.Resize(w, h)
	}
	return r.frame
}

// Invalidate forces the next Present to redraw, e.g. after a resize.
func (r *Renderer) Invalidate() {
	r.drawn = false
}

// Present draws the view. It returns false if the view matched the previous
// one and nothing was drawn.
func (r *Renderer) Present(v View) bool {
	w, h := r.screen.Size()
	key := viewKey{status: v.Status, minimap: v.ShowMinimap, width: w, height: h}
	if v.Frame != nil {
		key.frame = v.Frame.Checksum()
	}
	if v.ShowMinimap {
		key.pose = v.Pose
	}
	if r.drawn && key == r.last {
		return false
	}

	r.screen.Clear()
	if v.Frame != nil {
		r.drawFrame(v.Frame)
	}
	if v.ShowMinimap && v.Grid != nil {
		r.drawMinimap(v.Grid, v.Pose)
	}
	r.RenderMessage(v.Status, h-1)
	r.screen.Show()

	r.last = key
	r.drawn = true
	return true
}

// drawFrame packs pixel pairs into half-block cells.
func (r *Renderer) drawFrame(f *raycast.Frame) {
	for row := 0; row*2 < f.Height(); row++ {
		for x := 0; x < f.Width(); x++ {
			top := r.color(f.At(x, row*2))
			bottom := top
			if row*2+1 < f.Height() {
				bottom = r.color(f.At(x, row*2+1))
			}
			r.screen.SetContent(x, row, halfBlock, tcell.StyleDefault.Foreground(top).Background(bottom))
		}
	}
}

// color maps a palette index to a terminal color, caching conversions.
func (r *Renderer) color(i raycast.ColorIndex) tcell.Color {
	if c, ok := r.colors[i]; ok {
		return c
	}
	c := toTCell(r.palette.Color(i))
	r.colors[i] = c
	return c
}

func toTCell(c colorful.Color) tcell.Color {
	red, green, blue := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(red), int32(green), int32(blue))
}

// drawMinimap draws an overhead view around the player in the top-left corner.
func (r *Renderer) drawMinimap(g *world.Grid, pose world.Pose) {
	px, py := pose.Cell()
	x0, y0 := px-minimapWidth/2, py-minimapHeight/2

	for sy := 0; sy < minimapHeight; sy++ {
		for sx := 0; sx < minimapWidth; sx++ {
			x, y := x0+sx, y0+sy
			if !g.InBounds(x, y) {
				r.screen.SetContent(sx, sy, ' ', tcell.StyleDefault.Background(tcell.ColorBlack))
				continue
			}
			tile := g.At(x, y)
			r.screen.SetContent(sx, sy, tileRune(tile), r.getTileStyle(tile))
		}
	}

	playerStyle := tcell.StyleDefault.
		Foreground(tcell.ColorYellow).
		Background(tcell.ColorBlack).
		Bold(true)
	r.screen.SetContent(px-x0, py-y0, headingRune(pose.Angle), playerStyle)
}

// tileRune returns the minimap glyph for a tile.
func tileRune(t world.Tile) rune {
	switch {
	case t.IsSolid():
		return '#'
	case t.Stair.Present:
		return '/'
	default:
		return '.'
	}
}

// Shading endpoints for minimap elevations.
var (
	lowShade  = mapdata.MustParseHexColor("#1A1A40")
	highShade = mapdata.MustParseHexColor("#E0C070")
)

// getTileStyle shades a tile by elevation: wall tops for solid tiles,
// floors otherwise.
func (r *Renderer) getTileStyle(t world.Tile) tcell.Style {
	height := t.FloorHeight
	if t.IsSolid() {
		height = t.FloorHeight + t.WallHeight
	}
	// Map [-1, 3] onto the shade ramp.
	mix := math.Min(1, math.Max(0, (height+1)/4))
	shade := lowShade.BlendLab(highShade, mix)

	fg := toTCell(shade)
	if t.IsSolid() {
		return tcell.StyleDefault.Foreground(fg).Background(tcell.ColorBlack)
	}
	return tcell.StyleDefault.Foreground(fg).Background(tcell.ColorBlack).Dim(true)
}

// headingRune returns an arrow for the facing, y growing downwards.
func headingRune(angle float64) rune {
	arrows := [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}
	octant := int(math.Round(angle/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return arrows[octant]
}

// RenderMessage displays a message on row y, clearing the rest of the row.
func (r *Renderer) RenderMessage(msg string, y int) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	x := 0
	for _, ch := range msg {
		if x >= w {
			return
		}
		r.screen.SetContent(x, y, ch, style)
		x++
	}
	for ; x < w; x++ {
		r.screen.SetContent(x, y, ' ', style)
	}
}
