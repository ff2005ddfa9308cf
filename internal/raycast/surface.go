// Package raycast renders a first-person view of a world.Grid by marching
// one ray per screen column.
package raycast

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// ColorIndex is a palette slot. The renderer only emits indices; mapping
// them to real colors is up to the surface owner.
type ColorIndex uint8

// Palette slots written by the renderer.
const (
	ColorBackground ColorIndex = 0
	ColorCeiling    ColorIndex = 1
	ColorFloor      ColorIndex = 3
	ColorWall       ColorIndex = 15
)

// Surface is a writable pixel target.
type Surface interface {
	Width() int
	Height() int
	Fill(c ColorIndex)
	SetPixel(x, y int, c ColorIndex)
}

// Frame is an in-memory Surface backed by a flat slice indexed y*width+x.
type Frame struct {
	pixels []ColorIndex
	width  int
	height int
}

// NewFrame creates a frame cleared to ColorBackground.
func NewFrame(width, height int) *Frame {
	f := &Frame{}
	f.Resize(width, height)
	return f
}

// Resize adjusts frame dimensions, reallocating only if capacity is
// insufficient, and clears it.
func (f *Frame) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(f.pixels) < size {
		f.pixels = make([]ColorIndex, size)
	} else {
		f.pixels = f.pixels[:size]
	}
	f.width = width
	f.height = height
	f.Fill(ColorBackground)
}

// Width implements Surface.
func (f *Frame) Width() int { return f.width }

// Height implements Surface.
func (f *Frame) Height() int { return f.height }

// Fill implements Surface.
func (f *Frame) Fill(c ColorIndex) {
	for i := range f.pixels {
		f.pixels[i] = c
	}
}

// SetPixel implements Surface. Writes outside the frame are dropped.
func (f *Frame) SetPixel(x, y int, c ColorIndex) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	f.pixels[y*f.width+x] = c
}

// At returns the pixel at (x, y), or ColorBackground outside the frame.
func (f *Frame) At(x, y int) ColorIndex {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return ColorBackground
	}
	return f.pixels[y*f.width+x]
}

// Column returns a copy of column x from top to bottom.
func (f *Frame) Column(x int) []ColorIndex {
	col := make([]ColorIndex, f.height)
	for y := range col {
		col[y] = f.At(x, y)
	}
	return col
}

// Checksum hashes the frame size and contents. Equal frames hash equally.
func (f *Frame) Checksum() uint64 {
	d := xxhash.New()
	var dims [8]byte
	binary.LittleEndian.PutUint32(dims[0:4], uint32(f.width))
	binary.LittleEndian.PutUint32(dims[4:8], uint32(f.height))
	_, _ = d.Write(dims[:])

	buf := make([]byte, len(f.pixels))
	for i, p := range f.pixels {
		buf[i] = byte(p)
	}
	_, _ = d.Write(buf)
	return d.Sum64()
}
