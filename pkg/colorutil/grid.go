package colorutil

import (
	"image"
)

// PixelGrid is a square, row-major block of sampled colors. Size is odd so
// the center pixel is the sample directly under the cursor.
type PixelGrid struct {
	Size   int
	Pixels []Color
}

// NewPixelGrid creates a grid of the given side length filled with black.
func NewPixelGrid(size int) PixelGrid {
	if size < 0 {
		size = 0
	}
	return PixelGrid{Size: size, Pixels: make([]Color, size*size)}
}

// GridFromImage copies the top-left size x size pixels of img into a grid.
// Pixels outside img are left black.
func GridFromImage(img image.Image, size int) PixelGrid {
	grid := NewPixelGrid(size)
	b := img.Bounds()

	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < size && y < b.Dy(); y++ {
			row := rgba.Pix[y*rgba.Stride:]
			for x := 0; x < size && x < b.Dx(); x++ {
				off := x * 4
				grid.Pixels[y*size+x] = Color{R: row[off], G: row[off+1], B: row[off+2]}
			}
		}
		return grid
	}

	for y := 0; y < size && y < b.Dy(); y++ {
		for x := 0; x < size && x < b.Dx(); x++ {
			grid.Pixels[y*size+x] = FromColor(img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return grid
}

// Valid reports whether the pixel slice matches the declared size.
func (g PixelGrid) Valid() bool {
	return g.Size > 0 && len(g.Pixels) == g.Size*g.Size
}

// At returns the color at column x, row y.
func (g PixelGrid) At(x, y int) Color {
	return g.Pixels[y*g.Size+x]
}

// Center returns the pixel under the cursor.
func (g PixelGrid) Center() Color {
	half := g.Size / 2
	return g.At(half, half)
}

// Clone returns a deep copy of the grid.
func (g PixelGrid) Clone() PixelGrid {
	out := PixelGrid{Size: g.Size}
	if g.Pixels != nil {
		out.Pixels = make([]Color, len(g.Pixels))
		copy(out.Pixels, g.Pixels)
	}
	return out
}

// Image returns the grid as an NRGBA image, one image pixel per grid cell.
func (g PixelGrid) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Size, g.Size))
	if !g.Valid() {
		return img
	}
	for i, c := range g.Pixels {
		off := i * 4
		img.Pix[off] = c.R
		img.Pix[off+1] = c.G
		img.Pix[off+2] = c.B
		img.Pix[off+3] = 255
	}
	return img
}
