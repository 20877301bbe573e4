package sampler

import (
	"colorose/pkg/colorutil"
	"colorose/pkg/geometry"
)

// CaptureRect returns the top-left corner and side length of the square
// block centered on p for the given preview size.
func CaptureRect(p geometry.PointInt, previewSize int) (origin geometry.PointInt, side int) {
	half := previewSize / 2
	if half < 0 {
		half = 0
	}
	return p.Sub(geometry.Pt(half, half)), 2*half + 1
}

// AverageCenter averages the window x window block at the center of grid.
// The window is clamped to the grid. Channels use floor(sum/count).
func AverageCenter(grid colorutil.PixelGrid, window int) colorutil.Color {
	if !grid.Valid() {
		return colorutil.Color{}
	}
	if window > grid.Size {
		window = grid.Size
	}
	if window < 1 {
		window = 1
	}

	center := grid.Size / 2
	half := window / 2
	lo, hi := center-half, center+half
	if lo < 0 {
		lo = 0
	}
	if hi >= grid.Size {
		hi = grid.Size - 1
	}

	var rSum, gSum, bSum, count uint32
	for y := lo; y <= hi; y++ {
		for x := lo; x <= hi; x++ {
			c := grid.At(x, y)
			rSum += uint32(c.R)
			gSum += uint32(c.G)
			bSum += uint32(c.B)
			count++
		}
	}

	return colorutil.Color{
		R: uint8(rSum / count),
		G: uint8(gSum / count),
		B: uint8(bSum / count),
	}
}
