// Package canvas renders the picker's wheel and preview rasters.
package canvas

import (
	"image"
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// markerRadius and strokeWidth size the circle markers and rectangle strokes.
const (
	markerRadius = 4.0
	strokeWidth  = 2
)

// drawCircle draws a ring of the given thickness centered on c.
func drawCircle(output *image.NRGBA, c r2.Vec, radius float64, thickness float64, col color.NRGBA) {
	bounds := output.Bounds()

	// Integer bounds for iteration
	minX := int(c.X - radius - 1)
	maxX := int(c.X + radius + 1)
	minY := int(c.Y - radius - 1)
	maxY := int(c.Y + radius + 1)

	outer := radius * radius
	innerR := radius - thickness
	if innerR < 0 {
		innerR = 0
	}
	inner := innerR * innerR

	for y := minY; y <= maxY; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := minX; x <= maxX; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			// Distance from the pixel center
			d := r2.Norm2(r2.Sub(r2.Vec{X: float64(x) + 0.5, Y: float64(y) + 0.5}, c))
			if d <= outer && d >= inner {
				output.SetNRGBA(x, y, col)
			}
		}
	}
}

// drawRect draws a rectangle outline with the stroke inside r.
func drawRect(output *image.NRGBA, r image.Rectangle, thickness int, col color.NRGBA) {
	r = r.Intersect(output.Bounds())
	if r.Empty() {
		return
	}

	for t := 0; t < thickness; t++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			setClipped(output, x, r.Min.Y+t, col)
			setClipped(output, x, r.Max.Y-1-t, col)
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			setClipped(output, r.Min.X+t, y, col)
			setClipped(output, r.Max.X-1-t, y, col)
		}
	}
}

func setClipped(output *image.NRGBA, x, y int, col color.NRGBA) {
	if (image.Point{X: x, Y: y}).In(output.Bounds()) {
		output.SetNRGBA(x, y, col)
	}
}
