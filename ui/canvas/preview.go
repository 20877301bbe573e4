package canvas

import (
	"image"

	"colorose/pkg/colorutil"

	"golang.org/x/image/draw"
)

// WindowRect returns the pixel rectangle covering the averaging window when
// grid is scaled to size x size. The window is clamped to the grid.
func WindowRect(gridSize, window, size int) image.Rectangle {
	if gridSize < 1 {
		return image.Rectangle{}
	}
	half := gridSize / 2
	halfWindow := window / 2
	if halfWindow > half {
		halfWindow = half
	}
	if halfWindow < 0 {
		halfWindow = 0
	}

	lo := (half - halfWindow) * size / gridSize
	hi := (half + halfWindow + 1) * size / gridSize
	return image.Rect(lo, lo, hi, hi)
}

// RenderPreview scales grid to size x size with nearest-neighbour sampling
// and outlines the averaging window in stroke. The stroke sits just outside
// the window where there is room for it.
func RenderPreview(grid colorutil.PixelGrid, window, size int, stroke colorutil.Color) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, size, size))
	if !grid.Valid() || size < 1 {
		return out
	}

	src := grid.Image()
	draw.NearestNeighbor.Scale(out, out.Bounds(), src, src.Bounds(), draw.Src, nil)

	r := WindowRect(grid.Size, window, size).Inset(-strokeWidth)
	drawRect(out, r, strokeWidth, stroke.NRGBA())
	return out
}
