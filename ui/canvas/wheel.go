package canvas

import (
	"image"
	"image/color"
	"math"
	"sync"

	"colorose/internal/config"
	"colorose/pkg/colorutil"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/spatial/r2"
)

// Reference proportions of the wheel: an 80px outer radius with a 12px ring.
const (
	refOuterRadius = 80.0
	refRing        = 12.0
	refInset       = 3.0

	// ringSupersample is the per-axis sample count used for the ring.
	ringSupersample = 4

	// hueOffset rotates the ring so red sits at the upper left.
	hueOffset = 150.0
)

var (
	hueMarkerColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	ringCacheMu sync.Mutex
	ringCache   = make(map[int]*image.NRGBA)
)

// Wheel is the geometry of a hue ring of the given pixel size with a
// saturation/value square (HSV) or saturation/lightness triangle (HSL)
// inside it.
type Wheel struct {
	Size   int
	Outer  float64
	Ring   float64
	Center r2.Vec

	inset float64
}

// NewWheel scales the reference proportions to size pixels.
func NewWheel(size int) Wheel {
	if size < 1 {
		size = 1
	}
	outer := float64(size) / 2
	scale := outer / refOuterRadius
	return Wheel{
		Size:   size,
		Outer:  outer,
		Ring:   refRing * scale,
		Center: r2.Vec{X: outer, Y: outer},
		inset:  refInset * scale,
	}
}

// inner is the radius left inside the ring.
func (w Wheel) inner() float64 {
	return w.Outer - w.Ring
}

// HueMarker returns the ring position for hue h in degrees.
func (w Wheel) HueMarker(h float64) r2.Vec {
	angle := (h - hueOffset) / 360 * 2 * math.Pi
	radius := (w.Outer + w.inner()) / 2
	return r2.Add(w.Center, r2.Scale(radius, r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}))
}

// hueAt is the inverse of HueMarker for any point off center.
func (w Wheel) hueAt(p r2.Vec) float64 {
	d := r2.Sub(p, w.Center)
	h := math.Atan2(d.Y, d.X)/(2*math.Pi)*360 + hueOffset
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// Square returns the top-left corner and side of the HSV square.
func (w Wheel) Square() (r2.Vec, float64) {
	side := w.inner()*2/math.Sqrt2 - w.inset
	return r2.Sub(w.Center, r2.Vec{X: side / 2, Y: side / 2}), side
}

// SVMarker returns the square position for a color: saturation along x,
// value decreasing downward.
func (w Wheel) SVMarker(hsv colorutil.HSV) r2.Vec {
	origin, side := w.Square()
	return r2.Add(origin, r2.Vec{X: hsv.S * side, Y: (1 - hsv.V) * side})
}

// Triangle returns the top-left vertex and height of the HSL triangle. The
// left edge is vertical, running from white at the top to black at the
// bottom; the right vertex is the fully saturated hue.
func (w Wheel) Triangle() (r2.Vec, float64) {
	side := w.inner()*math.Sqrt(3) - w.inset
	return r2.Sub(w.Center, r2.Vec{X: side / math.Sqrt(3) / 2, Y: side / 2}), side
}

// SLMarker returns the triangle position for a color: lightness decreasing
// downward, chroma growing to the right.
func (w Wheel) SLMarker(hsl colorutil.HSL) r2.Vec {
	origin, side := w.Triangle()
	chroma := hsl.S * (1 - math.Abs(2*hsl.L-1))
	return r2.Add(origin, r2.Vec{X: side * chroma * math.Sqrt(3) / 2, Y: side * (1 - hsl.L)})
}

// Render draws the wheel for c. mode selects the inner shape
// (config.WheelHSV or config.WheelHSL). The hue marker is white and the
// inner marker uses the reverted color.
func (w Wheel) Render(c colorutil.Color, mode string) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, w.Size, w.Size))
	draw.Draw(out, out.Bounds(), ring(w.Size), image.Point{}, draw.Src)

	hsv := c.HSV()
	hsl := c.HSL()
	stroke := c.Revert().NRGBA()

	var marker r2.Vec
	if mode == config.WheelHSL {
		w.fillTriangle(out, hsl.H)
		marker = w.SLMarker(hsl)
	} else {
		w.fillSquare(out, hsv.H)
		marker = w.SVMarker(hsv)
	}

	drawCircle(out, w.HueMarker(hsv.H), markerRadius, strokeWidth, hueMarkerColor)
	drawCircle(out, marker, markerRadius, strokeWidth, stroke)
	return out
}

func (w Wheel) fillSquare(out *image.NRGBA, h float64) {
	origin, side := w.Square()
	if side <= 0 {
		return
	}
	x0, y0 := int(math.Floor(origin.X)), int(math.Floor(origin.Y))
	x1, y1 := int(math.Ceil(origin.X+side)), int(math.Ceil(origin.Y+side))

	for y := y0; y < y1; y++ {
		v := 1 - (float64(y)+0.5-origin.Y)/side
		if v < 0 || v > 1 {
			continue
		}
		for x := x0; x < x1; x++ {
			s := (float64(x) + 0.5 - origin.X) / side
			if s < 0 || s > 1 {
				continue
			}
			setClipped(out, x, y, toNRGBA(colorful.Hsv(h, s, v)))
		}
	}
}

func (w Wheel) fillTriangle(out *image.NRGBA, h float64) {
	origin, side := w.Triangle()
	if side <= 0 {
		return
	}
	width := side * math.Sqrt(3) / 2
	x0, y0 := int(math.Floor(origin.X)), int(math.Floor(origin.Y))
	x1, y1 := int(math.Ceil(origin.X+width)), int(math.Ceil(origin.Y+side))

	for y := y0; y < y1; y++ {
		l := 1 - (float64(y)+0.5-origin.Y)/side
		if l < 0 || l > 1 {
			continue
		}
		maxChroma := 1 - math.Abs(2*l-1)
		for x := x0; x < x1; x++ {
			chroma := (float64(x) + 0.5 - origin.X) / width
			if chroma < 0 || chroma > maxChroma {
				continue
			}
			s := 0.0
			if maxChroma > 0 {
				s = chroma / maxChroma
			}
			setClipped(out, x, y, toNRGBA(colorful.Hsl(h, s, l)))
		}
	}
}

// ring returns the antialiased hue ring for a wheel of the given size.
// Rings are rendered once per size and shared.
func ring(size int) *image.NRGBA {
	ringCacheMu.Lock()
	defer ringCacheMu.Unlock()

	if img, ok := ringCache[size]; ok {
		return img
	}

	big := NewWheel(size * ringSupersample)
	hi := image.NewNRGBA(image.Rect(0, 0, big.Size, big.Size))
	outer2 := big.Outer * big.Outer
	inner2 := big.inner() * big.inner()

	for y := 0; y < big.Size; y++ {
		for x := 0; x < big.Size; x++ {
			p := r2.Vec{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			d := r2.Norm2(r2.Sub(p, big.Center))
			if d < inner2 || d > outer2 {
				continue
			}
			hi.SetNRGBA(x, y, toNRGBA(colorful.Hsv(big.hueAt(p), 1, 1)))
		}
	}

	img := imaging.Resize(hi, size, size, imaging.Box)
	ringCache[size] = img
	return img
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
