// Package colorutil provides the color value types and color-space conversions
// used by the picker.
package colorutil

import (
	"fmt"
	"image/color"
	"math"
)

// Panel colors shared by the overlay widgets.
var (
	Foreground = Color{R: 219, G: 214, B: 201}
	Background = Color{R: 31, G: 36, B: 48}
	White      = Color{R: 255, G: 255, B: 255}
	Black      = Color{R: 0, G: 0, B: 0}
)

// Color is an 8-bit RGB color sampled from the screen.
type Color struct {
	R, G, B uint8
}

// NewColor creates a Color from its channels.
func NewColor(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// FromColor converts any image color to a Color, dropping alpha.
func FromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// Revert returns the component-wise inverse (255 - c). The result is used
// for overlay strokes drawn on top of c.
func (c Color) Revert() Color {
	return Color{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B}
}

// NRGBA returns the color as an opaque image/color value.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Hex returns the color as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) String() string {
	return fmt.Sprintf("r:%d g:%d b:%d", c.R, c.G, c.B)
}

// HSL is a color in hue/saturation/lightness form.
// H is in [0,360), S and L are in [0,1].
type HSL struct {
	H, S, L float64
}

func (h HSL) String() string {
	return fmt.Sprintf("h:%.1f s:%.1f l:%.1f", h.H, h.S*100, h.L*100)
}

// HSV is a color in hue/saturation/value form.
// H is in [0,360), S and V are in [0,1].
type HSV struct {
	H, S, V float64
}

func (h HSV) String() string {
	return fmt.Sprintf("h:%.1f s:%.1f v:%.1f", h.H, h.S*100, h.V*100)
}

// normalized returns the channels in [0,1] together with max, min and delta.
func (c Color) normalized() (r, g, b, maxC, minC, delta float64) {
	r = float64(c.R) / 255.0
	g = float64(c.G) / 255.0
	b = float64(c.B) / 255.0
	maxC = math.Max(r, math.Max(g, b))
	minC = math.Min(r, math.Min(g, b))
	return r, g, b, maxC, minC, maxC - minC
}

// hue computes the shared hue term of HSL and HSV in degrees, in [0,360).
func hue(r, g, b, maxC, delta float64) float64 {
	var h float64
	switch {
	case delta == 0:
		return 0
	case maxC == r:
		h = 60 * math.Mod((g-b)/delta, 6)
	case maxC == g:
		h = 60 * ((b-r)/delta + 2)
	default:
		h = 60 * ((r-g)/delta + 4)
	}
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h -= 360
	}
	return h
}

// HSL converts the color to HSL.
func (c Color) HSL() HSL {
	r, g, b, maxC, minC, delta := c.normalized()

	l := (maxC + minC) / 2
	s := 0.0
	if delta != 0 {
		s = delta / (1 - math.Abs(2*l-1))
	}

	return HSL{
		H: hue(r, g, b, maxC, delta),
		S: clamp01(s),
		L: clamp01(l),
	}
}

// HSV converts the color to HSV.
func (c Color) HSV() HSV {
	r, g, b, maxC, _, delta := c.normalized()

	s := 0.0
	if maxC != 0 {
		s = delta / maxC
	}

	return HSV{
		H: hue(r, g, b, maxC, delta),
		S: clamp01(s),
		V: clamp01(maxC),
	}
}

// RGB converts an HSL color back to RGB, rounding each channel.
func (h HSL) RGB() Color {
	s := clamp01(h.S)
	l := clamp01(h.L)

	if s == 0 {
		v := toByte(l)
		return Color{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	t := normalizeHue(h.H) / 360

	return Color{
		R: toByte(hueToChannel(p, q, t+1.0/3.0)),
		G: toByte(hueToChannel(p, q, t)),
		B: toByte(hueToChannel(p, q, t-1.0/3.0)),
	}
}

// hueToChannel is the piecewise hue-sector function of the HSL inverse.
func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	} else if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}

// RGB converts an HSV color back to RGB, rounding each channel.
func (h HSV) RGB() Color {
	s := clamp01(h.S)
	v := clamp01(h.V)
	if s == 0 {
		g := toByte(v)
		return Color{R: g, G: g, B: g}
	}

	hh := normalizeHue(h.H) / 60
	sector := math.Floor(hh)
	f := hh - sector
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var r, g, b float64
	switch int(sector) % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return Color{R: toByte(r), G: toByte(g), B: toByte(b)}
}

func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func toByte(x float64) uint8 {
	return uint8(math.Round(clamp01(x) * 255))
}
