package sampler

import (
	"colorose/internal/config"
	"colorose/pkg/geometry"
)

// TipLayout places the floating tip so it opens away from the nearest
// right/bottom display edge.
type TipLayout struct {
	config.TipConfig
}

// NewTipLayout creates a layout from configuration.
func NewTipLayout(cfg config.TipConfig) TipLayout {
	return TipLayout{TipConfig: cfg}
}

// Offset returns the tip offset from the cursor for the given display.
func (l TipLayout) Offset(cursor geometry.PointInt, display geometry.RectInt) geometry.PointInt {
	nearRight := cursor.X > display.Right()-l.EdgeMargin
	nearBottom := cursor.Y > display.Bottom()-l.EdgeMargin

	offset := geometry.Pt(l.FarX, l.FarY)
	if nearRight {
		offset.X = l.NearX
	}
	if nearBottom {
		offset.Y = l.NearY
	}
	return offset
}

// Target returns the undamped tip position for the cursor.
func (l TipLayout) Target(cursor geometry.PointInt, display geometry.RectInt) geometry.PointInt {
	return cursor.Add(l.Offset(cursor, display))
}

// Damp moves old toward target: old*f + target*(1-f), rounded to pixels.
// Within one pixel of the target it snaps onto it.
func Damp(old, target geometry.PointInt, f float64) geometry.PointInt {
	next := geometry.Round(geometry.Lerp(old.Vec(), target.Vec(), f))
	if abs(target.X-next.X) <= 1 && abs(target.Y-next.Y) <= 1 {
		return target
	}
	return next
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
