// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// PointInt is a position in device (physical) pixels.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt creates a new PointInt.
func Pt(x, y int) PointInt {
	return PointInt{X: x, Y: y}
}

// Add returns the sum of two points.
func (p PointInt) Add(other PointInt) PointInt {
	return PointInt{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p PointInt) Sub(other PointInt) PointInt {
	return PointInt{X: p.X - other.X, Y: p.Y - other.Y}
}

// Vec converts to a gonum vector.
func (p PointInt) Vec() r2.Vec {
	return r2.Vec{X: float64(p.X), Y: float64(p.Y)}
}

// Image converts to an image.Point.
func (p PointInt) Image() image.Point {
	return image.Point{X: p.X, Y: p.Y}
}

func (p PointInt) String() string {
	return fmt.Sprintf("x:%d y:%d", p.X, p.Y)
}

// Round converts a vector to the nearest integer point.
func Round(v r2.Vec) PointInt {
	return PointInt{X: int(math.Round(v.X)), Y: int(math.Round(v.Y))}
}

// Lerp blends from a toward b: a*f + b*(1-f). f=1 keeps a, f=0 yields b.
func Lerp(a, b r2.Vec, f float64) r2.Vec {
	return r2.Add(r2.Scale(f, a), r2.Scale(1-f, b))
}

// RectInt represents a rectangle with integer coordinates.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RectFromImage converts an image.Rectangle.
func RectFromImage(r image.Rectangle) RectInt {
	return RectInt{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Right returns the exclusive right edge.
func (r RectInt) Right() int {
	return r.X + r.Width
}

// Bottom returns the exclusive bottom edge.
func (r RectInt) Bottom() int {
	return r.Y + r.Height
}

// Contains returns true if the point lies inside the rectangle.
// The right and bottom edges are exclusive.
func (r RectInt) Contains(p PointInt) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Image converts to an image.Rectangle.
func (r RectInt) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.Right(), r.Bottom())
}

// Empty reports whether the rectangle has no area.
func (r RectInt) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
