package colorutil

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPixelGrid(t *testing.T) {
	g := NewPixelGrid(3)
	assert.True(t, g.Valid())
	assert.Len(t, g.Pixels, 9)
	assert.Equal(t, Black, g.Center())

	assert.False(t, NewPixelGrid(0).Valid())
	assert.False(t, PixelGrid{Size: 3, Pixels: make([]Color, 4)}.Valid())
}

func TestGridFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	img.Set(1, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	img.Set(2, 0, color.RGBA{R: 200, A: 255})

	g := GridFromImage(img, 3)
	require.True(t, g.Valid())
	assert.Equal(t, NewColor(10, 20, 30), g.Center())
	assert.Equal(t, NewColor(200, 0, 0), g.At(2, 0))
}

func TestGridFromImageOffsetBounds(t *testing.T) {
	// Sub-images keep their parent's coordinates; the grid starts at Min.
	parent := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	parent.Set(5, 5, color.NRGBA{G: 99, A: 255})
	sub := parent.SubImage(image.Rect(4, 4, 7, 7))

	g := GridFromImage(sub, 3)
	assert.Equal(t, NewColor(0, 99, 0), g.Center())
}

func TestGridFromSmallImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	g := GridFromImage(img, 3)
	assert.Equal(t, NewColor(1, 2, 3), g.At(0, 0))
	assert.Equal(t, Black, g.At(2, 2))
}

func TestCloneIsIndependent(t *testing.T) {
	g := NewPixelGrid(1)
	c := g.Clone()
	c.Pixels[0] = White
	assert.Equal(t, Black, g.Pixels[0])

	assert.Nil(t, PixelGrid{}.Clone().Pixels)
}

func TestGridImage(t *testing.T) {
	g := NewPixelGrid(3)
	g.Pixels[5] = NewColor(7, 8, 9)

	img := g.Image()
	assert.Equal(t, image.Rect(0, 0, 3, 3), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 7, G: 8, B: 9, A: 255}, img.NRGBAAt(2, 1))
	assert.Equal(t, color.NRGBA{A: 255}, img.NRGBAAt(0, 0))
}
