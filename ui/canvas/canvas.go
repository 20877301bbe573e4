package canvas

import (
	"image"
	"sync"

	"colorose/internal/config"
	"colorose/pkg/colorutil"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// Default widget sizes in device-independent units.
const (
	WheelSize   = 160
	PreviewSize = 160
)

// rasterView is a fixed-size widget that repaints a raster from a draw
// function. Fields read by the draw function are guarded by mu because
// updates arrive from the render tick goroutine.
type rasterView struct {
	widget.BaseWidget

	mu     sync.Mutex
	raster *fynecanvas.Raster
	size   fyne.Size
}

func (v *rasterView) init(size fyne.Size, draw func(w, h int) image.Image, scale fynecanvas.ImageScale) {
	v.size = size
	v.raster = fynecanvas.NewRaster(draw)
	v.raster.ScaleMode = scale
	v.raster.SetMinSize(size)
}

// MinSize returns the fixed widget size.
func (v *rasterView) MinSize() fyne.Size {
	return v.size
}

type rasterRenderer struct {
	view *rasterView
}

func (r *rasterRenderer) Layout(size fyne.Size) {
	r.view.raster.Resize(size)
}

func (r *rasterRenderer) MinSize() fyne.Size {
	return r.view.size
}

func (r *rasterRenderer) Refresh() {
	r.view.raster.Refresh()
}

func (r *rasterRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.view.raster}
}

func (r *rasterRenderer) Destroy() {}

// WheelView shows the hue ring with the HSV square or HSL triangle for the
// current color.
type WheelView struct {
	rasterView

	color colorutil.Color
	mode  string
}

// NewWheelView creates a wheel of the default size.
func NewWheelView() *WheelView {
	wv := &WheelView{mode: config.WheelHSV}
	wv.init(fyne.NewSize(WheelSize, WheelSize), wv.draw, fynecanvas.ImageScaleSmooth)
	wv.ExtendBaseWidget(wv)
	return wv
}

// SetColor updates the color and wheel mode and repaints when either
// changed.
func (wv *WheelView) SetColor(c colorutil.Color, mode string) {
	wv.mu.Lock()
	changed := c != wv.color || mode != wv.mode
	wv.color = c
	wv.mode = mode
	wv.mu.Unlock()

	if changed {
		wv.Refresh()
	}
}

func (wv *WheelView) draw(w, h int) image.Image {
	wv.mu.Lock()
	c, mode := wv.color, wv.mode
	wv.mu.Unlock()

	size := w
	if h < size {
		size = h
	}
	return NewWheel(size).Render(c, mode)
}

// CreateRenderer implements fyne.Widget.
func (wv *WheelView) CreateRenderer() fyne.WidgetRenderer {
	return &rasterRenderer{view: &wv.rasterView}
}

// PreviewView shows the magnified capture with the averaging window
// outlined.
type PreviewView struct {
	rasterView

	grid   colorutil.PixelGrid
	window int
	stroke colorutil.Color
}

// NewPreviewView creates a preview of the default size.
func NewPreviewView() *PreviewView {
	pv := &PreviewView{window: 1}
	pv.init(fyne.NewSize(PreviewSize, PreviewSize), pv.draw, fynecanvas.ImageScalePixels)
	pv.ExtendBaseWidget(pv)
	return pv
}

// SetGrid replaces the shown grid. The view keeps grid, so callers pass a
// copy they no longer modify.
func (pv *PreviewView) SetGrid(grid colorutil.PixelGrid, window int, stroke colorutil.Color) {
	pv.mu.Lock()
	pv.grid = grid
	pv.window = window
	pv.stroke = stroke
	pv.mu.Unlock()

	pv.Refresh()
}

func (pv *PreviewView) draw(w, h int) image.Image {
	pv.mu.Lock()
	grid, window, stroke := pv.grid, pv.window, pv.stroke
	pv.mu.Unlock()

	size := w
	if h < size {
		size = h
	}
	return RenderPreview(grid, window, size, stroke)
}

// CreateRenderer implements fyne.Widget.
func (pv *PreviewView) CreateRenderer() fyne.WidgetRenderer {
	return &rasterRenderer{view: &pv.rasterView}
}
