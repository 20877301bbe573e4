// Package panels provides the picker's info and control panels.
package panels

import (
	"fmt"
	"image/color"

	"colorose/internal/app"
	"colorose/pkg/colorutil"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
)

const (
	swatchSize   = 50
	swatchRadius = 10
	infoWidth    = 210
	infoTextSize = 15
)

// InfoPanel shows a swatch of the picked color and its coordinates.
type InfoPanel struct {
	container fyne.CanvasObject

	swatch   *fynecanvas.Rectangle
	position *fynecanvas.Text
	rgb      *fynecanvas.Text
	hsv      *fynecanvas.Text
	hsl      *fynecanvas.Text
}

// NewInfoPanel creates the panel with empty values.
func NewInfoPanel() *InfoPanel {
	ip := &InfoPanel{}

	ip.swatch = fynecanvas.NewRectangle(colorutil.Black.NRGBA())
	ip.swatch.StrokeColor = colorutil.Foreground.NRGBA()
	ip.swatch.StrokeWidth = 2
	ip.swatch.CornerRadius = swatchRadius
	ip.swatch.SetMinSize(fyne.NewSize(swatchSize, swatchSize))

	ip.position = newInfoText()
	ip.rgb = newInfoText()
	ip.hsv = newInfoText()
	ip.hsl = newInfoText()

	lines := container.NewVBox(ip.position, ip.rgb, ip.hsv, ip.hsl)
	spacer := fynecanvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(infoWidth, 0))

	ip.container = container.NewHBox(
		container.NewVBox(ip.swatch, layout.NewSpacer()),
		container.NewStack(spacer, container.NewPadded(lines)),
	)
	return ip
}

func newInfoText() *fynecanvas.Text {
	t := fynecanvas.NewText("", colorutil.Foreground.NRGBA())
	t.TextSize = infoTextSize
	t.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	return t
}

// Container returns the panel container.
func (ip *InfoPanel) Container() fyne.CanvasObject {
	return ip.container
}

// Update shows the sample from snap.
func (ip *InfoPanel) Update(snap app.Snapshot) {
	c := snap.Color

	ip.swatch.FillColor = c.NRGBA()
	ip.position.Text = snap.Position.String()
	ip.rgb.Text = fmt.Sprintf("%s %s", c, c.Hex())
	ip.hsv.Text = c.HSV().String()
	ip.hsl.Text = c.HSL().String()

	ip.swatch.Refresh()
	ip.position.Refresh()
	ip.rgb.Refresh()
	ip.hsv.Refresh()
	ip.hsl.Refresh()
}

// Lines returns the text currently shown, top to bottom.
func (ip *InfoPanel) Lines() []string {
	return []string{ip.position.Text, ip.rgb.Text, ip.hsv.Text, ip.hsl.Text}
}
