package panels

import (
	"fmt"
	"strings"

	"colorose/internal/app"
	"colorose/internal/config"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// sizeStep keeps sizes odd.
const sizeStep = 2

// StepButton is a button that also reacts to secondary (right) clicks.
type StepButton struct {
	widget.Button

	OnTappedSecondary func()
}

// NewStepButton creates a button running primary on a normal tap and
// secondary on a right click.
func NewStepButton(label string, primary, secondary func()) *StepButton {
	b := &StepButton{OnTappedSecondary: secondary}
	b.Text = label
	b.OnTapped = primary
	b.ExtendBaseWidget(b)
	return b
}

// TappedSecondary implements fyne.SecondaryTappable.
func (b *StepButton) TappedSecondary(*fyne.PointEvent) {
	if b.OnTappedSecondary != nil {
		b.OnTappedSecondary()
	}
}

// ControlsPanel adjusts the averaging window, the preview size and the
// wheel mode. A click shrinks a size, a right click grows it.
type ControlsPanel struct {
	state     *app.State
	container fyne.CanvasObject

	sampleBtn *StepButton
	screenBtn *StepButton
	modeBtn   *widget.Button
}

// NewControlsPanel creates the panel and keeps it in sync with state.
func NewControlsPanel(state *app.State) *ControlsPanel {
	cp := &ControlsPanel{state: state}

	cp.sampleBtn = NewStepButton("",
		func() { state.StepAveragingWindow(-sizeStep) },
		func() { state.StepAveragingWindow(sizeStep) },
	)
	cp.screenBtn = NewStepButton("",
		func() { state.StepPreviewSize(-sizeStep) },
		func() { state.StepPreviewSize(sizeStep) },
	)
	cp.modeBtn = widget.NewButton("", func() { state.ToggleWheelMode() })

	cp.container = container.NewVBox(cp.sampleBtn, cp.screenBtn, cp.modeBtn)
	cp.refresh()

	state.On(app.EventConfigChanged, func(_ interface{}) { cp.refresh() })
	state.On(app.EventWheelModeChanged, func(_ interface{}) { cp.refresh() })

	return cp
}

// Container returns the panel container.
func (cp *ControlsPanel) Container() fyne.CanvasObject {
	return cp.container
}

func (cp *ControlsPanel) refresh() {
	cfg := cp.state.SampleConfig()
	cp.sampleBtn.SetText(fmt.Sprintf("sample: %2d", cfg.AveragingWindow))
	cp.screenBtn.SetText(fmt.Sprintf("screen: %2d", cfg.PreviewSize))
	cp.modeBtn.SetText("mode: " + modeLabel(cp.state.WheelMode()))
}

func modeLabel(mode string) string {
	if mode == config.WheelHSL {
		return strings.ToUpper(config.WheelHSL)
	}
	return strings.ToUpper(config.WheelHSV)
}
