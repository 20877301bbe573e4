// Package mainwindow provides the picker window and its system tray menu.
package mainwindow

import (
	"fmt"
	"os"
	"time"

	"colorose/internal/app"
	"colorose/internal/config"
	"colorose/internal/logging"
	"colorose/internal/platform"
	"colorose/internal/version"
	"colorose/ui/canvas"
	"colorose/ui/panels"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/sirupsen/logrus"
)

const (
	appTitle = "Colorose"

	// The native handle exists only once the driver has created the window.
	attachRetry    = 100 * time.Millisecond
	attachAttempts = 50

	dockedWidth  = 450
	dockedHeight = 300
)

// MainWindow is the picker window.
type MainWindow struct {
	fyne.Window
	app    fyne.App
	state  *app.State
	screen *platform.Screen
	cfg    config.Config
	log    *logrus.Entry

	icon     fyne.Resource
	floating bool

	info      *panels.InfoPanel
	controls  *panels.ControlsPanel
	wheel     *canvas.WheelView
	preview   *canvas.PreviewView
	repainter *Repainter

	// Tray items whose labels follow the state
	previewItem *fyne.MenuItem
	sampleItem  *fyne.MenuItem
	modeItem    *fyne.MenuItem
	trayMenu    *fyne.Menu
}

// New creates the window. screen may be nil, in which case no native
// window configuration is attempted.
func New(fyneApp fyne.App, state *app.State, screen *platform.Screen, cfg config.Config) *MainWindow {
	mw := &MainWindow{
		app:    fyneApp,
		state:  state,
		screen: screen,
		cfg:    cfg,
		log:    logging.NewLogger("ui"),
	}

	mw.Window = mw.createWindow()
	mw.loadIcon()
	mw.setupUI()
	mw.setupTray()
	mw.setupEventHandlers()

	mw.repainter = NewRepainter(state, cfg.RepaintInterval, mw.render)

	mw.log.WithFields(logrus.Fields{
		"version":  version.Version,
		"floating": mw.floating,
	}).Info("Window created")
	return mw
}

// createWindow returns a borderless splash window in floating mode when the
// driver supports it, and a fixed-size decorated window otherwise.
func (mw *MainWindow) createWindow() fyne.Window {
	if mw.cfg.Floating {
		if drv, ok := mw.app.Driver().(desktop.Driver); ok {
			mw.floating = true
			return drv.CreateSplashWindow()
		}
		mw.log.Warn("Driver has no borderless windows, using a docked window")
	}

	win := mw.app.NewWindow(appTitle)
	win.SetFixedSize(true)
	win.Resize(fyne.NewSize(dockedWidth, dockedHeight))
	return win
}

// loadIcon reads the window and tray icon. A missing icon is tolerated.
func (mw *MainWindow) loadIcon() {
	if mw.cfg.IconPath == "" {
		return
	}
	res, err := fyne.LoadResourceFromPath(mw.cfg.IconPath)
	if err != nil {
		mw.log.WithError(err).WithField("path", mw.cfg.IconPath).Warn("Failed to load icon")
		return
	}
	mw.icon = res
	mw.SetIcon(res)
	mw.app.SetIcon(res)
}

// setupUI creates the layout: info (and controls when docked) on top, wheel
// and preview below.
func (mw *MainWindow) setupUI() {
	mw.info = panels.NewInfoPanel()
	mw.wheel = canvas.NewWheelView()
	mw.preview = canvas.NewPreviewView()

	top := container.NewHBox(mw.info.Container())
	if !mw.floating {
		mw.controls = panels.NewControlsPanel(mw.state)
		top.Add(mw.controls.Container())
	}

	bottom := container.NewHBox(
		container.NewPadded(mw.wheel),
		container.NewPadded(mw.preview),
	)

	mw.SetContent(container.NewPadded(container.NewVBox(top, bottom)))
	if mw.floating {
		mw.Resize(mw.Content().MinSize())
	}
}

// setupTray installs the system tray menu when the app supports one.
func (mw *MainWindow) setupTray() {
	desk, ok := mw.app.(desktop.App)
	if !ok {
		return
	}

	mw.previewItem = fyne.NewMenuItem("", nil)
	mw.previewItem.ChildMenu = fyne.NewMenu("",
		fyne.NewMenuItem("Larger", func() { mw.state.StepPreviewSize(2) }),
		fyne.NewMenuItem("Smaller", func() { mw.state.StepPreviewSize(-2) }),
	)
	mw.sampleItem = fyne.NewMenuItem("", nil)
	mw.sampleItem.ChildMenu = fyne.NewMenu("",
		fyne.NewMenuItem("Larger", func() { mw.state.StepAveragingWindow(2) }),
		fyne.NewMenuItem("Smaller", func() { mw.state.StepAveragingWindow(-2) }),
	)
	mw.modeItem = fyne.NewMenuItem("", func() { mw.state.ToggleWheelMode() })

	exitItem := fyne.NewMenuItem("Exit", func() {
		mw.log.Info("Exit requested from tray")
		os.Exit(0)
	})
	exitItem.IsQuit = true

	mw.trayMenu = fyne.NewMenu(appTitle,
		mw.previewItem,
		mw.sampleItem,
		mw.modeItem,
		fyne.NewMenuItemSeparator(),
		exitItem,
	)
	mw.updateTrayLabels()

	desk.SetSystemTrayMenu(mw.trayMenu)
	if mw.icon != nil {
		desk.SetSystemTrayIcon(mw.icon)
	}
}

// updateTrayLabels shows the current settings in the tray menu.
func (mw *MainWindow) updateTrayLabels() {
	if mw.trayMenu == nil {
		return
	}
	cfg := mw.state.SampleConfig()
	mw.previewItem.Label = fmt.Sprintf("Preview size: %d", cfg.PreviewSize)
	mw.sampleItem.Label = fmt.Sprintf("Averaging: %d", cfg.AveragingWindow)
	if mw.state.WheelMode() == config.WheelHSL {
		mw.modeItem.Label = "Wheel: HSL"
	} else {
		mw.modeItem.Label = "Wheel: HSV"
	}
	mw.trayMenu.Refresh()
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventConfigChanged, func(data interface{}) {
		if cfg, ok := data.(config.SampleConfig); ok {
			mw.log.WithFields(logrus.Fields{
				"preview_size":     cfg.PreviewSize,
				"averaging_window": cfg.AveragingWindow,
			}).Debug("Sample config changed")
		}
		mw.updateTrayLabels()
	})

	mw.state.On(app.EventWheelModeChanged, func(data interface{}) {
		mw.log.WithField("mode", data).Debug("Wheel mode changed")
		mw.updateTrayLabels()
	})
}

// render draws one snapshot.
func (mw *MainWindow) render(snap app.Snapshot) {
	mw.info.Update(snap)
	mw.wheel.SetColor(snap.Color, snap.WheelMode)
	mw.preview.SetGrid(snap.Grid, snap.Config.AveragingWindow, snap.Color.Revert())
}

// attachNative waits for the native window handle, hands it to the
// platform and applies the overlay flags and backdrop. Every step is
// best-effort.
func (mw *MainWindow) attachNative() {
	if mw.screen == nil {
		return
	}
	nw, ok := mw.Window.(driver.NativeWindow)
	if !ok {
		mw.log.Warn("Window has no native handle, tooltip will not follow the cursor")
		return
	}

	var handle uintptr
	for i := 0; i < attachAttempts && handle == 0; i++ {
		if i > 0 {
			time.Sleep(attachRetry)
		}
		handle = nativeHandle(nw)
	}
	if handle == 0 {
		mw.log.Warn("No usable native window handle, tooltip will not follow the cursor")
		return
	}

	mw.screen.AttachWindow(handle)
	mw.log.WithField("handle", fmt.Sprintf("%#x", handle)).Debug("Native window attached")

	if err := mw.screen.ConfigureOverlay(); err != nil {
		mw.log.WithError(err).Warn("Failed to configure overlay window")
	}
	if mw.cfg.Backdrop {
		if err := mw.screen.EnableBackdrop(); err != nil {
			mw.log.WithError(err).Warn("Failed to enable backdrop")
		}
	}
}

// nativeHandle returns the Win32 HWND or X11 window id, or 0 when the
// window is not created yet or uses another windowing system.
func nativeHandle(nw driver.NativeWindow) uintptr {
	var handle uintptr
	nw.RunNative(func(ctx any) {
		switch c := ctx.(type) {
		case driver.WindowsWindowContext:
			handle = c.HWND
		case driver.X11WindowContext:
			handle = c.WindowHandle
		}
	})
	return handle
}

// ShowAndRun shows the window, starts repainting and runs the event loop.
func (mw *MainWindow) ShowAndRun() {
	go mw.attachNative()
	mw.repainter.Start()
	defer mw.repainter.Stop()

	mw.Window.ShowAndRun()
}

// Floating reports whether the window follows the cursor.
func (mw *MainWindow) Floating() bool {
	return mw.floating
}

// Repainter returns the window's repainter.
func (mw *MainWindow) Repainter() *Repainter {
	return mw.repainter
}
