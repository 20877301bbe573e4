// Package platform wraps the operating-system calls the picker depends on:
// cursor position, screen capture and window placement.
package platform

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"colorose/internal/logging"
	"colorose/pkg/colorutil"
	"colorose/pkg/geometry"

	"github.com/kbinani/screenshot"
	"github.com/sirupsen/logrus"
)

// Error taxonomy. Callers test with errors.Is; the wrapped error carries the
// OS detail.
var (
	ErrCursorUnavailable  = errors.New("cursor position unavailable")
	ErrCaptureUnavailable = errors.New("screen capture unavailable")
	ErrSetupFailure       = errors.New("platform setup failed")
)

// Platform is the boundary between the sampler and the operating system.
// All coordinates are physical device pixels.
type Platform interface {
	// CursorPosition returns the global cursor position.
	CursorPosition() (geometry.PointInt, error)

	// DisplayAt returns the bounds of the display containing p.
	DisplayAt(p geometry.PointInt) (geometry.RectInt, error)

	// CaptureRegion captures a width x height block with its top-left
	// corner at origin.
	CaptureRegion(origin geometry.PointInt, width, height int) (colorutil.PixelGrid, error)

	// SetWindowPosition moves the tip window. Failures are not reported.
	SetWindowPosition(p geometry.PointInt)
}

// Screen is the Platform implementation backed by the real desktop.
type Screen struct {
	mu     sync.Mutex
	window uintptr
	log    *logrus.Entry
}

var _ Platform = (*Screen)(nil)

// NewScreen creates a Screen. No window is attached until AttachWindow.
func NewScreen() *Screen {
	return &Screen{log: logging.NewLogger("platform")}
}

// AttachWindow records the native handle of the window SetWindowPosition moves.
func (s *Screen) AttachWindow(handle uintptr) {
	s.mu.Lock()
	s.window = handle
	s.mu.Unlock()
}

func (s *Screen) attached() uintptr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window
}

// CursorPosition returns the global cursor position.
func (s *Screen) CursorPosition() (geometry.PointInt, error) {
	return cursorPosition()
}

// Displays returns the bounds of every active display.
func Displays() []geometry.RectInt {
	n := screenshot.NumActiveDisplays()
	displays := make([]geometry.RectInt, 0, n)
	for i := 0; i < n; i++ {
		displays = append(displays, geometry.RectFromImage(screenshot.GetDisplayBounds(i)))
	}
	return displays
}

// DisplayAt returns the bounds of the display containing p.
func (s *Screen) DisplayAt(p geometry.PointInt) (geometry.RectInt, error) {
	return displayAt(Displays(), p)
}

func displayAt(displays []geometry.RectInt, p geometry.PointInt) (geometry.RectInt, error) {
	if len(displays) == 0 {
		return geometry.RectInt{}, fmt.Errorf("%w: no active displays", ErrCaptureUnavailable)
	}
	for _, d := range displays {
		if d.Contains(p) {
			return d, nil
		}
	}
	return geometry.RectInt{}, fmt.Errorf("%w: no display contains %s", ErrCaptureUnavailable, p)
}

// CaptureRegion captures a square block of the screen. Parts of the block
// outside every display come back black.
func (s *Screen) CaptureRegion(origin geometry.PointInt, width, height int) (colorutil.PixelGrid, error) {
	if width != height || width <= 0 {
		return colorutil.PixelGrid{}, fmt.Errorf("%w: region must be a non-empty square, got %dx%d",
			ErrCaptureUnavailable, width, height)
	}

	rect := image.Rect(origin.X, origin.Y, origin.X+width, origin.Y+height)
	if !intersectsAny(Displays(), rect) {
		return colorutil.PixelGrid{}, fmt.Errorf("%w: region %v is off-screen", ErrCaptureUnavailable, rect)
	}

	img, err := screenshot.CaptureRect(rect)
	if err != nil {
		return colorutil.PixelGrid{}, fmt.Errorf("%w: %v", ErrCaptureUnavailable, err)
	}
	return colorutil.GridFromImage(img, width), nil
}

func intersectsAny(displays []geometry.RectInt, rect image.Rectangle) bool {
	for _, d := range displays {
		if d.Image().Overlaps(rect) {
			return true
		}
	}
	return false
}

// SetWindowPosition moves the attached window. It is a no-op until a window
// is attached.
func (s *Screen) SetWindowPosition(p geometry.PointInt) {
	handle := s.attached()
	if handle == 0 {
		return
	}
	if err := moveWindow(handle, p); err != nil {
		s.log.WithError(err).Debug("Window move failed")
	}
}

// ConfigureOverlay makes the attached window always-on-top and hides it
// from the taskbar where the OS supports it.
func (s *Screen) ConfigureOverlay() error {
	handle := s.attached()
	if handle == 0 {
		return fmt.Errorf("%w: no window attached", ErrSetupFailure)
	}
	return configureOverlay(handle)
}

// EnableBackdrop applies the translucent blur effect to the attached window.
func (s *Screen) EnableBackdrop() error {
	handle := s.attached()
	if handle == 0 {
		return fmt.Errorf("%w: no window attached", ErrSetupFailure)
	}
	return enableBackdrop(handle)
}

// EnableDPIAwareness declares the process DPI-aware so cursor and capture
// coordinates share the physical pixel space. It must run before any window
// is created.
func EnableDPIAwareness() error {
	return enableDPIAwareness()
}
