//go:build windows

package platform

import (
	"fmt"
	"unsafe"

	"colorose/pkg/geometry"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	shcore = windows.NewLazySystemDLL("shcore.dll")
	dwmapi = windows.NewLazySystemDLL("dwmapi.dll")

	procGetCursorPos           = user32.NewProc("GetCursorPos")
	procSetWindowPos           = user32.NewProc("SetWindowPos")
	procGetWindowLongW         = user32.NewProc("GetWindowLongW")
	procSetWindowLongW         = user32.NewProc("SetWindowLongW")
	procSetProcessDPIAware     = user32.NewProc("SetProcessDPIAware")
	procSetProcessDpiAwareness = shcore.NewProc("SetProcessDpiAwareness")
	procDwmSetWindowAttribute  = dwmapi.NewProc("DwmSetWindowAttribute")
)

const (
	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
	swpNoZOrder   = 0x0004
	swpNoActivate = 0x0010
	swpFrameChg   = 0x0020

	wsExToolWindow = 0x00000080
	wsExAppWindow  = 0x00040000

	processPerMonitorDPIAware = 2
	eAccessDenied             = 0x80070005

	dwmwaSystemBackdropType = 38
	backdropAcrylic         = 3
)

var (
	hwndTopmost = ^uintptr(0) // (HWND)-1
	gwlExStyle  = int32(-20)
)

type point struct {
	X, Y int32
}

func cursorPosition() (geometry.PointInt, error) {
	var pt point
	r, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if r == 0 {
		return geometry.PointInt{}, fmt.Errorf("%w: GetCursorPos: %v", ErrCursorUnavailable, err)
	}
	return geometry.Pt(int(pt.X), int(pt.Y)), nil
}

func moveWindow(handle uintptr, p geometry.PointInt) error {
	r, _, err := procSetWindowPos.Call(handle, 0,
		uintptr(int32(p.X)), uintptr(int32(p.Y)), 0, 0,
		swpNoSize|swpNoZOrder|swpNoActivate)
	if r == 0 {
		return fmt.Errorf("SetWindowPos: %v", err)
	}
	return nil
}

func configureOverlay(handle uintptr) error {
	style, _, _ := procGetWindowLongW.Call(handle, uintptr(gwlExStyle))
	style = (style | wsExToolWindow) &^ wsExAppWindow
	procSetWindowLongW.Call(handle, uintptr(gwlExStyle), style)

	r, _, err := procSetWindowPos.Call(handle, hwndTopmost, 0, 0, 0, 0,
		swpNoMove|swpNoSize|swpNoActivate|swpFrameChg)
	if r == 0 {
		return fmt.Errorf("%w: SetWindowPos(HWND_TOPMOST): %v", ErrSetupFailure, err)
	}
	return nil
}

func enableBackdrop(handle uintptr) error {
	if err := procDwmSetWindowAttribute.Find(); err != nil {
		return fmt.Errorf("%w: %v", ErrSetupFailure, err)
	}
	value := uint32(backdropAcrylic)
	hr, _, _ := procDwmSetWindowAttribute.Call(handle, dwmwaSystemBackdropType,
		uintptr(unsafe.Pointer(&value)), unsafe.Sizeof(value))
	if hr != 0 {
		return fmt.Errorf("%w: DwmSetWindowAttribute: HRESULT 0x%08X", ErrSetupFailure, uint32(hr))
	}
	return nil
}

func enableDPIAwareness() error {
	if procSetProcessDpiAwareness.Find() == nil {
		hr, _, _ := procSetProcessDpiAwareness.Call(processPerMonitorDPIAware)
		// E_ACCESSDENIED means the awareness was already declared.
		if hr == 0 || uint32(hr) == eAccessDenied {
			return nil
		}
		return fmt.Errorf("%w: SetProcessDpiAwareness: HRESULT 0x%08X", ErrSetupFailure, uint32(hr))
	}

	r, _, err := procSetProcessDPIAware.Call()
	if r == 0 {
		return fmt.Errorf("%w: SetProcessDPIAware: %v", ErrSetupFailure, err)
	}
	return nil
}
