//go:build !windows && !linux

package platform

import (
	"fmt"
	"runtime"

	"colorose/pkg/geometry"
)

func cursorPosition() (geometry.PointInt, error) {
	return geometry.PointInt{}, fmt.Errorf("%w: not implemented on %s", ErrCursorUnavailable, runtime.GOOS)
}

func moveWindow(uintptr, geometry.PointInt) error {
	return fmt.Errorf("window placement not implemented on %s", runtime.GOOS)
}

func configureOverlay(uintptr) error {
	return fmt.Errorf("%w: overlay flags not implemented on %s", ErrSetupFailure, runtime.GOOS)
}

func enableBackdrop(uintptr) error {
	return fmt.Errorf("%w: backdrop not implemented on %s", ErrSetupFailure, runtime.GOOS)
}

func enableDPIAwareness() error {
	return nil
}
