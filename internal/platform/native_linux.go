//go:build linux

package platform

import (
	"fmt"
	"sync"

	"colorose/pkg/geometry"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	xOnce sync.Once
	xConn *xgb.Conn
	xErr  error
)

// x11 returns the shared X connection, dialing $DISPLAY on first use.
func x11() (*xgb.Conn, xproto.Window, error) {
	xOnce.Do(func() {
		xConn, xErr = xgb.NewConn()
	})
	if xErr != nil {
		return nil, 0, xErr
	}
	return xConn, xproto.Setup(xConn).DefaultScreen(xConn).Root, nil
}

func cursorPosition() (geometry.PointInt, error) {
	conn, root, err := x11()
	if err != nil {
		return geometry.PointInt{}, fmt.Errorf("%w: %v", ErrCursorUnavailable, err)
	}
	reply, err := xproto.QueryPointer(conn, root).Reply()
	if err != nil {
		return geometry.PointInt{}, fmt.Errorf("%w: QueryPointer: %v", ErrCursorUnavailable, err)
	}
	if !reply.SameScreen {
		return geometry.PointInt{}, fmt.Errorf("%w: pointer is on another screen", ErrCursorUnavailable)
	}
	return geometry.Pt(int(reply.RootX), int(reply.RootY)), nil
}

func moveWindow(handle uintptr, p geometry.PointInt) error {
	conn, _, err := x11()
	if err != nil {
		return err
	}
	return xproto.ConfigureWindowChecked(conn, xproto.Window(handle),
		xproto.ConfigWindowX|xproto.ConfigWindowY,
		[]uint32{uint32(int32(p.X)), uint32(int32(p.Y))}).Check()
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	return reply.Atom, nil
}

// configureOverlay asks the window manager to keep the window above others
// and off the taskbar (EWMH _NET_WM_STATE).
func configureOverlay(handle uintptr) error {
	conn, root, err := x11()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSetupFailure, err)
	}

	atoms := make([]xproto.Atom, 3)
	for i, name := range []string{"_NET_WM_STATE", "_NET_WM_STATE_ABOVE", "_NET_WM_STATE_SKIP_TASKBAR"} {
		if atoms[i], err = internAtom(conn, name); err != nil {
			return fmt.Errorf("%w: intern %s: %v", ErrSetupFailure, name, err)
		}
	}

	const netWMStateAdd = 1
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(handle),
		Type:   atoms[0],
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			netWMStateAdd, uint32(atoms[1]), uint32(atoms[2]), 1, 0,
		}),
	}
	mask := uint32(xproto.EventMaskSubstructureNotify | xproto.EventMaskSubstructureRedirect)
	if err := xproto.SendEventChecked(conn, false, root, mask, string(ev.Bytes())).Check(); err != nil {
		return fmt.Errorf("%w: _NET_WM_STATE: %v", ErrSetupFailure, err)
	}
	return nil
}

func enableBackdrop(uintptr) error {
	return fmt.Errorf("%w: backdrop blur is not supported on X11", ErrSetupFailure)
}

func enableDPIAwareness() error {
	// X11 reports physical pixels already.
	return nil
}
