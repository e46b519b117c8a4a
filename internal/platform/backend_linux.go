//go:build linux

package platform

import (
	"fmt"

	"github.com/1broseidon/floatwm/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// Connection returns the underlying X11 connection.
func (b *LinuxBackend) Connection() *x11.Connection {
	if b == nil {
		return nil
	}
	return b.conn
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// Displays returns all active displays.
func (b *LinuxBackend) Displays() ([]Display, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, Display{
			ID:     m.ID,
			Name:   m.Name,
			Bounds: Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height},
		})
	}
	return displays, nil
}

// ListWindows lists the manageable top-level windows, bottom to top.
func (b *LinuxBackend) ListWindows() ([]Window, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	children, err := conn.StackingOrder()
	if err != nil {
		return nil, err
	}

	windows := make([]Window, 0, len(children))
	for _, id := range children {
		if !conn.Manageable(id) {
			continue
		}
		x, y, w, h, err := conn.WindowGeometry(id)
		if err != nil {
			continue
		}
		windows = append(windows, Window{
			ID:     WindowID(id),
			Title:  conn.WindowTitle(id),
			AppID:  conn.WindowClass(id),
			Bounds: Rect{X: x, Y: y, Width: w, Height: h},
			Mapped: conn.Viewable(id),
		})
	}
	return windows, nil
}

// StackingOrder returns every top-level window bottom to top.
func (b *LinuxBackend) StackingOrder() ([]WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	children, err := conn.StackingOrder()
	if err != nil {
		return nil, err
	}
	ids := make([]WindowID, len(children))
	for i, c := range children {
		ids[i] = WindowID(c)
	}
	return ids, nil
}

// MoveResize moves and resizes a window to the specified bounds.
func (b *LinuxBackend) MoveResize(windowID WindowID, bounds Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MoveResizeWindow(xproto.Window(windowID), bounds.X, bounds.Y, bounds.Width, bounds.Height)
}

func (b *LinuxBackend) Map(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MapWindow(xproto.Window(windowID))
}

func (b *LinuxBackend) Unmap(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.UnmapWindow(xproto.Window(windowID))
}

func (b *LinuxBackend) Raise(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.RaiseWindow(xproto.Window(windowID))
}

func (b *LinuxBackend) Lower(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.LowerWindow(xproto.Window(windowID))
}

func (b *LinuxBackend) Focus(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.FocusWindow(xproto.Window(windowID))
}

// Close requests graceful window close via WM_DELETE_WINDOW.
func (b *LinuxBackend) Close(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.CloseWindow(xproto.Window(windowID))
}

func (b *LinuxBackend) WarpPointer(x, y int, relative bool) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.WarpPointer(x, y, relative)
}

func (b *LinuxBackend) SetCurrentDesktop(desktop int) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.SetCurrentDesktop(desktop)
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}
