package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// SizeHints are the resize increments of WM_NORMAL_HINTS.
type SizeHints struct {
	BaseWidth  int
	BaseHeight int
	WidthInc   int
	HeightInc  int
}

// WindowGeometry returns a window's position relative to the root and its size.
func (c *Connection) WindowGeometry(windowID xproto.Window) (x, y, width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return 0, 0, 0, 0, err
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		windowID,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return 0, 0, 0, 0, err
	}

	return int(translate.DstX), int(translate.DstY), int(geom.Width), int(geom.Height), nil
}

// MoveResizeWindow moves and resizes a window to the specified geometry
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("invalid size %dx%d", width, height)
	}
	xwindow.New(c.XUtil, windowID).MoveResize(x, y, width, height)
	return nil
}

// MapWindow makes a window viewable.
func (c *Connection) MapWindow(windowID xproto.Window) error {
	return xproto.MapWindowChecked(c.XUtil.Conn(), windowID).Check()
}

// UnmapWindow hides a window without destroying it.
func (c *Connection) UnmapWindow(windowID xproto.Window) error {
	return xproto.UnmapWindowChecked(c.XUtil.Conn(), windowID).Check()
}

// RaiseWindow puts a window on top of its siblings.
func (c *Connection) RaiseWindow(windowID xproto.Window) error {
	return c.restack(windowID, xproto.StackModeAbove)
}

// LowerWindow puts a window below its siblings.
func (c *Connection) LowerWindow(windowID xproto.Window) error {
	return c.restack(windowID, xproto.StackModeBelow)
}

func (c *Connection) restack(windowID xproto.Window, mode uint32) error {
	return xproto.ConfigureWindowChecked(c.XUtil.Conn(), windowID,
		xproto.ConfigWindowStackMode, []uint32{mode}).Check()
}

// FocusWindow gives input focus to a window and publishes it as
// _NET_ACTIVE_WINDOW.
func (c *Connection) FocusWindow(windowID xproto.Window) error {
	err := xproto.SetInputFocusChecked(c.XUtil.Conn(), xproto.InputFocusPointerRoot,
		windowID, xproto.TimeCurrentTime).Check()
	if err != nil {
		return err
	}
	return ewmh.ActiveWindowSet(c.XUtil, windowID)
}

// CloseWindow asks a window to close via WM_DELETE_WINDOW, or kills its
// client when the window does not take part in that protocol.
func (c *Connection) CloseWindow(windowID xproto.Window) error {
	protocols, err := icccm.WmProtocolsGet(c.XUtil, windowID)
	if err != nil || !containsString(protocols, "WM_DELETE_WINDOW") {
		return xproto.KillClientChecked(c.XUtil.Conn(), uint32(windowID)).Check()
	}

	deleteReply, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len("WM_DELETE_WINDOW")), "WM_DELETE_WINDOW").Reply()
	if err != nil {
		return err
	}
	protocolsReply, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len("WM_PROTOCOLS")), "WM_PROTOCOLS").Reply()
	if err != nil {
		return err
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   protocolsReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(deleteReply.Atom), 0, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		windowID,
		xproto.EventMaskNoEvent,
		string(ev.Bytes()),
	).Check()
}

// WarpPointer moves the pointer to (x, y) on the root window, or by (x, y)
// from its current position when relative is set.
func (c *Connection) WarpPointer(x, y int, relative bool) error {
	dst := c.Root
	if relative {
		dst = xproto.WindowNone
	}
	return xproto.WarpPointerChecked(c.XUtil.Conn(), xproto.WindowNone, dst,
		0, 0, 0, 0, int16(x), int16(y)).Check()
}

// StackingOrder returns the root's children bottom to top.
func (c *Connection) StackingOrder() ([]xproto.Window, error) {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to query window tree: %w", err)
	}
	return tree.Children, nil
}

// SelectClientEvents subscribes to the events the manager tracks on a client.
func (c *Connection) SelectClientEvents(windowID xproto.Window) error {
	mask := uint32(xproto.EventMaskEnterWindow |
		xproto.EventMaskFocusChange |
		xproto.EventMaskPropertyChange |
		xproto.EventMaskStructureNotify)
	return xproto.ChangeWindowAttributesChecked(c.XUtil.Conn(), windowID,
		xproto.CwEventMask, []uint32{mask}).Check()
}

// Manageable reports whether a window should be managed: it must not be
// override-redirect and must be a normal application window.
func (c *Connection) Manageable(windowID xproto.Window) bool {
	attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), windowID).Reply()
	if err != nil || attrs.OverrideRedirect {
		return false
	}
	return c.IsNormalWindow(windowID)
}

// Viewable reports whether a window is currently mapped.
func (c *Connection) Viewable(windowID xproto.Window) bool {
	attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), windowID).Reply()
	if err != nil {
		return false
	}
	return attrs.MapState == xproto.MapStateViewable
}

// NormalHints reads the resize increments of a window. Missing hints yield
// zero values.
func (c *Connection) NormalHints(windowID xproto.Window) SizeHints {
	nh, err := icccm.WmNormalHintsGet(c.XUtil, windowID)
	if err != nil {
		return SizeHints{}
	}
	var hints SizeHints
	if nh.Flags&icccm.SizeHintPBaseSize > 0 {
		hints.BaseWidth = int(nh.BaseWidth)
		hints.BaseHeight = int(nh.BaseHeight)
	}
	if nh.Flags&icccm.SizeHintPResizeInc > 0 {
		hints.WidthInc = int(nh.WidthInc)
		hints.HeightInc = int(nh.HeightInc)
	}
	return hints
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL", "_NET_WM_WINDOW_TYPE_DIALOG":
			return true
		case "_NET_WM_WINDOW_TYPE_DESKTOP",
			"_NET_WM_WINDOW_TYPE_DOCK",
			"_NET_WM_WINDOW_TYPE_SPLASH",
			"_NET_WM_WINDOW_TYPE_NOTIFICATION":
			return false
		}
	}

	return len(types) == 0
}

// WindowTitle returns _NET_WM_NAME, falling back to WM_NAME.
func (c *Connection) WindowTitle(windowID xproto.Window) string {
	if title, err := ewmh.WmNameGet(c.XUtil, windowID); err == nil {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	if title, err := icccm.WmNameGet(c.XUtil, windowID); err == nil {
		return strings.TrimSpace(title)
	}
	return ""
}

// WindowClass returns the class part of WM_CLASS.
func (c *Connection) WindowClass(windowID xproto.Window) string {
	wmClass, err := icccm.WmClassGet(c.XUtil, windowID)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(wmClass.Class)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
