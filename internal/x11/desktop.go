package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"
)

var supportedHints = []string{
	"_NET_SUPPORTED",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_NAME",
	"_NET_ACTIVE_WINDOW",
	"_NET_CLIENT_LIST",
	"_NET_CURRENT_DESKTOP",
	"_NET_NUMBER_OF_DESKTOPS",
}

// Announce publishes the EWMH support properties for a manager called name
// with the given number of desktops.
func (c *Connection) Announce(name string, desktops int) error {
	check, err := xwindow.Create(c.XUtil, c.Root)
	if err != nil {
		return fmt.Errorf("failed to create check window: %w", err)
	}
	if err := ewmh.SupportingWmCheckSet(c.XUtil, c.Root, check.Id); err != nil {
		return err
	}
	if err := ewmh.SupportingWmCheckSet(c.XUtil, check.Id, check.Id); err != nil {
		return err
	}
	if err := ewmh.WmNameSet(c.XUtil, check.Id, name); err != nil {
		return err
	}
	if err := ewmh.SupportedSet(c.XUtil, supportedHints); err != nil {
		return err
	}
	return ewmh.NumberOfDesktopsSet(c.XUtil, uint(desktops))
}

// GetCurrentDesktop returns the current virtual desktop number (0-indexed).
// Uses _NET_CURRENT_DESKTOP atom. Returns 0 with an error if detection fails.
func (c *Connection) GetCurrentDesktop() (int, error) {
	desktop, err := ewmh.CurrentDesktopGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get current desktop: %w", err)
	}
	return int(desktop), nil
}

// SetCurrentDesktop publishes the active workspace as _NET_CURRENT_DESKTOP.
func (c *Connection) SetCurrentDesktop(desktop int) error {
	return ewmh.CurrentDesktopSet(c.XUtil, uint(desktop))
}

// SetClientList publishes the managed windows as _NET_CLIENT_LIST.
func (c *Connection) SetClientList(windows []xproto.Window) error {
	return ewmh.ClientListSet(c.XUtil, windows)
}

// SetNumberOfDesktops publishes the workspace count as
// _NET_NUMBER_OF_DESKTOPS.
func (c *Connection) SetNumberOfDesktops(desktops int) error {
	return ewmh.NumberOfDesktopsSet(c.XUtil, uint(desktops))
}
