//go:build linux

package daemon

import (
	"log"
	"sync"

	"github.com/1broseidon/floatwm/internal/platform"
	"github.com/1broseidon/floatwm/internal/tiling"
	"github.com/1broseidon/floatwm/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
)

// XEvents feeds X11 substructure and client events into a Daemon.
type XEvents struct {
	conn *x11.Connection
	d    *Daemon

	mu      sync.Mutex
	watched map[xproto.Window]bool
}

// BindX connects the root window handlers of conn to d. Call it after
// BecomeManager and before the event loop starts.
func BindX(conn *x11.Connection, d *Daemon) *XEvents {
	x := &XEvents{conn: conn, d: d, watched: make(map[xproto.Window]bool)}

	xevent.MapRequestFun(x.onMapRequest).Connect(conn.XUtil, conn.Root)
	xevent.ConfigureRequestFun(x.onConfigureRequest).Connect(conn.XUtil, conn.Root)
	return x
}

// Watch subscribes to the client events of a managed window. Watching a
// window twice is a no-op.
func (x *XEvents) Watch(id platform.WindowID) {
	win := xproto.Window(id)

	x.mu.Lock()
	if x.watched[win] {
		x.mu.Unlock()
		return
	}
	x.watched[win] = true
	x.mu.Unlock()

	if err := x.conn.SelectClientEvents(win); err != nil {
		log.Printf("Warning: failed to select events on 0x%x: %v", win, err)
	}

	xu := x.conn.XUtil
	xevent.DestroyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		if ev.Event != ev.Window {
			return
		}
		x.forget(ev.Window)
		x.d.Destroyed(platform.WindowID(ev.Window))
	}).Connect(xu, win)
	xevent.UnmapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.UnmapNotifyEvent) {
		if ev.Event != ev.Window {
			return
		}
		x.d.Unmapped(platform.WindowID(ev.Window))
	}).Connect(xu, win)
	xevent.FocusInFun(func(xu *xgbutil.XUtil, ev xevent.FocusInEvent) {
		if ev.Mode == xproto.NotifyModeGrab || ev.Mode == xproto.NotifyModeUngrab ||
			ev.Detail == xproto.NotifyDetailPointer {
			return
		}
		x.d.FocusIn(platform.WindowID(ev.Event))
	}).Connect(xu, win)
	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		name, err := xprop.AtomName(xu, ev.Atom)
		if err != nil || name != "WM_NORMAL_HINTS" {
			return
		}
		x.d.HintsChanged(platform.WindowID(ev.Window), hints(x.conn.NormalHints(ev.Window)))
	}).Connect(xu, win)
}

func (x *XEvents) forget(win xproto.Window) {
	x.mu.Lock()
	delete(x.watched, win)
	x.mu.Unlock()
	xevent.Detach(x.conn.XUtil, win)
}

func (x *XEvents) onMapRequest(xu *xgbutil.XUtil, ev xevent.MapRequestEvent) {
	win := ev.Window
	if !x.conn.Manageable(win) {
		if err := x.conn.MapWindow(win); err != nil {
			log.Printf("Warning: failed to map 0x%x: %v", win, err)
		}
		return
	}

	wx, wy, ww, wh, err := x.conn.WindowGeometry(win)
	if err != nil {
		// The window is already gone.
		return
	}

	managed := x.d.MapRequest(WindowInfo{
		ID:       platform.WindowID(win),
		Geometry: tiling.Rect{X: wx, Y: wy, Width: ww, Height: wh},
		Class:    x.conn.WindowClass(win),
		Hints:    hints(x.conn.NormalHints(win)),
	})
	if managed {
		x.Watch(platform.WindowID(win))
	}
}

func (x *XEvents) onConfigureRequest(xu *xgbutil.XUtil, ev xevent.ConfigureRequestEvent) {
	id := platform.WindowID(ev.Window)

	var cur tiling.Rect
	if c, ok := x.d.Engine().Client(id); ok {
		cur = c.Geometry
	} else {
		wx, wy, ww, wh, err := x.conn.WindowGeometry(ev.Window)
		if err != nil {
			return
		}
		cur = tiling.Rect{X: wx, Y: wy, Width: ww, Height: wh}
	}

	if ev.ValueMask&xproto.ConfigWindowX != 0 {
		cur.X = int(ev.X)
	}
	if ev.ValueMask&xproto.ConfigWindowY != 0 {
		cur.Y = int(ev.Y)
	}
	if ev.ValueMask&xproto.ConfigWindowWidth != 0 {
		cur.Width = int(ev.Width)
	}
	if ev.ValueMask&xproto.ConfigWindowHeight != 0 {
		cur.Height = int(ev.Height)
	}
	x.d.ConfigureRequest(id, cur)
}

// ClientList publishes the managed windows as _NET_CLIENT_LIST.
func ClientList(conn *x11.Connection) func([]platform.WindowID) {
	return func(ids []platform.WindowID) {
		wins := make([]xproto.Window, len(ids))
		for i, id := range ids {
			wins[i] = xproto.Window(id)
		}
		if err := conn.SetClientList(wins); err != nil {
			log.Printf("Warning: failed to update client list: %v", err)
		}
	}
}

func hints(h x11.SizeHints) tiling.Hints {
	return tiling.Hints{
		BaseWidth:  h.BaseWidth,
		BaseHeight: h.BaseHeight,
		WidthInc:   h.WidthInc,
		HeightInc:  h.HeightInc,
	}
}
