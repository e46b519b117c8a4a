package daemon

import (
	"github.com/1broseidon/floatwm/internal/engine"
	"github.com/1broseidon/floatwm/internal/hotkeys"
)

// Trigger implements hotkeys.Sink. Button bindings act on the window under
// the pointer when it is managed, otherwise on the focused client.
func (d *Daemon) Trigger(t hotkeys.Trigger) {
	d.mu.Lock()
	defer d.mu.Unlock()

	res := d.run(d.event(t))
	if res.Note != engine.NoteNone {
		d.logger.Debug("binding had no effect", "action", t.Action.String(), "note", res.Note.String())
	}
}

// BeginDrag implements hotkeys.Sink.
func (d *Daemon) BeginDrag(t hotkeys.Trigger) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t.Window == 0 || !d.engine.Managed(t.Window) {
		return false
	}
	ev := d.event(t)
	ev.Kind = engine.EventPress
	res := d.run(ev)
	return res.Note == engine.NoteNone
}

// DragMotion implements hotkeys.Sink.
func (d *Daemon) DragMotion(rootX, rootY int) {
	d.pointer(engine.EventMotion, rootX, rootY)
}

// EndDrag implements hotkeys.Sink.
func (d *Daemon) EndDrag(rootX, rootY int) {
	d.pointer(engine.EventRelease, rootX, rootY)
}

// AbortDrag implements hotkeys.Sink.
func (d *Daemon) AbortDrag() {
	d.pointer(engine.EventAbort, 0, 0)
}

func (d *Daemon) pointer(kind engine.EventKind, x, y int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.run(engine.Event{Kind: kind, PointerX: x, PointerY: y})
}

func (d *Daemon) event(t hotkeys.Trigger) engine.Event {
	ev := engine.Event{
		Kind:     engine.EventAction,
		Action:   t.Action,
		PointerX: t.RootX,
		PointerY: t.RootY,
	}
	if t.Window != 0 && d.engine.Managed(t.Window) {
		ev.Target = t.Window
	}
	return ev
}

var _ hotkeys.Sink = (*Daemon)(nil)

