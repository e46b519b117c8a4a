package daemon

import (
	"github.com/1broseidon/floatwm/internal/engine"
	"github.com/1broseidon/floatwm/internal/platform"
	"github.com/1broseidon/floatwm/internal/tiling"
)

// MapRequest handles a window asking to be mapped. Ignored classes are
// mapped untouched and MapRequest reports false; everything else becomes a
// managed client.
func (d *Daemon) MapRequest(info WindowInfo) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cfg.Ignored(info.Class) {
		d.logger.Debug("mapping ignored window", "window", uint32(info.ID), "class", info.Class)
		if err := d.backend.Map(info.ID); err != nil {
			d.logger.Warn("failed to map ignored window", "window", uint32(info.ID), "error", err)
		}
		return false
	}

	newClient := !d.engine.Managed(info.ID)
	res := d.engine.Manage(info.ID, info.Geometry)
	if newClient && info.Hints != (tiling.Hints{}) {
		if err := d.engine.SetHints(info.ID, info.Hints); err != nil {
			d.invariant(err)
		}
	}
	d.apply(res.Directives)
	if newClient {
		d.clientsChanged()
	}
	return true
}

// Destroyed forgets a window the display reports as gone.
func (d *Daemon) Destroyed(id platform.WindowID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.unmanage(id)
}

// Unmapped forgets a client that withdrew itself. Clients that are not
// visible were unmapped by a hide or a workspace change and stay managed.
func (d *Daemon) Unmapped(id platform.WindowID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.engine.Managed(id) || !d.engine.Visible(id) {
		return
	}
	d.unmanage(id)
}

func (d *Daemon) unmanage(id platform.WindowID) {
	res, err := d.engine.Unmanage(id)
	if err != nil {
		d.invariant(err)
		return
	}
	if res.Note == engine.NoteIgnored {
		return
	}
	d.apply(res.Directives)
	d.clientsChanged()
}

// ConfigureRequest handles a window asking for new geometry. Managed clients
// go through the engine; other windows get what they asked for.
func (d *Daemon) ConfigureRequest(id platform.WindowID, geom tiling.Rect) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.engine.Managed(id) {
		bounds := platform.Rect{X: geom.X, Y: geom.Y, Width: geom.Width, Height: geom.Height}
		if err := d.backend.MoveResize(id, bounds); err != nil {
			d.logger.Debug("configure passthrough failed", "window", uint32(id), "error", err)
		}
		return
	}

	res, err := d.engine.Configure(id, geom)
	if err != nil {
		d.invariant(err)
		return
	}
	d.apply(res.Directives)
}

// FocusIn records a focus change the display made on its own.
func (d *Daemon) FocusIn(id platform.WindowID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.engine.FocusIn(id)
}

// HintsChanged records new size increments for a managed client.
func (d *Daemon) HintsChanged(id platform.WindowID, hints tiling.Hints) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.engine.Managed(id) {
		return
	}
	if err := d.engine.SetHints(id, hints); err != nil {
		d.invariant(err)
	}
}
