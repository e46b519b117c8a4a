package engine

import (
	"github.com/1broseidon/floatwm/internal/platform"
	"github.com/1broseidon/floatwm/internal/registry"
	"github.com/1broseidon/floatwm/internal/tiling"
	"github.com/1broseidon/floatwm/internal/workspace"
)

// Manage starts managing a window the display layer asked to map. The
// client joins the active workspace and screen, is placed on that screen and
// takes the focus. Managing a known window again only undoes a hide.
func (e *Engine) Manage(id platform.WindowID, geom tiling.Rect) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if c, ok := e.reg.Get(id); ok {
		if !c.Flags.Hidden {
			return noted(NoteIgnored)
		}
		// Get just found id; SetFlag cannot fail.
		_ = e.reg.SetFlag(id, registry.FlagHidden, false)
		if !c.Visible(e.ws.Active()) {
			return Result{}
		}
		e.focus.Focus(id)
		return Result{Directives: append([]platform.Directive{platform.ForWindow(platform.DirectiveShow, id)}, e.focusOn(c)...)}
	}

	c := e.reg.Register(id, geom, e.ws.Active(), e.ws.ActiveScreen())
	// Register just added id; SetGeometry cannot fail.
	_, _ = e.reg.SetGeometry(id, e.clamp(c, c.Geometry))
	e.focus.Add(id, c.Workspace)
	e.focus.Focus(id)
	e.logger.Debug("managing client", "window", uint32(id), "workspace", c.Workspace, "screen", c.Screen)

	res := Result{Directives: []platform.Directive{
		platform.Geometry(id, c.Geometry),
		platform.ForWindow(platform.DirectiveShow, id),
	}}
	res.add(e.raise(id)...)
	res.add(platform.ForWindow(platform.DirectiveFocus, id))
	return res
}

// Adopt registers a window that was already mapped when the engine started.
// It keeps its geometry, lands on the screen containing it and does not take
// the focus.
func (e *Engine) Adopt(id platform.WindowID, geom tiling.Rect) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.reg.Get(id); ok {
		return
	}
	c := e.reg.Register(id, geom, e.ws.Active(), e.ws.ScreenAt(geom))
	e.focus.Add(id, c.Workspace)
}

// Unmanage forgets a destroyed or withdrawn window. Unknown ids are ignored.
// A drag on the window ends and the deferred actions run.
func (e *Engine) Unmanage(id platform.WindowID) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.reg.Get(id); !ok {
		return noted(NoteIgnored), nil
	}
	dragged := e.drag.Forget(id)
	wasFocused := e.isFocused(id)
	e.reg.Unregister(id)
	e.focus.Remove(id)
	e.logger.Debug("unmanaged client", "window", uint32(id))

	var res Result
	if wasFocused {
		res.add(e.refocus()...)
	}
	if dragged {
		return e.replay(res)
	}
	return res, nil
}

// FocusIn records a focus change made outside the engine, e.g. a click.
// Windows the engine does not manage are ignored.
func (e *Engine) FocusIn(id platform.WindowID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.reg.Get(id); ok {
		e.focus.Focus(id)
	}
}

// Configure handles a client's own request for new geometry. Normal clients
// get it, clamped to their screen; maximized, halved or folded clients keep
// their place.
func (e *Engine) Configure(id platform.WindowID, geom tiling.Rect) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.reg.Lookup(id)
	if err != nil {
		return Result{}, err
	}
	if c.Tiling != tiling.StateNormal || (e.drag.Active() && e.dragging(id)) {
		return Result{Directives: []platform.Directive{platform.Geometry(id, c.Geometry)}}, nil
	}
	return e.commit(c, registry.Update{Geometry: e.clamp(c, geom), Tiling: tiling.StateNormal})
}

func (e *Engine) dragging(id platform.WindowID) bool {
	s, ok := e.drag.Session()
	return ok && s.Client == id
}

// SetHints records the size increments of a client.
func (e *Engine) SetHints(id platform.WindowID, hints tiling.Hints) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reg.SetHints(id, hints)
}

// SetScreens replaces the screen list. Clients on screens that no longer
// exist move to the screen containing them.
func (e *Engine) SetScreens(screens []workspace.Screen) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.ws.SetScreens(screens)
	n := len(e.ws.Screens())
	for _, c := range e.reg.All() {
		if c.Screen >= n {
			// Ids from All are registered; MoveTo cannot fail.
			_ = e.reg.MoveTo(c.ID, c.Workspace, e.ws.ScreenAt(c.Geometry))
		}
	}
}

// Managed reports whether id is a managed client.
func (e *Engine) Managed(id platform.WindowID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.reg.Get(id)
	return ok
}

// Reload swaps in new settings. Client state is kept; clients on workspaces
// past a reduced count move to the last workspace, which becomes active when
// the active one is gone. The result carries the visibility changes this
// causes.
func (e *Engine) Reload(settings Settings) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.ws.Active()
	shown := workspace.Shown(e.reg.All(), prev)

	e.settings = settings
	e.reg.SetMinSize(settings.MinSize)
	e.ws.SetCount(settings.WorkspaceCount)
	e.ws.SetMargins(settings.Margins)
	e.focus.Resize(settings.WorkspaceCount)
	e.deferred.SetLimit(settings.DragQueueLimit)

	last := e.ws.Count() - 1
	all := e.reg.All()
	for _, c := range all {
		if c.Workspace > last {
			// Ids from All are registered; MoveTo cannot fail.
			_ = e.reg.MoveTo(c.ID, last, c.Screen)
		}
	}

	res := Result{Directives: workspace.Diff(shown, all, e.ws.Active())}
	if e.ws.Active() != prev {
		res.add(platform.Directive{Kind: platform.DirectiveDesktop, X: e.ws.Active()})
	}
	if len(res.Directives) > 0 {
		if cur, ok := e.focus.Current(); !ok || !e.visible(cur) {
			res.add(e.refocus()...)
		}
	}
	return res
}
