package engine

import (
	"github.com/1broseidon/floatwm/internal/movemode"
	"github.com/1broseidon/floatwm/internal/platform"
	"github.com/1broseidon/floatwm/internal/registry"
	"github.com/1broseidon/floatwm/internal/workspace"
)

// Status is a point-in-time summary of the engine.
type Status struct {
	ActiveWorkspace int                `json:"active_workspace"`
	WorkspaceCount  int                `json:"workspace_count"`
	ActiveScreen    int                `json:"active_screen"`
	Screens         []workspace.Screen `json:"screens"`
	Clients         int                `json:"clients"`
	Focused         platform.WindowID  `json:"focused,omitempty"`
	Drag            movemode.Phase     `json:"drag"`
	DragClient      platform.WindowID  `json:"drag_client,omitempty"`
	Deferred        int                `json:"deferred"`
}

// Status returns a snapshot of the engine state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := Status{
		ActiveWorkspace: e.ws.Active(),
		WorkspaceCount:  e.ws.Count(),
		ActiveScreen:    e.ws.ActiveScreen(),
		Screens:         e.ws.Screens(),
		Clients:         e.reg.Len(),
		Drag:            e.drag.Phase(),
		Deferred:        e.deferred.Len(),
	}
	if id, ok := e.focus.Current(); ok {
		st.Focused = id
	}
	if s, ok := e.drag.Session(); ok {
		st.DragClient = s.Client
	}
	return st
}

// Clients returns copies of every client record, ordered by id.
func (e *Engine) Clients() []registry.Client {
	e.mu.Lock()
	defer e.mu.Unlock()

	all := e.reg.All()
	out := make([]registry.Client, 0, len(all))
	for _, c := range all {
		out = append(out, snapshot(c))
	}
	return out
}

// Client returns a copy of one client record.
func (e *Engine) Client(id platform.WindowID) (registry.Client, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, ok := e.reg.Get(id)
	if !ok {
		return registry.Client{}, false
	}
	return snapshot(c), true
}

// snapshot copies c without sharing its geometry snapshots.
func snapshot(c *registry.Client) registry.Client {
	cp := *c
	if c.Saved != nil {
		saved := *c.Saved
		cp.Saved = &saved
	}
	if c.Unfolded != nil {
		unfolded := *c.Unfolded
		cp.Unfolded = &unfolded
	}
	return cp
}

// Focused returns the focused client, if any.
func (e *Engine) Focused() (platform.WindowID, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.focus.Current()
}

// Visible reports whether id shows on the active workspace.
func (e *Engine) Visible(id platform.WindowID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.visible(id)
}
