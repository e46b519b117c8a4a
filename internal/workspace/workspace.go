// Package workspace owns the active workspace, the screens and the
// visibility changes that follow from switching between them.
package workspace

import (
	"fmt"

	"github.com/1broseidon/floatwm/internal/platform"
	"github.com/1broseidon/floatwm/internal/registry"
	"github.com/1broseidon/floatwm/internal/tiling"
)

// Screen is one physical display region.
type Screen struct {
	ID     int         `json:"id"`
	Name   string      `json:"name"`
	Bounds tiling.Rect `json:"bounds"`
	// Usable is Bounds shrunk by the outer margins.
	Usable tiling.Rect `json:"usable"`
}

// Manager tracks workspaces and screens. It is not safe for concurrent use.
type Manager struct {
	count        int
	active       int
	screens      []Screen
	activeScreen int
	margins      tiling.Margins
}

// NewManager creates count workspaces with workspace 0 active and a single
// placeholder screen until SetScreens is called.
func NewManager(count int, margins tiling.Margins) *Manager {
	if count < 1 {
		count = 1
	}
	m := &Manager{count: count, margins: margins}
	m.SetScreens([]Screen{{Name: "default", Bounds: tiling.Rect{Width: 1, Height: 1}}})
	return m
}

// Count returns the number of workspaces.
func (m *Manager) Count() int { return m.count }

// Active returns the active workspace number.
func (m *Manager) Active() int { return m.active }

// ActiveScreen returns the index of the active screen.
func (m *Manager) ActiveScreen() int { return m.activeScreen }

// SetCount changes the number of workspaces. The active workspace is clamped
// into range.
func (m *Manager) SetCount(count int) {
	if count < 1 {
		count = 1
	}
	m.count = count
	if m.active >= count {
		m.active = count - 1
	}
}

// SetMargins changes the outer margins and recomputes usable areas.
func (m *Manager) SetMargins(margins tiling.Margins) {
	m.margins = margins
	for i := range m.screens {
		m.screens[i].Usable = tiling.UsableBounds(m.screens[i].Bounds, margins)
	}
}

// SetScreens replaces the screen list. Usable areas are derived from the
// configured margins; IDs are reassigned in list order.
func (m *Manager) SetScreens(screens []Screen) {
	if len(screens) == 0 {
		return
	}
	m.screens = make([]Screen, len(screens))
	for i, s := range screens {
		s.ID = i
		s.Usable = tiling.UsableBounds(s.Bounds, m.margins)
		m.screens[i] = s
	}
	if m.activeScreen >= len(m.screens) {
		m.activeScreen = 0
	}
}

// Screens returns a copy of the screen list.
func (m *Manager) Screens() []Screen {
	out := make([]Screen, len(m.screens))
	copy(out, m.screens)
	return out
}

// Screen returns screen i, falling back to the active screen when i is out
// of range.
func (m *Manager) Screen(i int) Screen {
	if i < 0 || i >= len(m.screens) {
		return m.screens[m.activeScreen]
	}
	return m.screens[i]
}

// ScreenAt returns the index of the screen containing the centre of r, or
// the active screen when none does.
func (m *Manager) ScreenAt(r tiling.Rect) int {
	cx, cy := r.X+r.Width/2, r.Y+r.Height/2
	for i, s := range m.screens {
		if s.Bounds.ContainsPoint(cx, cy) {
			return i
		}
	}
	return m.activeScreen
}

// Valid reports whether n is a workspace number.
func (m *Manager) Valid(n int) bool {
	return n >= 0 && n < m.count
}

// Neighbor returns the workspace after (or before) the active one, wrapping
// around the workspace count.
func (m *Manager) Neighbor(forward bool) int {
	if forward {
		return (m.active + 1) % m.count
	}
	return (m.active - 1 + m.count) % m.count
}

// Change activates workspace n and returns the visibility directives for
// clients: hides first, then shows, then the desktop change. Changing to the
// active workspace returns nothing.
func (m *Manager) Change(n int, clients []*registry.Client) ([]platform.Directive, error) {
	if !m.Valid(n) {
		return nil, fmt.Errorf("workspace %d out of range [0,%d)", n, m.count)
	}
	if n == m.active {
		return nil, nil
	}

	shown := Shown(clients, m.active)
	m.active = n
	out := Diff(shown, clients, n)
	return append(out, platform.Directive{Kind: platform.DirectiveDesktop, X: n}), nil
}

// Shown records which clients are visible on workspace ws.
func Shown(clients []*registry.Client, ws int) map[platform.WindowID]bool {
	out := make(map[platform.WindowID]bool, len(clients))
	for _, c := range clients {
		out[c.ID] = c.Visible(ws)
	}
	return out
}

// Diff returns the directives that take clients from the visibility in shown
// to their visibility on workspace ws: hides first, then shows.
func Diff(shown map[platform.WindowID]bool, clients []*registry.Client, ws int) []platform.Directive {
	var hides, shows []platform.Directive
	for _, c := range clients {
		was, now := shown[c.ID], c.Visible(ws)
		switch {
		case was && !now:
			hides = append(hides, platform.ForWindow(platform.DirectiveHide, c.ID))
		case !was && now:
			shows = append(shows, platform.ForWindow(platform.DirectiveShow, c.ID))
		}
	}
	return append(hides, shows...)
}

// SendTo reassigns c to workspace n without changing the active workspace.
// The client is hidden when it leaves the active workspace.
func (m *Manager) SendTo(reg *registry.Registry, c *registry.Client, n int) ([]platform.Directive, error) {
	if !m.Valid(n) {
		return nil, fmt.Errorf("workspace %d out of range [0,%d)", n, m.count)
	}
	if c.Workspace == n {
		return nil, nil
	}

	was := c.Visible(m.active)
	if err := reg.MoveTo(c.ID, n, c.Screen); err != nil {
		return nil, err
	}
	if was && !c.Visible(m.active) {
		return []platform.Directive{platform.ForWindow(platform.DirectiveHide, c.ID)}, nil
	}
	return nil, nil
}

// CycleScreen advances the active screen. It returns false with a single
// screen.
func (m *Manager) CycleScreen(forward bool) (int, bool) {
	n := len(m.screens)
	if n < 2 {
		return m.activeScreen, false
	}
	if forward {
		m.activeScreen = (m.activeScreen + 1) % n
	} else {
		m.activeScreen = (m.activeScreen - 1 + n) % n
	}
	return m.activeScreen, true
}

// SetActiveScreen makes screen i active when it exists.
func (m *Manager) SetActiveScreen(i int) {
	if i >= 0 && i < len(m.screens) {
		m.activeScreen = i
	}
}

// NeighborScreen returns the screen index after (or before) from.
func (m *Manager) NeighborScreen(from int, forward bool) int {
	n := len(m.screens)
	if forward {
		return (from + 1) % n
	}
	return (from - 1 + n) % n
}
