// Package focus keeps per-workspace focus rings and the current focus.
package focus

import "github.com/1broseidon/floatwm/internal/platform"

// Manager owns one focus ring per workspace. The front of a ring is the most
// recently focused client. It is not safe for concurrent use.
type Manager struct {
	rings   [][]platform.WindowID
	current platform.WindowID
	focused bool
}

// NewManager creates empty rings for count workspaces.
func NewManager(count int) *Manager {
	if count < 1 {
		count = 1
	}
	return &Manager{rings: make([][]platform.WindowID, count)}
}

// Resize changes the number of rings. Clients of dropped rings move to the
// last remaining ring.
func (m *Manager) Resize(count int) {
	if count < 1 {
		count = 1
	}
	if count >= len(m.rings) {
		for len(m.rings) < count {
			m.rings = append(m.rings, nil)
		}
		return
	}
	last := count - 1
	for _, ring := range m.rings[count:] {
		m.rings[last] = append(m.rings[last], ring...)
	}
	m.rings = m.rings[:count]
}

// Current returns the focused client, if any.
func (m *Manager) Current() (platform.WindowID, bool) {
	return m.current, m.focused
}

// Ring returns a copy of the ring of workspace ws, front first.
func (m *Manager) Ring(ws int) []platform.WindowID {
	if ws < 0 || ws >= len(m.rings) {
		return nil
	}
	out := make([]platform.WindowID, len(m.rings[ws]))
	copy(out, m.rings[ws])
	return out
}

// Add puts id at the front of the ring of ws.
func (m *Manager) Add(id platform.WindowID, ws int) {
	m.detach(id)
	ws = m.clamp(ws)
	m.rings[ws] = append([]platform.WindowID{id}, m.rings[ws]...)
}

// Remove drops id from every ring and clears the focus if it was current.
func (m *Manager) Remove(id platform.WindowID) {
	m.detach(id)
	if m.focused && m.current == id {
		m.current = 0
		m.focused = false
	}
}

// Move transfers id to the front of the ring of ws.
func (m *Manager) Move(id platform.WindowID, ws int) {
	m.Add(id, ws)
}

// Focus makes id current and moves it to the front of its ring. Focusing the
// current client again leaves the rings untouched.
func (m *Manager) Focus(id platform.WindowID) {
	if m.focused && m.current == id {
		return
	}
	m.current = id
	m.focused = true
	for ws, ring := range m.rings {
		if i := indexOf(ring, id); i > 0 {
			copy(ring[1:i+1], ring[:i])
			ring[0] = id
			m.rings[ws] = ring
			return
		}
	}
}

// Clear drops the current focus without touching the rings.
func (m *Manager) Clear() {
	m.current = 0
	m.focused = false
}

// Candidates returns the cycling order on workspace ws: its own ring followed
// by clients of other rings, keeping only those accepted by visible.
func (m *Manager) Candidates(ws int, visible func(platform.WindowID) bool) []platform.WindowID {
	var out []platform.WindowID
	add := func(ring []platform.WindowID) {
		for _, id := range ring {
			if visible(id) {
				out = append(out, id)
			}
		}
	}
	if ws >= 0 && ws < len(m.rings) {
		add(m.rings[ws])
	}
	for i, ring := range m.rings {
		if i != ws {
			add(ring)
		}
	}
	return out
}

// Cycle moves the current focus forward (or backward) through the visible
// candidates of ws, wrapping around. It does not reorder the rings. It
// returns false when no candidate exists.
func (m *Manager) Cycle(ws int, forward bool, visible func(platform.WindowID) bool) (platform.WindowID, bool) {
	candidates := m.Candidates(ws, visible)
	if len(candidates) == 0 {
		return 0, false
	}

	next := 0
	if m.focused {
		if i := indexOf(candidates, m.current); i >= 0 {
			if forward {
				next = (i + 1) % len(candidates)
			} else {
				next = (i - 1 + len(candidates)) % len(candidates)
			}
		}
	}

	m.current = candidates[next]
	m.focused = true
	return m.current, true
}

func (m *Manager) detach(id platform.WindowID) {
	for ws, ring := range m.rings {
		if i := indexOf(ring, id); i >= 0 {
			m.rings[ws] = append(ring[:i], ring[i+1:]...)
		}
	}
}

func (m *Manager) clamp(ws int) int {
	if ws < 0 {
		return 0
	}
	if ws >= len(m.rings) {
		return len(m.rings) - 1
	}
	return ws
}

func indexOf(ids []platform.WindowID, id platform.WindowID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
