// Package movemode tracks interactive mouse drag sessions.
package movemode

import (
	"github.com/1broseidon/floatwm/internal/platform"
	"github.com/1broseidon/floatwm/internal/tiling"
)

// Phase represents the current phase of a drag
type Phase int

const (
	// PhaseInactive means no drag is in progress
	PhaseInactive Phase = iota
	// PhaseDragging means a client follows the pointer
	PhaseDragging
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseInactive:
		return "inactive"
	case PhaseDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// MarshalText renders the phase by name in JSON output.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Session is one live drag.
type Session struct {
	Client platform.WindowID `json:"client"`
	Mode   tiling.DragMode   `json:"-"`
	// Anchor is the client geometry when the drag began.
	Anchor tiling.Rect `json:"anchor"`
	// PointerX and PointerY are the root pointer position when the drag began.
	PointerX int `json:"pointer_x"`
	PointerY int `json:"pointer_y"`
}

// Tracker is the drag state machine. At most one session exists. It is not
// safe for concurrent use.
type Tracker struct {
	phase   Phase
	session Session
}

// NewTracker creates an inactive tracker.
func NewTracker() *Tracker {
	return &Tracker{phase: PhaseInactive}
}

// Phase returns the current phase.
func (t *Tracker) Phase() Phase { return t.phase }

// Active reports whether a drag is in progress.
func (t *Tracker) Active() bool { return t.phase == PhaseDragging }

// Session returns the live session.
func (t *Tracker) Session() (Session, bool) {
	return t.session, t.phase == PhaseDragging
}

// Begin starts a session. It returns false, leaving the live session alone,
// when a drag is already in progress.
func (t *Tracker) Begin(s Session) bool {
	if t.phase == PhaseDragging {
		return false
	}
	t.session = s
	t.phase = PhaseDragging
	return true
}

// Motion returns the geometry for a pointer sample at (x, y): the anchor
// changed by the pointer delta, additively.
func (t *Tracker) Motion(x, y, minSize int) (Session, tiling.Rect, bool) {
	if t.phase != PhaseDragging {
		return Session{}, tiling.Rect{}, false
	}
	s := t.session
	return s, tiling.Drag(s.Anchor, x-s.PointerX, y-s.PointerY, s.Mode, minSize), true
}

// Release ends the session normally.
func (t *Tracker) Release() (Session, bool) {
	return t.end()
}

// Abort ends the session; the caller restores the returned anchor.
func (t *Tracker) Abort() (Session, bool) {
	return t.end()
}

// Forget ends the session if it belongs to id, e.g. when the window vanished.
func (t *Tracker) Forget(id platform.WindowID) bool {
	if t.phase == PhaseDragging && t.session.Client == id {
		t.end()
		return true
	}
	return false
}

// Reset resets the tracker to inactive
func (t *Tracker) Reset() {
	t.end()
}

func (t *Tracker) end() (Session, bool) {
	if t.phase != PhaseDragging {
		return Session{}, false
	}
	s := t.session
	t.session = Session{}
	t.phase = PhaseInactive
	return s, true
}
