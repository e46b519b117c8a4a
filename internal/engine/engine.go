// Package engine interprets bound actions against the window state: it owns
// the registry, the workspaces and screens, the focus rings and the drag
// tracker, and turns every input event into directives for the display layer.
package engine

import (
	"io"
	"log/slog"
	"sync"

	"github.com/1broseidon/floatwm/internal/action"
	"github.com/1broseidon/floatwm/internal/focus"
	"github.com/1broseidon/floatwm/internal/movemode"
	"github.com/1broseidon/floatwm/internal/platform"
	"github.com/1broseidon/floatwm/internal/registry"
	"github.com/1broseidon/floatwm/internal/tiling"
	"github.com/1broseidon/floatwm/internal/workspace"
)

// EventKind distinguishes bound actions from drag pointer samples.
type EventKind int

const (
	EventAction EventKind = iota
	// EventPress is a bound action triggered by a grabbed pointer button.
	// Only a press can start a drag, since only the grab delivers its
	// release.
	EventPress
	EventMotion
	EventRelease
	EventAbort
)

// Event is one decoded input event.
type Event struct {
	Kind   EventKind
	Action action.Action
	// Target is the client the event applies to. Zero means the focused
	// client.
	Target platform.WindowID
	// PointerX and PointerY are root coordinates, set for button and
	// motion events.
	PointerX int
	PointerY int
	// Stacking is the display's stacking order, bottom to top, consumed by
	// raise_or_lower.
	Stacking []platform.WindowID
}

// Note says why an event produced no or partial effect.
type Note int

const (
	NoteNone Note = iota
	NoteNoTarget
	NoteUnknownAction
	NoteRejected
	NoteDeferred
	NoteIgnored
)

var noteNames = [...]string{
	NoteNone:          "",
	NoteNoTarget:      "no_target",
	NoteUnknownAction: "unknown_action",
	NoteRejected:      "rejected",
	NoteDeferred:      "deferred",
	NoteIgnored:       "ignored",
}

func (n Note) String() string {
	if n >= 0 && int(n) < len(noteNames) {
		return noteNames[n]
	}
	return "unknown"
}

func (n Note) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// Result is what one event changed, as directives in the order the display
// layer must apply them.
type Result struct {
	Directives []platform.Directive `json:"directives,omitempty"`
	Note       Note                 `json:"note,omitempty"`
}

func noted(n Note) Result { return Result{Note: n} }

func (r *Result) add(d ...platform.Directive) {
	r.Directives = append(r.Directives, d...)
}

// Engine serializes every state change behind one mutex. All exported
// methods are safe for concurrent use.
type Engine struct {
	mu       sync.Mutex
	logger   *slog.Logger
	settings Settings

	reg      *registry.Registry
	ws       *workspace.Manager
	focus    *focus.Manager
	drag     *movemode.Tracker
	deferred *movemode.Queue[Event]
}

// New creates an engine with empty state and a placeholder screen.
func New(settings Settings, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		logger:   logger,
		settings: settings,
		reg:      registry.New(settings.MinSize),
		ws:       workspace.NewManager(settings.WorkspaceCount, settings.Margins),
		focus:    focus.NewManager(settings.WorkspaceCount),
		drag:     movemode.NewTracker(),
		deferred: movemode.NewQueue[Event](settings.DragQueueLimit),
	}
}

// Dispatch applies one input event. Ignorable conditions are reported in
// Result.Note; an error means the caller referenced a client it never
// managed.
func (e *Engine) Dispatch(ev Event) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dispatch(ev)
}

func (e *Engine) dispatch(ev Event) (Result, error) {
	switch ev.Kind {
	case EventMotion:
		return e.motion(ev.PointerX, ev.PointerY)
	case EventRelease:
		return e.release(ev.PointerX, ev.PointerY)
	case EventAbort:
		return e.abort()
	}

	if e.drag.Active() {
		if ev.Action.Kind == action.MouseMotion {
			e.logger.Debug("drag already active", "action", ev.Action.String())
			return noted(NoteIgnored), nil
		}
		if !e.deferred.Push(ev) {
			e.logger.Warn("drag queue full, action dropped", "action", ev.Action.String())
			return noted(NoteIgnored), nil
		}
		e.logger.Debug("action deferred until drag ends", "action", ev.Action.String())
		return noted(NoteDeferred), nil
	}
	return e.handle(ev)
}

func (e *Engine) handle(ev Event) (Result, error) {
	h, ok := handlers[ev.Action.Kind]
	if !ok {
		e.logger.Debug("unknown action", "action", string(ev.Action.Kind))
		return noted(NoteUnknownAction), nil
	}

	var c *registry.Client
	if h.needsClient {
		var err error
		c, err = e.target(ev.Target)
		if err != nil {
			return Result{}, err
		}
		if c == nil {
			e.logger.Debug("no target", "action", ev.Action.String())
			return noted(NoteNoTarget), nil
		}
	}

	res, err := h.run(e, ev, c)
	if err != nil {
		return Result{}, err
	}
	if res.Note != NoteNone {
		e.logger.Debug("action had no effect", "action", ev.Action.String(), "note", res.Note.String())
	}
	return res, nil
}

// target resolves an explicit id, which must be managed, or the focused
// client, which may be absent.
func (e *Engine) target(id platform.WindowID) (*registry.Client, error) {
	if id != 0 {
		return e.reg.Lookup(id)
	}
	cur, ok := e.focus.Current()
	if !ok {
		return nil, nil
	}
	c, ok := e.reg.Get(cur)
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (e *Engine) motion(x, y int) (Result, error) {
	s, rect, ok := e.drag.Motion(x, y, e.settings.MinSize)
	if !ok {
		return noted(NoteIgnored), nil
	}
	c, err := e.reg.Lookup(s.Client)
	if err != nil {
		return Result{}, err
	}

	screen := e.ws.ScreenAt(rect)
	if s.Mode == tiling.DragMove {
		rect = tiling.Magnet(rect, e.ws.Screen(screen).Usable, e.settings.MagnetDistance)
	}
	rect = tiling.ClampToScreen(rect, e.ws.Screen(screen).Bounds, e.settings.MinSize)
	if screen != c.Screen {
		if err := e.reg.MoveTo(c.ID, c.Workspace, screen); err != nil {
			return Result{}, err
		}
	}
	if rect == c.Geometry {
		return Result{}, nil
	}
	return e.commit(c, registry.Update{Geometry: rect, Tiling: tiling.StateNormal})
}

func (e *Engine) release(x, y int) (Result, error) {
	if !e.drag.Active() {
		return noted(NoteIgnored), nil
	}
	res, err := e.motion(x, y)
	if err != nil {
		return Result{}, err
	}
	e.drag.Release()
	return e.replay(res)
}

func (e *Engine) abort() (Result, error) {
	s, ok := e.drag.Abort()
	if !ok {
		return noted(NoteIgnored), nil
	}
	var res Result
	if c, found := e.reg.Get(s.Client); found {
		r, err := e.commit(c, registry.Update{Geometry: s.Anchor, Tiling: tiling.StateNormal})
		if err != nil {
			return Result{}, err
		}
		res = r
		if screen := e.ws.ScreenAt(s.Anchor); screen != c.Screen {
			if err := e.reg.MoveTo(c.ID, c.Workspace, screen); err != nil {
				return Result{}, err
			}
		}
	}
	return e.replay(res)
}

// replay runs the actions deferred during the drag, in arrival order.
func (e *Engine) replay(res Result) (Result, error) {
	for _, ev := range e.deferred.Drain() {
		r, err := e.handle(ev)
		if err != nil {
			return Result{}, err
		}
		res.add(r.Directives...)
	}
	return res, nil
}

// commit stores u for c and emits its geometry.
func (e *Engine) commit(c *registry.Client, u registry.Update) (Result, error) {
	c, err := e.reg.Commit(c.ID, u)
	if err != nil {
		return Result{}, err
	}
	return Result{Directives: []platform.Directive{platform.Geometry(c.ID, c.Geometry)}}, nil
}

func (e *Engine) screenOf(c *registry.Client) workspace.Screen {
	return e.ws.Screen(c.Screen)
}

func (e *Engine) clamp(c *registry.Client, r tiling.Rect) tiling.Rect {
	return tiling.ClampToScreen(r, e.screenOf(c).Bounds, e.settings.MinSize)
}

func (e *Engine) visible(id platform.WindowID) bool {
	c, ok := e.reg.Get(id)
	return ok && c.Visible(e.ws.Active())
}

// raise raises id and then every visible always-on-top client above it.
func (e *Engine) raise(id platform.WindowID) []platform.Directive {
	out := []platform.Directive{platform.ForWindow(platform.DirectiveRaise, id)}
	for _, c := range e.reg.All() {
		if c.ID != id && c.Flags.AlwaysOnTop && c.Visible(e.ws.Active()) {
			out = append(out, platform.ForWindow(platform.DirectiveRaise, c.ID))
		}
	}
	return out
}

// focusOn raises and focuses c and moves the pointer into it.
func (e *Engine) focusOn(c *registry.Client) []platform.Directive {
	out := e.raise(c.ID)
	out = append(out, platform.ForWindow(platform.DirectiveFocus, c.ID))
	x, y := tiling.CursorPoint(c.Geometry, e.settings.CursorPosition)
	return append(out, platform.Directive{Kind: platform.DirectiveWarp, X: x, Y: y})
}

// refocus moves the focus to the first visible client on the active
// workspace, or clears it.
func (e *Engine) refocus() []platform.Directive {
	candidates := e.focus.Candidates(e.ws.Active(), e.visible)
	if len(candidates) == 0 {
		e.focus.Clear()
		return nil
	}
	e.focus.Focus(candidates[0])
	return []platform.Directive{platform.ForWindow(platform.DirectiveFocus, candidates[0])}
}

func (e *Engine) isFocused(id platform.WindowID) bool {
	cur, ok := e.focus.Current()
	return ok && cur == id
}
