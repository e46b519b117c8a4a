package engine

import (
	"github.com/1broseidon/floatwm/internal/action"
	"github.com/1broseidon/floatwm/internal/focus"
	"github.com/1broseidon/floatwm/internal/movemode"
	"github.com/1broseidon/floatwm/internal/platform"
	"github.com/1broseidon/floatwm/internal/registry"
	"github.com/1broseidon/floatwm/internal/tiling"
)

type handler struct {
	needsClient bool
	run         func(e *Engine, ev Event, c *registry.Client) (Result, error)
}

var handlers map[action.Kind]handler

func init() {
	handlers = map[action.Kind]handler{
		action.FocusNext:           {run: (*Engine).focusNext},
		action.DeleteWindow:        {needsClient: true, run: (*Engine).deleteWindow},
		action.ResizeStep:          {needsClient: true, run: (*Engine).resizeStep},
		action.MoveStep:            {needsClient: true, run: (*Engine).moveStep},
		action.Teleport:            {needsClient: true, run: (*Engine).teleport},
		action.ResizeStepAspect:    {needsClient: true, run: (*Engine).resizeAspect},
		action.Maximize:            {needsClient: true, run: (*Engine).maximize},
		action.MaxVertHor:          {needsClient: true, run: (*Engine).maxVertHor},
		action.MaxHalf:             {needsClient: true, run: (*Engine).maxHalf},
		action.ChangeScreen:        {run: (*Engine).changeScreen},
		action.SendToScreen:        {needsClient: true, run: (*Engine).sendToScreen},
		action.RaiseOrLower:        {needsClient: true, run: (*Engine).raiseOrLower},
		action.NextWorkspace:       {run: (*Engine).nextWorkspace},
		action.PrevWorkspace:       {run: (*Engine).nextWorkspace},
		action.SendToNextWorkspace: {needsClient: true, run: (*Engine).sendToNextWorkspace},
		action.SendToPrevWorkspace: {needsClient: true, run: (*Engine).sendToNextWorkspace},
		action.ChangeWorkspace:     {run: (*Engine).changeWorkspaceAction},
		action.SendToWorkspace:     {needsClient: true, run: (*Engine).sendToWorkspaceAction},
		action.Hide:                {needsClient: true, run: (*Engine).hide},
		action.Unkillable:          {needsClient: true, run: (*Engine).toggleFlag},
		action.AlwaysOnTop:         {needsClient: true, run: (*Engine).toggleFlag},
		action.Fix:                 {needsClient: true, run: (*Engine).toggleFlag},
		action.CursorMove:          {run: (*Engine).cursorMove},
		action.Spawn:               {run: (*Engine).spawn},
		action.HalfAndCentered:     {needsClient: true, run: (*Engine).halfAndCentered},
		action.Exit:                {run: (*Engine).lifecycle},
		action.Restart:             {run: (*Engine).lifecycle},
		action.MouseMotion:         {needsClient: true, run: (*Engine).beginDrag},
	}
}

func (e *Engine) focusNext(ev Event, _ *registry.Client) (Result, error) {
	forward := ev.Action.Arg != action.CyclePrevious
	id, ok := e.focus.Cycle(e.ws.Active(), forward, e.visible)
	if !ok {
		return noted(NoteIgnored), nil
	}
	c, err := e.reg.Lookup(id)
	if err != nil {
		return Result{}, err
	}
	return Result{Directives: e.focusOn(c)}, nil
}

func (e *Engine) deleteWindow(_ Event, c *registry.Client) (Result, error) {
	if c.Flags.Unkillable {
		return noted(NoteRejected), nil
	}
	// The client stays managed until the display reports it gone.
	return Result{Directives: []platform.Directive{platform.ForWindow(platform.DirectiveClose, c.ID)}}, nil
}

func (e *Engine) resizeStep(ev Event, c *registry.Client) (Result, error) {
	step, _ := ev.Action.Arg.(action.Step)
	amount := e.settings.moveStep(step.Slow)

	var r tiling.Rect
	if e.settings.ResizeByLine {
		r = tiling.ResizeByLine(c.Geometry, step.Dir, amount, c.Hints, e.settings.MinSize)
	} else {
		r = tiling.Resize(c.Geometry, step.Dir, amount, e.settings.MinSize)
	}
	return e.commit(c, registry.Update{Geometry: e.clamp(c, r), Tiling: tiling.StateNormal})
}

func (e *Engine) moveStep(ev Event, c *registry.Client) (Result, error) {
	step, _ := ev.Action.Arg.(action.Step)
	old := c.Geometry
	r := e.clamp(c, tiling.Move(old, step.Dir, e.settings.moveStep(step.Slow)))

	res, err := e.commit(c, registry.Update{Geometry: r, Tiling: tiling.StateNormal, Aspect: c.Aspect})
	if err != nil {
		return Result{}, err
	}
	// The pointer follows the window by the distance it actually moved.
	if dx, dy := c.Geometry.X-old.X, c.Geometry.Y-old.Y; dx != 0 || dy != 0 {
		res.add(platform.Directive{Kind: platform.DirectiveWarp, X: dx, Y: dy, Relative: true})
	}
	return res, nil
}

func (e *Engine) teleport(ev Event, c *registry.Client) (Result, error) {
	place, _ := ev.Action.Arg.(action.Place)
	r := tiling.Teleport(c.Geometry, e.screenOf(c).Usable, place.Target)
	return e.commit(c, registry.Update{Geometry: e.clamp(c, r), Tiling: tiling.StateNormal, Aspect: c.Aspect})
}

func (e *Engine) resizeAspect(ev Event, c *registry.Client) (Result, error) {
	aspect := c.Aspect
	if aspect <= 0 || c.Tiling != tiling.StateNormal {
		aspect = float64(c.Geometry.Width) / float64(c.Geometry.Height)
	}
	grow := ev.Action.Arg != action.ScaleShrink
	r := tiling.ResizeAspect(c.Geometry, grow, e.settings.AspectRatio, aspect, e.settings.MinSize)
	if r == c.Geometry {
		return noted(NoteRejected), nil
	}
	return e.commit(c, registry.Update{Geometry: e.clamp(c, r), Tiling: tiling.StateNormal, Aspect: aspect})
}

// base is the geometry a state toggle starts from: the current geometry of
// a normal client, else the snapshot taken when it left normal.
func base(c *registry.Client) tiling.Rect {
	if c.Tiling == tiling.StateNormal || c.Saved == nil {
		return c.Geometry
	}
	return *c.Saved
}

// toggle enters state at target, or restores the snapshot when c is already
// in exactly that state and place. Switching between non-normal states
// keeps the original snapshot.
func (e *Engine) toggle(c *registry.Client, state tiling.State, target tiling.Rect) (Result, error) {
	target = e.clamp(c, target)
	if c.Tiling == state && c.Geometry == target && c.Saved != nil {
		return e.commit(c, registry.Update{Geometry: *c.Saved, Tiling: tiling.StateNormal})
	}
	saved := base(c)
	return e.commit(c, registry.Update{Geometry: target, Tiling: state, Saved: &saved})
}

func (e *Engine) maximize(ev Event, c *registry.Client) (Result, error) {
	screen := e.screenOf(c)
	target := screen.Usable
	if ev.Action.Arg == action.MaxOverride {
		target = screen.Bounds
	}
	return e.toggle(c, tiling.StateMaxFull, target)
}

func (e *Engine) maxVertHor(ev Event, c *registry.Client) (Result, error) {
	state := tiling.StateMaxVertical
	if ev.Action.Arg == action.AxisHorizontal {
		state = tiling.StateMaxHorizontal
	}
	return e.toggle(c, state, tiling.Place(state, base(c), e.screenOf(c).Usable))
}

var halfStates = map[action.Half]tiling.State{
	action.HalfLeft:   tiling.StateHalfLeft,
	action.HalfRight:  tiling.StateHalfRight,
	action.HalfTop:    tiling.StateHalfTop,
	action.HalfBottom: tiling.StateHalfBottom,
}

func (e *Engine) maxHalf(ev Event, c *registry.Client) (Result, error) {
	half, _ := ev.Action.Arg.(action.Half)
	switch half {
	case action.FoldVertical:
		return e.fold(c, tiling.FoldVertical)
	case action.FoldHorizontal:
		return e.fold(c, tiling.FoldHorizontal)
	case action.UnfoldVertical:
		return e.unfold(c, tiling.FoldVertical)
	case action.UnfoldHorizontal:
		return e.unfold(c, tiling.FoldHorizontal)
	}
	state, ok := halfStates[half]
	if !ok {
		return noted(NoteIgnored), nil
	}
	return e.toggle(c, state, tiling.Place(state, base(c), e.screenOf(c).Usable))
}

// fold halves a half-screen client once more along axis. Only one fold level
// exists per axis.
func (e *Engine) fold(c *registry.Client, axis tiling.FoldAxis) (Result, error) {
	if !c.Tiling.IsHalf() || c.Saved == nil {
		return noted(NoteIgnored), nil
	}
	r, ok := tiling.Fold(c.Geometry, c.Tiling, axis, e.settings.MinSize)
	if !ok {
		return noted(NoteIgnored), nil
	}
	unfolded := c.Geometry
	return e.commit(c, registry.Update{
		Geometry:   r,
		Tiling:     axis.Folded(),
		Saved:      c.Saved,
		FoldedFrom: c.Tiling,
		Unfolded:   &unfolded,
	})
}

// unfold reverses exactly one fold step, back to the half state and the
// geometry it came from.
func (e *Engine) unfold(c *registry.Client, axis tiling.FoldAxis) (Result, error) {
	if c.Tiling != axis.Folded() || c.Saved == nil {
		return noted(NoteIgnored), nil
	}
	from := c.FoldedFrom
	r := tiling.Place(from, *c.Saved, e.screenOf(c).Usable)
	if c.Unfolded != nil {
		r = *c.Unfolded
	}
	return e.commit(c, registry.Update{Geometry: e.clamp(c, r), Tiling: from, Saved: c.Saved})
}

func (e *Engine) changeScreen(ev Event, _ *registry.Client) (Result, error) {
	idx, ok := e.ws.CycleScreen(ev.Action.Arg != action.CyclePrevious)
	if !ok {
		return noted(NoteIgnored), nil
	}
	onScreen := func(id platform.WindowID) bool {
		c, found := e.reg.Get(id)
		return found && c.Screen == idx && c.Visible(e.ws.Active())
	}
	candidates := e.focus.Candidates(e.ws.Active(), onScreen)
	if len(candidates) == 0 {
		e.focus.Clear()
		usable := e.ws.Screen(idx).Usable
		x, y := tiling.CursorPoint(usable, tiling.CursorMiddle)
		return Result{Directives: []platform.Directive{{Kind: platform.DirectiveWarp, X: x, Y: y}}}, nil
	}
	c, err := e.reg.Lookup(candidates[0])
	if err != nil {
		return Result{}, err
	}
	e.focus.Focus(c.ID)
	return Result{Directives: e.focusOn(c)}, nil
}

func (e *Engine) sendToScreen(ev Event, c *registry.Client) (Result, error) {
	if len(e.ws.Screens()) < 2 {
		return noted(NoteIgnored), nil
	}
	from := e.screenOf(c)
	to := e.ws.Screen(e.ws.NeighborScreen(from.ID, ev.Action.Arg != action.CyclePrevious))

	if err := e.reg.MoveTo(c.ID, c.Workspace, to.ID); err != nil {
		return Result{}, err
	}
	u := registry.Update{
		Geometry:   tiling.Translate(c.Geometry, from.Usable, to.Usable),
		Tiling:     c.Tiling,
		FoldedFrom: c.FoldedFrom,
		Aspect:     c.Aspect,
	}
	if c.Saved != nil {
		saved := tiling.ClampToScreen(tiling.Translate(*c.Saved, from.Usable, to.Usable), to.Bounds, e.settings.MinSize)
		u.Saved = &saved
	}
	if c.Unfolded != nil {
		unfolded := tiling.ClampToScreen(tiling.Translate(*c.Unfolded, from.Usable, to.Usable), to.Bounds, e.settings.MinSize)
		u.Unfolded = &unfolded
	}
	u.Geometry = tiling.ClampToScreen(u.Geometry, to.Bounds, e.settings.MinSize)
	res, err := e.commit(c, u)
	if err != nil {
		return Result{}, err
	}
	e.ws.SetActiveScreen(to.ID)
	if e.isFocused(c.ID) {
		x, y := tiling.CursorPoint(c.Geometry, e.settings.CursorPosition)
		res.add(platform.Directive{Kind: platform.DirectiveWarp, X: x, Y: y})
	}
	return res, nil
}

func (e *Engine) raiseOrLower(ev Event, c *registry.Client) (Result, error) {
	overlaps := func(id platform.WindowID) bool {
		o, ok := e.reg.Get(id)
		return ok && o.Visible(e.ws.Active()) && o.Geometry.Intersects(c.Geometry)
	}
	switch focus.RaiseOrLower(c.ID, ev.Stacking, overlaps, c.Flags.AlwaysOnTop) {
	case focus.StackRaise:
		return Result{Directives: e.raise(c.ID)}, nil
	case focus.StackLower:
		return Result{Directives: []platform.Directive{platform.ForWindow(platform.DirectiveLower, c.ID)}}, nil
	default:
		return noted(NoteIgnored), nil
	}
}

func (e *Engine) nextWorkspace(ev Event, _ *registry.Client) (Result, error) {
	return e.changeWorkspace(e.ws.Neighbor(ev.Action.Kind == action.NextWorkspace))
}

func (e *Engine) changeWorkspaceAction(ev Event, _ *registry.Client) (Result, error) {
	n, _ := ev.Action.Arg.(action.Workspace)
	return e.changeWorkspace(int(n))
}

func (e *Engine) changeWorkspace(n int) (Result, error) {
	if !e.ws.Valid(n) {
		return noted(NoteRejected), nil
	}
	dirs, err := e.ws.Change(n, e.reg.All())
	if err != nil {
		return Result{}, err
	}
	if dirs == nil {
		return noted(NoteIgnored), nil
	}
	res := Result{Directives: dirs}
	if cur, ok := e.focus.Current(); !ok || !e.visible(cur) {
		res.add(e.refocus()...)
	}
	return res, nil
}

func (e *Engine) sendToNextWorkspace(ev Event, c *registry.Client) (Result, error) {
	return e.sendToWorkspace(c, e.ws.Neighbor(ev.Action.Kind == action.SendToNextWorkspace))
}

func (e *Engine) sendToWorkspaceAction(ev Event, c *registry.Client) (Result, error) {
	n, _ := ev.Action.Arg.(action.Workspace)
	return e.sendToWorkspace(c, int(n))
}

func (e *Engine) sendToWorkspace(c *registry.Client, n int) (Result, error) {
	if !e.ws.Valid(n) {
		return noted(NoteRejected), nil
	}
	if c.Workspace == n {
		return noted(NoteIgnored), nil
	}
	dirs, err := e.ws.SendTo(e.reg, c, n)
	if err != nil {
		return Result{}, err
	}
	focused := e.isFocused(c.ID)
	e.focus.Move(c.ID, n)
	res := Result{Directives: dirs}
	if focused && !c.Visible(e.ws.Active()) {
		res.add(e.refocus()...)
	}
	return res, nil
}

func (e *Engine) hide(_ Event, c *registry.Client) (Result, error) {
	if err := e.reg.SetFlag(c.ID, registry.FlagHidden, true); err != nil {
		return Result{}, err
	}
	res := Result{Directives: []platform.Directive{platform.ForWindow(platform.DirectiveHide, c.ID)}}
	if e.isFocused(c.ID) {
		res.add(e.refocus()...)
	}
	return res, nil
}

var flagActions = map[action.Kind]registry.Flag{
	action.Unkillable:  registry.FlagUnkillable,
	action.AlwaysOnTop: registry.FlagAlwaysOnTop,
	action.Fix:         registry.FlagFixed,
}

func (e *Engine) toggleFlag(ev Event, c *registry.Client) (Result, error) {
	f := flagActions[ev.Action.Kind]
	on := !c.Flag(f)
	if err := e.reg.SetFlag(c.ID, f, on); err != nil {
		return Result{}, err
	}

	switch {
	case f == registry.FlagAlwaysOnTop && on:
		return Result{Directives: e.raise(c.ID)}, nil
	case f == registry.FlagFixed && !on && c.Workspace != e.ws.Active():
		// An unfixed client stays where the user sees it.
		if err := e.reg.MoveTo(c.ID, e.ws.Active(), c.Screen); err != nil {
			return Result{}, err
		}
		e.focus.Move(c.ID, e.ws.Active())
	}
	return Result{}, nil
}

func (e *Engine) cursorMove(ev Event, _ *registry.Client) (Result, error) {
	step, _ := ev.Action.Arg.(action.Step)
	dx, dy := step.Dir.Delta()
	n := e.settings.cursorStep(step.Slow)
	return Result{Directives: []platform.Directive{{Kind: platform.DirectiveWarp, X: dx * n, Y: dy * n, Relative: true}}}, nil
}

func (e *Engine) spawn(ev Event, _ *registry.Client) (Result, error) {
	argv, _ := ev.Action.Arg.(action.Command)
	if len(argv) == 0 {
		return noted(NoteIgnored), nil
	}
	return Result{Directives: []platform.Directive{{Kind: platform.DirectiveSpawn, Argv: append([]string(nil), argv...)}}}, nil
}

// halfAndCentered takes the left-half size and centres it, as one update.
func (e *Engine) halfAndCentered(_ Event, c *registry.Client) (Result, error) {
	usable := e.screenOf(c).Usable
	half := tiling.Place(tiling.StateHalfLeft, base(c), usable)
	return e.toggle(c, tiling.StateHalfLeft, tiling.Teleport(half, usable, tiling.TargetCenter))
}

func (e *Engine) lifecycle(ev Event, _ *registry.Client) (Result, error) {
	kind := platform.DirectiveExit
	if ev.Action.Kind == action.Restart {
		kind = platform.DirectiveRestart
	}
	return Result{Directives: []platform.Directive{{Kind: kind}}}, nil
}

func (e *Engine) beginDrag(ev Event, c *registry.Client) (Result, error) {
	if ev.Kind != EventPress {
		e.logger.Debug("drag needs a button press", "window", uint32(c.ID))
		return noted(NoteRejected), nil
	}
	d, _ := ev.Action.Arg.(action.Drag)
	if c.Tiling != tiling.StateNormal {
		if _, err := e.reg.Commit(c.ID, registry.Update{Geometry: c.Geometry, Tiling: tiling.StateNormal}); err != nil {
			return Result{}, err
		}
	}
	ok := e.drag.Begin(movemode.Session{
		Client:   c.ID,
		Mode:     d.Mode,
		Anchor:   c.Geometry,
		PointerX: ev.PointerX,
		PointerY: ev.PointerY,
	})
	if !ok {
		return noted(NoteIgnored), nil
	}
	return Result{Directives: e.raise(c.ID)}, nil
}
