// Package action defines the bound-action vocabulary and its typed arguments.
package action

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/1broseidon/floatwm/internal/tiling"
)

// Kind identifies an action.
type Kind string

const (
	FocusNext           Kind = "focus_next"
	DeleteWindow        Kind = "delete_window"
	ResizeStep          Kind = "resize_step"
	MoveStep            Kind = "move_step"
	Teleport            Kind = "teleport"
	ResizeStepAspect    Kind = "resize_step_aspect"
	Maximize            Kind = "maximize"
	MaxVertHor          Kind = "maxvert_hor"
	MaxHalf             Kind = "maxhalf"
	ChangeScreen        Kind = "change_screen"
	SendToScreen        Kind = "send_to_screen"
	RaiseOrLower        Kind = "raise_or_lower"
	NextWorkspace       Kind = "next_workspace"
	PrevWorkspace       Kind = "prev_workspace"
	SendToNextWorkspace Kind = "send_to_next_workspace"
	SendToPrevWorkspace Kind = "send_to_prev_workspace"
	ChangeWorkspace     Kind = "change_workspace"
	SendToWorkspace     Kind = "send_to_workspace"
	Hide                Kind = "hide"
	Unkillable          Kind = "unkillable"
	AlwaysOnTop         Kind = "always_on_top"
	Fix                 Kind = "fix"
	CursorMove          Kind = "cursor_move"
	Spawn               Kind = "spawn"
	HalfAndCentered     Kind = "half_and_centered"
	Exit                Kind = "exit"
	Restart             Kind = "restart"
	MouseMotion         Kind = "mouse_motion"
)

// Arg is the typed argument of an action. The concrete type is fixed by the
// action kind.
type Arg interface {
	fmt.Stringer
	isArg()
}

// None is the argument of actions that take none.
type None struct{}

// Cycle selects the next or previous element of a cyclic sequence.
type Cycle int

const (
	CycleNext Cycle = iota
	CyclePrevious
)

// Step is a directional step; Slow selects the small step size.
type Step struct {
	Dir  tiling.Direction
	Slow bool
}

// Place is a teleport target.
type Place struct {
	Target tiling.Target
}

// Scale selects growing or shrinking an aspect-locked resize.
type Scale int

const (
	ScaleGrow Scale = iota
	ScaleShrink
)

// MaxMode selects whether maximize respects the outer margins.
type MaxMode int

const (
	MaxFullscreen MaxMode = iota
	MaxOverride
)

// Axis selects vertical or horizontal maximization.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// Half is a maxhalf operation.
type Half int

const (
	HalfLeft Half = iota
	HalfRight
	HalfTop
	HalfBottom
	FoldVertical
	FoldHorizontal
	UnfoldVertical
	UnfoldHorizontal
)

// Workspace is a workspace number.
type Workspace int

// Command is an argument vector for spawn.
type Command []string

// Drag selects the drag session mode.
type Drag struct {
	Mode tiling.DragMode
}

func (None) isArg()      {}
func (Cycle) isArg()     {}
func (Step) isArg()      {}
func (Place) isArg()     {}
func (Scale) isArg()     {}
func (MaxMode) isArg()   {}
func (Axis) isArg()      {}
func (Half) isArg()      {}
func (Workspace) isArg() {}
func (Command) isArg()   {}
func (Drag) isArg()      {}

func (None) String() string { return "" }

func (c Cycle) String() string {
	if c == CyclePrevious {
		return "previous"
	}
	return "next"
}

func (s Step) String() string {
	if s.Slow {
		return s.Dir.String() + "_slow"
	}
	return s.Dir.String()
}

func (p Place) String() string { return p.Target.String() }

func (s Scale) String() string {
	if s == ScaleShrink {
		return "shrink"
	}
	return "grow"
}

func (m MaxMode) String() string {
	if m == MaxOverride {
		return "fullscreen_override_offsets"
	}
	return "fullscreen"
}

func (a Axis) String() string {
	if a == AxisHorizontal {
		return "horizontal"
	}
	return "vertical"
}

var halfNames = [...]string{
	HalfLeft:         "vertical_left",
	HalfRight:        "vertical_right",
	HalfTop:          "horizontal_top",
	HalfBottom:       "horizontal_bottom",
	FoldVertical:     "fold_vertical",
	FoldHorizontal:   "fold_horizontal",
	UnfoldVertical:   "unfold_vertical",
	UnfoldHorizontal: "unfold_horizontal",
}

func (h Half) String() string {
	if h >= 0 && int(h) < len(halfNames) {
		return halfNames[h]
	}
	return "unknown"
}

func (w Workspace) String() string { return strconv.Itoa(int(w)) }

func (c Command) String() string { return strings.Join(c, " ") }

func (d Drag) String() string { return d.Mode.String() }

// Action is one bound action with its argument.
type Action struct {
	Kind Kind
	Arg  Arg
}

func (a Action) String() string {
	if a.Arg == nil {
		return string(a.Kind)
	}
	if s := a.Arg.String(); s != "" {
		return string(a.Kind) + " " + s
	}
	return string(a.Kind)
}

// Known reports whether k is part of the vocabulary.
func Known(k Kind) bool {
	_, ok := parsers[k]
	return ok
}

// PointerOnly reports whether k can only be bound to a pointer button. A
// drag needs the button grab that ends it on release.
func (k Kind) PointerOnly() bool {
	return k == MouseMotion
}

// Kinds returns every action kind in vocabulary order.
func Kinds() []Kind {
	out := make([]Kind, len(order))
	copy(out, order)
	return out
}
