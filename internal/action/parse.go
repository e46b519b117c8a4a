package action

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/1broseidon/floatwm/internal/tiling"
)

// ErrUnknownAction is returned by Parse for identifiers outside the vocabulary.
var ErrUnknownAction = errors.New("unknown action")

type argParser func(args []string) (Arg, error)

var order = []Kind{
	FocusNext, DeleteWindow, ResizeStep, MoveStep, Teleport, ResizeStepAspect,
	Maximize, MaxVertHor, MaxHalf, ChangeScreen, SendToScreen, RaiseOrLower,
	NextWorkspace, PrevWorkspace, SendToNextWorkspace, SendToPrevWorkspace,
	ChangeWorkspace, SendToWorkspace, Hide, Unkillable, AlwaysOnTop, Fix,
	CursorMove, Spawn, HalfAndCentered, Exit, Restart, MouseMotion,
}

var parsers = map[Kind]argParser{
	FocusNext:           parseCycle,
	DeleteWindow:        parseNone,
	ResizeStep:          parseStep,
	MoveStep:            parseStep,
	Teleport:            parsePlace,
	ResizeStepAspect:    parseScale,
	Maximize:            parseMaxMode,
	MaxVertHor:          parseAxis,
	MaxHalf:             parseHalf,
	ChangeScreen:        parseCycle,
	SendToScreen:        parseCycle,
	RaiseOrLower:        parseNone,
	NextWorkspace:       parseNone,
	PrevWorkspace:       parseNone,
	SendToNextWorkspace: parseNone,
	SendToPrevWorkspace: parseNone,
	ChangeWorkspace:     parseWorkspace,
	SendToWorkspace:     parseWorkspace,
	Hide:                parseNone,
	Unkillable:          parseNone,
	AlwaysOnTop:         parseNone,
	Fix:                 parseNone,
	CursorMove:          parseStep,
	Spawn:               parseCommand,
	HalfAndCentered:     parseNone,
	Exit:                parseNone,
	Restart:             parseNone,
	MouseMotion:         parseDrag,
}

// Parse builds an action from its identifier and textual arguments.
func Parse(kind string, args []string) (Action, error) {
	k := Kind(strings.TrimSpace(kind))
	p, ok := parsers[k]
	if !ok {
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, kind)
	}
	arg, err := p(args)
	if err != nil {
		return Action{}, fmt.Errorf("%s: %w", k, err)
	}
	return Action{Kind: k, Arg: arg}, nil
}

// MustParse is Parse for built-in tables; it panics on error.
func MustParse(kind string, args ...string) Action {
	a, err := Parse(kind, args)
	if err != nil {
		panic(err)
	}
	return a
}

func single(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected one argument, got %d", len(args))
	}
	return strings.ToLower(strings.TrimSpace(args[0])), nil
}

func parseNone(args []string) (Arg, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("takes no argument, got %q", args)
	}
	return None{}, nil
}

func parseCycle(args []string) (Arg, error) {
	s, err := single(args)
	if err != nil {
		return nil, err
	}
	switch s {
	case "next":
		return CycleNext, nil
	case "previous", "prev":
		return CyclePrevious, nil
	}
	return nil, fmt.Errorf("invalid direction %q (want next or previous)", s)
}

func parseStep(args []string) (Arg, error) {
	s, err := single(args)
	if err != nil {
		return nil, err
	}
	slow := strings.HasSuffix(s, "_slow")
	s = strings.TrimSuffix(s, "_slow")
	dir, ok := parseDirection(s)
	if !ok {
		return nil, fmt.Errorf("invalid direction %q", args[0])
	}
	return Step{Dir: dir, Slow: slow}, nil
}

func parseDirection(s string) (tiling.Direction, bool) {
	switch s {
	case "up":
		return tiling.DirUp, true
	case "down":
		return tiling.DirDown, true
	case "left":
		return tiling.DirLeft, true
	case "right":
		return tiling.DirRight, true
	}
	return 0, false
}

func parsePlace(args []string) (Arg, error) {
	s, err := single(args)
	if err != nil {
		return nil, err
	}
	t, ok := tiling.ParseTarget(s)
	if !ok {
		return nil, fmt.Errorf("invalid teleport target %q", s)
	}
	return Place{Target: t}, nil
}

func parseScale(args []string) (Arg, error) {
	s, err := single(args)
	if err != nil {
		return nil, err
	}
	switch s {
	case "grow":
		return ScaleGrow, nil
	case "shrink":
		return ScaleShrink, nil
	}
	return nil, fmt.Errorf("invalid scale %q (want grow or shrink)", s)
}

func parseMaxMode(args []string) (Arg, error) {
	s, err := single(args)
	if err != nil {
		return nil, err
	}
	switch s {
	case "fullscreen":
		return MaxFullscreen, nil
	case "fullscreen_override_offsets":
		return MaxOverride, nil
	}
	return nil, fmt.Errorf("invalid maximize mode %q", s)
}

func parseAxis(args []string) (Arg, error) {
	s, err := single(args)
	if err != nil {
		return nil, err
	}
	switch s {
	case "vertical":
		return AxisVertical, nil
	case "horizontal":
		return AxisHorizontal, nil
	}
	return nil, fmt.Errorf("invalid axis %q (want vertical or horizontal)", s)
}

func parseHalf(args []string) (Arg, error) {
	s, err := single(args)
	if err != nil {
		return nil, err
	}
	for i, name := range halfNames {
		if name == s {
			return Half(i), nil
		}
	}
	return nil, fmt.Errorf("invalid maxhalf operation %q", s)
}

func parseWorkspace(args []string) (Arg, error) {
	s, err := single(args)
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("invalid workspace %q", s)
	}
	return Workspace(n), nil
}

func parseCommand(args []string) (Arg, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return nil, fmt.Errorf("spawn requires a command")
	}
	cmd := make(Command, len(args))
	copy(cmd, args)
	return cmd, nil
}

func parseDrag(args []string) (Arg, error) {
	s, err := single(args)
	if err != nil {
		return nil, err
	}
	switch s {
	case "move":
		return Drag{Mode: tiling.DragMove}, nil
	case "resize":
		return Drag{Mode: tiling.DragResize}, nil
	}
	return nil, fmt.Errorf("invalid drag mode %q (want move or resize)", s)
}
