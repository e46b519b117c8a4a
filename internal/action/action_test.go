package action

import (
	"errors"
	"reflect"
	"testing"

	"github.com/1broseidon/floatwm/internal/tiling"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		kind string
		args []string
		want Action
	}{
		{"focus previous", "focus_next", []string{"previous"}, Action{FocusNext, CyclePrevious}},
		{"slow step", "move_step", []string{"left_slow"}, Action{MoveStep, Step{Dir: tiling.DirLeft, Slow: true}}},
		{"fast step", "resize_step", []string{"down"}, Action{ResizeStep, Step{Dir: tiling.DirDown}}},
		{"teleport", "teleport", []string{"bottom_right"}, Action{Teleport, Place{Target: tiling.TargetBottomRight}}},
		{"aspect", "resize_step_aspect", []string{"shrink"}, Action{ResizeStepAspect, ScaleShrink}},
		{"override", "maximize", []string{"fullscreen_override_offsets"}, Action{Maximize, MaxOverride}},
		{"maxvert", "maxvert_hor", []string{"horizontal"}, Action{MaxVertHor, AxisHorizontal}},
		{"unfold", "maxhalf", []string{"unfold_horizontal"}, Action{MaxHalf, UnfoldHorizontal}},
		{"workspace", "change_workspace", []string{"3"}, Action{ChangeWorkspace, Workspace(3)}},
		{"spawn", "spawn", []string{"urxvt", "-e", "fish"}, Action{Spawn, Command{"urxvt", "-e", "fish"}}},
		{"drag", "mouse_motion", []string{"resize"}, Action{MouseMotion, Drag{Mode: tiling.DragResize}}},
		{"none", "raise_or_lower", nil, Action{RaiseOrLower, None{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.kind, tt.args)
			if err != nil {
				t.Fatalf("Parse(%q, %q): %v", tt.kind, tt.args, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Parse(%q, %q) = %#v, want %#v", tt.kind, tt.args, got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		kind string
		args []string
	}{
		{"missing argument", "teleport", nil},
		{"bad direction", "move_step", []string{"sideways"}},
		{"extra argument", "hide", []string{"now"}},
		{"negative workspace", "send_to_workspace", []string{"-1"}},
		{"empty spawn", "spawn", nil},
		{"bad half", "maxhalf", []string{"diagonal"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.kind, tt.args); err == nil {
				t.Fatalf("expected error for %q %q", tt.kind, tt.args)
			}
		})
	}

	if _, err := Parse("frobnicate", nil); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		if !Known(k) {
			t.Fatalf("kind %q listed but has no parser", k)
		}
	}

	a := MustParse("maxhalf", "fold_vertical")
	if got := a.String(); got != "maxhalf fold_vertical" {
		t.Fatalf("String = %q", got)
	}
	if got := MustParse("exit").String(); got != "exit" {
		t.Fatalf("String = %q", got)
	}
	if got := MustParse("cursor_move", "up_slow").String(); got != "cursor_move up_slow" {
		t.Fatalf("String = %q", got)
	}
}
