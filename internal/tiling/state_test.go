package tiling

import "testing"

func TestTeleport(t *testing.T) {
	bounds := Rect{X: 18, Y: 18, Width: 964, Height: 641}
	win := Rect{X: 400, Y: 300, Width: 200, Height: 100}

	tests := []struct {
		target Target
		want   Rect
	}{
		{TargetTopLeft, Rect{18, 18, 200, 100}},
		{TargetTopRight, Rect{782, 18, 200, 100}},
		{TargetBottomLeft, Rect{18, 559, 200, 100}},
		{TargetBottomRight, Rect{782, 559, 200, 100}},
		{TargetCenter, Rect{400, 288, 200, 100}},
		{TargetCenterX, Rect{400, 300, 200, 100}},
		{TargetCenterY, Rect{400, 288, 200, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.target.String(), func(t *testing.T) {
			if got := Teleport(win, bounds, tt.target); got != tt.want {
				t.Errorf("Teleport(%v) = %+v, want %+v", tt.target, got, tt.want)
			}
		})
	}
}

func TestParseTarget(t *testing.T) {
	for target, name := range targetNames {
		got, ok := ParseTarget(name)
		if !ok || got != target {
			t.Errorf("ParseTarget(%q) = %v, %v", name, got, ok)
		}
	}
	if _, ok := ParseTarget("nowhere"); ok {
		t.Fatalf("expected unknown target to fail")
	}
}

func TestPlace(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 1000, Height: 700}
	win := Rect{X: 100, Y: 120, Width: 300, Height: 200}

	tests := []struct {
		state State
		want  Rect
	}{
		{StateMaxFull, bounds},
		{StateMaxVertical, Rect{100, 0, 300, 700}},
		{StateMaxHorizontal, Rect{0, 120, 1000, 200}},
		{StateHalfLeft, Rect{0, 0, 500, 700}},
		{StateHalfRight, Rect{500, 0, 500, 700}},
		{StateHalfTop, Rect{0, 0, 1000, 350}},
		{StateHalfBottom, Rect{0, 350, 1000, 350}},
		{StateNormal, win},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := Place(tt.state, win, bounds); got != tt.want {
				t.Errorf("Place(%v) = %+v, want %+v", tt.state, got, tt.want)
			}
		})
	}
}

func TestPlace_OddExtentKeepsOuterEdge(t *testing.T) {
	bounds := Rect{X: 18, Y: 18, Width: 965, Height: 641}
	right := Place(StateHalfRight, Rect{}, bounds)
	if right.Right() != bounds.Right() {
		t.Fatalf("right half must touch right edge, got %+v", right)
	}
	bottom := Place(StateHalfBottom, Rect{}, bounds)
	if bottom.Bottom() != bounds.Bottom() {
		t.Fatalf("bottom half must touch bottom edge, got %+v", bottom)
	}
}

func TestFold(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 1000, Height: 700}

	left := Place(StateHalfLeft, Rect{}, bounds)
	got, ok := Fold(left, StateHalfLeft, FoldVertical, 16)
	if !ok || got != (Rect{0, 0, 250, 700}) {
		t.Fatalf("fold left = %+v, %v", got, ok)
	}

	right := Place(StateHalfRight, Rect{}, bounds)
	got, ok = Fold(right, StateHalfRight, FoldVertical, 16)
	if !ok || got != (Rect{750, 0, 250, 700}) {
		t.Fatalf("fold right = %+v, %v", got, ok)
	}

	bottom := Place(StateHalfBottom, Rect{}, bounds)
	got, ok = Fold(bottom, StateHalfBottom, FoldHorizontal, 16)
	if !ok || got.Bottom() != bounds.Bottom() || got.Height != 175 {
		t.Fatalf("fold bottom = %+v, %v", got, ok)
	}
}

func TestFold_WrongAxisRejected(t *testing.T) {
	left := Rect{0, 0, 500, 700}
	if _, ok := Fold(left, StateHalfLeft, FoldHorizontal, 16); ok {
		t.Fatalf("horizontal fold must not apply to a left half")
	}
	if _, ok := Fold(left, StateMaxFull, FoldVertical, 16); ok {
		t.Fatalf("fold must not apply to a maximized window")
	}
}

func TestStateString(t *testing.T) {
	if StateFoldedHorizontal.String() != "folded_horizontal" {
		t.Fatalf("unexpected name %q", StateFoldedHorizontal.String())
	}
	if State(99).String() != "unknown" {
		t.Fatalf("expected unknown for out-of-range state")
	}
}

func TestCursorPoint(t *testing.T) {
	r := Rect{X: 100, Y: 100, Width: 200, Height: 100}
	x, y := CursorPoint(r, CursorBottomRight)
	if !r.ContainsPoint(x, y) || x != 298 || y != 198 {
		t.Fatalf("bottom right = %d,%d", x, y)
	}
	x, y = CursorPoint(r, CursorMiddle)
	if x != 200 || y != 150 {
		t.Fatalf("middle = %d,%d", x, y)
	}
}
