package tiling

// State is the maximize/half/fold state of a client.
type State int

const (
	StateNormal State = iota
	StateMaxFull
	StateMaxVertical
	StateMaxHorizontal
	StateHalfLeft
	StateHalfRight
	StateHalfTop
	StateHalfBottom
	StateFoldedVertical
	StateFoldedHorizontal
)

var stateNames = [...]string{
	StateNormal:           "normal",
	StateMaxFull:          "maximized_full",
	StateMaxVertical:      "maximized_vertical",
	StateMaxHorizontal:    "maximized_horizontal",
	StateHalfLeft:         "half_left",
	StateHalfRight:        "half_right",
	StateHalfTop:          "half_top",
	StateHalfBottom:       "half_bottom",
	StateFoldedVertical:   "folded_vertical",
	StateFoldedHorizontal: "folded_horizontal",
}

// String returns the string representation of the state
func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// MarshalText lets states appear by name in JSON and YAML output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsHalf reports whether s is one of the four half-screen states.
func (s State) IsHalf() bool {
	return s == StateHalfLeft || s == StateHalfRight || s == StateHalfTop || s == StateHalfBottom
}

// IsFolded reports whether s is a folded state.
func (s State) IsFolded() bool {
	return s == StateFoldedVertical || s == StateFoldedHorizontal
}

// Place computes the geometry of a client entering state s from r.
// Maximize-vertical and maximize-horizontal keep the other axis of r; every
// other state ignores r. Folded states are produced by Fold, not Place.
func Place(s State, r Rect, bounds Rect) Rect {
	switch s {
	case StateMaxFull:
		return bounds
	case StateMaxVertical:
		return Rect{X: r.X, Y: bounds.Y, Width: r.Width, Height: bounds.Height}
	case StateMaxHorizontal:
		return Rect{X: bounds.X, Y: r.Y, Width: bounds.Width, Height: r.Height}
	case StateHalfLeft:
		return Rect{X: bounds.X, Y: bounds.Y, Width: bounds.Width / 2, Height: bounds.Height}
	case StateHalfRight:
		w := bounds.Width / 2
		return Rect{X: bounds.Right() - w, Y: bounds.Y, Width: w, Height: bounds.Height}
	case StateHalfTop:
		return Rect{X: bounds.X, Y: bounds.Y, Width: bounds.Width, Height: bounds.Height / 2}
	case StateHalfBottom:
		h := bounds.Height / 2
		return Rect{X: bounds.X, Y: bounds.Bottom() - h, Width: bounds.Width, Height: h}
	default:
		return r
	}
}

// FoldAxis selects which halved dimension a fold acts on.
type FoldAxis int

const (
	FoldVertical FoldAxis = iota
	FoldHorizontal
)

// Folded returns the folded state for the axis.
func (a FoldAxis) Folded() State {
	if a == FoldHorizontal {
		return StateFoldedHorizontal
	}
	return StateFoldedVertical
}

// Accepts reports whether a client in half state s can be folded along a.
// Vertical folds apply to left/right halves, horizontal folds to top/bottom.
func (a FoldAxis) Accepts(s State) bool {
	if a == FoldVertical {
		return s == StateHalfLeft || s == StateHalfRight
	}
	return s == StateHalfTop || s == StateHalfBottom
}

// Fold halves the already-halved dimension of r again, keeping the outer
// edge on the same side of the screen as half state from. ok is false when
// from cannot be folded along axis or the result would drop below minSize.
func Fold(r Rect, from State, axis FoldAxis, minSize int) (out Rect, ok bool) {
	if !axis.Accepts(from) {
		return r, false
	}

	out = r
	switch from {
	case StateHalfLeft:
		out.Width = r.Width / 2
	case StateHalfRight:
		out.Width = r.Width / 2
		out.X = r.Right() - out.Width
	case StateHalfTop:
		out.Height = r.Height / 2
	case StateHalfBottom:
		out.Height = r.Height / 2
		out.Y = r.Bottom() - out.Height
	}
	if out.Width < minSize || out.Height < minSize {
		return r, false
	}
	return out, true
}
