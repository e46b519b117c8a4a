package tiling

// Target names a screen region a window can be teleported to.
type Target int

const (
	TargetCenter Target = iota
	TargetCenterX
	TargetCenterY
	TargetTopLeft
	TargetTopRight
	TargetBottomLeft
	TargetBottomRight
)

var targetNames = map[Target]string{
	TargetCenter:      "center",
	TargetCenterX:     "center_x",
	TargetCenterY:     "center_y",
	TargetTopLeft:     "top_left",
	TargetTopRight:    "top_right",
	TargetBottomLeft:  "bottom_left",
	TargetBottomRight: "bottom_right",
}

// String returns the string representation of the target
func (t Target) String() string {
	if name, ok := targetNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseTarget converts a target name to a Target.
func ParseTarget(s string) (Target, bool) {
	for t, name := range targetNames {
		if name == s {
			return t, true
		}
	}
	return 0, false
}

// Teleport aligns r to the named region of bounds without resizing it.
func Teleport(r Rect, bounds Rect, t Target) Rect {
	centerX := bounds.X + (bounds.Width-r.Width)/2
	centerY := bounds.Y + (bounds.Height-r.Height)/2

	switch t {
	case TargetCenter:
		r.X, r.Y = centerX, centerY
	case TargetCenterX:
		r.X = centerX
	case TargetCenterY:
		r.Y = centerY
	case TargetTopLeft:
		r.X, r.Y = bounds.X, bounds.Y
	case TargetTopRight:
		r.X, r.Y = bounds.Right()-r.Width, bounds.Y
	case TargetBottomLeft:
		r.X, r.Y = bounds.X, bounds.Bottom()-r.Height
	case TargetBottomRight:
		r.X, r.Y = bounds.Right()-r.Width, bounds.Bottom()-r.Height
	}
	return r
}

// CursorPosition is where the pointer is placed inside a newly focused window.
type CursorPosition string

const (
	CursorTopLeft     CursorPosition = "top_left"
	CursorTopRight    CursorPosition = "top_right"
	CursorBottomLeft  CursorPosition = "bottom_left"
	CursorBottomRight CursorPosition = "bottom_right"
	CursorMiddle      CursorPosition = "middle"
)

// CursorPoint returns the absolute pointer location for pos inside r.
// Corners are inset by one pixel so the pointer stays inside the window.
func CursorPoint(r Rect, pos CursorPosition) (x, y int) {
	switch pos {
	case CursorTopLeft:
		return r.X + 1, r.Y + 1
	case CursorTopRight:
		return r.Right() - 2, r.Y + 1
	case CursorBottomLeft:
		return r.X + 1, r.Bottom() - 2
	case CursorMiddle:
		return r.X + r.Width/2, r.Y + r.Height/2
	default:
		return r.Right() - 2, r.Bottom() - 2
	}
}
