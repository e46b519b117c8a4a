package tiling

import "math"

// Direction is one of the four keyboard step directions.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns the string representation of the direction
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Delta returns the unit vector of the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

// Hints are the client's size increments (e.g. terminal character cells).
type Hints struct {
	BaseWidth  int `json:"base_width,omitempty"`
	BaseHeight int `json:"base_height,omitempty"`
	WidthInc   int `json:"width_inc,omitempty"`
	HeightInc  int `json:"height_inc,omitempty"`
}

// Move shifts r by step pixels in dir.
func Move(r Rect, dir Direction, step int) Rect {
	dx, dy := dir.Delta()
	r.X += dx * step
	r.Y += dy * step
	return r
}

// Resize grows (down/right) or shrinks (up/left) one dimension by step pixels,
// never below minSize.
func Resize(r Rect, dir Direction, step int, minSize int) Rect {
	switch dir {
	case DirUp:
		r.Height -= step
	case DirDown:
		r.Height += step
	case DirLeft:
		r.Width -= step
	case DirRight:
		r.Width += step
	}
	return ClampSize(r, minSize)
}

// ResizeByLine resizes like Resize but steps by the client's increments and
// snaps the affected dimension to base + k*inc. Falls back to step when the
// client advertises no usable increment for that axis.
func ResizeByLine(r Rect, dir Direction, step int, hints Hints, minSize int) Rect {
	switch dir {
	case DirUp, DirDown:
		if hints.HeightInc <= 1 {
			return Resize(r, dir, step, minSize)
		}
		out := Resize(r, dir, hints.HeightInc, minSize)
		out.Height = snapToIncrement(out.Height, hints.BaseHeight, hints.HeightInc, minSize)
		return out
	default:
		if hints.WidthInc <= 1 {
			return Resize(r, dir, step, minSize)
		}
		out := Resize(r, dir, hints.WidthInc, minSize)
		out.Width = snapToIncrement(out.Width, hints.BaseWidth, hints.WidthInc, minSize)
		return out
	}
}

func snapToIncrement(size, base, inc, minSize int) int {
	if size <= base {
		return size
	}
	snapped := base + ((size-base)/inc)*inc
	for snapped < minSize {
		snapped += inc
	}
	return snapped
}

// ResizeAspect scales r by ratio (grow) or its inverse (shrink) while holding
// the proportion aspect (width/height) across repeated applications. The
// smaller side is scaled and the larger one derived from it, so rounding
// error stays relative to the larger side. Every application changes the
// size by at least one pixel. The top-left corner stays put. A shrink that
// would fall below minSize leaves r unchanged.
func ResizeAspect(r Rect, grow bool, ratio, aspect float64, minSize int) Rect {
	if ratio <= 1 || aspect <= 0 {
		return r
	}
	scale := ratio
	if !grow {
		scale = 1 / ratio
	}

	out := r
	if aspect >= 1 {
		out.Height = stepAtLeastOne(r.Height, scale, grow)
		out.Width = int(math.Round(float64(out.Height) * aspect))
	} else {
		out.Width = stepAtLeastOne(r.Width, scale, grow)
		out.Height = int(math.Round(float64(out.Width) / aspect))
	}
	if out.Width < minSize || out.Height < minSize {
		return r
	}
	return out
}

func stepAtLeastOne(size int, scale float64, grow bool) int {
	next := int(math.Round(float64(size) * scale))
	switch {
	case grow && next <= size:
		return size + 1
	case !grow && next >= size:
		return size - 1
	}
	return next
}

// DragMode selects what a pointer drag changes.
type DragMode int

const (
	DragMove DragMode = iota
	DragResize
)

// String returns the string representation of the drag mode
func (m DragMode) String() string {
	switch m {
	case DragMove:
		return "move"
	case DragResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Drag applies a pointer delta to the anchor geometry, additively.
func Drag(anchor Rect, dx, dy int, mode DragMode, minSize int) Rect {
	out := anchor
	switch mode {
	case DragMove:
		out.X += dx
		out.Y += dy
	case DragResize:
		out.Width += dx
		out.Height += dy
		out = ClampSize(out, minSize)
	}
	return out
}

// Magnet snaps any edge of r lying within dist pixels of the matching edge
// of bounds onto that edge. Size is unchanged.
func Magnet(r Rect, bounds Rect, dist int) Rect {
	if dist <= 0 {
		return r
	}
	if abs(r.X-bounds.X) <= dist {
		r.X = bounds.X
	} else if abs(r.Right()-bounds.Right()) <= dist {
		r.X = bounds.Right() - r.Width
	}
	if abs(r.Y-bounds.Y) <= dist {
		r.Y = bounds.Y
	} else if abs(r.Bottom()-bounds.Bottom()) <= dist {
		r.Y = bounds.Bottom() - r.Height
	}
	return r
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
