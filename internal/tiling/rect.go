package tiling

// Rect represents a window position and size
type Rect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Right returns the x coordinate one past the right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate one past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Intersects reports whether two rects overlap by at least one pixel.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// ContainsPoint reports whether (x, y) lies inside r.
func (r Rect) ContainsPoint(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Within reports whether r lies fully inside bounds.
func (r Rect) Within(bounds Rect) bool {
	return r.X >= bounds.X && r.Y >= bounds.Y && r.Right() <= bounds.Right() && r.Bottom() <= bounds.Bottom()
}

// Margins are the outer gaps kept free between a screen edge and the usable area.
type Margins struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// UsableBounds shrinks a screen rect by the outer margins.
func UsableBounds(screen Rect, m Margins) Rect {
	usable := Rect{
		X:      screen.X + m.Left,
		Y:      screen.Y + m.Top,
		Width:  screen.Width - m.Left - m.Right,
		Height: screen.Height - m.Top - m.Bottom,
	}
	if usable.Width < 1 {
		usable.Width = 1
	}
	if usable.Height < 1 {
		usable.Height = 1
	}
	return usable
}

// ClampSize raises width and height to at least minSize.
func ClampSize(r Rect, minSize int) Rect {
	if minSize < 1 {
		minSize = 1
	}
	if r.Width < minSize {
		r.Width = minSize
	}
	if r.Height < minSize {
		r.Height = minSize
	}
	return r
}

// ClampToScreen enforces the minimum size, caps the extent to the screen and
// then shifts the rect so it lies entirely on the screen.
func ClampToScreen(r Rect, screen Rect, minSize int) Rect {
	r = ClampSize(r, minSize)

	if r.Width > screen.Width {
		r.Width = screen.Width
	}
	if r.Height > screen.Height {
		r.Height = screen.Height
	}

	if r.X < screen.X {
		r.X = screen.X
	}
	if r.Y < screen.Y {
		r.Y = screen.Y
	}
	if r.Right() > screen.Right() {
		r.X = screen.Right() - r.Width
	}
	if r.Bottom() > screen.Bottom() {
		r.Y = screen.Bottom() - r.Height
	}

	return r
}

// Translate keeps r at the same offset relative to "to" as it had to "from".
func Translate(r Rect, from, to Rect) Rect {
	r.X = to.X + (r.X - from.X)
	r.Y = to.Y + (r.Y - from.Y)
	return r
}
