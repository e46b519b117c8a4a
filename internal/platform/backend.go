package platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Display describes a physical display.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
}

// Window contains metadata and geometry for a top-level window.
type Window struct {
	ID     WindowID
	Title  string
	AppID  string
	Bounds Rect
	Mapped bool
}

// Backend is the display-server side of the engine boundary: it reports
// screens, windows and stacking, and carries out directives.
type Backend interface {
	Displays() ([]Display, error)
	ListWindows() ([]Window, error)
	// StackingOrder returns top-level windows bottom to top.
	StackingOrder() ([]WindowID, error)
	MoveResize(windowID WindowID, bounds Rect) error
	Map(windowID WindowID) error
	Unmap(windowID WindowID) error
	Raise(windowID WindowID) error
	Lower(windowID WindowID) error
	Focus(windowID WindowID) error
	Close(windowID WindowID) error
	// WarpPointer moves the pointer to (x, y) on the root window, or by
	// (x, y) when relative is set.
	WarpPointer(x, y int, relative bool) error
	SetCurrentDesktop(desktop int) error
}
