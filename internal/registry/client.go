package registry

import (
	"github.com/1broseidon/floatwm/internal/platform"
	"github.com/1broseidon/floatwm/internal/tiling"
)

// Flag is one of the independent per-client booleans.
type Flag int

const (
	FlagUnkillable Flag = iota
	FlagAlwaysOnTop
	FlagFixed
	FlagHidden
)

// String returns the string representation of the flag
func (f Flag) String() string {
	switch f {
	case FlagUnkillable:
		return "unkillable"
	case FlagAlwaysOnTop:
		return "always_on_top"
	case FlagFixed:
		return "fixed"
	case FlagHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// Flags holds the per-client booleans.
type Flags struct {
	Unkillable  bool `json:"unkillable"`
	AlwaysOnTop bool `json:"always_on_top"`
	Fixed       bool `json:"fixed"`
	// Hidden is set by the iconify action and cleared when the display layer
	// maps the window again.
	Hidden bool `json:"hidden"`
}

// Client is one managed window.
type Client struct {
	ID        platform.WindowID `json:"id"`
	Geometry  tiling.Rect       `json:"geometry"`
	Workspace int               `json:"workspace"`
	Screen    int               `json:"screen"`
	Flags     Flags             `json:"flags"`
	Hints     tiling.Hints      `json:"hints"`

	Tiling tiling.State `json:"tiling_state"`
	// Saved is the geometry recorded before entering Tiling; nil iff Tiling
	// is StateNormal.
	Saved *tiling.Rect `json:"saved_geometry,omitempty"`
	// FoldedFrom is the half state a folded client returns to on unfold.
	FoldedFrom tiling.State `json:"-"`
	// Unfolded is the geometry held before the fold; nil unless folded.
	Unfolded *tiling.Rect `json:"-"`
	// Aspect is the width/height proportion held by aspect-locked resizes.
	// Zero until the first such resize; cleared by any other geometry change.
	Aspect float64 `json:"-"`
}

// Visible reports whether the client shows on workspace ws.
func (c *Client) Visible(ws int) bool {
	if c.Flags.Hidden {
		return false
	}
	return c.Flags.Fixed || c.Workspace == ws
}

// Flag returns the current value of f.
func (c *Client) Flag(f Flag) bool {
	switch f {
	case FlagUnkillable:
		return c.Flags.Unkillable
	case FlagAlwaysOnTop:
		return c.Flags.AlwaysOnTop
	case FlagFixed:
		return c.Flags.Fixed
	case FlagHidden:
		return c.Flags.Hidden
	}
	return false
}

func (c *Client) setFlag(f Flag, v bool) {
	switch f {
	case FlagUnkillable:
		c.Flags.Unkillable = v
	case FlagAlwaysOnTop:
		c.Flags.AlwaysOnTop = v
	case FlagFixed:
		c.Flags.Fixed = v
	case FlagHidden:
		c.Flags.Hidden = v
	}
}
