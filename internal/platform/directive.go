package platform

import (
	"fmt"

	"github.com/1broseidon/floatwm/internal/tiling"
)

// DirectiveKind identifies what the display layer must do.
type DirectiveKind int

const (
	DirectiveGeometry DirectiveKind = iota
	DirectiveShow
	DirectiveHide
	DirectiveRaise
	DirectiveLower
	DirectiveFocus
	DirectiveClose
	DirectiveSpawn
	DirectiveWarp
	DirectiveDesktop
	DirectiveExit
	DirectiveRestart
)

var directiveNames = [...]string{
	DirectiveGeometry: "geometry",
	DirectiveShow:     "show",
	DirectiveHide:     "hide",
	DirectiveRaise:    "raise",
	DirectiveLower:    "lower",
	DirectiveFocus:    "focus",
	DirectiveClose:    "close",
	DirectiveSpawn:    "spawn",
	DirectiveWarp:     "warp",
	DirectiveDesktop:  "desktop",
	DirectiveExit:     "exit",
	DirectiveRestart:  "restart",
}

// String returns the string representation of the directive kind
func (k DirectiveKind) String() string {
	if k >= 0 && int(k) < len(directiveNames) {
		return directiveNames[k]
	}
	return "unknown"
}

// MarshalText renders the kind by name in JSON output.
func (k DirectiveKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Directive is one decision emitted by the engine for the display layer.
// Only the fields relevant to Kind are set.
type Directive struct {
	Kind   DirectiveKind `json:"kind"`
	Window WindowID      `json:"window,omitempty"`
	Rect   tiling.Rect   `json:"rect,omitempty"`
	// Argv is the command of a spawn directive.
	Argv []string `json:"argv,omitempty"`
	// X and Y are the pointer target of a warp, or the workspace number of a
	// desktop directive in X.
	X        int  `json:"x,omitempty"`
	Y        int  `json:"y,omitempty"`
	Relative bool `json:"relative,omitempty"`
}

func (d Directive) String() string {
	switch d.Kind {
	case DirectiveGeometry:
		return fmt.Sprintf("geometry 0x%x %dx%d+%d+%d", uint32(d.Window), d.Rect.Width, d.Rect.Height, d.Rect.X, d.Rect.Y)
	case DirectiveSpawn:
		return fmt.Sprintf("spawn %q", d.Argv)
	case DirectiveWarp:
		if d.Relative {
			return fmt.Sprintf("warp by %d,%d", d.X, d.Y)
		}
		return fmt.Sprintf("warp to %d,%d", d.X, d.Y)
	case DirectiveDesktop:
		return fmt.Sprintf("desktop %d", d.X)
	case DirectiveExit, DirectiveRestart:
		return d.Kind.String()
	default:
		return fmt.Sprintf("%s 0x%x", d.Kind, uint32(d.Window))
	}
}

// Geometry builds a geometry directive.
func Geometry(id WindowID, r tiling.Rect) Directive {
	return Directive{Kind: DirectiveGeometry, Window: id, Rect: r}
}

// ForWindow builds a directive that only names a window.
func ForWindow(kind DirectiveKind, id WindowID) Directive {
	return Directive{Kind: kind, Window: id}
}
