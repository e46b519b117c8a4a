package focus

import "github.com/1broseidon/floatwm/internal/platform"

// StackOp is the stacking change chosen by RaiseOrLower.
type StackOp int

const (
	StackNone StackOp = iota
	StackRaise
	StackLower
)

// String returns the string representation of the stack operation
func (op StackOp) String() string {
	switch op {
	case StackNone:
		return "none"
	case StackRaise:
		return "raise"
	case StackLower:
		return "lower"
	default:
		return "unknown"
	}
}

// RaiseOrLower decides how to restack id. order is the display's stacking
// order, bottom to top; overlaps accepts the windows competing with id. A
// client that is topmost among them is lowered, any other is raised. An
// always-on-top client is never lowered.
func RaiseOrLower(id platform.WindowID, order []platform.WindowID, overlaps func(platform.WindowID) bool, alwaysOnTop bool) StackOp {
	pos := -1
	for i, w := range order {
		if w == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return StackRaise
	}

	for _, w := range order[pos+1:] {
		if w != id && overlaps(w) {
			return StackRaise
		}
	}
	if alwaysOnTop {
		return StackNone
	}
	return StackLower
}
