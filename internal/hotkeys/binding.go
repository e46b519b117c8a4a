package hotkeys

import (
	"fmt"
	"sort"
	"strings"

	"github.com/1broseidon/floatwm/internal/action"
)

// Modifier is a bitset of the modifiers a binding requires. The bit values
// are the X core protocol modifier masks.
type Modifier uint16

const (
	ModShift   Modifier = 1 << 0 // ShiftMask
	ModControl Modifier = 1 << 2 // ControlMask
	ModAlt     Modifier = 1 << 3 // Mod1Mask
	ModMod     Modifier = 1 << 6 // Mod4Mask (Super)

	// AllModifiers masks event state down to the bits bindings can use.
	AllModifiers = ModShift | ModControl | ModAlt | ModMod
)

var modifierNames = []struct {
	mod  Modifier
	name string
}{
	{ModMod, "mod"},
	{ModShift, "shift"},
	{ModControl, "control"},
	{ModAlt, "alt"},
}

// ParseModifiers combines modifier names into a mask.
func ParseModifiers(names []string) (Modifier, error) {
	var m Modifier
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		switch name {
		case "ctrl":
			name = "control"
		case "super", "mod4":
			name = "mod"
		case "mod1":
			name = "alt"
		}
		found := false
		for _, mn := range modifierNames {
			if mn.name == name {
				m |= mn.mod
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown modifier %q", raw)
		}
	}
	return m, nil
}

// Names returns the modifier names in mask, in canonical order.
func (m Modifier) Names() []string {
	var out []string
	for _, mn := range modifierNames {
		if m&mn.mod != 0 {
			out = append(out, mn.name)
		}
	}
	return out
}

func (m Modifier) String() string {
	if m == 0 {
		return "none"
	}
	return strings.ToUpper(strings.Join(m.Names(), "|"))
}

// Binding maps one chord to an action. Code is a keysym for key bindings and
// a button number for button bindings.
type Binding struct {
	Mods   Modifier
	Code   uint32
	Action action.Action
}

// Chord identifies a (modifier mask, code) pair.
type Chord struct {
	Mods Modifier
	Code uint32
}

// Table is an ordered, immutable list of bindings.
type Table struct {
	bindings []Binding
}

// NewTable copies bindings into a table, keeping their order.
func NewTable(bindings []Binding) *Table {
	out := make([]Binding, len(bindings))
	copy(out, bindings)
	return &Table{bindings: out}
}

// Lookup returns the action of the first binding whose mask and code match
// exactly. Modifier bits outside AllModifiers are ignored.
func (t *Table) Lookup(mods Modifier, code uint32) (action.Action, bool) {
	if t == nil {
		return action.Action{}, false
	}
	mods &= AllModifiers
	for _, b := range t.bindings {
		if b.Mods == mods && b.Code == code {
			return b.Action, true
		}
	}
	return action.Action{}, false
}

// Bindings returns a copy of the bindings in table order.
func (t *Table) Bindings() []Binding {
	if t == nil {
		return nil
	}
	out := make([]Binding, len(t.bindings))
	copy(out, t.bindings)
	return out
}

// Len returns the number of bindings.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.bindings)
}

// Chords returns the distinct chords of the table, sorted, for grabbing.
func (t *Table) Chords() []Chord {
	seen := make(map[Chord]struct{})
	var out []Chord
	for _, b := range t.Bindings() {
		c := Chord{Mods: b.Mods, Code: b.Code}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Code != out[j].Code {
			return out[i].Code < out[j].Code
		}
		return out[i].Mods < out[j].Mods
	})
	return out
}
