package hotkeys

import (
	"testing"

	"github.com/1broseidon/floatwm/internal/action"
)

func TestTable_LookupFirstExactMatch(t *testing.T) {
	table := NewTable([]Binding{
		{Mods: ModMod, Code: 'k', Action: action.MustParse("move_step", "up")},
		{Mods: ModMod | ModShift, Code: 'k', Action: action.MustParse("resize_step", "up")},
		{Mods: ModMod, Code: 'k', Action: action.MustParse("exit")},
	})

	tests := []struct {
		name   string
		mods   Modifier
		code   uint32
		want   action.Kind
		wantOK bool
	}{
		{"first of duplicates wins", ModMod, 'k', action.MoveStep, true},
		{"extra modifier selects other binding", ModMod | ModShift, 'k', action.ResizeStep, true},
		{"lock bits ignored", ModMod | Modifier(0x2|0x10), 'k', action.MoveStep, true},
		{"subset of mask does not match", 0, 'k', "", false},
		{"unbound code", ModMod, 'z', "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.Lookup(tt.mods, tt.code)
			if ok != tt.wantOK || got.Kind != tt.want {
				t.Fatalf("Lookup(%v, %q) = %v,%v; want %v,%v", tt.mods, rune(tt.code), got.Kind, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTable_Chords(t *testing.T) {
	table := NewTable([]Binding{
		{Mods: ModMod, Code: 'k'},
		{Mods: ModMod, Code: 'k'},
		{Mods: ModMod | ModShift, Code: 'k'},
		{Mods: ModMod, Code: 'a'},
	})
	chords := table.Chords()
	if len(chords) != 3 {
		t.Fatalf("Chords = %v, want 3 distinct", chords)
	}
	if chords[0].Code != 'a' {
		t.Fatalf("Chords not sorted: %v", chords)
	}
}

func TestParseModifiers(t *testing.T) {
	m, err := ParseModifiers([]string{"mod", "Shift", "ctrl", "alt"})
	if err != nil {
		t.Fatalf("ParseModifiers: %v", err)
	}
	if m != ModMod|ModShift|ModControl|ModAlt {
		t.Fatalf("mask = %v", m)
	}
	if got := m.String(); got != "MOD|SHIFT|CONTROL|ALT" {
		t.Fatalf("String = %q", got)
	}
	if _, err := ParseModifiers([]string{"hyper"}); err == nil {
		t.Fatalf("expected error for unknown modifier")
	}
}

func TestButtonSpec(t *testing.T) {
	if got := buttonSpec(Chord{Mods: ModMod | ModAlt, Code: 3}); got != "Mod4-Mod1-3" {
		t.Fatalf("buttonSpec = %q", got)
	}
}

func TestParseKeysym(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"k", 'k'},
		{"K", 'k'},
		{"1", '1'},
		{"Tab", xkTab},
		{"return", xkReturn},
		{"F5", xkF1 + 4},
		{"XF86AudioRaiseVolume", 0x1008ff13},
		{"0x1008ffb2", 0x1008ffb2},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKeysym(tt.in)
			if err != nil {
				t.Fatalf("ParseKeysym(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseKeysym(%q) = %#x, want %#x", tt.in, got, tt.want)
			}
			if back, _ := ParseKeysym(KeysymName(got)); back != got {
				t.Fatalf("KeysymName(%#x) = %q does not parse back", got, KeysymName(got))
			}
		})
	}

	if _, err := ParseKeysym("NoSuchKey"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}
