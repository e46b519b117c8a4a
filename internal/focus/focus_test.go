package focus

import (
	"reflect"
	"testing"

	"github.com/1broseidon/floatwm/internal/platform"
)

func all(platform.WindowID) bool { return true }

func TestManager_AddAndFocusOrder(t *testing.T) {
	m := NewManager(2)
	m.Add(1, 0)
	m.Add(2, 0)
	m.Add(3, 0)

	if got, want := m.Ring(0), []platform.WindowID{3, 2, 1}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ring = %v, want %v", got, want)
	}

	m.Focus(1)
	if got, want := m.Ring(0), []platform.WindowID{1, 3, 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ring after focus = %v, want %v", got, want)
	}
	if id, ok := m.Current(); !ok || id != 1 {
		t.Fatalf("current = %v,%v", id, ok)
	}

	m.Move(3, 1)
	if got, want := m.Ring(0), []platform.WindowID{1, 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ring 0 after move = %v, want %v", got, want)
	}
	if got, want := m.Ring(1), []platform.WindowID{3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ring 1 after move = %v, want %v", got, want)
	}

	m.Remove(1)
	if _, ok := m.Current(); ok {
		t.Fatalf("expected no focus after removing the current client")
	}
}

func TestManager_CycleReturnsToStart(t *testing.T) {
	m := NewManager(1)
	for id := platform.WindowID(1); id <= 4; id++ {
		m.Add(id, 0)
	}
	m.Focus(2)
	start, _ := m.Current()

	for i := 0; i < 4; i++ {
		if _, ok := m.Cycle(0, true, all); !ok {
			t.Fatalf("cycle %d found no candidate", i)
		}
	}
	if id, _ := m.Current(); id != start {
		t.Fatalf("after N cycles current = %v, want %v", id, start)
	}

	for i := 0; i < 4; i++ {
		m.Cycle(0, false, all)
	}
	if id, _ := m.Current(); id != start {
		t.Fatalf("after N backward cycles current = %v, want %v", id, start)
	}
}

func TestManager_CycleSkipsInvisibleAndIncludesFixed(t *testing.T) {
	m := NewManager(2)
	m.Add(1, 0)
	m.Add(2, 0)
	m.Add(3, 1)

	hidden := map[platform.WindowID]bool{2: true}
	fixed := map[platform.WindowID]bool{3: true}
	visible := func(id platform.WindowID) bool {
		if hidden[id] {
			return false
		}
		return id != 3 || fixed[id]
	}

	got := m.Candidates(0, visible)
	if want := []platform.WindowID{1, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("candidates = %v, want %v", got, want)
	}

	m.Focus(1)
	if id, _ := m.Cycle(0, true, visible); id != 3 {
		t.Fatalf("next = %v, want 3", id)
	}
	if id, _ := m.Cycle(0, true, visible); id != 1 {
		t.Fatalf("next = %v, want 1", id)
	}
}

func TestManager_CycleEmpty(t *testing.T) {
	m := NewManager(3)
	if _, ok := m.Cycle(1, true, all); ok {
		t.Fatalf("expected no-op on an empty ring")
	}
}

func TestManager_Resize(t *testing.T) {
	m := NewManager(3)
	m.Add(7, 2)
	m.Resize(2)
	if got := m.Ring(1); len(got) != 1 || got[0] != 7 {
		t.Fatalf("ring 1 after shrink = %v", got)
	}
	m.Resize(4)
	if len(m.rings) != 4 {
		t.Fatalf("expected 4 rings, got %d", len(m.rings))
	}
}

func TestRaiseOrLower(t *testing.T) {
	order := []platform.WindowID{10, 20, 30}
	overlapAll := func(platform.WindowID) bool { return true }
	overlapNone := func(platform.WindowID) bool { return false }

	tests := []struct {
		name     string
		id       platform.WindowID
		overlaps func(platform.WindowID) bool
		aot      bool
		want     StackOp
	}{
		{"covered client is raised", 10, overlapAll, false, StackRaise},
		{"topmost client is lowered", 30, overlapAll, false, StackLower},
		{"client only covered by disjoint windows is lowered", 10, overlapNone, false, StackLower},
		{"topmost always-on-top stays", 30, overlapAll, true, StackNone},
		{"covered always-on-top is raised", 20, overlapAll, true, StackRaise},
		{"unknown window is raised", 99, overlapAll, false, StackRaise},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RaiseOrLower(tt.id, order, tt.overlaps, tt.aot); got != tt.want {
				t.Fatalf("RaiseOrLower = %v, want %v", got, tt.want)
			}
		})
	}
}
