package workspace

import (
	"testing"

	"github.com/1broseidon/floatwm/internal/platform"
	"github.com/1broseidon/floatwm/internal/registry"
	"github.com/1broseidon/floatwm/internal/tiling"
)

var testMargins = tiling.Margins{Top: 18, Bottom: 41, Left: 18, Right: 18}

func kinds(ds []platform.Directive, id platform.WindowID) []platform.DirectiveKind {
	var out []platform.DirectiveKind
	for _, d := range ds {
		if d.Window == id && d.Kind != platform.DirectiveDesktop {
			out = append(out, d.Kind)
		}
	}
	return out
}

func TestManager_SendThenChange(t *testing.T) {
	m := NewManager(6, testMargins)
	reg := registry.New(16)
	c := reg.Register(1, tiling.Rect{X: 100, Y: 100, Width: 200, Height: 100}, 0, 0)

	ds, err := m.SendTo(reg, c, 3)
	if err != nil {
		t.Fatalf("SendTo: %v", err)
	}
	if got := kinds(ds, 1); len(got) != 1 || got[0] != platform.DirectiveHide {
		t.Fatalf("SendTo directives = %v, want hide", got)
	}

	ds, err = m.Change(3, reg.All())
	if err != nil {
		t.Fatalf("Change(3): %v", err)
	}
	if !c.Visible(m.Active()) {
		t.Fatalf("client should be visible on workspace 3")
	}
	if got := kinds(ds, 1); len(got) != 1 || got[0] != platform.DirectiveShow {
		t.Fatalf("Change(3) directives = %v, want show", got)
	}

	ds, err = m.Change(0, reg.All())
	if err != nil {
		t.Fatalf("Change(0): %v", err)
	}
	if c.Visible(m.Active()) {
		t.Fatalf("client should be hidden on workspace 0")
	}
	if got := kinds(ds, 1); len(got) != 1 || got[0] != platform.DirectiveHide {
		t.Fatalf("Change(0) directives = %v, want hide", got)
	}
	last := ds[len(ds)-1]
	if last.Kind != platform.DirectiveDesktop || last.X != 0 {
		t.Fatalf("last directive = %v, want desktop 0", last)
	}
}

func TestManager_ChangeToActiveIsNoop(t *testing.T) {
	m := NewManager(6, testMargins)
	ds, err := m.Change(0, nil)
	if err != nil || ds != nil {
		t.Fatalf("Change(active) = %v, %v; want nil, nil", ds, err)
	}
	if _, err := m.Change(6, nil); err == nil {
		t.Fatalf("expected error for workspace out of range")
	}
}

func TestManager_FixedClientStaysVisible(t *testing.T) {
	m := NewManager(4, testMargins)
	reg := registry.New(16)
	c := reg.Register(1, tiling.Rect{Width: 50, Height: 50}, 0, 0)
	if err := reg.SetFlag(1, registry.FlagFixed, true); err != nil {
		t.Fatalf("SetFlag: %v", err)
	}

	ds, _ := m.Change(2, reg.All())
	if got := kinds(ds, 1); len(got) != 0 {
		t.Fatalf("fixed client got directives %v", got)
	}
	if c.Workspace != 0 {
		t.Fatalf("fixed client workspace changed to %d", c.Workspace)
	}
}

func TestManager_Neighbor(t *testing.T) {
	m := NewManager(6, testMargins)
	if got := m.Neighbor(false); got != 5 {
		t.Fatalf("prev of 0 = %d, want 5", got)
	}
	if _, err := m.Change(5, nil); err != nil {
		t.Fatalf("Change: %v", err)
	}
	if got := m.Neighbor(true); got != 0 {
		t.Fatalf("next of 5 = %d, want 0", got)
	}
}

func TestManager_Screens(t *testing.T) {
	m := NewManager(6, testMargins)
	m.SetScreens([]Screen{
		{Name: "left", Bounds: tiling.Rect{Width: 1000, Height: 700}},
		{Name: "right", Bounds: tiling.Rect{X: 1000, Width: 1000, Height: 700}},
	})

	want := tiling.Rect{X: 18, Y: 18, Width: 964, Height: 641}
	if got := m.Screen(0).Usable; got != want {
		t.Fatalf("usable = %+v, want %+v", got, want)
	}
	if got := m.ScreenAt(tiling.Rect{X: 1500, Y: 10, Width: 10, Height: 10}); got != 1 {
		t.Fatalf("ScreenAt = %d, want 1", got)
	}

	if got, ok := m.CycleScreen(true); !ok || got != 1 {
		t.Fatalf("CycleScreen = %d,%v", got, ok)
	}
	if got, _ := m.CycleScreen(true); got != 0 {
		t.Fatalf("CycleScreen wrap = %d, want 0", got)
	}

	m.SetScreens([]Screen{{Bounds: tiling.Rect{Width: 800, Height: 600}}})
	if _, ok := m.CycleScreen(true); ok {
		t.Fatalf("single screen should not cycle")
	}
}
