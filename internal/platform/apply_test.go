package platform

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/1broseidon/floatwm/internal/tiling"
)

type recordingBackend struct {
	calls   []string
	failing map[string]bool
}

func (b *recordingBackend) record(call string) error {
	b.calls = append(b.calls, call)
	if b.failing[call] {
		return errors.New("boom")
	}
	return nil
}

func (b *recordingBackend) Displays() ([]Display, error)        { return nil, nil }
func (b *recordingBackend) ListWindows() ([]Window, error)      { return nil, nil }
func (b *recordingBackend) StackingOrder() ([]WindowID, error)  { return nil, nil }
func (b *recordingBackend) MoveResize(id WindowID, r Rect) error { return b.record("moveresize") }
func (b *recordingBackend) Map(id WindowID) error               { return b.record("map") }
func (b *recordingBackend) Unmap(id WindowID) error             { return b.record("unmap") }
func (b *recordingBackend) Raise(id WindowID) error             { return b.record("raise") }
func (b *recordingBackend) Lower(id WindowID) error             { return b.record("lower") }
func (b *recordingBackend) Focus(id WindowID) error             { return b.record("focus") }
func (b *recordingBackend) Close(id WindowID) error             { return b.record("close") }
func (b *recordingBackend) WarpPointer(x, y int, rel bool) error {
	return b.record("warp")
}
func (b *recordingBackend) SetCurrentDesktop(n int) error { return b.record("desktop") }

type recordingLifecycle struct{ exits, restarts int }

func (l *recordingLifecycle) Exit()    { l.exits++ }
func (l *recordingLifecycle) Restart() { l.restarts++ }

func TestApplier_AppliesInOrder(t *testing.T) {
	backend := &recordingBackend{}
	lifecycle := &recordingLifecycle{}
	a := NewApplier(backend, lifecycle, nil)

	var spawned [][]string
	a.SetSpawner(func(argv []string) error {
		spawned = append(spawned, argv)
		return nil
	})

	err := a.Apply([]Directive{
		Geometry(1, tiling.Rect{Width: 10, Height: 10}),
		ForWindow(DirectiveHide, 1),
		ForWindow(DirectiveShow, 2),
		ForWindow(DirectiveRaise, 2),
		ForWindow(DirectiveLower, 3),
		ForWindow(DirectiveFocus, 2),
		ForWindow(DirectiveClose, 3),
		{Kind: DirectiveWarp, X: 5, Y: 5, Relative: true},
		{Kind: DirectiveDesktop, X: 2},
		{Kind: DirectiveSpawn, Argv: []string{"urxvt"}},
		{Kind: DirectiveExit},
		{Kind: DirectiveRestart},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := []string{"moveresize", "unmap", "map", "raise", "lower", "focus", "close", "warp", "desktop"}
	if !reflect.DeepEqual(backend.calls, want) {
		t.Fatalf("calls = %v, want %v", backend.calls, want)
	}
	if len(spawned) != 1 || spawned[0][0] != "urxvt" {
		t.Fatalf("spawned = %v", spawned)
	}
	if lifecycle.exits != 1 || lifecycle.restarts != 1 {
		t.Fatalf("lifecycle = %+v", lifecycle)
	}
}

func TestApplier_ContinuesAfterFailure(t *testing.T) {
	backend := &recordingBackend{failing: map[string]bool{"unmap": true}}
	a := NewApplier(backend, nil, nil)

	err := a.Apply([]Directive{ForWindow(DirectiveHide, 1), ForWindow(DirectiveFocus, 2)})
	if err == nil || !strings.Contains(err.Error(), "hide") {
		t.Fatalf("expected joined hide error, got %v", err)
	}
	if len(backend.calls) != 2 {
		t.Fatalf("expected focus to still be applied, calls = %v", backend.calls)
	}
}

func TestApplier_EmptySpawnRejected(t *testing.T) {
	a := NewApplier(&recordingBackend{}, nil, nil)
	if err := a.Apply([]Directive{{Kind: DirectiveSpawn}}); err == nil {
		t.Fatalf("expected error for empty argv")
	}
}

func TestDirectiveString(t *testing.T) {
	d := Geometry(0x2a, tiling.Rect{X: 18, Y: 18, Width: 200, Height: 100})
	if got := d.String(); got != "geometry 0x2a 200x100+18+18" {
		t.Fatalf("String = %q", got)
	}
}
