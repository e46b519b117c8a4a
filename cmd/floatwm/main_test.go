package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/floatwm/internal/config"
	"github.com/1broseidon/floatwm/internal/ipc"
	"github.com/1broseidon/floatwm/internal/tiling"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { configPath = "" })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"daemon"},
		{"status"},
		{"clients"},
		{"monitors"},
		{"dispatch"},
		{"reload"},
		{"bindings"},
		{"config", "validate"},
		{"config", "print"},
		{"config", "explain"},
		{"mcp", "serve"},
	} {
		cmd, _, err := rootCmd.Find(path)
		if err != nil || cmd.Name() != path[len(path)-1] {
			t.Fatalf("command %v not found: %v", path, err)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	good := writeConfig(t, "workspace_count: 3\n")
	out, err := execute(t, "--config", good, "config", "validate")
	if err != nil || !strings.Contains(out, "config: ok") {
		t.Fatalf("validate good config: out=%q err=%v", out, err)
	}

	bad := writeConfig(t, "aspect_ratio: 0.5\n")
	if _, err := execute(t, "--config", bad, "config", "validate"); err == nil || !strings.Contains(err.Error(), "aspect_ratio") {
		t.Fatalf("expected aspect_ratio error, got %v", err)
	}
}

func TestConfigExplain(t *testing.T) {
	path := writeConfig(t, "workspace_count: 3\n")
	out, err := execute(t, "--config", path, "config", "explain", "workspace_count")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if !strings.Contains(out, "source: file:") || !strings.Contains(out, "value:\n3\n") {
		t.Fatalf("unexpected explain output %q", out)
	}
}

func TestBindingsJSON(t *testing.T) {
	out, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "bindings")
	if err != nil {
		t.Fatalf("bindings: %v", err)
	}
	var rows []bindingRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("bindings output is not JSON: %v\n%s", err, out)
	}
	if len(rows) < len(config.DefaultButtons()) {
		t.Fatalf("got %d rows", len(rows))
	}
	found := false
	for _, r := range rows {
		if r.Kind == "button" && r.Chord == "MOD+button1" && r.Action == "mouse_motion move" {
			found = true
		}
	}
	if !found {
		t.Fatalf("move drag binding missing from %+v", rows)
	}
}

func TestStatus_NoDaemon(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	if _, err := execute(t, "status"); err == nil || !strings.Contains(err.Error(), "is the daemon running") {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func TestParseWindowID(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"", 0, false},
		{"42", 42, false},
		{"0x1e00003", 0x1e00003, false},
		{"window", 0, true},
		{"0x1ffffffff", 0, true},
	}
	for _, tt := range tests {
		got, err := parseWindowID(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseWindowID(%q) = %d, %v", tt.in, got, err)
		}
	}
}

func TestFormatSource(t *testing.T) {
	tests := []struct {
		src  config.Source
		want string
	}{
		{config.Source{Kind: config.SourceFile, File: "/a.yaml", Line: 3, Column: 5}, "file:/a.yaml:3:5"},
		{config.Source{Kind: config.SourceFile, File: "/a.yaml"}, "file:/a.yaml"},
		{config.Source{Kind: config.SourceBuiltin, Name: "bindings"}, "builtin:bindings"},
		{config.Source{Kind: config.SourceDefault}, "default"},
	}
	for _, tt := range tests {
		if got := formatSource(tt.src); got != tt.want {
			t.Errorf("formatSource(%+v) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestRenderClients(t *testing.T) {
	out := renderClients([]ipc.ClientInfo{
		{ID: 0x10, Geometry: tiling.Rect{X: 18, Y: 18, Width: 964, Height: 641}, State: "maximized_full", Focused: true, Visible: true},
		{ID: 0x11, Workspace: 1, State: "normal", Hidden: true, Unkillable: true},
	})
	for _, want := range []string{"0x10", "964x641+18+18", "maximized_full", "focused", "hidden,unkillable"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if got := renderClients(nil); !strings.Contains(got, "no managed clients") {
		t.Fatalf("empty output = %q", got)
	}
}

func TestRenderStatus(t *testing.T) {
	out := renderStatus(&ipc.StatusData{ActiveWorkspace: 1, WorkspaceCount: 6, ClientCount: 2, Focused: 0x10, Drag: "dragging", DragClient: 0x10})
	for _, want := range []string{"1 of 6", "0x10", "dragging (0x10)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
