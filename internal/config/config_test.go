package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/floatwm/internal/hotkeys"
)

func writeConfig(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_ValidAndDerivedValues(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	w, h := cfg.UsableShrink()
	if w != 36 || h != 59 {
		t.Fatalf("expected usable shrink 36x59, got %dx%d", w, h)
	}
	if got := cfg.MinClientSize(); got != 16 {
		t.Fatalf("expected min client size 16, got %d", got)
	}
	if cfg.AspectRatio != 1.03 {
		t.Fatalf("expected aspect ratio 1.03, got %v", cfg.AspectRatio)
	}
}

func TestMinClientSize_NeverBelowOne(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BorderWidths.Full = 0
	if got := cfg.MinClientSize(); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.WorkspaceCount != DefaultWorkspaceCount {
		t.Fatalf("expected %d workspaces, got %d", DefaultWorkspaceCount, res.Config.WorkspaceCount)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files, got %v", res.Files)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.MoveStepFast != 40 || res.Config.CursorPosition != "bottom_right" {
		t.Fatalf("expected defaults, got %+v", res.Config)
	}
}

func TestLoadFromPath_PartialMarginsKeepDefaults(t *testing.T) {
	data := strings.Join([]string{
		"outer_margins:",
		"  bottom: 0",
		"border_widths:",
		"  full: 2",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Margins{Top: 18, Bottom: 0, Left: 18, Right: 18}
	if res.Config.OuterMargins != want {
		t.Fatalf("expected %+v, got %+v", want, res.Config.OuterMargins)
	}
	if res.Config.MinClientSize() != 4 {
		t.Fatalf("expected min client size 4, got %d", res.Config.MinClientSize())
	}
	if res.Config.BorderWidths.Magnet != 5 {
		t.Fatalf("expected magnet default kept, got %d", res.Config.BorderWidths.Magnet)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "unknown_key: 1\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown_key") && !strings.Contains(err.Error(), "field") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()

	configD := filepath.Join(dir, "config.d")
	if err := os.MkdirAll(configD, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeConfig(t, configD, "10-base.yaml", "move_step_fast: 50\nmove_step_slow: 5\n")
	writeConfig(t, configD, "20-override.yaml", "move_step_fast: 60\n")

	main := strings.Join([]string{
		"include:",
		"  - config.d",
		"move_step_fast: 70",
		"",
	}, "\n")
	path := writeConfig(t, dir, "config.yaml", main)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.MoveStepFast != 70 {
		t.Fatalf("expected move_step_fast 70, got %d", res.Config.MoveStepFast)
	}
	if res.Config.MoveStepSlow != 5 {
		t.Fatalf("expected move_step_slow 5 from include, got %d", res.Config.MoveStepSlow)
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 loaded files, got %v", res.Files)
	}
}

func TestLoadFromPath_IncludeMissingPathHasContext(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "include:\n  - missing.yaml\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "include") || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected include error, got %v", err)
	}
	if !strings.Contains(err.Error(), path+":") {
		t.Fatalf("expected error to include file:line:col prefix, got %v", err)
	}
}

func TestLoadFromPath_IncludeCycleDetection(t *testing.T) {
	dir := t.TempDir()
	a := writeConfig(t, dir, "a.yaml", "include: b.yaml\n")
	writeConfig(t, dir, "b.yaml", "include: a.yaml\n")

	_, err := LoadFromPath(a)
	if err == nil {
		t.Fatalf("expected cycle error")
	}
	if !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestLoadFromPath_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		path string
	}{
		{"aspect ratio not above one", "aspect_ratio: 1.0\n", "aspect_ratio"},
		{"no workspaces", "workspace_count: 0\n", "workspace_count"},
		{"zero step", "move_step_slow: 0\n", "move_step_slow"},
		{"negative margin", "outer_margins:\n  left: -1\n", "outer_margins"},
		{"bad cursor position", "cursor_position: nowhere\n", "cursor_position"},
		{"bad log level", "log_level: loud\n", "log_level"},
		{"empty program", "programs:\n  terminal: []\n", "programs.terminal"},
		{"unknown action", "bindings:\n  - key: q\n    action: explode\n", "bindings[0]"},
		{"unknown key", "bindings:\n  - key: NoSuchKey\n    action: exit\n", "bindings[0].key"},
		{"unknown modifier", "bindings:\n  - mods: [hyper]\n    key: q\n    action: exit\n", "bindings[0].mods"},
		{"unknown program", "bindings:\n  - key: q\n    program: nope\n", "bindings[0]"},
		{"bad button", "buttons:\n  - button: 9\n    action: exit\n", "buttons[0].button"},
		{"drag on a key", "bindings:\n  - key: m\n    action: mouse_motion\n    args: [move]\n", "bindings[0].action"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "config.yaml", tt.data)
			_, err := LoadFromPath(path)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q", tt.path, verr.Path)
			}
			if verr.Source.Kind != SourceFile || verr.Source.Line == 0 {
				t.Fatalf("expected file source context, got %+v", verr.Source)
			}
			if !strings.Contains(err.Error(), path+":") {
				t.Fatalf("expected error to include file:line:col prefix, got %v", err)
			}
		})
	}
}

func TestKeyTable_DefaultBindings(t *testing.T) {
	cfg := DefaultConfig()
	table, err := cfg.KeyTable()
	if err != nil {
		t.Fatalf("key table: %v", err)
	}
	if table.Len() != len(DefaultBindings()) {
		t.Fatalf("expected %d bindings, got %d", len(DefaultBindings()), table.Len())
	}

	tests := []struct {
		name string
		mods hotkeys.Modifier
		key  string
		want string
	}{
		{"focus next", hotkeys.ModMod, "Tab", "focus_next next"},
		{"focus previous", hotkeys.ModMod | hotkeys.ModShift, "Tab", "focus_next previous"},
		{"delete", hotkeys.ModMod, "q", "delete_window"},
		{"exit", hotkeys.ModMod | hotkeys.ModControl, "q", "exit"},
		{"slow resize", hotkeys.ModMod | hotkeys.ModShift | hotkeys.ModControl, "k", "resize_step up_slow"},
		{"move", hotkeys.ModMod, "h", "move_step left"},
		{"center y", hotkeys.ModMod | hotkeys.ModShift, "g", "teleport center_y"},
		{"aspect grow", hotkeys.ModMod, "Home", "resize_step_aspect grow"},
		{"override", hotkeys.ModMod | hotkeys.ModShift, "x", "maximize fullscreen_override_offsets"},
		{"fold", hotkeys.ModMod | hotkeys.ModShift | hotkeys.ModControl, "y", "maxhalf fold_vertical"},
		{"half top", hotkeys.ModMod | hotkeys.ModShift, "n", "maxhalf horizontal_top"},
		{"cursor slow", hotkeys.ModMod, "Up", "cursor_move up_slow"},
		{"terminal", hotkeys.ModMod, "Return", "spawn /usr/bin/urxvt"},
		{"mute", 0, "XF86AudioMute", "spawn pamixer -t"},
		{"locker", hotkeys.ModMod | hotkeys.ModControl | hotkeys.ModAlt, "l", "spawn my-favorite-things-locker"},
		{"workspace 1", hotkeys.ModMod, "1", "change_workspace 0"},
		{"send to workspace 6", hotkeys.ModMod | hotkeys.ModShift, "6", "send_to_workspace 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sym, err := hotkeys.ParseKeysym(tt.key)
			if err != nil {
				t.Fatalf("keysym: %v", err)
			}
			a, ok := table.Lookup(tt.mods, sym)
			if !ok {
				t.Fatalf("no binding for %s+%s", tt.mods, tt.key)
			}
			if a.String() != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, a.String())
			}
		})
	}
}

func TestButtonTable_DefaultButtons(t *testing.T) {
	table, err := DefaultConfig().ButtonTable()
	if err != nil {
		t.Fatalf("button table: %v", err)
	}
	tests := []struct {
		mods   hotkeys.Modifier
		button uint32
		want   string
	}{
		{hotkeys.ModMod, 1, "mouse_motion move"},
		{hotkeys.ModMod, 3, "mouse_motion resize"},
		{hotkeys.ModMod | hotkeys.ModShift, 3, "change_workspace 1"},
		{hotkeys.ModMod | hotkeys.ModAlt, 1, "change_screen next"},
	}
	for _, tt := range tests {
		a, ok := table.Lookup(tt.mods, tt.button)
		if !ok || a.String() != tt.want {
			t.Fatalf("button %d with %s: expected %q, got %q (found=%v)", tt.button, tt.mods, tt.want, a.String(), ok)
		}
	}
}

func TestLoadFromPath_UserBindingsReplaceDefaults(t *testing.T) {
	data := strings.Join([]string{
		"programs:",
		"  terminal: [kitty]",
		"  editor: [code, --new-window]",
		"bindings:",
		"  - mods: [super]",
		"    key: Return",
		"    program: terminal",
		"  - mods: [mod, shift]",
		"    key: e",
		"    program: editor",
		"    args: [/tmp]",
		"  - mods: [ctrl, alt]",
		"    key: 0xff51",
		"    action: move_step",
		"    args: [left_slow]",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	table, err := res.Config.KeyTable()
	if err != nil {
		t.Fatalf("key table: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("expected 3 bindings, got %d", table.Len())
	}
	if a, ok := table.Lookup(hotkeys.ModMod, 0xff0d); !ok || a.String() != "spawn kitty" {
		t.Fatalf("expected spawn kitty, got %q", a.String())
	}
	if a, ok := table.Lookup(hotkeys.ModMod|hotkeys.ModShift, 'e'); !ok || a.String() != "spawn code --new-window /tmp" {
		t.Fatalf("expected editor spawn, got %q", a.String())
	}
	if a, ok := table.Lookup(hotkeys.ModControl|hotkeys.ModAlt, 0xff51); !ok || a.String() != "move_step left_slow" {
		t.Fatalf("expected move_step left_slow, got %q", a.String())
	}
	if _, ok := res.Config.Programs["launcher"]; !ok {
		t.Fatalf("expected default programs to be kept alongside user programs")
	}
	if len(res.Config.Buttons) != len(DefaultButtons()) {
		t.Fatalf("expected default buttons to be kept")
	}
}

func TestValidationWarnings_WorkspaceOutOfRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorkspaceCount = 4
	warnings := cfg.validationWarnings()
	// Default keys bind workspaces 5 and 6 (change and send each), and
	// buttons stay within range.
	if len(warnings) != 4 {
		t.Fatalf("expected 4 warnings, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "workspace 4") {
		t.Fatalf("unexpected warning %q", warnings[0])
	}
}

func TestExplain_SourcesAndValues(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "outer_margins:\n  bottom: 30\n")
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	val, src, err := Explain(res, "outer_margins.bottom")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != 30 {
		t.Fatalf("expected 30, got %#v", val)
	}
	if src.Kind != SourceFile || src.Line != 2 {
		t.Fatalf("expected file source on line 2, got %+v", src)
	}

	val, src, err = Explain(res, "outer_margins.top")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != 18 || src.Kind != SourceDefault {
		t.Fatalf("expected default 18, got %#v from %+v", val, src)
	}

	val, src, err = Explain(res, "bindings[2].action")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != "delete_window" || src.Kind != SourceBuiltin {
		t.Fatalf("expected builtin delete_window, got %#v from %+v", val, src)
	}

	if _, _, err := Explain(res, "no_such_key"); err == nil {
		t.Fatalf("expected error for unknown path")
	}
	if _, _, err := Explain(res, "bindings[999]"); err == nil {
		t.Fatalf("expected error for out of range index")
	}
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for name, want := range tests {
		cfg := DefaultConfig()
		cfg.LogLevel = name
		if got := cfg.SlogLevel(); got != want {
			t.Fatalf("%s: expected %v, got %v", name, want, got)
		}
	}
}

func TestIgnored(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.Ignored("XClock") {
		t.Fatalf("expected xclock to be ignored")
	}
	if cfg.Ignored("URxvt") {
		t.Fatalf("expected URxvt to be managed")
	}
}
