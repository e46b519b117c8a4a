package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/1broseidon/floatwm/internal/action"
	"github.com/1broseidon/floatwm/internal/tiling"
	"gopkg.in/yaml.v3"
)

// Margins is the space kept free at each edge of a screen.
type Margins struct {
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
}

// BorderWidths are the widths of the decoration borders and the magnet
// distance. Full is the width used to derive the minimum client size.
type BorderWidths struct {
	Outer  int `yaml:"outer"`
	Full   int `yaml:"full"`
	Magnet int `yaml:"magnet"`
	Resize int `yaml:"resize"`
}

// KeySpec binds a key chord to an action. Program names an entry of
// Config.Programs and turns the binding into a spawn of that program.
type KeySpec struct {
	Mods    []string `yaml:"mods,omitempty,flow"`
	Key     string   `yaml:"key"`
	Action  string   `yaml:"action,omitempty"`
	Args    []string `yaml:"args,omitempty,flow"`
	Program string   `yaml:"program,omitempty"`
}

// ButtonSpec binds a pointer button chord to an action.
type ButtonSpec struct {
	Mods   []string `yaml:"mods,omitempty,flow"`
	Button int      `yaml:"button"`
	Action string   `yaml:"action"`
	Args   []string `yaml:"args,omitempty,flow"`
}

const (
	DefaultWorkspaceCount = 6
	DefaultDragQueueLimit = 32
	DefaultAspectRatio    = 1.03
)

// Config holds the application configuration.
type Config struct {
	Display        string              `yaml:"display,omitempty"`
	LogLevel       string              `yaml:"log_level"`
	MoveStepSlow   int                 `yaml:"move_step_slow"`
	MoveStepFast   int                 `yaml:"move_step_fast"`
	CursorStepSlow int                 `yaml:"cursor_step_slow"`
	CursorStepFast int                 `yaml:"cursor_step_fast"`
	ResizeByLine   bool                `yaml:"resize_by_line"`
	AspectRatio    float64             `yaml:"aspect_ratio"`
	OuterMargins   Margins             `yaml:"outer_margins"`
	BorderWidths   BorderWidths        `yaml:"border_widths"`
	WorkspaceCount int                 `yaml:"workspace_count"`
	CursorPosition string              `yaml:"cursor_position"`
	DragQueueLimit int                 `yaml:"drag_queue_limit"`
	IgnoreClasses  []string            `yaml:"ignore_classes,flow"`
	Programs       map[string][]string `yaml:"programs"`
	Bindings       []KeySpec           `yaml:"bindings"`
	Buttons        []ButtonSpec        `yaml:"buttons"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		MoveStepSlow:   20,
		MoveStepFast:   40,
		CursorStepSlow: 15,
		CursorStepFast: 400,
		ResizeByLine:   true,
		AspectRatio:    DefaultAspectRatio,
		OuterMargins:   Margins{Top: 18, Bottom: 41, Left: 18, Right: 18},
		BorderWidths:   BorderWidths{Outer: 4, Full: 8, Magnet: 5, Resize: 4},
		WorkspaceCount: DefaultWorkspaceCount,
		CursorPosition: string(tiling.CursorBottomRight),
		DragQueueLimit: DefaultDragQueueLimit,
		IgnoreClasses:  []string{"bar", "xclock"},
		Programs:       DefaultPrograms(),
		Bindings:       DefaultBindings(),
		Buttons:        DefaultButtons(),
	}
}

// UsableShrink is how much the outer margins take from a screen's width
// and height.
func (c *Config) UsableShrink() (width, height int) {
	return c.OuterMargins.Left + c.OuterMargins.Right, c.OuterMargins.Top + c.OuterMargins.Bottom
}

// MinClientSize is the smallest width or height a client may have.
func (c *Config) MinClientSize() int {
	return max(1, 2*c.BorderWidths.Full)
}

// Margins converts the outer margins for the geometry code.
func (c *Config) Margins() tiling.Margins {
	m := c.OuterMargins
	return tiling.Margins{Top: m.Top, Bottom: m.Bottom, Left: m.Left, Right: m.Right}
}

// SlogLevel maps log_level to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Ignored reports whether windows of the given WM_CLASS are left unmanaged.
func (c *Config) Ignored(class string) bool {
	for _, name := range c.IgnoreClasses {
		if strings.EqualFold(name, class) {
			return true
		}
	}
	return false
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	steps := []struct {
		path  string
		value int
	}{
		{"move_step_slow", c.MoveStepSlow},
		{"move_step_fast", c.MoveStepFast},
		{"cursor_step_slow", c.CursorStepSlow},
		{"cursor_step_fast", c.CursorStepFast},
	}
	for _, s := range steps {
		if s.value <= 0 {
			return &ValidationError{Path: s.path, Err: fmt.Errorf("%s must be > 0", s.path)}
		}
	}
	if c.AspectRatio <= 1.0 {
		return &ValidationError{Path: "aspect_ratio", Err: fmt.Errorf("aspect_ratio must be > 1.0")}
	}
	m := c.OuterMargins
	if m.Top < 0 || m.Bottom < 0 || m.Left < 0 || m.Right < 0 {
		return &ValidationError{Path: "outer_margins", Err: fmt.Errorf("outer_margins values must be >= 0")}
	}
	b := c.BorderWidths
	if b.Outer < 0 || b.Full < 0 || b.Magnet < 0 || b.Resize < 0 {
		return &ValidationError{Path: "border_widths", Err: fmt.Errorf("border_widths values must be >= 0")}
	}
	if c.WorkspaceCount < 1 {
		return &ValidationError{Path: "workspace_count", Err: fmt.Errorf("workspace_count must be >= 1")}
	}
	if c.DragQueueLimit < 0 {
		return &ValidationError{Path: "drag_queue_limit", Err: fmt.Errorf("drag_queue_limit must be >= 0")}
	}
	switch tiling.CursorPosition(c.CursorPosition) {
	case tiling.CursorTopLeft, tiling.CursorTopRight, tiling.CursorBottomLeft, tiling.CursorBottomRight, tiling.CursorMiddle:
	default:
		return &ValidationError{Path: "cursor_position", Err: fmt.Errorf("cursor_position must be one of: top_left, top_right, bottom_left, bottom_right, middle")}
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	for name, argv := range c.Programs {
		if strings.TrimSpace(name) == "" {
			return &ValidationError{Path: "programs", Err: fmt.Errorf("programs contains an empty name")}
		}
		if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
			return &ValidationError{Path: "programs." + name, Err: fmt.Errorf("program command must not be empty")}
		}
	}
	if _, err := c.KeyTable(); err != nil {
		return err
	}
	if _, err := c.ButtonTable(); err != nil {
		return err
	}
	for _, w := range c.validationWarnings() {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	return nil
}

// validationWarnings reports bindings that can never take effect.
func (c *Config) validationWarnings() []string {
	var warnings []string
	check := func(path string, a action.Action) {
		if a.Kind != action.ChangeWorkspace && a.Kind != action.SendToWorkspace {
			return
		}
		if ws, ok := a.Arg.(action.Workspace); ok && int(ws) >= c.WorkspaceCount {
			warnings = append(warnings, fmt.Sprintf("%s: workspace %d is out of range (workspace_count %d); the binding does nothing", path, ws, c.WorkspaceCount))
		}
	}
	for i, spec := range c.Bindings {
		if a, err := c.keyAction(spec); err == nil {
			check(fmt.Sprintf("bindings[%d]", i), a)
		}
	}
	for i, spec := range c.Buttons {
		if a, err := action.Parse(spec.Action, spec.Args); err == nil {
			check(fmt.Sprintf("buttons[%d]", i), a)
		}
	}
	return warnings
}
