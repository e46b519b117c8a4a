package engine

import (
	"github.com/1broseidon/floatwm/internal/config"
	"github.com/1broseidon/floatwm/internal/tiling"
)

// Settings are the numeric configuration values the engine consumes.
type Settings struct {
	MoveStepSlow   int
	MoveStepFast   int
	CursorStepSlow int
	CursorStepFast int
	ResizeByLine   bool
	AspectRatio    float64
	Margins        tiling.Margins
	MinSize        int
	MagnetDistance int
	WorkspaceCount int
	CursorPosition tiling.CursorPosition
	DragQueueLimit int
}

// SettingsFromConfig extracts engine settings from a validated config.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		MoveStepSlow:   cfg.MoveStepSlow,
		MoveStepFast:   cfg.MoveStepFast,
		CursorStepSlow: cfg.CursorStepSlow,
		CursorStepFast: cfg.CursorStepFast,
		ResizeByLine:   cfg.ResizeByLine,
		AspectRatio:    cfg.AspectRatio,
		Margins:        cfg.Margins(),
		MinSize:        cfg.MinClientSize(),
		MagnetDistance: cfg.BorderWidths.Magnet,
		WorkspaceCount: cfg.WorkspaceCount,
		CursorPosition: tiling.CursorPosition(cfg.CursorPosition),
		DragQueueLimit: cfg.DragQueueLimit,
	}
}

// DefaultSettings returns the settings of the default configuration.
func DefaultSettings() Settings {
	return SettingsFromConfig(config.DefaultConfig())
}

func (s Settings) moveStep(slow bool) int {
	if slow {
		return s.MoveStepSlow
	}
	return s.MoveStepFast
}

func (s Settings) cursorStep(slow bool) int {
	if slow {
		return s.CursorStepSlow
	}
	return s.CursorStepFast
}
