package config

import "fmt"

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig layers raw over DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.MoveStepSlow != nil {
		cfg.MoveStepSlow = *raw.MoveStepSlow
	}
	if raw.MoveStepFast != nil {
		cfg.MoveStepFast = *raw.MoveStepFast
	}
	if raw.CursorStepSlow != nil {
		cfg.CursorStepSlow = *raw.CursorStepSlow
	}
	if raw.CursorStepFast != nil {
		cfg.CursorStepFast = *raw.CursorStepFast
	}
	if raw.ResizeByLine != nil {
		cfg.ResizeByLine = *raw.ResizeByLine
	}
	if raw.AspectRatio != nil {
		cfg.AspectRatio = *raw.AspectRatio
	}
	if raw.OuterMargins != nil {
		cfg.OuterMargins = Margins{
			Top:    derefInt(raw.OuterMargins.Top, cfg.OuterMargins.Top),
			Bottom: derefInt(raw.OuterMargins.Bottom, cfg.OuterMargins.Bottom),
			Left:   derefInt(raw.OuterMargins.Left, cfg.OuterMargins.Left),
			Right:  derefInt(raw.OuterMargins.Right, cfg.OuterMargins.Right),
		}
	}
	if raw.BorderWidths != nil {
		cfg.BorderWidths = BorderWidths{
			Outer:  derefInt(raw.BorderWidths.Outer, cfg.BorderWidths.Outer),
			Full:   derefInt(raw.BorderWidths.Full, cfg.BorderWidths.Full),
			Magnet: derefInt(raw.BorderWidths.Magnet, cfg.BorderWidths.Magnet),
			Resize: derefInt(raw.BorderWidths.Resize, cfg.BorderWidths.Resize),
		}
	}
	if raw.WorkspaceCount != nil {
		cfg.WorkspaceCount = *raw.WorkspaceCount
	}
	if raw.CursorPosition != nil {
		cfg.CursorPosition = *raw.CursorPosition
	}
	if raw.DragQueueLimit != nil {
		cfg.DragQueueLimit = *raw.DragQueueLimit
	}
	if raw.IgnoreClasses != nil {
		cfg.IgnoreClasses = raw.IgnoreClasses
	}
	for name, argv := range raw.Programs {
		if argv == nil {
			delete(cfg.Programs, name)
			continue
		}
		cfg.Programs[name] = argv
	}
	if raw.Bindings != nil {
		cfg.Bindings = raw.Bindings
	}
	if raw.Buttons != nil {
		cfg.Buttons = raw.Buttons
	}

	return cfg, nil
}

func derefInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
