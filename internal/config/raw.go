package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawMargins struct {
	Top    *int `yaml:"top"`
	Bottom *int `yaml:"bottom"`
	Left   *int `yaml:"left"`
	Right  *int `yaml:"right"`
}

type RawBorderWidths struct {
	Outer  *int `yaml:"outer"`
	Full   *int `yaml:"full"`
	Magnet *int `yaml:"magnet"`
	Resize *int `yaml:"resize"`
}

// RawConfig is one file's view of the configuration. Unset keys stay nil so
// files can be layered over each other and over the defaults.
type RawConfig struct {
	Include        IncludeList         `yaml:"include"`
	Display        *string             `yaml:"display"`
	LogLevel       *string             `yaml:"log_level"`
	MoveStepSlow   *int                `yaml:"move_step_slow"`
	MoveStepFast   *int                `yaml:"move_step_fast"`
	CursorStepSlow *int                `yaml:"cursor_step_slow"`
	CursorStepFast *int                `yaml:"cursor_step_fast"`
	ResizeByLine   *bool               `yaml:"resize_by_line"`
	AspectRatio    *float64            `yaml:"aspect_ratio"`
	OuterMargins   *RawMargins         `yaml:"outer_margins"`
	BorderWidths   *RawBorderWidths    `yaml:"border_widths"`
	WorkspaceCount *int                `yaml:"workspace_count"`
	CursorPosition *string             `yaml:"cursor_position"`
	DragQueueLimit *int                `yaml:"drag_queue_limit"`
	IgnoreClasses  []string            `yaml:"ignore_classes"`
	Programs       map[string][]string `yaml:"programs"`
	Bindings       []KeySpec           `yaml:"bindings"`
	Buttons        []ButtonSpec        `yaml:"buttons"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.MoveStepSlow != nil {
		out.MoveStepSlow = overlay.MoveStepSlow
	}
	if overlay.MoveStepFast != nil {
		out.MoveStepFast = overlay.MoveStepFast
	}
	if overlay.CursorStepSlow != nil {
		out.CursorStepSlow = overlay.CursorStepSlow
	}
	if overlay.CursorStepFast != nil {
		out.CursorStepFast = overlay.CursorStepFast
	}
	if overlay.ResizeByLine != nil {
		out.ResizeByLine = overlay.ResizeByLine
	}
	if overlay.AspectRatio != nil {
		out.AspectRatio = overlay.AspectRatio
	}
	if overlay.OuterMargins != nil {
		base := RawMargins{}
		if out.OuterMargins != nil {
			base = *out.OuterMargins
		}
		merged := mergeRawMargins(base, *overlay.OuterMargins)
		out.OuterMargins = &merged
	}
	if overlay.BorderWidths != nil {
		base := RawBorderWidths{}
		if out.BorderWidths != nil {
			base = *out.BorderWidths
		}
		merged := mergeRawBorderWidths(base, *overlay.BorderWidths)
		out.BorderWidths = &merged
	}
	if overlay.WorkspaceCount != nil {
		out.WorkspaceCount = overlay.WorkspaceCount
	}
	if overlay.CursorPosition != nil {
		out.CursorPosition = overlay.CursorPosition
	}
	if overlay.DragQueueLimit != nil {
		out.DragQueueLimit = overlay.DragQueueLimit
	}
	if overlay.IgnoreClasses != nil {
		out.IgnoreClasses = overlay.IgnoreClasses
	}
	if overlay.Programs != nil {
		if out.Programs == nil {
			out.Programs = make(map[string][]string, len(overlay.Programs))
		} else {
			programs := make(map[string][]string, len(out.Programs)+len(overlay.Programs))
			for name, argv := range out.Programs {
				programs[name] = argv
			}
			out.Programs = programs
		}
		for name, argv := range overlay.Programs {
			out.Programs[name] = argv
		}
	}
	// Binding lists replace rather than append: a later file owns the table.
	if overlay.Bindings != nil {
		out.Bindings = overlay.Bindings
	}
	if overlay.Buttons != nil {
		out.Buttons = overlay.Buttons
	}

	return out
}

func mergeRawMargins(base RawMargins, overlay RawMargins) RawMargins {
	out := base
	if overlay.Top != nil {
		out.Top = overlay.Top
	}
	if overlay.Bottom != nil {
		out.Bottom = overlay.Bottom
	}
	if overlay.Left != nil {
		out.Left = overlay.Left
	}
	if overlay.Right != nil {
		out.Right = overlay.Right
	}
	return out
}

func mergeRawBorderWidths(base RawBorderWidths, overlay RawBorderWidths) RawBorderWidths {
	out := base
	if overlay.Outer != nil {
		out.Outer = overlay.Outer
	}
	if overlay.Full != nil {
		out.Full = overlay.Full
	}
	if overlay.Magnet != nil {
		out.Magnet = overlay.Magnet
	}
	if overlay.Resize != nil {
		out.Resize = overlay.Resize
	}
	return out
}
