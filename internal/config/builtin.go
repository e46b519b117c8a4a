package config

import "strconv"

// DefaultPrograms returns the programs the default bindings spawn.
func DefaultPrograms() map[string][]string {
	return map[string][]string{
		"terminal":        {"/usr/bin/urxvt"},
		"launcher":        {"launcher"},
		"locker":          {"my-favorite-things-locker"},
		"volume_up":       {"pamixer", "-i", "5"},
		"volume_down":     {"pamixer", "-d", "5"},
		"volume_mute":     {"pamixer", "-t"},
		"mic_mute":        {"pactl", "set-source-mute", "1", "toggle"},
		"brightness_up":   {"light", "-A", "3"},
		"brightness_down": {"light", "-U", "3"},
	}
}

var (
	modOnly      = []string{"mod"}
	modShift     = []string{"mod", "shift"}
	modCtrl      = []string{"mod", "control"}
	modShiftCtrl = []string{"mod", "shift", "control"}
	modAlt       = []string{"mod", "alt"}
)

func key(mods []string, k, act string, args ...string) KeySpec {
	return KeySpec{Mods: mods, Key: k, Action: act, Args: args}
}

func program(mods []string, k, name string) KeySpec {
	return KeySpec{Mods: mods, Key: k, Program: name}
}

// DefaultBindings returns the built-in key binding table.
//
// Users replace it wholesale by defining bindings in their config file.
func DefaultBindings() []KeySpec {
	b := []KeySpec{
		key(modOnly, "Tab", "focus_next", "next"),
		key(modShift, "Tab", "focus_next", "previous"),
		key(modOnly, "q", "delete_window"),

		key(modShift, "k", "resize_step", "up"),
		key(modShift, "j", "resize_step", "down"),
		key(modShift, "l", "resize_step", "right"),
		key(modShift, "h", "resize_step", "left"),
		key(modShiftCtrl, "k", "resize_step", "up_slow"),
		key(modShiftCtrl, "j", "resize_step", "down_slow"),
		key(modShiftCtrl, "l", "resize_step", "right_slow"),
		key(modShiftCtrl, "h", "resize_step", "left_slow"),

		key(modOnly, "k", "move_step", "up"),
		key(modOnly, "j", "move_step", "down"),
		key(modOnly, "l", "move_step", "right"),
		key(modOnly, "h", "move_step", "left"),
		key(modCtrl, "k", "move_step", "up_slow"),
		key(modCtrl, "j", "move_step", "down_slow"),
		key(modCtrl, "l", "move_step", "right_slow"),
		key(modCtrl, "h", "move_step", "left_slow"),

		key(modOnly, "g", "teleport", "center"),
		key(modShift, "g", "teleport", "center_y"),
		key(modCtrl, "g", "teleport", "center_x"),
		key(modOnly, "y", "teleport", "top_left"),
		key(modOnly, "u", "teleport", "top_right"),
		key(modOnly, "b", "teleport", "bottom_left"),
		key(modOnly, "n", "teleport", "bottom_right"),

		key(modOnly, "Home", "resize_step_aspect", "grow"),
		key(modOnly, "End", "resize_step_aspect", "shrink"),

		key(modOnly, "x", "maximize", "fullscreen"),
		key(modShift, "x", "maximize", "fullscreen_override_offsets"),
		key(modOnly, "m", "maxvert_hor", "vertical"),
		key(modShift, "m", "maxvert_hor", "horizontal"),

		key(modShift, "y", "maxhalf", "vertical_left"),
		key(modShift, "u", "maxhalf", "vertical_right"),
		key(modShift, "b", "maxhalf", "horizontal_bottom"),
		key(modShift, "n", "maxhalf", "horizontal_top"),
		key(modShiftCtrl, "y", "maxhalf", "fold_vertical"),
		key(modShiftCtrl, "b", "maxhalf", "fold_horizontal"),
		key(modShiftCtrl, "u", "maxhalf", "unfold_vertical"),
		key(modShiftCtrl, "n", "maxhalf", "unfold_horizontal"),

		key(modOnly, "comma", "change_screen", "next"),
		key(modOnly, "period", "change_screen", "previous"),
		key(modOnly, "r", "raise_or_lower"),

		key(modOnly, "v", "next_workspace"),
		key(modOnly, "c", "prev_workspace"),
		key(modShift, "v", "send_to_next_workspace"),
		key(modShift, "c", "send_to_prev_workspace"),

		key(modOnly, "i", "hide"),
		key(modOnly, "a", "unkillable"),
		key(modOnly, "t", "always_on_top"),
		key(modOnly, "f", "fix"),

		key(modOnly, "Up", "cursor_move", "up_slow"),
		key(modOnly, "Down", "cursor_move", "down_slow"),
		key(modOnly, "Right", "cursor_move", "right_slow"),
		key(modOnly, "Left", "cursor_move", "left_slow"),
		key(modShift, "Up", "cursor_move", "up"),
		key(modShift, "Down", "cursor_move", "down"),
		key(modShift, "Right", "cursor_move", "right"),
		key(modShift, "Left", "cursor_move", "left"),

		program(modOnly, "Return", "terminal"),
		key(modCtrl, "q", "exit"),
		key(modCtrl, "r", "restart"),
		key(modOnly, "space", "half_and_centered"),

		program(nil, "XF86AudioRaiseVolume", "volume_up"),
		program(nil, "XF86AudioLowerVolume", "volume_down"),
		program(nil, "XF86AudioMute", "volume_mute"),
		program(nil, "XF86AudioMicMute", "mic_mute"),
		program(nil, "XF86MonBrightnessUp", "brightness_up"),
		program(nil, "XF86MonBrightnessDown", "brightness_down"),
		program([]string{"mod", "control", "alt"}, "l", "locker"),
		program(modOnly, "d", "launcher"),
	}
	for ws := 0; ws < DefaultWorkspaceCount; ws++ {
		k := strconv.Itoa(ws + 1)
		b = append(b,
			key(modOnly, k, "change_workspace", strconv.Itoa(ws)),
			key(modShift, k, "send_to_workspace", strconv.Itoa(ws)),
		)
	}
	return b
}

// DefaultButtons returns the built-in pointer button bindings.
func DefaultButtons() []ButtonSpec {
	return []ButtonSpec{
		{Mods: modOnly, Button: 1, Action: "mouse_motion", Args: []string{"move"}},
		{Mods: modOnly, Button: 3, Action: "mouse_motion", Args: []string{"resize"}},
		{Mods: modShift, Button: 1, Action: "change_workspace", Args: []string{"0"}},
		{Mods: modShift, Button: 3, Action: "change_workspace", Args: []string{"1"}},
		{Mods: modAlt, Button: 1, Action: "change_screen", Args: []string{"next"}},
		{Mods: modAlt, Button: 3, Action: "change_screen", Args: []string{"previous"}},
	}
}
