package config

import (
	"fmt"

	"github.com/1broseidon/floatwm/internal/action"
	"github.com/1broseidon/floatwm/internal/hotkeys"
)

// KeyTable resolves the key bindings into a lookup table, in file order.
func (c *Config) KeyTable() (*hotkeys.Table, error) {
	out := make([]hotkeys.Binding, 0, len(c.Bindings))
	for i, spec := range c.Bindings {
		path := fmt.Sprintf("bindings[%d]", i)
		mods, err := hotkeys.ParseModifiers(spec.Mods)
		if err != nil {
			return nil, &ValidationError{Path: path + ".mods", Err: err}
		}
		sym, err := hotkeys.ParseKeysym(spec.Key)
		if err != nil {
			return nil, &ValidationError{Path: path + ".key", Err: err}
		}
		a, err := c.keyAction(spec)
		if err != nil {
			return nil, &ValidationError{Path: path, Err: err}
		}
		if a.Kind.PointerOnly() {
			return nil, &ValidationError{Path: path + ".action", Err: fmt.Errorf("%s can only be bound to a button", a.Kind)}
		}
		out = append(out, hotkeys.Binding{Mods: mods, Code: sym, Action: a})
	}
	return hotkeys.NewTable(out), nil
}

// ButtonTable resolves the pointer button bindings into a lookup table.
func (c *Config) ButtonTable() (*hotkeys.Table, error) {
	out := make([]hotkeys.Binding, 0, len(c.Buttons))
	for i, spec := range c.Buttons {
		path := fmt.Sprintf("buttons[%d]", i)
		mods, err := hotkeys.ParseModifiers(spec.Mods)
		if err != nil {
			return nil, &ValidationError{Path: path + ".mods", Err: err}
		}
		if spec.Button < 1 || spec.Button > 5 {
			return nil, &ValidationError{Path: path + ".button", Err: fmt.Errorf("button must be between 1 and 5")}
		}
		a, err := action.Parse(spec.Action, spec.Args)
		if err != nil {
			return nil, &ValidationError{Path: path, Err: err}
		}
		out = append(out, hotkeys.Binding{Mods: mods, Code: uint32(spec.Button), Action: a})
	}
	return hotkeys.NewTable(out), nil
}

func (c *Config) keyAction(spec KeySpec) (action.Action, error) {
	if spec.Program == "" {
		return action.Parse(spec.Action, spec.Args)
	}
	if spec.Action != "" && spec.Action != string(action.Spawn) {
		return action.Action{}, fmt.Errorf("program %q can only be used with action spawn", spec.Program)
	}
	argv, ok := c.Programs[spec.Program]
	if !ok {
		return action.Action{}, fmt.Errorf("unknown program %q", spec.Program)
	}
	return action.Parse(string(action.Spawn), append(append([]string(nil), argv...), spec.Args...))
}
