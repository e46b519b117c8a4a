package hotkeys

import (
	"fmt"
	"strconv"
	"strings"
)

// These constants come from /usr/include/X11/keysymdef.h and XF86keysym.h.
const (
	xkSpace             = 0x0020
	xkComma             = 0x002c
	xkMinus             = 0x002d
	xkPeriod            = 0x002e
	xkSlash             = 0x002f
	xkSemicolon         = 0x003b
	xkBackspace         = 0xff08
	xkTab               = 0xff09
	xkReturn            = 0xff0d
	xkEscape            = 0xff1b
	xkHome              = 0xff50
	xkLeft              = 0xff51
	xkUp                = 0xff52
	xkRight             = 0xff53
	xkDown              = 0xff54
	xkPageUp            = 0xff55
	xkPageDown          = 0xff56
	xkEnd               = 0xff57
	xkF1                = 0xffbe
	xkDelete            = 0xffff
	xkMonBrightnessUp   = 0x1008ff02
	xkMonBrightnessDown = 0x1008ff03
	xkAudioLowerVolume  = 0x1008ff11
	xkAudioMute         = 0x1008ff12
	xkAudioRaiseVolume  = 0x1008ff13
	xkAudioMicMute      = 0x1008ffb2
)

// KeysymEscape aborts a drag.
const KeysymEscape = xkEscape

var namedKeysyms = map[string]uint32{
	"space":                 xkSpace,
	"comma":                 xkComma,
	"minus":                 xkMinus,
	"period":                xkPeriod,
	"slash":                 xkSlash,
	"semicolon":             xkSemicolon,
	"BackSpace":             xkBackspace,
	"Tab":                   xkTab,
	"Return":                xkReturn,
	"Escape":                xkEscape,
	"Home":                  xkHome,
	"Left":                  xkLeft,
	"Up":                    xkUp,
	"Right":                 xkRight,
	"Down":                  xkDown,
	"Page_Up":               xkPageUp,
	"Page_Down":             xkPageDown,
	"End":                   xkEnd,
	"Delete":                xkDelete,
	"XF86MonBrightnessUp":   xkMonBrightnessUp,
	"XF86MonBrightnessDown": xkMonBrightnessDown,
	"XF86AudioLowerVolume":  xkAudioLowerVolume,
	"XF86AudioMute":         xkAudioMute,
	"XF86AudioRaiseVolume":  xkAudioRaiseVolume,
	"XF86AudioMicMute":      xkAudioMicMute,
}

// ParseKeysym resolves a key name (a letter, a digit, F1-F12, a name from
// keysymdef.h such as "Tab" or "XF86AudioMute") or a hexadecimal keysym
// such as "0x1008ff13".
func ParseKeysym(name string) (uint32, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("empty key name")
	}
	if strings.HasPrefix(name, "0x") || strings.HasPrefix(name, "0X") {
		v, err := strconv.ParseUint(name[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid keysym %q: %w", name, err)
		}
		return uint32(v), nil
	}
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'A' && c <= 'Z':
			return uint32(c - 'A' + 'a'), nil
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			return uint32(c), nil
		}
	}
	if v, ok := namedKeysyms[name]; ok {
		return v, nil
	}
	for n, v := range namedKeysyms {
		if strings.EqualFold(n, name) {
			return v, nil
		}
	}
	if (name[0] == 'F' || name[0] == 'f') && len(name) <= 3 {
		if n, err := strconv.Atoi(name[1:]); err == nil && n >= 1 && n <= 12 {
			return uint32(xkF1 + n - 1), nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", name)
}

// KeysymName returns the name ParseKeysym accepts for keysym.
func KeysymName(keysym uint32) string {
	switch {
	case keysym >= 'a' && keysym <= 'z', keysym >= '0' && keysym <= '9':
		return string(rune(keysym))
	case keysym >= xkF1 && keysym < xkF1+12:
		return fmt.Sprintf("F%d", keysym-xkF1+1)
	}
	for n, v := range namedKeysyms {
		if v == keysym {
			return n
		}
	}
	return fmt.Sprintf("0x%x", keysym)
}
