package shortcut

import (
	"fmt"
	"strings"

	"golang.org/x/mobile/event/key"
)

// Modifiers is the set of modifier keys held for a combination.
type Modifiers uint8

const (
	ModAlt Modifiers = 1 << iota
	ModShift
	// ModCommand is Control on Linux and Windows and Command on macOS.
	ModCommand
)

// FromMobile converts modifiers reported by a key.Event. Control and Meta
// both map to ModCommand.
func FromMobile(m key.Modifiers) Modifiers {
	var out Modifiers
	if m&key.ModAlt != 0 {
		out |= ModAlt
	}
	if m&key.ModShift != 0 {
		out |= ModShift
	}
	if m&(key.ModControl|key.ModMeta) != 0 {
		out |= ModCommand
	}
	return out
}

// Combo is a key pressed together with a set of modifiers.
type Combo struct {
	Mods Modifiers
	Key  key.Code
}

// Ctrl is shorthand for a Command combination.
func Ctrl(k key.Code) Combo { return Combo{Mods: ModCommand, Key: k} }

// CtrlShift is shorthand for a Command+Shift combination.
func CtrlShift(k key.Code) Combo { return Combo{Mods: ModCommand | ModShift, Key: k} }

// String renders the combination as "Ctrl+Shift+N".
func (c Combo) String() string {
	var parts []string
	if c.Mods&ModCommand != 0 {
		parts = append(parts, "Ctrl")
	}
	if c.Mods&ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if c.Mods&ModShift != 0 {
		parts = append(parts, "Shift")
	}
	parts = append(parts, KeyName(c.Key))
	return strings.Join(parts, "+")
}

// ParseCombo parses the format produced by String. Modifier names are
// case-insensitive and "cmd", "command", "control", "option" are accepted as
// aliases.
func ParseCombo(s string) (Combo, error) {
	fields := strings.Split(strings.TrimSpace(s), "+")
	if len(fields) == 0 || strings.TrimSpace(fields[0]) == "" {
		return Combo{}, fmt.Errorf("empty key combination")
	}
	var c Combo
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if i == len(fields)-1 {
			k, ok := ParseKey(f)
			if !ok {
				return Combo{}, fmt.Errorf("unknown key %q in %q", f, s)
			}
			c.Key = k
			break
		}
		switch strings.ToLower(f) {
		case "ctrl", "control", "cmd", "command":
			c.Mods |= ModCommand
		case "shift":
			c.Mods |= ModShift
		case "alt", "option":
			c.Mods |= ModAlt
		default:
			return Combo{}, fmt.Errorf("unknown modifier %q in %q", f, s)
		}
	}
	return c, nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Combo) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Combo) UnmarshalText(b []byte) error {
	parsed, err := ParseCombo(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
