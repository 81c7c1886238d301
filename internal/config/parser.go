package config

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")))
			if currentSection == "shortcuts" && cfg.Shortcuts == nil {
				cfg.Shortcuts = []Shortcut{}
			}
			continue
		}

		// Key = Value or Key: Value. The first separator wins so that
		// shortcut descriptions may contain either.
		idx := strings.IndexAny(line, "=:")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		switch currentSection {
		case "":
			if err := setRootField(cfg, key, value); err != nil {
				return nil, fmt.Errorf("line %d: error in root section: %w", lineNo, err)
			}
		case "notify":
			if err := setNotifyField(&cfg.Notify, key, value); err != nil {
				return nil, fmt.Errorf("line %d: error in section [notify]: %w", lineNo, err)
			}
		case "shortcuts":
			s, err := parseShortcut(key, value)
			if err != nil {
				return nil, fmt.Errorf("line %d: error in section [shortcuts]: %w", lineNo, err)
			}
			cfg.Shortcuts = append(cfg.Shortcuts, s)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "save_dir":
		cfg.SaveDir = value
	case "default_name":
		cfg.DefaultName = value
	case "log_level":
		cfg.LogLevel = value
	case "theme":
		cfg.Theme = value
	case "display":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for key %s: %w", key, err)
		}
		cfg.Display = n
	case "timer":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid timer seconds %q", value)
		}
		cfg.Timer = n
	case "shadow":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for key %s: %w", key, err)
		}
		cfg.Shadow = b
	case "pen_color":
		col, err := parseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		cfg.PenColor = col
	case "pen_width":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid pen width %q", value)
		}
		cfg.PenWidth = n
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "capture":
		n.Capture = b
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}

// parseShortcut reads "Combo, on|off[, description]".
func parseShortcut(action, value string) (Shortcut, error) {
	if action == "" {
		return Shortcut{}, fmt.Errorf("missing action name")
	}
	parts := strings.SplitN(value, ",", 3)
	s := Shortcut{Action: action, Combo: strings.TrimSpace(parts[0]), Enabled: true}
	if s.Combo == "" {
		return Shortcut{}, fmt.Errorf("missing key combination for %s", action)
	}
	if len(parts) > 1 {
		switch strings.ToLower(strings.TrimSpace(parts[1])) {
		case "on", "true", "yes", "enabled":
		case "off", "false", "no", "disabled":
			s.Enabled = false
		default:
			return Shortcut{}, fmt.Errorf("invalid state %q for %s", strings.TrimSpace(parts[1]), action)
		}
	}
	if len(parts) > 2 {
		s.Description = strings.TrimSpace(parts[2])
	}
	return s, nil
}

// parseColor parses a #RRGGBB or #RRGGBBAA colour.
func parseColor(s string) (color.RGBA, error) {
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("color must start with #")
	}
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val), A: 255}, nil
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid hex length")
}
