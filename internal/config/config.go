// Package config reads and writes the snapmark RC file.
package config

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/adrg/xdg"
)

// Notify holds notification settings.
type Notify struct {
	Capture bool
	Save    bool
	Copy    bool
}

// Shortcut is one line of the [shortcuts] section. Action and Combo are
// kept as text so that the config layer does not depend on the key tables.
type Shortcut struct {
	Action      string
	Combo       string
	Enabled     bool
	Description string
}

// Config holds the application configuration.
type Config struct {
	SaveDir     string
	DefaultName string
	Display     int
	Shadow      bool
	LogLevel    string
	Theme       string
	Timer       int
	PenColor    color.RGBA
	PenWidth    int
	Notify      Notify
	// Shortcuts is nil when the file has no [shortcuts] section, meaning
	// the built-in table applies.
	Shortcuts []Shortcut
}

// DefaultPenColor is the annotation colour used when none is configured.
var DefaultPenColor = color.RGBA{R: 255, A: 255}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		SaveDir:  xdg.UserDirs.Pictures,
		LogLevel: "info",
		PenColor: DefaultPenColor,
		PenWidth: 4,
		Notify: Notify{
			Capture: false,
			Save:    false,
			Copy:    false,
		},
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.DefaultName != "" {
		fmt.Fprintf(&sb, "default_name = %s\n", c.DefaultName)
	}
	fmt.Fprintf(&sb, "display = %d\n", c.Display)
	fmt.Fprintf(&sb, "shadow = %v\n", c.Shadow)
	if c.LogLevel != "" {
		fmt.Fprintf(&sb, "log_level = %s\n", c.LogLevel)
	}
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	fmt.Fprintf(&sb, "timer = %d\n", c.Timer)
	fmt.Fprintf(&sb, "pen_color = %s\n", toHex(c.PenColor))
	fmt.Fprintf(&sb, "pen_width = %d\n", c.PenWidth)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)

	if c.Shortcuts != nil {
		sb.WriteString("\n[shortcuts]\n")
		for _, s := range c.Shortcuts {
			state := "off"
			if s.Enabled {
				state = "on"
			}
			fmt.Fprintf(&sb, "%s = %s, %s", s.Action, s.Combo, state)
			if s.Description != "" {
				fmt.Fprintf(&sb, ", %s", s.Description)
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func toHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
