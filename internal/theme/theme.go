// Package theme holds the colours the viewer window paints with.
package theme

import (
	"image/color"
	"sort"
	"strings"
)

// Theme is the window colour scheme.
type Theme struct {
	Name string

	// Canvas backdrop
	CheckerLight color.RGBA
	CheckerDark  color.RGBA

	// Header and footer bars
	BarBackground color.RGBA
	BarText       color.RGBA

	// Text drawn on the canvas: home screen, timer and shortcut lists
	Foreground color.RGBA
	Highlight  color.RGBA
	Error      color.RGBA

	// Dim is drawn over the image behind modal screens
	Dim color.RGBA

	StatusBackground color.RGBA
	StatusBorder     color.RGBA
}

// Default returns the light theme.
func Default() *Theme {
	return &Theme{
		Name:             "light",
		CheckerLight:     color.RGBA{220, 220, 220, 255},
		CheckerDark:      color.RGBA{192, 192, 192, 255},
		BarBackground:    color.RGBA{48, 48, 48, 255},
		BarText:          color.RGBA{235, 235, 235, 255},
		Foreground:       color.RGBA{0, 0, 0, 255},
		Highlight:        color.RGBA{255, 230, 140, 255},
		Error:            color.RGBA{200, 0, 0, 255},
		Dim:              color.RGBA{0, 0, 0, 96},
		StatusBackground: color.RGBA{255, 255, 255, 230},
		StatusBorder:     color.RGBA{0, 0, 0, 255},
	}
}

// Dark returns the dark theme.
func Dark() *Theme {
	return &Theme{
		Name:             "dark",
		CheckerLight:     color.RGBA{60, 60, 60, 255},
		CheckerDark:      color.RGBA{44, 44, 44, 255},
		BarBackground:    color.RGBA{20, 20, 20, 255},
		BarText:          color.RGBA{210, 210, 210, 255},
		Foreground:       color.RGBA{230, 230, 230, 255},
		Highlight:        color.RGBA{90, 80, 30, 255},
		Error:            color.RGBA{255, 110, 110, 255},
		Dim:              color.RGBA{0, 0, 0, 144},
		StatusBackground: color.RGBA{32, 32, 32, 230},
		StatusBorder:     color.RGBA{200, 200, 200, 255},
	}
}

var builtin = map[string]func() *Theme{
	"light":   Default,
	"default": Default,
	"dark":    Dark,
}

// Builtin returns the named built-in theme.
func Builtin(name string) (*Theme, bool) {
	fn, ok := builtin[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// Names lists the built-in theme names.
func Names() []string {
	out := make([]string, 0, len(builtin))
	for n := range builtin {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
