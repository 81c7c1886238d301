package appstate

import "image/color"

// PaletteColor is a named drawing colour.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

var palette = []PaletteColor{
	{"Red", color.RGBA{255, 0, 0, 255}},
	{"Black", color.RGBA{0, 0, 0, 255}},
	{"White", color.RGBA{255, 255, 255, 255}},
	{"Lime", color.RGBA{0, 255, 0, 255}},
	{"Blue", color.RGBA{0, 0, 255, 255}},
	{"Yellow", color.RGBA{255, 255, 0, 255}},
	{"Cyan", color.RGBA{0, 255, 255, 255}},
	{"Magenta", color.RGBA{255, 0, 255, 255}},
}

var widths = []int{1, 2, 4, 6, 8, 12}

// Palette returns a copy of the drawing colours.
func Palette() []PaletteColor {
	return append([]PaletteColor(nil), palette...)
}

// nextColor returns the palette entry after col, wrapping around. Colours
// that are not in the palette continue from the first entry.
func nextColor(col color.RGBA) color.RGBA {
	for i, p := range palette {
		if p.Color == col {
			return palette[(i+1)%len(palette)].Color
		}
	}
	return palette[0].Color
}

func colorName(col color.RGBA) string {
	for _, p := range palette {
		if p.Color == col {
			return p.Name
		}
	}
	return "custom"
}

// stepWidth moves w to the neighbouring entry of widths in direction dir.
func stepWidth(w, dir int) int {
	idx := 0
	for i, v := range widths {
		if v <= w {
			idx = i
		}
	}
	if widths[idx] != w && dir < 0 {
		return widths[idx]
	}
	idx += dir
	if idx < 0 {
		idx = 0
	}
	if idx >= len(widths) {
		idx = len(widths) - 1
	}
	return widths[idx]
}
