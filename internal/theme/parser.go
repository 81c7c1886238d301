package theme

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
)

// Parse reads a theme file. Each line is "Key: #RRGGBB" or "Key: #RRGGBBAA"
// where Key names a Theme colour. "Name: x" sets the name and "Base: dark"
// restarts from a builtin; both are usually placed first. Lines without a
// colon and unknown keys are ignored.
func Parse(r io.Reader) (*Theme, error) {
	t := Default()
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		switch k {
		case "Name":
			t.Name = v
		case "Base":
			base, ok := Builtin(v)
			if !ok {
				return nil, fmt.Errorf("line %d: unknown base theme %q", n, v)
			}
			if t.Name != Default().Name {
				base.Name = t.Name
			}
			*t = *base
		default:
			dst, ok := t.colors()[k]
			if !ok {
				continue
			}
			c, err := parseHex(v)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", n, k, err)
			}
			*dst = c
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}
	return t, nil
}

// colors maps each settable key to its field.
func (t *Theme) colors() map[string]*color.RGBA {
	return map[string]*color.RGBA{
		"CheckerLight":     &t.CheckerLight,
		"CheckerDark":      &t.CheckerDark,
		"BarBackground":    &t.BarBackground,
		"BarText":          &t.BarText,
		"Foreground":       &t.Foreground,
		"Highlight":        &t.Highlight,
		"Error":            &t.Error,
		"Dim":              &t.Dim,
		"StatusBackground": &t.StatusBackground,
		"StatusBorder":     &t.StatusBorder,
	}
}

func parseHex(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return color.RGBA{}, fmt.Errorf("invalid colour %q, want #RRGGBB or #RRGGBBAA", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
