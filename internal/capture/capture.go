// Package capture grabs screen pixels for the viewer. Providers return
// zero-origin RGBA images.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"strconv"
	"strings"
)

// Provider captures either a whole display or a rectangle of it.
// Region coordinates are relative to the display the provider targets.
type Provider interface {
	Fullscreen(ctx context.Context) (*image.RGBA, error)
	Region(ctx context.Context, rect image.Rectangle) (*image.RGBA, error)
}

var (
	errNoDisplays  = errors.New("no displays available")
	errEmptyRegion = errors.New("region is empty")
)

// Display describes one active display in global screen coordinates.
type Display struct {
	Index   int
	Rect    image.Rectangle
	Primary bool
}

func (d Display) String() string {
	s := fmt.Sprintf("%d: %dx%d+%d+%d", d.Index, d.Rect.Dx(), d.Rect.Dy(), d.Rect.Min.X, d.Rect.Min.Y)
	if d.Primary {
		s += " (primary)"
	}
	return s
}

// FindDisplay resolves a selector such as "", "primary", "1" or "#1"
// against displays and returns its index.
func FindDisplay(displays []Display, selector string) (int, error) {
	if len(displays) == 0 {
		return 0, errNoDisplays
	}
	sel := strings.ToLower(strings.TrimSpace(selector))
	switch sel {
	case "", "primary":
		for _, d := range displays {
			if d.Primary {
				return d.Index, nil
			}
		}
		return displays[0].Index, nil
	case "all":
		return AllDisplays, nil
	}
	idx, err := strconv.Atoi(strings.TrimPrefix(sel, "#"))
	if err != nil {
		return 0, fmt.Errorf("invalid display %q", selector)
	}
	if idx < 0 || idx >= len(displays) {
		return 0, fmt.Errorf("display index %d out of range", idx)
	}
	return idx, nil
}

// cropToRect copies rect out of src into a zero-origin image.
func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}

// rebase shifts img so its bounds start at the origin.
func rebase(img *image.RGBA) *image.RGBA {
	if img.Bounds().Min == (image.Point{}) {
		return img
	}
	out, _ := cropToRect(img, img.Bounds())
	return out
}
