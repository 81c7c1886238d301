package capture

import (
	"context"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// AllDisplays selects the union of every active display.
const AllDisplays = -1

var (
	numDisplaysFn   = screenshot.NumActiveDisplays
	displayBoundsFn = screenshot.GetDisplayBounds
	captureRectFn   = screenshot.CaptureRect
)

// Displays lists the active displays. The first one is reported as primary.
func Displays() ([]Display, error) {
	n := numDisplaysFn()
	if n <= 0 {
		return nil, errNoDisplays
	}
	out := make([]Display, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Display{Index: i, Rect: displayBoundsFn(i), Primary: i == 0})
	}
	return out, nil
}

// Screen captures through the native screen APIs.
type Screen struct {
	// Display is an index from Displays or AllDisplays.
	Display int
}

func (s Screen) bounds() (image.Rectangle, error) {
	displays, err := Displays()
	if err != nil {
		return image.Rectangle{}, err
	}
	if s.Display == AllDisplays {
		var r image.Rectangle
		for _, d := range displays {
			r = r.Union(d.Rect)
		}
		return r, nil
	}
	if s.Display < 0 || s.Display >= len(displays) {
		return image.Rectangle{}, fmt.Errorf("display index %d out of range", s.Display)
	}
	return displays[s.Display].Rect, nil
}

// Fullscreen captures the whole display.
func (s Screen) Fullscreen(ctx context.Context) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := s.bounds()
	if err != nil {
		return nil, err
	}
	return s.grab(r)
}

// Region captures rect, given relative to the display origin and clipped
// to it.
func (s Screen) Region(ctx context.Context, rect image.Rectangle) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rect = rect.Canon()
	if rect.Empty() {
		return nil, errEmptyRegion
	}
	r, err := s.bounds()
	if err != nil {
		return nil, err
	}
	abs := rect.Add(r.Min).Intersect(r)
	if abs.Empty() {
		return nil, fmt.Errorf("region %v outside display %v", rect, r)
	}
	return s.grab(abs)
}

func (s Screen) grab(r image.Rectangle) (*image.RGBA, error) {
	img, err := captureRectFn(r)
	if err != nil {
		return nil, fmt.Errorf("unable to screenshot bounds %v: %w", r, err)
	}
	return rebase(img), nil
}
