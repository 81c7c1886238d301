package appstate

import (
	"image"
	"math"

	"github.com/example/snapmark/internal/render"
)

const (
	headerHeight = 28
	footerHeight = 24
	canvasMargin = 8
)

// Layout places the current image inside the window.
type Layout struct {
	Window image.Rectangle
	Header image.Rectangle
	Footer image.Rectangle
	// Canvas is where the image is drawn, empty when there is none.
	Canvas    image.Rectangle
	Transform render.Transform
	// Source is the bounds of the image being displayed.
	Source image.Rectangle
}

// layoutFor fits src, scaled down but never up, into the window body
// between header and footer, centred.
func layoutFor(src image.Rectangle, win image.Point) Layout {
	l := Layout{
		Window: image.Rectangle{Max: win},
		Header: image.Rect(0, 0, win.X, headerHeight),
		Footer: image.Rect(0, win.Y-footerHeight, win.X, win.Y),
		Source: src,
	}
	body := image.Rect(canvasMargin, headerHeight+canvasMargin, win.X-canvasMargin, win.Y-footerHeight-canvasMargin)
	if src.Empty() || body.Empty() {
		l.Transform = render.Identity
		return l
	}
	scale := math.Min(1, math.Min(float64(body.Dx())/float64(src.Dx()), float64(body.Dy())/float64(src.Dy())))
	w := int(math.Round(float64(src.Dx()) * scale))
	h := int(math.Round(float64(src.Dy()) * scale))
	origin := image.Pt(body.Min.X+(body.Dx()-w)/2, body.Min.Y+(body.Dy()-h)/2)
	l.Canvas = image.Rectangle{Min: origin, Max: origin.Add(image.Pt(w, h))}
	shift := image.Pt(int(math.Round(float64(src.Min.X)*scale)), int(math.Round(float64(src.Min.Y)*scale)))
	l.Transform = render.Transform{Offset: origin.Sub(shift), Scale: scale}
	return l
}

// Pointer converts a window position into image coordinates.
func (l Layout) Pointer(winPos image.Point, pressed bool) Pointer {
	pos := l.Transform.Invert(winPos)
	return Pointer{Pos: pos, Pressed: pressed, Inside: !l.Canvas.Empty() && pos.In(l.Source)}
}

// displayed returns the image the controller currently shows.
func (c *Controller) displayed() *image.RGBA {
	switch c.mode {
	case ModeViewing:
		return c.image
	case ModeSelectingArea:
		return c.area.backdrop
	case ModeSettings:
		if c.prevMode == ModeViewing {
			return c.image
		}
	}
	return nil
}

// Layout returns the placement of the displayed image in a window of the
// given size.
func (c *Controller) Layout(win image.Point) Layout {
	var src image.Rectangle
	if img := c.displayed(); img != nil {
		src = img.Bounds()
	}
	return layoutFor(src, win)
}
