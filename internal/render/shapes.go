package render

import (
	"image"
	"math"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/snapmark/internal/annotate"
)

// Transform maps image coordinates onto a destination buffer.
type Transform struct {
	Offset image.Point
	Scale  float64
}

// Identity draws shapes at their image coordinates.
var Identity = Transform{Scale: 1}

// Apply maps p.
func (t Transform) Apply(p image.Point) image.Point {
	s := t.scale()
	return image.Pt(t.Offset.X+int(math.Round(float64(p.X)*s)), t.Offset.Y+int(math.Round(float64(p.Y)*s)))
}

// Invert maps a destination point back onto image coordinates.
func (t Transform) Invert(p image.Point) image.Point {
	s := t.scale()
	return image.Pt(int(math.Floor(float64(p.X-t.Offset.X)/s)), int(math.Floor(float64(p.Y-t.Offset.Y)/s)))
}

func (t Transform) width(w int) int {
	out := int(math.Round(float64(w) * t.scale()))
	if out < 1 {
		return 1
	}
	return out
}

func (t Transform) scale() float64 {
	if t.Scale <= 0 {
		return 1
	}
	return t.Scale
}

// Shapes draws every shape onto dst.
func Shapes(dst *image.RGBA, shapes []annotate.Shape, tr Transform) {
	for _, s := range shapes {
		Shape(dst, s, tr)
	}
}

// Shape draws a single shape onto dst.
func Shape(dst *image.RGBA, s annotate.Shape, tr Transform) {
	if len(s.Points) == 0 {
		return
	}
	col := s.Style.Color
	w := tr.width(s.Style.Width)
	pts := make([]image.Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = tr.Apply(p)
	}
	first, last := pts[0], pts[len(pts)-1]
	switch s.Tool {
	case annotate.ToolPen:
		Polyline(dst, pts, col, w)
	case annotate.ToolLine:
		Line(dst, first, last, col, w)
	case annotate.ToolArrow:
		Arrow(dst, first, last, col, w)
	case annotate.ToolRect:
		Rect(dst, image.Rectangle{Min: first, Max: last}, col, w)
	case annotate.ToolCircle:
		d := last.Sub(first)
		Circle(dst, first, int(math.Hypot(float64(d.X), float64(d.Y))), col, w)
	case annotate.ToolText:
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: textFace(tr.scale() * textSize(s.Style.Width))}
		d.Dot = fixed.P(first.X, first.Y)
		d.DrawString(s.Text)
	}
}

// Compose returns a copy of base with shapes drawn on it.
func Compose(base *image.RGBA, shapes []annotate.Shape) *image.RGBA {
	out := Clone(base)
	Shapes(out, shapes, Identity)
	return out
}

// textSize maps a stroke width onto a point size for labels.
func textSize(width int) float64 {
	if width < 1 {
		width = 1
	}
	return float64(12 + 4*width)
}

var (
	faceMu sync.Mutex
	faces  = map[int]font.Face{}
	parsed *opentype.Font
)

// textFace returns a cached Go Regular face of the given size. It falls
// back to basicfont when the embedded font cannot be loaded.
func textFace(size float64) font.Face {
	key := int(math.Round(size))
	if key < 6 {
		key = 6
	}
	faceMu.Lock()
	defer faceMu.Unlock()
	if f, ok := faces[key]; ok {
		return f
	}
	if parsed == nil {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			logrus.WithError(err).Warn("parse font")
			return basicfont.Face7x13
		}
		parsed = f
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{Size: float64(key), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		logrus.WithError(err).Warn("font face")
		return basicfont.Face7x13
	}
	faces[key] = face
	return face
}

// Text draws a single line of UI text with its baseline at pt.
func Text(dst *image.RGBA, pt image.Point, s string, size float64, col image.Image) {
	d := &font.Drawer{Dst: dst, Src: col, Face: textFace(size)}
	d.Dot = fixed.P(pt.X, pt.Y)
	d.DrawString(s)
}

// MeasureText returns the advance width of s at size.
func MeasureText(s string, size float64) int {
	d := &font.Drawer{Face: textFace(size)}
	return d.MeasureString(s).Ceil()
}
