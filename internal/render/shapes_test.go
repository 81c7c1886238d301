package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/snapmark/internal/annotate"
)

var ink = annotate.Style{Width: 1, Color: color.RGBA{R: 255, A: 255}}

func TestComposeLeavesBaseUntouched(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 20, 20))
	out := Compose(base, []annotate.Shape{{Tool: annotate.ToolLine, Points: []image.Point{{0, 0}, {19, 19}}, Style: ink}})
	if base.RGBAAt(10, 10).A != 0 {
		t.Fatal("base image was modified")
	}
	if got := out.RGBAAt(10, 10); got != ink.Color {
		t.Fatalf("expected line pixel, got %+v", got)
	}
}

func TestShapeKinds(t *testing.T) {
	tests := []struct {
		name  string
		shape annotate.Shape
		hit   image.Point
		miss  image.Point
	}{
		{"pen", annotate.Shape{Tool: annotate.ToolPen, Points: []image.Point{{2, 2}, {10, 2}, {10, 10}}}, image.Pt(10, 6), image.Pt(6, 6)},
		{"rect", annotate.Shape{Tool: annotate.ToolRect, Points: []image.Point{{2, 2}, {12, 12}}}, image.Pt(2, 7), image.Pt(7, 7)},
		{"circle", annotate.Shape{Tool: annotate.ToolCircle, Points: []image.Point{{10, 10}, {15, 10}}}, image.Pt(15, 10), image.Pt(10, 10)},
		{"arrow", annotate.Shape{Tool: annotate.ToolArrow, Points: []image.Point{{2, 10}, {18, 10}}}, image.Pt(9, 10), image.Pt(9, 2)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
			tc.shape.Style = ink
			Shape(dst, tc.shape, Identity)
			if dst.RGBAAt(tc.hit.X, tc.hit.Y).A == 0 {
				t.Fatalf("expected ink at %v", tc.hit)
			}
			if dst.RGBAAt(tc.miss.X, tc.miss.Y).A != 0 {
				t.Fatalf("unexpected ink at %v", tc.miss)
			}
		})
	}
}

func TestTextShapeDrawsPixels(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 80, 40))
	Shape(dst, annotate.Shape{Tool: annotate.ToolText, Points: []image.Point{{4, 30}}, Style: ink, Text: "Hi"}, Identity)
	for y := 0; y < 40; y++ {
		for x := 0; x < 80; x++ {
			if dst.RGBAAt(x, y).A != 0 {
				return
			}
		}
	}
	t.Fatal("expected text to be drawn")
}

func TestTransformRoundTrip(t *testing.T) {
	tr := Transform{Offset: image.Pt(48, 24), Scale: 0.5}
	p := image.Pt(100, 60)
	if got := tr.Apply(p); got != image.Pt(98, 54) {
		t.Fatalf("Apply = %v", got)
	}
	if got := tr.Invert(tr.Apply(p)); got != p {
		t.Fatalf("Invert = %v, want %v", got, p)
	}
	if got := (Transform{}).Apply(p); got != p {
		t.Fatalf("zero transform should be identity, got %v", got)
	}
}

func TestCrop(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	img.Set(5, 5, color.RGBA{G: 255, A: 255})
	out := Crop(img, image.Rect(4, 4, 8, 8))
	if !out.Bounds().Eq(image.Rect(0, 0, 4, 4)) {
		t.Fatalf("unexpected bounds %v", out.Bounds())
	}
	if out.RGBAAt(1, 1).G != 255 {
		t.Fatal("expected cropped pixel at (1,1)")
	}
	if Crop(img, image.Rectangle{}) != img {
		t.Fatal("empty crop should return the image")
	}
}

func TestDashedRectAlternates(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}
	DashedRect(dst, image.Rect(0, 0, 19, 19), 4, 1, white, black)
	if dst.RGBAAt(1, 0) != white || dst.RGBAAt(5, 0) != black {
		t.Fatalf("unexpected dash colours %+v %+v", dst.RGBAAt(1, 0), dst.RGBAAt(5, 0))
	}
}
