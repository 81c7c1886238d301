// Package render rasterises annotation shapes and the small overlays the
// viewer window needs. It draws into *image.RGBA and never keeps state
// between calls other than cached font faces.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// stamp paints a square brush of the given thickness centred on (x, y).
func stamp(img *image.RGBA, x, y, thick int, col color.Color) {
	if thick <= 1 {
		if image.Pt(x, y).In(img.Bounds()) {
			img.Set(x, y, col)
		}
		return
	}
	r := thick / 2
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if p := image.Pt(x+dx, y+dy); p.In(img.Bounds()) {
				img.Set(p.X, p.Y, col)
			}
		}
	}
}

// line walks from p0 to p1 with Bresenham's algorithm and calls plot for
// every pixel on the way, passing the step index.
func line(p0, p1 image.Point, plot func(i, x, y int)) {
	x0, y0, x1, y1 := p0.X, p0.Y, p1.X, p1.Y
	dx := int(math.Abs(float64(x1 - x0)))
	dy := int(math.Abs(float64(y1 - y0)))
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for i := 0; ; i++ {
		plot(i, x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Line draws a straight segment.
func Line(img *image.RGBA, p0, p1 image.Point, col color.Color, thick int) {
	line(p0, p1, func(_, x, y int) { stamp(img, x, y, thick, col) })
}

// Polyline draws connected segments through pts.
func Polyline(img *image.RGBA, pts []image.Point, col color.Color, thick int) {
	for i := 1; i < len(pts); i++ {
		Line(img, pts[i-1], pts[i], col, thick)
	}
}

// Arrow draws a segment from p0 to p1 with a head at p1.
func Arrow(img *image.RGBA, p0, p1 image.Point, col color.Color, thick int) {
	Line(img, p0, p1, col, thick)
	angle := math.Atan2(float64(p1.Y-p0.Y), float64(p1.X-p0.X))
	size := float64(6 + thick*2)
	for _, a := range []float64{angle + math.Pi/6, angle - math.Pi/6} {
		tip := image.Pt(p1.X-int(math.Cos(a)*size), p1.Y-int(math.Sin(a)*size))
		Line(img, p1, tip, col, thick)
	}
}

// Rect outlines r.
func Rect(img *image.RGBA, r image.Rectangle, col color.Color, thick int) {
	r = r.Canon()
	tl, br := r.Min, r.Max.Sub(image.Pt(1, 1))
	tr, bl := image.Pt(br.X, tl.Y), image.Pt(tl.X, br.Y)
	Polyline(img, []image.Point{tl, tr, br, bl, tl}, col, thick)
}

// Circle outlines a circle of radius r around c using the midpoint
// algorithm, once per ring of the stroke thickness.
func Circle(img *image.RGBA, c image.Point, r int, col color.Color, thick int) {
	if thick < 1 {
		thick = 1
	}
	for ring := r - thick/2; ring < r-thick/2+thick; ring++ {
		if ring >= 0 {
			circleRing(img, c, ring, col)
		}
	}
}

func circleRing(img *image.RGBA, c image.Point, r int, col color.Color) {
	x, y, err := r, 0, 1-r
	for x >= y {
		for _, p := range [8][2]int{{x, y}, {y, x}, {-y, x}, {-x, y}, {-x, -y}, {-y, -x}, {y, -x}, {x, -y}} {
			stamp(img, c.X+p[0], c.Y+p[1], 1, col)
		}
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2 * (y - x + 1)
		}
	}
}

// DashedRect outlines r with alternating dashes of c1 and c2, as used for
// selection and crop marquees.
func DashedRect(img *image.RGBA, r image.Rectangle, dash, thick int, c1, c2 color.Color) {
	if dash < 1 {
		dash = 1
	}
	r = r.Canon()
	corners := []image.Point{r.Min, {r.Max.X, r.Min.Y}, r.Max, {r.Min.X, r.Max.Y}, r.Min}
	for i := 1; i < len(corners); i++ {
		line(corners[i-1], corners[i], func(step, x, y int) {
			col := c1
			if (step/dash)%2 == 1 {
				col = c2
			}
			stamp(img, x, y, thick, col)
		})
	}
}

// Checkerboard fills rect with squares of the two colours.
func Checkerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	rect = rect.Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}

// Crop returns a copy of rect from img, rebased to the origin. Parts of
// rect outside img are transparent.
func Crop(img *image.RGBA, rect image.Rectangle) *image.RGBA {
	if rect.Empty() {
		return img
	}
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	if src := rect.Intersect(img.Bounds()); !src.Empty() {
		draw.Draw(out, src.Sub(rect.Min), img, src.Min, draw.Src)
	}
	return out
}

// Clone returns a copy of img.
func Clone(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}
