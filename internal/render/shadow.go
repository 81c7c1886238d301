package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow added to exported images.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions returns the shadow used when exporting with shadows
// enabled.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{Radius: 24, Offset: image.Pt(16, 16), Opacity: 0.55}
}

// Shadow returns img composited over a blurred drop shadow on a canvas
// grown to fit both. The result has a zero origin. When there is nothing to
// draw img is returned as is.
func Shadow(img *image.RGBA, opts ShadowOptions) *image.RGBA {
	if img == nil || img.Bounds().Empty() || opts.Opacity <= 0 {
		return img
	}
	if opts.Opacity > 1 {
		opts.Opacity = 1
	}
	if opts.Radius < 0 {
		opts.Radius = 0
	}

	src := img.Bounds()
	padded := src.Inset(-opts.Radius)
	shadow := padded.Add(opts.Offset)
	canvas := src.Union(shadow)

	mask := alphaMask(img, padded)
	boxBlur(mask, opts.Radius)

	dst := image.NewRGBA(canvas.Sub(canvas.Min))
	tint := image.NewUniform(color.RGBA{A: uint8(opts.Opacity*255 + 0.5)})
	draw.DrawMask(dst, shadow.Sub(canvas.Min), tint, image.Point{}, mask, image.Point{}, draw.Over)
	draw.Draw(dst, src.Sub(canvas.Min), img, src.Min, draw.Over)
	return dst
}

// alphaMask copies the alpha channel of img into a zero-origin mask the
// size of bounds.
func alphaMask(img *image.RGBA, bounds image.Rectangle) *image.Alpha {
	mask := image.NewAlpha(bounds.Sub(bounds.Min))
	src := img.Bounds()
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			if a := img.RGBAAt(x, y).A; a != 0 {
				mask.SetAlpha(x-bounds.Min.X, y-bounds.Min.Y, color.Alpha{A: a})
			}
		}
	}
	return mask
}

// boxBlur blurs m in place with a separable box filter of the given radius.
func boxBlur(m *image.Alpha, radius int) {
	if radius <= 0 {
		return
	}
	w, h := m.Rect.Dx(), m.Rect.Dy()
	row := make([]uint8, w)
	for y := 0; y < h; y++ {
		off := y * m.Stride
		blurLine(m.Pix[off:off+w], row, 1, radius)
	}
	col := make([]uint8, h)
	for x := 0; x < w; x++ {
		blurLine(m.Pix[x:], col, m.Stride, radius)
	}
}

// blurLine averages n = len(scratch) samples of pix spaced stride apart
// over a window of 2*radius+1, clamped at the ends.
func blurLine(pix, scratch []uint8, stride, radius int) {
	n := len(scratch)
	prefix := make([]int, n+1)
	for i := 0; i < n; i++ {
		prefix[i+1] = prefix[i] + int(pix[i*stride])
	}
	for i := 0; i < n; i++ {
		lo, hi := i-radius, i+radius
		if lo < 0 {
			lo = 0
		}
		if hi > n-1 {
			hi = n - 1
		}
		scratch[i] = uint8((prefix[hi+1] - prefix[lo]) / (hi - lo + 1))
	}
	for i := 0; i < n; i++ {
		pix[i*stride] = scratch[i]
	}
}
