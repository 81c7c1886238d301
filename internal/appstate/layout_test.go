package appstate

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/snapmark/internal/action"
)

func TestLayoutNeverUpscales(t *testing.T) {
	l := layoutFor(image.Rect(0, 0, 100, 50), image.Pt(800, 600))
	assert.Equal(t, 1.0, l.Transform.Scale)
	assert.Equal(t, image.Pt(100, 50), l.Canvas.Size())
	assert.True(t, l.Canvas.In(l.Window))
	assert.Greater(t, l.Canvas.Min.Y, l.Header.Max.Y)
}

func TestLayoutFitsLargeImages(t *testing.T) {
	l := layoutFor(image.Rect(0, 0, 1600, 800), image.Pt(816, 600))
	assert.InDelta(t, 0.5, l.Transform.Scale, 1e-9)
	assert.Equal(t, image.Pt(800, 400), l.Canvas.Size())

	p := l.Pointer(l.Canvas.Min.Add(image.Pt(100, 50)), true)
	assert.Equal(t, image.Pt(200, 100), p.Pos)
	assert.True(t, p.Inside)
	assert.True(t, p.Pressed)

	outside := l.Pointer(image.Pt(0, 0), false)
	assert.False(t, outside.Inside)
}

func TestLayoutWithoutImage(t *testing.T) {
	l := layoutFor(image.Rectangle{}, image.Pt(400, 300))
	assert.True(t, l.Canvas.Empty())
	assert.False(t, l.Pointer(image.Pt(200, 150), true).Inside)
}

func TestPaintEveryMode(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	dst := image.NewRGBA(image.Rect(0, 0, 320, 240))

	paint := func() {
		t.Helper()
		require.NotPanics(t, func() { h.c.Paint(dst) }, "mode %s", h.c.Mode())
	}

	paint()
	require.NoError(t, h.c.Perform(ctx, action.SelectArea))
	h.tick(t, Frame{Pointer: Pointer{Pos: image.Pt(2, 2), Pressed: true, Inside: true}})
	h.tick(t, Frame{Pointer: Pointer{Pos: image.Pt(20, 20), Pressed: true, Inside: true}})
	paint()
	h.tick(t, Frame{})
	require.Equal(t, ModeViewing, h.c.Mode())
	paint()
	require.NoError(t, h.c.Perform(ctx, action.Modify))
	h.tick(t, Frame{Typed: []rune{'7'}})
	h.drag(t, image.Pt(1, 1), image.Pt(10, 10))
	paint()
	require.NoError(t, h.c.Perform(ctx, action.Settings))
	paint()
	require.NoError(t, h.c.Perform(ctx, action.Settings))
	require.NoError(t, h.c.Perform(ctx, action.HomePage))
	require.NoError(t, h.c.Perform(ctx, action.ManageTimer))
	paint()
	require.NoError(t, h.c.Perform(ctx, action.StartTimer))
	paint()
}

func TestPaintDrawsViewedImage(t *testing.T) {
	img := filled(40, 30, white)
	h := newHarness(WithImage(img))
	dst := image.NewRGBA(image.Rect(0, 0, 320, 240))

	h.c.Paint(dst)

	l := h.c.Layout(dst.Bounds().Size())
	c := l.Canvas.Min.Add(image.Pt(20, 15))
	assert.Equal(t, white, dst.RGBAAt(c.X, c.Y))
}

func TestFooterHints(t *testing.T) {
	h := newHarness()
	assert.Contains(t, h.c.footerText(), "Ctrl+N capture")
	assert.Empty(t, h.c.hint(action.StartTimer, "start"))
}
