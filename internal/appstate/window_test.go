package appstate

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/snapmark/internal/action"
)

func TestNewWindowFitsImage(t *testing.T) {
	h := newHarness(WithImage(filled(300, 200, white)))
	w := NewWindow(h.c)
	assert.Equal(t, image.Pt(300+2*canvasMargin, 200+headerHeight+footerHeight+2*canvasMargin), w.size)

	w = NewWindow(h.c, WithSize(640, 480), WithTitle("x"))
	assert.Equal(t, image.Pt(640, 480), w.size)
	assert.Equal(t, "x", w.title)
}

func TestQuickClickSpansTwoTicks(t *testing.T) {
	h := newHarness(WithImage(filled(40, 30, white)))
	w := NewWindow(h.c)
	ctx := context.Background()

	w.mouse(mouse.Event{X: 20, Y: 50, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	w.mouse(mouse.Event{X: 20, Y: 50, Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
	require.NoError(t, w.tick(ctx))
	assert.True(t, h.c.pressed)
	require.NoError(t, w.tick(ctx))
	assert.False(t, h.c.pressed)
}

func TestClickDismissesStatus(t *testing.T) {
	h := newHarness(WithImage(filled(40, 30, white)))
	require.NoError(t, h.c.Perform(context.Background(), action.Copy))
	w := NewWindow(h.c)

	w.mouse(mouse.Event{Button: mouse.ButtonLeft, Direction: mouse.DirPress})

	_, ok := h.c.Status()
	assert.False(t, ok)
	assert.False(t, w.pressed)
}

func TestWindowTickFeedsShortcuts(t *testing.T) {
	h := newHarness()
	w := NewWindow(h.c)

	w.kb.Feed(key.Event{Code: key.CodeN, Modifiers: key.ModControl, Direction: key.DirPress})
	require.NoError(t, w.tick(context.Background()))

	assert.Equal(t, ModeViewing, h.c.Mode())
}
