package appstate

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/snapmark/internal/shortcut"
)

// TickInterval is how often the window advances the controller.
const TickInterval = 30 * time.Millisecond

// tickEvent is sent to the window by the ticker goroutine.
type tickEvent struct{}

// Window hosts a Controller in a shiny window.
type Window struct {
	c     *Controller
	kb    *shortcut.Keyboard
	title string
	size  image.Point
	log   *logrus.Entry

	winPos         image.Point
	pressed        bool
	releasePending bool
}

// WindowOption configures a Window.
type WindowOption func(*Window)

// WithTitle sets the window title.
func WithTitle(title string) WindowOption { return func(w *Window) { w.title = title } }

// WithSize sets the initial window size.
func WithSize(width, height int) WindowOption {
	return func(w *Window) { w.size = image.Pt(width, height) }
}

// NewWindow returns a window for c. It is sized to fit the viewed image
// when there is one.
func NewWindow(c *Controller, opts ...WindowOption) *Window {
	w := &Window{
		c:     c,
		kb:    shortcut.NewKeyboard(),
		title: "Snapmark",
		size:  image.Pt(960, 640),
		log:   c.log.WithField("component", "window"),
	}
	if img := c.Image(); img != nil {
		b := img.Bounds()
		w.size = image.Pt(b.Dx()+2*canvasMargin, b.Dy()+headerHeight+footerHeight+2*canvasMargin)
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Run executes the UI loop using shiny's driver and returns once the window
// is closed or ctx is cancelled.
func (w *Window) Run(ctx context.Context) error {
	var err error
	driver.Main(func(s screen.Screen) { err = w.Main(ctx, s) })
	return err
}

// Main runs the event loop on s.
func (w *Window) Main(ctx context.Context, s screen.Screen) error {
	win, err := s.NewWindow(&screen.NewWindowOptions{Width: w.size.X, Height: w.size.Y, Title: w.title})
	if err != nil {
		return fmt.Errorf("new window: %w", err)
	}
	defer win.Release()

	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(TickInterval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				win.Send(tickEvent{})
			case <-ctx.Done():
				win.Send(lifecycle.Event{To: lifecycle.StageDead})
				return
			case <-done:
				return
			}
		}
	}()

	dirty := true
	for {
		switch e := win.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return ctx.Err()
			}
		case size.Event:
			w.size = e.Size()
			dirty = true
		case key.Event:
			w.kb.Feed(e)
			dirty = true
		case mouse.Event:
			w.mouse(e)
			dirty = true
		case tickEvent:
			if err := w.tick(ctx); err != nil {
				w.log.WithError(err).Debug("tick")
			}
			if w.c.Closed() {
				return nil
			}
			if _, ok := w.c.Status(); ok || w.c.Mode() == ModeTimerRunning {
				dirty = true
			}
			if dirty {
				win.Send(paint.Event{})
				dirty = false
			}
		case paint.Event:
			w.paint(s, win)
		case error:
			w.log.WithError(e).Warn("window event")
		}
	}
}

// mouse records the pointer. A press and release arriving within one tick
// are spread over two ticks so clicks are never lost.
func (w *Window) mouse(e mouse.Event) {
	w.winPos = image.Pt(int(e.X), int(e.Y))
	if e.Button != mouse.ButtonLeft {
		return
	}
	switch e.Direction {
	case mouse.DirPress:
		if _, ok := w.c.Status(); ok {
			w.c.DismissStatus()
			return
		}
		w.pressed = true
		w.releasePending = false
	case mouse.DirRelease:
		if w.pressed {
			w.releasePending = true
		}
	}
}

func (w *Window) frame() Frame {
	l := w.c.Layout(w.size)
	return Frame{
		Keys:    w.kb,
		Pointer: l.Pointer(w.winPos, w.pressed),
		Combos:  w.kb.Pressed(),
		Typed:   w.kb.Typed(),
		Special: w.kb.Special(),
	}
}

func (w *Window) tick(ctx context.Context) error {
	f := w.frame()
	err := w.c.Tick(ctx, f)
	w.kb.EndTick()
	if w.releasePending {
		w.pressed = false
		w.releasePending = false
	}
	return err
}

func (w *Window) paint(s screen.Screen, win screen.Window) {
	if w.size.X <= 0 || w.size.Y <= 0 {
		return
	}
	b, err := s.NewBuffer(w.size)
	if err != nil {
		w.log.WithError(err).Warn("new buffer")
		return
	}
	defer b.Release()
	w.c.Paint(b.RGBA())
	win.Upload(image.Point{}, b, b.Bounds())
	win.Publish()
}
