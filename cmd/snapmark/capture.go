package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"

	"github.com/example/snapmark/internal/appstate"
	"github.com/example/snapmark/internal/export"
	"github.com/example/snapmark/internal/render"
	"github.com/example/snapmark/internal/timer"
)

var (
	newClock           = clock.New
	stdout   io.Writer = os.Stdout
)

// pollInterval is how often the delay countdown is polled.
const pollInterval = 100 * time.Millisecond

type captureCmd struct {
	*root
	fs      *flag.FlagSet
	display string
	area    string
	rect    image.Rectangle
	delay   int
	output  string
	copy    bool
	window  bool
	shadow  bool
}

func (c *captureCmd) Program() string { return c.subcommand("capture") }

func (c *captureCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseCaptureCmd(args []string, r *root) (*captureCmd, error) {
	fs := flag.NewFlagSet("capture", flag.ContinueOnError)
	c := &captureCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.display, "display", "", "display to capture: an index, #index, primary or all")
	fs.StringVar(&c.area, "area", "", "capture only x,y,w,h of the display")
	fs.IntVar(&c.delay, "delay", r.config.Timer, "seconds to wait before capturing")
	fs.StringVar(&c.output, "output", "", "write the PNG here, - for stdout; defaults to a generated name in the save directory")
	fs.BoolVar(&c.copy, "copy", false, "copy the capture to the clipboard")
	fs.BoolVar(&c.window, "window", false, "open the capture in the viewer instead of saving it")
	fs.BoolVar(&c.shadow, "shadow", r.config.Shadow, "add a drop shadow to the saved or copied image")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	if c.area != "" {
		rect, err := parseArea(c.area)
		if err != nil {
			return nil, err
		}
		c.rect = rect
	}
	if c.delay < 0 || c.delay > timer.MaxSeconds {
		return nil, fmt.Errorf("delay must be between 0 and %d seconds", timer.MaxSeconds)
	}
	if c.window && (c.output != "" || c.copy) {
		return nil, fmt.Errorf("-window cannot be combined with -output or -copy")
	}
	return c, nil
}

func (c *captureCmd) Run(ctx context.Context) error {
	p, err := c.provider(c.display)
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	if err := c.wait(ctx); err != nil {
		return err
	}
	var img *image.RGBA
	detail := "fullscreen"
	if c.rect.Empty() {
		img, err = p.Fullscreen(ctx)
	} else {
		img, err = p.Region(ctx, c.rect)
		detail = fmt.Sprintf("area %dx%d", c.rect.Dx(), c.rect.Dy())
	}
	if err != nil {
		return fmt.Errorf("capture %s: %w", detail, err)
	}
	c.notifier.Capture(detail, img)

	if c.window {
		ctl, err := c.controller(p, appstate.WithImage(img))
		if err != nil {
			return err
		}
		return appstate.NewWindow(ctl).Run(ctx)
	}

	out := img
	if c.shadow {
		out = render.Shadow(img, render.DefaultShadowOptions())
	}
	if c.copy {
		if err := clipboardFn().WriteImage(out); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		c.notifier.Copy(fmt.Sprintf("%dx%d image", out.Bounds().Dx(), out.Bounds().Dy()))
		if c.output == "" {
			return nil
		}
	}
	return c.write(out)
}

// wait counts the delay down on the timer, polling it like the window does.
func (c *captureCmd) wait(ctx context.Context) error {
	if c.delay <= 0 {
		return nil
	}
	clk := newClock()
	t := timer.New(timer.WithClock(clk), timer.WithSeconds(c.delay))
	t.Start()
	tick := clk.Ticker(pollInterval)
	defer tick.Stop()
	logrus.WithField("seconds", c.delay).Info("waiting before capture")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			if t.Poll() {
				return nil
			}
		}
	}
}

func (c *captureCmd) write(img *image.RGBA) error {
	if c.output == "-" {
		if err := png.Encode(stdout, img); err != nil {
			return fmt.Errorf("write png to stdout: %w", err)
		}
		return nil
	}
	path := c.output
	if path == "" {
		picked, ok, err := export.DirPicker{Dir: c.saveDir()}.PickSavePath(export.NewNamer(c.config.DefaultName).Next())
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no save directory configured")
		}
		path = picked
	}
	if err := export.Save(path, img); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "saved", path)
	c.notifier.Save(path)
	return nil
}
