package main

import (
	"context"
	"flag"

	"github.com/example/snapmark/internal/appstate"
)

type windowCmd struct {
	*root
	fs      *flag.FlagSet
	display string
	area    bool
}

func (w *windowCmd) Program() string { return w.subcommand("window") }

func (w *windowCmd) FlagSet() *flag.FlagSet { return w.fs }

func parseWindowCmd(args []string, r *root) (*windowCmd, error) {
	fs := flag.NewFlagSet("window", flag.ContinueOnError)
	w := &windowCmd{root: r, fs: fs}
	fs.Usage = usageFunc(w)
	fs.StringVar(&w.display, "display", "", "display to capture: an index, #index, primary or all")
	fs.BoolVar(&w.area, "area", false, "start with area selection instead of the full screen")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: w}
	}
	return w, nil
}

func (w *windowCmd) Run(ctx context.Context) error {
	p, err := w.provider(w.display)
	if err != nil {
		return err
	}
	sel := appstate.SelectionFullscreen
	if w.area {
		sel = appstate.SelectionArea
	}
	c, err := w.controller(p, appstate.WithSelection(sel))
	if err != nil {
		return err
	}
	return appstate.NewWindow(c).Run(ctx)
}
