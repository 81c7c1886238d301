package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/example/snapmark/internal/appstate"
)

type openCmd struct {
	*root
	fs   *flag.FlagSet
	file string
}

func (o *openCmd) Program() string { return o.subcommand("open") }

func (o *openCmd) FlagSet() *flag.FlagSet { return o.fs }

func parseOpenCmd(args []string, r *root) (*openCmd, error) {
	fs := flag.NewFlagSet("open", flag.ContinueOnError)
	o := &openCmd{root: r, fs: fs}
	fs.Usage = usageFunc(o)
	fs.StringVar(&o.file, "file", "", "image to open")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if o.file == "" && fs.NArg() == 1 {
		o.file = fs.Arg(0)
	}
	if o.file == "" {
		return nil, &UsageError{of: o}
	}
	return o, nil
}

func (o *openCmd) Run(ctx context.Context) error {
	img, err := loadImage(o.file)
	if err != nil {
		return fmt.Errorf("open %s: %w", o.file, err)
	}
	p, err := o.provider("")
	if err != nil {
		return err
	}
	c, err := o.controller(p, appstate.WithImage(img))
	if err != nil {
		return err
	}
	return appstate.NewWindow(c).Run(ctx)
}

// loadImage decodes path into a zero-origin RGBA image.
func loadImage(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)
	return out, nil
}
