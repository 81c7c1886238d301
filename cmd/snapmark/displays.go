package main

import (
	"context"
	"flag"
	"fmt"
)

type displaysCmd struct {
	*root
	fs *flag.FlagSet
}

func (d *displaysCmd) Program() string { return d.subcommand("displays") }

func (d *displaysCmd) FlagSet() *flag.FlagSet { return d.fs }

func parseDisplaysCmd(args []string, r *root) (*displaysCmd, error) {
	fs := flag.NewFlagSet("displays", flag.ContinueOnError)
	d := &displaysCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *displaysCmd) Run(context.Context) error {
	displays, err := displaysFn()
	if err != nil {
		return fmt.Errorf("list displays: %w", err)
	}
	for _, disp := range displays {
		fmt.Fprintln(stdout, disp)
	}
	return nil
}
