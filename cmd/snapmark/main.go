package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/example/snapmark/internal/config"
	"github.com/example/snapmark/internal/notify"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run(ctx context.Context) error }

type root struct {
	fs            *flag.FlagSet
	program       string
	loader        *config.Loader
	config        *config.Config
	notifier      *notify.Notifier
	captureAlerts bool
	saveAlerts    bool
	copyAlerts    bool
	logLevel      string
	themeName     string
	configPath    string
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func (r *root) subcommand(name string) string {
	return strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
}

func newRoot() *root {
	r := &root{
		fs:       flag.NewFlagSet("snapmark", flag.ContinueOnError),
		program:  "snapmark",
		notifier: notify.New(notify.LoadPreferences()),
		config:   config.New(),
	}
	r.fs.StringVar(&r.configPath, "config", configPathOverride, "read configuration from this file")
	r.fs.BoolVar(&r.captureAlerts, "notify-capture", false, "show a desktop notification after capturing a screenshot")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", false, "show a desktop notification after saving an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", false, "show a desktop notification after copying to the clipboard")
	r.fs.StringVar(&r.logLevel, "log-level", "", "log level: debug, info, warn or error")
	r.fs.StringVar(&r.themeName, "theme", "", "window colours: light, dark, a theme name or a file path")
	r.fs.Usage = usageFunc(r)
	return r
}

// load reads the configuration and applies it to the flags that were not
// set on the command line.
func (r *root) load() {
	r.loader = config.NewLoader(version, r.configPath)
	cfg, err := r.loader.Load()
	if err != nil {
		logrus.WithError(err).Warn("failed to load config, using defaults")
		cfg = config.New()
	}
	r.config = cfg

	set := map[string]bool{}
	r.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["notify-capture"] {
		r.captureAlerts = cfg.Notify.Capture
	}
	if !set["notify-save"] {
		r.saveAlerts = cfg.Notify.Save
	}
	if !set["notify-copy"] {
		r.copyAlerts = cfg.Notify.Copy
	}
	r.notifier.Enable(notify.EventCapture, r.captureAlerts)
	r.notifier.Enable(notify.EventSave, r.saveAlerts)
	r.notifier.Enable(notify.EventCopy, r.copyAlerts)
}

// Precedence: flag, then SNAPMARK_LOG_LEVEL, then the config file.
func (r *root) applyLogLevel() error {
	name := r.logLevel
	if name == "" {
		name = os.Getenv("SNAPMARK_LOG_LEVEL")
	}
	if name == "" {
		name = r.config.LogLevel
	}
	if name == "" {
		name = "info"
	}
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}
	logrus.SetLevel(lvl)
	return nil
}

func (r *root) Run(ctx context.Context, args []string) error {
	if err := r.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return &UsageError{of: r}
		}
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.load()
	if err := r.applyLogLevel(); err != nil {
		return err
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "window":
		cmd, err = parseWindowCmd(subArgs, r)
	case "capture":
		cmd, err = parseCaptureCmd(subArgs, r)
	case "open":
		cmd, err = parseOpenCmd(subArgs, r)
	case "shortcuts":
		cmd, err = parseShortcutsCmd(subArgs, r)
	case "displays":
		cmd, err = parseDisplaysCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := newRoot()
	if err := r.Run(ctx, os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			return
		}
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
