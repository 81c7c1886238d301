package main

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/example/snapmark/internal/action"
	"github.com/example/snapmark/internal/annotate"
	"github.com/example/snapmark/internal/appstate"
	"github.com/example/snapmark/internal/capture"
	"github.com/example/snapmark/internal/clipboard"
	"github.com/example/snapmark/internal/config"
	"github.com/example/snapmark/internal/export"
	"github.com/example/snapmark/internal/render"
	"github.com/example/snapmark/internal/shortcut"
	"github.com/example/snapmark/internal/theme"
	"github.com/example/snapmark/internal/timer"
)

var (
	providerFn  = capture.Default
	displaysFn  = capture.Displays
	clipboardFn = func() appstate.Clipboard { return clipboard.System{} }
	themeLoader = theme.NewLoader
)

// registry returns the live shortcut table: the configured one, or the
// defaults when the config has no [shortcuts] section.
func (r *root) registry() (*shortcut.Registry, error) {
	if r.config.Shortcuts == nil {
		return shortcut.Default(), nil
	}
	bindings, err := bindingsFromConfig(r.config.Shortcuts)
	if err != nil {
		return nil, err
	}
	return shortcut.NewRegistry(bindings...), nil
}

func bindingsFromConfig(entries []config.Shortcut) ([]shortcut.Binding, error) {
	out := make([]shortcut.Binding, 0, len(entries))
	for _, e := range entries {
		a, ok := action.Parse(e.Action)
		if !ok {
			return nil, fmt.Errorf("shortcut %q: unknown action", e.Action)
		}
		combo, err := shortcut.ParseCombo(e.Combo)
		if err != nil {
			return nil, fmt.Errorf("shortcut %s: %w", e.Action, err)
		}
		b := shortcut.NewBinding(a, combo, e.Description)
		b.Enabled = e.Enabled
		out = append(out, b)
	}
	return out, nil
}

func bindingsToConfig(bindings []shortcut.Binding) []config.Shortcut {
	out := make([]config.Shortcut, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, config.Shortcut{
			Action:      b.Action.String(),
			Combo:       b.Combo.String(),
			Enabled:     b.Enabled,
			Description: b.Description,
		})
	}
	return out
}

// persistShortcuts writes bindings into the config file.
func (r *root) persistShortcuts(bindings []shortcut.Binding) error {
	r.config.Shortcuts = bindingsToConfig(bindings)
	path, err := r.loader.Save(r.config)
	if err != nil {
		return err
	}
	logrus.WithField("path", path).Info("shortcuts written")
	return nil
}

// provider resolves a display selector, falling back to the configured
// display when sel is empty.
func (r *root) provider(sel string) (capture.Provider, error) {
	if strings.TrimSpace(sel) == "" {
		return providerFn(r.config.Display), nil
	}
	displays, err := displaysFn()
	if err != nil {
		return nil, err
	}
	idx, err := capture.FindDisplay(displays, sel)
	if err != nil {
		return nil, err
	}
	return providerFn(idx), nil
}

// windowTheme resolves the window colours. Precedence: flag, SNAPMARK_THEME, then
// the config file. Unknown themes fall back to the default with a warning.
func (r *root) windowTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv("SNAPMARK_THEME")
	}
	if name == "" {
		name = r.config.Theme
	}
	t, err := themeLoader().Load(name)
	if err != nil {
		logrus.WithError(err).Warn("using the default theme")
		return theme.Default()
	}
	return t
}

func (r *root) saveDir() string {
	if r.config.SaveDir != "" {
		return r.config.SaveDir
	}
	return "."
}

// controller builds the application controller wired to the real
// collaborators described by the configuration.
func (r *root) controller(p capture.Provider, extra ...appstate.Option) (*appstate.Controller, error) {
	reg, err := r.registry()
	if err != nil {
		return nil, err
	}
	width := r.config.PenWidth
	if width < 1 {
		width = annotate.DefaultStyle.Width
	}
	opts := []appstate.Option{
		appstate.WithRegistry(reg),
		appstate.WithTimer(timer.New(timer.WithSeconds(r.config.Timer))),
		appstate.WithCapturer(p),
		appstate.WithClipboard(clipboardFn()),
		appstate.WithSaver(appstate.SaverFunc(export.Save)),
		appstate.WithPathPicker(export.DirPicker{Dir: r.saveDir()}),
		appstate.WithNamer(export.NewNamer(r.config.DefaultName)),
		appstate.WithNotifier(r.notifier),
		appstate.WithStyle(annotate.Style{Width: width, Color: r.config.PenColor}),
		appstate.WithShadow(r.config.Shadow, render.DefaultShadowOptions()),
		appstate.WithShortcutsSaved(r.persistShortcuts),
		appstate.WithTheme(r.windowTheme()),
		appstate.WithLogger(logrus.WithField("component", "appstate")),
	}
	return appstate.New(append(opts, extra...)...), nil
}

// parseArea parses "x,y,w,h".
func parseArea(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("area %q: want x,y,w,h", s)
	}
	var v [4]int
	for i, p := range parts {
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%d", &v[i]); err != nil {
			return image.Rectangle{}, fmt.Errorf("area %q: %w", s, err)
		}
	}
	if v[2] <= 0 || v[3] <= 0 {
		return image.Rectangle{}, fmt.Errorf("area %q: width and height must be positive", s)
	}
	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
}
