package appstate

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/mobile/event/key"

	"github.com/example/snapmark/internal/shortcut"
)

type settingsState struct {
	cursor    int
	rebinding bool
}

// SettingsCursor returns the highlighted row of the shortcut editor and
// whether the next key combination will be assigned to it.
func (c *Controller) SettingsCursor() (row int, rebinding bool) {
	return c.settings.cursor, c.settings.rebinding
}

func (c *Controller) toggleSettings() {
	if c.mode == ModeSettings {
		c.editor.Discard()
		c.settings = settingsState{}
		c.mode = c.prevMode
		return
	}
	c.editor.Open()
	c.settings = settingsState{}
	c.prevMode = c.mode
	c.mode = ModeSettings
}

// settingsInput edits the candidate table: up and down move, space toggles,
// delete removes, tab waits for a new combination, enter saves and escape
// discards.
func (c *Controller) settingsInput(f Frame) error {
	cand := c.editor.Candidate()
	if cand == nil {
		return nil
	}
	bindings := cand.Bindings()
	if c.settings.rebinding {
		c.rebind(cand, bindings, f)
		return nil
	}
	for _, k := range f.Special {
		switch k {
		case key.CodeUpArrow:
			c.moveCursor(-1, len(bindings))
		case key.CodeDownArrow:
			c.moveCursor(1, len(bindings))
		case key.CodeSpacebar:
			if b, ok := c.selected(bindings); ok {
				cand.SetEnabled(b.Combo, !b.Enabled)
			}
		case key.CodeDeleteForward, key.CodeDeleteBackspace:
			if b, ok := c.selected(bindings); ok && cand.Remove(b.Combo) {
				bindings = cand.Bindings()
				c.moveCursor(0, len(bindings))
			}
		case key.CodeTab:
			if _, ok := c.selected(bindings); ok {
				c.settings.rebinding = true
				return nil
			}
		case key.CodeReturnEnter:
			return c.saveSettings()
		case key.CodeEscape:
			c.toggleSettings()
			return nil
		}
		bindings = cand.Bindings()
	}
	return nil
}

func (c *Controller) rebind(cand *shortcut.Registry, bindings []shortcut.Binding, f Frame) {
	b, ok := c.selected(bindings)
	if !ok {
		c.settings.rebinding = false
		return
	}
	for _, combo := range f.Combos {
		if combo.Mods == 0 || !shortcut.Assignable(combo.Key) {
			continue
		}
		cand.Rebind(b.Combo, combo)
		c.settings.rebinding = false
		return
	}
	if f.special(key.CodeEscape) {
		c.settings.rebinding = false
	}
}

func (c *Controller) selected(bindings []shortcut.Binding) (shortcut.Binding, bool) {
	if c.settings.cursor < 0 || c.settings.cursor >= len(bindings) {
		return shortcut.Binding{}, false
	}
	return bindings[c.settings.cursor], true
}

func (c *Controller) moveCursor(delta, n int) {
	c.settings.cursor += delta
	if c.settings.cursor >= n {
		c.settings.cursor = n - 1
	}
	if c.settings.cursor < 0 {
		c.settings.cursor = 0
	}
}

func (c *Controller) saveSettings() error {
	if err := c.editor.Save(); err != nil {
		c.setStatus("Shortcuts not saved: %s", summarize(err))
		c.log.WithError(err).Warn("shortcut table refused")
		return fmt.Errorf("save shortcuts: %w", err)
	}
	c.settings = settingsState{}
	c.mode = c.prevMode
	c.setStatus("Shortcuts saved")
	c.log.WithField("bindings", c.registry.Len()).Info("shortcuts saved")
	if c.onSaved == nil {
		return nil
	}
	if err := c.onSaved(c.registry.Bindings()); err != nil {
		c.setStatus("Shortcuts not persisted: %v", err)
		c.log.WithError(err).Warn("persist shortcuts")
		return fmt.Errorf("persist shortcuts: %w", err)
	}
	return nil
}

// summarize shortens an aggregated error to its first entry.
func summarize(err error) string {
	var merr *multierror.Error
	if !errors.As(err, &merr) || len(merr.Errors) == 0 {
		return err.Error()
	}
	msg := merr.Errors[0].Error()
	if n := len(merr.Errors); n > 1 {
		msg += fmt.Sprintf(" (and %d more)", n-1)
	}
	return msg
}
