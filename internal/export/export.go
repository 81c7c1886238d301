// Package export writes finished screenshots to disk and picks the names
// they are saved under.
package export

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"
)

// Ext is appended to generated names.
const Ext = ".png"

// Save encodes img as PNG at path, creating parent directories as needed.
func Save(path string, img image.Image) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %q: %w", path, cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("write PNG to %q: %w", path, err)
	}
	logrus.WithField("path", path).Debug("png written")
	return nil
}

// Namer produces default file names. Without a base name every call
// returns "screenshot" followed by the current time. With one the calls
// return base, base_1, base_2 and so on.
type Namer struct {
	mu    sync.Mutex
	clock clock.Clock
	base  string
	next  int
}

// NamerOption configures a Namer.
type NamerOption func(*Namer)

// WithClock sets the clock used for timestamps.
func WithClock(c clock.Clock) NamerOption {
	return func(n *Namer) { n.clock = c }
}

// NewNamer returns a Namer using base, which may be empty.
func NewNamer(base string, opts ...NamerOption) *Namer {
	n := &Namer{clock: clock.New(), base: strings.TrimSpace(base)}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Base returns the configured base name.
func (n *Namer) Base() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.base
}

// SetBase replaces the base name and restarts the sequence.
func (n *Namer) SetBase(base string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.base = strings.TrimSpace(base)
	n.next = 0
}

// Next returns the next suggested name, without extension.
func (n *Namer) Next() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.base == "" {
		return "screenshot_" + n.clock.Now().Format("2006-01-02_15-04-05")
	}
	name := n.base
	if n.next > 0 {
		name = fmt.Sprintf("%s_%d", n.base, n.next)
	}
	n.next++
	return name
}

// DirPicker resolves suggested names inside Dir without asking anyone.
type DirPicker struct {
	Dir string
}

// PickSavePath returns Dir/suggested with a .png extension. The second
// result is false when no directory is configured.
func (p DirPicker) PickSavePath(suggested string) (string, bool, error) {
	if p.Dir == "" {
		return "", false, nil
	}
	name := filepath.Base(strings.TrimSpace(suggested))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", false, fmt.Errorf("invalid file name %q", suggested)
	}
	if !strings.EqualFold(filepath.Ext(name), Ext) {
		name += Ext
	}
	return filepath.Join(p.Dir, name), true, nil
}
