package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Ext is the file extension of theme files.
const Ext = ".theme"

// Loader finds theme files by name.
type Loader struct {
	// ConfigDir holds the user's themes and is searched first.
	ConfigDir  string
	SystemDirs []string
}

// NewLoader returns a Loader searching snapmark/themes under the XDG config
// home and data directories.
func NewLoader() *Loader {
	dirs := make([]string, 0, len(xdg.DataDirs))
	for _, d := range xdg.DataDirs {
		dirs = append(dirs, filepath.Join(d, "snapmark", "themes"))
	}
	return &Loader{
		ConfigDir:  filepath.Join(xdg.ConfigHome, "snapmark", "themes"),
		SystemDirs: dirs,
	}
}

// Load resolves name to a theme. An empty name gives Default. Otherwise
// name is tried as a file path, then as a builtin, then as NAME.theme in
// ConfigDir followed by each of SystemDirs.
func (l *Loader) Load(name string) (*Theme, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Default(), nil
	}
	if isFile(name) {
		return parseFile(name)
	}
	if t, ok := Builtin(name); ok {
		return t, nil
	}
	file := name
	if filepath.Ext(file) != Ext {
		file += Ext
	}
	for _, dir := range l.dirs() {
		if path := filepath.Join(dir, file); isFile(path) {
			return parseFile(path)
		}
	}
	return nil, fmt.Errorf("theme %q not found (builtin: %s)", name, strings.Join(Names(), ", "))
}

func (l *Loader) dirs() []string {
	out := make([]string, 0, len(l.SystemDirs)+1)
	for _, d := range append([]string{l.ConfigDir}, l.SystemDirs...) {
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

func parseFile(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open theme: %w", err)
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", path, err)
	}
	return t, nil
}
