package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
save_dir = /tmp/screens
default_name = "shot"
display = 1
shadow = true
timer = 5
pen_color = #00FF0080
// comment
[notify]
capture = true
save = false
copy = true

[shortcuts]
Copy = Ctrl+C, on, Copy to clipboard
Undo: Ctrl+Z, off
Save = Ctrl+S
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.SaveDir != "/tmp/screens" {
		t.Errorf("Expected save_dir '/tmp/screens', got '%s'", cfg.SaveDir)
	}
	if cfg.DefaultName != "shot" {
		t.Errorf("Expected default_name 'shot', got '%s'", cfg.DefaultName)
	}
	if cfg.Display != 1 || !cfg.Shadow || cfg.Timer != 5 {
		t.Errorf("Unexpected root values: %+v", cfg)
	}
	if want := (color.RGBA{G: 255, A: 0x80}); cfg.PenColor != want {
		t.Errorf("Expected pen colour %+v, got %+v", want, cfg.PenColor)
	}
	if cfg.PenWidth != 4 {
		t.Errorf("Expected default pen width, got %d", cfg.PenWidth)
	}
	if !cfg.Notify.Capture || cfg.Notify.Save || !cfg.Notify.Copy {
		t.Errorf("Unexpected notify values: %+v", cfg.Notify)
	}

	want := []Shortcut{
		{Action: "Copy", Combo: "Ctrl+C", Enabled: true, Description: "Copy to clipboard"},
		{Action: "Undo", Combo: "Ctrl+Z", Enabled: false},
		{Action: "Save", Combo: "Ctrl+S", Enabled: true},
	}
	if len(cfg.Shortcuts) != len(want) {
		t.Fatalf("Expected %d shortcuts, got %d", len(want), len(cfg.Shortcuts))
	}
	for i := range want {
		if cfg.Shortcuts[i] != want[i] {
			t.Errorf("shortcut %d = %+v, want %+v", i, cfg.Shortcuts[i], want[i])
		}
	}
}

func TestParseWithoutShortcutsKeepsNil(t *testing.T) {
	cfg, err := Parse(strings.NewReader("save_dir = /x\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Shortcuts != nil {
		t.Fatalf("expected nil shortcuts, got %+v", cfg.Shortcuts)
	}
	cfg, err = Parse(strings.NewReader("[shortcuts]\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Shortcuts == nil || len(cfg.Shortcuts) != 0 {
		t.Fatalf("expected empty non-nil shortcuts, got %#v", cfg.Shortcuts)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"bad bool":    "shadow = maybe\n",
		"bad timer":   "timer = -3\n",
		"bad colour":  "pen_color = red\n",
		"bad notify":  "[notify]\ncapture = sometimes\n",
		"bad state":   "[shortcuts]\nCopy = Ctrl+C, perhaps\n",
		"empty combo": "[shortcuts]\nCopy = , on\n",
	}
	for name, input := range tests {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `save_dir = /home/user/shots
default_name = capture
display = 2
shadow = true
log_level = debug
theme = dark
timer = 10
pen_color = #112233
pen_width = 6

[notify]
capture = true
save = true
copy = false

[shortcuts]
Copy = Ctrl+C, on, Copy: the image
Close = Ctrl+W, off
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.SaveDir != cfg2.SaveDir || cfg.DefaultName != cfg2.DefaultName {
		t.Errorf("Path mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.Display != cfg2.Display || cfg.Shadow != cfg2.Shadow || cfg.Timer != cfg2.Timer || cfg.LogLevel != cfg2.LogLevel || cfg.Theme != cfg2.Theme {
		t.Errorf("Root mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg2.Theme != "dark" {
		t.Errorf("Expected theme 'dark', got '%s'", cfg2.Theme)
	}
	if cfg.PenColor != cfg2.PenColor || cfg.PenWidth != cfg2.PenWidth {
		t.Errorf("Pen mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if len(cfg2.Shortcuts) != 2 || cfg2.Shortcuts[0] != cfg.Shortcuts[0] || cfg2.Shortcuts[1] != cfg.Shortcuts[1] {
		t.Errorf("Shortcut mismatch: %+v vs %+v", cfg.Shortcuts, cfg2.Shortcuts)
	}
}

func TestLoaderSearchOrder(t *testing.T) {
	home := t.TempDir()
	l := &Loader{Version: "v1", ConfigHome: home}

	if got := l.GetConfigPath(); got != "" {
		t.Fatalf("expected no config, got %q", got)
	}
	if want := filepath.Join(home, AppName, "config.rc"); l.DefaultPath() != want {
		t.Fatalf("DefaultPath = %q, want %q", l.DefaultPath(), want)
	}

	cfg := New()
	cfg.Timer = 7
	path, err := l.Save(cfg)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if l.GetConfigPath() != path {
		t.Fatalf("expected saved file to be found at %q", path)
	}
	loaded, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Timer != 7 {
		t.Fatalf("expected timer 7, got %d", loaded.Timer)
	}

	override := filepath.Join(t.TempDir(), "custom.rc")
	if err := os.WriteFile(override, []byte("timer = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l.OverridePath = override
	if got := l.GetConfigPath(); got != override {
		t.Fatalf("expected override path, got %q", got)
	}
}

func TestLoaderDevModeUsesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := os.WriteFile(filepath.Join(dir, ".snapmarkrc"), []byte("display = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := &Loader{Version: "dev", ConfigHome: t.TempDir()}
	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display != 1 {
		t.Fatalf("expected display 1 from .snapmarkrc, got %d", cfg.Display)
	}
}
