package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/example/snapmark/internal/config"
	"github.com/example/snapmark/internal/shortcut"
)

type shortcutsCmd struct {
	*root
	fs *flag.FlagSet
}

func (s *shortcutsCmd) Program() string { return s.subcommand("shortcuts") }

func (s *shortcutsCmd) FlagSet() *flag.FlagSet { return s.fs }

func parseShortcutsCmd(args []string, r *root) (*shortcutsCmd, error) {
	fs := flag.NewFlagSet("shortcuts", flag.ContinueOnError)
	s := &shortcutsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(s)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, &UsageError{of: s}
	}
	return s, nil
}

// shortcutFile is the YAML document used by export and import.
type shortcutFile struct {
	Shortcuts []shortcutEntry `yaml:"shortcuts"`
}

type shortcutEntry struct {
	Action      string `yaml:"action"`
	Combo       string `yaml:"combo"`
	Enabled     *bool  `yaml:"enabled,omitempty"`
	Description string `yaml:"description,omitempty"`
}

func (s *shortcutsCmd) Run(context.Context) error {
	args := s.fs.Args()
	switch args[0] {
	case "list":
		return s.list()
	case "check":
		return s.check()
	case "keys":
		for _, k := range shortcut.Keys() {
			fmt.Fprintln(stdout, shortcut.KeyName(k))
		}
		return nil
	case "export":
		if len(args) != 2 {
			return &UsageError{of: s}
		}
		return s.export(args[1])
	case "import":
		if len(args) != 2 {
			return &UsageError{of: s}
		}
		return s.importFile(args[1])
	default:
		return fmt.Errorf("unknown shortcuts command: %s", args[0])
	}
}

func (s *shortcutsCmd) list() error {
	reg, err := s.registry()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ACTION\tCOMBO\tSTATE\tDESCRIPTION")
	for _, b := range reg.Bindings() {
		state := "on"
		if !b.Enabled {
			state = "off"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.Name, b.Combo, state, b.Description)
	}
	return tw.Flush()
}

func (s *shortcutsCmd) check() error {
	reg, err := s.registry()
	if err != nil {
		return err
	}
	if err := reg.Conflicts(); err != nil {
		return fmt.Errorf("shortcut conflicts: %w", err)
	}
	fmt.Fprintf(stdout, "%d shortcuts, no conflicts\n", reg.Len())
	return nil
}

func (s *shortcutsCmd) export(path string) error {
	reg, err := s.registry()
	if err != nil {
		return err
	}
	doc := shortcutFile{}
	for _, b := range reg.Bindings() {
		enabled := b.Enabled
		doc.Shortcuts = append(doc.Shortcuts, shortcutEntry{
			Action:      b.Action.String(),
			Combo:       b.Combo.String(),
			Enabled:     &enabled,
			Description: b.Description,
		})
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode shortcuts: %w", err)
	}
	if path == "-" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// importFile replaces the shortcut table with the file's contents. The new
// table goes through the editor so conflicting files are refused.
func (s *shortcutsCmd) importFile(path string) error {
	data, err := readInput(path)
	if err != nil {
		return err
	}
	var doc shortcutFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	entries := make([]config.Shortcut, 0, len(doc.Shortcuts))
	for _, e := range doc.Shortcuts {
		enabled := e.Enabled == nil || *e.Enabled
		entries = append(entries, config.Shortcut{Action: e.Action, Combo: e.Combo, Enabled: enabled, Description: e.Description})
	}
	bindings, err := bindingsFromConfig(entries)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}

	live, err := s.registry()
	if err != nil {
		return err
	}
	editor := shortcut.NewEditor(live)
	editor.Replace(bindings)
	if err := editor.Save(); err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	if err := s.persistShortcuts(live.Bindings()); err != nil {
		return err
	}
	logrus.WithField("count", live.Len()).Info("shortcuts imported")
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
