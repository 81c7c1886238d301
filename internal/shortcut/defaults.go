package shortcut

import (
	"golang.org/x/mobile/event/key"

	"github.com/example/snapmark/internal/action"
)

// DefaultBindings returns the bindings a fresh installation starts with.
func DefaultBindings() []Binding {
	return []Binding{
		NewBinding(action.Copy, Ctrl(key.CodeC), "Copy to clipboard"),
		NewBinding(action.HomePage, Ctrl(key.CodeH), "Go to the home page"),
		NewBinding(action.Capture, Ctrl(key.CodeN), "Take a new screenshot"),
		NewBinding(action.NewScreenshot, CtrlShift(key.CodeN), "Discard and take another screenshot"),
		NewBinding(action.Save, Ctrl(key.CodeS), "Save"),
		NewBinding(action.Close, Ctrl(key.CodeW), "Close the application"),
		NewBinding(action.Undo, Ctrl(key.CodeZ), "Undo"),
		NewBinding(action.Modify, Ctrl(key.CodeE), "Annotate the screenshot"),
		NewBinding(action.SelectArea, Ctrl(key.CodeA), "Select an area"),
		NewBinding(action.SelectFullscreen, Ctrl(key.CodeF), "Select the full screen"),
		NewBinding(action.ManageTimer, Ctrl(key.CodeT), "Open the timer"),
		NewBinding(action.Settings, Ctrl(key.CodeK), "Edit shortcuts"),
	}
}

// Default returns a registry holding DefaultBindings.
func Default() *Registry {
	return NewRegistry(DefaultBindings()...)
}
