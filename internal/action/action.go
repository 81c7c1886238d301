// Package action enumerates the logical operations a user can trigger from
// buttons or keyboard shortcuts.
package action

import "strings"

// Action identifies one user-triggerable operation. The zero value is None
// and means "no action selected".
type Action int

const (
	None Action = iota
	Capture
	Copy
	Close
	HomePage
	ManageTimer
	Modify
	NewScreenshot
	ResetTimer
	Save
	SelectArea
	SelectFullscreen
	Settings
	SetTimer
	StartTimer
	Undo
)

type info struct {
	name   string
	viewer bool
}

var infos = [...]info{
	None:             {name: "None"},
	Capture:          {name: "Capture"},
	Copy:             {name: "Copy", viewer: true},
	Close:            {name: "Close", viewer: true},
	HomePage:         {name: "HomePage"},
	ManageTimer:      {name: "ManageTimer"},
	Modify:           {name: "Modify", viewer: true},
	NewScreenshot:    {name: "NewScreenshot", viewer: true},
	ResetTimer:       {name: "ResetTimer"},
	Save:             {name: "Save", viewer: true},
	SelectArea:       {name: "SelectArea"},
	SelectFullscreen: {name: "SelectFullscreen"},
	Settings:         {name: "Settings"},
	SetTimer:         {name: "SetTimer"},
	StartTimer:       {name: "StartTimer"},
	Undo:             {name: "Undo", viewer: true},
}

// All returns every action except None in declaration order.
func All() []Action {
	out := make([]Action, 0, len(infos)-1)
	for a := Capture; a <= Undo; a++ {
		out = append(out, a)
	}
	return out
}

// Valid reports whether a names a real action.
func (a Action) Valid() bool {
	return a > None && a <= Undo
}

// String returns the display name of the action.
func (a Action) String() string {
	if a < None || a > Undo {
		return "Unknown"
	}
	return infos[a].name
}

// ViewerUsable reports whether the action makes sense while a captured image
// is on screen.
func (a Action) ViewerUsable() bool {
	if !a.Valid() {
		return false
	}
	return infos[a].viewer
}

// Global reports whether a shortcut for the action fires in every context.
func (a Action) Global() bool {
	return a == Settings || a == Close
}

// Parse resolves a display name ("NewScreenshot") or its snake_case spelling
// ("new_screenshot"). Matching ignores case.
func Parse(name string) (Action, bool) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", ""))
	if key == "" {
		return None, false
	}
	for _, a := range All() {
		if strings.ToLower(a.String()) == key {
			return a, true
		}
	}
	return None, false
}
