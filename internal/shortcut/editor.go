package shortcut

import "errors"

// EditState is the state of a shortcut editing session.
type EditState int

const (
	EditIdle EditState = iota
	EditEditing
	EditCommitted
)

func (s EditState) String() string {
	switch s {
	case EditIdle:
		return "idle"
	case EditEditing:
		return "editing"
	case EditCommitted:
		return "committed"
	}
	return "unknown"
}

// ErrNotEditing is returned when saving without an open session.
var ErrNotEditing = errors.New("no shortcut editing session is open")

// Editor edits a copy of a live registry and writes it back only when the
// copy is free of conflicts.
type Editor struct {
	live      *Registry
	candidate *Registry
	state     EditState
	err       error
}

// NewEditor returns an idle editor for live.
func NewEditor(live *Registry) *Editor {
	return &Editor{live: live}
}

// Live returns the registry the editor commits to.
func (e *Editor) Live() *Registry { return e.live }

// State returns the session state.
func (e *Editor) State() EditState { return e.state }

// Err returns the error of the last refused save.
func (e *Editor) Err() error { return e.err }

// Open starts a session on a fresh copy of the live table and returns it.
// Calling Open during a session returns the current candidate unchanged.
func (e *Editor) Open() *Registry {
	if e.state != EditEditing {
		e.candidate = e.live.Clone()
		e.state = EditEditing
		e.err = nil
	}
	return e.candidate
}

// Candidate returns the table being edited, or nil outside a session.
func (e *Editor) Candidate() *Registry {
	if e.state != EditEditing {
		return nil
	}
	return e.candidate
}

// Replace swaps the candidate for a table built from bindings, opening a
// session if needed.
func (e *Editor) Replace(bindings []Binding) *Registry {
	e.Open()
	e.candidate = NewRegistry(bindings...)
	return e.candidate
}

// Save commits the candidate to the live table. While the candidate has
// conflicts nothing is written, the session stays open and the conflicts
// are returned.
func (e *Editor) Save() error {
	if e.state != EditEditing {
		return ErrNotEditing
	}
	if err := e.candidate.Conflicts(); err != nil {
		e.err = err
		return err
	}
	e.live.replace(e.candidate)
	e.candidate = nil
	e.err = nil
	e.state = EditCommitted
	return nil
}

// Discard drops the candidate without touching the live table.
func (e *Editor) Discard() {
	e.candidate = nil
	e.err = nil
	e.state = EditIdle
}
