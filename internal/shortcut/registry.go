// Package shortcut binds key combinations to actions, decides which binding
// fires for the current input, and guards edits to the binding table
// against conflicting combinations.
package shortcut

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/mobile/event/key"

	"github.com/example/snapmark/internal/action"
)

// Binding associates a key combination with an action.
type Binding struct {
	Name        string
	Description string
	Combo       Combo
	Enabled     bool
	// WhileViewing selects whether the binding fires while an image is
	// displayed or while it is not. Global actions ignore it.
	WhileViewing bool
	Action       action.Action
}

// NewBinding returns an enabled binding for a named after the action.
func NewBinding(a action.Action, c Combo, description string) Binding {
	return Binding{
		Name:         a.String(),
		Description:  description,
		Combo:        c,
		Enabled:      true,
		WhileViewing: a.ViewerUsable(),
		Action:       a,
	}
}

// Candidate is a binding proposed by the user before it is validated.
type Candidate struct {
	Action      action.Action
	Key         key.Code
	Mods        Modifiers
	Description string
}

// Input reports key combinations pressed during the current tick.
type Input interface {
	// ConsumeShortcut reports whether c was newly pressed and not yet
	// consumed, and consumes it if so.
	ConsumeShortcut(c Combo) bool
}

// ConflictError reports two bindings sharing one key combination.
type ConflictError struct {
	First, Second Binding
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s is bound to both %s and %s", e.First.Combo, e.First.Name, e.Second.Name)
}

// Registry is an ordered table of bindings. Order decides priority: the
// first binding that matches wins.
type Registry struct {
	bindings []Binding
}

// NewRegistry returns a registry holding bindings in the given order.
func NewRegistry(bindings ...Binding) *Registry {
	return &Registry{bindings: append([]Binding(nil), bindings...)}
}

// Bindings returns a copy of the table.
func (r *Registry) Bindings() []Binding {
	return append([]Binding(nil), r.bindings...)
}

// Len returns the number of bindings.
func (r *Registry) Len() int { return len(r.bindings) }

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	return NewRegistry(r.bindings...)
}

// Lookup returns the first binding for a.
func (r *Registry) Lookup(a action.Action) (Binding, bool) {
	for _, b := range r.bindings {
		if b.Action == a {
			return b, true
		}
	}
	return Binding{}, false
}

// Listener returns the action of the first enabled binding whose combination
// was pressed. Settings and Close are checked in every context; while an
// area is being selected nothing else is. Other bindings are only checked
// when their WhileViewing flag matches viewing.
func (r *Registry) Listener(in Input, viewing, selecting bool) (action.Action, bool) {
	for _, b := range r.bindings {
		if !b.Enabled {
			continue
		}
		if !b.Action.Global() && (selecting || b.WhileViewing != viewing) {
			continue
		}
		if in.ConsumeShortcut(b.Combo) {
			return b.Action, true
		}
	}
	return action.None, false
}

// Add validates c and appends it. It refuses candidates without an action,
// a key or a modifier, and combinations already in the table.
func (r *Registry) Add(c Candidate) (Binding, bool) {
	if !c.Action.Valid() || c.Key == key.CodeUnknown || c.Mods == 0 {
		return Binding{}, false
	}
	b := NewBinding(c.Action, Combo{Mods: c.Mods, Key: c.Key}, c.Description)
	if r.index(b.Combo) >= 0 {
		return Binding{}, false
	}
	r.bindings = append(r.bindings, b)
	return b, true
}

// Remove deletes the first binding using target.
func (r *Registry) Remove(target Combo) bool {
	i := r.index(target)
	if i < 0 {
		return false
	}
	r.bindings = append(r.bindings[:i], r.bindings[i+1:]...)
	return true
}

// SetEnabled sets the enabled flag of every binding using target.
func (r *Registry) SetEnabled(target Combo, enabled bool) bool {
	found := false
	for i := range r.bindings {
		if r.bindings[i].Combo == target {
			r.bindings[i].Enabled = enabled
			found = true
		}
	}
	return found
}

// Rebind moves the first binding using target to combo. The table may hold
// conflicts afterwards; they are reported by Conflicts.
func (r *Registry) Rebind(target, combo Combo) bool {
	i := r.index(target)
	if i < 0 {
		return false
	}
	r.bindings[i].Combo = combo
	return true
}

// Describe replaces the description of the first binding using target.
func (r *Registry) Describe(target Combo, description string) bool {
	i := r.index(target)
	if i < 0 {
		return false
	}
	r.bindings[i].Description = description
	return true
}

// HasConflicts reports whether two bindings share a combination, whether or
// not they are enabled.
func (r *Registry) HasConflicts() bool {
	for i := range r.bindings {
		for j := i + 1; j < len(r.bindings); j++ {
			if r.bindings[i].Combo == r.bindings[j].Combo {
				return true
			}
		}
	}
	return false
}

// Conflicts returns every pair of bindings sharing a combination, or nil.
func (r *Registry) Conflicts() error {
	var result *multierror.Error
	for i := range r.bindings {
		for j := i + 1; j < len(r.bindings); j++ {
			if r.bindings[i].Combo == r.bindings[j].Combo {
				result = multierror.Append(result, &ConflictError{First: r.bindings[i], Second: r.bindings[j]})
			}
		}
	}
	return result.ErrorOrNil()
}

func (r *Registry) replace(other *Registry) {
	r.bindings = append([]Binding(nil), other.bindings...)
}

func (r *Registry) index(c Combo) int {
	for i, b := range r.bindings {
		if b.Combo == c {
			return i
		}
	}
	return -1
}
