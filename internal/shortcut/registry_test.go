package shortcut

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/event/key"

	"github.com/example/snapmark/internal/action"
)

// pressed is an Input holding combinations pressed this tick.
type pressed map[Combo]bool

func (p pressed) ConsumeShortcut(c Combo) bool {
	if p[c] {
		delete(p, c)
		return true
	}
	return false
}

func press(cs ...Combo) pressed {
	p := pressed{}
	for _, c := range cs {
		p[c] = true
	}
	return p
}

func TestDefaultCtrlNCapturesOnce(t *testing.T) {
	r := Default()
	kb := NewKeyboard()
	kb.Feed(key.Event{Code: key.CodeLeftControl, Direction: key.DirPress, Modifiers: key.ModControl})
	kb.Feed(key.Event{Code: key.CodeN, Rune: 'n', Direction: key.DirPress, Modifiers: key.ModControl})

	got, ok := r.Listener(kb, false, false)
	require.True(t, ok)
	assert.Equal(t, action.Capture, got)

	_, ok = r.Listener(kb, false, false)
	assert.False(t, ok)

	kb.EndTick()
	kb.Feed(key.Event{Code: key.CodeN, Rune: 'n', Direction: key.DirPress, Modifiers: key.ModControl})
	_, ok = r.Listener(kb, false, false)
	assert.False(t, ok, "held key must not fire again")
}

func TestDefaultBindingsHaveNoConflicts(t *testing.T) {
	r := Default()
	assert.False(t, r.HasConflicts())
	assert.NoError(t, r.Conflicts())
	for _, b := range r.Bindings() {
		assert.True(t, b.Enabled, b.Name)
		assert.True(t, Assignable(b.Combo.Key), b.Name)
		assert.Equal(t, b.Action.ViewerUsable(), b.WhileViewing, b.Name)
	}
}

func TestListenerRespectsViewingFlag(t *testing.T) {
	r := Default()

	got, ok := r.Listener(press(Ctrl(key.CodeS)), true, false)
	require.True(t, ok)
	assert.Equal(t, action.Save, got)

	_, ok = r.Listener(press(Ctrl(key.CodeS)), false, false)
	assert.False(t, ok, "Save is a viewer action")

	_, ok = r.Listener(press(Ctrl(key.CodeA)), true, false)
	assert.False(t, ok, "SelectArea is a home screen action")

	got, ok = r.Listener(press(Ctrl(key.CodeH)), false, false)
	require.True(t, ok)
	assert.Equal(t, action.HomePage, got)

	_, ok = r.Listener(press(Ctrl(key.CodeH)), true, false)
	assert.False(t, ok, "HomePage is a home screen action")
}

func TestListenerGlobalActions(t *testing.T) {
	r := Default()
	for _, ctx := range []struct{ viewing, selecting bool }{
		{false, false}, {true, false}, {false, true}, {true, true},
	} {
		got, ok := r.Listener(press(Ctrl(key.CodeW)), ctx.viewing, ctx.selecting)
		require.True(t, ok)
		assert.Equal(t, action.Close, got)

		got, ok = r.Listener(press(Ctrl(key.CodeK)), ctx.viewing, ctx.selecting)
		require.True(t, ok)
		assert.Equal(t, action.Settings, got)
	}
}

func TestListenerWhileSelectingOnlyGlobals(t *testing.T) {
	r := Default()
	_, ok := r.Listener(press(Ctrl(key.CodeN)), false, true)
	assert.False(t, ok)
}

func TestListenerSkipsDisabled(t *testing.T) {
	r := Default()
	require.True(t, r.SetEnabled(Ctrl(key.CodeW), false))
	in := press(Ctrl(key.CodeW))
	_, ok := r.Listener(in, false, false)
	assert.False(t, ok)
	assert.True(t, in[Ctrl(key.CodeW)], "disabled binding must not consume")

	require.True(t, r.SetEnabled(Ctrl(key.CodeW), true))
	got, ok := r.Listener(in, false, false)
	require.True(t, ok)
	assert.Equal(t, action.Close, got)
}

func TestListenerFirstMatchWins(t *testing.T) {
	c := Ctrl(key.CodeQ)
	r := NewRegistry(
		NewBinding(action.Close, c, "first"),
		NewBinding(action.Settings, c, "second"),
	)
	got, ok := r.Listener(press(c), false, false)
	require.True(t, ok)
	assert.Equal(t, action.Close, got)
}

func TestListenerStopsAfterMatch(t *testing.T) {
	r := NewRegistry(
		NewBinding(action.Capture, Ctrl(key.CodeN), ""),
		NewBinding(action.SelectArea, Ctrl(key.CodeA), ""),
	)
	in := press(Ctrl(key.CodeN), Ctrl(key.CodeA))
	got, ok := r.Listener(in, false, false)
	require.True(t, ok)
	assert.Equal(t, action.Capture, got)
	assert.True(t, in[Ctrl(key.CodeA)])
}

func TestListenerNeverViolatesContext(t *testing.T) {
	r := Default()
	var all []Combo
	for _, b := range r.Bindings() {
		all = append(all, b.Combo)
	}
	r.SetEnabled(Ctrl(key.CodeC), false)
	for _, viewing := range []bool{false, true} {
		in := press(all...)
		for {
			got, ok := r.Listener(in, viewing, false)
			if !ok {
				break
			}
			assert.NotEqual(t, action.Copy, got)
			if !got.Global() {
				assert.Equal(t, viewing, got.ViewerUsable(), got.String())
			}
		}
	}
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name string
		c    Candidate
		ok   bool
	}{
		{"valid", Candidate{Action: action.StartTimer, Key: key.CodeG, Mods: ModCommand}, true},
		{"no action", Candidate{Key: key.CodeG, Mods: ModCommand}, false},
		{"no key", Candidate{Action: action.StartTimer, Mods: ModCommand}, false},
		{"no modifier", Candidate{Action: action.StartTimer, Key: key.CodeG}, false},
		{"duplicate", Candidate{Action: action.StartTimer, Key: key.CodeC, Mods: ModCommand}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Default()
			before := r.Len()
			b, ok := r.Add(tc.c)
			assert.Equal(t, tc.ok, ok)
			if !tc.ok {
				assert.Equal(t, before, r.Len())
				return
			}
			assert.Equal(t, before+1, r.Len())
			assert.Equal(t, "StartTimer", b.Name)
			assert.True(t, b.Enabled)
			assert.Equal(t, b, r.Bindings()[r.Len()-1])
		})
	}
}

func TestRemove(t *testing.T) {
	r := Default()
	before := r.Len()
	require.True(t, r.Remove(Ctrl(key.CodeZ)))
	assert.Equal(t, before-1, r.Len())
	_, ok := r.Lookup(action.Undo)
	assert.False(t, ok)
	assert.False(t, r.Remove(Ctrl(key.CodeZ)))
	assert.Equal(t, before-1, r.Len())
}

func TestRemoveOnlyFirstMatch(t *testing.T) {
	c := Ctrl(key.CodeQ)
	r := NewRegistry(NewBinding(action.Close, c, ""), NewBinding(action.Undo, c, ""))
	require.True(t, r.Remove(c))
	require.Equal(t, 1, r.Len())
	assert.Equal(t, action.Undo, r.Bindings()[0].Action)
}

func TestConflicts(t *testing.T) {
	r := Default()
	require.True(t, r.Rebind(Ctrl(key.CodeH), Ctrl(key.CodeC)))
	r.SetEnabled(Ctrl(key.CodeC), false)

	assert.True(t, r.HasConflicts(), "disabled bindings still conflict")
	err := r.Conflicts()
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 1)
	var cerr *ConflictError
	require.True(t, errors.As(merr.Errors[0], &cerr))
	assert.Equal(t, action.Copy, cerr.First.Action)
	assert.Equal(t, action.HomePage, cerr.Second.Action)
	assert.Contains(t, cerr.Error(), "Ctrl+C")
}

func TestDistinctCombosNeverConflict(t *testing.T) {
	var bindings []Binding
	for i, k := range Keys() {
		a := action.All()[i%len(action.All())]
		bindings = append(bindings, NewBinding(a, Ctrl(k), ""), NewBinding(a, CtrlShift(k), ""))
	}
	r := NewRegistry(bindings...)
	assert.False(t, r.HasConflicts())
	assert.NoError(t, r.Conflicts())
}

func TestCloneIsIndependent(t *testing.T) {
	r := Default()
	c := r.Clone()
	c.Remove(Ctrl(key.CodeC))
	c.Describe(Ctrl(key.CodeS), "Write to disk")
	assert.Equal(t, Default().Bindings(), r.Bindings())
}
