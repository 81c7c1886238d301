package shortcut

import (
	"unicode"

	"golang.org/x/mobile/event/key"
)

// editKeys are reported through Keyboard.Special when pressed without
// Command or Alt.
var editKeys = map[key.Code]bool{
	key.CodeReturnEnter:     true,
	key.CodeEscape:          true,
	key.CodeDeleteBackspace: true,
	key.CodeDeleteForward:   true,
	key.CodeUpArrow:         true,
	key.CodeDownArrow:       true,
	key.CodeLeftArrow:       true,
	key.CodeRightArrow:      true,
	key.CodeSpacebar:        true,
	key.CodeTab:             true,
}

// Keyboard turns key events into per-tick input. A combination is reported
// once per physical press; holding the key does not fire it again.
type Keyboard struct {
	held    map[key.Code]bool
	pressed []Combo
	typed   []rune
	special []key.Code
}

// NewKeyboard returns an empty keyboard state.
func NewKeyboard() *Keyboard {
	return &Keyboard{held: make(map[key.Code]bool)}
}

// Feed records a key event.
func (k *Keyboard) Feed(e key.Event) {
	switch e.Direction {
	case key.DirRelease:
		delete(k.held, e.Code)
		return
	case key.DirPress:
	default:
		return
	}
	if k.held[e.Code] {
		return
	}
	k.held[e.Code] = true
	mods := FromMobile(e.Modifiers)
	k.pressed = append(k.pressed, Combo{Mods: mods, Key: e.Code})
	if mods&(ModCommand|ModAlt) != 0 {
		return
	}
	if editKeys[e.Code] {
		k.special = append(k.special, e.Code)
	}
	if e.Rune > 0 && unicode.IsPrint(e.Rune) {
		k.typed = append(k.typed, e.Rune)
	}
}

// ConsumeShortcut implements Input.
func (k *Keyboard) ConsumeShortcut(c Combo) bool {
	for i, p := range k.pressed {
		if p == c {
			k.pressed = append(k.pressed[:i], k.pressed[i+1:]...)
			return true
		}
	}
	return false
}

// Pressed returns the combinations pressed this tick that nothing has
// consumed yet.
func (k *Keyboard) Pressed() []Combo { return append([]Combo(nil), k.pressed...) }

// Typed returns printable runes typed this tick.
func (k *Keyboard) Typed() []rune { return append([]rune(nil), k.typed...) }

// Special returns editing and navigation keys pressed this tick.
func (k *Keyboard) Special() []key.Code { return append([]key.Code(nil), k.special...) }

// EndTick forgets presses that nobody consumed. Held keys stay held.
func (k *Keyboard) EndTick() {
	k.pressed = k.pressed[:0]
	k.typed = k.typed[:0]
	k.special = k.special[:0]
}
