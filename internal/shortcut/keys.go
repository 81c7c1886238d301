package shortcut

import (
	"fmt"
	"strings"

	"golang.org/x/mobile/event/key"
)

type keyName struct {
	code key.Code
	name string
}

// catalog is the set of keys a binding may use, in display order.
var catalog = func() []keyName {
	var out []keyName
	for i := 0; i < 26; i++ {
		out = append(out, keyName{key.CodeA + key.Code(i), string(rune('A' + i))})
	}
	out = append(out, keyName{key.Code0, "0"})
	for i := 0; i < 9; i++ {
		out = append(out, keyName{key.Code1 + key.Code(i), string(rune('1' + i))})
	}
	out = append(out,
		keyName{key.CodeDownArrow, "Down"},
		keyName{key.CodeLeftArrow, "Left"},
		keyName{key.CodeRightArrow, "Right"},
		keyName{key.CodeUpArrow, "Up"},
		keyName{key.CodeEscape, "Escape"},
		keyName{key.CodeTab, "Tab"},
		keyName{key.CodeDeleteBackspace, "Backspace"},
		keyName{key.CodeReturnEnter, "Enter"},
		keyName{key.CodeSpacebar, "Space"},
		keyName{key.CodeInsert, "Insert"},
		keyName{key.CodeDeleteForward, "Delete"},
		keyName{key.CodeHome, "Home"},
		keyName{key.CodeEnd, "End"},
		keyName{key.CodePageUp, "PageUp"},
		keyName{key.CodePageDown, "PageDown"},
		keyName{key.CodeHyphenMinus, "Minus"},
		keyName{key.CodeEqualSign, "Equals"},
	)
	for i := 0; i < 12; i++ {
		out = append(out, keyName{key.CodeF1 + key.Code(i), fmt.Sprintf("F%d", i+1)})
	}
	for i := 0; i < 8; i++ {
		out = append(out, keyName{key.CodeF13 + key.Code(i), fmt.Sprintf("F%d", i+13)})
	}
	return out
}()

// Keys returns the keys that can be assigned to a binding.
func Keys() []key.Code {
	out := make([]key.Code, len(catalog))
	for i, k := range catalog {
		out[i] = k.code
	}
	return out
}

// Assignable reports whether k is in the key catalog.
func Assignable(k key.Code) bool {
	for _, c := range catalog {
		if c.code == k {
			return true
		}
	}
	return false
}

// KeyName returns the display name of k.
func KeyName(k key.Code) string {
	for _, c := range catalog {
		if c.code == k {
			return c.name
		}
	}
	if k == key.CodeUnknown {
		return "?"
	}
	return fmt.Sprintf("Key%d", int(k))
}

// ParseKey resolves a catalog key name, ignoring case. "Return" and "Del"
// are accepted for Enter and Delete.
func ParseKey(name string) (key.Code, bool) {
	switch strings.ToLower(name) {
	case "return":
		return key.CodeReturnEnter, true
	case "del":
		return key.CodeDeleteForward, true
	case "esc":
		return key.CodeEscape, true
	}
	for _, c := range catalog {
		if strings.EqualFold(c.name, name) {
			return c.code, true
		}
	}
	return key.CodeUnknown, false
}
