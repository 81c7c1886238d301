package appstate

import (
	"image"

	"golang.org/x/mobile/event/key"

	"github.com/example/snapmark/internal/shortcut"
)

// Pointer is the mouse state for one tick, in image coordinates.
type Pointer struct {
	Pos     image.Point
	Pressed bool
	// Inside reports whether Pos lies over the displayed image.
	Inside bool
}

// Frame is everything the host collected since the previous tick.
type Frame struct {
	Keys    shortcut.Input
	Pointer Pointer
	// Combos lists the combinations pressed this tick, used while
	// rebinding a shortcut.
	Combos  []shortcut.Combo
	Typed   []rune
	Special []key.Code
}

func (f Frame) special(c key.Code) bool {
	for _, s := range f.Special {
		if s == c {
			return true
		}
	}
	return false
}

type noKeys struct{}

func (noKeys) ConsumeShortcut(shortcut.Combo) bool { return false }
