package appstate

import (
	"context"
	"fmt"
	"image"

	"golang.org/x/mobile/event/key"

	"github.com/example/snapmark/internal/action"
	"github.com/example/snapmark/internal/annotate"
	"github.com/example/snapmark/internal/render"
)

// minArea is the smallest selection side that counts as a drag.
const minArea = 2

// toolKeys select a tool by number while annotating.
var toolKeys = map[rune]annotate.Tool{
	'0': annotate.ToolNone,
	'1': annotate.ToolPen,
	'2': annotate.ToolLine,
	'3': annotate.ToolArrow,
	'4': annotate.ToolRect,
	'5': annotate.ToolCircle,
	'6': annotate.ToolText,
	'7': annotate.ToolCrop,
}

func (c *Controller) handleInput(ctx context.Context, f Frame) error {
	defer func() { c.pressed = f.Pointer.Pressed }()
	switch c.mode {
	case ModeSelectingArea:
		c.areaInput(f)
	case ModeTimerForm:
		return c.timerInput(ctx, f)
	case ModeTimerRunning:
		if f.special(key.CodeEscape) {
			return c.Perform(ctx, action.ResetTimer)
		}
	case ModeSettings:
		return c.settingsInput(f)
	case ModeViewing:
		c.viewerInput(f)
	}
	return nil
}

func (c *Controller) areaInput(f Frame) {
	if f.special(key.CodeEscape) {
		c.leaveArea()
		return
	}
	p := f.Pointer
	if p.Pressed {
		if !c.area.dragging {
			if !p.Inside {
				return
			}
			c.area.anchor = p.Pos
			c.area.dragging = true
		}
		c.area.rect = image.Rectangle{Min: c.area.anchor, Max: p.Pos}.Canon()
		return
	}
	if !c.area.dragging {
		return
	}
	c.area.dragging = false
	r := c.area.rect.Intersect(c.area.backdrop.Bounds())
	if r.Dx() < minArea || r.Dy() < minArea {
		c.area.rect = image.Rectangle{}
		return
	}
	c.area.rect = r
	c.show(render.Crop(c.area.backdrop, r), fmt.Sprintf("area %dx%d", r.Dx(), r.Dy()))
}

func (c *Controller) timerInput(ctx context.Context, f Frame) error {
	for _, r := range f.Typed {
		c.timer.AddDigit(r)
	}
	switch {
	case f.special(key.CodeDeleteBackspace):
		c.timer.DeleteDigit()
	case f.special(key.CodeReturnEnter):
		return c.Perform(ctx, action.StartTimer)
	case f.special(key.CodeEscape):
		return c.Perform(ctx, action.SetTimer)
	case f.special(key.CodeDeleteForward):
		return c.Perform(ctx, action.ResetTimer)
	}
	return nil
}

func (c *Controller) viewerInput(f Frame) {
	if !c.model.InSession() {
		return
	}
	if c.model.Tool() == annotate.ToolText {
		c.textInput(f)
		return
	}
	for _, r := range f.Typed {
		switch r {
		case '+', '=':
			c.SetStyle(annotate.Style{Width: stepWidth(c.style.Width, 1), Color: c.style.Color})
		case '-':
			c.SetStyle(annotate.Style{Width: stepWidth(c.style.Width, -1), Color: c.style.Color})
		case 'c':
			c.SetStyle(annotate.Style{Width: c.style.Width, Color: nextColor(c.style.Color)})
		default:
			if t, ok := toolKeys[r]; ok {
				c.SelectTool(t)
			}
		}
	}
	p := f.Pointer
	switch {
	case p.Pressed && p.Inside:
		c.model.FeedPointer(p.Pos, c.style)
	default:
		// Released, or dragged off the canvas.
		c.model.EndPointerInput()
	}
}

// textInput handles the Text tool: a click places the caret, typing fills
// the buffer and Enter commits it.
func (c *Controller) textInput(f Frame) {
	p := f.Pointer
	if p.Pressed && !c.pressed && p.Inside {
		c.textPos = p.Pos
		c.textPlaced = true
	}
	if f.special(key.CodeEscape) {
		c.model.SetText("")
		c.model.SetTool(annotate.ToolText)
		c.textPlaced = false
		return
	}
	for _, r := range f.Typed {
		c.model.TypeRune(r)
	}
	if f.special(key.CodeDeleteBackspace) {
		c.model.DeleteRune()
	}
	if f.special(key.CodeReturnEnter) && c.textPlaced {
		if c.model.CommitText(c.textPos, c.model.Text(), c.style) {
			c.textPlaced = false
		}
	}
}

// TextCaret returns where typed text will be placed, when the Text tool is
// active and a position has been clicked.
func (c *Controller) TextCaret() (image.Point, bool) {
	if c.model.Tool() != annotate.ToolText || !c.textPlaced {
		return image.Point{}, false
	}
	return c.textPos, true
}
