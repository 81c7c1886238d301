package appstate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/example/snapmark/internal/action"
	"github.com/example/snapmark/internal/annotate"
	"github.com/example/snapmark/internal/render"
)

const (
	uiTextSize    = 14
	titleTextSize = 28
	timerTextSize = 96
	lineHeight    = 22
)

// Paint draws the controller state into dst, which is the whole window.
func (c *Controller) Paint(dst *image.RGBA) {
	l := c.Layout(dst.Bounds().Size())
	th := c.theme
	render.Checkerboard(dst, dst.Bounds(), 8, th.CheckerLight, th.CheckerDark)

	switch c.mode {
	case ModeHome:
		c.paintHome(dst, l)
	case ModeViewing:
		c.paintViewer(dst, l)
	case ModeSelectingArea:
		c.paintArea(dst, l)
	case ModeSettings:
		if c.prevMode == ModeViewing {
			c.paintViewer(dst, l)
			draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Dim), image.Point{}, draw.Over)
		}
		c.paintSettings(dst, l)
	case ModeTimerForm:
		c.paintTimerForm(dst, l)
	case ModeTimerRunning:
		c.paintCountdown(dst, l)
	}

	c.paintBars(dst, l)
	c.paintStatus(dst)
}

func (c *Controller) paintBars(dst *image.RGBA, l Layout) {
	bar := image.NewUniform(c.theme.BarBackground)
	text := image.NewUniform(c.theme.BarText)
	draw.Draw(dst, l.Header, bar, image.Point{}, draw.Src)
	draw.Draw(dst, l.Footer, bar, image.Point{}, draw.Src)
	render.Text(dst, image.Pt(8, l.Header.Max.Y-9), c.headerText(), uiTextSize, text)
	render.Text(dst, image.Pt(8, l.Footer.Max.Y-7), c.footerText(), uiTextSize-2, text)
}

func (c *Controller) headerText() string {
	switch c.mode {
	case ModeViewing:
		if c.image == nil {
			break
		}
		if c.model.InSession() {
			return fmt.Sprintf("Snapmark | %s | width %d | %s | undo %d",
				c.model.Tool(), c.style.Width, colorName(c.style.Color), c.model.UndoDepth())
		}
		return fmt.Sprintf("Snapmark | %dx%d", c.image.Bounds().Dx(), c.image.Bounds().Dy())
	case ModeSelectingArea:
		return "Snapmark | drag to select an area, Esc to cancel"
	case ModeSettings:
		return "Snapmark | shortcuts"
	}
	return fmt.Sprintf("Snapmark | selection: %s", c.selection)
}

func (c *Controller) footerText() string {
	switch c.mode {
	case ModeViewing:
		if c.model.InSession() {
			if c.model.Tool() == annotate.ToolText {
				return "click to place text, type, Enter to commit, Esc to leave the text tool"
			}
			return "1 pen  2 line  3 arrow  4 rect  5 circle  6 text  7 crop  +/- width  c colour  " + c.hint(action.Modify, "finish")
		}
		return strings.Join([]string{c.hint(action.Modify, "annotate"), c.hint(action.Copy, "copy"), c.hint(action.Save, "save"), c.hint(action.NewScreenshot, "again")}, "  ")
	case ModeSettings:
		if _, rebinding := c.SettingsCursor(); rebinding {
			return "press the new key combination, Esc to cancel"
		}
		return "up/down move  space on/off  del remove  tab rebind  enter save  esc discard"
	case ModeTimerForm:
		return "type seconds  enter start  esc keep  del reset"
	case ModeTimerRunning:
		return "esc cancel"
	}
	return strings.Join([]string{c.hint(action.Capture, "capture"), c.hint(action.SelectArea, "area"), c.hint(action.ManageTimer, "timer"), c.hint(action.Settings, "shortcuts")}, "  ")
}

// hint renders "<combo> label" for the live binding of a, or nothing when
// the action is unbound or disabled.
func (c *Controller) hint(a action.Action, label string) string {
	b, ok := c.registry.Lookup(a)
	if !ok || !b.Enabled {
		return ""
	}
	return b.Combo.String() + " " + label
}

func (c *Controller) paintHome(dst *image.RGBA, l Layout) {
	y := l.Header.Max.Y + 60
	render.Text(dst, image.Pt(40, y), "Snapmark", titleTextSize, c.ink())
	y += 2 * lineHeight
	for _, b := range c.registry.Bindings() {
		if !b.Enabled || (b.WhileViewing && !b.Action.Global()) {
			continue
		}
		render.Text(dst, image.Pt(40, y), fmt.Sprintf("%-16s %s", b.Combo, b.Description), uiTextSize, c.ink())
		y += lineHeight
	}
	if s := c.timer.Seconds(); s > 0 {
		render.Text(dst, image.Pt(40, y+lineHeight), fmt.Sprintf("Timer: %d s", s), uiTextSize, c.ink())
	}
}

func (c *Controller) paintViewer(dst *image.RGBA, l Layout) {
	if c.image == nil || l.Canvas.Empty() {
		return
	}
	shapes := c.model.Shapes()
	if p, ok := c.model.Preview(); ok {
		shapes = append(shapes, p)
	}
	if pos, ok := c.TextCaret(); ok {
		shapes = append(shapes, annotate.Shape{Tool: annotate.ToolText, Points: []image.Point{pos}, Style: c.style, Text: c.model.Text() + "|"})
	}
	composed := render.Compose(c.image, shapes)
	xdraw.NearestNeighbor.Scale(dst, l.Canvas, composed, composed.Bounds(), draw.Over, nil)
	if r, ok := c.model.Crop(); ok {
		render.DashedRect(dst, image.Rectangle{Min: l.Transform.Apply(r.Min), Max: l.Transform.Apply(r.Max)}, 4, 2, color.White, color.Black)
	}
}

func (c *Controller) paintArea(dst *image.RGBA, l Layout) {
	backdrop, sel := c.AreaBackdrop()
	if backdrop == nil || l.Canvas.Empty() {
		return
	}
	xdraw.NearestNeighbor.Scale(dst, l.Canvas, backdrop, backdrop.Bounds(), draw.Over, nil)
	draw.Draw(dst, l.Canvas, image.NewUniform(c.theme.Dim), image.Point{}, draw.Over)
	if sel.Empty() {
		return
	}
	r := image.Rectangle{Min: l.Transform.Apply(sel.Min), Max: l.Transform.Apply(sel.Max)}
	xdraw.NearestNeighbor.Scale(dst, r, backdrop, sel, draw.Src, nil)
	render.DashedRect(dst, r, 4, 2, color.White, color.Black)
	label := fmt.Sprintf("%dx%d", sel.Dx(), sel.Dy())
	render.Text(dst, image.Pt(r.Min.X, r.Min.Y-4), label, uiTextSize, c.ink())
}

func (c *Controller) paintSettings(dst *image.RGBA, l Layout) {
	cand := c.editor.Candidate()
	if cand == nil {
		return
	}
	cursor, rebinding := c.SettingsCursor()
	x, y := 40, l.Header.Max.Y+40
	for i, b := range cand.Bindings() {
		row := image.Rect(x-8, y-lineHeight+6, dst.Bounds().Max.X-40, y+6)
		if i == cursor {
			draw.Draw(dst, row, image.NewUniform(c.theme.Highlight), image.Point{}, draw.Src)
		}
		state := "on "
		if !b.Enabled {
			state = "off"
		}
		combo := b.Combo.String()
		if i == cursor && rebinding {
			combo = "..."
		}
		render.Text(dst, image.Pt(x, y), fmt.Sprintf("[%s] %-16s %-16s %s", state, b.Name, combo, b.Description), uiTextSize, c.ink())
		y += lineHeight
	}
	if err := cand.Conflicts(); err != nil {
		render.Text(dst, image.Pt(x, y+lineHeight), "conflict: "+summarize(err), uiTextSize, image.NewUniform(c.theme.Error))
	}
}

func (c *Controller) paintTimerForm(dst *image.RGBA, l Layout) {
	y := l.Header.Max.Y + 80
	render.Text(dst, image.Pt(40, y), "Delay before capture", titleTextSize, c.ink())
	render.Text(dst, image.Pt(40, y+2*lineHeight+10), fmt.Sprintf("%d seconds", c.timer.Seconds()), titleTextSize, c.ink())
}

func (c *Controller) paintCountdown(dst *image.RGBA, _ Layout) {
	s := fmt.Sprintf("%d", c.timer.Seconds())
	w := render.MeasureText(s, timerTextSize)
	b := dst.Bounds()
	render.Text(dst, image.Pt((b.Dx()-w)/2, b.Dy()/2+timerTextSize/3), s, timerTextSize, c.ink())
}

func (c *Controller) paintStatus(dst *image.RGBA) {
	msg, ok := c.Status()
	if !ok {
		return
	}
	const size = 20
	w := render.MeasureText(msg, size)
	b := dst.Bounds()
	px := (b.Dx() - w) / 2
	py := b.Dy() / 2
	box := image.Rect(px-10, py-size-6, px+w+10, py+10)
	draw.Draw(dst, box, image.NewUniform(c.theme.StatusBackground), image.Point{}, draw.Over)
	render.Rect(dst, box, c.theme.StatusBorder, 2)
	render.Text(dst, image.Pt(px, py), msg, size, c.ink())
}

func (c *Controller) ink() image.Image { return image.NewUniform(c.theme.Foreground) }
