// Package annotate holds the editable marks drawn over a captured image:
// pen and shape strokes, text labels and a crop candidate, plus a single
// undo log shared by every tool.
package annotate

import (
	"image"
	"image/color"
	"strings"
)

// Label is committed text placed on the image.
type Label struct {
	Pos   image.Point
	Text  string
	Style Style
}

// Shape is a finished mark ready for the renderer. Pen shapes carry every
// sample; Line, Arrow, Rect and Circle carry their start and end points;
// Text shapes carry the label position.
type Shape struct {
	Tool   Tool
	Points []image.Point
	Style  Style
	Text   string
}

// DefaultStyle is the style a new model starts with.
var DefaultStyle = Style{Width: 4, Color: color.RGBA{R: 255, A: 255}}

type cropState struct {
	rect     image.Rectangle
	anchor   image.Point
	dragging bool
}

// Model is the annotation state of the image being edited. It is not safe
// for concurrent use; the UI loop owns it.
type Model struct {
	strokes [len(toolNames)]strokeList
	tool    Tool
	style   Style
	text    string
	labels  []Label
	undo    []Tool
	crop    cropState
	session bool
}

// New returns an empty model with the default style.
func New() *Model {
	m := &Model{style: DefaultStyle}
	for _, t := range drawable {
		m.strokes[t] = newStrokeList()
	}
	return m
}

// Begin starts an annotation session. Pointer input is ignored outside one.
func (m *Model) Begin() { m.session = true }

// End finishes the session and discards all marks.
func (m *Model) End() {
	m.ClearAll()
	m.session = false
}

// InSession reports whether pointer input is being recorded.
func (m *Model) InSession() bool { return m.session }

// Tool returns the active tool.
func (m *Model) Tool() Tool { return m.tool }

// Style returns the style used for new strokes.
func (m *Model) Style() Style { return m.style }

// SetStyle changes the style used for strokes started from now on.
func (m *Model) SetStyle(s Style) { m.style = s }

// SetTool activates t. Selecting Text while Text is already active returns
// to ToolNone. An unfinished stroke of the previous tool is sealed first so
// only the active tool ever has an open stroke.
func (m *Model) SetTool(t Tool) {
	if t == m.tool && t == ToolText {
		m.tool = ToolNone
		return
	}
	if t == m.tool {
		return
	}
	m.EndPointerInput()
	if m.tool == ToolCrop {
		m.crop = cropState{}
	}
	m.tool = t
}

// FeedPointer records a pointer sample for the active tool.
func (m *Model) FeedPointer(pos image.Point, style Style) {
	if !m.session {
		return
	}
	switch {
	case m.tool.Drawable():
		m.strokes[m.tool].append(Sample{Pos: pos, Style: style})
	case m.tool == ToolCrop:
		if !m.crop.dragging {
			m.crop = cropState{anchor: pos, dragging: true}
		}
		m.crop.rect = image.Rectangle{Min: m.crop.anchor, Max: pos}.Canon()
	}
}

// EndPointerInput is called when the pointer is released. A non-empty open
// stroke is sealed and recorded in the undo log; an empty one is left alone.
func (m *Model) EndPointerInput() {
	switch {
	case m.tool.Drawable():
		if m.strokes[m.tool].seal() {
			m.undo = append(m.undo, m.tool)
		}
	case m.tool == ToolCrop:
		m.crop.dragging = false
	}
}

// Text returns the text being typed for the Text tool.
func (m *Model) Text() string { return m.text }

// SetText replaces the text buffer.
func (m *Model) SetText(s string) { m.text = s }

// TypeRune appends r to the text buffer.
func (m *Model) TypeRune(r rune) { m.text += string(r) }

// DeleteRune removes the last rune of the text buffer.
func (m *Model) DeleteRune() {
	if m.text == "" {
		return
	}
	r := []rune(m.text)
	m.text = string(r[:len(r)-1])
}

// CommitText places text at pos, resets the text buffer and deactivates the
// tool. Blank text is refused.
func (m *Model) CommitText(pos image.Point, text string, style Style) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	m.labels = append(m.labels, Label{Pos: pos, Text: text, Style: style})
	m.text = ""
	m.tool = ToolNone
	m.undo = append(m.undo, ToolText)
	return true
}

// Undo removes the most recent stroke or label, whichever tool made it.
func (m *Model) Undo() {
	n := len(m.undo)
	if n == 0 {
		return
	}
	t := m.undo[n-1]
	m.undo = m.undo[:n-1]
	switch {
	case t.Drawable():
		m.strokes[t].dropLastSealed()
	case t == ToolText:
		if l := len(m.labels); l > 0 {
			m.labels = m.labels[:l-1]
		}
	}
}

// UndoDepth returns the number of undoable entries.
func (m *Model) UndoDepth() int { return len(m.undo) }

// ClearAll drops every mark, the undo log and the crop candidate, and
// returns the tool to ToolNone.
func (m *Model) ClearAll() {
	for _, t := range drawable {
		m.strokes[t].reset()
	}
	m.labels = nil
	m.text = ""
	m.undo = nil
	m.crop = cropState{}
	m.tool = ToolNone
}

// Shapes returns the finished marks: strokes with at least two samples per
// drawable tool, followed by the text labels.
func (m *Model) Shapes() []Shape {
	var out []Shape
	for _, t := range drawable {
		for _, s := range m.strokes[t].sealed() {
			if sh, ok := strokeShape(t, s); ok {
				out = append(out, sh)
			}
		}
	}
	for _, l := range m.labels {
		out = append(out, Shape{Tool: ToolText, Points: []image.Point{l.Pos}, Style: l.Style, Text: l.Text})
	}
	return out
}

// Preview returns the stroke currently being drawn, if it is long enough to
// show.
func (m *Model) Preview() (Shape, bool) {
	if !m.tool.Drawable() {
		return Shape{}, false
	}
	return strokeShape(m.tool, *m.strokes[m.tool].open())
}

// Labels returns the committed text labels.
func (m *Model) Labels() []Label {
	return append([]Label(nil), m.labels...)
}

// Crop returns the crop candidate while the Crop tool is active.
func (m *Model) Crop() (image.Rectangle, bool) {
	if m.tool != ToolCrop || m.crop.rect.Empty() {
		return image.Rectangle{}, false
	}
	return m.crop.rect, true
}

// TakeCrop hands over the crop candidate and deactivates the Crop tool.
func (m *Model) TakeCrop() (image.Rectangle, bool) {
	r, ok := m.Crop()
	if !ok {
		return image.Rectangle{}, false
	}
	m.crop = cropState{}
	m.tool = ToolNone
	return r, true
}

func strokeShape(t Tool, s Stroke) (Shape, bool) {
	if len(s) < 2 {
		return Shape{}, false
	}
	pts := s.Points()
	if t != ToolPen {
		pts = []image.Point{pts[0], pts[len(pts)-1]}
	}
	return Shape{Tool: t, Points: pts, Style: s.Style()}, true
}
