package annotate

// Tool selects which annotation operation receives pointer and text input.
type Tool int

const (
	ToolNone Tool = iota
	ToolPen
	ToolLine
	ToolArrow
	ToolRect
	ToolCircle
	ToolText
	ToolCrop
)

// drawable lists the tools backed by a stroke list, in render order.
var drawable = [...]Tool{ToolPen, ToolLine, ToolArrow, ToolRect, ToolCircle}

var toolNames = [...]string{
	ToolNone:   "None",
	ToolPen:    "Pen",
	ToolLine:   "Line",
	ToolArrow:  "Arrow",
	ToolRect:   "Rect",
	ToolCircle: "Circle",
	ToolText:   "Text",
	ToolCrop:   "Crop",
}

func (t Tool) String() string {
	if t < ToolNone || t > ToolCrop {
		return "Unknown"
	}
	return toolNames[t]
}

// Drawable reports whether the tool accumulates strokes.
func (t Tool) Drawable() bool {
	return t >= ToolPen && t <= ToolCircle
}
