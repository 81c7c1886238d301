package annotate

import (
	"image"
	"image/color"
)

// Style is the width and colour a stroke is drawn with.
type Style struct {
	Width int
	Color color.RGBA
}

// Sample is a single pointer position recorded for a stroke.
type Sample struct {
	Pos   image.Point
	Style Style
}

// Stroke is one continuous pointer gesture. Only the style of the first
// sample is used when rendering.
type Stroke []Sample

// Style returns the style the stroke was started with.
func (s Stroke) Style() Style {
	if len(s) == 0 {
		return Style{}
	}
	return s[0].Style
}

// Points returns the sample positions in order.
func (s Stroke) Points() []image.Point {
	pts := make([]image.Point, len(s))
	for i, smp := range s {
		pts[i] = smp.Pos
	}
	return pts
}

// strokeList holds the strokes of one tool. The last element is always the
// open stroke still being drawn; everything before it is sealed.
type strokeList struct {
	strokes []Stroke
}

func newStrokeList() strokeList {
	return strokeList{strokes: []Stroke{nil}}
}

func (l *strokeList) open() *Stroke {
	if len(l.strokes) == 0 {
		l.strokes = []Stroke{nil}
	}
	return &l.strokes[len(l.strokes)-1]
}

func (l *strokeList) sealed() []Stroke {
	if len(l.strokes) == 0 {
		return nil
	}
	return l.strokes[:len(l.strokes)-1]
}

// append adds smp to the open stroke unless it repeats the previous sample.
func (l *strokeList) append(smp Sample) {
	open := l.open()
	if n := len(*open); n > 0 && (*open)[n-1] == smp {
		return
	}
	*open = append(*open, smp)
}

// seal closes a non-empty open stroke and starts a new placeholder.
func (l *strokeList) seal() bool {
	if len(*l.open()) == 0 {
		return false
	}
	l.strokes = append(l.strokes, nil)
	return true
}

// dropLastSealed removes the most recently sealed stroke. It reports false
// when there is none.
func (l *strokeList) dropLastSealed() bool {
	sealed := l.sealed()
	if len(sealed) == 0 {
		return false
	}
	last := len(sealed) - 1
	l.strokes = append(l.strokes[:last], l.strokes[last+1:]...)
	return true
}

func (l *strokeList) reset() {
	l.strokes = []Stroke{nil}
}
