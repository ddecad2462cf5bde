package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-tally/backend"
	"github.com/odvcencio/furry-tally/runtime"
	"github.com/odvcencio/furry-tally/state"
)

// Label is a single line of text bound to a publisher.
// The text only changes on the scheduler it is bound with.
type Label struct {
	Component
	text      string
	style     backend.Style
	alignment Alignment
}

// NewLabel creates a label that follows source once bound.
func NewLabel(source state.Readable[string]) *Label {
	label := &Label{
		style:     backend.DefaultStyle(),
		alignment: AlignLeft,
	}
	if source != nil {
		label.text, _ = source.Current()
	}
	Follow(&label.Component, source, func(text string) {
		label.text = text
	})
	return label
}

// Text returns the current label text.
func (l *Label) Text() string {
	return l.text
}

// SetStyle sets the label style.
func (l *Label) SetStyle(style backend.Style) {
	l.style = style
}

// SetAlignment sets text alignment.
func (l *Label) SetAlignment(align Alignment) {
	l.alignment = align
}

// Measure returns the size needed for the label.
func (l *Label) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{
		Width:  runewidth.StringWidth(l.text),
		Height: 1,
	})
}

// Render draws the label.
func (l *Label) Render(ctx runtime.RenderContext) {
	bounds := l.bounds
	if bounds.Width == 0 || bounds.Height == 0 {
		return
	}
	text := truncateString(l.text, bounds.Width)
	x := bounds.X + alignOffset(l.alignment, bounds.Width, runewidth.StringWidth(text))
	ctx.SetString(x, bounds.Y, text, l.style)
}
