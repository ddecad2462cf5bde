package widgets

import (
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-tally/backend"
	"github.com/odvcencio/furry-tally/runtime"
	"github.com/odvcencio/furry-tally/scroll"
	"github.com/odvcencio/furry-tally/state"
)

// Bar is one row of a BarChart.
type Bar struct {
	Label string
	Value int64
	Style backend.Style
}

// BarChart draws one horizontal bar per row, scaled to the largest value.
// Rows beyond its height scroll with PgUp/PgDn/Home/End.
type BarChart struct {
	Component
	bars       []Bar
	viewport   scroll.Viewport
	fill       rune
	labelStyle backend.Style
}

// NewBarChart creates a chart that follows source once bound.
func NewBarChart(source state.Readable[[]Bar]) *BarChart {
	chart := &BarChart{
		fill:       '█',
		labelStyle: backend.DefaultStyle(),
	}
	if source != nil {
		bars, _ := source.Current()
		chart.setBars(bars)
	}
	Follow(&chart.Component, source, chart.setBars)
	return chart
}

func (b *BarChart) setBars(bars []Bar) {
	b.bars = bars
	b.viewport.SetContentSize(runtime.Size{Width: b.bounds.Width, Height: len(bars)})
}

// SetFill changes the rune bars are drawn with.
func (b *BarChart) SetFill(r rune) {
	b.fill = r
}

// Bars returns the bars last delivered to the chart.
func (b *BarChart) Bars() []Bar {
	return b.bars
}

// Offset returns the index of the first visible bar.
func (b *BarChart) Offset() int {
	return b.viewport.Offset().Y
}

func (b *BarChart) Measure(constraints runtime.Constraints) runtime.Size {
	width := 0
	for _, bar := range b.bars {
		width = max(width, runewidth.StringWidth(bar.Label)+len(strconv.FormatInt(bar.Value, 10))+3)
	}
	return constraints.Constrain(runtime.Size{Width: width, Height: len(b.bars)})
}

func (b *BarChart) Layout(bounds runtime.Rect) {
	b.Base.Layout(bounds)
	b.viewport.SetViewSize(runtime.Size{Width: bounds.Width, Height: bounds.Height})
	b.viewport.SetContentSize(runtime.Size{Width: bounds.Width, Height: len(b.bars)})
}

// Render draws "label |████ value" rows. Negative values draw no bar.
func (b *BarChart) Render(ctx runtime.RenderContext) {
	bounds := b.bounds
	if bounds.Width <= 0 || bounds.Height <= 0 || len(b.bars) == 0 {
		return
	}

	labelWidth, valueWidth := 0, 0
	var peak int64
	for _, bar := range b.bars {
		labelWidth = max(labelWidth, runewidth.StringWidth(bar.Label))
		valueWidth = max(valueWidth, len(strconv.FormatInt(bar.Value, 10)))
		peak = max(peak, bar.Value)
	}
	labelWidth = min(labelWidth, bounds.Width/3)
	barSpace := bounds.Width - labelWidth - valueWidth - 2

	start, end := b.viewport.VisibleRows()
	for i, bar := range b.bars[start:end] {
		y := bounds.Y + i
		x := bounds.X
		ctx.SetString(x, y, truncateString(bar.Label, labelWidth), b.labelStyle)
		x += labelWidth + 1

		length := 0
		if barSpace > 0 && peak > 0 && bar.Value > 0 {
			length = int(float64(bar.Value) / float64(peak) * float64(barSpace))
			if length == 0 {
				length = 1
			}
		}
		ctx.Fill(runtime.Rect{X: x, Y: y, Width: length, Height: 1}, b.fill, bar.Style)
		x += length + 1
		ctx.SetString(x, y, strconv.FormatInt(bar.Value, 10), b.labelStyle)
	}
}

func (b *BarChart) HandleMessage(msg runtime.Message) runtime.HandleResult {
	key, ok := msg.(runtime.KeyMsg)
	if !ok || len(b.bars) <= b.bounds.Height {
		return runtime.Unhandled()
	}
	before := b.viewport.Offset()
	switch key.Key {
	case backend.KeyPgDn:
		b.viewport.PageBy(1)
	case backend.KeyPgUp:
		b.viewport.PageBy(-1)
	case backend.KeyHome:
		b.viewport.ScrollToStart()
	case backend.KeyEnd:
		b.viewport.ScrollToEnd()
	default:
		return runtime.Unhandled()
	}
	if b.viewport.Offset() != before {
		b.Invalidate()
	}
	return runtime.Handled()
}
