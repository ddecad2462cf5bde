package runtime

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-tally/backend"
)

// Rect is a screen rectangle in cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Size is a width and height in cells.
type Size struct {
	Width  int
	Height int
}

// Constraints bound the size a widget may take during measurement.
type Constraints struct {
	MaxWidth  int
	MaxHeight int
}

// Tight returns constraints that only allow the given size.
func Tight(width, height int) Constraints {
	return Constraints{MaxWidth: width, MaxHeight: height}
}

// Constrain clamps size to the constraints.
func (c Constraints) Constrain(size Size) Size {
	return Size{
		Width:  max(0, min(size.Width, c.MaxWidth)),
		Height: max(0, min(size.Height, c.MaxHeight)),
	}
}

// Widget is a node in the UI tree.
type Widget interface {
	Measure(constraints Constraints) Size
	Layout(bounds Rect)
	Render(ctx RenderContext)
	HandleMessage(msg Message) HandleResult
}

// ChildProvider is implemented by widgets with children.
type ChildProvider interface {
	ChildWidgets() []Widget
}

// HandleResult reports whether a widget consumed a message and any commands
// it emitted.
type HandleResult struct {
	Handled  bool
	Commands []Command
}

// Handled reports the message as consumed.
func Handled() HandleResult {
	return HandleResult{Handled: true}
}

// Unhandled lets the message continue to other widgets.
func Unhandled() HandleResult {
	return HandleResult{}
}

// WithCommand reports the message as consumed and emits cmd.
func WithCommand(cmd Command) HandleResult {
	return HandleResult{Handled: true, Commands: []Command{cmd}}
}

// RenderContext provides context to widgets during rendering.
// All writes are clipped to Bounds.
type RenderContext struct {
	Surface backend.Surface
	Bounds  Rect
}

// Sub creates a new context for a child widget with adjusted bounds.
func (ctx RenderContext) Sub(bounds Rect) RenderContext {
	return RenderContext{Surface: ctx.Surface, Bounds: bounds}
}

// Set writes a single cell.
func (ctx RenderContext) Set(x, y int, r rune, style backend.Style) {
	if ctx.Surface == nil || !ctx.Bounds.Contains(x, y) {
		return
	}
	ctx.Surface.SetContent(x, y, r, nil, style)
}

// SetString writes s starting at (x, y) and returns the columns used.
func (ctx RenderContext) SetString(x, y int, s string, style backend.Style) int {
	start := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > ctx.Bounds.X+ctx.Bounds.Width {
			break
		}
		ctx.Set(x, y, r, style)
		x += w
	}
	return x - start
}

// Fill fills rect, clipped to the context bounds.
func (ctx RenderContext) Fill(rect Rect, r rune, style backend.Style) {
	for y := rect.Y; y < rect.Y+rect.Height; y++ {
		for x := rect.X; x < rect.X+rect.Width; x++ {
			ctx.Set(x, y, r, style)
		}
	}
}

// Clear fills the context bounds with spaces using the provided style.
func (ctx RenderContext) Clear(style backend.Style) {
	ctx.Fill(ctx.Bounds, ' ', style)
}
