package widgets

import "github.com/odvcencio/furry-tally/runtime"

// Column stacks children vertically. Each child gets its measured height;
// the flexible child, if any, takes whatever rows remain.
type Column struct {
	Base
	children []runtime.Widget
	flex     int
}

// NewColumn creates a column of children with no flexible child.
func NewColumn(children ...runtime.Widget) *Column {
	return &Column{children: children, flex: -1}
}

// SetFlex marks the child at index i as flexible.
func (c *Column) SetFlex(i int) {
	c.flex = i
}

func (c *Column) ChildWidgets() []runtime.Widget {
	return c.children
}

func (c *Column) Measure(constraints runtime.Constraints) runtime.Size {
	var size runtime.Size
	for _, child := range c.children {
		s := child.Measure(constraints)
		size.Width = max(size.Width, s.Width)
		size.Height += s.Height
	}
	return constraints.Constrain(size)
}

func (c *Column) Layout(bounds runtime.Rect) {
	c.Base.Layout(bounds)
	heights := make([]int, len(c.children))
	used := 0
	for i, child := range c.children {
		if i == c.flex {
			continue
		}
		heights[i] = child.Measure(runtime.Tight(bounds.Width, bounds.Height-used)).Height
		used += heights[i]
	}
	if c.flex >= 0 && c.flex < len(heights) {
		heights[c.flex] = max(0, bounds.Height-used)
	}
	y := bounds.Y
	for i, child := range c.children {
		child.Layout(runtime.Rect{X: bounds.X, Y: y, Width: bounds.Width, Height: heights[i]})
		y += heights[i]
	}
}

func (c *Column) Render(ctx runtime.RenderContext) {
	for _, child := range c.children {
		if bp, ok := child.(interface{ Bounds() runtime.Rect }); ok {
			child.Render(ctx.Sub(bp.Bounds()))
			continue
		}
		child.Render(ctx)
	}
}

// HandleMessage offers msg to each child in order until one handles it.
func (c *Column) HandleMessage(msg runtime.Message) runtime.HandleResult {
	for _, child := range c.children {
		if result := child.HandleMessage(msg); result.Handled {
			return result
		}
	}
	return runtime.Unhandled()
}
