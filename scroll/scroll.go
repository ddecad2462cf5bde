// Package scroll provides viewport primitives for content taller or wider
// than the space a widget is given.
package scroll

import (
	"image"

	"github.com/odvcencio/furry-tally/runtime"
)

// Viewport tracks the visible region of scrollable content.
// The zero value is an empty viewport at offset (0, 0).
type Viewport struct {
	offset      image.Point
	contentSize runtime.Size
	viewSize    runtime.Size
	onChange    func(offset image.Point)
}

// SetContentSize updates the content size and clamps the offset.
func (v *Viewport) SetContentSize(size runtime.Size) {
	if v == nil {
		return
	}
	v.contentSize = size
	v.SetOffset(v.offset.X, v.offset.Y)
}

// ContentSize returns the content size.
func (v *Viewport) ContentSize() runtime.Size {
	if v == nil {
		return runtime.Size{}
	}
	return v.contentSize
}

// SetViewSize updates the view size and clamps the offset.
func (v *Viewport) SetViewSize(size runtime.Size) {
	if v == nil {
		return
	}
	v.viewSize = size
	v.SetOffset(v.offset.X, v.offset.Y)
}

// ViewSize returns the view size.
func (v *Viewport) ViewSize() runtime.Size {
	if v == nil {
		return runtime.Size{}
	}
	return v.viewSize
}

// Offset returns the current offset.
func (v *Viewport) Offset() image.Point {
	if v == nil {
		return image.Point{}
	}
	return v.offset
}

// SetOnChange sets a callback for offset updates.
func (v *Viewport) SetOnChange(fn func(offset image.Point)) {
	if v == nil {
		return
	}
	v.onChange = fn
}

// SetOffset sets the scroll offset.
func (v *Viewport) SetOffset(x, y int) {
	if v == nil {
		return
	}
	next := clampOffset(image.Point{X: x, Y: y}, v.contentSize, v.viewSize)
	if next == v.offset {
		return
	}
	v.offset = next
	if v.onChange != nil {
		v.onChange(v.offset)
	}
}

// ScrollBy adjusts the offset.
func (v *Viewport) ScrollBy(dx, dy int) {
	if v == nil {
		return
	}
	v.SetOffset(v.offset.X+dx, v.offset.Y+dy)
}

// PageBy scrolls vertically by whole view heights.
func (v *Viewport) PageBy(pages int) {
	if v == nil {
		return
	}
	v.ScrollBy(0, pages*max(1, v.viewSize.Height))
}

// ScrollToStart scrolls to the top.
func (v *Viewport) ScrollToStart() {
	v.SetOffset(0, 0)
}

// ScrollToEnd scrolls to the bottom.
func (v *Viewport) ScrollToEnd() {
	if v == nil {
		return
	}
	v.SetOffset(v.offset.X, v.MaxOffset().Y)
}

// MaxOffset returns the maximum scrollable offset.
func (v *Viewport) MaxOffset() image.Point {
	if v == nil {
		return image.Point{}
	}
	return image.Point{
		X: max(0, v.contentSize.Width-v.viewSize.Width),
		Y: max(0, v.contentSize.Height-v.viewSize.Height),
	}
}

// VisibleRows returns the half-open range of content rows in view.
func (v *Viewport) VisibleRows() (start, end int) {
	if v == nil {
		return 0, 0
	}
	start = v.offset.Y
	end = min(v.contentSize.Height, start+v.viewSize.Height)
	return start, max(start, end)
}

func clampOffset(offset image.Point, content runtime.Size, view runtime.Size) image.Point {
	maxX := max(0, content.Width-view.Width)
	maxY := max(0, content.Height-view.Height)
	offset.X = min(max(offset.X, 0), maxX)
	offset.Y = min(max(offset.Y, 0), maxY)
	return offset
}
