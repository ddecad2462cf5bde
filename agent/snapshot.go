package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/odvcencio/furry-tally/runtime"
)

// Snapshot captures a structured view of the current UI state.
type Snapshot struct {
	Timestamp time.Time    `json:"timestamp"`
	Width     int          `json:"width"`
	Height    int          `json:"height"`
	Frames    int64        `json:"frames"`
	Text      string       `json:"text,omitempty"`
	Widgets   []WidgetInfo `json:"widgets,omitempty"`
}

// WidgetInfo describes a widget in the UI tree.
type WidgetInfo struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Text     string       `json:"text,omitempty"`
	Bounds   runtime.Rect `json:"bounds"`
	Children []WidgetInfo `json:"children,omitempty"`
}

type bounded interface {
	Bounds() runtime.Rect
}

type texter interface {
	Text() string
}

// Snapshot walks the widget tree on the app goroutine and captures the
// screen text.
func (a *Agent) Snapshot() (Snapshot, error) {
	width, height := a.sim.Size()
	snap := Snapshot{
		Timestamp: time.Now(),
		Width:     width,
		Height:    height,
	}
	err := a.onLoop(func() {
		if root := a.app.Root(); root != nil {
			snap.Widgets = []WidgetInfo{describe(root)}
		}
		snap.Frames = a.app.Frames()
	})
	if err != nil {
		return Snapshot{}, err
	}
	snap.Text = a.CaptureText()
	return snap, nil
}

func describe(w runtime.Widget) WidgetInfo {
	info := WidgetInfo{
		ID:   widgetID(w),
		Type: strings.TrimPrefix(fmt.Sprintf("%T", w), "*"),
	}
	if b, ok := w.(bounded); ok {
		info.Bounds = b.Bounds()
	}
	if t, ok := w.(texter); ok {
		info.Text = t.Text()
	}
	if cp, ok := w.(runtime.ChildProvider); ok {
		for _, child := range cp.ChildWidgets() {
			info.Children = append(info.Children, describe(child))
		}
	}
	return info
}

// widgetID identifies a widget by its address.
func widgetID(w runtime.Widget) string {
	return fmt.Sprintf("%p", w)
}

// FindByType returns every widget whose type name ends with typ, such as
// "Label" or "widgets.Label".
func (s Snapshot) FindByType(typ string) []WidgetInfo {
	var out []WidgetInfo
	findByTypeIn(s.Widgets, typ, &out)
	return out
}

func findByTypeIn(widgets []WidgetInfo, typ string, out *[]WidgetInfo) {
	for _, w := range widgets {
		if strings.HasSuffix(w.Type, typ) {
			*out = append(*out, w)
		}
		findByTypeIn(w.Children, typ, out)
	}
}
