package widgets

import (
	"testing"

	"github.com/odvcencio/furry-tally/runtime"
	"github.com/odvcencio/furry-tally/state"
)

type keyCatcher struct {
	Base
	caught int
}

func (k *keyCatcher) Measure(c runtime.Constraints) runtime.Size { return runtime.Size{} }
func (k *keyCatcher) Render(ctx runtime.RenderContext)           {}
func (k *keyCatcher) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if _, ok := msg.(runtime.KeyMsg); ok {
		k.caught++
		return runtime.Handled()
	}
	return runtime.Unhandled()
}

func TestColumn_FlexTakesRemainingRows(t *testing.T) {
	header := NewLabel(state.Just("header"))
	chart := NewBarChart(state.Just([]Bar{{Label: "A", Value: 1}}))
	footer := NewLabel(state.Just("footer"))
	col := NewColumn(header, chart, footer)
	col.SetFlex(1)

	be := renderInto(t, col, 20, 6)

	if got := chart.Bounds(); got.Y != 1 || got.Height != 4 {
		t.Fatalf("expected chart at y=1 height=4, got %+v", got)
	}
	if got := footer.Bounds(); got.Y != 5 {
		t.Fatalf("expected footer on last row, got %+v", got)
	}
	if be.Line(0) != "header" || be.Line(5) != "footer" {
		t.Fatalf("unexpected screen:\n%s", be.Text())
	}
}

func TestColumn_HandleMessageStopsAtFirstHandler(t *testing.T) {
	first := &keyCatcher{}
	second := &keyCatcher{}
	col := NewColumn(first, second)

	if !col.HandleMessage(runtime.KeyMsg{Rune: 'x'}).Handled {
		t.Fatalf("expected key to be handled")
	}
	if first.caught != 1 || second.caught != 0 {
		t.Fatalf("expected only first child to see the key, got %d/%d", first.caught, second.caught)
	}
	if col.HandleMessage(runtime.TickMsg{}).Handled {
		t.Fatalf("expected tick to be unhandled")
	}
}
