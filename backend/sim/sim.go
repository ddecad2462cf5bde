// Package sim provides an in-memory backend for tests.
package sim

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	tcellbackend "github.com/odvcencio/furry-tally/backend/tcell"
)

// Backend is a tcell simulation screen with helpers for inspecting output.
type Backend struct {
	*tcellbackend.Backend
	screen tcell.SimulationScreen
	width  int
	height int
}

// New creates a simulated terminal of the given size.
func New(width, height int) *Backend {
	screen := tcell.NewSimulationScreen("UTF-8")
	return &Backend{
		Backend: tcellbackend.Wrap(screen),
		screen:  screen,
		width:   width,
		height:  height,
	}
}

func (b *Backend) Init() error {
	if err := b.Backend.Init(); err != nil {
		return err
	}
	b.screen.SetSize(b.width, b.height)
	return nil
}

// InjectKey queues a key press.
func (b *Backend) InjectKey(key tcell.Key, r rune) {
	b.screen.InjectKey(key, r, tcell.ModNone)
}

// InjectRune queues a printable key press.
func (b *Backend) InjectRune(r rune) {
	b.InjectKey(tcell.KeyRune, r)
}

// Resize changes the simulated terminal size and posts a resize event.
func (b *Backend) Resize(width, height int) {
	b.width, b.height = width, height
	b.screen.SetSize(width, height)
	_ = b.screen.PostEvent(tcell.NewEventResize(width, height))
}

// Line returns the shown text of row y with trailing spaces trimmed.
func (b *Backend) Line(y int) string {
	cells, w, h := b.screen.GetContents()
	if y < 0 || y >= h {
		return ""
	}
	var sb strings.Builder
	for x := 0; x < w; x++ {
		cell := cells[y*w+x]
		if len(cell.Runes) == 0 {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteString(string(cell.Runes))
	}
	return strings.TrimRight(sb.String(), " ")
}

// Text returns every shown row joined with newlines.
func (b *Backend) Text() string {
	_, _, h := b.screen.GetContents()
	lines := make([]string, h)
	for y := range lines {
		lines[y] = b.Line(y)
	}
	return strings.Join(lines, "\n")
}
