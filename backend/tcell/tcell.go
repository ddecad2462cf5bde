// Package tcell provides a backend over a tcell screen.
package tcell

import (
	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-tally/backend"
)

// Backend drives a tcell.Screen.
type Backend struct {
	screen tcell.Screen
}

// New creates a backend for the controlling terminal.
func New() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return Wrap(screen), nil
}

// Wrap adapts an existing screen.
func Wrap(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

// Screen returns the underlying screen.
func (b *Backend) Screen() tcell.Screen {
	return b.screen
}

func (b *Backend) Init() error {
	return b.screen.Init()
}

func (b *Backend) Fini() {
	b.screen.Fini()
}

func (b *Backend) Clear() {
	b.screen.Clear()
}

func (b *Backend) Show() {
	b.screen.Show()
}

func (b *Backend) HideCursor() {
	b.screen.HideCursor()
}

func (b *Backend) Size() (int, int) {
	return b.screen.Size()
}

func (b *Backend) SetContent(x, y int, mainc rune, combc []rune, style backend.Style) {
	b.screen.SetContent(x, y, mainc, combc, style)
}

// PollEvent translates the next tcell event. Events the runtime does not
// understand are skipped.
func (b *Backend) PollEvent() backend.Event {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if out := Translate(ev); out != nil {
			return out
		}
	}
}

// Translate converts a tcell event, returning nil for unsupported kinds.
func Translate(ev tcell.Event) backend.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		mod := e.Modifiers()
		return backend.KeyEvent{
			Key:   e.Key(),
			Rune:  e.Rune(),
			Alt:   mod&tcell.ModAlt != 0,
			Ctrl:  mod&tcell.ModCtrl != 0,
			Shift: mod&tcell.ModShift != 0,
		}
	case *tcell.EventResize:
		w, h := e.Size()
		return backend.ResizeEvent{Width: w, Height: h}
	default:
		return nil
	}
}
