// Package backend abstracts the terminal surface the runtime draws on.
package backend

import "github.com/gdamore/tcell/v2"

// Style is the cell style used by every backend.
type Style = tcell.Style

// Color is a terminal color.
type Color = tcell.Color

// Key identifies a non-rune key.
type Key = tcell.Key

// Common keys.
const (
	KeyRune   = tcell.KeyRune
	KeyEnter  = tcell.KeyEnter
	KeyEscape = tcell.KeyEscape
	KeyCtrlC  = tcell.KeyCtrlC
	KeyTab    = tcell.KeyTab
	KeyUp     = tcell.KeyUp
	KeyDown   = tcell.KeyDown
	KeyPgUp   = tcell.KeyPgUp
	KeyPgDn   = tcell.KeyPgDn
	KeyHome   = tcell.KeyHome
	KeyEnd    = tcell.KeyEnd
)

// DefaultStyle returns the terminal's default style.
func DefaultStyle() Style {
	return tcell.StyleDefault
}

// Surface is anything cells can be written to.
type Surface interface {
	Size() (width, height int)
	SetContent(x, y int, mainc rune, combc []rune, style Style)
}

// Backend is a terminal the runtime can drive.
type Backend interface {
	Surface
	Init() error
	Fini()
	Clear()
	Show()
	HideCursor()
	// PollEvent blocks for the next event. It returns nil once the backend
	// has been finalized.
	PollEvent() Event
}

// Event is an input event from the terminal.
type Event interface {
	isEvent()
}

// KeyEvent is a key press.
type KeyEvent struct {
	Key   Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyEvent) isEvent() {}

// ResizeEvent reports a new terminal size.
type ResizeEvent struct {
	Width  int
	Height int
}

func (ResizeEvent) isEvent() {}
