package runtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/odvcencio/furry-tally/backend"
	"github.com/odvcencio/furry-tally/backend/sim"
	"github.com/odvcencio/furry-tally/state"
)

type textWidget struct {
	text    string
	mounted chan struct{}
	keys    []rune
}

func (w *textWidget) Measure(c Constraints) Size {
	return c.Constrain(Size{Width: len(w.text), Height: 1})
}

func (w *textWidget) Layout(bounds Rect) {}

func (w *textWidget) Render(ctx RenderContext) {
	ctx.SetString(ctx.Bounds.X, ctx.Bounds.Y, w.text, backend.DefaultStyle())
}

func (w *textWidget) HandleMessage(msg Message) HandleResult {
	key, ok := msg.(KeyMsg)
	if !ok {
		return Unhandled()
	}
	if key.Rune == 'q' {
		return WithCommand(Quit{})
	}
	w.keys = append(w.keys, key.Rune)
	return Handled()
}

func (w *textWidget) Mount() {
	if w.mounted != nil {
		close(w.mounted)
	}
}

func (w *textWidget) Unmount() {}

func waitFor(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestApp_RunWithoutBackend(t *testing.T) {
	app := NewApp(AppConfig{})
	if err := app.Run(context.Background()); !errors.Is(err, ErrNoBackend) {
		t.Fatalf("expected ErrNoBackend, got %v", err)
	}
}

func TestApp_RenderDrawsRoot(t *testing.T) {
	be := sim.New(20, 3)
	if err := be.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer be.Fini()

	app := NewApp(AppConfig{Backend: be, Root: &textWidget{text: "hello"}})
	app.render()

	if got := be.Line(0); got != "hello" {
		t.Fatalf("expected hello on first row, got %q", got)
	}
	if app.Frames() != 1 {
		t.Fatalf("expected 1 frame, got %d", app.Frames())
	}
}

func TestApp_QuitCommandStopsRun(t *testing.T) {
	be := sim.New(20, 3)
	root := &textWidget{text: "tally", mounted: make(chan struct{})}
	app := NewApp(AppConfig{Backend: be, Root: root})

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()
	waitFor(t, root.mounted, "mount")

	be.InjectRune('x')
	be.InjectRune('q')

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean exit, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("app did not quit")
	}
	if len(root.keys) != 1 || root.keys[0] != 'x' {
		t.Fatalf("expected x to reach the root before quit, got %q", string(root.keys))
	}
}

func TestApp_StateSchedulerDeliversOnLoop(t *testing.T) {
	be := sim.New(20, 3)
	root := &textWidget{mounted: make(chan struct{})}
	app := NewApp(AppConfig{Backend: be, Root: root})
	pub := state.NewPublisher[int]()

	var got []int
	seen := make(chan struct{})
	pub.SubscribeWithScheduler(app.StateScheduler(), func(v int) {
		got = append(got, v)
		if v == 99 {
			close(seen)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	waitFor(t, root.mounted, "mount")

	go func() {
		for i := 0; i < 100; i++ {
			pub.Submit(i)
		}
	}()
	waitFor(t, seen, "last value")
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(got) != 100 {
		t.Fatalf("expected 100 values, got %d", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("expected %d at index %d, got %d", i, i, v)
		}
	}
}
