// Package agent drives a runtime.App on a simulated terminal.
// It enables end-to-end tests and scripted interactions by exposing
// screen text and the widget tree rather than raw terminal I/O.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/odvcencio/furry-tally/backend"
	"github.com/odvcencio/furry-tally/backend/sim"
	"github.com/odvcencio/furry-tally/runtime"
)

// Common errors returned by Agent methods.
var (
	ErrTimeout        = errors.New("agent: operation timed out")
	ErrNotRunning     = errors.New("agent: app is not running")
	ErrAlreadyStarted = errors.New("agent: app already started")
)

// Config configures an Agent.
type Config struct {
	// Root is the widget tree to run.
	Root runtime.Widget

	// Width and Height set the terminal dimensions (default 80x24).
	Width, Height int

	// Poll is how often Wait helpers re-check the screen. Default is 10ms.
	Poll time.Duration

	// Timeout bounds every wait. Default is 2s.
	Timeout time.Duration

	Logger *slog.Logger
}

// Agent runs an app against a simulation backend.
type Agent struct {
	mu      sync.Mutex
	app     *runtime.App
	sim     *sim.Backend
	poll    time.Duration
	timeout time.Duration
	cancel  context.CancelFunc
	done    chan error
}

// New creates an agent. The app does not run until Start.
func New(cfg Config) *Agent {
	width, height := cfg.Width, cfg.Height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	poll := cfg.Poll
	if poll <= 0 {
		poll = 10 * time.Millisecond
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	be := sim.New(width, height)
	return &Agent{
		app: runtime.NewApp(runtime.AppConfig{
			Backend: be,
			Root:    cfg.Root,
			Logger:  cfg.Logger,
		}),
		sim:     be,
		poll:    poll,
		timeout: timeout,
	}
}

// App returns the driven app.
func (a *Agent) App() *runtime.App {
	return a.app
}

// Backend returns the underlying simulation backend.
func (a *Agent) Backend() *sim.Backend {
	return a.sim
}

// Start runs the app and waits for its first frame.
func (a *Agent) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.done != nil {
		a.mu.Unlock()
		return ErrAlreadyStarted
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.done = make(chan error, 1)
	done := a.done
	a.mu.Unlock()

	go func() { done <- a.app.Run(ctx) }()

	return a.waitUntil(func() bool { return a.app.Frames() > 0 }, "first frame")
}

// Stop cancels the app and waits for Run to return.
func (a *Agent) Stop() error {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.mu.Unlock()
	if done == nil {
		return ErrNotRunning
	}
	cancel()
	return a.Wait()
}

// Wait blocks until the app exits on its own, as after a Quit command.
// Cancellation is not reported as an error.
func (a *Agent) Wait() error {
	a.mu.Lock()
	done := a.done
	a.mu.Unlock()
	if done == nil {
		return ErrNotRunning
	}
	select {
	case err := <-done:
		done <- err
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	case <-time.After(a.timeout):
		return fmt.Errorf("%w: waiting for app to exit", ErrTimeout)
	}
}

// PressKey sends a non-rune key.
func (a *Agent) PressKey(key backend.Key) {
	a.sim.InjectKey(key, 0)
}

// Type sends each rune of text as a key press.
func (a *Agent) Type(text string) {
	for _, r := range text {
		a.sim.InjectRune(r)
	}
}

// CaptureText returns the raw text content of the screen.
func (a *Agent) CaptureText() string {
	return a.sim.Text()
}

// ContainsText checks if the given text appears on screen.
func (a *Agent) ContainsText(text string) bool {
	return strings.Contains(a.CaptureText(), text)
}

// FindText returns the position of text on screen, or (-1, -1) if not found.
func (a *Agent) FindText(text string) (x, y int) {
	for y, line := range strings.Split(a.CaptureText(), "\n") {
		if x := strings.Index(line, text); x >= 0 {
			return len([]rune(line[:x])), y
		}
	}
	return -1, -1
}

// WaitForText waits until text appears on screen.
func (a *Agent) WaitForText(text string) error {
	return a.waitUntil(func() bool { return a.ContainsText(text) }, fmt.Sprintf("text %q", text))
}

// WaitForNoText waits until text is gone from the screen.
func (a *Agent) WaitForNoText(text string) error {
	return a.waitUntil(func() bool { return !a.ContainsText(text) }, fmt.Sprintf("text %q to disappear", text))
}

func (a *Agent) waitUntil(cond func() bool, what string) error {
	deadline := time.Now().Add(a.timeout)
	for {
		if cond() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: waiting for %s", ErrTimeout, what)
		}
		time.Sleep(a.poll)
	}
}

// onLoop runs fn on the app goroutine and waits for it.
func (a *Agent) onLoop(fn func()) error {
	a.mu.Lock()
	running := a.done != nil
	a.mu.Unlock()
	if !running {
		fn()
		return nil
	}
	ran := make(chan struct{})
	a.app.StateScheduler().Schedule(func() {
		fn()
		close(ran)
	})
	select {
	case <-ran:
		return nil
	case <-time.After(a.timeout):
		return fmt.Errorf("%w: waiting for the app loop", ErrTimeout)
	}
}
