package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/odvcencio/furry-tally/backend"
	"github.com/odvcencio/furry-tally/state"
)

// ErrNoBackend is returned by Run when the app has no backend.
var ErrNoBackend = errors.New("runtime: backend is required")

// UpdateFunc handles a message and returns true if a render is needed.
type UpdateFunc func(app *App, msg Message) bool

// CommandHandler handles commands emitted by widgets.
// Return true if the command requires a render.
type CommandHandler func(cmd Command) bool

// AppConfig configures a runtime App.
type AppConfig struct {
	Backend        backend.Backend
	Root           Widget
	Update         UpdateFunc
	CommandHandler CommandHandler
	MessageBuffer  int
	TickRate       time.Duration
	StateQueue     *state.Queue
	FlushPolicy    FlushPolicy
	Logger         *slog.Logger
}

// App runs a widget tree against a terminal backend.
//
// The goroutine calling Run is the only one that flushes the state queue,
// renders, or touches the widget tree. Subscribers scheduled through
// StateScheduler therefore always run on it.
type App struct {
	backend        backend.Backend
	root           Widget
	update         UpdateFunc
	commandHandler CommandHandler
	messages       chan Message
	tickRate       time.Duration
	stateQueue     *state.Queue
	queueScheduler *QueueScheduler
	flushPolicy    FlushPolicy
	invalidator    *Invalidator
	logger         *slog.Logger
	taskCtx        context.Context
	taskCancel     context.CancelFunc
	pendingMu      sync.Mutex
	pendingEffects []Effect

	running  atomic.Bool
	attached bool
	dirty    bool
	renderMu sync.Mutex
	frames   atomic.Int64
}

// NewApp creates a new App from config.
func NewApp(cfg AppConfig) *App {
	bufferSize := cfg.MessageBuffer
	if bufferSize <= 0 {
		bufferSize = 128
	}
	queue := cfg.StateQueue
	if queue == nil {
		queue = state.NewQueue()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	app := &App{
		backend:        cfg.Backend,
		root:           cfg.Root,
		update:         cfg.Update,
		commandHandler: cfg.CommandHandler,
		messages:       make(chan Message, bufferSize),
		tickRate:       cfg.TickRate,
		stateQueue:     queue,
		flushPolicy:    cfg.FlushPolicy,
		logger:         logger,
	}
	app.queueScheduler = NewQueueScheduler(queue, app.tryPost)
	app.invalidator = NewInvalidator(app.tryPost)
	return app
}

// StateQueue returns the app's state queue.
func (a *App) StateQueue() *state.Queue {
	if a == nil {
		return nil
	}
	return a.stateQueue
}

// StateScheduler returns a scheduler that defers callbacks to the app
// goroutine and wakes the loop to flush them.
func (a *App) StateScheduler() state.Scheduler {
	if a == nil || a.queueScheduler == nil {
		return nil
	}
	return a.queueScheduler
}

// InvalidateScheduler returns a scheduler that invalidates the render pass.
func (a *App) InvalidateScheduler() state.Scheduler {
	if a == nil || a.invalidator == nil {
		return nil
	}
	return a.invalidator
}

// Invalidate requests a render pass.
func (a *App) Invalidate() {
	if a == nil || a.invalidator == nil {
		return
	}
	a.invalidator.Invalidate()
}

// Logger returns the app logger.
func (a *App) Logger() *slog.Logger {
	if a == nil || a.logger == nil {
		return slog.Default()
	}
	return a.logger
}

// Frames returns the number of completed render passes.
func (a *App) Frames() int64 {
	if a == nil {
		return 0
	}
	return a.frames.Load()
}

// PostQueueFlush requests a state queue flush.
func (a *App) PostQueueFlush() {
	a.Post(QueueFlushMsg{})
}

// Spawn starts an effect using the app task context.
// If Run has not started, the effect is queued until start.
func (a *App) Spawn(effect Effect) {
	if a == nil || effect.Run == nil {
		return
	}
	a.pendingMu.Lock()
	if a.taskCtx == nil {
		a.pendingEffects = append(a.pendingEffects, effect)
		a.pendingMu.Unlock()
		return
	}
	a.pendingMu.Unlock()
	a.runEffect(effect)
}

// SetRoot swaps the root widget. While running it must be called from the
// app goroutine.
func (a *App) SetRoot(root Widget) {
	if a.attached {
		a.detach(a.root)
		a.attach(root)
		a.dirty = true
	}
	a.root = root
}

// Root returns the root widget.
func (a *App) Root() Widget {
	return a.root
}

// Post sends a message to the event loop, dropping it when the buffer is full.
func (a *App) Post(msg Message) {
	if !a.tryPost(msg) && a != nil {
		a.Logger().Debug("runtime: message dropped", "type", fmt.Sprintf("%T", msg))
	}
}

// TryPost sends a message to the event loop without blocking.
func (a *App) TryPost(msg Message) bool {
	return a.tryPost(msg)
}

func (a *App) tryPost(msg Message) bool {
	if a == nil || a.messages == nil {
		return false
	}
	select {
	case a.messages <- msg:
		return true
	default:
		return false
	}
}

// Run starts the event loop until quit or context cancellation.
func (a *App) Run(ctx context.Context) error {
	if a.backend == nil {
		return ErrNoBackend
	}
	if ctx == nil {
		ctx = context.Background()
	}
	taskCtx, taskCancel := context.WithCancel(ctx)
	a.pendingMu.Lock()
	a.taskCtx = taskCtx
	a.taskCancel = taskCancel
	a.pendingMu.Unlock()
	defer func() {
		taskCancel()
		a.pendingMu.Lock()
		a.taskCtx = nil
		a.taskCancel = nil
		a.pendingMu.Unlock()
	}()
	if err := a.backend.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer a.backend.Fini()

	a.backend.HideCursor()
	a.attach(a.root)
	defer a.detach(a.root)

	if a.update == nil {
		a.update = DefaultUpdate
	}

	a.running.Store(true)
	a.logger.Debug("runtime: app started", "flush", a.flushPolicy, "tick", a.tickRate)
	defer a.logger.Debug("runtime: app stopped")

	a.startPendingEffects()

	go a.pollEvents()

	var ticker *time.Ticker
	var ticks <-chan time.Time
	if a.tickRate > 0 {
		ticker = time.NewTicker(a.tickRate)
		defer ticker.Stop()
		ticks = ticker.C
	}

	a.queueScheduler.ack()
	a.stateQueue.Flush()
	a.render()

	for a.running.Load() {
		var msg Message
		select {
		case <-ctx.Done():
			a.running.Store(false)
			a.cancelTasks()
		case msg = <-a.messages:
			if a.update(a, msg) {
				a.dirty = true
			}
		case now := <-ticks:
			msg = TickMsg{Time: now}
			if a.update(a, msg) {
				a.dirty = true
			}
		}

		if !a.running.Load() {
			continue
		}

		if msg != nil {
			if a.flushQueueIfNeeded(msg) {
				a.dirty = true
			}
			if _, ok := msg.(InvalidateMsg); ok && a.invalidator != nil {
				a.invalidator.ack()
			}
		}

		if a.dirty {
			a.render()
			a.dirty = false
		}
	}

	return ctx.Err()
}

// DefaultUpdate dispatches messages to the root widget and handles the
// commands it emits. An unhandled Ctrl+C quits.
func DefaultUpdate(app *App, msg Message) bool {
	if app == nil {
		return false
	}

	switch m := msg.(type) {
	case ResizeMsg:
		app.dispatchMessage(msg)
		return true
	case KeyMsg:
		result := app.dispatch(msg)
		if !result.Handled && m.Key == backend.KeyCtrlC {
			return app.handleCommand(Quit{})
		}
		return app.handleResult(result)
	case QueueFlushMsg:
		return false
	case InvalidateMsg:
		return true
	default:
		return app.dispatchMessage(msg)
	}
}

func (a *App) dispatch(msg Message) HandleResult {
	if a == nil || a.root == nil {
		return Unhandled()
	}
	return a.root.HandleMessage(msg)
}

func (a *App) dispatchMessage(msg Message) bool {
	return a.handleResult(a.dispatch(msg))
}

func (a *App) handleResult(result HandleResult) bool {
	dirty := result.Handled
	for _, cmd := range result.Commands {
		if a.handleCommand(cmd) {
			dirty = true
		}
	}
	return dirty
}

func (a *App) handleCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case Quit:
		a.running.Store(false)
		a.cancelTasks()
		return false
	case Refresh:
		if a.backend != nil {
			a.backend.Clear()
		}
		return true
	case SendMsg:
		if c.Message != nil {
			a.Post(c.Message)
		}
		return false
	case Effect:
		a.runEffect(c)
		return false
	default:
		if a.commandHandler != nil {
			return a.commandHandler(cmd)
		}
		return false
	}
}

// ExecuteCommand runs a command through the app handler.
func (a *App) ExecuteCommand(cmd Command) bool {
	if a == nil {
		return false
	}
	return a.handleCommand(cmd)
}

func (a *App) pollEvents() {
	for a.running.Load() {
		ev := a.backend.PollEvent()
		if ev == nil {
			return
		}

		switch e := ev.(type) {
		case backend.KeyEvent:
			a.Post(KeyMsg{
				Key:   e.Key,
				Rune:  e.Rune,
				Alt:   e.Alt,
				Ctrl:  e.Ctrl,
				Shift: e.Shift,
			})
		case backend.ResizeEvent:
			a.Post(ResizeMsg{Width: e.Width, Height: e.Height})
		}
	}
}

func (a *App) render() {
	a.renderMu.Lock()
	defer a.renderMu.Unlock()

	if a.backend == nil {
		return
	}
	w, h := a.backend.Size()
	bounds := Rect{Width: w, Height: h}
	a.backend.Clear()
	if a.root != nil {
		a.root.Layout(bounds)
		a.root.Render(RenderContext{Surface: a.backend, Bounds: bounds})
	}
	a.backend.Show()
	a.frames.Add(1)
}

func (a *App) attach(root Widget) {
	if root == nil {
		a.attached = true
		return
	}
	MountTree(root)
	BindTree(root, a.Services())
	a.attached = true
}

func (a *App) detach(root Widget) {
	a.attached = false
	if root == nil {
		return
	}
	UnbindTree(root)
	UnmountTree(root)
}

func (a *App) taskContext() context.Context {
	a.pendingMu.Lock()
	defer a.pendingMu.Unlock()
	if a.taskCtx != nil {
		return a.taskCtx
	}
	return context.Background()
}

func (a *App) cancelTasks() {
	if a == nil {
		return
	}
	a.pendingMu.Lock()
	cancel := a.taskCancel
	a.pendingMu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (a *App) runEffect(effect Effect) {
	if a == nil || effect.Run == nil {
		return
	}
	ctx := a.taskContext()
	post := a.tryPost
	go effect.Run(ctx, post)
}

func (a *App) startPendingEffects() {
	if a == nil {
		return
	}
	a.pendingMu.Lock()
	effects := a.pendingEffects
	a.pendingEffects = nil
	a.pendingMu.Unlock()
	for _, effect := range effects {
		a.runEffect(effect)
	}
}

func (a *App) flushQueueIfNeeded(msg Message) bool {
	if a == nil || a.stateQueue == nil {
		return false
	}
	if !a.flushPolicy.flushes(msg) {
		return false
	}
	if a.queueScheduler != nil {
		a.queueScheduler.ack()
	}
	return a.stateQueue.Flush() > 0
}
