package state

import (
	"context"
	"log/slog"
	"sync"
)

// EventQueue runs scheduled callbacks one at a time on a single dedicated
// goroutine, in the order they were scheduled. It is the handle passed to
// scheduled subscribers that must observe values on one consumer thread.
//
// A callback that panics is not recovered and terminates the program.
type EventQueue struct {
	mu      sync.Mutex
	pending []func()
	closed  bool
	wake    chan struct{}
	done    chan struct{}
	logger  *slog.Logger
}

// EventQueueOption configures an EventQueue.
type EventQueueOption func(*EventQueue)

// WithEventQueueLogger sets the logger for the queue.
// If not set, slog.Default() is used.
func WithEventQueueLogger(logger *slog.Logger) EventQueueOption {
	return func(q *EventQueue) {
		if logger != nil {
			q.logger = logger
		}
	}
}

// NewEventQueue creates a queue and starts its worker goroutine.
func NewEventQueue(opts ...EventQueueOption) *EventQueue {
	q := &EventQueue{
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(q)
	}
	go q.run()
	return q
}

// Schedule appends fn to the queue. It never blocks.
// Callbacks scheduled after Close are dropped.
func (q *EventQueue) Schedule(fn func()) {
	if q == nil || fn == nil {
		return
	}
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.logger.Debug("event queue closed, dropping callback")
		return
	}
	q.pending = append(q.pending, fn)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Wait blocks until every callback scheduled before the call has run,
// or ctx is done.
func (q *EventQueue) Wait(ctx context.Context) error {
	if q == nil {
		return nil
	}
	reached := make(chan struct{})
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return q.waitDone(ctx)
	}
	q.pending = append(q.pending, func() { close(reached) })
	q.mu.Unlock()
	select {
	case q.wake <- struct{}{}:
	default:
	}

	select {
	case <-reached:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting callbacks. Callbacks already queued still run.
// Close returns without waiting; use Done to wait for the worker to exit.
func (q *EventQueue) Close() {
	if q == nil {
		return
	}
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Done is closed once the queue is closed and every queued callback has run.
func (q *EventQueue) Done() <-chan struct{} {
	return q.done
}

func (q *EventQueue) waitDone(ctx context.Context) error {
	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *EventQueue) run() {
	defer close(q.done)
	for {
		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		closed := q.closed
		q.mu.Unlock()

		for _, fn := range batch {
			fn()
		}
		if len(batch) > 0 {
			continue
		}
		if closed {
			q.logger.Debug("event queue stopped")
			return
		}
		<-q.wake
	}
}
