package state

import (
	"fmt"
	"sync"
)

// Subscriber receives signals from a publisher. The method set follows the
// reactive-streams protocol so subscribers can attach to foreign publishers.
type Subscriber[T any] interface {
	OnSubscribe(sub Subscription)
	OnNext(value T)
	OnError(err error)
	OnComplete()
}

// Callbacks configures a callback subscriber.
type Callbacks[T any] struct {
	// Next receives each value.
	Next func(T)
	// Error receives a terminal error. If nil, the error is re-panicked.
	Error func(error)
	// Complete is called when a foreign publisher completes.
	Complete func()
	// Scheduler runs every callback. If nil, callbacks run synchronously
	// on the delivering goroutine. It must run tasks in the order scheduled.
	Scheduler Scheduler
}

type callbackSubscriber[T any] struct {
	callbacks Callbacks[T]

	mu  sync.Mutex
	sub Subscription
}

// NewSubscriber creates a subscriber that requests unbounded demand and calls
// fn synchronously for each value.
func NewSubscriber[T any](fn func(T)) Subscriber[T] {
	return NewCallbackSubscriber(Callbacks[T]{Next: fn})
}

// NewScheduledSubscriber creates a subscriber whose calls to fn run on scheduler.
// Calls run in delivery order. A call that runs after the subscription was
// cancelled does nothing.
func NewScheduledSubscriber[T any](scheduler Scheduler, fn func(T)) Subscriber[T] {
	return NewCallbackSubscriber(Callbacks[T]{Next: fn, Scheduler: scheduler})
}

// NewCallbackSubscriber creates a subscriber from callbacks.
func NewCallbackSubscriber[T any](callbacks Callbacks[T]) Subscriber[T] {
	return &callbackSubscriber[T]{callbacks: callbacks}
}

func (c *callbackSubscriber[T]) OnSubscribe(sub Subscription) {
	if sub == nil {
		return
	}
	c.mu.Lock()
	c.sub = sub
	c.mu.Unlock()
	sub.Request(Unbounded)
}

func (c *callbackSubscriber[T]) OnNext(value T) {
	if c.callbacks.Next == nil {
		return
	}
	c.run(true, func() {
		c.callbacks.Next(value)
	})
}

func (c *callbackSubscriber[T]) OnError(err error) {
	// Errors are terminal and arrive after cancellation, so they are never guarded.
	c.run(false, func() {
		if c.callbacks.Error == nil {
			panic(fmt.Errorf("state: unhandled subscriber error: %w", err))
		}
		c.callbacks.Error(err)
	})
}

func (c *callbackSubscriber[T]) OnComplete() {
	if c.callbacks.Complete == nil {
		return
	}
	c.run(false, c.callbacks.Complete)
}

func (c *callbackSubscriber[T]) run(guard bool, fn func()) {
	if c.callbacks.Scheduler == nil {
		fn()
		return
	}
	c.callbacks.Scheduler.Schedule(func() {
		if guard && c.cancelled() {
			return
		}
		fn()
	})
}

func (c *callbackSubscriber[T]) cancelled() bool {
	c.mu.Lock()
	sub := c.sub
	c.mu.Unlock()
	if sub == nil {
		return false
	}
	if cs, ok := sub.(interface{ IsCancelled() bool }); ok {
		return cs.IsCancelled()
	}
	return false
}
