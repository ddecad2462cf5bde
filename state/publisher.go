// Package state provides the reactive publish/subscribe core used by widgets.
//
// A Publisher caches its latest value and pushes every submission to its
// subscriptions in submission order. Late subscribers receive the cached value
// first. Derived publishers are built with the free combinators in this package
// (Map, Merge, Combine, MapReduce, Compose).
package state

import "sync"

// EqualFunc compares two values for equality.
type EqualFunc[T any] func(a, b T) bool

// EqualComparable compares comparable values with ==.
func EqualComparable[T comparable](a, b T) bool {
	return a == b
}

// Readable is the capability shared by every publisher in this package.
type Readable[T any] interface {
	// Current returns the latest value and whether one has been published.
	Current() (T, bool)
	// Subscribe attaches sub and returns its subscription.
	Subscribe(sub Subscriber[T]) Subscription
}

// Publisher holds the latest value of a stream and its live subscriptions.
// The zero value is an empty publisher ready for use.
type Publisher[T any] struct {
	mu    sync.Mutex
	value T
	has   bool
	subs  []*subscription[T]
	equal EqualFunc[T]
}

// NewPublisher creates a publisher with no current value.
func NewPublisher[T any]() *Publisher[T] {
	return &Publisher[T]{}
}

// NewSeededPublisher creates a publisher whose current value is initial.
func NewSeededPublisher[T any](initial T) *Publisher[T] {
	return &Publisher[T]{value: initial, has: true}
}

// SetEqualFunc configures the equality check used to suppress redundant submissions.
// With no equality check every submission is published.
func (p *Publisher[T]) SetEqualFunc(fn EqualFunc[T]) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.equal = fn
	p.mu.Unlock()
}

// Current returns the latest value and whether one has been submitted.
func (p *Publisher[T]) Current() (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value, p.has
}

// Get returns the current value, or the zero value if none has been submitted.
func (p *Publisher[T]) Get() T {
	value, _ := p.Current()
	return value
}

// Submit records value as current and delivers it to every live subscription.
// Callbacks of plain subscribers run before Submit returns; a panicking
// callback propagates out of Submit. It reports whether the value was published.
func (p *Publisher[T]) Submit(value T) bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	if p.has && p.equal != nil && p.equal(p.value, value) {
		p.mu.Unlock()
		return false
	}
	p.value = value
	p.has = true
	subs := p.subs
	for _, sub := range subs {
		sub.enqueue(value)
	}
	p.mu.Unlock()

	for _, sub := range subs {
		sub.drain()
	}
	return true
}

// Subscribe registers sub. If a current value exists it is queued for sub
// before any later submission.
func (p *Publisher[T]) Subscribe(sub Subscriber[T]) Subscription {
	if p == nil || sub == nil {
		return cancelledSubscription{}
	}
	s := newSubscription(p, sub)
	p.mu.Lock()
	if p.has {
		s.enqueue(p.value)
	}
	subs := make([]*subscription[T], len(p.subs), len(p.subs)+1)
	copy(subs, p.subs)
	p.subs = append(subs, s)
	p.mu.Unlock()

	sub.OnSubscribe(s)
	return s
}

// SubscribeFunc registers fn with unbounded demand.
func (p *Publisher[T]) SubscribeFunc(fn func(T)) Subscription {
	return p.SubscribeWithScheduler(nil, fn)
}

// SubscribeWithScheduler registers fn, running each call on scheduler.
// If scheduler is nil, callbacks run synchronously.
func (p *Publisher[T]) SubscribeWithScheduler(scheduler Scheduler, fn func(T)) Subscription {
	if p == nil || fn == nil {
		return cancelledSubscription{}
	}
	return p.Subscribe(NewScheduledSubscriber(scheduler, fn))
}

// SubscriberCount returns the number of live subscriptions.
func (p *Publisher[T]) SubscriberCount() int {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subs)
}

func (p *Publisher[T]) remove(target *subscription[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, sub := range p.subs {
		if sub != target {
			continue
		}
		subs := make([]*subscription[T], 0, len(p.subs)-1)
		subs = append(subs, p.subs[:i]...)
		p.subs = append(subs, p.subs[i+1:]...)
		return
	}
}

// SubscribeFunc registers fn on any Readable with unbounded demand.
func SubscribeFunc[T any](src Readable[T], fn func(T)) Subscription {
	return SubscribeWithScheduler(src, nil, fn)
}

// SubscribeWithScheduler registers fn on any Readable, running each call on scheduler.
func SubscribeWithScheduler[T any](src Readable[T], scheduler Scheduler, fn func(T)) Subscription {
	if src == nil || fn == nil {
		return cancelledSubscription{}
	}
	return src.Subscribe(NewScheduledSubscriber(scheduler, fn))
}
