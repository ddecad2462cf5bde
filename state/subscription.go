package state

import (
	"math"
	"sync"
)

// Unbounded is the demand value treated as "no limit". Demand saturates here.
const Unbounded int64 = math.MaxInt64

// Subscription mediates demand between one publisher and one subscriber.
type Subscription interface {
	// Request grants permission to deliver n more values.
	Request(n int64)
	// Cancel stops delivery and releases the subscription.
	Cancel()
}

// subscription buffers values for one subscriber and delivers them as demand allows.
// Lock order is publisher before subscription; a subscription never takes its
// publisher's lock while holding its own.
type subscription[T any] struct {
	pub *Publisher[T]
	sub Subscriber[T]

	mu        sync.Mutex
	buf       []T
	head      int
	requested int64
	cancelled bool
	draining  bool
}

func newSubscription[T any](pub *Publisher[T], sub Subscriber[T]) *subscription[T] {
	return &subscription[T]{pub: pub, sub: sub}
}

// Request adds n to the outstanding demand and delivers buffered values.
func (s *subscription[T]) Request(n int64) {
	if n <= 0 {
		s.Cancel()
		s.sub.OnError(ErrNonPositiveRequest)
		return
	}
	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		return
	}
	if s.requested > Unbounded-n {
		s.requested = Unbounded
	} else {
		s.requested += n
	}
	s.mu.Unlock()
	s.drain()
}

// Cancel discards buffered values and unregisters from the publisher.
// No callback is invoked for this subscription once Cancel returns,
// apart from one already running on another goroutine.
func (s *subscription[T]) Cancel() {
	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		return
	}
	s.cancelled = true
	s.buf = nil
	s.head = 0
	s.mu.Unlock()
	if s.pub != nil {
		s.pub.remove(s)
	}
}

// IsCancelled reports whether Cancel has been called.
func (s *subscription[T]) IsCancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

func (s *subscription[T]) enqueue(value T) {
	s.mu.Lock()
	if !s.cancelled {
		s.buf = append(s.buf, value)
	}
	s.mu.Unlock()
}

// drain delivers buffered values while demand remains. Only one goroutine
// drains at a time; a nested or concurrent call returns immediately and the
// active drainer picks up whatever it added.
func (s *subscription[T]) drain() {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true
	s.mu.Unlock()

	settled := false
	defer func() {
		if !settled {
			// OnNext panicked.
			s.mu.Lock()
			s.draining = false
			s.mu.Unlock()
		}
	}()
	for {
		value, ok := s.next()
		if !ok {
			settled = true
			return
		}
		s.sub.OnNext(value)
	}
}

// next pops the head of the buffer if demand allows. When it cannot, it
// releases the drain claim under the same lock so no value is stranded.
func (s *subscription[T]) next() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelled || s.requested == 0 || s.head >= len(s.buf) {
		s.draining = false
		var zero T
		return zero, false
	}
	value := s.buf[s.head]
	var zero T
	s.buf[s.head] = zero
	s.head++
	if s.head == len(s.buf) {
		s.buf = s.buf[:0]
		s.head = 0
	}
	if s.requested != Unbounded {
		s.requested--
	}
	return value, true
}

// pending returns the number of buffered, undelivered values.
func (s *subscription[T]) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buf) - s.head
}

// cancelledSubscription is returned for nil publishers or subscribers.
type cancelledSubscription struct{}

func (cancelledSubscription) Request(int64)     {}
func (cancelledSubscription) Cancel()           {}
func (cancelledSubscription) IsCancelled() bool { return true }
