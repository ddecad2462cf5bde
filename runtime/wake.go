package runtime

import (
	"sync/atomic"

	"github.com/odvcencio/furry-tally/state"
)

// wakeup posts msg to the loop at most once until the loop acknowledges it.
// A failed post leaves it unarmed so the next signal retries.
type wakeup struct {
	msg     Message
	post    func(Message) bool
	pending atomic.Bool
}

func (w *wakeup) signal() {
	if w.post == nil || !w.pending.CompareAndSwap(false, true) {
		return
	}
	if !w.post(w.msg) {
		w.pending.Store(false)
	}
}

func (w *wakeup) ack() {
	w.pending.Store(false)
}

// QueueScheduler defers callbacks onto the app goroutine. Callbacks land in
// a state.Queue and a single QueueFlushMsg wakes the loop to drain it.
type QueueScheduler struct {
	queue *state.Queue
	wake  wakeup
}

// NewQueueScheduler wires queue to post. A nil queue gets a fresh one.
func NewQueueScheduler(queue *state.Queue, post func(Message) bool) *QueueScheduler {
	if queue == nil {
		queue = state.NewQueue()
	}
	return &QueueScheduler{
		queue: queue,
		wake:  wakeup{msg: QueueFlushMsg{}, post: post},
	}
}

// Schedule enqueues fn and wakes the loop if it is not already awake.
func (s *QueueScheduler) Schedule(fn func()) {
	if s == nil || fn == nil {
		return
	}
	s.queue.Schedule(fn)
	s.wake.signal()
}

// Queue returns the queue callbacks are deferred to.
func (s *QueueScheduler) Queue() *state.Queue {
	if s == nil {
		return nil
	}
	return s.queue
}

func (s *QueueScheduler) ack() {
	if s != nil {
		s.wake.ack()
	}
}

// Invalidator requests render passes, coalescing requests made between
// frames into one InvalidateMsg.
type Invalidator struct {
	wake wakeup
}

// NewInvalidator wires an invalidator to post.
func NewInvalidator(post func(Message) bool) *Invalidator {
	return &Invalidator{wake: wakeup{msg: InvalidateMsg{}, post: post}}
}

// Invalidate requests a render pass.
func (i *Invalidator) Invalidate() {
	if i != nil {
		i.wake.signal()
	}
}

// Schedule runs fn inline and then requests a render pass, so a subscriber
// on this scheduler repaints after every delivery.
func (i *Invalidator) Schedule(fn func()) {
	if fn == nil {
		return
	}
	fn()
	i.Invalidate()
}

func (i *Invalidator) ack() {
	if i != nil {
		i.wake.ack()
	}
}
