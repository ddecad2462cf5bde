package state

import "sync"

// Subscriptions tracks and cancels multiple subscriptions.
type Subscriptions struct {
	mu    sync.Mutex
	subs  []Subscription
	sched Scheduler
}

// NewSubscriptions creates a Subscriptions with a default scheduler.
func NewSubscriptions(scheduler Scheduler) *Subscriptions {
	return &Subscriptions{sched: scheduler}
}

// SetScheduler updates the default scheduler.
func (s *Subscriptions) SetScheduler(scheduler Scheduler) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()
}

// Scheduler returns the default scheduler.
func (s *Subscriptions) Scheduler() Scheduler {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	scheduler := s.sched
	s.mu.Unlock()
	return scheduler
}

// Add tracks a subscription.
func (s *Subscriptions) Add(sub Subscription) {
	if s == nil || sub == nil {
		return
	}
	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()
}

// Len returns the number of tracked subscriptions.
func (s *Subscriptions) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Clear cancels all tracked subscriptions.
func (s *Subscriptions) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()
	for _, sub := range subs {
		sub.Cancel()
	}
}

// Observe subscribes fn to src using the group's default scheduler and tracks
// the subscription.
func Observe[T any](s *Subscriptions, src Readable[T], fn func(T)) Subscription {
	return ObserveWithScheduler(s, src, s.Scheduler(), fn)
}

// ObserveWithScheduler subscribes fn to src on scheduler and tracks the subscription.
// If scheduler is nil, callbacks run synchronously.
func ObserveWithScheduler[T any](s *Subscriptions, src Readable[T], scheduler Scheduler, fn func(T)) Subscription {
	if src == nil || fn == nil {
		return cancelledSubscription{}
	}
	sub := src.Subscribe(NewScheduledSubscriber(scheduler, fn))
	s.Add(sub)
	return sub
}
