package state

import "sync"

// serial runs tasks one at a time in submission order without holding a lock
// while a task runs. A task submitted from inside a running task, or from
// another goroutine while one is running, is run by the active caller after
// the current task finishes. Combinators use it to apply upstream deliveries.
type serial struct {
	mu      sync.Mutex
	pending []func()
	running bool
}

func (s *serial) do(task func()) {
	s.mu.Lock()
	s.pending = append(s.pending, task)
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	settled := false
	defer func() {
		if !settled {
			// A task panicked; later tasks run on the next call.
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
		}
	}()
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.running = false
			s.mu.Unlock()
			settled = true
			return
		}
		next := s.pending[0]
		s.pending[0] = nil
		s.pending = s.pending[1:]
		s.mu.Unlock()
		next()
	}
}
