package runtime

// FlushPolicy decides which loop messages drain the state queue.
// A QueueFlushMsg always drains it.
type FlushPolicy int

const (
	// FlushAlways drains on every message and tick.
	FlushAlways FlushPolicy = iota
	// FlushOnMessage drains on messages but not ticks.
	FlushOnMessage
	// FlushOnTick drains on ticks only.
	FlushOnTick
	// FlushManual drains on QueueFlushMsg only.
	FlushManual
)

func (p FlushPolicy) String() string {
	switch p {
	case FlushAlways:
		return "always"
	case FlushOnMessage:
		return "message"
	case FlushOnTick:
		return "tick"
	case FlushManual:
		return "manual"
	}
	return "unknown"
}

func (p FlushPolicy) flushes(msg Message) bool {
	switch msg.(type) {
	case QueueFlushMsg:
		return true
	case TickMsg:
		return p == FlushAlways || p == FlushOnTick
	}
	return p == FlushAlways || p == FlushOnMessage
}
