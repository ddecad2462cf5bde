package state

// FlowPublisher is a reactive-streams publisher: it accepts a subscriber and
// signals it through OnSubscribe, then OnNext within granted demand.
// Foreign stream implementations meet this package through it.
type FlowPublisher[T any] interface {
	Subscribe(sub Subscriber[T])
}

// FlowPublisherFunc adapts a function into a FlowPublisher.
type FlowPublisherFunc[T any] func(sub Subscriber[T])

// Subscribe calls f(sub).
func (f FlowPublisherFunc[T]) Subscribe(sub Subscriber[T]) {
	if f == nil || sub == nil {
		return
	}
	f(sub)
}

// AsFlow exposes src to reactive-streams subscribers. Subscribers control
// delivery with Request; the current value, if any, is the first item and
// consumes one unit of demand.
func AsFlow[T any](src Readable[T]) FlowPublisher[T] {
	return FlowPublisherFunc[T](func(sub Subscriber[T]) {
		if src == nil {
			return
		}
		src.Subscribe(sub)
	})
}

// FromFlow subscribes to a foreign publisher with unbounded demand and
// republishes its items as a hot publisher. Completion leaves the last value
// in place. An error from the foreign publisher is re-panicked on the
// goroutine that signalled it.
func FromFlow[T any](src FlowPublisher[T]) *Publisher[T] {
	out := NewPublisher[T]()
	if src == nil {
		return out
	}
	src.Subscribe(NewCallbackSubscriber(Callbacks[T]{
		Next: func(v T) {
			out.Submit(v)
		},
	}))
	return out
}
