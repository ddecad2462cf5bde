package state

// Compose derives a publisher that follows the inner publisher selected by the
// latest outer value. When outer emits, the previous inner subscription is
// cancelled and fn(value) is subscribed instead. Only the selected inner
// publisher reaches downstream; values from a replaced inner are dropped even
// if they were already in flight. A nil inner selects nothing.
func Compose[T, R any](outer Readable[T], fn func(T) Readable[R]) *Publisher[R] {
	out := NewPublisher[R]()
	if outer == nil || fn == nil {
		return out
	}
	c := &composer[R]{out: out}
	outer.Subscribe(NewSubscriber(func(v T) {
		c.order.do(func() {
			c.switchTo(fn(v))
		})
	}))
	return out
}

// Flatten follows the inner publisher most recently emitted by outer.
func Flatten[R any](outer Readable[Readable[R]]) *Publisher[R] {
	return Compose(outer, func(inner Readable[R]) Readable[R] {
		return inner
	})
}

type composer[R any] struct {
	order      serial
	out        *Publisher[R]
	inner      Subscription
	generation uint64
}

// switchTo runs inside the serial order.
func (c *composer[R]) switchTo(next Readable[R]) {
	if c.inner != nil {
		c.inner.Cancel()
		c.inner = nil
	}
	c.generation++
	if next == nil {
		return
	}
	generation := c.generation
	c.inner = next.Subscribe(NewSubscriber(func(v R) {
		c.order.do(func() {
			if generation != c.generation {
				return
			}
			c.out.Submit(v)
		})
	}))
}
