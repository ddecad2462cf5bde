package state

// Merge derives a publisher emitting fn(a, b) over the latest values of both
// inputs whenever either emits. Nothing is emitted until both have a value.
func Merge[A, B, R any](a Readable[A], b Readable[B], fn func(A, B) R) *Publisher[R] {
	out := NewPublisher[R]()
	if a == nil || b == nil || fn == nil {
		return out
	}
	var (
		order    serial
		left     A
		right    B
		hasLeft  bool
		hasRight bool
	)
	emit := func() {
		if hasLeft && hasRight {
			out.Submit(fn(left, right))
		}
	}
	a.Subscribe(NewSubscriber(func(v A) {
		order.do(func() {
			left, hasLeft = v, true
			emit()
		})
	}))
	b.Subscribe(NewSubscriber(func(v B) {
		order.do(func() {
			right, hasRight = v, true
			emit()
		})
	}))
	return out
}

// Combine derives a publisher emitting the ordered latest values of every
// source whenever any of them emits, once all have a value. Each emission is a
// fresh slice. A nil source holds the zero value and never blocks emission.
// With no non-nil sources it emits immediately.
func Combine[T any](sources []Readable[T]) *Publisher[[]T] {
	out := NewPublisher[[]T]()
	missing := countLive(sources)
	if missing == 0 {
		out.Submit(make([]T, len(sources)))
		return out
	}
	var order serial
	latest := make([]T, len(sources))
	present := make([]bool, len(sources))
	for i, src := range sources {
		if src == nil {
			continue
		}
		slot := i
		src.Subscribe(NewSubscriber(func(v T) {
			order.do(func() {
				if !present[slot] {
					present[slot] = true
					missing--
				}
				latest[slot] = v
				if missing > 0 {
					return
				}
				values := make([]T, len(latest))
				copy(values, latest)
				out.Submit(values)
			})
		}))
	}
	return out
}

// CombineWith derives fn over the latest values of every source.
func CombineWith[T, R any](sources []Readable[T], fn func([]T) R) *Publisher[R] {
	return Map[[]T, R](Combine(sources), fn)
}
