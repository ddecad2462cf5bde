package state

// Map derives a publisher that submits fn(v) for every upstream value v.
// If src already has a value, the derived publisher is seeded before Map returns.
func Map[T, R any](src Readable[T], fn func(T) R) *Publisher[R] {
	out := NewPublisher[R]()
	if src == nil || fn == nil {
		return out
	}
	src.Subscribe(NewSubscriber(func(v T) {
		out.Submit(fn(v))
	}))
	return out
}

// Filter derives a publisher that forwards upstream values matching keep.
func Filter[T any](src Readable[T], keep func(T) bool) *Publisher[T] {
	out := NewPublisher[T]()
	if src == nil || keep == nil {
		return out
	}
	src.Subscribe(NewSubscriber(func(v T) {
		if keep(v) {
			out.Submit(v)
		}
	}))
	return out
}

// Distinct derives a publisher that skips values equal to the previous one.
func Distinct[T comparable](src Readable[T]) *Publisher[T] {
	out := NewPublisher[T]()
	out.SetEqualFunc(EqualComparable[T])
	if src == nil {
		return out
	}
	src.Subscribe(NewSubscriber(func(v T) {
		out.Submit(v)
	}))
	return out
}
