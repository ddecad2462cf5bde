package state

// Just returns a publisher whose value is fixed at v. Every subscriber
// receives v once and nothing more.
func Just[T any](v T) Readable[T] {
	return oneTime[T]{pub: NewSeededPublisher(v)}
}

// oneTime hides Submit so the value can never change.
type oneTime[T any] struct {
	pub *Publisher[T]
}

func (o oneTime[T]) Current() (T, bool) {
	return o.pub.Current()
}

func (o oneTime[T]) Subscribe(sub Subscriber[T]) Subscription {
	return o.pub.Subscribe(sub)
}

// Readables converts a slice of concrete publishers for use with the
// slice-based combinators.
//
//	totals := state.Sum(state.Readables[int](counters))
func Readables[T any, P Readable[T]](pubs []P) []Readable[T] {
	out := make([]Readable[T], len(pubs))
	for i, p := range pubs {
		out[i] = p
	}
	return out
}
