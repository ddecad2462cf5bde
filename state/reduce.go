package state

// MapReduce derives a running fold over the latest values of sources.
//
// The accumulator starts at identity. The first value from a source is folded
// in with add. When a source later moves from old to new, its stale
// contribution is retracted before the fresh one is applied:
//
//	acc = add(remove(acc, old), new)
//
// so each update costs one add and one remove regardless of how many sources
// there are. remove must be the exact inverse of add; a mismatched pair
// silently corrupts the total.
//
// The result is emitted once every source has a value and again after each
// update. Nil sources contribute nothing. With no non-nil sources, identity
// is emitted immediately.
func MapReduce[T, R any](sources []Readable[T], identity R, add, remove func(R, T) R) *Publisher[R] {
	out := NewPublisher[R]()
	live := countLive(sources)
	if live == 0 {
		out.Submit(identity)
		return out
	}
	if add == nil || remove == nil {
		return out
	}
	r := &reducer[T, R]{
		out:     out,
		acc:     identity,
		add:     add,
		remove:  remove,
		last:    make([]T, len(sources)),
		present: make([]bool, len(sources)),
		missing: live,
	}
	for i, src := range sources {
		if src == nil {
			continue
		}
		slot := i
		src.Subscribe(NewSubscriber(func(v T) {
			r.order.do(func() {
				r.apply(slot, v)
			})
		}))
	}
	return out
}

type reducer[T, R any] struct {
	order   serial
	out     *Publisher[R]
	acc     R
	add     func(R, T) R
	remove  func(R, T) R
	last    []T
	present []bool
	missing int
}

func (r *reducer[T, R]) apply(slot int, value T) {
	if r.present[slot] {
		r.acc = r.add(r.remove(r.acc, r.last[slot]), value)
	} else {
		r.acc = r.add(r.acc, value)
		r.present[slot] = true
		r.missing--
	}
	r.last[slot] = value
	if r.missing > 0 {
		return
	}
	r.out.Submit(r.acc)
}

func countLive[T any](sources []Readable[T]) int {
	n := 0
	for _, src := range sources {
		if src != nil {
			n++
		}
	}
	return n
}

// Sum derives the total of the latest values of sources.
func Sum[T Number](sources []Readable[T]) *Publisher[T] {
	var zero T
	return MapReduce(sources, zero,
		func(acc, v T) T { return acc + v },
		func(acc, v T) T { return acc - v },
	)
}

// Number is the set of types Sum can total.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}
