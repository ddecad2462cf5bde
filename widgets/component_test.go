package widgets

import (
	"testing"

	"github.com/odvcencio/furry-tally/state"
)

func TestComponent_RebindResubscribes(t *testing.T) {
	pub := state.NewSeededPublisher(1)
	queue := state.NewQueue()
	var c Component
	var got []int
	Follow(&c, pub, func(v int) { got = append(got, v) })

	if c.Bound() {
		t.Fatalf("expected unbound component")
	}
	c.Bind(newTestServices(queue))
	queue.Flush()
	if !c.Bound() || len(got) != 1 {
		t.Fatalf("expected replay after bind, got %v", got)
	}

	c.Unbind()
	pub.Submit(2)
	queue.Flush()
	if len(got) != 1 {
		t.Fatalf("expected no deliveries while unbound, got %v", got)
	}
	if pub.SubscriberCount() != 0 {
		t.Fatalf("expected unbind to cancel, got %d subscribers", pub.SubscriberCount())
	}

	c.Bind(newTestServices(queue))
	c.Bind(newTestServices(queue))
	queue.Flush()
	if len(got) != 2 || got[1] != 2 {
		t.Fatalf("expected a single replay of the latest value, got %v", got)
	}
	if pub.SubscriberCount() != 1 {
		t.Fatalf("expected repeated bind to keep one subscription, got %d", pub.SubscriberCount())
	}
}

func TestFollow_NilSource(t *testing.T) {
	var c Component
	Follow[int](&c, nil, func(int) { t.Fatalf("expected nil source to be ignored") })
	c.Bind(newTestServices(state.NewQueue()))
}
