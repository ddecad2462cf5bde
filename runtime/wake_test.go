package runtime

import (
	"testing"

	"github.com/odvcencio/furry-tally/state"
)

func countingPost(want Message, accept bool) (func(Message) bool, *int) {
	n := 0
	return func(msg Message) bool {
		if msg == want {
			n++
		}
		return accept
	}, &n
}

func TestQueueScheduler_OneWakeupPerFlush(t *testing.T) {
	post, posted := countingPost(QueueFlushMsg{}, true)
	scheduler := NewQueueScheduler(nil, post)
	ran := 0

	for range 5 {
		scheduler.Schedule(func() { ran++ })
	}
	if *posted != 1 {
		t.Fatalf("expected a single wakeup, got %d", *posted)
	}
	if ran != 0 {
		t.Fatalf("expected callbacks to wait for the flush, got %d", ran)
	}

	scheduler.ack()
	if flushed := scheduler.Queue().Flush(); flushed != 5 {
		t.Fatalf("expected 5 callbacks flushed, got %d", flushed)
	}
	scheduler.Schedule(func() { ran++ })
	if *posted != 2 {
		t.Fatalf("expected a second wakeup after ack, got %d", *posted)
	}
}

func TestQueueScheduler_RetriesRejectedWakeup(t *testing.T) {
	post, attempts := countingPost(QueueFlushMsg{}, false)
	scheduler := NewQueueScheduler(state.NewQueue(), post)

	scheduler.Schedule(func() {})
	scheduler.Schedule(func() {})
	if *attempts != 2 {
		t.Fatalf("expected each schedule to retry a full mailbox, got %d", *attempts)
	}
	if n := scheduler.Queue().Len(); n != 2 {
		t.Fatalf("expected both callbacks queued, got %d", n)
	}
}

func TestInvalidator_CoalescesUntilAck(t *testing.T) {
	post, posted := countingPost(InvalidateMsg{}, true)
	inv := NewInvalidator(post)

	inv.Invalidate()
	inv.Invalidate()
	if *posted != 1 {
		t.Fatalf("expected 1 invalidate post, got %d", *posted)
	}
	inv.ack()
	inv.Invalidate()
	if *posted != 2 {
		t.Fatalf("expected 2 invalidate posts after ack, got %d", *posted)
	}
}

func TestInvalidator_ScheduleRunsInline(t *testing.T) {
	post, posted := countingPost(InvalidateMsg{}, true)
	inv := NewInvalidator(post)
	pub := state.NewSeededPublisher(1)
	var got []int

	pub.SubscribeWithScheduler(inv, func(v int) { got = append(got, v) })
	pub.Submit(2)

	if len(got) != 2 || got[1] != 2 {
		t.Fatalf("expected [1 2] delivered inline, got %v", got)
	}
	if *posted != 1 {
		t.Fatalf("expected coalesced invalidate, got %d", *posted)
	}
}

func TestNilSchedulers(t *testing.T) {
	var qs *QueueScheduler
	qs.Schedule(func() { t.Fatalf("expected nil scheduler to drop callbacks") })
	var inv *Invalidator
	inv.Invalidate()
}

func TestApp_InvalidateSchedulerRequestsRender(t *testing.T) {
	app := NewApp(AppConfig{})
	ran := false
	app.InvalidateScheduler().Schedule(func() { ran = true })
	if !ran {
		t.Fatalf("expected callback to run inline")
	}
	select {
	case msg := <-app.messages:
		if _, ok := msg.(InvalidateMsg); !ok {
			t.Fatalf("expected InvalidateMsg, got %T", msg)
		}
	default:
		t.Fatalf("expected an invalidate to be posted")
	}
}
