package runtime

import (
	"testing"
	"time"
)

func TestFlushPolicy_Flushes(t *testing.T) {
	tick := TickMsg{Time: time.Now()}
	key := KeyMsg{Rune: 'x'}
	cases := []struct {
		policy FlushPolicy
		msg    Message
		want   bool
	}{
		{FlushAlways, tick, true},
		{FlushAlways, key, true},
		{FlushOnMessage, tick, false},
		{FlushOnMessage, key, true},
		{FlushOnTick, tick, true},
		{FlushOnTick, key, false},
		{FlushManual, tick, false},
		{FlushManual, key, false},
		{FlushManual, QueueFlushMsg{}, true},
		{FlushOnTick, QueueFlushMsg{}, true},
	}
	for _, tc := range cases {
		if got := tc.policy.flushes(tc.msg); got != tc.want {
			t.Fatalf("policy %s on %T: expected %v, got %v", tc.policy, tc.msg, tc.want, got)
		}
	}
}

func TestApp_FlushQueueIfNeeded(t *testing.T) {
	app := NewApp(AppConfig{FlushPolicy: FlushOnTick})
	ran := 0
	app.StateScheduler().Schedule(func() { ran++ })

	if app.flushQueueIfNeeded(KeyMsg{Rune: 'x'}) {
		t.Fatalf("expected key message not to flush under tick policy")
	}
	if !app.flushQueueIfNeeded(TickMsg{Time: time.Now()}) {
		t.Fatalf("expected tick to flush")
	}
	if ran != 1 {
		t.Fatalf("expected 1 callback, got %d", ran)
	}
	if app.flushQueueIfNeeded(QueueFlushMsg{}) {
		t.Fatalf("expected empty queue to report nothing flushed")
	}
}
