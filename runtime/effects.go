package runtime

import (
	"context"
	"time"
)

// After posts msg once delay has elapsed, unless the app stops first.
// A non-positive delay posts immediately.
func After(delay time.Duration, msg Message) Effect {
	return Effect{Run: func(ctx context.Context, post PostFunc) {
		if msg == nil || post == nil {
			return
		}
		if delay > 0 && !sleep(ctx, delay) {
			return
		}
		post(msg)
	}}
}

// Every calls fn on each tick of interval and posts what it returns.
// A nil result posts nothing. A non-positive interval never fires.
func Every(interval time.Duration, fn func(time.Time) Message) Effect {
	return Effect{Run: func(ctx context.Context, post PostFunc) {
		if interval <= 0 || fn == nil || post == nil {
			return
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if msg := fn(now); msg != nil {
					post(msg)
				}
			}
		}
	}}
}

// sleep waits for d and reports whether it elapsed before ctx was done.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
