package runtime

import (
	"log/slog"
	"time"

	"github.com/odvcencio/furry-tally/state"
)

// Services is the handle a bound widget uses to reach its app. The zero
// value is unbound and every method on it is a no-op.
type Services struct {
	app *App
}

// Services returns a service handle for the app.
func (a *App) Services() Services {
	return Services{app: a}
}

func (s Services) isZero() bool {
	return s.app == nil
}

// Scheduler returns the scheduler that defers to the app goroutine.
func (s Services) Scheduler() state.Scheduler {
	if s.isZero() {
		return nil
	}
	return s.app.StateScheduler()
}

// Invalidate requests a render pass.
func (s Services) Invalidate() {
	if !s.isZero() {
		s.app.Invalidate()
	}
}

// Logger returns the app logger, or slog.Default when unbound.
func (s Services) Logger() *slog.Logger {
	if s.isZero() {
		return slog.Default()
	}
	return s.app.Logger()
}

// Post sends a message into the app loop without blocking.
func (s Services) Post(msg Message) bool {
	return !s.isZero() && s.app.tryPost(msg)
}

// Spawn runs effect under the app's task context.
func (s Services) Spawn(effect Effect) {
	if !s.isZero() {
		s.app.Spawn(effect)
	}
}

// Every calls fn on each interval until the app stops.
func (s Services) Every(interval time.Duration, fn func(time.Time) Message) {
	s.Spawn(Every(interval, fn))
}
