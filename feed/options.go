package feed

import (
	"log/slog"
	"time"
)

const defaultDebounce = 100 * time.Millisecond

type settings struct {
	logger   *slog.Logger
	debounce time.Duration
}

// Option configures a Board, Watcher, or Poller.
type Option func(*settings)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDebounce sets how long a Watcher waits for writes to settle.
func WithDebounce(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.debounce = d
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		logger:   slog.Default(),
		debounce: defaultDebounce,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
