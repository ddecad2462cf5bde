package feed

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reapplies a results file to a board whenever it changes on disk.
type Watcher struct {
	path     string
	board    *Board
	debounce time.Duration
	logger   *slog.Logger
	ready    chan struct{}
	once     sync.Once
}

// NewWatcher creates a watcher for path.
func NewWatcher(path string, board *Board, opts ...Option) *Watcher {
	s := newSettings(opts)
	return &Watcher{
		path:     filepath.Clean(path),
		board:    board,
		debounce: s.debounce,
		logger:   s.logger,
		ready:    make(chan struct{}),
	}
}

// Run watches until ctx is done. The file's directory is watched rather than
// the file so editors that replace the file on save are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("feed: create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("feed: watch %s: %w", w.path, err)
	}
	w.once.Do(func() { close(w.ready) })
	w.logger.Info("feed: watching", "path", w.path)

	// Editors often emit several events for a single save.
	debounce := time.NewTimer(0)
	<-debounce.C

	for {
		select {
		case <-ctx.Done():
			debounce.Stop()
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounce.Reset(w.debounce)

		case <-debounce.C:
			w.reload()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("feed: watcher error", "path", w.path, "err", err)
		}
	}
}

func (w *Watcher) reload() {
	if err := w.board.ApplyFile(w.path); err != nil {
		w.logger.Warn("feed: reload failed", "path", w.path, "err", err)
		return
	}
	w.logger.Info("feed: reloaded", "path", w.path)
}
