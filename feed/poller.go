package feed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Poller reapplies a results file to a board on a cron schedule.
type Poller struct {
	path   string
	board  *Board
	cron   *cron.Cron
	logger *slog.Logger
}

// NewPoller creates a poller for path. spec is a standard five-field cron
// expression or a descriptor such as "@every 30s".
func NewPoller(path, spec string, board *Board, opts ...Option) (*Poller, error) {
	s := newSettings(opts)
	p := &Poller{
		path:   path,
		board:  board,
		cron:   cron.New(),
		logger: s.logger,
	}
	if _, err := p.cron.AddFunc(spec, p.poll); err != nil {
		return nil, fmt.Errorf("feed: invalid poll schedule %q: %w", spec, err)
	}
	return p, nil
}

// Run polls until ctx is done, then waits for an in-flight poll to finish.
func (p *Poller) Run(ctx context.Context) error {
	p.cron.Start()
	p.logger.Info("feed: polling", "path", p.path)

	<-ctx.Done()

	<-p.cron.Stop().Done()
	return ctx.Err()
}

func (p *Poller) poll() {
	if err := p.board.ApplyFile(p.path); err != nil {
		p.logger.Warn("feed: poll failed", "path", p.path, "err", err)
	}
}
