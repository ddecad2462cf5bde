package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	backendtcell "github.com/odvcencio/furry-tally/backend/tcell"
	"github.com/odvcencio/furry-tally/feed"
	"github.com/odvcencio/furry-tally/runtime"
)

// source is a feed that pushes snapshots into a board until ctx is done.
type source interface {
	Run(ctx context.Context) error
}

func newWatchCmd(opts *options) *cobra.Command {
	var tick time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show live totals, reloading when the results file changes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("tick") {
				opts.cfg.TickRate = tick
			}
			return runWatch(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.poll, "poll", "", "cron schedule to poll on instead of watching, e.g. \"@every 10s\"")
	cmd.Flags().DurationVar(&tick, "tick", 0, "UI tick rate")
	return cmd
}

func runWatch(ctx context.Context, opts *options) error {
	cfg := opts.cfg
	// The terminal belongs to the UI; only a log file gets output.
	logger, closeLog, err := newLogger(cfg, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	snap, err := feed.Load(cfg.ResultsFile)
	if err != nil {
		return err
	}
	board := feed.NewBoard(snap, feed.WithLogger(logger))

	var src source
	if cfg.Poll != "" {
		src, err = feed.NewPoller(cfg.ResultsFile, cfg.Poll, board, feed.WithLogger(logger))
		if err != nil {
			return err
		}
	} else {
		src = feed.NewWatcher(cfg.ResultsFile, board,
			feed.WithLogger(logger), feed.WithDebounce(cfg.Debounce))
	}

	be, err := backendtcell.New()
	if err != nil {
		return err
	}
	app := runtime.NewApp(runtime.AppConfig{
		Backend:  be,
		Root:     newDashboard(board),
		TickRate: cfg.TickRate,
		Logger:   logger,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return app.Run(gctx)
	})
	g.Go(func() error { return src.Run(gctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("tally: stopped")
	return nil
}
