package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/odvcencio/furry-tally/config"
)

const version = "0.1.0"

type options struct {
	cfg      config.Config
	file     string
	poll     string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "tally",
		Short:         "Live vote tallies in the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "results file (YAML or JSON)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newWatchCmd(opts))
	root.AddCommand(newTotalsCmd(opts))
	return root
}

// load reads the environment, then lets flags override it.
func (o *options) load(cmd *cobra.Command) error {
	if err := config.Parse(&o.cfg); err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("file") {
		o.cfg.ResultsFile = o.file
	}
	if flags.Changed("poll") {
		o.cfg.Poll = o.poll
	}
	if flags.Changed("log-level") {
		o.cfg.LogLevel = o.logLevel
	}
	return nil
}

// newLogger builds the command logger. With fallback nil and no log file
// configured, logs are discarded.
func newLogger(cfg config.Config, fallback io.Writer) (*slog.Logger, func() error, error) {
	out := fallback
	closeFn := func() error { return nil }
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = f.Close
	}
	if out == nil {
		out = io.Discard
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.Level()}))
	return logger, closeFn, nil
}
