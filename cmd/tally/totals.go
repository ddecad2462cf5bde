package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/odvcencio/furry-tally/feed"
)

type totalsReport struct {
	Revision  string          `json:"revision"`
	Regions   int             `json:"regions"`
	Totals    feed.Tally      `json:"totals"`
	Standings []feed.Standing `json:"standings"`
}

func newTotalsCmd(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "totals [update-file...]",
		Short: "Print totals for the results file, optionally after applying updates",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := newLogger(opts.cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			snap, err := feed.Load(opts.cfg.ResultsFile)
			if err != nil {
				return err
			}
			board := feed.NewBoard(snap, feed.WithLogger(logger))
			for _, path := range args {
				if err := board.ApplyFile(path); err != nil {
					if !errors.Is(err, feed.ErrUnknownRegion) {
						return err
					}
					logger.Warn("tally: update skipped regions", "path", path, "err", err)
				}
			}

			totals, _ := board.Totals().Current()
			standings, _ := board.Standings().Current()
			revision, _ := board.Revision().Current()
			report := totalsReport{
				Revision:  revision.String(),
				Regions:   len(board.Regions()),
				Totals:    totals,
				Standings: standings,
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return writeTable(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func writeTable(out io.Writer, report totalsReport) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "CANDIDATE\tVOTES\tSHARE\t\n")
	for _, s := range report.Standings {
		fmt.Fprintf(tw, "%s\t%d\t%.1f%%\t\n", s.Candidate, s.Votes, s.Share*100)
	}
	return tw.Flush()
}
