package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/joshuapare/stackpool/pool/printer"
)

var statsLang string

func init() {
	cmd := newStatsCmd()
	cmd.Flags().StringVar(&statsLang, "lang", "en", "Language tag used for digit grouping")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show pool counters",
		Long: `The stats command shows slot usage and the lifetime operation counters
stored in the snapshot.

Example:
  stackpool stats
  stackpool stats --lang de
  stackpool stats --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats()
		},
	}
	return cmd
}

func runStats() error {
	tag, err := language.Parse(statsLang)
	if err != nil {
		return fmt.Errorf("invalid --lang %q: %w", statsLang, err)
	}
	s, err := loadState()
	if err != nil {
		return err
	}

	opts := printer.DefaultOptions()
	opts.Language = tag
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	pr := printer.New[string](s.Pool, os.Stdout, opts)
	if err := pr.PrintStats(); err != nil {
		return fmt.Errorf("failed to print stats: %w", err)
	}
	if !jsonOut {
		printInfo("%-14s %d\n", "Stacks:", len(s.Stacks))
	}
	return nil
}
