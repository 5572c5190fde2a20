package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/stackpool/pool"
	"github.com/joshuapare/stackpool/pool/printer"
)

var (
	showHandles bool
	showMax     int
)

func init() {
	cmd := newShowCmd()
	cmd.Flags().BoolVar(&showHandles, "handles", false, "Prefix values with their slot handles")
	cmd.Flags().IntVar(&showMax, "max", 0, "Print at most this many values per stack (0 = all)")
	rootCmd.AddCommand(cmd)
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [stack...]",
		Short: "Print stack contents",
		Long: `The show command prints stacks top first. Without arguments every
registered stack is printed in name order.

Example:
  stackpool show
  stackpool show todo --handles
  stackpool show --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(args)
		},
	}
	return cmd
}

// printerOptions builds printer options from the global and show flags.
func printerOptions() printer.Options {
	opts := printer.DefaultOptions()
	opts.ShowHandles = showHandles
	opts.MaxItems = showMax
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	return opts
}

func runShow(args []string) error {
	s, err := loadState()
	if err != nil {
		return err
	}

	stacks := s.Stacks
	if len(args) > 0 {
		stacks = make(map[string]pool.Handle, len(args))
		for _, name := range args {
			h, err := s.Head(name)
			if err != nil {
				return err
			}
			stacks[name] = h
		}
	}

	pr := printer.New[string](s.Pool, os.Stdout, printerOptions())
	if err := pr.PrintStacks(stacks); err != nil {
		return fmt.Errorf("failed to print stacks: %w", err)
	}
	return nil
}
