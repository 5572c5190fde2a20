package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/stackpool/pool"
	"github.com/joshuapare/stackpool/pool/snapshot"
)

var (
	initReserve int
	initForce   bool
)

func init() {
	cmd := newInitCmd()
	cmd.Flags().IntVar(&initReserve, "reserve", 0, "Pre-allocate room for this many nodes")
	cmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing state file")
	rootCmd.AddCommand(cmd)
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [stack...]",
		Short: "Create an empty state file",
		Long: `The init command writes a new snapshot holding an empty pool and,
optionally, empty stacks with the given names.

Example:
  stackpool init
  stackpool init todo done --reserve 1024
  stackpool -s /tmp/work.spl init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(args)
		},
	}
	return cmd
}

func runInit(args []string) error {
	if !initForce {
		if _, err := os.Stat(statePath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", statePath)
		}
	}

	p, err := pool.NewSized[string](initReserve)
	if err != nil {
		return fmt.Errorf("failed to create pool: %w", err)
	}
	s := snapshot.New(p)
	for _, name := range args {
		if err := s.Add(name); err != nil {
			return err
		}
	}
	if err := saveState(s); err != nil {
		return err
	}

	printInfo("Initialized %s (%d stacks, capacity %d)\n", statePath, len(s.Stacks), p.Capacity())
	return nil
}
