package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newReserveCmd())
}

func newReserveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reserve <n>",
		Short: "Pre-allocate room for n nodes",
		Long: `The reserve command grows the pool's backing capacity to at least n
nodes. It never shrinks the pool and never creates nodes.

Example:
  stackpool reserve 4096`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReserve(args)
		},
	}
	return cmd
}

func runReserve(args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid node count %q: %w", args[0], err)
	}
	return update("reserve", func(s *state) error {
		if err := s.Pool.Reserve(n); err != nil {
			return err
		}
		printInfo("Capacity: %d\n", s.Pool.Capacity())
		return nil
	})
}
