package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/stackpool/pool/printer"
)

func init() {
	rootCmd.AddCommand(newPoolCmd())
}

func newPoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Print every slot of the backing array",
		Long: `The pool command prints every slot value in slot order, including stale
values left in free slots. With --handles the free list is printed too.

Example:
  stackpool pool
  stackpool pool --handles
  stackpool pool --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPool()
		},
	}
	cmd.Flags().BoolVar(&showHandles, "handles", false, "Prefix values with their slot handles")
	cmd.Flags().IntVar(&showMax, "max", 0, "Print at most this many slots (0 = all)")
	return cmd
}

func runPool() error {
	s, err := loadState()
	if err != nil {
		return err
	}
	pr := printer.New[string](s.Pool, os.Stdout, printerOptions())
	if err := pr.PrintPool(); err != nil {
		return fmt.Errorf("failed to print pool: %w", err)
	}
	return nil
}
