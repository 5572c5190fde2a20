package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var freeDrop bool

func init() {
	cmd := newFreeCmd()
	cmd.Flags().BoolVar(&freeDrop, "drop", false, "Also forget the stack name")
	rootCmd.AddCommand(cmd)
}

func newFreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "free <stack>...",
		Short: "Release every node of a stack",
		Long: `The free command moves all nodes of the named stacks onto the free list.
The stacks stay registered and empty unless --drop is given.

Example:
  stackpool free todo
  stackpool free scratch --drop`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFree(args)
		},
	}
	return cmd
}

func runFree(args []string) error {
	return update("free", func(s *state) error {
		for _, name := range args {
			head, err := s.Head(name)
			if err != nil {
				return err
			}
			n, err := s.Pool.StackLen(head)
			if err != nil {
				return fmt.Errorf("failed to free %s: %w", name, err)
			}
			head, err = s.Pool.FreeStack(head)
			if err != nil {
				return fmt.Errorf("failed to free %s: %w", name, err)
			}
			if freeDrop {
				delete(s.Stacks, name)
			} else {
				s.Stacks[name] = head
			}
			printInfo("Freed %d node(s) from %s\n", n, name)
		}
		return nil
	})
}
