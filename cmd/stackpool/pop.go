package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var popCount int

func init() {
	cmd := newPopCmd()
	cmd.Flags().IntVarP(&popCount, "count", "n", 1, "Number of values to pop")
	rootCmd.AddCommand(cmd)
}

func newPopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pop <stack>",
		Short: "Pop values off a stack",
		Long: `The pop command removes values from the top of a stack and prints them,
top first. The whole request fails, and nothing is removed, when the stack
holds fewer values than asked for.

Example:
  stackpool pop todo
  stackpool pop nums -n 3 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPop(args)
		},
	}
	return cmd
}

func runPop(args []string) error {
	name := args[0]
	if popCount < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", popCount)
	}

	var popped []string
	err := update("pop", func(s *state) error {
		head, err := s.Head(name)
		if err != nil {
			return err
		}
		n, err := s.Pool.StackLen(head)
		if err != nil {
			return fmt.Errorf("failed to pop %s: %w", name, err)
		}
		if n < popCount {
			return fmt.Errorf("stack %s holds %d value(s), cannot pop %d", name, n, popCount)
		}
		for range popCount {
			var v string
			head, v, err = s.Pool.Pop(head)
			if err != nil {
				return fmt.Errorf("failed to pop %s: %w", name, err)
			}
			popped = append(popped, v)
		}
		s.Stacks[name] = head
		return nil
	})
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]any{"stack": name, "values": popped})
	}
	for _, v := range popped {
		printInfo("%s\n", v)
	}
	return nil
}
