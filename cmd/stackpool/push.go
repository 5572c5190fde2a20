package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newPushCmd())
}

func newPushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push <stack> <value>...",
		Short: "Push values onto a stack",
		Long: `The push command pushes each value in order, so the last value ends up
on top. Free slots are reused before the pool grows.

Example:
  stackpool push todo "write tests"
  stackpool push nums 1 2 3`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPush(args)
		},
	}
	return cmd
}

func runPush(args []string) error {
	name, values := args[0], args[1:]
	return update("push", func(s *state) error {
		head, err := s.Head(name)
		if err != nil {
			return err
		}
		for _, v := range values {
			head, err = s.Pool.Push(v, head)
			if err != nil {
				return fmt.Errorf("failed to push onto %s: %w", name, err)
			}
			printVerbose("Pushed %q into slot %d\n", v, head)
		}
		s.Stacks[name] = head
		printInfo("Pushed %d value(s) onto %s\n", len(values), name)
		return nil
	})
}
