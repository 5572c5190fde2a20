package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newNewCmd())
}

func newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <stack>...",
		Short: "Create empty named stacks",
		Long: `The new command registers one or more empty stacks. Creating a stack
never touches the pool: an empty stack is just the sentinel handle.

Example:
  stackpool new todo
  stackpool new left right`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(args)
		},
	}
	return cmd
}

func runNew(args []string) error {
	return update("new", func(s *state) error {
		for _, name := range args {
			if err := s.Add(name); err != nil {
				return err
			}
			printInfo("Created stack %s\n", name)
		}
		return nil
	})
}
