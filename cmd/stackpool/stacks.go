package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/stackpool/pool"
)

func init() {
	rootCmd.AddCommand(newStacksCmd())
}

func newStacksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stacks",
		Short: "List registered stacks",
		Long: `The stacks command lists every named stack with its head handle and
length.

Example:
  stackpool stacks
  stackpool stacks --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStacks()
		},
	}
	return cmd
}

type stackInfo struct {
	Name string      `json:"name"`
	Head pool.Handle `json:"head"`
	Len  int         `json:"len"`
}

func runStacks() error {
	s, err := loadState()
	if err != nil {
		return err
	}

	infos := make([]stackInfo, 0, len(s.Stacks))
	for _, name := range s.Names() {
		head := s.Stacks[name]
		n, err := s.Pool.StackLen(head)
		if err != nil {
			return fmt.Errorf("stack %s: %w", name, err)
		}
		infos = append(infos, stackInfo{Name: name, Head: head, Len: n})
	}

	if jsonOut {
		return printJSON(infos)
	}
	if len(infos) == 0 {
		printInfo("No stacks\n")
		return nil
	}
	for _, info := range infos {
		printInfo("%-20s head=%-6d len=%d\n", info.Name, info.Head, info.Len)
	}
	return nil
}
