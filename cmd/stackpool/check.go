package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/stackpool/pool/snapshot"
	"github.com/joshuapare/stackpool/pool/verify"
)

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the state file",
		Long: `The check command decodes the snapshot with only range checks and then
runs each pool invariant separately: the free list terminates, stacks
are disjoint and never reach free slots, and every slot is either live or
free.

Example:
  stackpool check
  stackpool check --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck()
		},
	}
	return cmd
}

type checkResult struct {
	Name  string `json:"name"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

func runCheck() error {
	printVerbose("Checking state: %s\n", statePath)

	s, err := snapshot.Load(statePath, codec, snapshot.Options{Unchecked: true})
	if err != nil {
		if jsonOut {
			_ = printJSON(map[string]any{"file": statePath, "valid": false, "error": err.Error()})
		}
		return err
	}

	heads := s.Heads()
	checks := []struct {
		name string
		run  func() error
	}{
		{"Free list", func() error { return verify.FreeList(s.Pool) }},
		{"Stacks", func() error { return verify.Stacks(s.Pool, heads...) }},
		{"Accounting", func() error { return verify.Accounting(s.Pool, heads...) }},
	}

	results := make([]checkResult, 0, len(checks))
	var errs []error
	for _, c := range checks {
		r := checkResult{Name: c.name, Valid: true}
		if err := c.run(); err != nil {
			r.Valid = false
			r.Error = err.Error()
			errs = append(errs, err)
		}
		results = append(results, r)
	}
	failed := errors.Join(errs...)

	if jsonOut {
		if err := printJSON(map[string]any{
			"file":   statePath,
			"valid":  failed == nil,
			"checks": results,
		}); err != nil {
			return err
		}
		return failed
	}

	printInfo("Checking %s...\n\n", statePath)
	for _, r := range results {
		if r.Valid {
			printInfo("  ✓ %s\n", r.Name)
		} else {
			printInfo("  ✗ %s: %s\n", r.Name, r.Error)
		}
	}
	if failed != nil {
		printInfo("\nResult: ✗ INVALID\n")
		return fmt.Errorf("state %s is inconsistent: %w", statePath, failed)
	}
	printInfo("\nResult: ✓ VALID\n")
	return nil
}
