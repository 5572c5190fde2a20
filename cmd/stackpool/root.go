package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/stackpool/internal/logger"
	"github.com/joshuapare/stackpool/pool"
)

const defaultStatePath = "stackpool.spl"

var (
	// Global flags
	verbose   bool
	quiet     bool
	jsonOut   bool
	statePath string
	logDir    string
)

var rootCmd = &cobra.Command{
	Use:   "stackpool",
	Short: "Manage named stacks stored in a single node pool",
	Long: `stackpool keeps any number of named stacks in one pooled backing array
persisted to a snapshot file. Popped and freed slots are recycled before the
array grows. Every command loads the snapshot, applies one operation, checks
the pool invariants and saves the result atomically.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
}

func init() {
	state := os.Getenv("STACKPOOL_STATE")
	if state == "" {
		state = defaultStatePath
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVarP(&statePath, "state", "s", state, "Snapshot file (env STACKPOOL_STATE)")
	rootCmd.PersistentFlags().
		StringVar(&logDir, "log-dir", "", "Write daily JSON debug logs to this directory")
}

func setupLogging() error {
	opts := logger.Options{
		Enabled: verbose || logDir != "",
		LogDir:  logDir,
	}
	if verbose {
		opts.Level = slog.LevelDebug
		pool.SetAllocLogging(true)
	}
	return logger.Init(opts)
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
