package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joshuapare/stackpool/internal/logger"
	"github.com/joshuapare/stackpool/pool/snapshot"
	"github.com/joshuapare/stackpool/pool/verify"
)

// state is the snapshot every command works on. Values are strings.
type state = snapshot.Snapshot[string]

var codec = snapshot.StringCodec{}

// loadState reads the snapshot at statePath.
func loadState() (*state, error) {
	printVerbose("Loading state: %s\n", statePath)
	s, err := snapshot.Load(statePath, codec, snapshot.Options{})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("no state at %s (run 'stackpool init' first)", statePath)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// saveState checks every invariant and writes s back to statePath.
func saveState(s *state) error {
	if err := verify.AllInvariants(s.Pool, s.Heads()...); err != nil {
		return fmt.Errorf("refusing to save inconsistent pool: %w", err)
	}
	if err := snapshot.Save(statePath, s, codec); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	printVerbose("Saved state: %s (%d slots, %d free)\n", statePath, s.Pool.Len(), s.Pool.FreeLen())
	return nil
}

// update loads the state, applies fn and saves the result. Nothing is
// written when fn fails.
func update(op string, fn func(s *state) error) error {
	s, err := loadState()
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		logger.Warn("operation failed", "op", op, "state", statePath, "error", err)
		return err
	}
	if err := saveState(s); err != nil {
		return err
	}
	logger.Info("operation applied", "op", op, "state", statePath, "slots", s.Pool.Len())
	return nil
}
