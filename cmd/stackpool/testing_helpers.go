package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// setupState points the global state flag at a fresh file in a temp dir and
// resets every flag to its default.
func setupState(t *testing.T) string {
	t.Helper()
	statePath = filepath.Join(t.TempDir(), "test.spl")
	verbose, quiet, jsonOut = false, false, false
	logDir = ""
	initReserve, initForce = 0, false
	popCount = 1
	freeDrop = false
	showHandles, showMax = false, 0
	statsLang = "en"
	return statePath
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}
