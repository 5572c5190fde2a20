package main

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/stackpool/internal/format"
	"github.com/joshuapare/stackpool/pool/snapshot"
)

// mustRun runs fn with captured stdout and fails the test on error.
func mustRun(t *testing.T, fn func() error) string {
	t.Helper()
	out, err := captureOutput(t, fn)
	require.NoError(t, err, out)
	return out
}

func TestInit(t *testing.T) {
	path := setupState(t)
	initReserve = 64

	out := mustRun(t, func() error { return runInit([]string{"a", "b"}) })
	assert.Contains(t, out, "Initialized")

	s, err := snapshot.Load(path, codec, snapshot.Options{})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, s.Names())
	require.GreaterOrEqual(t, s.Pool.Capacity(), 64)

	_, err = captureOutput(t, func() error { return runInit(nil) })
	require.Error(t, err, "init must not clobber an existing file")

	initForce = true
	mustRun(t, func() error { return runInit(nil) })
	s, err = snapshot.Load(path, codec, snapshot.Options{})
	require.NoError(t, err)
	require.Empty(t, s.Stacks)
}

func TestMissingState(t *testing.T) {
	setupState(t)
	_, err := captureOutput(t, func() error { return runShow(nil) })
	require.Error(t, err)
	require.Contains(t, err.Error(), "stackpool init")
}

func TestPushPopShow(t *testing.T) {
	setupState(t)
	mustRun(t, func() error { return runInit([]string{"nums"}) })
	mustRun(t, func() error { return runPush([]string{"nums", "10", "20"}) })

	out := mustRun(t, func() error { return runShow([]string{"nums"}) })
	assert.Equal(t, "nums: [ 20 10 ]\n", out)

	out = mustRun(t, func() error { return runPop([]string{"nums"}) })
	assert.Equal(t, "20\n", out)

	// The popped slot comes back first.
	showHandles = true
	mustRun(t, func() error { return runPush([]string{"nums", "30"}) })
	out = mustRun(t, func() error { return runShow(nil) })
	assert.Equal(t, "nums: [ 2:30 1:10 ]\n", out)
}

func TestPop_AllOrNothing(t *testing.T) {
	setupState(t)
	mustRun(t, func() error { return runInit([]string{"s"}) })
	mustRun(t, func() error { return runPush([]string{"s", "a", "b"}) })

	popCount = 3
	_, err := captureOutput(t, func() error { return runPop([]string{"s"}) })
	require.Error(t, err)

	popCount = 1
	out := mustRun(t, func() error { return runShow(nil) })
	assert.Equal(t, "s: [ b a ]\n", out, "failed pop must not change the state")

	popCount = 2
	jsonOut = true
	out = mustRun(t, func() error { return runPop([]string{"s"}) })
	var got struct {
		Stack  string   `json:"stack"`
		Values []string `json:"values"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"b", "a"}, got.Values)

	popCount = 0
	_, err = captureOutput(t, func() error { return runPop([]string{"s"}) })
	require.Error(t, err)
}

func TestPop_EmptyStack(t *testing.T) {
	setupState(t)
	mustRun(t, func() error { return runInit([]string{"s"}) })
	_, err := captureOutput(t, func() error { return runPop([]string{"s"}) })
	require.Error(t, err)
}

func TestUnknownStack(t *testing.T) {
	setupState(t)
	mustRun(t, func() error { return runInit(nil) })

	for name, fn := range map[string]func() error{
		"push": func() error { return runPush([]string{"nope", "x"}) },
		"pop":  func() error { return runPop([]string{"nope"}) },
		"free": func() error { return runFree([]string{"nope"}) },
		"show": func() error { return runShow([]string{"nope"}) },
	} {
		t.Run(name, func(t *testing.T) {
			_, err := captureOutput(t, fn)
			require.ErrorIs(t, err, snapshot.ErrStackName)
		})
	}
}

func TestNew_Duplicate(t *testing.T) {
	setupState(t)
	mustRun(t, func() error { return runInit(nil) })
	mustRun(t, func() error { return runNew([]string{"a"}) })
	_, err := captureOutput(t, func() error { return runNew([]string{"b", "a"}) })
	require.ErrorIs(t, err, snapshot.ErrStackName)

	// The failed command wrote nothing, so "b" was not created.
	out := mustRun(t, runStacks)
	assert.NotContains(t, out, "b ")
}

func TestFree(t *testing.T) {
	path := setupState(t)
	mustRun(t, func() error { return runInit([]string{"a", "b"}) })
	mustRun(t, func() error { return runPush([]string{"a", "1", "2", "3"}) })
	mustRun(t, func() error { return runPush([]string{"b", "x"}) })

	out := mustRun(t, func() error { return runFree([]string{"a"}) })
	assert.Contains(t, out, "Freed 3 node(s) from a")

	s, err := snapshot.Load(path, codec, snapshot.Options{})
	require.NoError(t, err)
	require.Equal(t, 3, s.Pool.FreeLen())
	require.Contains(t, s.Stacks, "a")

	// Freed slots are reused before the pool grows.
	mustRun(t, func() error { return runPush([]string{"b", "y", "z"}) })
	s, err = snapshot.Load(path, codec, snapshot.Options{})
	require.NoError(t, err)
	require.Equal(t, 4, s.Pool.Len())
	require.Equal(t, 1, s.Pool.FreeLen())

	freeDrop = true
	mustRun(t, func() error { return runFree([]string{"b"}) })
	s, err = snapshot.Load(path, codec, snapshot.Options{})
	require.NoError(t, err)
	require.NotContains(t, s.Stacks, "b")
	require.Equal(t, 4, s.Pool.FreeLen())
}

func TestReserve(t *testing.T) {
	path := setupState(t)
	mustRun(t, func() error { return runInit(nil) })
	mustRun(t, func() error { return runReserve([]string{"100"}) })

	s, err := snapshot.Load(path, codec, snapshot.Options{})
	require.NoError(t, err)
	require.GreaterOrEqual(t, s.Pool.Capacity(), 100)
	require.Equal(t, 0, s.Pool.Len())

	_, err = captureOutput(t, func() error { return runReserve([]string{"-1"}) })
	require.Error(t, err)
	_, err = captureOutput(t, func() error { return runReserve([]string{"many"}) })
	require.Error(t, err)
}

func TestPoolCommand(t *testing.T) {
	setupState(t)
	mustRun(t, func() error { return runInit([]string{"s"}) })
	mustRun(t, func() error { return runPush([]string{"s", "a", "b", "c"}) })
	popCount = 2
	mustRun(t, func() error { return runPop([]string{"s"}) })

	out := mustRun(t, runPool)
	assert.Equal(t, "pool = [ a b c ]\n", out)

	showHandles = true
	out = mustRun(t, runPool)
	assert.Equal(t, "pool = [ 1:a 2:b 3:c ]\nfree = [ 2 3 ]\n", out)
}

func TestStats(t *testing.T) {
	setupState(t)
	mustRun(t, func() error { return runInit([]string{"s"}) })
	mustRun(t, func() error { return runPush([]string{"s", "a", "b"}) })
	mustRun(t, func() error { return runPop([]string{"s"}) })

	out := mustRun(t, runStats)
	assert.Contains(t, out, "Pushes:")
	assert.Contains(t, out, "Stacks:")

	jsonOut = true
	out = mustRun(t, runStats)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.EqualValues(t, 2, got["pushes"])
	assert.EqualValues(t, 1, got["pops"])

	statsLang = "!!"
	_, err := captureOutput(t, runStats)
	require.Error(t, err)
}

func TestStacksCommand(t *testing.T) {
	setupState(t)
	mustRun(t, func() error { return runInit(nil) })
	out := mustRun(t, runStacks)
	assert.Equal(t, "No stacks\n", out)

	mustRun(t, func() error { return runNew([]string{"b", "a"}) })
	mustRun(t, func() error { return runPush([]string{"b", "x", "y"}) })

	jsonOut = true
	out = mustRun(t, runStacks)
	var got []stackInfo
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, 0, got[0].Len)
	assert.Equal(t, "b", got[1].Name)
	assert.Equal(t, 2, got[1].Len)
}

func TestCheck(t *testing.T) {
	path := setupState(t)
	mustRun(t, func() error { return runInit([]string{"s"}) })
	mustRun(t, func() error { return runPush([]string{"s", "a", "b"}) })

	out := mustRun(t, runCheck)
	assert.Contains(t, out, "VALID")

	// Drop the stack name behind the CLI's back: its nodes are now leaked.
	s, err := snapshot.Load(path, codec, snapshot.Options{})
	require.NoError(t, err)
	delete(s.Stacks, "s")
	require.NoError(t, snapshot.Save(path, s, codec))

	out, err = captureOutput(t, runCheck)
	require.Error(t, err)
	assert.Contains(t, out, "✗ Accounting")

	jsonOut = true
	out, err = captureOutput(t, runCheck)
	require.Error(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, false, got["valid"])
}

func TestCheck_CorruptFile(t *testing.T) {
	path := setupState(t)
	require.NoError(t, os.WriteFile(path, []byte("not a snapshot"), 0o644))
	_, err := captureOutput(t, runCheck)
	require.Error(t, err)
}

func TestQuiet(t *testing.T) {
	setupState(t)
	quiet = true
	out := mustRun(t, func() error { return runInit([]string{"s"}) })
	assert.Empty(t, out)
}

func TestCheck_BrokenChains(t *testing.T) {
	path := setupState(t)
	mustRun(t, func() error { return runInit([]string{"s"}) })
	mustRun(t, func() error { return runPush([]string{"s", "a", "b", "c"}) })
	mustRun(t, func() error { return runPop([]string{"s"}) })

	// Stack s is now [ b a ] in slots 2 and 1; slot 3 is free.
	// Relink slot 1 onto slot 2 to close a cycle inside the stack.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	slot1 := format.HeaderSize + format.StackEntryFixedSize + len("s")
	format.PutU32(data, slot1, 2)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	out, err := captureOutput(t, runCheck)
	require.Error(t, err)
	assert.Contains(t, out, "✓ Free list")
	assert.Contains(t, out, "✗ Stacks")
	assert.Contains(t, out, "INVALID")

	_, err = captureOutput(t, func() error { return runShow(nil) })
	require.Error(t, err, "regular commands still refuse the file")

	// A free list that loops back on itself: free slot 3 points at itself.
	slot3 := slot1 + 2*(format.SlotEntryFixedSize+1)
	format.PutU32(data, slot1, 0)
	format.PutU32(data, slot3, 3)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	out, err = captureOutput(t, runCheck)
	require.Error(t, err)
	assert.Contains(t, out, "✗ Free list")
	assert.Contains(t, out, "does not terminate")
}
