package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Helper()
	prev := L
	t.Cleanup(func() { L = prev })
}

func TestInit_DisabledDiscards(t *testing.T) {
	restore(t)

	require.NoError(t, Init(Options{Enabled: false}))
	require.False(t, Enabled(slog.LevelError))
}

func TestInit_Writer(t *testing.T) {
	restore(t)

	var out bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, Writer: &out, Level: slog.LevelDebug}))
	require.True(t, Enabled(slog.LevelDebug))

	Debug("grow", "from", 4, "to", 8)
	require.Contains(t, out.String(), "msg=grow")
	require.Contains(t, out.String(), "to=8")
}

func TestInit_DefaultLevelIsInfo(t *testing.T) {
	restore(t)

	var out bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, Writer: &out}))

	Debug("hidden")
	Info("shown")
	require.NotContains(t, out.String(), "hidden")
	require.Contains(t, out.String(), "shown")
}

func TestInit_LogDirCreatesDailyFile(t *testing.T) {
	restore(t)

	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Init(Options{Enabled: true, LogDir: dir}))
	Info("hello")

	name := logPrefix + time.Now().Format("2006-01-02") + logSuffix
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"hello"`)
}

func TestCleanOldLogs(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	old := logPrefix + "2024-01-01" + logSuffix
	recent := logPrefix + "2024-02-25" + logSuffix
	other := "notes.txt"
	for _, name := range []string{old, recent, other} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}

	cleanOldLogs(dir, now)

	_, err := os.Stat(filepath.Join(dir, old))
	require.True(t, os.IsNotExist(err))
	require.FileExists(t, filepath.Join(dir, recent))
	require.FileExists(t, filepath.Join(dir, other))
}
