package mmfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.spl")
	want := []byte{0xde, 0xad, 0xbe, 0xef, 0x42}
	require.NoError(t, os.WriteFile(path, want, 0o644))

	m, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, len(want), m.Len())
	require.Equal(t, want, m.Bytes())

	require.NoError(t, m.Close())
	require.NoError(t, m.Close(), "double close is a no-op")
	require.Nil(t, m.Bytes())
}

func TestOpen_ZeroLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.spl")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	m, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, 0, m.Len())
	require.NoError(t, m.Close())
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.spl"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
