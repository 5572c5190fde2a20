package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joshuapare/stackpool/internal/fsync"
	"github.com/joshuapare/stackpool/internal/logger"
	"github.com/joshuapare/stackpool/internal/mmfile"
)

// Save writes s to path atomically via temp file + rename.
func Save[T any](path string, s *Snapshot[T], c Codec[T]) error {
	data, err := Encode(s, c)
	if err != nil {
		return err
	}

	// Same directory so the rename cannot cross filesystems.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".stackpool-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if tmp != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := fsync.File(tmp); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	tmp = nil

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	if err := fsync.Dir(path); err != nil {
		return fmt.Errorf("sync directory: %w", err)
	}

	logger.Debug("snapshot saved", "path", path, "bytes", len(data), "stacks", len(s.Stacks))
	return nil
}

// Load reads the snapshot at path.
func Load[T any](path string, c Codec[T], opts Options) (*Snapshot[T], error) {
	m, err := mmfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	defer func() { _ = m.Close() }()

	s, err := Decode(m.Bytes(), c, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	logger.Debug("snapshot loaded", "path", path, "bytes", m.Len(), "stacks", len(s.Stacks))
	return s, nil
}
