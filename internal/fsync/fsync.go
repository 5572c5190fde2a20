// Package fsync flushes snapshot files to stable storage.
package fsync

import (
	"os"
	"path/filepath"
)

// File flushes the contents of f to disk.
func File(f *os.File) error {
	return fdatasync(f)
}

// Dir flushes the directory entry of path so a rename into it survives a crash.
func Dir(path string) error {
	return syncDir(filepath.Dir(path))
}
