//go:build windows

package fsync

import (
	"os"

	"golang.org/x/sys/windows"
)

// fdatasync performs file sync using FlushFileBuffers.
func fdatasync(f *os.File) error {
	return windows.FlushFileBuffers(windows.Handle(f.Fd()))
}

// syncDir is a no-op: Windows does not expose directory handles for flushing.
func syncDir(string) error { return nil }
