//go:build !linux && !freebsd && !darwin && !windows

package fsync

import "os"

func fdatasync(f *os.File) error {
	return f.Sync()
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
