//go:build linux

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

// datasync flushes file data without forcing a metadata update
func datasync(f *os.File) error {
	return unix.Fdatasync(int(f.Fd()))
}
