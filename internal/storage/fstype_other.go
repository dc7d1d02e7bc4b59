//go:build !darwin && !linux

package storage

import "errors"

// The journal check is skipped where the filesystem type cannot be read.
func filesystemType(string) (string, error) {
	return "", errUnsupportedFSCheck
}

var errUnsupportedFSCheck = errors.New("filesystem type detection unsupported on this platform")
