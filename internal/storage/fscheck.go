package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNetworkFilesystem is returned when the journal would live on a network
// mount, where SQLite locking is unreliable.
var ErrNetworkFilesystem = errors.New("journal path is on a network filesystem")

var networkFilesystems = map[string]struct{}{
	"afpfs":  {},
	"cifs":   {},
	"nfs":    {},
	"smbfs":  {},
	"smb2":   {},
	"webdav": {},
}

// CheckLocalFilesystem inspects the filesystem holding path (or its nearest
// existing parent) and rejects network mounts. It returns the detected type,
// empty when detection is unavailable.
func CheckLocalFilesystem(path string) (string, error) {
	return checkLocalFilesystem(path, filesystemType)
}

func checkLocalFilesystem(path string, detect func(string) (string, error)) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("journal path is empty")
	}
	existing, err := nearestExistingPath(path)
	if err != nil {
		return "", fmt.Errorf("resolve journal path %q: %w", path, err)
	}

	fsType, err := detect(existing)
	if err != nil {
		// Unknown is not fatal; the journal is diagnostic only.
		return "", nil
	}
	if _, bad := networkFilesystems[strings.ToLower(strings.TrimSpace(fsType))]; bad {
		return fsType, fmt.Errorf("%w: %q is on %s; set journal.path to a local file", ErrNetworkFilesystem, path, fsType)
	}
	return fsType, nil
}

func nearestExistingPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	for candidate := abs; ; {
		_, err := os.Stat(candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(candidate)
		if parent == candidate {
			return "", fmt.Errorf("no existing parent for %q", abs)
		}
		candidate = parent
	}
}
