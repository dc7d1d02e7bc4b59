package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteBootstrapsTables(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "nested", "journal.db")
	db, err := OpenSQLite(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='cycle_log';").Scan(&name)
	require.NoError(t, err)

	// Bootstrapping twice is harmless.
	require.NoError(t, Bootstrap(context.Background(), db))
}

func TestOpenSQLiteRejectsEmptyPath(t *testing.T) {
	_, err := OpenSQLite(context.Background(), "")
	assert.Error(t, err)
}

func TestCheckLocalFilesystem(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dbPath := filepath.Join(root, "deep", "dir", "journal.db")

	tests := []struct {
		name     string
		detect   func(string) (string, error)
		wantErr  bool
		wantType string
	}{
		{name: "local", detect: func(string) (string, error) { return "ext4", nil }, wantType: "ext4"},
		{name: "network", detect: func(string) (string, error) { return "NFS", nil }, wantErr: true, wantType: "NFS"},
		{name: "undetectable", detect: func(string) (string, error) { return "", errors.New("nope") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var inspected string
			fsType, err := checkLocalFilesystem(dbPath, func(p string) (string, error) {
				inspected = p
				return tt.detect(p)
			})
			assert.Equal(t, root, inspected, "nearest existing parent is inspected")
			assert.Equal(t, tt.wantType, fsType)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNetworkFilesystem)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
