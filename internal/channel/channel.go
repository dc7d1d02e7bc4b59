// Package channel manages the on-disk request/response slots shared with the
// external process: one command file and one response file in a well-known
// directory.
package channel

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattjoyce/rvfx-bridge/internal/log"
)

const (
	// DirName is the subdirectory of the temp directory holding both slots.
	DirName = "reaper-video-fx"

	CommandFile  = "command.json"
	ResponseFile = "response.json"

	// TempEnv overrides the platform temp directory.
	TempEnv = "TEMP"

	tmpSuffix = ".tmp"
)

// Channel is the pair of command/response slots in one directory.
type Channel struct {
	dir    string
	logger *slog.Logger

	// beforeRename runs between writing the temp file and renaming it into
	// place. Tests use it to simulate a crash mid-write.
	beforeRename func(tmpPath string) error
}

// ResolveDir returns <base>/reaper-video-fx, creating it if needed. An empty
// base selects $TEMP when set, otherwise the platform temp directory.
func ResolveDir(base string) (string, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		base = TempDir()
	}
	dir := filepath.Join(base, DirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create channel directory: %w", err)
	}
	return dir, nil
}

// TempDir returns $TEMP if it is set and non-empty, else os.TempDir().
func TempDir() string {
	if v := os.Getenv(TempEnv); v != "" {
		return v
	}
	return os.TempDir()
}

// Open resolves the channel directory under base and returns a Channel on it.
func Open(base string) (*Channel, error) {
	dir, err := ResolveDir(base)
	if err != nil {
		return nil, err
	}
	return New(dir), nil
}

// New returns a Channel on an existing directory.
func New(dir string) *Channel {
	return &Channel{
		dir:    filepath.Clean(dir),
		logger: log.WithComponent("channel"),
	}
}

func (c *Channel) Dir() string          { return c.dir }
func (c *Channel) CommandPath() string  { return filepath.Join(c.dir, CommandFile) }
func (c *Channel) ResponsePath() string { return filepath.Join(c.dir, ResponseFile) }

// EnsureDir recreates the channel directory if something removed it.
func (c *Channel) EnsureDir() error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create channel directory: %w", err)
	}
	return nil
}

// HasCommand reports whether a command file is present.
func (c *Channel) HasCommand() bool {
	_, err := os.Stat(c.CommandPath())
	return err == nil
}

// ReadCommand returns the command document. It reports false when the file
// is missing, unreadable or empty.
func (c *Channel) ReadCommand() (string, bool) {
	return readSlot(c.CommandPath())
}

// WriteResponse atomically replaces the response file with content.
func (c *Channel) WriteResponse(content string) error {
	return c.writeAtomic(c.ResponsePath(), content)
}

// DeleteCommand removes the command file. Failures are only logged: the next
// cycle re-reads the command if it is still there.
func (c *Channel) DeleteCommand() {
	c.remove(c.CommandPath())
}

// WriteCommand atomically places a command document in the slot.
func (c *Channel) WriteCommand(content string) error {
	return c.writeAtomic(c.CommandPath(), content)
}

// ReadResponse returns the response document if one is present.
func (c *Channel) ReadResponse() (string, bool) {
	return readSlot(c.ResponsePath())
}

// DeleteResponse removes the response file.
func (c *Channel) DeleteResponse() {
	c.remove(c.ResponsePath())
}

// Reset clears both slots.
func (c *Channel) Reset() {
	c.remove(c.CommandPath())
	c.remove(c.ResponsePath())
}

// StaleCommand reports the modification time of a command file older than
// age. A command that outlives several ticks means no bridge is consuming
// the slot, or a cycle crashed between writing the response and deleting
// the command.
func (c *Channel) StaleCommand(age time.Duration) (time.Time, bool) {
	info, err := os.Stat(c.CommandPath())
	if err != nil {
		return time.Time{}, false
	}
	if time.Since(info.ModTime()) < age {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// LeftoverTemps lists temp files left behind by interrupted writes.
func (c *Channel) LeftoverTemps() []string {
	var out []string
	for _, name := range []string{CommandFile, ResponseFile} {
		p := filepath.Join(c.dir, name+tmpSuffix)
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func (c *Channel) writeAtomic(path, content string) (err error) {
	if err := c.EnsureDir(); err != nil {
		return err
	}

	tmpPath := path + tmpSuffix
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open temp file: %w", err)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if c.beforeRename != nil {
		if err := c.beforeRename(tmpPath); err != nil {
			return err
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename %s into place: %w", filepath.Base(path), err)
	}
	return nil
}

func (c *Channel) remove(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		c.logger.Debug("remove slot failed", "path", path, "error", err)
	}
}

func readSlot(path string) (string, bool) {
	b, err := os.ReadFile(path)
	if err != nil || len(b) == 0 {
		return "", false
	}
	return string(b), true
}
