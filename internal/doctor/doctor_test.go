package doctor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattjoyce/rvfx-bridge/internal/channel"
	"github.com/mattjoyce/rvfx-bridge/internal/config"
	"github.com/mattjoyce/rvfx-bridge/internal/lock"
	"github.com/mattjoyce/rvfx-bridge/internal/storage"
)

func setup(t *testing.T) (*config.Config, *channel.Channel) {
	t.Helper()
	cfg := config.Defaults()
	cfg.Journal.Path = filepath.Join(t.TempDir(), "journal.db")
	ch, err := channel.Open(t.TempDir())
	require.NoError(t, err)
	return cfg, ch
}

func categories(issues []Issue) []string {
	var out []string
	for _, is := range issues {
		out = append(out, is.Category+":"+is.Field)
	}
	return out
}

func TestValidateHealthy(t *testing.T) {
	t.Parallel()
	cfg, ch := setup(t)

	r := New(cfg, ch).Validate()
	assert.True(t, r.Valid, "errors: %v", r.Errors)
	assert.Empty(t, r.Warnings)
	assert.Contains(t, FormatHuman(r), "Setup looks healthy.")
}

func TestValidateConfigErrors(t *testing.T) {
	t.Parallel()
	cfg, ch := setup(t)
	cfg.Service.TickInterval = 0

	r := New(cfg, ch).Validate()
	assert.False(t, r.Valid)
	assert.Contains(t, categories(r.Errors), "config:service.tick_interval")
}

func TestValidateNoChannel(t *testing.T) {
	t.Parallel()
	cfg, _ := setup(t)

	r := New(cfg, nil).Validate()
	assert.False(t, r.Valid)
	assert.Contains(t, categories(r.Errors), "channel:bridge.comm_dir")
}

func TestWarnStaleCommandAndTemps(t *testing.T) {
	t.Parallel()
	cfg, ch := setup(t)
	cfg.Bridge.StaleAfter = time.Second

	require.NoError(t, ch.WriteCommand(`{"command":"PING"}`))
	require.NoError(t, ch.WriteResponse(`{"success":true,"message":"pong"}`))
	old := time.Now().Add(-time.Minute)
	require.NoError(t, os.Chtimes(ch.CommandPath(), old, old))
	require.NoError(t, os.WriteFile(ch.ResponsePath()+".tmp", []byte("{"), 0o644))

	r := New(cfg, ch).Validate()
	assert.True(t, r.Valid)
	require.Len(t, r.Warnings, 2)
	assert.Equal(t, channel.CommandFile, r.Warnings[0].Field)
	assert.Contains(t, r.Warnings[0].Message, "redelivered")
	assert.Equal(t, channel.ResponseFile+".tmp", r.Warnings[1].Field)
	assert.Contains(t, FormatHuman(r), "2 warning(s)")
}

func TestReportLockHeld(t *testing.T) {
	t.Parallel()
	cfg, ch := setup(t)

	l, err := lock.Acquire(lock.PathFor(ch.Dir()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Release() })

	r := New(cfg, ch).Validate()
	var found bool
	for _, is := range r.Info {
		if is.Category == "lock" {
			found = true
			assert.Contains(t, is.Message, fmt.Sprintf("pid %d", os.Getpid()))
		}
	}
	assert.True(t, found)
}

func TestValidateJournalOnNetworkFS(t *testing.T) {
	t.Parallel()
	cfg, ch := setup(t)

	d := New(cfg, ch)
	d.checkFS = func(string) (string, error) {
		return "nfs", fmt.Errorf("%w: on nfs", storage.ErrNetworkFilesystem)
	}
	r := d.Validate()
	assert.False(t, r.Valid)
	assert.Contains(t, categories(r.Errors), "journal:journal.path")

	cfg.Journal.Enabled = false
	assert.True(t, d.Validate().Valid)
}

func TestFormatJSON(t *testing.T) {
	t.Parallel()
	r := &Result{Valid: false, Errors: []Issue{{Category: "config", Field: "x", Message: "bad"}}}
	out, err := FormatJSON(r)
	require.NoError(t, err)

	var decoded Result
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, r.Errors, decoded.Errors)
}
