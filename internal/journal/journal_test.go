package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestDigestIsStable(t *testing.T) {
	a := Digest(`{"command":"PING"}`)
	assert.Len(t, a, 64)
	assert.Equal(t, a, Digest(`{"command":"PING"}`))
	assert.NotEqual(t, a, Digest(`{"command":"GET_TRACKS"}`))
}

func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, s.Record(ctx, Entry{
		Command: "PING", TrackIndex: -1, Success: true, Kind: "ok", Message: "pong",
		Digest: Digest("a"), StartedAt: base, CompletedAt: base,
	}))
	require.NoError(t, s.Record(ctx, Entry{
		Command: "CLEAR_TRACK", TrackIndex: 99, Kind: "not_found", Message: "track not found",
		Digest: Digest("b"), WriteError: "disk full",
		StartedAt: base.Add(time.Second), CompletedAt: base.Add(time.Second),
	}))

	got, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "CLEAR_TRACK", got[0].Command)
	assert.Equal(t, 99, got[0].TrackIndex)
	assert.False(t, got[0].Success)
	assert.Equal(t, "disk full", got[0].WriteError)
	assert.NotEmpty(t, got[0].ID)

	assert.Equal(t, "PING", got[1].Command)
	assert.Equal(t, -1, got[1].TrackIndex)
	assert.True(t, got[1].Success)
	assert.True(t, base.Equal(got[1].CompletedAt))

	limited, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestCountByDigest(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	d := Digest(`{"command":"LOAD_AUDIO","trackIndex":0}`)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Record(ctx, Entry{Command: "LOAD_AUDIO", Kind: "ok", Success: true, Digest: d}))
	}
	require.NoError(t, s.Record(ctx, Entry{Command: "PING", Kind: "ok", Success: true, Digest: Digest("x")}))

	n, err := s.CountByDigest(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	old := time.Now().UTC().Add(-48 * time.Hour)
	require.NoError(t, s.Record(ctx, Entry{Command: "PING", Kind: "ok", Digest: "d", StartedAt: old, CompletedAt: old}))
	require.NoError(t, s.Record(ctx, Entry{Command: "PING", Kind: "ok", Digest: "d"}))

	n, err := s.Prune(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.Prune(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	left, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, left, 1)
}
