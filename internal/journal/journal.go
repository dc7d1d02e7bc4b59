// Package journal keeps a local history of processed commands in SQLite.
// It is diagnostic only: the bridge answers commands whether or not a
// journal is configured.
package journal

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/mattjoyce/rvfx-bridge/internal/storage"
)

// Fixed width so that stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Entry is one processed command.
type Entry struct {
	ID          string
	Command     string
	TrackIndex  int // -1 when the request carried none
	Success     bool
	Kind        string
	Message     string
	Digest      string
	Response    string
	WriteError  string
	StartedAt   time.Time
	CompletedAt time.Time
}

// Store persists entries.
type Store struct {
	db *sql.DB
}

// NewID returns a fresh cycle id.
func NewID() string {
	return uuid.NewString()
}

// Digest returns the hex BLAKE3 digest of a raw command document. Identical
// documents share a digest, which exposes client retries in the history.
func Digest(doc string) string {
	sum := blake3.Sum256([]byte(doc))
	return hex.EncodeToString(sum[:])
}

// Open opens (creating if needed) the journal at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := storage.OpenSQLite(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts e. A missing ID or timestamp is filled in.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = NewID()
	}
	now := time.Now().UTC()
	if e.StartedAt.IsZero() {
		e.StartedAt = now
	}
	if e.CompletedAt.IsZero() {
		e.CompletedAt = now
	}

	var track sql.NullInt64
	if e.TrackIndex >= 0 {
		track = sql.NullInt64{Int64: int64(e.TrackIndex), Valid: true}
	}
	success := 0
	if e.Success {
		success = 1
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO cycle_log(id, command, track_index, success, kind, message, digest, response, write_error, started_at, completed_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`,
		e.ID, e.Command, track, success, e.Kind, e.Message, e.Digest, e.Response, e.WriteError,
		e.StartedAt.UTC().Format(timeLayout), e.CompletedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert cycle_log: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, command, track_index, success, kind, message, digest, response, write_error, started_at, completed_at
FROM cycle_log
ORDER BY completed_at DESC, rowid DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query cycle_log: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e                    Entry
			track                sql.NullInt64
			success              int
			message, resp, wrErr sql.NullString
			started, completed   string
		)
		if err := rows.Scan(&e.ID, &e.Command, &track, &success, &e.Kind, &message, &e.Digest, &resp, &wrErr, &started, &completed); err != nil {
			return nil, fmt.Errorf("scan cycle_log: %w", err)
		}
		e.TrackIndex = -1
		if track.Valid {
			e.TrackIndex = int(track.Int64)
		}
		e.Success = success != 0
		e.Message = message.String
		e.Response = resp.String
		e.WriteError = wrErr.String
		if e.StartedAt, err = time.Parse(timeLayout, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if e.CompletedAt, err = time.Parse(timeLayout, completed); err != nil {
			return nil, fmt.Errorf("parse completed_at: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountByDigest reports how many entries share digest.
func (s *Store) CountByDigest(ctx context.Context, digest string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cycle_log WHERE digest = ?;`, digest).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cycle_log: %w", err)
	}
	return n, nil
}

// Prune deletes entries completed before now minus retention and returns the
// number removed. A non-positive retention keeps everything.
func (s *Store) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().Add(-retention).Format(timeLayout)
	res, err := s.db.ExecContext(ctx, `DELETE FROM cycle_log WHERE completed_at < ?;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune cycle_log: %w", err)
	}
	return res.RowsAffected()
}
