// Package leadlog keeps an audit trail of form relay attempts in a SQLite
// database. Only metadata is stored: the attempt ID, endpoint, subject,
// field count, status and error. Field values never reach the log.
package leadlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/atoshub/go-site/pkg/relay"
)

// ErrClosed is returned when the log is used after Close.
var ErrClosed = errors.New("leadlog: closed")

// Log is a relay.Recorder backed by SQLite.
type Log struct {
	db   *sql.DB
	path string
}

var _ relay.Recorder = (*Log)(nil)

// Open creates (or reuses) the database at path and migrates it.
func Open(path string) (*Log, error) {
	if path == "" {
		return nil, errors.New("leadlog: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("leadlog: create dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("leadlog: open %s: %w", path, err)
	}
	// modernc sqlite serialises writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("leadlog: migrate: %w", err)
	}
	return &Log{db: db, path: path}, nil
}

// Path returns the database file.
func (l *Log) Path() string {
	return l.path
}

// Record implements relay.Recorder.
func (l *Log) Record(ctx context.Context, a relay.Attempt) error {
	if l == nil || l.db == nil {
		return ErrClosed
	}
	success := 0
	if a.Succeeded() {
		success = 1
	}
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO attempts (id, at, duration_ms, endpoint, subject, fields, status, success, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.At.UTC().UnixMilli(), a.Duration.Milliseconds(), a.Endpoint,
		nilIfEmpty(a.Subject), a.Fields, a.Status, success, nilIfEmpty(a.Err),
	)
	if err != nil {
		return fmt.Errorf("leadlog: insert attempt %s: %w", a.ID, err)
	}
	return nil
}

// Recent returns up to limit attempts, newest first.
func (l *Log) Recent(ctx context.Context, limit int) ([]relay.Attempt, error) {
	if l == nil || l.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, at, duration_ms, endpoint, subject, fields, status, error
		FROM attempts
		ORDER BY at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("leadlog: query attempts: %w", err)
	}
	defer rows.Close()

	var out []relay.Attempt
	for rows.Next() {
		var (
			a          relay.Attempt
			at, millis int64
			subject    sql.NullString
			errMsg     sql.NullString
		)
		if err := rows.Scan(&a.ID, &at, &millis, &a.Endpoint, &subject, &a.Fields, &a.Status, &errMsg); err != nil {
			return nil, fmt.Errorf("leadlog: scan attempt: %w", err)
		}
		a.At = time.UnixMilli(at).UTC()
		a.Duration = time.Duration(millis) * time.Millisecond
		a.Subject = subject.String
		a.Err = errMsg.String
		out = append(out, a)
	}
	return out, rows.Err()
}

// Stats holds attempt counts.
type Stats struct {
	Total     int
	Succeeded int
}

// Failed is the number of attempts the relay did not accept.
func (s Stats) Failed() int {
	return s.Total - s.Succeeded
}

// Stats counts attempts recorded since since. A zero since counts all.
func (l *Log) Stats(ctx context.Context, since time.Time) (Stats, error) {
	if l == nil || l.db == nil {
		return Stats{}, ErrClosed
	}
	var from int64
	if !since.IsZero() {
		from = since.UTC().UnixMilli()
	}
	var s Stats
	err := l.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(success), 0) FROM attempts WHERE at >= ?`, from,
	).Scan(&s.Total, &s.Succeeded)
	if err != nil {
		return Stats{}, fmt.Errorf("leadlog: stats: %w", err)
	}
	return s, nil
}

// Close closes the database. Further calls return ErrClosed.
func (l *Log) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS attempts (
			id          TEXT NOT NULL,
			at          INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			endpoint    TEXT NOT NULL,
			subject     TEXT,
			fields      INTEGER NOT NULL,
			status      INTEGER NOT NULL,
			success     INTEGER NOT NULL,
			error       TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_attempts_at ON attempts(at);
	`)
	return err
}

// nilIfEmpty stores empty strings as NULL.
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
