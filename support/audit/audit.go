// Package audit keeps a durable record of the items a migration skipped, for manual review.
package audit

import (
	"context"
	"database/sql"
	_ "embed"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/xerrors"

	"github.com/ahm-project/migrator/actors/migration/ahm"
)

//go:embed schema.sql
var schemaSQL string

// Log is a SQLite audit log. Each Log records the skips of one run.
type Log struct {
	db    *sql.DB
	runID string
	now   func() time.Time
}

var _ ahm.SkipRecorder = (*Log)(nil)

// Skip is one recorded skipped item.
type Skip struct {
	Seq        int64
	RunID      string
	Stage      string
	Key        []byte
	Cause      string
	RecordedAt time.Time
}

// Open creates or opens the audit database at path and starts a new run.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, xerrors.Errorf("failed to open audit database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, xerrors.Errorf("failed to connect to audit database: %w", err)
	}
	// SQLite has a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, xerrors.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, xerrors.Errorf("failed to apply audit schema: %w", err)
	}

	l := &Log{db: db, runID: uuid.NewString(), now: time.Now}
	if _, err := db.Exec("INSERT INTO runs (id, started_at) VALUES (?, ?)", l.runID, l.now().UnixNano()); err != nil {
		_ = db.Close()
		return nil, xerrors.Errorf("failed to register run: %w", err)
	}
	return l, nil
}

func (l *Log) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}

// RunID identifies the run whose skips this log records.
func (l *Log) RunID() string {
	return l.runID
}

// RecordSkip appends a skipped item. A step that fails after a skip is retried and records the
// skip again, so entries of a run may repeat.
func (l *Log) RecordSkip(stage string, key []byte, cause error) error {
	msg := "<nil>"
	if cause != nil {
		msg = cause.Error()
	}
	_, err := l.db.Exec("INSERT INTO skips (run_id, stage, item_key, cause, recorded_at) VALUES (?, ?, ?, ?, ?)",
		l.runID, stage, key, msg, l.now().UnixNano())
	if err != nil {
		return xerrors.Errorf("failed to record skipped %s item: %w", stage, err)
	}
	return nil
}

// Skips returns the skips of a run in the order they were recorded.
func (l *Log) Skips(ctx context.Context, runID string) ([]Skip, error) {
	rows, err := l.db.QueryContext(ctx,
		"SELECT seq, run_id, stage, item_key, cause, recorded_at FROM skips WHERE run_id = ? ORDER BY seq", runID)
	if err != nil {
		return nil, xerrors.Errorf("failed to query skips: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Skip
	for rows.Next() {
		var s Skip
		var at int64
		if err := rows.Scan(&s.Seq, &s.RunID, &s.Stage, &s.Key, &s.Cause, &at); err != nil {
			return nil, xerrors.Errorf("failed to read skip: %w", err)
		}
		s.RecordedAt = time.Unix(0, at)
		out = append(out, s)
	}
	return out, rows.Err()
}

// CountByStage counts the distinct skipped keys of a run per stage.
func (l *Log) CountByStage(ctx context.Context, runID string) (map[string]int, error) {
	rows, err := l.db.QueryContext(ctx,
		"SELECT stage, COUNT(DISTINCT item_key) FROM skips WHERE run_id = ? GROUP BY stage", runID)
	if err != nil {
		return nil, xerrors.Errorf("failed to count skips: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := map[string]int{}
	for rows.Next() {
		var stage string
		var n int
		if err := rows.Scan(&stage, &n); err != nil {
			return nil, err
		}
		out[stage] = n
	}
	return out, rows.Err()
}
