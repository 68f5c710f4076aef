// Package store persists the moment catalog in SQLite with an FTS5
// full-text index over the narrative fields. The serving path opens the
// database read-only; ingestion rebuilds the whole file from scratch.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	_ "modernc.org/sqlite"

	"github.com/echomindr/echomindr/internal/moments"
)

// ErrNotFound is returned when a moment ID does not exist in the store.
var ErrNotFound = errors.New("moment not found")

// QueryError wraps a full-text match expression the engine rejected
// (unbalanced quotes, bad syntax). It is a client-visible error, not a
// server fault.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("invalid query %q: %v", e.Query, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Store is a handle on the moments database.
type Store struct {
	db *sql.DB
}

// Open opens an existing moments database read-only for serving.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("moments database: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	slog.Info("moments store opened", "path", path, "mode", "ro")
	return &Store{db: db}, nil
}

// Create removes any existing database at path and creates a fresh one with
// the full schema. Used only by the ingestion batch.
func Create(path string) (*Store, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("remove old database: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	slog.Info("moments store created", "path", path)
	return s, nil
}

// BulkInsert writes a batch of moments and their full-text index rows in one
// transaction. The FTS index is keyed by the same rowid as the primary row.
func (s *Store) BulkInsert(ctx context.Context, batch []moments.Moment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insertMoment, err := tx.PrepareContext(ctx, `INSERT INTO moments (
			id, type, timestamp, summary, quote,
			decision, outcome, lesson,
			stage, situation, tags,
			podcast, episode, guest, episode_date, source_url, url_at_moment
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer insertMoment.Close()

	insertFTS, err := tx.PrepareContext(ctx, `INSERT INTO moments_fts (
			rowid, summary, quote, decision, outcome, lesson, situation, tags, guest
		) VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare fts insert: %w", err)
	}
	defer insertFTS.Close()

	for _, m := range batch {
		tags := moments.EncodeTags(m.Tags)
		res, err := insertMoment.ExecContext(ctx,
			m.ID, m.Type, m.Timestamp, m.Summary, m.Quote,
			m.Decision, m.Outcome, m.Lesson,
			m.Stage, m.Situation, tags,
			m.Source.Podcast, m.Source.Episode, m.Source.Guest,
			m.Source.Date, m.Source.URL, m.Source.URLAtMoment)
		if err != nil {
			return fmt.Errorf("insert moment %s: %w", m.ID, err)
		}

		rowid, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("rowid for moment %s: %w", m.ID, err)
		}

		if _, err := insertFTS.ExecContext(ctx,
			rowid, m.Summary, m.Quote, m.Decision, m.Outcome,
			m.Lesson, m.Situation, tags, m.Source.Guest); err != nil {
			return fmt.Errorf("index moment %s: %w", m.ID, err)
		}
	}

	return tx.Commit()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
