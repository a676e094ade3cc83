// ============================================================================
// meinDRUCKCENTER (mPC) - PaperCut Administration & Deployment Toolkit
// ============================================================================
//
// Package:     audit
// Description: SQLite-backed audit trail for deployment runs
// Author:      Mike Stoffels
// Created:     2026-08-18
// License:     MIT
// ============================================================================

// Package audit persists deployment run events so that an operator can
// answer "what happened on this machine, and when" after the fact. The
// trail is append-only; Prune removes aged entries.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Event is one recorded deployment step
type Event struct {
	ID        string    `json:"id"`
	RunID     string    `json:"run_id"`
	Timestamp time.Time `json:"timestamp"`
	Phase     string    `json:"phase"`
	Message   string    `json:"message"`
	Error     string    `json:"error,omitempty"`
}

// Filter defines criteria for querying events
type Filter struct {
	RunID string
	Phase string
	Since time.Time
	Limit int
}

// Store defines the interface for audit persistence
type Store interface {
	Record(ctx context.Context, event *Event) error
	Query(ctx context.Context, filter Filter) ([]*Event, error)
	RunIDs(ctx context.Context, limit int) ([]string, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// Open creates or opens the audit database at path
func Open(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("audit: creating directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("audit: opening database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: initializing schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL,
		timestamp DATETIME NOT NULL,
		phase TEXT NOT NULL,
		message TEXT NOT NULL,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_events_run_id ON events(run_id);
	CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record appends one event to the trail
func (s *SQLiteStore) Record(ctx context.Context, event *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, run_id, timestamp, phase, message, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`, event.ID, event.RunID, event.Timestamp, event.Phase, event.Message, event.Error)

	if err != nil {
		return fmt.Errorf("audit: inserting event: %w", err)
	}
	return nil
}

// Query returns events matching the filter, newest first
func (s *SQLiteStore) Query(ctx context.Context, filter Filter) ([]*Event, error) {
	query := "SELECT id, run_id, timestamp, phase, message, error FROM events WHERE 1=1"
	args := []interface{}{}

	if filter.RunID != "" {
		query += " AND run_id = ?"
		args = append(args, filter.RunID)
	}
	if filter.Phase != "" {
		query += " AND phase = ?"
		args = append(args, filter.Phase)
	}
	if !filter.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.Since)
	}

	query += " ORDER BY timestamp DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("audit: querying events: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		event := &Event{}
		var errText sql.NullString
		if err := rows.Scan(&event.ID, &event.RunID, &event.Timestamp, &event.Phase, &event.Message, &errText); err != nil {
			return nil, fmt.Errorf("audit: scanning event: %w", err)
		}
		event.Error = errText.String
		events = append(events, event)
	}

	return events, rows.Err()
}

// RunIDs returns the most recent run IDs, newest first
func (s *SQLiteStore) RunIDs(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id FROM events
		GROUP BY run_id
		ORDER BY MAX(timestamp) DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("audit: querying runs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("audit: scanning run id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// Prune deletes events older than the given age and returns the count
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	res, err := s.db.ExecContext(ctx, "DELETE FROM events WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("audit: pruning events: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
