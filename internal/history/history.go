// Package history records classification and parse runs in PostgreSQL.
//
// History is optional: a Store built from a nil pool is a no-op, so the
// pipeline works identically with or without a database configured.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Run is one recorded invocation of a pipeline operation.
type Run struct {
	ID        uuid.UUID         `json:"id"`
	Tool      string            `json:"tool"`
	File      string            `json:"file,omitempty"`
	Column    string            `json:"column,omitempty"`
	Detail    map[string]string `json:"detail,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// Store persists runs. A nil pool disables all operations.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a run store. Pass nil to disable history.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Enabled reports whether history is backed by a database.
func (s *Store) Enabled() bool {
	return s != nil && s.pool != nil
}

// Init creates the runs table if it does not exist.
func (s *Store) Init(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}

	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS classification_runs (
			id         UUID PRIMARY KEY,
			tool       TEXT NOT NULL,
			file       TEXT NOT NULL DEFAULT '',
			col        TEXT NOT NULL DEFAULT '',
			detail     JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("init history schema: %w", err)
	}
	return nil
}

// Record inserts a run. It assigns an ID and timestamp if unset.
func (s *Store) Record(ctx context.Context, run Run) error {
	if !s.Enabled() {
		return nil
	}

	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	var detailJSON []byte
	if run.Detail != nil {
		var err error
		detailJSON, err = json.Marshal(run.Detail)
		if err != nil {
			detailJSON = nil
		}
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO classification_runs (id, tool, file, col, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		run.ID, run.Tool, run.File, run.Column, detailJSON, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if !s.Enabled() {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, tool, file, col, detail, created_at
		FROM classification_runs
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var detailJSON []byte
		if err := rows.Scan(&run.ID, &run.Tool, &run.File, &run.Column, &detailJSON, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if len(detailJSON) > 0 {
			// Detail is best effort; a bad payload should not hide the run.
			_ = json.Unmarshal(detailJSON, &run.Detail)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
