package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type LocalStateSQLite struct {
	db *sql.DB
}

func NewLocalStateSQLite(db *sql.DB) *LocalStateSQLite {
	return &LocalStateSQLite{db: db}
}

var _ LocalState = (*LocalStateSQLite)(nil)

const (
	upsertLocalStateSQL = `
		INSERT INTO local_state (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value=excluded.value,
			updated_at=excluded.updated_at
	`

	selectLocalStateSQL = `SELECT value FROM local_state WHERE key = ?`

	deleteLocalStateSQL = `DELETE FROM local_state WHERE key = ?`
)

// Get returns the stored value or ErrNotFound.
func (r *LocalStateSQLite) Get(ctx context.Context, key string) (string, error) {
	var v string
	if err := r.db.QueryRowContext(ctx, selectLocalStateSQL, key).Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("select local state %q: %w", key, err)
	}
	return v, nil
}

// Put inserts or replaces the value for key.
func (r *LocalStateSQLite) Put(ctx context.Context, key, value string) error {
	if _, err := r.db.ExecContext(ctx, upsertLocalStateSQL, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert local state %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *LocalStateSQLite) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, deleteLocalStateSQL, key); err != nil {
		return fmt.Errorf("delete local state %q: %w", key, err)
	}
	return nil
}
