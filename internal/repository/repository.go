package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a local state key has no value.
var ErrNotFound = errors.New("local state key not found")

// LocalState is the client-local key/value store (user blob, theme preference).
type LocalState interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type Repository struct {
	LocalState LocalState
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		LocalState: NewLocalStateSQLite(db),
	}
}
