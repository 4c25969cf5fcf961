package pgblob

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"commentbox/internal/errs"
)

// Store persists blobs in the blobs table, one row per key.
type Store struct{ db *DB }

// NewStore constructs a Postgres-backed blob store.
func NewStore(db *DB) *Store { return &Store{db: db} }

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT value FROM blobs WHERE key=$1`
	var value []byte
	err := s.db.Pool.QueryRow(ctx, q, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("key %q: %w", key, errs.ErrBlobNotFound)
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	const q = `INSERT INTO blobs (key, value, updated_at) VALUES ($1,$2,now())
		ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=now()`
	_, err := s.db.Pool.Exec(ctx, q, key, value)
	return err
}
