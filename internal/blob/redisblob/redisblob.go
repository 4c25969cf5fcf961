// Package redisblob implements the blob store on Redis.
package redisblob

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"commentbox/internal/errs"
)

// Store persists blobs as plain Redis string values with no TTL: the
// snapshot is authoritative state, not a cache.
type Store struct {
	rdb *redis.Client
}

// New constructs a Redis-backed store over an existing client.
func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("key %q: %w", key, errs.ErrBlobNotFound)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, key, value, 0).Err()
}
