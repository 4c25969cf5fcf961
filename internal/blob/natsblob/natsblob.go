// Package natsblob implements the blob store on a NATS JetStream key-value bucket.
package natsblob

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"commentbox/internal/errs"
)

// Store persists blobs in a JetStream KV bucket. KV keys may not contain
// colons, so gateway keys are mapped through kvKey.
type Store struct {
	kv jetstream.KeyValue
}

// New binds to the named bucket, creating it when absent.
func New(ctx context.Context, nc *nats.Conn, bucket string) (*Store, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, err
	}
	kv, err := js.KeyValue(ctx, bucket)
	if errors.Is(err, jetstream.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(ctx, jetstream.KeyValueConfig{Bucket: bucket})
	}
	if err != nil {
		return nil, fmt.Errorf("bind bucket %s: %w", bucket, err)
	}
	return &Store{kv: kv}, nil
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := s.kv.Get(ctx, kvKey(key))
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, fmt.Errorf("key %q: %w", key, errs.ErrBlobNotFound)
	}
	if err != nil {
		return nil, err
	}
	return entry.Value(), nil
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.kv.Put(ctx, kvKey(key), value); err != nil {
		return fmt.Errorf("failed to store key %s: %w", key, err)
	}
	return nil
}
