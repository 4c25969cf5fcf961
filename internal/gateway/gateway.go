// Package gateway bridges store snapshots to a durable blob store, with a
// three-tier load fallback: persisted blob, bundled seed, hardcoded default.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"commentbox/internal/blob"
	"commentbox/internal/errs"
	"commentbox/internal/model"
	"commentbox/internal/seed"
)

// Gateway loads and saves the snapshot under one fixed key.
type Gateway struct {
	blobs  blob.Store
	logger *zap.Logger
}

// New constructs a gateway over the given blob store.
func New(blobs blob.Store, logger *zap.Logger) *Gateway {
	return &Gateway{blobs: blobs, logger: logger}
}

// Validate reports whether snap is structurally usable: a user with a
// non-empty username and a comments sequence (nil counts as empty).
func Validate(snap model.Snapshot) error {
	if snap.User.Username == "" {
		return fmt.Errorf("missing username: %w", errs.ErrInvalidSnapshot)
	}
	return nil
}

// Load always yields a usable snapshot and never fails. The persisted blob
// is preferred; a missing or shape-invalid blob falls back to the bundled
// seed, and a broken seed falls back to the hardcoded default.
func (g *Gateway) Load(ctx context.Context) model.Snapshot {
	if snap, err := g.loadBlob(ctx); err == nil {
		return snap
	} else {
		g.logger.Info("no usable persisted snapshot, falling back to seed", zap.Error(err))
	}

	if snap, err := seed.Load(time.Now()); err == nil {
		if vErr := Validate(snap); vErr == nil {
			return snap
		}
	} else {
		g.logger.Warn("bundled seed unusable, falling back to default", zap.Error(err))
	}

	return seed.Default()
}

// Save validates, serializes and writes the snapshot. On failure the caller
// keeps the in-memory state authoritative; the error only signals that this
// write did not land.
func (g *Gateway) Save(ctx context.Context, snap model.Snapshot) error {
	if err := Validate(snap); err != nil {
		return err
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrSaveFailed, err)
	}
	if err := g.blobs.Set(ctx, SnapshotKey, raw); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrSaveFailed, err)
	}
	return nil
}

func (g *Gateway) loadBlob(ctx context.Context) (model.Snapshot, error) {
	raw, err := g.blobs.Get(ctx, SnapshotKey)
	if err != nil {
		return model.Snapshot{}, err
	}
	var snap model.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %v", errs.ErrInvalidSnapshot, err)
	}
	if err := Validate(snap); err != nil {
		return model.Snapshot{}, err
	}
	return snap, nil
}
