// Package autosave periodically persists the current snapshot in the
// background, plus one final save on shutdown.
package autosave

import (
	"context"
	"time"

	"go.uber.org/zap"

	"commentbox/internal/gateway"
	"commentbox/internal/model"
)

// DefaultInterval is the save period when none is configured.
const DefaultInterval = 30 * time.Second

// Saver runs the fire-and-forget save loop. Snapshot serialization is
// synchronous, so every write reflects a consistent point-in-time state.
type Saver struct {
	gw       *gateway.Gateway
	snapshot func() model.Snapshot
	interval time.Duration
	logger   *zap.Logger
}

// New constructs a saver. snapshot is called at every tick; interval <= 0
// selects DefaultInterval.
func New(gw *gateway.Gateway, snapshot func() model.Snapshot, interval time.Duration, logger *zap.Logger) *Saver {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Saver{gw: gw, snapshot: snapshot, interval: interval, logger: logger}
}

// Run saves on every tick until ctx is cancelled, then performs one final
// save and returns. A failed save is logged once and not retried before the
// next tick.
func (s *Saver) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.saveOnce(ctx)
		case <-ctx.Done():
			// Session end: last chance to persist. The parent context is
			// already cancelled, so the write gets its own.
			saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			s.saveOnce(saveCtx)
			cancel()
			return
		}
	}
}

func (s *Saver) saveOnce(ctx context.Context) {
	if err := s.gw.Save(ctx, s.snapshot()); err != nil {
		s.logger.Warn("autosave failed", zap.Error(err))
		return
	}
	s.logger.Debug("autosave complete")
}
