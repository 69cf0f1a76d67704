package sweeper

import (
	"context"
	"time"

	"bannerkit/internal/domain"
	"bannerkit/internal/infra"
)

// Store is the slice of persistence the sweeper needs.
type Store interface {
	FindStaleUnsavedImages(ctx context.Context, cutoff time.Time) ([]domain.GeneratedImageRecord, error)
	DeleteImageRecord(ctx context.Context, id string) error
}

// Service deletes generated banners that were never saved once they pass the
// retention age. Saved records are never touched regardless of age.
type Service struct {
	store    Store
	logger   infra.Logger
	age      time.Duration
	interval time.Duration
	now      func() time.Time
}

func New(store Store, logger infra.Logger, age, interval time.Duration) *Service {
	if age <= 0 {
		age = domain.RetentionAge
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &Service{store: store, logger: logger, age: age, interval: interval, now: time.Now}
}

// Run sweeps on a fixed schedule until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		if deleted, err := s.SweepOnce(ctx); err != nil {
			s.logger.Error().Err(err).Msg("sweeper: sweep failed")
		} else if deleted > 0 {
			s.logger.Info().Int("deleted", deleted).Msg("sweeper: sweep finished")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// SweepOnce deletes every unsaved record older than the retention age and
// returns the number deleted. Each deletion is independent: a failing delete
// is logged and the sweep moves on, and no transaction spans the whole sweep.
// Re-running against an empty eligible set is a no-op.
func (s *Service) SweepOnce(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.age)
	stale, err := s.store.FindStaleUnsavedImages(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, rec := range stale {
		if rec.Saved {
			// The query already filters saved records; this guard keeps a
			// stale read from ever deleting a kept banner.
			continue
		}
		if err := s.store.DeleteImageRecord(ctx, rec.ID); err != nil {
			s.logger.Error().Err(err).Str("image_id", rec.ID).Msg("sweeper: delete failed")
			continue
		}
		deleted++
	}
	return deleted, nil
}
