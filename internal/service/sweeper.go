package service

import (
	"context"
	"log/slog"
	"time"

	"harnect/internal/observability"
	"harnect/internal/repository"
)

// Sweeper reclaims rows the logout path leaves behind: guest accounts whose
// session was abandoned, and content whose author row is gone.
type Sweeper struct {
	userRepo    repository.UserRepository
	contentRepo repository.ContentRepository
	removeBlob  func(ref string) error
	guestTTL    time.Duration
	interval    time.Duration
}

func NewSweeper(
	userRepo repository.UserRepository,
	contentRepo repository.ContentRepository,
	removeBlob func(ref string) error,
	guestTTL time.Duration,
	interval time.Duration,
) *Sweeper {
	return &Sweeper{
		userRepo:    userRepo,
		contentRepo: contentRepo,
		removeBlob:  removeBlob,
		guestTTL:    guestTTL,
		interval:    interval,
	}
}

// Run blocks, sweeping every interval until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep performs one pass. Failures are logged and the pass continues; the
// next tick retries whatever was left.
func (s *Sweeper) Sweep(ctx context.Context) {
	s.sweepStaleGuests(ctx)
	s.sweepOrphanedContent(ctx)
}

func (s *Sweeper) sweepStaleGuests(ctx context.Context) {
	cutoff := time.Now().Add(-s.guestTTL)
	guests, err := s.userRepo.StaleGuests(ctx, cutoff)
	if err != nil {
		slog.ErrorContext(ctx, "sweeper: listing stale guests failed", "err", err)
		return
	}

	for _, guest := range guests {
		deleted, err := s.userRepo.DeleteGuest(ctx, guest.ID)
		if err != nil {
			slog.ErrorContext(ctx, "sweeper: guest deletion failed",
				slog.Uint64("user_id", uint64(guest.ID)),
				slog.String("error", err.Error()),
			)
			continue
		}
		if deleted {
			observability.GuestSessions.Dec()
			observability.SweeperDeletions.WithLabelValues("guest").Inc()
		}
	}
}

func (s *Sweeper) sweepOrphanedContent(ctx context.Context) {
	items, err := s.contentRepo.Orphaned(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "sweeper: listing orphaned content failed", "err", err)
		return
	}

	for _, item := range items {
		if err := s.contentRepo.DeleteCascade(ctx, item.ID); err != nil {
			slog.ErrorContext(ctx, "sweeper: orphan deletion failed",
				slog.Uint64("item_id", uint64(item.ID)),
				slog.String("error", err.Error()),
			)
			continue
		}
		observability.SweeperDeletions.WithLabelValues("content").Inc()

		if s.removeBlob != nil {
			if err := s.removeBlob(item.MediaRef); err != nil {
				slog.WarnContext(ctx, "sweeper: media blob removal failed",
					"media_ref", item.MediaRef, "err", err)
			}
		}
	}
}
