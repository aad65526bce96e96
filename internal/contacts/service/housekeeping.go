package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/contacts/internal/contacts/store"
)

// HousekeepingService periodically clears stored session tokens that have
// expired. Expired tokens are already rejected on use; this keeps the
// token column from holding dead values.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given
// interval. If interval is 0 or negative, it defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) cleanup() {
	if _, err := s.ClearExpiredTokens(context.Background(), time.Now()); err != nil {
		s.Logger.Error("failed to clear expired tokens", "error", err)
	}
}

// ClearExpiredTokens removes every stored token that expired before now.
func (s *HousekeepingService) ClearExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.Store.Users().ClearExpiredTokens(ctx, now)
	if err != nil {
		return 0, err
	}
	s.Logger.Info("housekeeping cleanup completed", "cleared_tokens", n)
	return n, nil
}
