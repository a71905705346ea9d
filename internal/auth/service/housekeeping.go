package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/duetmatch/duet/internal/auth/store"
)

// HousekeepingService periodically purges accounts that were soft-deleted
// longer than the retention window ago, so the users table doesn't grow
// without bound.
type HousekeepingService struct {
	Store      store.Store
	Logger     *slog.Logger
	Interval   time.Duration
	PurgeAfter time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service. A non-positive
// interval defaults to 1 hour, a non-positive retention window to 30 days.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval, purgeAfter time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if purgeAfter <= 0 {
		purgeAfter = 30 * 24 * time.Hour
	}

	return &HousekeepingService{
		Store:      store,
		Logger:     logger,
		Interval:   interval,
		PurgeAfter: purgeAfter,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs the sweep.
// This is non-blocking and should be called after the database is ready.
// Call Stop() to gracefully shutdown the worker.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval, "purge_after", s.PurgeAfter)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress sweep.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

// run is the main background worker loop.
func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run a sweep immediately on startup
	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep purges rows whose soft-delete timestamp has aged past the retention
// window.
func (s *HousekeepingService) sweep() {
	ctx := context.Background()
	cutoff := time.Now().Add(-s.PurgeAfter)

	purged, err := s.Store.Users().PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to purge deleted users", "error", err)
		return
	}

	if purged > 0 {
		s.Logger.Info("purged deleted users", "count", purged, "cutoff", cutoff)
	} else {
		s.Logger.Debug("housekeeping sweep found nothing to purge")
	}
}
