package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/aussiebroadwan/storefront/internal/storefront/store"
)

// HousekeepingService periodically clears a pending payment that has been
// abandoned for longer than TTL. With a zero TTL it never clears anything
// and records live until the next checkout overwrites them.
type HousekeepingService struct {
	Store    store.PendingPayments
	Logger   *slog.Logger
	Clock    clockwork.Clock
	Interval time.Duration
	TTL      time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(pending store.PendingPayments, logger *slog.Logger, clock clockwork.Clock, interval, ttl time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &HousekeepingService{
		Store:    pending,
		Logger:   logger,
		Clock:    clock,
		Interval: interval,
		TTL:      ttl,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval, "pending_ttl", s.TTL)
}

// Stop blocks until any in-progress sweep has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := s.Clock.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.Chan():
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) cleanup() {
	cleared, err := s.SweepPending(context.Background())
	if err != nil {
		s.Logger.Error("failed to sweep pending payment", "error", err)
		return
	}
	if cleared {
		s.Logger.Info("cleared stale pending payment", "pending_ttl", s.TTL)
	}
}

// SweepPending clears the pending record if it is older than TTL and reports
// whether it did.
func (s *HousekeepingService) SweepPending(ctx context.Context) (bool, error) {
	if s.TTL <= 0 {
		return false, nil
	}

	pending, err := s.Store.Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if !pending.Stale(s.Clock.Now(), s.TTL) {
		return false, nil
	}
	s.Logger.Debug("pending payment is stale", "attempt_id", pending.AttemptID, "order_number", pending.OrderNumber)

	return s.Store.ClearAttempt(ctx, pending.AttemptID)
}
