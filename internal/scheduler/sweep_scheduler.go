// Package scheduler runs the campaign lifecycle sweep on a recurring timer.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	portssvc "github.com/fundnest/crowdfund_backend/internal/core/ports/services"
	"github.com/fundnest/crowdfund_backend/internal/middleware"
)

// SweepScheduler triggers the lifecycle sweep at a fixed interval. The sweep
// itself is idempotent and guarded by conditional updates, so an overlapping
// manual trigger needs no coordination with the timer.
type SweepScheduler struct {
	lifecycle portssvc.LifecycleSvcFacade
	interval  time.Duration
	logger    *slog.Logger

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewSweepScheduler creates a scheduler with the given interval.
func NewSweepScheduler(lifecycle portssvc.LifecycleSvcFacade, interval time.Duration, logger *slog.Logger) *SweepScheduler {
	return &SweepScheduler{
		lifecycle: lifecycle,
		interval:  interval,
		logger:    logger,
	}
}

// Start begins the recurring sweep.
func (s *SweepScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		return // already running
	}

	s.ticker = time.NewTicker(s.interval)
	s.stop = make(chan struct{})
	s.wg.Add(1)
	go s.run(s.ticker, s.stop)

	s.logger.Info("Sweep scheduler started", slog.Duration("interval", s.interval))
}

// Stop halts the scheduler and waits for an in-flight sweep to finish.
func (s *SweepScheduler) Stop() {
	s.mu.Lock()
	if s.ticker == nil {
		s.mu.Unlock()
		return
	}
	s.ticker.Stop()
	s.ticker = nil
	close(s.stop)
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("Sweep scheduler stopped")
}

func (s *SweepScheduler) run(ticker *time.Ticker, stop chan struct{}) {
	defer s.wg.Done()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.sweepOnce()
		}
	}
}

func (s *SweepScheduler) sweepOnce() {
	ctx := middleware.WithLogger(context.Background(), s.logger)

	result, err := s.lifecycle.RunLifecycleSweep(ctx)
	if err != nil {
		// The next tick retries naturally; eligible campaigns stay ACTIVE.
		s.logger.Error("Scheduled lifecycle sweep failed", slog.String("error", err.Error()))
		return
	}
	if result.Transitioned() > 0 {
		s.logger.Info("Scheduled lifecycle sweep completed campaigns",
			slog.Int("transitioned", result.Transitioned()),
		)
	}
}
