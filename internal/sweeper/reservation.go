package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/analos-labs/launchpad-engine/internal/adapter"
	"github.com/analos-labs/launchpad-engine/internal/engine"
	"github.com/analos-labs/launchpad-engine/internal/logger"
)

// ReservationSweeperConfig holds configuration for the reservation sweeper
type ReservationSweeperConfig struct {
	Interval       time.Duration // Time to sleep between sweep cycles
	WorkerPoolSize int           // Concurrent per-collection reaps
}

// reservationSweeper implements the Sweeper interface for expired
// reservation cleanup. Reservations that were never committed hold tier
// capacity until their TTL lapses; this sweeper returns that capacity.
type reservationSweeper struct {
	config    *ReservationSweeperConfig
	engine    engine.Engine
	clock     adapter.Clock
	pool      pond.Pool
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewReservationSweeper creates a new reservation sweeper
func NewReservationSweeper(config *ReservationSweeperConfig, eng engine.Engine, clock adapter.Clock) Sweeper {
	return &reservationSweeper{
		config:    config,
		engine:    eng,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *reservationSweeper) Name() string {
	return "reservation-sweeper"
}

// Start begins the sweeper's main loop
func (s *reservationSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh) // Signal that we've stopped
	}()

	logger.InfoCtx(ctx, "Starting reservation sweeper",
		zap.Duration("interval", s.config.Interval),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
	)

	// Create worker pool
	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithContext(ctx),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Reservation sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			s.cleanup()
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Reservation sweeper stop requested")
			s.cleanup()
			return nil
		default:
			if err := s.runSweepCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
			if !s.sleep(ctx, s.config.Interval) {
				s.cleanup()
				return nil
			}
		}
	}
}

// cleanup stops the worker pool and waits for tasks to complete
func (s *reservationSweeper) cleanup() {
	if s.pool != nil {
		s.pool.StopAndWait()
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *reservationSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping reservation sweeper")

	// Signal stop to the main loop
	close(s.stopChan)

	// Wait for main loop to exit, but respect context cancellation
	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Reservation sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Reservation sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle reaps expired reservations across all loaded
// collections, one task per collection
func (s *reservationSweeper) runSweepCycle(ctx context.Context) error {
	startTime := s.clock.Now()

	collections := s.engine.Collections()
	if len(collections) == 0 {
		return nil
	}

	var reaped atomic.Int64

	group := s.pool.NewGroup()
	for _, collectionID := range collections {
		group.Submit(func() {
			count, err := s.engine.ReapCollection(ctx, collectionID)
			if err != nil {
				logger.ErrorCtx(ctx, err, zap.String("collection_id", collectionID))
				return
			}
			reaped.Add(int64(count))
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("failed to complete sweep cycle: %w", err)
	}

	if total := reaped.Load(); total > 0 {
		logger.InfoCtx(ctx, "Sweep cycle completed",
			zap.Int64("reaped", total),
			zap.Int("collections", len(collections)),
			zap.Duration("duration", s.clock.Now().Sub(startTime)),
		)
	}

	return nil
}

// sleep waits for the given duration, returning false if interrupted by
// context cancellation or a stop request
func (s *reservationSweeper) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-s.clock.After(d):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}
