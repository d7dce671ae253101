package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	errs "github.com/amirhossein-jamali/vending-sync/internal/domain/error"
	coreport "github.com/amirhossein-jamali/vending-sync/internal/domain/port/core"
	"github.com/amirhossein-jamali/vending-sync/internal/domain/port/usecase"
)

// Scheduler triggers a sync run on a fixed interval
type Scheduler struct {
	syncer       usecase.SyncUseCase
	interval     time.Duration
	runTimeout   time.Duration
	timeProvider coreport.TimeProvider
	logger       coreport.Logger

	inFlight atomic.Bool
	wg       sync.WaitGroup
	done     chan struct{}
}

// NewScheduler creates a scheduler; Run returns immediately when interval is not positive
func NewScheduler(
	syncer usecase.SyncUseCase,
	interval, runTimeout time.Duration,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Scheduler {
	return &Scheduler{
		syncer:       syncer,
		interval:     interval,
		runTimeout:   runTimeout,
		timeProvider: timeProvider,
		logger:       logger,
		done:         make(chan struct{}),
	}
}

// Run ticks until ctx is canceled, then waits for the run in flight to finish
func (s *Scheduler) Run(ctx context.Context) {
	defer close(s.done)
	if s.interval <= 0 {
		s.logger.Info("Sync scheduler disabled", nil)
		return
	}

	s.logger.Info("Sync scheduler started", map[string]any{
		"interval": s.interval.String(),
		"timeout":  s.runTimeout.String(),
	})

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			s.logger.Info("Sync scheduler stopped", nil)
			return
		case <-ticker.C:
			if !s.inFlight.CompareAndSwap(false, true) {
				s.logger.Warn("Previous scheduled sync still running, skipping tick", nil)
				continue
			}
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				defer s.inFlight.Store(false)
				s.runOnce(ctx)
			}()
		}
	}
}

// Done is closed once Run has returned
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

func (s *Scheduler) runOnce(ctx context.Context) {
	runCtx := ctx
	if s.runTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = s.timeProvider.WithTimeout(ctx, s.runTimeout)
		defer cancel()
	}

	report, err := s.syncer.RunSync(runCtx)
	if err != nil {
		if errors.Is(err, errs.ErrSyncInProgress) {
			s.logger.Info("Scheduled sync skipped, a run is already in progress", nil)
			return
		}
		s.logger.Error("Scheduled sync failed", map[string]any{
			"error":      err.Error(),
			"error_code": errs.ErrorCode(err),
		})
		return
	}

	s.logger.Info("Scheduled sync finished", map[string]any{
		"run_id":          report.RunID.String(),
		"total_machines":  report.TotalMachines,
		"failed_machines": report.FailedMachines,
	})
}
