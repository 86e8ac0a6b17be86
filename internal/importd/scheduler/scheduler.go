// Package scheduler drives the periodic import cycle.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vinsync-io/vinsync/internal/importd/core/service"
	"github.com/vinsync-io/vinsync/pkg/log"
)

// Scheduler triggers a batch run at a fixed interval. It never queues:
// a run that overlaps the previous one is simply rejected by the engine.
type Scheduler struct {
	svc      *service.Service
	interval time.Duration

	mu      sync.Mutex
	nextRun time.Time
}

// New creates a scheduler for the given engine and interval.
func New(svc *service.Service, interval time.Duration) *Scheduler {
	return &Scheduler{svc: svc, interval: interval}
}

// Start runs the schedule loop until ctx is done. It always returns nil;
// individual batch failures are logged, never fatal.
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info("scheduler started", "interval", s.interval.String())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.setNextRun(time.Now().Add(s.interval))

	for {
		select {
		case <-ctx.Done():
			log.Info("scheduler stopped")
			return nil
		case <-ticker.C:
			s.setNextRun(time.Now().Add(s.interval))
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	err := s.svc.ProcessBatch(ctx, service.TriggerSchedule)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrPaused):
		// Already written to the operator log by the engine.
	case errors.Is(err, service.ErrRunInProgress):
		log.Warn("scheduled batch skipped, previous run still in progress")
	case errors.Is(err, context.Canceled):
	default:
		log.Error(err, "scheduled batch failed")
	}
}

// NextRun reports when the next scheduled batch fires.
func (s *Scheduler) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextRun
}

func (s *Scheduler) setNextRun(t time.Time) {
	s.mu.Lock()
	s.nextRun = t
	s.mu.Unlock()
}
