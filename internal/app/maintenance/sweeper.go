// Package maintenance runs background reconciliation over the task store.
package maintenance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/taskboard/tracker/internal/app/metrics"
	"github.com/taskboard/tracker/internal/app/storage"
	"github.com/taskboard/tracker/internal/app/system"
	"github.com/taskboard/tracker/internal/logging"
)

var _ system.Service = (*Sweeper)(nil)

// DefaultSchedule runs the sweep once an hour.
const DefaultSchedule = "@hourly"

// Sweeper deletes tasks whose project no longer exists. Project deletion
// already cascades atomically; the sweep cleans up rows left behind by
// deployments that did not.
type Sweeper struct {
	store    storage.TaskStore
	log      *logging.Logger
	schedule string
	timeout  time.Duration

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

// NewSweeper creates a sweeper. An empty schedule uses DefaultSchedule.
func NewSweeper(store storage.TaskStore, schedule string, log *logging.Logger) *Sweeper {
	if log == nil {
		log = logging.NewDefault("maintenance")
	}
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &Sweeper{
		store:    store,
		log:      log,
		schedule: schedule,
		timeout:  time.Minute,
	}
}

func (s *Sweeper) Name() string { return "orphan-sweeper" }

// Start schedules the sweep. It fails if the schedule does not parse.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(s.schedule, func() {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		_, _ = s.RunOnce(runCtx)
	}); err != nil {
		return fmt.Errorf("parse sweep schedule %q: %w", s.schedule, err)
	}
	c.Start()

	s.cron = c
	s.running = true
	s.log.WithField("schedule", s.schedule).Info("orphan sweeper started")
	return nil
}

// Stop waits for an in-flight sweep to finish or ctx to expire.
func (s *Sweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	c := s.cron
	s.cron = nil
	s.running = false
	s.mu.Unlock()

	select {
	case <-c.Stop().Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	s.log.Info("orphan sweeper stopped")
	return nil
}

// RunOnce performs a single sweep and returns the number of tasks removed.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	start := time.Now()
	removed, err := s.store.DeleteOrphanTasks(ctx)
	metrics.RecordOrphanSweep(removed, time.Since(start), err == nil)
	if err != nil {
		s.log.WithContext(ctx).WithError(err).Warn("orphan sweep failed")
		return 0, err
	}
	if removed > 0 {
		s.log.WithContext(ctx).WithField("removed", removed).Info("orphan tasks removed")
	}
	return removed, nil
}
