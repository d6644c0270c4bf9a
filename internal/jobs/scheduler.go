// Package jobs runs periodic maintenance on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const reconcileTimeout = 5 * time.Minute

// Reconciler rebuilds the leaderboard projection from profiles.
type Reconciler interface {
	Reconcile(ctx context.Context) (int, error)
}

// Scheduler owns the cron runner of the API process.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

// NewScheduler evaluates schedules in loc.
func NewScheduler(loc *time.Location, log *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		log:  log,
	}
}

// ScheduleReconcile runs r.Reconcile on spec, a standard five-field cron expression.
func (s *Scheduler) ScheduleReconcile(spec string, r Reconciler) error {
	_, err := s.cron.AddFunc(spec, func() { RunReconcile(r, s.log) })
	if err != nil {
		return fmt.Errorf("invalid reconcile schedule %q: %w", spec, err)
	}
	s.log.Info("leaderboard reconciliation scheduled", zap.String("schedule", spec))
	return nil
}

// RunReconcile performs one reconciliation and logs the outcome.
func RunReconcile(r Reconciler, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	defer cancel()

	start := time.Now()
	n, err := r.Reconcile(ctx)
	if err != nil {
		log.Error("leaderboard reconciliation failed", zap.Int("entries", n), zap.Error(err))
		return
	}
	log.Info("leaderboard reconciliation finished",
		zap.Int("entries", n), zap.Duration("took", time.Since(start)))
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop stops scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("scheduled jobs still running at shutdown")
	}
}

// Entries returns the number of scheduled jobs.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
