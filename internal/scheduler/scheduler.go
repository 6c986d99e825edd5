// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// PurgeSpec is the cron schedule for the expired-session purge.
const PurgeSpec = "@hourly"

const jobTimeout = time.Minute

// SessionPurger deletes expired sessions.
type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// Scheduler wraps a cron runner.
type Scheduler struct {
	cron   *cron.Cron
	purger SessionPurger
}

// New registers the maintenance jobs. Call Start to begin running them.
func New(purger SessionPurger) (*Scheduler, error) {
	s := &Scheduler{cron: cron.New(), purger: purger}
	if _, err := s.cron.AddFunc(PurgeSpec, func() { s.PurgeSessions(context.Background()) }); err != nil {
		return nil, err
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler_started", "jobs", len(s.cron.Entries()))
}

// Stop halts the scheduler and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// PurgeSessions deletes expired sessions and logs the outcome.
func (s *Scheduler) PurgeSessions(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	n, err := s.purger.PurgeExpiredSessions(ctx)
	if err != nil {
		slog.Error("session_purge_failed", "error", err.Error())
		return
	}
	slog.Info("session_purge", "deleted", n)
}
