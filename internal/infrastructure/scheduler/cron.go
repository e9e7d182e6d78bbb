package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"NewsBuddy/internal/ports"
)

// CronScheduler runs background jobs on cron triggers, separate from the
// goroutines serving read queries.
type CronScheduler struct {
	cron   *cron.Cron
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

var _ ports.Scheduler = (*CronScheduler)(nil)

// NewCronScheduler builds an idle scheduler; Start begins firing.
func NewCronScheduler(logger *slog.Logger) *CronScheduler {
	return &CronScheduler{
		cron:    cron.New(),
		logger:  logger,
		entries: map[string]cron.EntryID{},
	}
}

// Register installs a job under a stable name. An existing registration with
// the same name is removed first, so at most one future firing schedule
// exists per job identity.
func (s *CronScheduler) Register(name, spec string, job func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.entries[name]; ok {
		s.cron.Remove(old)
	}

	id, err := s.cron.AddFunc(spec, job)
	if err != nil {
		return fmt.Errorf("register job %s (%s): %w", name, spec, err)
	}
	s.entries[name] = id

	if s.logger != nil {
		s.logger.Info("job registered", "job", name, "spec", spec)
	}
	return nil
}

// Start begins firing registered jobs on their own goroutines.
func (s *CronScheduler) Start() {
	s.cron.Start()
}

// Stop halts future firings. An in-flight job runs to completion; waiting for
// it is bounded by ctx.
func (s *CronScheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
	return nil
}

func (s *CronScheduler) entryCount() int {
	return len(s.cron.Entries())
}
