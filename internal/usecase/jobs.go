package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"NewsBuddy/internal/config"
	"NewsBuddy/internal/ports"
)

// Stable job identities. The scheduler keeps at most one future firing
// schedule per identity, so registering again after a restart replaces the
// prior schedule instead of duplicating it.
const (
	fetchJobName   = "fetch_articles"
	summaryJobName = "daily_summary"
)

// Jobs binds the fetch and summary runs to the background scheduler.
type Jobs struct {
	scheduler  ports.Scheduler
	fetcher    *Fetcher
	summarizer *Summarizer
	logger     *slog.Logger
}

// NewJobs constructs the job bindings.
func NewJobs(sched ports.Scheduler, fetcher *Fetcher, summarizer *Summarizer, logger *slog.Logger) *Jobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &Jobs{scheduler: sched, fetcher: fetcher, summarizer: summarizer, logger: logger}
}

// Register installs both triggers: the fetch run on a fixed interval and the
// summary run daily at the configured wall-clock time. A job failure is
// logged and never reaches the scheduler's own failure path.
func (j *Jobs) Register(cfg config.SchedulerConfig) error {
	fetchSpec := fmt.Sprintf("@every %s", cfg.FetchInterval())
	if err := j.scheduler.Register(fetchJobName, fetchSpec, func() {
		j.fetcher.FetchAll(context.Background())
	}); err != nil {
		return fmt.Errorf("register fetch job: %w", err)
	}

	summarySpec := fmt.Sprintf("%d %d * * *", cfg.SummaryMinute, cfg.SummaryHour)
	if err := j.scheduler.Register(summaryJobName, summarySpec, func() {
		if _, err := j.summarizer.Generate(context.Background()); err != nil {
			j.logger.Error("daily summary failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("register summary job: %w", err)
	}

	return nil
}
