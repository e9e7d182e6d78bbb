package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"NewsBuddy/internal/api"
	"NewsBuddy/internal/collector"
	"NewsBuddy/internal/config"
	"NewsBuddy/internal/domain"
	"NewsBuddy/internal/infrastructure/llm"
	"NewsBuddy/internal/infrastructure/parser"
	"NewsBuddy/internal/infrastructure/scheduler"
	"NewsBuddy/internal/infrastructure/storage"
	"NewsBuddy/internal/logging"
	"NewsBuddy/internal/ports"
	"NewsBuddy/internal/usecase"
)

const (
	shutdownTimeout = 10 * time.Second
	startupTimeout  = 15 * time.Second
)

// Application wires configuration to use cases and lifecycle orchestration.
type Application struct {
	cfg        config.Config
	logger     *slog.Logger
	store      *storage.PostgresRepository
	fetcher    *usecase.Fetcher
	summarizer *usecase.Summarizer
	scheduler  *scheduler.CronScheduler
	router     http.Handler
}

// New builds a runnable application. Store initialization is the only fatal
// startup condition: a schema failure aborts here rather than running with a
// partially initialized store.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	initCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	db, err := storage.Open(initCtx, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect store: %w", err)
	}
	store := storage.NewPostgresRepository(db)
	if err := store.Init(initCtx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("initialize store: %w", err)
	}

	registry := collector.NewRegistry()
	registry.Register(parser.NewFeedCollector(nil))
	registry.Register(parser.NewNewsListCollector(nil))
	registry.Register(parser.NewBlogLinksCollector(nil))

	var digest ports.DigestClient
	if cfg.OpenAI.APIKey != "" {
		digest = llm.NewOpenAIClient(cfg.OpenAI)
	}

	fetcher := usecase.NewFetcher(usecase.FetcherDeps{
		Registry: registry,
		Sources:  cfg.Sources,
		Store:    store,
		MaxItems: cfg.Scraping.ArticlesPerSource,
		Logger:   logging.Component(baseLogger, "fetcher"),
	})

	summarizer := usecase.NewSummarizer(usecase.SummarizerDeps{
		Store:    store,
		Digest:   digest,
		Lookback: cfg.Scraping.Lookback(),
		Logger:   logging.Component(baseLogger, "summarizer"),
	})

	sched := scheduler.NewCronScheduler(logging.Component(baseLogger, "scheduler"))
	jobs := usecase.NewJobs(sched, fetcher, summarizer, logging.Component(baseLogger, "jobs"))
	if err := jobs.Register(cfg.Scheduler); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("register jobs: %w", err)
	}

	router := api.NewRouter(api.Deps{
		Store:   store,
		Fetcher: fetcher,
		Logger:  logging.Component(baseLogger, "api"),
	})

	return &Application{
		cfg:        cfg,
		logger:     baseLogger,
		store:      store,
		fetcher:    fetcher,
		summarizer: summarizer,
		scheduler:  sched,
		router:     router,
	}, nil
}

// FetchOnce runs one collection pass and returns the new-article count.
func (a *Application) FetchOnce(ctx context.Context) int {
	return a.fetcher.FetchAll(ctx)
}

// Summarize generates and persists today's digest.
func (a *Application) Summarize(ctx context.Context) (domain.Summary, error) {
	return a.summarizer.Generate(ctx)
}

// Serve runs the HTTP read surface until ctx is canceled.
func (a *Application) Serve(ctx context.Context) error {
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port),
		Handler: a.router,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// Run starts the background scheduler, does an initial fetch, and serves the
// HTTP surface until ctx is canceled. The scheduler is stopped best-effort
// before returning; no in-flight job is forcibly interrupted.
func (a *Application) Run(ctx context.Context) error {
	a.logger.Info("running initial fetch")
	a.fetcher.FetchAll(ctx)

	a.scheduler.Start()
	a.logger.Info("scheduler started",
		"fetch_interval", a.cfg.Scheduler.FetchInterval(),
		"summary_at", fmt.Sprintf("%02d:%02d", a.cfg.Scheduler.SummaryHour, a.cfg.Scheduler.SummaryMinute))

	serveErr := a.Serve(ctx)

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.scheduler.Stop(stopCtx); err != nil {
		a.logger.Error("scheduler stop", "error", err)
	}

	return serveErr
}

// Close releases the store's connection pool.
func (a *Application) Close() error {
	return a.store.Close()
}
