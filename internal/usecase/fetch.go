package usecase

import (
	"context"
	"log/slog"
	"time"

	"NewsBuddy/internal/collector"
	"NewsBuddy/internal/config"
	"NewsBuddy/internal/domain"
	"NewsBuddy/internal/ports"
)

// FetcherDeps wires the collection run.
type FetcherDeps struct {
	Registry *collector.Registry
	Sources  []config.SourceConfig
	Store    ports.ArticleStore
	MaxItems int
	Logger   *slog.Logger
	Now      func() time.Time
}

// Fetcher executes one collection pass across all enabled sources.
type Fetcher struct {
	registry *collector.Registry
	sources  []config.SourceConfig
	store    ports.ArticleStore
	maxItems int
	logger   *slog.Logger
	now      func() time.Time
}

// NewFetcher constructs the fetch use case.
func NewFetcher(deps FetcherDeps) *Fetcher {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		registry: deps.Registry,
		sources:  deps.Sources,
		store:    deps.Store,
		maxItems: deps.MaxItems,
		logger:   logger,
		now:      now,
	}
}

// FetchAll runs every enabled source's collector in configuration order and
// persists the results in that same order. A failure in one collector is
// logged with the source name and does not stop the remaining collectors.
// Returns the total number of newly persisted articles for the run.
func (f *Fetcher) FetchAll(ctx context.Context) int {
	total := 0

	for _, src := range f.sources {
		if !src.Enabled {
			continue
		}

		col, err := f.registry.Resolve(src.Strategy)
		if err != nil {
			f.logger.Error("no collector for source", "source", src.Name, "error", err)
			continue
		}

		f.logger.Info("fetching source", "source", src.Name, "strategy", src.Strategy)
		items, err := col.Fetch(ctx, collector.Request{Source: src, MaxItems: f.maxItems})
		if err != nil {
			f.logger.Error("fetch failed", "source", src.Name, "error", err)
			continue
		}

		newCount := 0
		for _, item := range items {
			_, inserted, saveErr := f.store.SaveArticle(ctx, domain.Article{
				Title:       item.Title,
				URL:         item.URL,
				Source:      item.Source,
				PublishedAt: item.PublishedAt,
				Preview:     item.Preview,
				ScrapedAt:   f.now(),
			})
			if saveErr != nil {
				f.logger.Error("save article failed", "source", src.Name, "url", item.URL, "error", saveErr)
				continue
			}
			if inserted {
				newCount++
			}
		}

		f.logger.Info("source done", "source", src.Name, "found", len(items), "new", newCount)
		total += newCount
	}

	f.logger.Info("fetch complete", "new_articles", total)
	return total
}
