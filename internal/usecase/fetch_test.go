package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"NewsBuddy/internal/collector"
	"NewsBuddy/internal/config"
	"NewsBuddy/internal/domain"
	"NewsBuddy/internal/ports"
)

// fakeStore is an in-memory ports.ArticleStore honouring url dedup and
// upsert-by-date semantics.
type fakeStore struct {
	articles  []domain.Article
	summaries []domain.Summary
	queryErr  error
	saveErr   error

	lastFilter ports.ArticleFilter
	nextID     int64
}

var _ ports.ArticleStore = (*fakeStore)(nil)

func (f *fakeStore) SaveArticle(_ context.Context, article domain.Article) (int64, bool, error) {
	if f.saveErr != nil {
		return 0, false, f.saveErr
	}
	for _, existing := range f.articles {
		if existing.URL == article.URL {
			return 0, false, nil
		}
	}
	f.nextID++
	article.ID = f.nextID
	f.articles = append(f.articles, article)
	return article.ID, true, nil
}

func (f *fakeStore) Articles(_ context.Context, filter ports.ArticleFilter) ([]domain.Article, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	f.lastFilter = filter
	return f.articles, nil
}

func (f *fakeStore) SaveSummary(_ context.Context, summary domain.Summary) (int64, error) {
	if f.saveErr != nil {
		return 0, f.saveErr
	}
	for i, existing := range f.summaries {
		if existing.Date == summary.Date {
			summary.ID = existing.ID
			f.summaries[i] = summary
			return summary.ID, nil
		}
	}
	f.nextID++
	summary.ID = f.nextID
	f.summaries = append(f.summaries, summary)
	return summary.ID, nil
}

func (f *fakeStore) LatestSummary(_ context.Context) (*domain.Summary, error) {
	if len(f.summaries) == 0 {
		return nil, nil
	}
	latest := f.summaries[0]
	for _, s := range f.summaries[1:] {
		if s.Date > latest.Date {
			latest = s
		}
	}
	return &latest, nil
}

func (f *fakeStore) RecentSummaries(_ context.Context, limit int) ([]domain.Summary, error) {
	if limit > len(f.summaries) {
		limit = len(f.summaries)
	}
	return f.summaries[:limit], nil
}

type stubCollector struct {
	name  string
	items []domain.CollectedItem
	err   error
}

func (s stubCollector) Name() string { return s.name }

func (s stubCollector) Fetch(context.Context, collector.Request) ([]domain.CollectedItem, error) {
	return s.items, s.err
}

func TestFetchAllIsolatesFailingCollector(t *testing.T) {
	t.Parallel()

	registry := collector.NewRegistry()
	registry.Register(stubCollector{
		name: config.StrategyFeed,
		items: []domain.CollectedItem{
			{Title: "First article", URL: "https://example.com/a", Source: "OpenAI"},
			{Title: "Second article", URL: "https://example.com/b", Source: "OpenAI"},
		},
	})
	registry.Register(stubCollector{
		name: config.StrategyNewsList,
		err:  errors.New("connection refused"),
	})
	registry.Register(stubCollector{
		name: config.StrategyBlogLinks,
		items: []domain.CollectedItem{
			// Same URL as the first source: the store absorbs it as a duplicate.
			{Title: "First article", URL: "https://example.com/a", Source: "DeepMind"},
			{Title: "Third article", URL: "https://example.com/c", Source: "DeepMind"},
		},
	})

	store := &fakeStore{}
	fetcher := NewFetcher(FetcherDeps{
		Registry: registry,
		Sources: []config.SourceConfig{
			{Name: "OpenAI", Strategy: config.StrategyFeed, Enabled: true},
			{Name: "Anthropic", Strategy: config.StrategyNewsList, Enabled: true},
			{Name: "DeepMind", Strategy: config.StrategyBlogLinks, Enabled: true},
			{Name: "Disabled", Strategy: config.StrategyFeed, Enabled: false},
		},
		Store: store,
	})

	total := fetcher.FetchAll(context.Background())

	if total != 3 {
		t.Fatalf("expected 3 new articles across surviving collectors, got %d", total)
	}
	if len(store.articles) != 3 {
		t.Fatalf("expected 3 stored rows, got %d", len(store.articles))
	}
}

func TestFetchAllPersistsInConfigurationOrder(t *testing.T) {
	t.Parallel()

	registry := collector.NewRegistry()
	for i, name := range []string{config.StrategyFeed, config.StrategyNewsList} {
		registry.Register(stubCollector{
			name: name,
			items: []domain.CollectedItem{
				{Title: "An article title", URL: fmt.Sprintf("https://example.com/%d", i), Source: name},
			},
		})
	}

	store := &fakeStore{}
	fetcher := NewFetcher(FetcherDeps{
		Registry: registry,
		Sources: []config.SourceConfig{
			{Name: "Second", Strategy: config.StrategyNewsList, Enabled: true},
			{Name: "First", Strategy: config.StrategyFeed, Enabled: true},
		},
		Store: store,
		Now:   func() time.Time { return time.Date(2025, 12, 9, 12, 0, 0, 0, time.UTC) },
	})

	fetcher.FetchAll(context.Background())

	if len(store.articles) != 2 {
		t.Fatalf("expected 2 stored rows, got %d", len(store.articles))
	}
	if store.articles[0].Source != config.StrategyNewsList {
		t.Fatalf("sources must persist in configuration order, got %s first", store.articles[0].Source)
	}
	if !store.articles[0].ScrapedAt.Equal(time.Date(2025, 12, 9, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected scraped_at: %v", store.articles[0].ScrapedAt)
	}
}

func TestFetchAllUnknownStrategy(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	fetcher := NewFetcher(FetcherDeps{
		Registry: collector.NewRegistry(),
		Sources:  []config.SourceConfig{{Name: "Ghost", Strategy: "missing", Enabled: true}},
		Store:    store,
	})

	if total := fetcher.FetchAll(context.Background()); total != 0 {
		t.Fatalf("expected 0 new articles, got %d", total)
	}
}
