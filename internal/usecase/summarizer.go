package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"NewsBuddy/internal/domain"
	"NewsBuddy/internal/ports"
)

const (
	noArticlesPlaceholder = "No new articles were published in the last 24 hours."

	maxDigestArticles  = 50
	promptPreviewRunes = 300
	linksPerSource     = 5
)

// SummarizerDeps wires the digest generation.
type SummarizerDeps struct {
	Store ports.ArticleStore
	// Digest is nil when no LLM credential is configured; the deterministic
	// fallback is used instead.
	Digest   ports.DigestClient
	Lookback time.Duration
	Logger   *slog.Logger
	Now      func() time.Time
}

// Summarizer turns the recent article window into a persisted daily digest.
type Summarizer struct {
	store    ports.ArticleStore
	digest   ports.DigestClient
	lookback time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewSummarizer constructs the digest use case.
func NewSummarizer(deps SummarizerDeps) *Summarizer {
	lookback := deps.Lookback
	if lookback <= 0 {
		lookback = 24 * time.Hour
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{
		store:    deps.Store,
		digest:   deps.Digest,
		lookback: lookback,
		logger:   logger,
		now:      now,
	}
}

// Generate builds today's digest from articles scraped within the lookback
// window and upserts it under the current calendar date. The returned
// Summary reflects exactly what was stored. A summarization-service failure
// is absorbed by falling back to the deterministic digest; the only errors
// returned here come from the store itself.
func (s *Summarizer) Generate(ctx context.Context) (domain.Summary, error) {
	now := s.now()
	since := now.Add(-s.lookback)

	articles, err := s.store.Articles(ctx, ports.ArticleFilter{Since: &since, Limit: maxDigestArticles})
	if err != nil {
		return domain.Summary{}, fmt.Errorf("query article window: %w", err)
	}

	var content string
	if len(articles) == 0 {
		content = noArticlesPlaceholder
	} else {
		content = s.digestContent(ctx, articles, now)
	}

	summary := domain.Summary{
		Date:      now.Format("2006-01-02"),
		Content:   content,
		CreatedAt: now,
	}

	id, err := s.store.SaveSummary(ctx, summary)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("save summary: %w", err)
	}
	summary.ID = id

	return summary, nil
}

func (s *Summarizer) digestContent(ctx context.Context, articles []domain.Article, now time.Time) string {
	if s.digest == nil {
		return fallbackDigest(articles, now)
	}

	text, err := s.digest.Summarize(ctx, buildPrompt(articles))
	if err != nil {
		s.logger.Error("summarization failed, using fallback", "error", err)
		return fallbackDigest(articles, now)
	}
	return text
}

func buildPrompt(articles []domain.Article) string {
	var sb strings.Builder
	sb.WriteString("Summarize the following news articles from major AI companies into a cohesive daily digest.\n\n")
	sb.WriteString("The summary should:\n")
	sb.WriteString("1. Group related news by theme or company\n")
	sb.WriteString("2. Highlight the most significant developments\n")
	sb.WriteString("3. Be written in a professional but accessible tone\n")
	sb.WriteString("4. Include relevant links to the original articles\n")
	sb.WriteString("5. Be around 400-600 words\n\n")
	sb.WriteString("Here are today's articles:\n\n")

	for i, article := range articles {
		preview := article.Preview
		if preview == "" {
			preview = "(No preview available)"
		}
		sb.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, article.Source, article.Title))
		sb.WriteString(fmt.Sprintf("   URL: %s\n", article.URL))
		sb.WriteString(fmt.Sprintf("   Preview: %s\n", truncateRunes(preview, promptPreviewRunes)))
	}

	sb.WriteString("\nWrite the daily AI news summary in markdown format:")
	return sb.String()
}

// fallbackDigest is the deterministic digest used when no LLM credential is
// configured or the primary path fails: article links grouped by source,
// sections in alphabetical order, capped per source.
func fallbackDigest(articles []domain.Article, now time.Time) string {
	bySource := map[string][]domain.Article{}
	for _, article := range articles {
		bySource[article.Source] = append(bySource[article.Source], article)
	}

	names := make([]string, 0, len(bySource))
	for name := range bySource {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("# Daily AI News Digest\n")
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("\n## %s\n\n", name))
		for i, article := range bySource[name] {
			if i == linksPerSource {
				break
			}
			sb.WriteString(fmt.Sprintf("- [%s](%s)\n", article.Title, article.URL))
		}
	}
	sb.WriteString(fmt.Sprintf("\n*Generated on %s*\n", now.Format("2006-01-02 15:04")))

	return sb.String()
}

func truncateRunes(s string, limit int) string {
	rs := []rune(strings.TrimSpace(s))
	if len(rs) <= limit {
		return string(rs)
	}
	return string(rs[:limit])
}
