package ports

import (
	"context"
	"time"

	"NewsBuddy/internal/domain"
)

// ArticleFilter narrows Articles queries. Zero values mean "no filter".
type ArticleFilter struct {
	Source string
	Since  *time.Time
	Limit  int
}

// ArticleStore persists collected items and serves all read queries.
type ArticleStore interface {
	// SaveArticle inserts one article. A duplicate URL is a normal outcome:
	// it returns (0, false, nil) and leaves the existing row untouched.
	SaveArticle(ctx context.Context, article domain.Article) (int64, bool, error)
	// Articles returns rows ordered by published_at descending with unset
	// dates sorted last, tie-broken by scraped_at descending.
	Articles(ctx context.Context, filter ArticleFilter) ([]domain.Article, error)
	// SaveSummary upserts by date, replacing content and created_at in place.
	SaveSummary(ctx context.Context, summary domain.Summary) (int64, error)
	// LatestSummary returns the row with the maximum date, nil when empty.
	LatestSummary(ctx context.Context) (*domain.Summary, error)
	// RecentSummaries returns rows by date descending.
	RecentSummaries(ctx context.Context, limit int) ([]domain.Summary, error)
}

// DigestClient issues one summarization request to an external LLM.
type DigestClient interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// Scheduler drives background jobs on independent timing triggers.
type Scheduler interface {
	// Register installs a job under a stable identity. Re-registering the
	// same name replaces the existing schedule rather than duplicating it.
	Register(name, spec string, job func()) error
	Start()
	Stop(ctx context.Context) error
}
