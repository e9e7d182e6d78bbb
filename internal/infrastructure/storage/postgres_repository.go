package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"NewsBuddy/internal/domain"
	"NewsBuddy/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS articles (
    id BIGSERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    url TEXT UNIQUE NOT NULL,
    source TEXT NOT NULL,
    published_at TIMESTAMPTZ,
    preview TEXT,
    scraped_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS summaries (
    id BIGSERIAL PRIMARY KEY,
    date TEXT UNIQUE NOT NULL,
    content TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_articles_source ON articles (source);
CREATE INDEX IF NOT EXISTS idx_articles_published ON articles (published_at);
CREATE INDEX IF NOT EXISTS idx_articles_scraped ON articles (scraped_at);
`

const defaultSummaryLimit = 30

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// PostgresRepository persists articles and summaries into Postgres.
type PostgresRepository struct {
	db *sql.DB
}

var _ ports.ArticleStore = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Init creates the schema. A failure here must abort startup; the process
// never runs against a partially initialized store.
func (r *PostgresRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// SaveArticle inserts one article. The url unique index is the sole dedup
// key: a conflicting insert is absorbed and reported as (0, false, nil).
func (r *PostgresRepository) SaveArticle(ctx context.Context, article domain.Article) (int64, bool, error) {
	query, args, err := psql.Insert("articles").
		Columns("title", "url", "source", "published_at", "preview", "scraped_at").
		Values(article.Title, article.URL, article.Source, article.PublishedAt, nullString(article.Preview), article.ScrapedAt).
		Suffix("ON CONFLICT (url) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return 0, false, fmt.Errorf("build insert: %w", err)
	}

	var id int64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("insert article: %w", err)
	}

	return id, true, nil
}

// Articles returns rows matching the filter, newest first. Rows without a
// publish date sort after all dated rows; scraped_at breaks ties.
func (r *PostgresRepository) Articles(ctx context.Context, filter ports.ArticleFilter) ([]domain.Article, error) {
	query, args, err := buildArticlesQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		var (
			article     domain.Article
			publishedAt sql.NullTime
			preview     sql.NullString
		)
		if err := rows.Scan(&article.ID, &article.Title, &article.URL, &article.Source, &publishedAt, &preview, &article.ScrapedAt); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		if publishedAt.Valid {
			t := publishedAt.Time
			article.PublishedAt = &t
		}
		article.Preview = preview.String
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return articles, nil
}

// SaveSummary upserts by date: an existing row for that date has its content
// and created_at replaced in place.
func (r *PostgresRepository) SaveSummary(ctx context.Context, summary domain.Summary) (int64, error) {
	query, args, err := psql.Insert("summaries").
		Columns("date", "content", "created_at").
		Values(summary.Date, summary.Content, summary.CreatedAt).
		Suffix("ON CONFLICT (date) DO UPDATE SET content = EXCLUDED.content, created_at = EXCLUDED.created_at RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build upsert: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("upsert summary: %w", err)
	}

	return id, nil
}

// LatestSummary returns the row with the maximum date, nil when none exist.
func (r *PostgresRepository) LatestSummary(ctx context.Context) (*domain.Summary, error) {
	query, args, err := psql.Select("id", "date", "content", "created_at").
		From("summaries").
		OrderBy("date DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var summary domain.Summary
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&summary.ID, &summary.Date, &summary.Content, &summary.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest summary: %w", err)
	}

	return &summary, nil
}

// RecentSummaries returns rows by date descending.
func (r *PostgresRepository) RecentSummaries(ctx context.Context, limit int) ([]domain.Summary, error) {
	if limit <= 0 {
		limit = defaultSummaryLimit
	}

	query, args, err := psql.Select("id", "date", "content", "created_at").
		From("summaries").
		OrderBy("date DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	var summaries []domain.Summary
	for rows.Next() {
		var summary domain.Summary
		if err := rows.Scan(&summary.ID, &summary.Date, &summary.Content, &summary.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return summaries, nil
}

func buildArticlesQuery(filter ports.ArticleFilter) (string, []interface{}, error) {
	builder := psql.Select("id", "title", "url", "source", "published_at", "preview", "scraped_at").
		From("articles")

	if filter.Source != "" {
		builder = builder.Where(sq.Eq{"source": filter.Source})
	}
	if filter.Since != nil {
		builder = builder.Where(sq.GtOrEq{"scraped_at": *filter.Since})
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	return builder.
		OrderBy("published_at DESC NULLS LAST", "scraped_at DESC").
		Limit(uint64(limit)).
		ToSql()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
