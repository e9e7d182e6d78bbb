package domain

import "time"

// CollectedItem is a raw item produced by one collector run. It lives only
// within that run; persistence assigns identity and ownership.
type CollectedItem struct {
	Title       string
	URL         string
	Source      string
	PublishedAt *time.Time
	Preview     string
}

// Article is a persisted news item. URL is unique across the whole store and
// is the sole dedup key; rows are never mutated after insert.
type Article struct {
	ID          int64
	Title       string
	URL         string
	Source      string
	PublishedAt *time.Time
	Preview     string
	ScrapedAt   time.Time
}

// Summary is a daily digest keyed by calendar date (YYYY-MM-DD). At most one
// row exists per date; regeneration replaces content in place.
type Summary struct {
	ID        int64
	Date      string
	Content   string
	CreatedAt time.Time
}
