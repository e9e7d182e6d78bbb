package parser

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mmcdole/gofeed"

	"NewsBuddy/internal/collector"
	"NewsBuddy/internal/config"
	"NewsBuddy/internal/domain"
)

const previewMaxRunes = 500

// FeedCollector parses syndication feeds (RSS/Atom) into collected items.
type FeedCollector struct {
	parser *gofeed.Parser
}

var _ collector.Collector = (*FeedCollector)(nil)

// NewFeedCollector wires an HTTP client; nil falls back to a bounded-timeout default.
func NewFeedCollector(client *http.Client) *FeedCollector {
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}
	fp := gofeed.NewParser()
	fp.Client = client
	fp.UserAgent = userAgent
	return &FeedCollector{parser: fp}
}

// Name identifies the strategy inside the registry.
func (f *FeedCollector) Name() string {
	return config.StrategyFeed
}

// Fetch downloads the feed document and maps its entries. Entry dates are
// parsed tolerantly: a malformed or missing date leaves PublishedAt unset.
func (f *FeedCollector) Fetch(ctx context.Context, req collector.Request) ([]domain.CollectedItem, error) {
	feed, err := f.parser.ParseURLWithContext(req.Source.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", req.Source.URL, err)
	}

	limit := capItems(req.MaxItems)
	items := make([]domain.CollectedItem, 0, limit)
	for _, entry := range feed.Items {
		if len(items) == limit {
			break
		}
		if entry == nil || entry.Link == "" {
			continue
		}

		title := entry.Title
		if title == "" {
			title = "Untitled"
		}

		items = append(items, domain.CollectedItem{
			Title:       title,
			URL:         entry.Link,
			Source:      req.Source.Name,
			PublishedAt: entry.PublishedParsed,
			Preview:     truncateRunes(entry.Description, previewMaxRunes),
		})
	}

	return items, nil
}
