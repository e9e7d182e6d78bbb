package parser

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"NewsBuddy/internal/collector"
	"NewsBuddy/internal/config"
	"NewsBuddy/internal/domain"
)

const minTitleLen = 5

var monthDateExpr = regexp.MustCompile(`(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{1,2},?\s+\d{4}`)

// NewsListCollector scrapes an index page whose article links share a fixed
// path prefix (option "path"), e.g. the Anthropic newsroom.
type NewsListCollector struct {
	client *http.Client
}

var _ collector.Collector = (*NewsListCollector)(nil)

// NewNewsListCollector wires an HTTP client; nil falls back to a bounded-timeout default.
func NewNewsListCollector(client *http.Client) *NewsListCollector {
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}
	return &NewsListCollector{client: client}
}

// Name identifies the strategy inside the registry.
func (c *NewsListCollector) Name() string {
	return config.StrategyNewsList
}

// Fetch downloads the index page and extracts article anchors under the
// configured path prefix, most recent first.
func (c *NewsListCollector) Fetch(ctx context.Context, req collector.Request) ([]domain.CollectedItem, error) {
	pathPrefix := req.Source.Options["path"]
	if pathPrefix == "" {
		return nil, fmt.Errorf("source %s: newslist strategy requires a path option", req.Source.Name)
	}
	origin := req.Source.Options["origin"]
	if origin == "" {
		derived, err := originOf(req.Source.URL)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", req.Source.Name, err)
		}
		origin = derived
	}

	doc, err := fetchDocument(ctx, c.client, req.Source.URL)
	if err != nil {
		return nil, err
	}

	limit := capItems(req.MaxItems)
	items := make([]domain.CollectedItem, 0, limit)
	seen := map[string]struct{}{}

	doc.Find(fmt.Sprintf("a[href^='%s']", pathPrefix)).EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")

		// The listing page links to itself; skip it.
		if strings.TrimSuffix(href, "/") == strings.TrimSuffix(pathPrefix, "/") {
			return true
		}

		itemURL := href
		if strings.HasPrefix(href, "/") {
			itemURL = strings.TrimSuffix(origin, "/") + href
		}
		if _, ok := seen[itemURL]; ok {
			return true
		}

		title := strings.TrimSpace(link.Text())
		if utf8.RuneCountInString(title) < minTitleLen {
			return true
		}

		seen[itemURL] = struct{}{}
		items = append(items, domain.CollectedItem{
			Title:       title,
			URL:         itemURL,
			Source:      req.Source.Name,
			PublishedAt: dateFromContext(link),
		})

		return len(items) < limit
	})

	return items, nil
}

// dateFromContext scans the anchor's parent text for a month-name date.
// Anything unparseable leaves the date unset, never fails.
func dateFromContext(link *goquery.Selection) *time.Time {
	parent := link.Parent()
	if parent.Length() == 0 {
		return nil
	}

	match := monthDateExpr.FindString(parent.Text())
	if match == "" {
		return nil
	}

	for _, layout := range []string{"Jan 2, 2006", "Jan 2 2006"} {
		if parsed, err := time.Parse(layout, match); err == nil {
			return &parsed
		}
	}
	return nil
}

func originOf(pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("cannot derive origin from %s", pageURL)
	}
	return parsed.Scheme + "://" + parsed.Host, nil
}
