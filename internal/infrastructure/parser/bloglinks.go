package parser

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"NewsBuddy/internal/collector"
	"NewsBuddy/internal/config"
	"NewsBuddy/internal/domain"
)

var (
	iconArtifactExpr = regexp.MustCompile(`(?i)keyboard_arrow_right\s*`)
	learnMoreExpr    = regexp.MustCompile(`(?i)\s*Learn more\s*$`)
	readMoreExpr     = regexp.MustCompile(`(?i)\s*Read more\s*$`)
	slugPrefixExpr   = regexp.MustCompile(`^(blog-|post-|article-)`)

	// Navigation phrases that can never be article titles.
	boilerplateTitles = map[string]struct{}{
		"learn more":           {},
		"read more":            {},
		"keyboard_arrow_right": {},
		"see more":             {},
		"view all":             {},
	}
)

// BlogLinksCollector scans every anchor on a page and keeps the ones matching
// the source's blog patterns (options "host", "path", "sharedHost"). Sources
// handled by this strategy offer no reliable date signal, so PublishedAt is
// always left unset.
type BlogLinksCollector struct {
	client *http.Client
}

var _ collector.Collector = (*BlogLinksCollector)(nil)

// NewBlogLinksCollector wires an HTTP client; nil falls back to a bounded-timeout default.
func NewBlogLinksCollector(client *http.Client) *BlogLinksCollector {
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}
	return &BlogLinksCollector{client: client}
}

// Name identifies the strategy inside the registry.
func (c *BlogLinksCollector) Name() string {
	return config.StrategyBlogLinks
}

// Fetch downloads the listing page and extracts candidate post links,
// most recent first. Candidate URLs are normalized by stripping query
// parameters before the within-run dedup.
func (c *BlogLinksCollector) Fetch(ctx context.Context, req collector.Request) ([]domain.CollectedItem, error) {
	doc, err := fetchDocument(ctx, c.client, req.Source.URL)
	if err != nil {
		return nil, err
	}

	host := req.Source.Options["host"]
	blogPath := req.Source.Options["path"]
	sharedHost := req.Source.Options["sharedHost"]
	origin := "https://" + host

	listingAbs := strings.TrimSuffix(req.Source.URL, "/")
	listingRel := listingAbs
	if parsed, pErr := url.Parse(req.Source.URL); pErr == nil {
		listingRel = strings.TrimSuffix(parsed.Path, "/")
	}

	limit := capItems(req.MaxItems)
	items := make([]domain.CollectedItem, 0, limit)
	seen := map[string]struct{}{}

	doc.Find("a").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")
		if href == "" {
			return true
		}

		ownBlog := blogPath != "" && strings.Contains(href, blogPath) &&
			(strings.Contains(href, host) || strings.HasPrefix(href, "/"))
		shared := sharedHost != "" && strings.Contains(href, sharedHost)
		if !ownBlog && !shared {
			return true
		}

		// The listing page references itself in both forms.
		trimmed := strings.TrimSuffix(href, "/")
		if trimmed == listingAbs || trimmed == listingRel {
			return true
		}

		itemURL := href
		if strings.HasPrefix(href, "/") {
			itemURL = origin + href
		}
		itemURL, _, _ = strings.Cut(itemURL, "?")

		if _, ok := seen[itemURL]; ok {
			return true
		}
		seen[itemURL] = struct{}{}

		title := extractTitle(link, itemURL)
		if utf8.RuneCountInString(title) < minTitleLen {
			return true
		}

		items = append(items, domain.CollectedItem{
			Title:  title,
			URL:    itemURL,
			Source: req.Source.Name,
		})

		return len(items) < limit
	})

	return items, nil
}

// extractTitle runs the cascading title strategies; the first result passing
// the validity check wins. The URL slug is the terminal fallback.
func extractTitle(link *goquery.Selection, itemURL string) string {
	if aria, ok := link.Attr("aria-label"); ok {
		aria = strings.TrimSpace(aria)
		if isValidTitle(aria) {
			return aria
		}
	}

	heading := link.Find("h1, h2, h3, h4").First()
	if heading.Length() > 0 {
		text := strings.TrimSpace(heading.Text())
		if isValidTitle(text) {
			return text
		}
	}

	text := link.Text()
	text = iconArtifactExpr.ReplaceAllString(text, "")
	text = learnMoreExpr.ReplaceAllString(text, "")
	text = readMoreExpr.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	if isValidTitle(text) {
		return text
	}

	return titleFromSlug(itemURL)
}

func isValidTitle(text string) bool {
	if utf8.RuneCountInString(text) < minTitleLen {
		return false
	}
	_, bad := boilerplateTitles[strings.ToLower(strings.TrimSpace(text))]
	return !bad
}

// titleFromSlug synthesizes a title from the URL's final path segment.
func titleFromSlug(itemURL string) string {
	trimmed := strings.TrimSuffix(itemURL, "/")
	segment := trimmed[strings.LastIndex(trimmed, "/")+1:]
	segment = slugPrefixExpr.ReplaceAllString(segment, "")
	segment = strings.ReplaceAll(segment, "-", " ")
	segment = strings.ReplaceAll(segment, "_", " ")
	return cases.Title(language.English).String(segment)
}
