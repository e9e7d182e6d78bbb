package storage

import (
	"strings"
	"testing"
	"time"

	"NewsBuddy/internal/ports"
)

func TestBuildArticlesQueryDefaults(t *testing.T) {
	t.Parallel()

	query, args, err := buildArticlesQuery(ports.ArticleFilter{})
	if err != nil {
		t.Fatalf("buildArticlesQuery error: %v", err)
	}

	want := "SELECT id, title, url, source, published_at, preview, scraped_at FROM articles " +
		"ORDER BY published_at DESC NULLS LAST, scraped_at DESC LIMIT 100"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestBuildArticlesQueryFilters(t *testing.T) {
	t.Parallel()

	since := time.Date(2025, 12, 8, 6, 0, 0, 0, time.UTC)
	query, args, err := buildArticlesQuery(ports.ArticleFilter{Source: "OpenAI", Since: &since, Limit: 50})
	if err != nil {
		t.Fatalf("buildArticlesQuery error: %v", err)
	}

	if !strings.Contains(query, "source = $1") {
		t.Fatalf("expected source predicate, got: %s", query)
	}
	if !strings.Contains(query, "scraped_at >= $2") {
		t.Fatalf("expected scraped_at lower bound, got: %s", query)
	}
	if !strings.HasSuffix(query, "LIMIT 50") {
		t.Fatalf("expected limit clause, got: %s", query)
	}
	if len(args) != 2 || args[0] != "OpenAI" || args[1] != since {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildArticlesQueryOrdering(t *testing.T) {
	t.Parallel()

	query, _, err := buildArticlesQuery(ports.ArticleFilter{Limit: 10})
	if err != nil {
		t.Fatalf("buildArticlesQuery error: %v", err)
	}

	// Rows lacking a publish date sort after all dated rows; scraped_at
	// breaks ties within each group.
	if !strings.Contains(query, "ORDER BY published_at DESC NULLS LAST, scraped_at DESC") {
		t.Fatalf("unexpected ordering clause: %s", query)
	}
}

func TestNullString(t *testing.T) {
	t.Parallel()

	if v := nullString(""); v.Valid {
		t.Fatal("empty preview must map to NULL")
	}
	if v := nullString("text"); !v.Valid || v.String != "text" {
		t.Fatalf("unexpected NullString: %+v", v)
	}
}
