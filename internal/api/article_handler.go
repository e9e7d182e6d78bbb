package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"NewsBuddy/internal/domain"
	"NewsBuddy/internal/ports"
)

const (
	defaultArticleLimit = 50
	maxArticleLimit     = 200
)

// ArticleHandler serves the article feed and the manual fetch trigger.
type ArticleHandler struct {
	store   ArticleReader
	fetcher FetchRunner
	logger  *slog.Logger
}

// NewArticleHandler wires the read store and the fetch trigger.
func NewArticleHandler(store ArticleReader, fetcher FetchRunner, logger *slog.Logger) *ArticleHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArticleHandler{store: store, fetcher: fetcher, logger: logger}
}

// ArticleResponse is the JSON shape of one persisted article.
type ArticleResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Source      string  `json:"source"`
	PublishedAt *string `json:"published_at"`
	Preview     string  `json:"preview,omitempty"`
	ScrapedAt   string  `json:"scraped_at"`
}

func toArticleResponse(a domain.Article) ArticleResponse {
	var publishedAt *string
	if a.PublishedAt != nil {
		v := a.PublishedAt.Format(time.RFC3339)
		publishedAt = &v
	}
	return ArticleResponse{
		ID:          a.ID,
		Title:       a.Title,
		URL:         a.URL,
		Source:      a.Source,
		PublishedAt: publishedAt,
		Preview:     a.Preview,
		ScrapedAt:   a.ScrapedAt.Format(time.RFC3339),
	}
}

// GetArticles renders the unified feed, optionally filtered by source.
func (h *ArticleHandler) GetArticles(c *gin.Context) {
	filter := ports.ArticleFilter{
		Source: c.Query("source"),
		Limit:  clampLimit(c.Query("limit"), defaultArticleLimit, maxArticleLimit),
	}

	articles, err := h.store.Articles(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("query articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	resp := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		resp = append(resp, toArticleResponse(a))
	}
	c.JSON(http.StatusOK, resp)
}

// TriggerFetch runs one collection pass and reports the new-article count.
func (h *ArticleHandler) TriggerFetch(c *gin.Context) {
	count := h.fetcher.FetchAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"new_articles": count})
}

// GetHealth reports liveness.
func (h *ArticleHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func clampLimit(raw string, def, max int) int {
	if raw == "" {
		return def
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
