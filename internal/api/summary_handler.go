package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"NewsBuddy/internal/domain"
)

const (
	defaultSummaryLimit = 30
	maxSummaryLimit     = 100
)

// SummaryHandler serves the daily digest archive.
type SummaryHandler struct {
	store  ArticleReader
	logger *slog.Logger
}

// NewSummaryHandler wires the read store.
func NewSummaryHandler(store ArticleReader, logger *slog.Logger) *SummaryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryHandler{store: store, logger: logger}
}

// SummaryResponse is the JSON shape of one daily digest.
type SummaryResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

func toSummaryResponse(s domain.Summary) SummaryResponse {
	return SummaryResponse{
		ID:        s.ID,
		Date:      s.Date,
		Content:   s.Content,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
}

// GetLatestSummary renders the digest with the maximum date.
func (h *SummaryHandler) GetLatestSummary(c *gin.Context) {
	summary, err := h.store.LatestSummary(c.Request.Context())
	if err != nil {
		h.logger.Error("query latest summary", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if summary == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no summary available"})
		return
	}
	c.JSON(http.StatusOK, toSummaryResponse(*summary))
}

// GetSummaries renders the digest archive, newest date first.
func (h *SummaryHandler) GetSummaries(c *gin.Context) {
	limit := clampLimit(c.Query("limit"), defaultSummaryLimit, maxSummaryLimit)

	summaries, err := h.store.RecentSummaries(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("query summaries", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	resp := make([]SummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		resp = append(resp, toSummaryResponse(s))
	}
	c.JSON(http.StatusOK, resp)
}
