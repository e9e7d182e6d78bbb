package api

import (
	"context"
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"NewsBuddy/internal/domain"
	"NewsBuddy/internal/ports"
)

// ArticleReader is the read contract the serving layer consumes; it only
// touches already-persisted state.
type ArticleReader interface {
	Articles(ctx context.Context, filter ports.ArticleFilter) ([]domain.Article, error)
	LatestSummary(ctx context.Context) (*domain.Summary, error)
	RecentSummaries(ctx context.Context, limit int) ([]domain.Summary, error)
}

// FetchRunner triggers one manual collection pass.
type FetchRunner interface {
	FetchAll(ctx context.Context) int
}

// Deps wires the router's collaborators.
type Deps struct {
	Store   ArticleReader
	Fetcher FetchRunner
	Logger  *slog.Logger
}

// NewRouter builds the JSON read surface over the store.
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	articles := NewArticleHandler(deps.Store, deps.Fetcher, deps.Logger)
	summaries := NewSummaryHandler(deps.Store, deps.Logger)

	router.GET("/health", articles.GetHealth)
	router.GET("/api/articles", articles.GetArticles)
	router.POST("/api/fetch", articles.TriggerFetch)
	router.GET("/api/summaries", summaries.GetSummaries)
	router.GET("/api/summaries/latest", summaries.GetLatestSummary)

	return router
}
