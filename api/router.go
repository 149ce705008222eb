// Package api exposes the crawler over HTTP.
package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dacdangvan/seotool-sub006/api/handler"
	"github.com/dacdangvan/seotool-sub006/api/middleware"
	"github.com/dacdangvan/seotool-sub006/cache"
	"github.com/dacdangvan/seotool-sub006/config"
	"github.com/dacdangvan/seotool-sub006/crawler"
	"github.com/dacdangvan/seotool-sub006/webhook"
)

// Deps are the services the routes are built on.
type Deps struct {
	Crawler  *crawler.Crawler
	Stats    handler.StatsSource // nil when rendering is disabled
	Cache    *cache.Cache
	Notifier *webhook.Notifier
	Started  time.Time
	Version  string
}

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health stays outside auth so monitoring checks always work.
func NewRouter(cfg *config.Config, d Deps) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")
	v1.GET("/health", handler.Health(d.Stats, d.Started, d.Version))

	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	protected.POST("/decide", handler.Decide(d.Crawler))
	protected.POST("/crawl", handler.Crawl(d.Crawler, d.Cache, cfg.Crawl.DiffByDefault))
	protected.POST("/diff", handler.Diff(d.Crawler))

	protected.POST("/crawl/batch", handler.PostBatch(d.Crawler, handler.BatchSettings{
		DiffByDefault: cfg.Crawl.DiffByDefault,
		Concurrency:   cfg.Crawl.BatchConcurrency,
		Notifier:      d.Notifier,
	}))
	protected.GET("/crawl/batch/:id", handler.GetBatch())

	return r
}
