package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dacdangvan/seotool-sub006/cache"
	"github.com/dacdangvan/seotool-sub006/crawler"
	"github.com/dacdangvan/seotool-sub006/models"
)

// Crawl returns a handler for POST /api/v1/crawl.
//
//  1. Parse & validate request.
//  2. Cache lookup when max_age is set.
//  3. Crawler.Crawl → decision, optional render, extraction, optional diff.
//  4. Cache store and respond. A fetch failure is reported as 502 with the
//     placeholder result attached.
func Crawl(cr *crawler.Crawler, cc *cache.Cache, diffByDefault bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		// ── 1. Parse request ────────────────────────────────────────
		var req models.CrawlRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		opts := crawler.OptionsFromRequest(req.CrawlOptionsRequest, diffByDefault)

		// ── 2. Cache lookup ─────────────────────────────────────────
		var cacheKey string
		if cc != nil && req.MaxAge > 0 {
			cacheKey = cache.Key(req.URL, fmt.Sprintf("%+v", opts))
			if cached, hit := cc.Get(cacheKey, req.MaxAge); hit {
				c.JSON(http.StatusOK, models.CrawlResponse{Success: true, Result: cached, CacheStatus: "hit"})
				return
			}
		}

		// ── 3. Crawl ────────────────────────────────────────────────
		res := cr.Crawl(c.Request.Context(), req.URL, opts)
		if res.Failed() {
			c.JSON(http.StatusBadGateway, models.CrawlResponse{
				Success: false,
				Result:  res,
				Error:   &models.ErrorDetail{Code: models.ErrCodeFetchFailed, Message: res.Error},
			})
			return
		}

		// ── 4. Cache store ──────────────────────────────────────────
		resp := models.CrawlResponse{Success: true, Result: res}
		if cacheKey != "" {
			cc.Set(cacheKey, res)
			resp.CacheStatus = "miss"
		}
		c.JSON(http.StatusOK, resp)
	}
}

// Diff returns a handler for POST /api/v1/diff. The page is always rendered.
func Diff(cr *crawler.Crawler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CrawlRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		report, err := cr.Diff(c.Request.Context(), req.URL, crawler.OptionsFromRequest(req.CrawlOptionsRequest, true))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.DiffResponse{Success: true, Report: report})
	}
}
