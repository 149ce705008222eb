package models

// CrawlResponse is the response for POST /api/v1/crawl.
type CrawlResponse struct {
	// Success indicates whether the crawl completed without an end-to-end error.
	Success bool `json:"success"`

	// Result is the crawl result. It is present even on failure.
	Result *CrawlPageResult `json:"result,omitempty"`

	// CacheStatus indicates whether the response was served from cache.
	// Values: "hit", "miss", or empty (caching not requested).
	CacheStatus string `json:"cache_status,omitempty"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// DecideResponse is the response for POST /api/v1/decide.
type DecideResponse struct {
	Success  bool            `json:"success"`
	Decision *RenderDecision `json:"decision,omitempty"`
	Error    *ErrorDetail    `json:"error,omitempty"`
}

// DiffResponse is the response for POST /api/v1/diff.
type DiffResponse struct {
	Success bool         `json:"success"`
	Report  *DiffReport  `json:"report,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status         string        `json:"status"` // "healthy" or "degraded"
	Uptime         string        `json:"uptime"`
	Renderer       RendererStats `json:"renderer"`
	MemoryUsedPct  float64       `json:"memory_used_pct"`
	RenderLimitHit bool          `json:"render_limit_hit"`
	Version        string        `json:"version"`
}

// ErrorResponse is returned by middleware and by handlers that fail before
// producing a result.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   *ErrorDetail `json:"error"`
}
