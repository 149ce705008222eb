package models

import "time"

// CrawlPageResult is the composite outcome of crawling one URL.
type CrawlPageResult struct {
	URL          string               `json:"url"`
	FinalURL     string               `json:"final_url,omitempty"`
	StatusCode   int                  `json:"status_code"`
	RenderMode   RenderMode           `json:"render_mode"`
	Decision     *RenderDecision      `json:"decision,omitempty"`
	RawHTML      string               `json:"raw_html,omitempty"`
	RenderedHTML string               `json:"rendered_html,omitempty"`
	SeoData      *ExtractedSeoData    `json:"seo_data"`
	SeoAnalysis  SeoAnalysis          `json:"seo_analysis"`
	LoadTimeMs   int64                `json:"load_time_ms"`
	RenderTimeMs int64                `json:"render_time_ms"`
	RenderTiming *RenderTimingMetrics `json:"render_timing,omitempty"`
	DiffReport   *DiffReport          `json:"diff_report,omitempty"`
	Timestamp    time.Time            `json:"timestamp"`

	// Error is set only when the crawl failed end to end.
	Error string `json:"error,omitempty"`
}

// Failed reports whether the crawl produced an end-to-end error.
func (r *CrawlPageResult) Failed() bool {
	return r.Error != ""
}
