package models

// CrawlRequest is the payload for POST /api/v1/crawl and POST /api/v1/diff.
type CrawlRequest struct {
	// URL is the target page. Required.
	URL string `json:"url" binding:"required,url"`

	// Options controls the crawl of this URL.
	CrawlOptionsRequest

	// MaxAge enables the response cache: a cached result younger than
	// MaxAge milliseconds is returned without crawling. 0 disables caching.
	MaxAge int `json:"max_age,omitempty" binding:"omitempty,min=0"`
}

// CrawlOptionsRequest are the per-URL crawl settings shared by single and
// batch requests.
type CrawlOptionsRequest struct {
	// ForceHTML skips rendering regardless of the decision engine.
	ForceHTML bool `json:"force_html,omitempty"`

	// ForceRender renders regardless of the decision engine.
	ForceRender bool `json:"force_render,omitempty"`

	// IncludeDiff compares raw and rendered extractions and classifies risk.
	// Default: the service configuration.
	IncludeDiff *bool `json:"include_diff,omitempty"`

	// IncludeHTML returns the raw and rendered HTML in the result.
	IncludeHTML bool `json:"include_html,omitempty"`

	// Viewport is "mobile" or "desktop". Default: configured viewport.
	Viewport string `json:"viewport,omitempty" binding:"omitempty,oneof=mobile desktop"`

	// WaitForSelector is a CSS selector that must appear before extraction.
	WaitForSelector string `json:"wait_for_selector,omitempty"`

	// WaitForTimeout is an extra fixed wait in milliseconds after the page is SEO-ready.
	WaitForTimeout int `json:"wait_for_timeout,omitempty" binding:"omitempty,min=0,max=30000"`

	// Timeout is the overall render timeout in seconds. Max: 120.
	Timeout int `json:"timeout,omitempty" binding:"omitempty,min=1,max=120"`

	// Stealth masks common headless-browser fingerprints while rendering.
	Stealth bool `json:"stealth,omitempty"`
}

// DecideRequest is the payload for POST /api/v1/decide.
type DecideRequest struct {
	// URL is the page the decision is about. Required.
	URL string `json:"url" binding:"required,url"`

	// HTML is the raw HTML to analyse. When empty the URL is fetched.
	HTML string `json:"html,omitempty"`
}

// BatchRequest is the payload for POST /api/v1/crawl/batch.
type BatchRequest struct {
	// URLs is the list of target pages. Required.
	URLs []string `json:"urls" binding:"required,min=1,max=100"`

	// Options are applied to every URL.
	Options CrawlOptionsRequest `json:"options"`

	// Concurrency bounds the number of URLs crawled at once. Default: configured.
	Concurrency int `json:"concurrency,omitempty" binding:"omitempty,min=1,max=20"`

	WebhookURL    string `json:"webhook_url,omitempty" binding:"omitempty,url"`
	WebhookSecret string `json:"webhook_secret,omitempty"`
}
