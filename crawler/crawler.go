// Package crawler sequences fetch, render decision, rendering, extraction
// and the raw-vs-rendered diff for one or many URLs.
package crawler

import (
	"context"
	"log/slog"
	"time"

	"github.com/dacdangvan/seotool-sub006/config"
	"github.com/dacdangvan/seotool-sub006/decision"
	"github.com/dacdangvan/seotool-sub006/extractor"
	"github.com/dacdangvan/seotool-sub006/fetcher"
	"github.com/dacdangvan/seotool-sub006/models"
	"github.com/dacdangvan/seotool-sub006/renderer"
)

// Fetcher retrieves the raw HTTP response of a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.Result, error)
}

// Decider decides whether a raw response needs a browser.
type Decider interface {
	Decide(url, rawHTML string) models.RenderDecision
}

// Renderer renders a URL in a browser.
type Renderer interface {
	Render(ctx context.Context, url string, opts renderer.Options) (*models.RenderedDom, error)
	IsLimitReached() bool
}

// Options control one crawl.
type Options struct {
	ForceHTML   bool
	ForceRender bool
	IncludeDiff bool
	IncludeHTML bool
	Render      renderer.Options
}

// OptionsFromRequest converts API request options. includeDiff is used when
// the request does not say.
func OptionsFromRequest(r models.CrawlOptionsRequest, includeDiff bool) Options {
	if r.IncludeDiff != nil {
		includeDiff = *r.IncludeDiff
	}
	return Options{
		ForceHTML:   r.ForceHTML,
		ForceRender: r.ForceRender,
		IncludeDiff: includeDiff,
		IncludeHTML: r.IncludeHTML,
		Render: renderer.Options{
			Viewport:        models.Viewport(r.Viewport),
			Timeout:         time.Duration(r.Timeout) * time.Second,
			WaitForSelector: r.WaitForSelector,
			WaitForTimeout:  time.Duration(r.WaitForTimeout) * time.Millisecond,
			Stealth:         r.Stealth,
		},
	}
}

// Crawler is the composition root of the pipeline. It is safe for
// concurrent use when its collaborators are.
type Crawler struct {
	fetcher     Fetcher
	decider     Decider
	renderer    Renderer
	concurrency int
}

// New wires a crawler. rend may be nil, in which case every URL is
// extracted from its raw HTML.
func New(f Fetcher, d Decider, rend Renderer, cfg config.CrawlConfig) *Crawler {
	c := &Crawler{
		fetcher:     f,
		decider:     d,
		renderer:    rend,
		concurrency: cfg.BatchConcurrency,
	}
	if c.concurrency <= 0 {
		c.concurrency = 5
	}
	return c
}

// outcome carries the internal errors Crawl swallows.
type outcome struct {
	result    *models.CrawlPageResult
	fetchErr  error
	renderErr error
}

// Crawl runs the full pipeline for url. It never fails: a fetch error is
// reported in the result's Error field next to an empty extraction, and a
// render failure degrades the result to the raw HTML.
func (c *Crawler) Crawl(ctx context.Context, url string, opts Options) *models.CrawlPageResult {
	return c.run(ctx, url, opts).result
}

// Diff fetches and renders url and returns the raw-vs-rendered report.
// Unlike Crawl it fails when the page cannot be rendered.
func (c *Crawler) Diff(ctx context.Context, url string, opts Options) (*models.DiffReport, error) {
	opts.ForceHTML = false
	opts.ForceRender = true
	opts.IncludeDiff = true

	o := c.run(ctx, url, opts)
	if o.fetchErr != nil {
		return nil, o.fetchErr
	}
	if o.renderErr != nil {
		return nil, o.renderErr
	}
	return o.result.DiffReport, nil
}

// Decide returns the render decision for url. When rawHTML is empty the page
// is fetched first.
func (c *Crawler) Decide(ctx context.Context, url, rawHTML string) (models.RenderDecision, *models.RawHTMLAnalysis, error) {
	if rawHTML == "" {
		page, err := c.fetcher.Fetch(ctx, url)
		if err != nil {
			return models.RenderDecision{}, nil, err
		}
		rawHTML = page.HTML
	}
	return c.decider.Decide(url, rawHTML), decision.Analyze(rawHTML), nil
}

func (c *Crawler) run(ctx context.Context, url string, opts Options) outcome {
	res := &models.CrawlPageResult{
		URL:        url,
		RenderMode: models.RenderModeHTML,
		Timestamp:  time.Now().UTC(),
	}

	// ── 1. Raw fetch ──────────────────────────────────────────────────
	page, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		slog.Warn("crawl: fetch failed", "url", url, "error", err)
		res.Error = err.Error()
		res.SeoData = models.EmptySeoData(url, models.RenderModeHTML)
		res.SeoAnalysis = extractor.Analyze(res.SeoData)
		return outcome{result: res, fetchErr: err}
	}
	res.StatusCode = page.StatusCode
	res.FinalURL = page.FinalURL
	if res.FinalURL == "" {
		res.FinalURL = url
	}
	res.LoadTimeMs = page.LoadTime.Milliseconds()
	if opts.IncludeHTML {
		res.RawHTML = page.HTML
	}

	// ── 2. Decision ───────────────────────────────────────────────────
	var dec models.RenderDecision
	switch {
	case opts.ForceHTML:
		dec = models.RenderDecision{ShouldRender: false, Reason: models.ReasonRequestForceHTML, Confidence: 1.0}
	case opts.ForceRender:
		dec = models.RenderDecision{ShouldRender: true, Reason: models.ReasonRequestForceRender, Confidence: 1.0}
	default:
		dec = c.decider.Decide(url, page.HTML)
	}
	res.Decision = &dec

	raw := extractor.Extract(page.HTML, res.FinalURL, models.RenderModeHTML, 0, extractor.Options{})
	res.SeoData = raw

	// ── 3. Render (optional, degrades to raw HTML) ────────────────────
	var renderErr error
	if dec.ShouldRender {
		var rendered *models.ExtractedSeoData
		rendered, renderErr = c.render(ctx, url, raw, opts, res)
		if renderErr != nil {
			slog.Warn("crawl: rendering failed, falling back to raw HTML",
				"url", url,
				"reason", dec.Reason,
				"error", renderErr,
			)
		} else {
			res.SeoData = rendered
			res.RenderMode = models.RenderModeJSRendered
			if opts.IncludeDiff {
				res.DiffReport = BuildReport(url, raw, rendered)
			}
		}
	}

	// ── 4. Page-level analysis ────────────────────────────────────────
	res.SeoAnalysis = extractor.Analyze(res.SeoData)

	slog.Debug("crawl: done",
		"url", url,
		"mode", res.RenderMode,
		"reason", dec.Reason,
		"loadMs", res.LoadTimeMs,
		"renderMs", res.RenderTimeMs,
	)
	return outcome{result: res, renderErr: renderErr}
}

func (c *Crawler) render(ctx context.Context, url string, raw *models.ExtractedSeoData, opts Options, res *models.CrawlPageResult) (*models.ExtractedSeoData, error) {
	if c.renderer == nil {
		return nil, models.NewCrawlError(models.ErrCodeInvalidInput, "JavaScript rendering is disabled", nil)
	}
	if c.renderer.IsLimitReached() {
		return nil, models.NewCrawlError(models.ErrCodeRenderLimit, "render limit reached", nil)
	}

	dom, err := c.renderer.Render(ctx, url, opts.Render)
	if err != nil {
		return nil, err
	}
	res.RenderTimeMs = dom.Timing.TotalRenderTime
	res.RenderTiming = &dom.Timing
	res.FinalURL = dom.FinalURL
	if opts.IncludeHTML {
		res.RenderedHTML = dom.HTML
	}
	return extractor.Extract(dom.HTML, dom.FinalURL, models.RenderModeJSRendered, dom.Timing.TotalRenderTime,
		extractor.Options{Raw: raw}), nil
}
