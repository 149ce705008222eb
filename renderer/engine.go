// Package renderer renders pages in a headless browser and reports when their
// SEO signals became available.
package renderer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andybalholm/cascadia"

	"github.com/dacdangvan/seotool-sub006/config"
	"github.com/dacdangvan/seotool-sub006/models"
)

const (
	maxNetworkIdleWait = 10 * time.Second

	// captureTimeout bounds URL and HTML serialization. Capture runs on the
	// caller's context, so exhausted advisory waits cannot starve it.
	captureTimeout = 5 * time.Second
)

// Options control a single render. Zero fields take the engine defaults.
type Options struct {
	Viewport        models.Viewport
	Timeout         time.Duration
	WaitForSelector string
	WaitForTimeout  time.Duration

	RequiredSignals  []models.SeoSignal
	SeoReadyMaxWait  time.Duration
	PollInterval     time.Duration
	StabilityQuiet   time.Duration
	StabilityTimeout time.Duration

	BlockResources []string
	Stealth        bool
	Headers        map[string]string
}

// Engine owns one browser and a context per viewport, and counts renders
// against a ceiling. It is safe for concurrent use.
type Engine struct {
	backend    Backend
	defaults   Options
	maxRenders int64

	renders     atomic.Int64
	activePages atomic.Int32

	mu          sync.Mutex
	initialized bool
	closed      bool
	contexts    map[models.Viewport]BrowserContext
}

// New creates an engine over backend. The browser is not started until the
// first Initialize or Render.
func New(backend Backend, cfg config.JSRenderConfig) *Engine {
	signals := make([]models.SeoSignal, 0, len(cfg.SeoReadySignals))
	for _, s := range cfg.SeoReadySignals {
		signals = append(signals, models.SeoSignal(s))
	}
	return &Engine{
		backend:    backend,
		maxRenders: int64(cfg.MaxJSRenderPages),
		contexts:   make(map[models.Viewport]BrowserContext, 2),
		defaults: Options{
			Viewport:         models.Viewport(cfg.DefaultViewport),
			Timeout:          cfg.Timeout,
			RequiredSignals:  signals,
			SeoReadyMaxWait:  cfg.SeoReadyMaxWait,
			PollInterval:     cfg.SeoReadyPollInterval,
			StabilityQuiet:   cfg.StabilityQuiet,
			StabilityTimeout: cfg.StabilityTimeout,
			BlockResources:   cfg.BlockResources,
		},
	}
}

// Initialize starts the browser. It is idempotent.
func (e *Engine) Initialize(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initLocked(ctx)
}

func (e *Engine) initLocked(ctx context.Context) error {
	if e.closed {
		return models.NewCrawlError(models.ErrCodeBrowserClosed, "renderer is closed", nil)
	}
	if e.initialized {
		return nil
	}
	if err := e.backend.Start(ctx); err != nil {
		return models.NewCrawlError(models.ErrCodeBrowserCrash, "failed to start browser", err)
	}
	e.initialized = true
	slog.Info("renderer initialized", "maxRenders", e.maxRenders)
	return nil
}

// IsLimitReached reports whether the render ceiling has been hit.
func (e *Engine) IsLimitReached() bool {
	return e.renders.Load() >= e.maxRenders
}

// RenderCount returns the number of successful renders so far.
func (e *Engine) RenderCount() int64 {
	return e.renders.Load()
}

// Stats returns a snapshot of the engine state.
func (e *Engine) Stats() models.RendererStats {
	e.mu.Lock()
	vps := make([]models.Viewport, 0, len(e.contexts))
	for v := range e.contexts {
		vps = append(vps, v)
	}
	initialized := e.initialized
	e.mu.Unlock()
	sort.Slice(vps, func(i, j int) bool { return vps[i] < vps[j] })

	return models.RendererStats{
		Initialized: initialized,
		RenderCount: e.renders.Load(),
		MaxRenders:  e.maxRenders,
		ActivePages: int(e.activePages.Load()),
		Contexts:    vps,
	}
}

// Close disposes every context and terminates the browser.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true

	var errs []error
	for v, c := range e.contexts {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s context: %w", v, err))
		}
	}
	clear(e.contexts)
	if e.initialized {
		if err := e.backend.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browser: %w", err))
		}
	}
	e.initialized = false
	slog.Info("renderer closed", "renders", e.renders.Load())
	return errors.Join(errs...)
}

// context returns the cached context for viewport, creating it on first use.
func (e *Engine) context(ctx context.Context, viewport models.Viewport) (BrowserContext, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.initLocked(ctx); err != nil {
		return nil, err
	}
	if c, ok := e.contexts[viewport]; ok {
		return c, nil
	}
	c, err := e.backend.NewContext(ctx, viewport)
	if err != nil {
		return nil, models.NewCrawlError(models.ErrCodeBrowserCrash,
			fmt.Sprintf("failed to create %s context", viewport), err)
	}
	e.contexts[viewport] = c
	return c, nil
}

func (e *Engine) withDefaults(o Options) Options {
	d := e.defaults
	if o.Viewport == "" || !o.Viewport.Valid() {
		o.Viewport = d.Viewport
	}
	if !o.Viewport.Valid() {
		o.Viewport = models.ViewportMobile
	}
	if o.Timeout <= 0 {
		o.Timeout = d.Timeout
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.RequiredSignals == nil {
		o.RequiredSignals = d.RequiredSignals
	}
	if o.SeoReadyMaxWait <= 0 {
		o.SeoReadyMaxWait = d.SeoReadyMaxWait
	}
	if o.SeoReadyMaxWait <= 0 {
		o.SeoReadyMaxWait = 10 * time.Second
	}
	if o.PollInterval <= 0 {
		o.PollInterval = d.PollInterval
	}
	if o.PollInterval <= 0 {
		o.PollInterval = 250 * time.Millisecond
	}
	if o.StabilityQuiet <= 0 {
		o.StabilityQuiet = d.StabilityQuiet
	}
	if o.StabilityQuiet <= 0 {
		o.StabilityQuiet = 500 * time.Millisecond
	}
	if o.StabilityTimeout <= 0 {
		o.StabilityTimeout = d.StabilityTimeout
	}
	if o.StabilityTimeout <= 0 {
		o.StabilityTimeout = 5 * time.Second
	}
	if o.BlockResources == nil {
		o.BlockResources = d.BlockResources
	}
	return o
}

// Render loads url in a fresh page and returns the rendered DOM once the
// page is SEO-ready and stable. Phases run strictly in order:
//
//  1. render ceiling check (before the browser is touched)
//  2. viewport context, created lazily and cached
//  3. new page with resource blocking
//  4. navigation until DOMContentLoaded (fatal)
//  5. network idle, capped at min(timeout/2, 10s) (advisory)
//  6. wait-for-selector, capped at timeout/3 (fatal)
//  7. SEO-ready polling (advisory)
//  8. optional fixed wait
//  9. DOM stabilization (advisory, errors logged)
//  10. final URL, HTML, counter increment
//
// The page is closed on every return path.
func (e *Engine) Render(ctx context.Context, url string, opts Options) (*models.RenderedDom, error) {
	// ── 1. Render ceiling ─────────────────────────────────────────────
	if e.IsLimitReached() {
		return nil, models.NewCrawlError(models.ErrCodeRenderLimit,
			fmt.Sprintf("render limit of %d pages reached", e.maxRenders), nil)
	}
	opts = e.withDefaults(opts)
	if opts.WaitForSelector != "" {
		if _, err := cascadia.Compile(opts.WaitForSelector); err != nil {
			return nil, models.NewCrawlError(models.ErrCodeInvalidInput,
				fmt.Sprintf("invalid wait_for_selector %q", opts.WaitForSelector), err)
		}
	}

	parent := ctx
	ctx, cancel := context.WithTimeout(parent, opts.Timeout)
	defer cancel()

	// ── 2. Context by viewport ────────────────────────────────────────
	bctx, err := e.context(ctx, opts.Viewport)
	if err != nil {
		return nil, err
	}

	// ── 3. Fresh page ─────────────────────────────────────────────────
	start := time.Now()
	page, err := bctx.NewPage(ctx, PageOptions{
		BlockResources: opts.BlockResources,
		Stealth:        opts.Stealth,
		Headers:        opts.Headers,
	})
	if err != nil {
		return nil, categorizeError(err, models.ErrCodeBrowserCrash, "failed to open page")
	}
	e.activePages.Add(1)
	defer func() {
		if closeErr := page.Close(); closeErr != nil {
			slog.Warn("renderer: failed to close page", "url", url, "error", closeErr)
		}
		e.activePages.Add(-1)
	}()

	dom := &models.RenderedDom{URL: url, Viewport: opts.Viewport}
	elapsed := func() int64 { return time.Since(start).Milliseconds() }

	// ── 4. Navigate until DOMContentLoaded ────────────────────────────
	if err := page.Navigate(ctx, url); err != nil {
		return nil, categorizeError(err, models.ErrCodeNavigation, "navigation failed")
	}
	dom.Timing.TimeToDomReady = elapsed()

	// Advisory phases (5, 7, 8, 9) stop short of the render deadline.
	waitCtx, waitCancel := advisoryContext(ctx, opts.Timeout)
	defer waitCancel()

	// ── 5. Network idle (advisory) ────────────────────────────────────
	idleCtx, idleCancel := context.WithTimeout(waitCtx, min(opts.Timeout/2, maxNetworkIdleWait))
	if err := page.WaitNetworkIdle(idleCtx); err != nil {
		dom.Timing.NetworkIdleTimedOut = true
		slog.Debug("renderer: network idle not reached", "url", url, "error", err)
	}
	idleCancel()
	dom.Timing.TimeToNetworkIdle = elapsed()

	// ── 6. Required selector ──────────────────────────────────────────
	if opts.WaitForSelector != "" {
		selCtx, selCancel := context.WithTimeout(ctx, opts.Timeout/3)
		err := page.WaitSelector(selCtx, opts.WaitForSelector)
		selCancel()
		if err != nil {
			return nil, models.NewCrawlError(models.ErrCodeSelectorTimeout,
				fmt.Sprintf("selector %q did not appear", opts.WaitForSelector), err)
		}
	}

	// ── 7. SEO-ready wait ─────────────────────────────────────────────
	dom.SeoSignals, dom.Timing.SeoReadyTimedOut = waitSeoReady(waitCtx, page, url, opts)
	dom.Timing.TimeToSeoReady = elapsed()

	// ── 8. Fixed extra wait ───────────────────────────────────────────
	if opts.WaitForTimeout > 0 {
		t := time.NewTimer(opts.WaitForTimeout)
		select {
		case <-t.C:
		case <-waitCtx.Done():
			t.Stop()
		}
	}

	// ── 9. DOM stabilization ──────────────────────────────────────────
	stable, err := page.WaitForStableDOM(waitCtx, opts.StabilityQuiet, opts.StabilityTimeout)
	if err != nil {
		slog.Warn("renderer: DOM stabilization failed, using current snapshot", "url", url, "error", err)
	}
	dom.Timing.DomStable = stable && err == nil

	// ── 10. Capture ───────────────────────────────────────────────────
	capCtx, capCancel := context.WithTimeout(parent, captureTimeout)
	defer capCancel()
	dom.FinalURL, err = page.URL(capCtx)
	if err != nil || dom.FinalURL == "" {
		dom.FinalURL = url
	}
	dom.HTML, err = page.HTML(capCtx)
	if err != nil {
		return nil, categorizeError(err, models.ErrCodeBrowserCrash, "failed to serialize DOM")
	}

	count := e.renders.Add(1)
	dom.Timing.TotalRenderTime = elapsed()
	slog.Debug("renderer: page rendered",
		"url", url,
		"viewport", opts.Viewport,
		"ms", dom.Timing.TotalRenderTime,
		"seoReadyTimedOut", dom.Timing.SeoReadyTimedOut,
		"renders", count,
	)
	return dom, nil
}

// advisoryContext ends a fifth of the render timeout (at most captureTimeout)
// before ctx does, leaving headroom for capture.
func advisoryContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return context.WithCancel(ctx)
	}
	return context.WithDeadline(ctx, deadline.Add(-min(timeout/5, captureTimeout)))
}

// categorizeError maps context expiry to a timeout code.
func categorizeError(err error, code, msg string) *models.CrawlError {
	if errors.Is(err, context.DeadlineExceeded) {
		return models.NewCrawlError(models.ErrCodeTimeout, msg+": timed out", err)
	}
	var ce *models.CrawlError
	if errors.As(err, &ce) {
		return ce
	}
	return models.NewCrawlError(code, msg, err)
}
