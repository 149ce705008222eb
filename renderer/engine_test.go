package renderer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dacdangvan/seotool-sub006/config"
	"github.com/dacdangvan/seotool-sub006/models"
)

// ── fakes ────────────────────────────────────────────────────────────────

type fakeBackend struct {
	mu       sync.Mutex
	starts   int
	closed   bool
	contexts map[models.Viewport]int
	pages    []*fakePage

	startErr error
	newPage  func(url string) *fakePage

	// active/peak track concurrent pages.
	active atomic.Int32
	peak   atomic.Int32
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{contexts: make(map[models.Viewport]int)}
}

func (b *fakeBackend) Start(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.startErr != nil {
		return b.startErr
	}
	b.starts++
	return nil
}

func (b *fakeBackend) NewContext(_ context.Context, v models.Viewport) (BrowserContext, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.contexts[v]++
	return &fakeContext{backend: b}, nil
}

func (b *fakeBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

func (b *fakeBackend) allPages() []*fakePage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*fakePage(nil), b.pages...)
}

type fakeContext struct {
	backend *fakeBackend
}

func (c *fakeContext) NewPage(_ context.Context, opts PageOptions) (Page, error) {
	p := &fakePage{
		snapshots: []models.SeoSnapshot{readySnapshot},
		html:      "<html><head><title>Rendered</title></head><body></body></html>",
		stable:    true,
	}
	if c.backend.newPage != nil {
		p = c.backend.newPage("")
	}
	p.opts = opts
	p.backend = c.backend
	n := c.backend.active.Add(1)
	for {
		peak := c.backend.peak.Load()
		if n <= peak || c.backend.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	c.backend.mu.Lock()
	c.backend.pages = append(c.backend.pages, p)
	c.backend.mu.Unlock()
	return p, nil
}

func (c *fakeContext) Close() error { return nil }

var readySnapshot = models.SeoSnapshot{
	Title: "Oak Dining Table | Example Store",
	H1:    "Oak Dining Table",
	URL:   "https://example.com/p/oak",
}

type fakePage struct {
	backend *fakeBackend
	opts    PageOptions

	mu        sync.Mutex
	calls     []string
	snapshots []models.SeoSnapshot
	snapIdx   int
	closed    bool

	navErr      error
	idleBlock   bool
	selectorErr error
	stableErr   error
	stable      bool
	htmlErr     error
	html        string
	navDelay    time.Duration
	url         string
}

func (p *fakePage) record(name string) {
	p.mu.Lock()
	p.calls = append(p.calls, name)
	p.mu.Unlock()
}

func (p *fakePage) callList() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

func (p *fakePage) Navigate(ctx context.Context, _ string) error {
	p.record("navigate")
	if p.navDelay > 0 {
		select {
		case <-time.After(p.navDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return p.navErr
}

func (p *fakePage) WaitNetworkIdle(ctx context.Context) error {
	p.record("idle")
	if p.idleBlock {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (p *fakePage) WaitSelector(context.Context, string) error {
	p.record("selector")
	return p.selectorErr
}

func (p *fakePage) SeoSnapshot(context.Context) (models.SeoSnapshot, error) {
	p.record("snapshot")
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.snapshots) == 0 {
		return models.SeoSnapshot{}, errors.New("execution context destroyed")
	}
	s := p.snapshots[min(p.snapIdx, len(p.snapshots)-1)]
	p.snapIdx++
	return s, nil
}

func (p *fakePage) WaitForStableDOM(context.Context, time.Duration, time.Duration) (bool, error) {
	p.record("stable")
	return p.stable, p.stableErr
}

func (p *fakePage) URL(ctx context.Context) (string, error) {
	p.record("url")
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return p.url, nil
}

func (p *fakePage) HTML(ctx context.Context) (string, error) {
	p.record("html")
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return p.html, p.htmlErr
}

func (p *fakePage) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	if p.backend != nil {
		p.backend.active.Add(-1)
	}
	return nil
}

func (p *fakePage) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func testConfig() config.JSRenderConfig {
	return config.JSRenderConfig{
		Enabled:              true,
		MaxJSRenderPages:     100,
		DefaultViewport:      "mobile",
		Timeout:              5 * time.Second,
		SeoReadySignals:      []string{"title", "h1"},
		SeoReadyMaxWait:      300 * time.Millisecond,
		SeoReadyPollInterval: 10 * time.Millisecond,
		StabilityQuiet:       10 * time.Millisecond,
		StabilityTimeout:     50 * time.Millisecond,
	}
}

// ── tests ────────────────────────────────────────────────────────────────

func TestRender_PhaseOrder(t *testing.T) {
	b := newFakeBackend()
	e := New(b, testConfig())

	dom, err := e.Render(context.Background(), "https://example.com/p/oak", Options{WaitForSelector: "h1"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	pages := b.allPages()
	if len(pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(pages))
	}
	got := strings.Join(pages[0].callList(), ",")
	want := "navigate,idle,selector,snapshot,stable,url,html"
	if got != want {
		t.Errorf("phase order = %s, want %s", got, want)
	}
	if !pages[0].isClosed() {
		t.Error("page not closed after render")
	}
	if dom.Viewport != models.ViewportMobile {
		t.Errorf("Viewport = %q, want mobile", dom.Viewport)
	}
	if dom.FinalURL != "https://example.com/p/oak" {
		t.Errorf("FinalURL = %q, want input URL fallback", dom.FinalURL)
	}
	if dom.Timing.SeoReadyTimedOut {
		t.Error("SeoReadyTimedOut = true, want false")
	}
	if !dom.Timing.DomStable {
		t.Error("DomStable = false, want true")
	}
	if !dom.SeoSignals.Title || !dom.SeoSignals.H1 {
		t.Errorf("SeoSignals = %+v, want title and h1", dom.SeoSignals)
	}
	if e.RenderCount() != 1 {
		t.Errorf("RenderCount() = %d, want 1", e.RenderCount())
	}
}

func TestRender_LimitReachedBeforeBrowser(t *testing.T) {
	cfg := testConfig()
	cfg.MaxJSRenderPages = 1
	b := newFakeBackend()
	e := New(b, cfg)

	if _, err := e.Render(context.Background(), "https://example.com/a", Options{}); err != nil {
		t.Fatalf("first Render() error = %v", err)
	}
	if !e.IsLimitReached() {
		t.Fatal("IsLimitReached() = false after one render with max 1")
	}

	_, err := e.Render(context.Background(), "https://example.com/b", Options{})
	if !models.HasCode(err, models.ErrCodeRenderLimit) {
		t.Fatalf("error = %v, want %s", err, models.ErrCodeRenderLimit)
	}
	if n := len(b.allPages()); n != 1 {
		t.Errorf("pages opened = %d, want 1 (no navigation past the limit)", n)
	}
}

func TestRender_ZeroLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxJSRenderPages = 0
	b := newFakeBackend()
	e := New(b, cfg)

	_, err := e.Render(context.Background(), "https://example.com/", Options{})
	if !models.HasCode(err, models.ErrCodeRenderLimit) {
		t.Fatalf("error = %v, want %s", err, models.ErrCodeRenderLimit)
	}
	if b.starts != 0 {
		t.Errorf("browser starts = %d, want 0", b.starts)
	}
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name     string
		page     func() *fakePage
		opts     Options
		wantCode string
	}{
		{
			name:     "navigation failure",
			page:     func() *fakePage { return &fakePage{navErr: errors.New("net::ERR_NAME_NOT_RESOLVED")} },
			wantCode: models.ErrCodeNavigation,
		},
		{
			name:     "navigation deadline",
			page:     func() *fakePage { return &fakePage{navErr: context.DeadlineExceeded} },
			wantCode: models.ErrCodeTimeout,
		},
		{
			name: "selector timeout",
			page: func() *fakePage {
				return &fakePage{snapshots: []models.SeoSnapshot{readySnapshot}, selectorErr: context.DeadlineExceeded}
			},
			opts:     Options{WaitForSelector: "#product"},
			wantCode: models.ErrCodeSelectorTimeout,
		},
		{
			name: "html failure",
			page: func() *fakePage {
				return &fakePage{snapshots: []models.SeoSnapshot{readySnapshot}, htmlErr: errors.New("target closed")}
			},
			wantCode: models.ErrCodeBrowserCrash,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newFakeBackend()
			b.newPage = func(string) *fakePage { return tt.page() }
			e := New(b, testConfig())

			_, err := e.Render(context.Background(), "https://example.com/", tt.opts)
			if !models.HasCode(err, tt.wantCode) {
				t.Fatalf("error = %v, want code %s", err, tt.wantCode)
			}
			for _, p := range b.allPages() {
				if !p.isClosed() {
					t.Error("page left open after error")
				}
			}
			if e.RenderCount() != 0 {
				t.Errorf("RenderCount() = %d, want 0 after failure", e.RenderCount())
			}
			if s := e.Stats(); s.ActivePages != 0 {
				t.Errorf("ActivePages = %d, want 0", s.ActivePages)
			}
		})
	}
}

func TestRender_InvalidSelector(t *testing.T) {
	b := newFakeBackend()
	e := New(b, testConfig())

	_, err := e.Render(context.Background(), "https://example.com/", Options{WaitForSelector: "div[[["})
	if !models.HasCode(err, models.ErrCodeInvalidInput) {
		t.Fatalf("error = %v, want %s", err, models.ErrCodeInvalidInput)
	}
	if n := len(b.allPages()); n != 0 {
		t.Errorf("pages opened = %d, want 0", n)
	}
}

func TestRender_NetworkIdleAdvisory(t *testing.T) {
	cfg := testConfig()
	cfg.Timeout = 200 * time.Millisecond
	b := newFakeBackend()
	b.newPage = func(string) *fakePage {
		return &fakePage{snapshots: []models.SeoSnapshot{readySnapshot}, idleBlock: true, stable: true, html: "<html></html>"}
	}
	e := New(b, cfg)

	dom, err := e.Render(context.Background(), "https://example.com/", Options{})
	if err != nil {
		t.Fatalf("Render() error = %v, want idle timeout to be advisory", err)
	}
	if !dom.Timing.NetworkIdleTimedOut {
		t.Error("NetworkIdleTimedOut = false, want true")
	}
}

func TestRender_SeoReadyTimeout(t *testing.T) {
	b := newFakeBackend()
	b.newPage = func(string) *fakePage {
		return &fakePage{
			snapshots: []models.SeoSnapshot{{Title: "Loading...", URL: "https://example.com/"}},
			stable:    true,
			html:      "<html></html>",
		}
	}
	e := New(b, testConfig())

	dom, err := e.Render(context.Background(), "https://example.com/", Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !dom.Timing.SeoReadyTimedOut {
		t.Error("SeoReadyTimedOut = false, want true")
	}
	if dom.SeoSignals.Title {
		t.Error("placeholder title counted as ready")
	}
	if dom.HTML != "<html></html>" {
		t.Errorf("HTML = %q, want snapshot despite timeout", dom.HTML)
	}
}

func TestRender_CaptureAfterAdvisoryWaitsExhaustTimeout(t *testing.T) {
	tests := []struct {
		name         string
		cfg          func(*config.JSRenderConfig)
		opts         Options
		snapshot     models.SeoSnapshot
		wantTimedOut bool
	}{
		{
			name:         "seo wait outlasts render timeout",
			cfg:          func(c *config.JSRenderConfig) { c.SeoReadyMaxWait = 10 * time.Second },
			opts:         Options{Timeout: 400 * time.Millisecond},
			snapshot:     models.SeoSnapshot{Title: "Oak Dining Tables", URL: "https://example.com/"},
			wantTimedOut: true,
		},
		{
			name:     "fixed wait outlasts render timeout",
			opts:     Options{Timeout: 300 * time.Millisecond, WaitForTimeout: time.Second},
			snapshot: readySnapshot,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			b := newFakeBackend()
			b.newPage = func(string) *fakePage {
				return &fakePage{
					snapshots: []models.SeoSnapshot{tt.snapshot},
					stable:    true,
					html:      "<html><body><h1>Oak</h1></body></html>",
				}
			}
			e := New(b, cfg)

			start := time.Now()
			dom, err := e.Render(context.Background(), "https://example.com/", tt.opts)
			if err != nil {
				t.Fatalf("Render() error = %v, want snapshot", err)
			}
			if dom.HTML != "<html><body><h1>Oak</h1></body></html>" {
				t.Errorf("HTML = %q", dom.HTML)
			}
			if dom.Timing.SeoReadyTimedOut != tt.wantTimedOut {
				t.Errorf("SeoReadyTimedOut = %v, want %v", dom.Timing.SeoReadyTimedOut, tt.wantTimedOut)
			}
			if elapsed := time.Since(start); elapsed > tt.opts.Timeout+200*time.Millisecond {
				t.Errorf("Render took %v, want about %v", elapsed, tt.opts.Timeout)
			}
		})
	}
}

func TestRender_CallerCancelFailsCapture(t *testing.T) {
	b := newFakeBackend()
	ctx, cancel := context.WithCancel(context.Background())
	b.newPage = func(string) *fakePage {
		return &fakePage{snapshots: []models.SeoSnapshot{readySnapshot}, stable: true, html: "<html></html>"}
	}
	e := New(b, testConfig())
	cancel()

	if _, err := e.Render(ctx, "https://example.com/", Options{}); err == nil {
		t.Fatal("Render() with cancelled caller context: got nil error")
	}
}

func TestRender_SeoReadyAfterPolls(t *testing.T) {
	b := newFakeBackend()
	b.newPage = func(string) *fakePage {
		return &fakePage{
			snapshots: []models.SeoSnapshot{
				{Title: "Loading..."},
				{Title: "Oak Dining Table | Example Store"},
				readySnapshot,
			},
			stable: true,
			html:   "<html></html>",
		}
	}
	e := New(b, testConfig())

	dom, err := e.Render(context.Background(), "https://example.com/p/oak", Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if dom.Timing.SeoReadyTimedOut {
		t.Error("SeoReadyTimedOut = true, want false")
	}
	var polls int
	for _, c := range b.allPages()[0].callList() {
		if c == "snapshot" {
			polls++
		}
	}
	if polls != 3 {
		t.Errorf("snapshot polls = %d, want 3", polls)
	}
}

func TestRender_SnapshotErrorsKeepPolling(t *testing.T) {
	b := newFakeBackend()
	b.newPage = func(string) *fakePage {
		return &fakePage{stable: true, html: "<html></html>"}
	}
	e := New(b, testConfig())

	dom, err := e.Render(context.Background(), "https://example.com/", Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !dom.Timing.SeoReadyTimedOut {
		t.Error("SeoReadyTimedOut = false, want true when every snapshot fails")
	}
}

func TestRender_StabilizationErrorSwallowed(t *testing.T) {
	b := newFakeBackend()
	b.newPage = func(string) *fakePage {
		return &fakePage{
			snapshots: []models.SeoSnapshot{readySnapshot},
			stableErr: errors.New("observer failed"),
			html:      "<html></html>",
			url:       "https://example.com/final",
		}
	}
	e := New(b, testConfig())

	dom, err := e.Render(context.Background(), "https://example.com/", Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if dom.Timing.DomStable {
		t.Error("DomStable = true, want false after stabilization error")
	}
	if dom.FinalURL != "https://example.com/final" {
		t.Errorf("FinalURL = %q, want page URL", dom.FinalURL)
	}
}

func TestRender_ContextReusePerViewport(t *testing.T) {
	b := newFakeBackend()
	e := New(b, testConfig())
	ctx := context.Background()

	for _, v := range []models.Viewport{models.ViewportMobile, models.ViewportDesktop, models.ViewportMobile, ""} {
		if _, err := e.Render(ctx, "https://example.com/", Options{Viewport: v}); err != nil {
			t.Fatalf("Render(%q) error = %v", v, err)
		}
	}
	if b.contexts[models.ViewportMobile] != 1 || b.contexts[models.ViewportDesktop] != 1 {
		t.Errorf("contexts created = %v, want one per viewport", b.contexts)
	}
	if b.starts != 1 {
		t.Errorf("browser starts = %d, want 1", b.starts)
	}

	s := e.Stats()
	if !s.Initialized || s.RenderCount != 4 || len(s.Contexts) != 2 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestRender_PageOptionsForwarded(t *testing.T) {
	cfg := testConfig()
	cfg.BlockResources = []string{"image", "font"}
	b := newFakeBackend()
	e := New(b, cfg)

	_, err := e.Render(context.Background(), "https://example.com/", Options{
		Stealth: true,
		Headers: map[string]string{"Accept-Language": "en-US"},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	opts := b.allPages()[0].opts
	if !opts.Stealth || opts.Headers["Accept-Language"] != "en-US" {
		t.Errorf("PageOptions = %+v", opts)
	}
	if strings.Join(opts.BlockResources, ",") != "image,font" {
		t.Errorf("BlockResources = %v, want config default", opts.BlockResources)
	}
}

func TestInitialize_Idempotent(t *testing.T) {
	b := newFakeBackend()
	e := New(b, testConfig())
	for i := 0; i < 3; i++ {
		if err := e.Initialize(context.Background()); err != nil {
			t.Fatalf("Initialize() #%d error = %v", i, err)
		}
	}
	if b.starts != 1 {
		t.Errorf("browser starts = %d, want 1", b.starts)
	}
}

func TestInitialize_StartFailure(t *testing.T) {
	b := newFakeBackend()
	b.startErr = errors.New("chromium not found")
	e := New(b, testConfig())

	err := e.Initialize(context.Background())
	if !models.HasCode(err, models.ErrCodeBrowserCrash) {
		t.Fatalf("error = %v, want %s", err, models.ErrCodeBrowserCrash)
	}
	if e.Stats().Initialized {
		t.Error("Initialized = true after failed start")
	}
}

func TestClose_ThenRender(t *testing.T) {
	b := newFakeBackend()
	e := New(b, testConfig())
	if _, err := e.Render(context.Background(), "https://example.com/", Options{}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !b.closed {
		t.Error("backend not closed")
	}
	if err := e.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	_, err := e.Render(context.Background(), "https://example.com/", Options{})
	if !models.HasCode(err, models.ErrCodeBrowserClosed) {
		t.Fatalf("error = %v, want %s", err, models.ErrCodeBrowserClosed)
	}
}

func TestRenderBatch(t *testing.T) {
	b := newFakeBackend()
	b.newPage = func(string) *fakePage {
		return &fakePage{
			snapshots: []models.SeoSnapshot{readySnapshot},
			stable:    true,
			html:      "<html></html>",
			navDelay:  20 * time.Millisecond,
		}
	}
	e := New(b, testConfig())

	urls := make([]string, 7)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://example.com/p/%d", i)
	}
	urls = append(urls, "https://example.com/bad")

	results := e.RenderBatch(context.Background(), urls, Options{WaitForSelector: "div[[["}, 3)
	if len(results) != len(urls) {
		t.Fatalf("results = %d, want %d", len(results), len(urls))
	}
	for u, r := range results {
		if r.Err == nil || r.Dom != nil {
			t.Errorf("%s: want invalid selector error, got %+v", u, r)
		}
	}

	results = e.RenderBatch(context.Background(), urls, Options{}, 3)
	for u, r := range results {
		if r.Err != nil || r.Dom == nil {
			t.Errorf("%s: unexpected result %+v", u, r)
		}
	}
	if peak := b.peak.Load(); peak > 3 {
		t.Errorf("peak concurrent pages = %d, want <= 3", peak)
	}
}

func TestRenderBatch_IsolatesFailures(t *testing.T) {
	b := newFakeBackend()
	var n atomic.Int32
	b.newPage = func(string) *fakePage {
		p := &fakePage{snapshots: []models.SeoSnapshot{readySnapshot}, stable: true, html: "<html></html>"}
		if n.Add(1) == 2 {
			p.navErr = errors.New("net::ERR_CONNECTION_RESET")
		}
		return p
	}
	e := New(b, testConfig())

	urls := []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"}
	results := e.RenderBatch(context.Background(), urls, Options{}, 1)

	var ok, failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
		} else {
			ok++
		}
	}
	if ok != 2 || failed != 1 {
		t.Errorf("ok=%d failed=%d, want 2 and 1", ok, failed)
	}
}

func TestEvaluateSignals(t *testing.T) {
	long := strings.Repeat("Solid oak dining table for six. ", 3)
	tests := []struct {
		name string
		snap models.SeoSnapshot
		want models.SeoReadySignals
	}{
		{
			name: "empty",
			want: models.SeoReadySignals{},
		},
		{
			name: "short title",
			snap: models.SeoSnapshot{Title: "Oak table"},
			want: models.SeoReadySignals{},
		},
		{
			name: "placeholder title",
			snap: models.SeoSnapshot{Title: "Loading, please wait"},
			want: models.SeoReadySignals{},
		},
		{
			name: "all signals self canonical",
			snap: models.SeoSnapshot{
				Title:           "Oak Dining Table | Example Store",
				MetaDescription: long,
				H1:              "Oak Dining Table",
				Canonical:       "https://example.com/p/oak/",
				URL:             "https://example.com/p/oak?utm_source=mail",
			},
			want: models.SeoReadySignals{Title: true, MetaDescription: true, H1: true, Canonical: true, SelfCanonical: true},
		},
		{
			name: "canonical elsewhere",
			snap: models.SeoSnapshot{Canonical: "https://example.com/other", URL: "https://example.com/p/oak"},
			want: models.SeoReadySignals{Canonical: true},
		},
		{
			name: "short h1 and description",
			snap: models.SeoSnapshot{H1: "Oak", MetaDescription: "Short."},
			want: models.SeoReadySignals{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateSignals(tt.snap, "https://example.com/p/oak")
			if got != tt.want {
				t.Errorf("EvaluateSignals() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSatisfied(t *testing.T) {
	s := models.SeoReadySignals{Title: true, H1: true}
	tests := []struct {
		required []models.SeoSignal
		want     bool
	}{
		{nil, true},
		{[]models.SeoSignal{models.SignalTitle, models.SignalH1}, true},
		{[]models.SeoSignal{models.SignalTitle, models.SignalCanonical}, false},
		{[]models.SeoSignal{models.SignalMetaDescription}, false},
	}
	for _, tt := range tests {
		if got := Satisfied(s, tt.required); got != tt.want {
			t.Errorf("Satisfied(%v) = %v, want %v", tt.required, got, tt.want)
		}
	}
}

func TestBlockedSet(t *testing.T) {
	got := blockedSet([]string{"Image", " font ", "script", "unknown"})
	if len(got) != 2 {
		t.Errorf("blockedSet() size = %d, want 2 (image, font)", len(got))
	}
}

func TestPresetFor(t *testing.T) {
	if p := PresetFor(models.ViewportDesktop); p.Width != 1920 || p.Mobile {
		t.Errorf("desktop preset = %+v", p)
	}
	if p := PresetFor("tablet"); p.Width != 375 || !p.Mobile {
		t.Errorf("unknown viewport preset = %+v, want mobile", p)
	}
	d := deviceFor(models.ViewportMobile)
	if len(d.Capabilities) != 2 || d.Screen.DevicePixelRatio != 3 {
		t.Errorf("mobile device = %+v", d)
	}
}
