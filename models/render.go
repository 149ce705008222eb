package models

// Viewport selects a device emulation preset.
type Viewport string

const (
	ViewportMobile  Viewport = "mobile"
	ViewportDesktop Viewport = "desktop"
)

// Valid reports whether v is one of the known presets.
func (v Viewport) Valid() bool {
	return v == ViewportMobile || v == ViewportDesktop
}

// SeoSignal names a signal the SEO-ready wait can require.
type SeoSignal string

const (
	SignalTitle           SeoSignal = "title"
	SignalMetaDescription SeoSignal = "meta_description"
	SignalH1              SeoSignal = "h1"
	SignalCanonical       SeoSignal = "canonical"
)

// RenderTimingMetrics are phase milestones in milliseconds from navigation start.
type RenderTimingMetrics struct {
	TimeToDomReady      int64 `json:"time_to_dom_ready"`
	TimeToNetworkIdle   int64 `json:"time_to_network_idle"`
	TimeToSeoReady      int64 `json:"time_to_seo_ready"`
	TotalRenderTime     int64 `json:"total_render_time"`
	SeoReadyTimedOut    bool  `json:"seo_ready_timed_out"`
	NetworkIdleTimedOut bool  `json:"network_idle_timed_out"`
	DomStable           bool  `json:"dom_stable"`
}

// SeoSnapshot is what the page exposes for the SEO-ready check.
type SeoSnapshot struct {
	Title           string `json:"title"`
	MetaDescription string `json:"meta_description"`
	H1              string `json:"h1"`
	Canonical       string `json:"canonical"`
	URL             string `json:"url"`
}

// SeoReadySignals reports which signals were satisfied when the wait ended.
type SeoReadySignals struct {
	Title           bool `json:"title"`
	MetaDescription bool `json:"meta_description"`
	H1              bool `json:"h1"`
	Canonical       bool `json:"canonical"`
	SelfCanonical   bool `json:"self_canonical"`
}

// RenderedDom is the output of one browser render.
type RenderedDom struct {
	URL        string              `json:"url"`
	FinalURL   string              `json:"final_url"`
	HTML       string              `json:"-"`
	Viewport   Viewport            `json:"viewport"`
	Timing     RenderTimingMetrics `json:"timing"`
	SeoSignals SeoReadySignals     `json:"seo_signals"`
}

// RendererStats reports the state of the rendering engine.
type RendererStats struct {
	Initialized bool       `json:"initialized"`
	RenderCount int64      `json:"render_count"`
	MaxRenders  int64      `json:"max_renders"`
	ActivePages int        `json:"active_pages"`
	Contexts    []Viewport `json:"contexts"`
}
