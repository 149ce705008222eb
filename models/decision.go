package models

// RenderReason explains why a RenderDecision was reached.
type RenderReason string

const (
	ReasonNoRenderNeeded     RenderReason = "no_render_needed"
	ReasonURLPatternNever    RenderReason = "url_pattern_never"
	ReasonURLPatternAlways   RenderReason = "url_pattern_always"
	ReasonForceRender        RenderReason = "force_render"
	ReasonMissingTitle       RenderReason = "missing_title"
	ReasonPlaceholderTitle   RenderReason = "placeholder_title"
	ReasonMissingH1          RenderReason = "missing_h1"
	ReasonFrameworkDetected  RenderReason = "framework_detected"
	ReasonSPADetected        RenderReason = "spa_detected"
	ReasonHeavyJavaScript    RenderReason = "heavy_javascript"
	ReasonRequestForceHTML   RenderReason = "request_force_html"
	ReasonRequestForceRender RenderReason = "request_force_render"
)

// RenderDecision is the outcome of deciding whether a URL needs a browser.
type RenderDecision struct {
	ShouldRender bool         `json:"should_render"`
	Reason       RenderReason `json:"reason"`
	Confidence   float64      `json:"confidence"`
}

// SPA indicator types reported by raw HTML analysis.
const (
	IndicatorEmptyRoot       = "empty_root"
	IndicatorMinimalBodyText = "minimal_body_text"
	IndicatorNoscriptWarning = "noscript_warning"
	IndicatorHeavyJS         = "heavy_js"
)

// SpaIndicator is one piece of evidence that a page is a client-rendered shell.
type SpaIndicator struct {
	Type     string `json:"type"`
	Selector string `json:"selector,omitempty"`
	Details  string `json:"details"`
}

// RawHTMLAnalysis captures what the raw HTTP response contains before any
// JavaScript runs. It only lives for the duration of a decision.
type RawHTMLAnalysis struct {
	HasTitle           bool           `json:"has_title"`
	Title              string         `json:"title,omitempty"`
	HasH1              bool           `json:"has_h1"`
	H1                 string         `json:"h1,omitempty"`
	HasMetaDescription bool           `json:"has_meta_description"`
	MetaDescription    string         `json:"meta_description,omitempty"`
	Indicators         []SpaIndicator `json:"indicators"`
	Framework          string         `json:"framework,omitempty"`

	ScriptCount         int `json:"script_count"`
	ExternalScriptCount int `json:"external_script_count"`
	InlineScriptBytes   int `json:"inline_script_bytes"`
}
