package models

// RenderMode records which HTML an extraction was taken from.
type RenderMode string

const (
	RenderModeHTML       RenderMode = "html"
	RenderModeJSRendered RenderMode = "js_rendered"
)

// SignalSource attributes a signal to the raw response or to rendering.
type SignalSource string

const (
	SourceRawHTML    SignalSource = "raw_html"
	SourceJSRendered SignalSource = "js_rendered"
	SourceNotFound   SignalSource = "not_found"
)

// Field names used as MetaSource keys and as diff element names.
const (
	FieldTitle           = "title"
	FieldMetaDescription = "meta_description"
	FieldCanonical       = "canonical"
	FieldRobots          = "robots"
	FieldH1              = "h1"
	FieldOGTitle         = "og_title"
	FieldOGDescription   = "og_description"
	FieldOGImage         = "og_image"
	FieldLanguage        = "language"
	FieldStructuredData  = "structured_data"
	FieldInternalLinks   = "internal_links"
	FieldExternalLinks   = "external_links"
)

// OpenGraph contains Open Graph protocol meta tags.
type OpenGraph struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Type        string `json:"type,omitempty"`
	URL         string `json:"url,omitempty"`
}

// HeadingNode is one heading in the reconstructed outline.
type HeadingNode struct {
	Level    int            `json:"level"`
	Text     string         `json:"text"`
	Children []*HeadingNode `json:"children,omitempty"`
}

// Link represents a hyperlink extracted from the page.
type Link struct {
	Href     string `json:"href"`
	Text     string `json:"text,omitempty"`
	NoFollow bool   `json:"nofollow,omitempty"`
}

// StructuredDataEntry is one JSON-LD object with its @type.
type StructuredDataEntry struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

// ExtractedSeoData is the canonical SEO signal set of one HTML document.
type ExtractedSeoData struct {
	URL             string    `json:"url"`
	Title           string    `json:"title"`
	MetaDescription string    `json:"meta_description"`
	Canonical       string    `json:"canonical"`
	Robots          string    `json:"robots"`
	OpenGraph       OpenGraph `json:"open_graph"`

	H1               []string       `json:"h1"`
	H2               []string       `json:"h2"`
	H3               []string       `json:"h3"`
	HeadingHierarchy []*HeadingNode `json:"heading_hierarchy"`

	InternalLinks []Link `json:"internal_links"`
	ExternalLinks []Link `json:"external_links"`

	VisibleTextLength int `json:"visible_text_length"`
	WordCount         int `json:"word_count"`
	MainContentLength int `json:"main_content_length"`

	StructuredData []StructuredDataEntry `json:"structured_data"`

	NoIndex  bool   `json:"noindex"`
	NoFollow bool   `json:"nofollow"`
	Language string `json:"language,omitempty"`
	Charset  string `json:"charset,omitempty"`

	RenderMode   RenderMode `json:"render_mode"`
	RenderTimeMs int64      `json:"render_time_ms"`

	// MetaSource is only populated when attribution was requested.
	MetaSource map[string]SignalSource `json:"meta_source,omitempty"`

	TextFingerprint uint64 `json:"text_fingerprint"`
	DOMFingerprint  uint64 `json:"dom_fingerprint"`
}

// EmptySeoData returns a fully populated placeholder with empty slices, used
// when nothing could be fetched.
func EmptySeoData(url string, mode RenderMode) *ExtractedSeoData {
	return &ExtractedSeoData{
		URL:              url,
		H1:               []string{},
		H2:               []string{},
		H3:               []string{},
		HeadingHierarchy: []*HeadingNode{},
		InternalLinks:    []Link{},
		ExternalLinks:    []Link{},
		StructuredData:   []StructuredDataEntry{},
		RenderMode:       mode,
	}
}

// Severity levels for SEO issues.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// SeoIssue is one finding of the page-level SEO analysis.
type SeoIssue struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// SeoAnalysis lists issues found in an extraction and a 0-100 score.
type SeoAnalysis struct {
	Issues []SeoIssue `json:"issues"`
	Score  int        `json:"score"`
}
