package models

import "time"

// DiffCategory classifies how one field changed between raw and rendered HTML.
type DiffCategory string

const (
	DiffIdentical       DiffCategory = "IDENTICAL"
	DiffAddedByJS       DiffCategory = "ADDED_BY_JS"
	DiffMissingInRender DiffCategory = "MISSING_IN_RENDER"
	DiffChangedByJS     DiffCategory = "CHANGED_BY_JS"
)

// JSDependent reports whether the category means the field relies on JavaScript.
func (c DiffCategory) JSDependent() bool {
	return c == DiffAddedByJS || c == DiffChangedByJS
}

// JSDependencyRisk is the overall classification of a diff.
type JSDependencyRisk string

const (
	RiskLow    JSDependencyRisk = "LOW"
	RiskMedium JSDependencyRisk = "MEDIUM"
	RiskHigh   JSDependencyRisk = "HIGH"
)

// Rank orders risks so the maximum can be taken.
func (r JSDependencyRisk) Rank() int {
	switch r {
	case RiskHigh:
		return 2
	case RiskMedium:
		return 1
	default:
		return 0
	}
}

// LinksDiff compares link counts.
type LinksDiff struct {
	Raw           int          `json:"raw"`
	Rendered      int          `json:"rendered"`
	Category      DiffCategory `json:"category"`
	PercentChange int          `json:"percent_change"`
}

// TypesDiff holds the sorted structured-data @type sets on both sides.
type TypesDiff struct {
	Raw      []string `json:"raw"`
	Rendered []string `json:"rendered"`
}

// DiffSummary is the per-element category table of a comparison.
type DiffSummary struct {
	Title               DiffCategory `json:"title"`
	MetaDescription     DiffCategory `json:"meta_description"`
	Canonical           DiffCategory `json:"canonical"`
	Robots              DiffCategory `json:"robots"`
	H1                  DiffCategory `json:"h1"`
	InternalLinks       LinksDiff    `json:"internal_links"`
	ExternalLinks       LinksDiff    `json:"external_links"`
	StructuredData      DiffCategory `json:"structured_data"`
	StructuredDataTypes TypesDiff    `json:"structured_data_types"`
	JSDependentElements []string     `json:"js_dependent_elements"`
	TextSimilarity      float64      `json:"text_similarity"`
	DOMSimilarity       float64      `json:"dom_similarity"`
}

// ElementDiff keeps the literal values of one compared element.
type ElementDiff struct {
	Element       string       `json:"element"`
	Category      DiffCategory `json:"category"`
	RawValue      string       `json:"raw_value"`
	RenderedValue string       `json:"rendered_value"`
}

// DetailedDiff is the audit view of a comparison.
type DetailedDiff struct {
	Elements []ElementDiff `json:"elements"`
}

// Element returns the entry for name, or false if it was not compared.
func (d DetailedDiff) Element(name string) (ElementDiff, bool) {
	for _, e := range d.Elements {
		if e.Element == name {
			return e, true
		}
	}
	return ElementDiff{}, false
}

// DiffReport is the terminal artifact of a raw-vs-rendered comparison.
type DiffReport struct {
	URL              string           `json:"url"`
	RenderMode       RenderMode       `json:"render_mode"`
	DiffSummary      DiffSummary      `json:"diff_summary"`
	DetailedDiff     DetailedDiff     `json:"detailed_diff"`
	JSDependencyRisk JSDependencyRisk `json:"js_dependency_risk"`
	RiskFactors      []string         `json:"risk_factors"`
	Timestamp        time.Time        `json:"timestamp"`
}
