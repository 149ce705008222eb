package extractor

import (
	"fmt"

	"github.com/dacdangvan/seotool-sub006/models"
)

const (
	titleMinLen       = 10
	titleMaxLen       = 60
	descriptionMinLen = 50
	descriptionMaxLen = 160
	thinContentWords  = 300
)

var severityPenalty = map[string]int{
	models.SeverityError:   20,
	models.SeverityWarning: 10,
	models.SeverityInfo:    3,
}

// Analyze scores an extraction against basic on-page rules. The score starts
// at 100 and loses a fixed penalty per issue, clamped to 0.
func Analyze(d *models.ExtractedSeoData) models.SeoAnalysis {
	var issues []models.SeoIssue
	add := func(code, severity, format string, args ...any) {
		issues = append(issues, models.SeoIssue{Code: code, Severity: severity, Message: fmt.Sprintf(format, args...)})
	}

	switch n := len([]rune(d.Title)); {
	case n == 0:
		add("MISSING_TITLE", models.SeverityError, "page has no <title>")
	case n < titleMinLen:
		add("TITLE_TOO_SHORT", models.SeverityWarning, "title is %d characters (min %d)", n, titleMinLen)
	case n > titleMaxLen:
		add("TITLE_TOO_LONG", models.SeverityWarning, "title is %d characters (max %d)", n, titleMaxLen)
	}

	switch n := len([]rune(d.MetaDescription)); {
	case n == 0:
		add("MISSING_META_DESCRIPTION", models.SeverityWarning, "page has no meta description")
	case n < descriptionMinLen:
		add("META_DESCRIPTION_TOO_SHORT", models.SeverityInfo, "meta description is %d characters (min %d)", n, descriptionMinLen)
	case n > descriptionMaxLen:
		add("META_DESCRIPTION_TOO_LONG", models.SeverityInfo, "meta description is %d characters (max %d)", n, descriptionMaxLen)
	}

	switch len(d.H1) {
	case 0:
		add("MISSING_H1", models.SeverityError, "page has no <h1>")
	case 1:
	default:
		add("MULTIPLE_H1", models.SeverityWarning, "page has %d <h1> elements", len(d.H1))
	}

	if d.Canonical == "" {
		add("MISSING_CANONICAL", models.SeverityWarning, "page has no canonical link")
	}
	if d.NoIndex {
		add("NOINDEX", models.SeverityError, "robots meta forbids indexing (%s)", d.Robots)
	}
	if d.Language == "" {
		add("MISSING_LANG", models.SeverityInfo, "document language is not declared")
	}
	if d.WordCount < thinContentWords {
		add("THIN_CONTENT", models.SeverityWarning, "page has %d words of visible text", d.WordCount)
	}
	if len(d.StructuredData) == 0 {
		add("NO_STRUCTURED_DATA", models.SeverityInfo, "page has no JSON-LD structured data")
	}

	score := 100
	for _, is := range issues {
		score -= severityPenalty[is.Severity]
	}
	if score < 0 {
		score = 0
	}
	if issues == nil {
		issues = []models.SeoIssue{}
	}
	return models.SeoAnalysis{Issues: issues, Score: score}
}
