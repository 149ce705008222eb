package crawler

import (
	"time"

	"github.com/dacdangvan/seotool-sub006/diff"
	"github.com/dacdangvan/seotool-sub006/models"
	"github.com/dacdangvan/seotool-sub006/risk"
)

// BuildReport compares raw with rendered and classifies the result.
func BuildReport(url string, raw, rendered *models.ExtractedSeoData) *models.DiffReport {
	r := diff.Compare(raw, rendered)
	level, factors := risk.Classify(r.Summary, r.Summary.JSDependentElements)
	mode := models.RenderModeJSRendered
	if rendered != nil && rendered.RenderMode != "" {
		mode = rendered.RenderMode
	}
	return &models.DiffReport{
		URL:              url,
		RenderMode:       mode,
		DiffSummary:      r.Summary,
		DetailedDiff:     r.Detailed,
		JSDependencyRisk: level,
		RiskFactors:      factors,
		Timestamp:        time.Now().UTC(),
	}
}
