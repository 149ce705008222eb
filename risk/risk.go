// Package risk classifies how much a page's indexability depends on
// JavaScript execution.
package risk

import (
	"fmt"
	"slices"

	"github.com/dacdangvan/seotool-sub006/diff"
	"github.com/dacdangvan/seotool-sub006/models"
)

// linkSurgePercent is the internal-link growth above which rendering is a
// MEDIUM risk on its own.
const linkSurgePercent = 50

var (
	highElements = []string{
		models.FieldTitle,
		models.FieldH1,
		models.FieldCanonical,
		models.FieldRobots,
	}
	mediumElements = []string{
		models.FieldMetaDescription,
		models.FieldInternalLinks,
	}
)

var labels = map[string]string{
	models.FieldTitle:           "Title",
	models.FieldH1:              "H1 heading",
	models.FieldCanonical:       "Canonical URL",
	models.FieldRobots:          "Robots meta directive",
	models.FieldMetaDescription: "Meta description",
	models.FieldInternalLinks:   "Internal links",
	models.FieldExternalLinks:   "External links",
	models.FieldStructuredData:  "Structured data",
}

// Label returns the human-readable name of an element.
func Label(element string) string {
	if l, ok := labels[element]; ok {
		return l
	}
	return element
}

// Level returns the risk contributed by element when it depends on
// JavaScript.
func Level(element string) models.JSDependencyRisk {
	switch {
	case slices.Contains(highElements, element):
		return models.RiskHigh
	case slices.Contains(mediumElements, element), element == models.FieldStructuredData:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// Classify evaluates every rule against summary and returns the highest
// severity observed with one factor per finding, in evaluation order.
// dependent lists the JS-dependent elements, usually
// summary.JSDependentElements.
func Classify(summary models.DiffSummary, dependent []string) (models.JSDependencyRisk, []string) {
	level := models.RiskLow
	factors := []string{}
	raise := func(r models.JSDependencyRisk) {
		if r.Rank() > level.Rank() {
			level = r
		}
	}

	for _, el := range dependent {
		r := Level(el)
		if el == models.FieldStructuredData && category(summary, el) != models.DiffAddedByJS {
			r = models.RiskLow
		}
		raise(r)
		factors = append(factors, dependencyFactor(summary, el, r))
	}

	if summary.InternalLinks.PercentChange > linkSurgePercent &&
		!slices.Contains(dependent, models.FieldInternalLinks) {
		raise(models.RiskMedium)
		factors = append(factors, fmt.Sprintf("Internal links increased by %d%% after rendering (%s risk)",
			summary.InternalLinks.PercentChange, models.RiskMedium))
	}

	if summary.StructuredData == models.DiffAddedByJS &&
		!slices.Contains(dependent, models.FieldStructuredData) {
		raise(models.RiskMedium)
		factors = append(factors, fmt.Sprintf("Structured data only present after rendering (%s risk)", models.RiskMedium))
	}

	for _, el := range diff.Elements {
		if category(summary, el) == models.DiffMissingInRender {
			factors = append(factors, fmt.Sprintf("%s missing after rendering (informational)", Label(el)))
		}
	}

	return level, factors
}

func dependencyFactor(s models.DiffSummary, el string, r models.JSDependencyRisk) string {
	verb := "changed"
	if category(s, el) == models.DiffAddedByJS {
		verb = "added"
	}
	switch el {
	case models.FieldInternalLinks, models.FieldExternalLinks:
		l := s.InternalLinks
		if el == models.FieldExternalLinks {
			l = s.ExternalLinks
		}
		return fmt.Sprintf("%s %s by JavaScript: %d → %d (%+d%%) (%s risk)", Label(el), verb, l.Raw, l.Rendered, l.PercentChange, r)
	default:
		return fmt.Sprintf("%s %s by JavaScript (%s risk)", Label(el), verb, r)
	}
}

func category(s models.DiffSummary, el string) models.DiffCategory {
	switch el {
	case models.FieldTitle:
		return s.Title
	case models.FieldMetaDescription:
		return s.MetaDescription
	case models.FieldCanonical:
		return s.Canonical
	case models.FieldRobots:
		return s.Robots
	case models.FieldH1:
		return s.H1
	case models.FieldInternalLinks:
		return s.InternalLinks.Category
	case models.FieldExternalLinks:
		return s.ExternalLinks.Category
	case models.FieldStructuredData:
		return s.StructuredData
	default:
		return ""
	}
}
