// Package diff compares the SEO signals of a raw HTTP response with those of
// the rendered DOM.
package diff

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/dacdangvan/seotool-sub006/extractor"
	"github.com/dacdangvan/seotool-sub006/models"
	"github.com/dacdangvan/seotool-sub006/simhash"
)

// Elements lists the compared elements in report order.
var Elements = []string{
	models.FieldTitle,
	models.FieldMetaDescription,
	models.FieldCanonical,
	models.FieldRobots,
	models.FieldH1,
	models.FieldInternalLinks,
	models.FieldExternalLinks,
	models.FieldStructuredData,
}

// Result is the outcome of Compare.
type Result struct {
	Summary  models.DiffSummary
	Detailed models.DetailedDiff
}

// Categorize classifies a pair of values by presence and equality.
func Categorize(rawPresent, renderedPresent, equal bool) models.DiffCategory {
	switch {
	case !rawPresent && !renderedPresent:
		return models.DiffIdentical
	case !rawPresent:
		return models.DiffAddedByJS
	case !renderedPresent:
		return models.DiffMissingInRender
	case equal:
		return models.DiffIdentical
	default:
		return models.DiffChangedByJS
	}
}

// PercentChange returns the rounded relative change from raw to rendered.
// A raw count of zero yields 100 when links appeared and 0 otherwise.
func PercentChange(raw, rendered int) int {
	if raw == 0 {
		if rendered > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(float64(rendered-raw) / float64(raw) * 100))
}

// Compare diffs two extractions element by element. Nil inputs are treated
// as empty extractions.
func Compare(raw, rendered *models.ExtractedSeoData) Result {
	if raw == nil {
		raw = models.EmptySeoData("", models.RenderModeHTML)
	}
	if rendered == nil {
		rendered = models.EmptySeoData("", models.RenderModeJSRendered)
	}

	var r Result
	add := func(name string, cat models.DiffCategory, rawValue, renderedValue string) models.DiffCategory {
		r.Detailed.Elements = append(r.Detailed.Elements, models.ElementDiff{
			Element:       name,
			Category:      cat,
			RawValue:      rawValue,
			RenderedValue: renderedValue,
		})
		if cat.JSDependent() {
			r.Summary.JSDependentElements = append(r.Summary.JSDependentElements, name)
		}
		return cat
	}
	scalar := func(name, a, b string) models.DiffCategory {
		a, b = strings.TrimSpace(a), strings.TrimSpace(b)
		return add(name, Categorize(a != "", b != "", a == b), a, b)
	}

	s := &r.Summary
	s.JSDependentElements = []string{}

	s.Title = scalar(models.FieldTitle, raw.Title, rendered.Title)
	s.MetaDescription = scalar(models.FieldMetaDescription, raw.MetaDescription, rendered.MetaDescription)
	s.Canonical = scalar(models.FieldCanonical, raw.Canonical, rendered.Canonical)
	s.Robots = scalar(models.FieldRobots, raw.Robots, rendered.Robots)

	rawH1, renderedH1 := first(raw.H1), first(rendered.H1)
	s.H1 = add(models.FieldH1,
		Categorize(len(raw.H1) > 0, len(rendered.H1) > 0,
			len(raw.H1) == len(rendered.H1) && rawH1 == renderedH1),
		rawH1, renderedH1)

	s.InternalLinks = links(len(raw.InternalLinks), len(rendered.InternalLinks))
	add(models.FieldInternalLinks, s.InternalLinks.Category,
		strconv.Itoa(s.InternalLinks.Raw), strconv.Itoa(s.InternalLinks.Rendered))
	s.ExternalLinks = links(len(raw.ExternalLinks), len(rendered.ExternalLinks))
	add(models.FieldExternalLinks, s.ExternalLinks.Category,
		strconv.Itoa(s.ExternalLinks.Raw), strconv.Itoa(s.ExternalLinks.Rendered))

	rawTypes := extractor.StructuredDataTypes(raw.StructuredData)
	renderedTypes := extractor.StructuredDataTypes(rendered.StructuredData)
	s.StructuredDataTypes = models.TypesDiff{Raw: rawTypes, Rendered: renderedTypes}
	s.StructuredData = add(models.FieldStructuredData,
		Categorize(len(raw.StructuredData) > 0, len(rendered.StructuredData) > 0, slices.Equal(rawTypes, renderedTypes)),
		strings.Join(rawTypes, ", "), strings.Join(renderedTypes, ", "))

	s.TextSimilarity = simhash.Similarity(raw.TextFingerprint, rendered.TextFingerprint)
	s.DOMSimilarity = simhash.Similarity(raw.DOMFingerprint, rendered.DOMFingerprint)
	return r
}

func links(raw, rendered int) models.LinksDiff {
	return models.LinksDiff{
		Raw:           raw,
		Rendered:      rendered,
		Category:      Categorize(raw > 0, rendered > 0, raw == rendered),
		PercentChange: PercentChange(raw, rendered),
	}
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return strings.TrimSpace(s[0])
}
