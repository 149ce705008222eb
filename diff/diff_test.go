package diff

import (
	"slices"
	"testing"

	"github.com/dacdangvan/seotool-sub006/models"
	"github.com/dacdangvan/seotool-sub006/simhash"
)

func sample() *models.ExtractedSeoData {
	d := models.EmptySeoData("https://example.com/p/oak", models.RenderModeHTML)
	d.Title = "Oak Dining Table | Example Store"
	d.MetaDescription = "Solid oak dining table for six people, hand finished in our workshop."
	d.Canonical = "https://example.com/p/oak"
	d.Robots = "index,follow"
	d.H1 = []string{"Oak Dining Table"}
	for i := 0; i < 10; i++ {
		d.InternalLinks = append(d.InternalLinks, models.Link{Href: "https://example.com/c/" + string(rune('a'+i))})
	}
	d.ExternalLinks = []models.Link{{Href: "https://partner.example.org/"}}
	d.StructuredData = []models.StructuredDataEntry{{Type: "Product"}}
	d.TextFingerprint = 0xdeadbeef
	d.DOMFingerprint = 0xfeedface
	return d
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		raw, rendered, equal bool
		want                 models.DiffCategory
	}{
		{false, false, false, models.DiffIdentical},
		{false, false, true, models.DiffIdentical},
		{false, true, false, models.DiffAddedByJS},
		{true, false, false, models.DiffMissingInRender},
		{true, true, true, models.DiffIdentical},
		{true, true, false, models.DiffChangedByJS},
	}
	for _, tt := range tests {
		if got := Categorize(tt.raw, tt.rendered, tt.equal); got != tt.want {
			t.Errorf("Categorize(%v, %v, %v) = %s, want %s", tt.raw, tt.rendered, tt.equal, got, tt.want)
		}
	}
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		raw, rendered, want int
	}{
		{0, 0, 0},
		{0, 1, 100},
		{0, 250, 100},
		{10, 16, 60},
		{10, 15, 50},
		{10, 5, -50},
		{3, 4, 33},
		{3, 5, 67},
		{8, 0, -100},
	}
	for _, tt := range tests {
		if got := PercentChange(tt.raw, tt.rendered); got != tt.want {
			t.Errorf("PercentChange(%d, %d) = %d, want %d", tt.raw, tt.rendered, got, tt.want)
		}
	}
}

func TestCompare_Identity(t *testing.T) {
	for _, d := range []*models.ExtractedSeoData{sample(), models.EmptySeoData("", models.RenderModeHTML)} {
		r := Compare(d, d)
		for _, e := range r.Detailed.Elements {
			if e.Category != models.DiffIdentical {
				t.Errorf("%s = %s, want IDENTICAL", e.Element, e.Category)
			}
		}
		if len(r.Summary.JSDependentElements) != 0 {
			t.Errorf("JSDependentElements = %v, want empty", r.Summary.JSDependentElements)
		}
		if r.Summary.TextSimilarity != 1 {
			t.Errorf("TextSimilarity = %v, want 1", r.Summary.TextSimilarity)
		}
		if r.Summary.DOMSimilarity != 1 {
			t.Errorf("DOMSimilarity = %v, want 1", r.Summary.DOMSimilarity)
		}
		if len(r.Detailed.Elements) != len(Elements) {
			t.Errorf("detailed elements = %d, want %d", len(r.Detailed.Elements), len(Elements))
		}
	}
}

func TestCompare_DOMSimilarity(t *testing.T) {
	const shell = `<html><head><title>Store</title></head><body><div id="root"></div><script src="/app.js"></script></body></html>`
	const rendered = `<html><head><title>Oak Dining Table</title></head><body><div id="root">
<header><nav><ul><li><a href="/">Home</a></li><li><a href="/c/tables">Tables</a></li></ul></nav></header>
<main><h1>Oak Dining Table</h1><section><p>Solid oak.</p><table><tr><td>Width</td><td>180cm</td></tr></table></section></main>
<footer><p>Example Store</p></footer></div><script src="/app.js"></script></body></html>`

	tests := []struct {
		name          string
		raw, rendered uint64
		want          float64
	}{
		{"same structure", 0xff, 0xff, 1},
		{"four bits apart", 0xff, 0xf0, 0.9375},
		{"rendered only", 0, 0xff, 0},
	}
	for _, tt := range tests {
		raw, ren := sample(), sample()
		raw.DOMFingerprint, ren.DOMFingerprint = tt.raw, tt.rendered
		if got := Compare(raw, ren).Summary.DOMSimilarity; got != tt.want {
			t.Errorf("%s: DOMSimilarity = %v, want %v", tt.name, got, tt.want)
		}
	}

	raw, ren := sample(), sample()
	raw.DOMFingerprint = simhash.FingerprintDOM(shell)
	ren.DOMFingerprint = simhash.FingerprintDOM(rendered)
	if got := Compare(raw, ren).Summary.DOMSimilarity; got >= 1 {
		t.Errorf("shell vs rendered DOMSimilarity = %v, want < 1", got)
	}
}

func TestCompare_NilInputs(t *testing.T) {
	r := Compare(nil, sample())
	if r.Summary.Title != models.DiffAddedByJS {
		t.Errorf("Title = %s, want ADDED_BY_JS", r.Summary.Title)
	}
	r = Compare(sample(), nil)
	if r.Summary.H1 != models.DiffMissingInRender {
		t.Errorf("H1 = %s, want MISSING_IN_RENDER", r.Summary.H1)
	}
}

func TestCompare_H1AddedByJS(t *testing.T) {
	raw := sample()
	raw.H1 = []string{}
	rendered := sample()
	rendered.H1 = []string{"Welcome"}

	r := Compare(raw, rendered)
	if r.Summary.H1 != models.DiffAddedByJS {
		t.Errorf("H1 = %s, want ADDED_BY_JS", r.Summary.H1)
	}
	if !slices.Equal(r.Summary.JSDependentElements, []string{models.FieldH1}) {
		t.Errorf("JSDependentElements = %v, want [h1]", r.Summary.JSDependentElements)
	}
	e, ok := r.Detailed.Element(models.FieldH1)
	if !ok || e.RawValue != "" || e.RenderedValue != "Welcome" {
		t.Errorf("detailed h1 = %+v", e)
	}
}

func TestCompare_H1CountChange(t *testing.T) {
	raw := sample()
	rendered := sample()
	rendered.H1 = append(rendered.H1, "Specifications")

	if got := Compare(raw, rendered).Summary.H1; got != models.DiffChangedByJS {
		t.Errorf("H1 = %s, want CHANGED_BY_JS when count differs", got)
	}
}

func TestCompare_ScalarWhitespace(t *testing.T) {
	raw := sample()
	rendered := sample()
	rendered.Title = "  " + raw.Title + "\n"

	if got := Compare(raw, rendered).Summary.Title; got != models.DiffIdentical {
		t.Errorf("Title = %s, want IDENTICAL after trimming", got)
	}
}

func TestCompare_Links(t *testing.T) {
	raw := sample()
	rendered := sample()
	for i := 0; i < 6; i++ {
		rendered.InternalLinks = append(rendered.InternalLinks, models.Link{Href: "https://example.com/x"})
	}
	rendered.ExternalLinks = nil

	s := Compare(raw, rendered).Summary
	if s.InternalLinks.Category != models.DiffChangedByJS || s.InternalLinks.PercentChange != 60 {
		t.Errorf("InternalLinks = %+v, want CHANGED_BY_JS +60", s.InternalLinks)
	}
	if s.ExternalLinks.Category != models.DiffMissingInRender || s.ExternalLinks.PercentChange != -100 {
		t.Errorf("ExternalLinks = %+v, want MISSING_IN_RENDER -100", s.ExternalLinks)
	}
}

func TestCompare_StructuredData(t *testing.T) {
	raw := sample()
	raw.StructuredData = nil
	rendered := sample()
	rendered.StructuredData = []models.StructuredDataEntry{{Type: "Article"}}

	s := Compare(raw, rendered).Summary
	if s.StructuredData != models.DiffAddedByJS {
		t.Errorf("StructuredData = %s, want ADDED_BY_JS", s.StructuredData)
	}
	if !slices.Equal(s.StructuredDataTypes.Rendered, []string{"Article"}) || len(s.StructuredDataTypes.Raw) != 0 {
		t.Errorf("StructuredDataTypes = %+v", s.StructuredDataTypes)
	}

	raw = sample()
	rendered = sample()
	rendered.StructuredData = []models.StructuredDataEntry{{Type: "Product"}, {Type: "BreadcrumbList"}}
	if got := Compare(raw, rendered).Summary.StructuredData; got != models.DiffChangedByJS {
		t.Errorf("StructuredData = %s, want CHANGED_BY_JS", got)
	}

	// Order and duplicates do not matter.
	raw.StructuredData = []models.StructuredDataEntry{{Type: "Product"}, {Type: "Offer"}}
	rendered.StructuredData = []models.StructuredDataEntry{{Type: "Offer"}, {Type: "Product"}, {Type: "Offer"}}
	if got := Compare(raw, rendered).Summary.StructuredData; got != models.DiffIdentical {
		t.Errorf("StructuredData = %s, want IDENTICAL", got)
	}
}

func TestCompare_DependentOrder(t *testing.T) {
	raw := models.EmptySeoData("", models.RenderModeHTML)
	rendered := sample()

	got := Compare(raw, rendered).Summary.JSDependentElements
	if !slices.Equal(got, Elements) {
		t.Errorf("JSDependentElements = %v, want %v", got, Elements)
	}
}
