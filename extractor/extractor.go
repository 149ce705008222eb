// Package extractor pulls the SEO-relevant signal set out of an HTML
// document, either the raw HTTP response or the rendered DOM.
package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dacdangvan/seotool-sub006/models"
	"github.com/dacdangvan/seotool-sub006/simhash"
)

// Options tunes a single extraction.
type Options struct {
	// Raw is the extraction of the raw response for the same URL. It is only
	// consulted for MetaSource attribution of a js_rendered extraction.
	Raw *models.ExtractedSeoData

	// SkipSources leaves MetaSource nil.
	SkipSources bool

	// SkipMainContent skips the readability pass.
	SkipMainContent bool
}

// Extract parses doc and returns its signal set. It never fails: data errors
// (bad JSON-LD, unparseable links) are skipped or reclassified locally, and an
// unparseable document yields an empty but fully populated result.
func Extract(doc, baseURL string, mode models.RenderMode, renderTimeMs int64, opts Options) *models.ExtractedSeoData {
	data := models.EmptySeoData(baseURL, mode)
	data.RenderTimeMs = renderTimeMs

	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		if !opts.SkipSources {
			data.MetaSource = attributeSources(data, mode, opts.Raw)
		}
		return data
	}
	base, _ := url.Parse(baseURL)

	data.Title = collapse(d.Find("title").First().Text())
	data.MetaDescription = metaContent(d, "description")
	data.Robots = strings.ToLower(metaContent(d, "robots"))
	data.NoIndex = strings.Contains(data.Robots, "noindex") || strings.Contains(data.Robots, "none")
	data.NoFollow = strings.Contains(data.Robots, "nofollow") || strings.Contains(data.Robots, "none")

	if href, ok := d.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		data.Canonical = ResolveCanonical(strings.TrimSpace(href), base)
	}
	data.OpenGraph = openGraph(d)

	data.H1 = headingTexts(d, "h1")
	data.H2 = headingTexts(d, "h2")
	data.H3 = headingTexts(d, "h3")
	data.HeadingHierarchy = BuildHeadingTree(flatHeadings(d))

	data.InternalLinks, data.ExternalLinks = extractLinks(d, base)
	data.StructuredData = extractJSONLD(d)

	text := visibleText(d)
	data.VisibleTextLength = len([]rune(text))
	data.WordCount = len(strings.Fields(text))

	data.Language = strings.TrimSpace(d.Find("html").AttrOr("lang", ""))
	if data.Language == "" {
		data.Language = httpEquiv(d, "content-language")
	}
	data.Charset = charset(d)

	if !opts.SkipMainContent {
		data.MainContentLength = mainContentLength(doc, baseURL)
	}
	data.TextFingerprint = simhash.Fingerprint(text)
	data.DOMFingerprint = simhash.FingerprintDOM(doc)

	if !opts.SkipSources {
		data.MetaSource = attributeSources(data, mode, opts.Raw)
	}
	return data
}

// metaContent returns the content of <meta name=...>, matching the name
// case-insensitively.
func metaContent(d *goquery.Document, name string) string {
	var out string
	d.Find("meta[name]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.EqualFold(strings.TrimSpace(s.AttrOr("name", "")), name) {
			out = strings.TrimSpace(s.AttrOr("content", ""))
			return false
		}
		return true
	})
	return out
}

func httpEquiv(d *goquery.Document, name string) string {
	var out string
	d.Find("meta[http-equiv]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.EqualFold(s.AttrOr("http-equiv", ""), name) {
			out = strings.TrimSpace(s.AttrOr("content", ""))
			return false
		}
		return true
	})
	return out
}

func charset(d *goquery.Document) string {
	if cs, ok := d.Find("meta[charset]").First().Attr("charset"); ok {
		return strings.ToLower(strings.TrimSpace(cs))
	}
	ct := strings.ToLower(httpEquiv(d, "content-type"))
	if i := strings.Index(ct, "charset="); i >= 0 {
		return strings.Trim(ct[i+len("charset="):], ` "';`)
	}
	return ""
}

func openGraph(d *goquery.Document) models.OpenGraph {
	og := models.OpenGraph{}
	d.Find("meta[property]").Each(func(_ int, s *goquery.Selection) {
		content := strings.TrimSpace(s.AttrOr("content", ""))
		if content == "" {
			return
		}
		switch strings.ToLower(s.AttrOr("property", "")) {
		case "og:title":
			og.Title = content
		case "og:description":
			og.Description = content
		case "og:image":
			og.Image = content
		case "og:type":
			og.Type = content
		case "og:url":
			og.URL = content
		}
	})
	return og
}

func headingTexts(d *goquery.Document, tag string) []string {
	out := []string{}
	d.Find(tag).Each(func(_ int, s *goquery.Selection) {
		if t := collapse(s.Text()); t != "" {
			out = append(out, t)
		}
	})
	return out
}

// visibleText is the whitespace-collapsed body text without script, style,
// noscript and template content.
func visibleText(d *goquery.Document) string {
	body := d.Find("body").First()
	if body.Length() == 0 {
		return ""
	}
	body = body.Clone()
	body.Find("script, style, noscript, template").Remove()
	return collapse(body.Text())
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// attributeSources records where each tracked field came from. For html mode
// every present field is raw_html. For js_rendered a field is raw_html when
// the paired raw extraction already had it.
func attributeSources(data *models.ExtractedSeoData, mode models.RenderMode, raw *models.ExtractedSeoData) map[string]models.SignalSource {
	here := presentFields(data)
	var before map[string]bool
	if raw != nil {
		before = presentFields(raw)
	}

	out := make(map[string]models.SignalSource, len(here))
	for field, present := range here {
		switch {
		case mode == models.RenderModeHTML && present:
			out[field] = models.SourceRawHTML
		case mode == models.RenderModeHTML:
			out[field] = models.SourceNotFound
		case before[field]:
			out[field] = models.SourceRawHTML
		case present:
			out[field] = models.SourceJSRendered
		default:
			out[field] = models.SourceNotFound
		}
	}
	return out
}

func presentFields(d *models.ExtractedSeoData) map[string]bool {
	return map[string]bool{
		models.FieldTitle:           d.Title != "",
		models.FieldMetaDescription: d.MetaDescription != "",
		models.FieldCanonical:       d.Canonical != "",
		models.FieldRobots:          d.Robots != "",
		models.FieldH1:              len(d.H1) > 0,
		models.FieldOGTitle:         d.OpenGraph.Title != "",
		models.FieldOGDescription:   d.OpenGraph.Description != "",
		models.FieldOGImage:         d.OpenGraph.Image != "",
		models.FieldLanguage:        d.Language != "",
		models.FieldStructuredData:  len(d.StructuredData) > 0,
		models.FieldInternalLinks:   len(d.InternalLinks) > 0,
		models.FieldExternalLinks:   len(d.ExternalLinks) > 0,
	}
}
