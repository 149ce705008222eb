package decision

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/dacdangvan/seotool-sub006/models"
)

const (
	emptyRootMaxChars   = 50
	minimalBodyMaxChars = 100
	heavyInlineBytes    = 50 * 1024
	heavyScriptCount    = 20
)

// rootSelectors are the mount points client-side apps render into.
var rootSelectors = []string{"#root", "#app", "#__next", "#__nuxt", "#___gatsby", "#svelte", "app-root"}

// Analyze inspects raw HTML as returned by the server, before any script runs.
// Unparseable input yields an analysis with nothing present.
func Analyze(raw string) *models.RawHTMLAnalysis {
	a := &models.RawHTMLAnalysis{Indicators: []models.SpaIndicator{}}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return a
	}

	if t := doc.Find("title").First(); t.Length() > 0 {
		a.Title = strings.TrimSpace(t.Text())
		a.HasTitle = a.Title != ""
	}
	if h := doc.Find("h1").First(); h.Length() > 0 {
		a.H1 = strings.TrimSpace(h.Text())
		a.HasH1 = a.H1 != ""
	}
	if d, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		a.MetaDescription = strings.TrimSpace(d)
		a.HasMetaDescription = a.MetaDescription != ""
	}

	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		a.ScriptCount++
		if _, ok := s.Attr("src"); ok {
			a.ExternalScriptCount++
			return
		}
		if typ, _ := s.Attr("type"); typ == "application/ld+json" || typ == "application/json" {
			return
		}
		a.InlineScriptBytes += len(s.Text())
	})

	for _, sel := range rootSelectors {
		root := doc.Find(sel).First()
		if root.Length() == 0 {
			continue
		}
		inner, _ := root.Html()
		if n := len(strings.TrimSpace(inner)); n < emptyRootMaxChars {
			a.Indicators = append(a.Indicators, models.SpaIndicator{
				Type:     models.IndicatorEmptyRoot,
				Selector: sel,
				Details:  fmt.Sprintf("mount point has %d chars of content", n),
			})
			break
		}
	}

	if n := len(visibleBodyText(raw)); n < minimalBodyMaxChars {
		a.Indicators = append(a.Indicators, models.SpaIndicator{
			Type:    models.IndicatorMinimalBodyText,
			Details: fmt.Sprintf("body has %d chars of visible text", n),
		})
	}

	doc.Find("noscript").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		txt := strings.ToLower(s.Text())
		if strings.Contains(txt, "javascript") || strings.Contains(txt, "enable") {
			a.Indicators = append(a.Indicators, models.SpaIndicator{
				Type:     models.IndicatorNoscriptWarning,
				Selector: "noscript",
				Details:  truncate(strings.TrimSpace(s.Text()), 120),
			})
			return false
		}
		return true
	})

	if a.InlineScriptBytes > heavyInlineBytes || a.ScriptCount > heavyScriptCount {
		a.Indicators = append(a.Indicators, models.SpaIndicator{
			Type:    models.IndicatorHeavyJS,
			Details: fmt.Sprintf("%d scripts, %d bytes inline", a.ScriptCount, a.InlineScriptBytes),
		})
	}

	a.Framework = detectFramework(raw)
	return a
}

// visibleBodyText returns the text inside <body>, skipping script, style and
// noscript content.
func visibleBodyText(raw string) string {
	z := html.NewTokenizer(strings.NewReader(raw))
	var buf strings.Builder
	inBody := false
	skip := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(buf.String())
		case html.StartTagToken:
			tn, _ := z.TagName()
			switch string(tn) {
			case "body":
				inBody = true
			case "script", "style", "noscript", "template":
				skip++
			}
		case html.EndTagToken:
			tn, _ := z.TagName()
			switch string(tn) {
			case "script", "style", "noscript", "template":
				if skip > 0 {
					skip--
				}
			}
		case html.TextToken:
			if inBody && skip == 0 {
				if text := strings.TrimSpace(string(z.Text())); text != "" {
					buf.WriteString(text)
					buf.WriteByte(' ')
				}
			}
		}
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
