// Package decision decides whether a URL needs a browser render before its
// SEO signals can be trusted.
package decision

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dacdangvan/seotool-sub006/config"
	"github.com/dacdangvan/seotool-sub006/models"
)

// Engine is a stateless, deterministic render classifier. It is safe for
// concurrent use.
type Engine struct {
	enabled bool
	force   bool
	always  []*regexp.Regexp
	never   []*regexp.Regexp
}

// New compiles the URL globs of cfg once.
func New(cfg config.JSRenderConfig) (*Engine, error) {
	always, err := compileGlobs(cfg.AlwaysRender)
	if err != nil {
		return nil, err
	}
	never, err := compileGlobs(cfg.NeverRender)
	if err != nil {
		return nil, err
	}
	return &Engine{
		enabled: cfg.Enabled,
		force:   cfg.ForceJSRender,
		always:  always,
		never:   never,
	}, nil
}

// Decide classifies url given its raw HTTP response body. The first matching
// rule wins; configuration rules come before content analysis.
func (e *Engine) Decide(url, rawHTML string) models.RenderDecision {
	switch {
	case !e.enabled:
		return decision(false, models.ReasonNoRenderNeeded, 1.0)
	case matchAny(e.never, url):
		return decision(false, models.ReasonURLPatternNever, 1.0)
	case matchAny(e.always, url):
		return decision(true, models.ReasonURLPatternAlways, 1.0)
	case e.force:
		return decision(true, models.ReasonForceRender, 1.0)
	}
	return DecideFromAnalysis(Analyze(rawHTML))
}

// DecideFromAnalysis applies the content rules to an existing analysis.
func DecideFromAnalysis(a *models.RawHTMLAnalysis) models.RenderDecision {
	if !a.HasTitle {
		return decision(true, models.ReasonMissingTitle, 0.9)
	}
	if IsPlaceholderTitle(a.Title) {
		return decision(true, models.ReasonPlaceholderTitle, 0.85)
	}
	if !a.HasH1 {
		return decision(true, models.ReasonMissingH1, 0.7)
	}
	if a.Framework != "" {
		return decision(true, models.ReasonFrameworkDetected, 0.8)
	}

	spa, heavy := 0, false
	for _, ind := range a.Indicators {
		if ind.Type == models.IndicatorHeavyJS {
			heavy = true
			continue
		}
		spa++
	}
	if spa >= 2 {
		return decision(true, models.ReasonSPADetected, 0.75)
	}
	if heavy {
		return decision(true, models.ReasonHeavyJavaScript, 0.5)
	}
	return decision(false, models.ReasonNoRenderNeeded, 0.9)
}

func decision(render bool, reason models.RenderReason, confidence float64) models.RenderDecision {
	return models.RenderDecision{ShouldRender: render, Reason: reason, Confidence: confidence}
}

func matchAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func compileGlobs(globs []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(globs))
	for _, g := range globs {
		re, err := CompileGlob(g)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

// CompileGlob turns a URL glob into an anchored regular expression:
// * matches any run of characters, ? matches exactly one.
func CompileGlob(glob string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteByte('^')
	for _, r := range glob {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteByte('.')
		case '/':
			b.WriteString(`\/`)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteByte('$')
	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("decision: compile glob %q: %w", glob, err)
	}
	return re, nil
}
