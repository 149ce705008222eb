package renderer

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/dacdangvan/seotool-sub006/decision"
	"github.com/dacdangvan/seotool-sub006/extractor"
	"github.com/dacdangvan/seotool-sub006/models"
)

// Minimum lengths for a signal to count as present while waiting.
const (
	minTitleLen       = 10
	minDescriptionLen = 50
	minH1Len          = 5
)

// EvaluateSignals checks a snapshot against the SEO-ready thresholds.
// pageURL is used when the snapshot carries no location.
func EvaluateSignals(snap models.SeoSnapshot, pageURL string) models.SeoReadySignals {
	s := models.SeoReadySignals{
		Title:           runeLen(snap.Title) >= minTitleLen && !decision.IsPlaceholderTitle(snap.Title),
		MetaDescription: runeLen(snap.MetaDescription) >= minDescriptionLen,
		H1:              runeLen(snap.H1) >= minH1Len,
	}
	if snap.Canonical != "" {
		s.Canonical = true
		here := snap.URL
		if here == "" {
			here = pageURL
		}
		canonical := snap.Canonical
		if base, err := url.Parse(here); err == nil {
			canonical = extractor.ResolveCanonical(snap.Canonical, base)
		}
		s.SelfCanonical = extractor.NormalizeURL(canonical) == extractor.NormalizeURL(here)
	}
	return s
}

// Satisfied reports whether every required signal is present.
func Satisfied(s models.SeoReadySignals, required []models.SeoSignal) bool {
	for _, r := range required {
		switch r {
		case models.SignalTitle:
			if !s.Title {
				return false
			}
		case models.SignalMetaDescription:
			if !s.MetaDescription {
				return false
			}
		case models.SignalH1:
			if !s.H1 {
				return false
			}
		case models.SignalCanonical:
			if !s.Canonical {
				return false
			}
		}
	}
	return true
}

// waitSeoReady polls the page until the required signals are present or the
// wait expires. It never fails: snapshot errors are logged and retried, and
// expiry is reported through timedOut.
func waitSeoReady(ctx context.Context, page Page, pageURL string, opts Options) (signals models.SeoReadySignals, timedOut bool) {
	waitCtx, cancel := context.WithTimeout(ctx, opts.SeoReadyMaxWait)
	defer cancel()

	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		snap, err := page.SeoSnapshot(waitCtx)
		if err != nil {
			slog.Debug("renderer: SEO snapshot failed", "url", pageURL, "error", err)
		} else {
			signals = EvaluateSignals(snap, pageURL)
			if Satisfied(signals, opts.RequiredSignals) {
				return signals, false
			}
		}

		select {
		case <-ticker.C:
		case <-waitCtx.Done():
			return signals, true
		}
	}
}

func runeLen(s string) int {
	return len([]rune(s))
}
