package main

import (
	"fmt"
	"strings"

	"github.com/dacdangvan/seotool-sub006/models"
)

func formatError(prefix string, e *models.ErrorDetail) string {
	if e == nil {
		return prefix
	}
	return fmt.Sprintf("%s: [%s] %s", prefix, e.Code, e.Message)
}

func formatDecision(d *models.RenderDecision) string {
	verdict := "raw HTML is sufficient"
	if d.ShouldRender {
		verdict = "render with JavaScript"
	}
	return fmt.Sprintf("Decision: %s (reason: %s, confidence: %.2f)", verdict, d.Reason, d.Confidence)
}

func formatCrawl(r *models.CrawlPageResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "URL: %s\n", r.URL)
	if r.FinalURL != "" && r.FinalURL != r.URL {
		fmt.Fprintf(&sb, "Final URL: %s\n", r.FinalURL)
	}
	fmt.Fprintf(&sb, "Status: %d, mode: %s, load: %dms, render: %dms\n",
		r.StatusCode, r.RenderMode, r.LoadTimeMs, r.RenderTimeMs)
	if r.Decision != nil {
		sb.WriteString(formatDecision(r.Decision) + "\n")
	}
	if r.Error != "" {
		fmt.Fprintf(&sb, "Error: %s\n", r.Error)
	}

	if d := r.SeoData; d != nil {
		sb.WriteString("\nSEO\n")
		fmt.Fprintf(&sb, "  Title: %s\n", d.Title)
		fmt.Fprintf(&sb, "  Description: %s\n", d.MetaDescription)
		fmt.Fprintf(&sb, "  Canonical: %s\n", d.Canonical)
		if d.Robots != "" {
			fmt.Fprintf(&sb, "  Robots: %s\n", d.Robots)
		}
		fmt.Fprintf(&sb, "  H1: %s\n", strings.Join(d.H1, " | "))
		fmt.Fprintf(&sb, "  Links: %d internal, %d external\n", len(d.InternalLinks), len(d.ExternalLinks))
		fmt.Fprintf(&sb, "  Words: %d\n", d.WordCount)
	}

	fmt.Fprintf(&sb, "\nScore: %d/100\n", r.SeoAnalysis.Score)
	for _, is := range r.SeoAnalysis.Issues {
		fmt.Fprintf(&sb, "  - [%s] %s\n", is.Severity, is.Message)
	}

	if r.DiffReport != nil {
		sb.WriteString("\n" + formatReport(r.DiffReport))
	}
	return sb.String()
}

func formatReport(rep *models.DiffReport) string {
	var sb strings.Builder
	s := rep.DiffSummary
	fmt.Fprintf(&sb, "JavaScript dependency risk: %s\n", rep.JSDependencyRisk)
	rows := []struct {
		name string
		cat  models.DiffCategory
	}{
		{"title", s.Title},
		{"meta_description", s.MetaDescription},
		{"canonical", s.Canonical},
		{"robots", s.Robots},
		{"h1", s.H1},
		{"internal_links", s.InternalLinks.Category},
		{"external_links", s.ExternalLinks.Category},
		{"structured_data", s.StructuredData},
	}
	for _, row := range rows {
		fmt.Fprintf(&sb, "  %-17s %s\n", row.name, row.cat)
	}
	fmt.Fprintf(&sb, "  text similarity   %.2f\n", s.TextSimilarity)
	fmt.Fprintf(&sb, "  dom similarity    %.2f\n", s.DOMSimilarity)

	if len(rep.RiskFactors) > 0 {
		sb.WriteString("Risk factors:\n")
		for _, f := range rep.RiskFactors {
			fmt.Fprintf(&sb, "  - %s\n", f)
		}
	}
	return sb.String()
}

func formatBatch(st *models.BatchStatusResponse) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Batch %s: %s (%d/%d done, %d failed)\n\n",
		st.ID, st.Status, st.Completed, st.Total, st.Failed)
	for i, r := range st.Results {
		if r == nil {
			fmt.Fprintf(&sb, "--- [%d] pending ---\n\n", i+1)
			continue
		}
		if r.Failed() {
			fmt.Fprintf(&sb, "--- [%d] %s FAILED: %s ---\n\n", i+1, r.URL, r.Error)
			continue
		}
		risk := "n/a"
		if r.DiffReport != nil {
			risk = string(r.DiffReport.JSDependencyRisk)
		}
		title := ""
		if r.SeoData != nil {
			title = r.SeoData.Title
		}
		fmt.Fprintf(&sb, "--- [%d] %s ---\nTitle: %s\nMode: %s, risk: %s, score: %d\n\n",
			i+1, r.URL, title, r.RenderMode, risk, r.SeoAnalysis.Score)
	}
	return sb.String()
}
