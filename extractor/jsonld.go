package extractor

import (
	"encoding/json"
	"log/slog"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dacdangvan/seotool-sub006/models"
)

// extractJSONLD parses every application/ld+json block. Blocks that fail to
// parse are skipped. Top-level arrays and @graph containers are flattened so
// every typed object becomes its own entry.
func extractJSONLD(d *goquery.Document) []models.StructuredDataEntry {
	entries := []models.StructuredDataEntry{}
	d.Find("script[type]").Each(func(_ int, s *goquery.Selection) {
		if !strings.EqualFold(strings.TrimSpace(s.AttrOr("type", "")), "application/ld+json") {
			return
		}
		var v any
		if err := json.Unmarshal([]byte(s.Text()), &v); err != nil {
			slog.Debug("extractor: skipping malformed JSON-LD", "error", err)
			return
		}
		entries = appendLD(entries, v)
	})
	return entries
}

func appendLD(entries []models.StructuredDataEntry, v any) []models.StructuredDataEntry {
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			entries = appendLD(entries, item)
		}
	case map[string]any:
		if graph, ok := t["@graph"].([]any); ok {
			if _, typed := t["@type"]; typed {
				entries = append(entries, models.StructuredDataEntry{Type: ldType(t), Data: t})
			}
			return appendLD(entries, graph)
		}
		entries = append(entries, models.StructuredDataEntry{Type: ldType(t), Data: t})
	}
	return entries
}

// ldType returns @type, or the first string of an @type array.
func ldType(m map[string]any) string {
	switch t := m["@type"].(type) {
	case string:
		return t
	case []any:
		for _, x := range t {
			if s, ok := x.(string); ok {
				return s
			}
		}
	}
	return ""
}

// StructuredDataTypes returns the sorted, de-duplicated non-empty @type set.
func StructuredDataTypes(entries []models.StructuredDataEntry) []string {
	seen := make(map[string]bool, len(entries))
	out := []string{}
	for _, e := range entries {
		if e.Type != "" && !seen[e.Type] {
			seen[e.Type] = true
			out = append(out, e.Type)
		}
	}
	sort.Strings(out)
	return out
}
