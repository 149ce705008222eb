package extractor

import (
	"log/slog"
	nurl "net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// mainContentLength runs the Mozilla Readability algorithm and returns the
// length in characters of the main article text. A page readability cannot
// make sense of (SPA shells, pure navigation pages) reports 0.
func mainContentLength(doc, sourceURL string) int {
	parsedURL, err := nurl.Parse(sourceURL)
	if err != nil {
		return 0
	}

	article, err := readability.FromReader(strings.NewReader(doc), parsedURL)
	if err != nil {
		slog.Debug("readability: extraction failed", "url", sourceURL, "error", err)
		return 0
	}
	return len([]rune(strings.TrimSpace(article.TextContent)))
}
