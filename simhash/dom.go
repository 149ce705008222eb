package simhash

import (
	"strings"

	"golang.org/x/net/html"
)

// Tags whose presence says nothing about the rendered layout.
var ignoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"link":     true,
	"meta":     true,
	"template": true,
}

// FingerprintDOM fingerprints the element structure of an HTML document from
// 3-tag shingles, ignoring text and attributes. A JS shell and its rendered
// DOM differ strongly here even when the visible text is short.
func FingerprintDOM(doc string) uint64 {
	tags := elementTags(doc)
	if len(tags) == 0 {
		return 0
	}
	if sh := shingles(tags, 3); len(sh) > 0 {
		return fold(sh)
	}
	return fold(tags)
}

func elementTags(doc string) []string {
	z := html.NewTokenizer(strings.NewReader(doc))
	var tags []string
	for {
		switch z.Next() {
		case html.ErrorToken:
			return tags
		case html.StartTagToken, html.SelfClosingTagToken:
			tn, _ := z.TagName()
			if name := string(tn); !ignoredTags[name] {
				tags = append(tags, name)
			}
		}
	}
}

func shingles(tokens []string, n int) []string {
	if len(tokens) < n {
		return nil
	}
	out := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+n], "_"))
	}
	return out
}
