package decision

import (
	"regexp"
	"strings"
)

// Framework is a client-side framework fingerprint. A page matches when its
// raw HTML contains any of the markers.
type Framework struct {
	Name    string
	Markers []string
}

// Frameworks is checked in order. Meta-frameworks come before the libraries
// they are built on so the more specific name is reported.
var Frameworks = []Framework{
	{Name: "Next.js", Markers: []string{"__NEXT_DATA__", "/_next/static/", `id="__next"`}},
	{Name: "Nuxt", Markers: []string{"__NUXT__", "/_nuxt/", `id="__nuxt"`}},
	{Name: "Gatsby", Markers: []string{`id="___gatsby"`, "/page-data/", "gatsby-chunk-mapping"}},
	{Name: "React", Markers: []string{"data-reactroot", "react-dom", "__REACT_DEVTOOLS_GLOBAL_HOOK__", "react.production.min.js"}},
	{Name: "Vue", Markers: []string{"data-v-app", "__VUE__", "vue.runtime", "vue.global.prod.js"}},
	{Name: "Angular", Markers: []string{"ng-version", "ng-app", "_nghost-", "<app-root"}},
	{Name: "Svelte", Markers: []string{"__sveltekit", "data-sveltekit", "svelte-"}},
}

// detectFramework returns the first framework whose markers appear in raw.
func detectFramework(raw string) string {
	for _, f := range Frameworks {
		for _, m := range f.Markers {
			if strings.Contains(raw, m) {
				return f.Name
			}
		}
	}
	return ""
}

// PlaceholderTitles are titles shipped by app shells before the real one is set.
var PlaceholderTitles = []string{
	"loading",
	"loading...",
	"please wait",
	"please wait...",
	"untitled",
	"untitled document",
	"react app",
	"vite app",
	"vue app",
	"angular app",
	"document",
	"app",
	"index",
	"new tab",
	"title",
	"page title",
}

var (
	placeholderSet = func() map[string]bool {
		m := make(map[string]bool, len(PlaceholderTitles))
		for _, t := range PlaceholderTitles {
			m[t] = true
		}
		return m
	}()

	reTemplate = regexp.MustCompile(`\{\{.*\}\}|\$\{.*\}|%.*%`)
)

// IsPlaceholderTitle reports whether title looks like a shell placeholder or
// an unexpanded template expression.
func IsPlaceholderTitle(title string) bool {
	t := strings.ToLower(strings.TrimSpace(title))
	if len([]rune(t)) < 3 {
		return true
	}
	if placeholderSet[t] || strings.HasPrefix(t, "loading") {
		return true
	}
	return reTemplate.MatchString(t)
}
