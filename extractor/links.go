package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dacdangvan/seotool-sub006/models"
)

// trackingParams are dropped from canonical URLs. Any utm_* key is dropped too.
var trackingParams = map[string]bool{
	"fbclid": true,
	"gclid":  true,
}

var skippedPrefixes = []string{"#", "javascript:", "mailto:", "tel:"}

// extractLinks resolves every <a href> against base and splits them into
// internal and external lists, deduplicated by resolved URL without fragment.
// An href that cannot be parsed is kept as an external link.
func extractLinks(d *goquery.Document, base *url.URL) (internal, external []models.Link) {
	internal, external = []models.Link{}, []models.Link{}
	seen := make(map[string]struct{})

	d.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || skipHref(href) {
			return
		}
		link := models.Link{
			Text:     collapse(s.Text()),
			NoFollow: strings.Contains(strings.ToLower(s.AttrOr("rel", "")), "nofollow"),
		}

		resolved, err := resolve(base, href)
		if err != nil {
			link.Href = href
			if _, dup := seen[href]; !dup {
				seen[href] = struct{}{}
				external = append(external, link)
			}
			return
		}
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		resolved.Fragment = ""
		resolved.RawFragment = ""
		link.Href = resolved.String()

		if _, dup := seen[link.Href]; dup {
			return
		}
		seen[link.Href] = struct{}{}

		if base != nil && SameSite(resolved.Hostname(), base.Hostname()) {
			internal = append(internal, link)
		} else {
			external = append(external, link)
		}
	})
	return internal, external
}

func skipHref(href string) bool {
	lower := strings.ToLower(href)
	for _, p := range skippedPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

func resolve(base *url.URL, href string) (*url.URL, error) {
	if base == nil {
		return url.Parse(href)
	}
	return base.Parse(href)
}

// SameSite compares two hostnames ignoring case and a leading "www.".
func SameSite(a, b string) bool {
	strip := func(h string) string {
		return strings.TrimPrefix(strings.ToLower(h), "www.")
	}
	return a != "" && strip(a) == strip(b)
}

// ResolveCanonical resolves href against base and strips tracking parameters.
// An unparseable href is returned unchanged.
func ResolveCanonical(href string, base *url.URL) string {
	if href == "" {
		return ""
	}
	u, err := resolve(base, href)
	if err != nil {
		return href
	}
	stripTracking(u)
	return u.String()
}

func stripTracking(u *url.URL) {
	if u.RawQuery == "" {
		return
	}
	q := u.Query()
	changed := false
	for k := range q {
		if trackingParams[strings.ToLower(k)] || strings.HasPrefix(strings.ToLower(k), "utm_") {
			q.Del(k)
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
}

// NormalizeURL reduces a URL to a comparable form: lower-case scheme and
// host, no fragment, no tracking parameters, no trailing slash on non-root
// paths. Unparseable input is returned trimmed.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if (u.Scheme == "http" && u.Port() == "80") || (u.Scheme == "https" && u.Port() == "443") {
		u.Host = u.Hostname()
	}
	u.Fragment = ""
	u.RawFragment = ""
	stripTracking(u)
	if len(u.Path) > 1 {
		u.Path = strings.TrimRight(u.Path, "/")
		u.RawPath = ""
	}
	if u.Path == "/" {
		u.Path = ""
	}
	return u.String()
}
