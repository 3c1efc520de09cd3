// Package render turns resolved links into hyperlink markup.
package render

import (
	"html"
	"net/url"
	"strings"
)

// Entry is a URL with its resolved, human-readable title.
type Entry struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Renderer emits anchors; links leaving SiteHost open in a new tab.
type Renderer struct {
	SiteHost string
}

// New returns a Renderer for the given site host ("www." is ignored).
func New(siteHost string) Renderer {
	return Renderer{SiteHost: normalizeHost(siteHost)}
}

// IsExternal reports whether rawURL points off-site. Relative URLs and
// anything unparsable without a host are treated as same-site.
func (r Renderer) IsExternal(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return false
	}
	return normalizeHost(u.Hostname()) != normalizeHost(r.SiteHost)
}

// Render returns a single <a> element for e.
func (r Renderer) Render(e Entry) string {
	href := html.EscapeString(e.URL)
	text := html.EscapeString(e.Title)
	if r.IsExternal(e.URL) {
		return `<a href="` + href + `" target="_blank" rel="noopener noreferrer">` + text + `</a>`
	}
	return `<a href="` + href + `">` + text + `</a>`
}

// ListItem renders e as a markdown list line.
func (r Renderer) ListItem(e Entry) string {
	return "- " + r.Render(e)
}

// List renders entries one per line, in order.
func (r Renderer) List(entries []Entry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, r.ListItem(e))
	}
	return strings.Join(lines, "\n")
}

func normalizeHost(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.TrimPrefix(h, "www.")
}
