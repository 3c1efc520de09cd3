// Package social derives titles for social-media post URLs.
package social

import (
	"net/url"
	"regexp"
	"strings"
)

// Post identifies a single social post.
type Post struct {
	URL    string
	Handle string
	ID     string
}

var statusRe = regexp.MustCompile(`^/([^/]+)/status(?:es)?/(\d+)`)

var socialHosts = map[string]bool{
	"x.com":              true,
	"twitter.com":        true,
	"mobile.twitter.com": true,
	"mobile.x.com":       true,
}

// Paths under a social host that are not account handles.
var reservedPaths = map[string]bool{
	"i": true, "home": true, "search": true, "hashtag": true,
	"explore": true, "intent": true, "share": true, "settings": true,
}

// IsSocialURL reports whether rawURL points at a supported social host.
func IsSocialURL(rawURL string) bool {
	u, err := parseURL(rawURL)
	if err != nil {
		return false
	}
	return socialHosts[strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")]
}

// ParsePost extracts the handle and status id. ok is false when no handle
// can be found; a profile URL yields a Post with an empty ID.
func ParsePost(rawURL string) (Post, bool) {
	p := Post{URL: strings.TrimSpace(rawURL)}
	u, err := parseURL(p.URL)
	if err != nil {
		return p, false
	}
	p.URL = u.String()
	if m := statusRe.FindStringSubmatch(u.Path); m != nil {
		if reservedPaths[strings.ToLower(m[1])] {
			p.ID = m[2]
			return p, false
		}
		p.Handle, p.ID = m[1], m[2]
		return p, true
	}
	first, _, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	if first == "" || reservedPaths[strings.ToLower(first)] {
		return p, false
	}
	p.Handle = first
	return p, true
}

// parseURL parses rawURL, assuming https when the scheme is missing.
func parseURL(rawURL string) (*url.URL, error) {
	s := strings.TrimSpace(rawURL)
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	return url.Parse(s)
}
