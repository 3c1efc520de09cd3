package titles

import (
	"regexp"
	"strings"
)

var arxivIDRe = regexp.MustCompile(`^(\d{4}\.\d{4,5}(v\d+)?|[a-z\-]+(\.[A-Z]{2})?/\d{7}(v\d+)?)$`)

// Reserved first path segments on github.com that are not owners.
var githubReserved = map[string]bool{
	"features": true, "topics": true, "collections": true, "trending": true,
	"marketplace": true, "explore": true, "orgs": true, "settings": true,
	"sponsors": true, "about": true, "pricing": true, "login": true, "search": true,
}

// siteRule derives a title from well-known URL shapes without fetching.
func siteRule(tg *target) (string, bool) {
	switch {
	case tg.host == "arxiv.org" || strings.HasSuffix(tg.host, ".arxiv.org"):
		return arxivTitle(tg)
	case tg.host == "github.com":
		return githubTitle(tg)
	case isYouTube(tg.host):
		return "YouTube: AI Video Content", true
	}
	return "", false
}

func arxivTitle(tg *target) (string, bool) {
	if len(tg.segments) < 2 {
		return "", false
	}
	switch tg.segments[0] {
	case "abs", "pdf", "html":
	default:
		return "", false
	}
	id := strings.TrimSuffix(strings.Join(tg.segments[1:], "/"), ".pdf")
	if !arxivIDRe.MatchString(id) {
		return "", false
	}
	return "arXiv: Research Paper " + id, true
}

func githubTitle(tg *target) (string, bool) {
	if len(tg.segments) == 0 || githubReserved[strings.ToLower(tg.segments[0])] {
		return "", false
	}
	if len(tg.segments) == 1 {
		return "GitHub: " + tg.segments[0], true
	}
	return "GitHub: " + tg.segments[0] + "/" + strings.TrimSuffix(tg.segments[1], ".git"), true
}

func isYouTube(host string) bool {
	switch host {
	case "youtube.com", "m.youtube.com", "music.youtube.com", "youtu.be":
		return true
	}
	return false
}
