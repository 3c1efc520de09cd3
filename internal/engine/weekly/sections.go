package weekly

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// LinksHeading starts the section the formatter rewrites.
const (
	LinksHeading = "## Links from Office Hours"
	LinksNote    = "*Presented in the order they were discussed during the episode*"
)

var ErrNoLinksSection = errors.New("no \"Links from Office Hours\" section")

var urlRe = regexp.MustCompile("https?://[^\\s<>\"{}|\\\\^`\\[\\]()]+")

// ExtractURLs returns the http(s) URLs in text, first occurrence order,
// without duplicates.
func ExtractURLs(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, u := range urlRe.FindAllString(text, -1) {
		u = strings.TrimRight(u, ".,;:!?'*")
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// ExtractLinks returns the URLs listed in the links section of doc.
func ExtractLinks(doc string) ([]string, error) {
	lines := strings.Split(doc, "\n")
	start, end, ok := linksSection(lines)
	if !ok {
		return nil, ErrNoLinksSection
	}
	return ExtractURLs(strings.Join(lines[start+1:end], "\n")), nil
}

// ReplaceLinks swaps the body of the links section for body, leaving the
// rest of doc untouched. A legacy heading is renamed to LinksHeading.
func ReplaceLinks(doc, body string) (string, error) {
	lines := strings.Split(doc, "\n")
	start, end, ok := linksSection(lines)
	if !ok {
		return "", ErrNoLinksSection
	}
	heading := lines[start]
	if !strings.Contains(heading, "Links from Office Hours") {
		heading = LinksHeading
	}

	out := make([]string, 0, len(lines)+8)
	out = append(out, lines[:start]...)
	out = append(out, heading, LinksNote, "")
	if body = strings.Trim(body, "\n"); body != "" {
		out = append(out, strings.Split(body, "\n")...)
	}
	switch {
	case end < len(lines):
		out = append(out, "")
		out = append(out, lines[end:]...)
	case strings.HasSuffix(doc, "\n"):
		out = append(out, "")
	}
	return strings.Join(out, "\n"), nil
}

// linksSection locates the heading line and the exclusive end of the links
// section: the next "## " heading or the end of the document.
func linksSection(lines []string) (start, end int, ok bool) {
	start = -1
	for i, line := range lines {
		if !strings.HasPrefix(line, "## ") {
			continue
		}
		if start >= 0 {
			return start, i, true
		}
		switch name := headingName(line); {
		case strings.HasPrefix(name, "Links from Office Hours"), strings.HasPrefix(name, "AI Industry News"):
			start = i
		}
	}
	if start < 0 {
		return 0, 0, false
	}
	return start, len(lines), true
}

// headingName is the heading text without "## " and any leading emoji.
func headingName(line string) string {
	return strings.TrimLeftFunc(strings.TrimPrefix(line, "## "), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Title returns the first "# " heading of doc, or a title built from its
// "**Date:**" line.
func Title(doc string) string {
	for _, line := range strings.Split(doc, "\n") {
		if t, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(t)
		}
		if d, ok := strings.CutPrefix(line, "**Date:**"); ok && strings.TrimSpace(d) != "" {
			return "Open Disruption — Weekly AI News Links (" + strings.TrimSpace(d) + ")"
		}
	}
	return "Open Disruption — Weekly AI News Links"
}
