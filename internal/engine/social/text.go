package social

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/anatolykoptev/go_weekly/internal/engine"
)

const (
	maxTextRunes   = 200
	minTextRunes   = 11
	snippetRunes   = 60
	fallbackSuffix = "AI Discussion"
)

var (
	trailingURLRe = regexp.MustCompile(`\s*https?://\S+$`)
	mdLinkRe      = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	mdEmphasisRe  = regexp.MustCompile(`[*_]{1,3}([^*_]+)[*_]{1,3}`)
)

// cleanText normalises post text. It returns "" when what is left is too
// short to describe the post.
func cleanText(s string) string {
	s = engine.CollapseSpace(s)
	s = strings.Trim(s, `"“”'`)
	for {
		stripped := trailingURLRe.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = stripped
	}
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > maxTextRunes {
		s = engine.ShortenAtWord(s, maxTextRunes-3, "...")
	}
	if utf8.RuneCountInString(s) < minTextRunes {
		return ""
	}
	return s
}

// stripMarkdown reduces converted markdown to its visible text.
func stripMarkdown(md string) string {
	md = mdLinkRe.ReplaceAllString(md, "$1")
	md = mdEmphasisRe.ReplaceAllString(md, "$1")
	md = strings.NewReplacer(`\_`, "_", `\*`, "*", `\#`, "#", `\-`, "-", `\.`, ".").Replace(md)
	return md
}

// snippet is the first words of text, at most snippetRunes long.
func snippet(text string) string {
	return engine.ShortenAtWord(text, snippetRunes, "...")
}

func title(label, text string) string {
	if text == "" {
		return label + " — " + fallbackSuffix
	}
	return label + " — " + snippet(text)
}
