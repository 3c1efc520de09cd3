package titles

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/anatolykoptev/go_weekly/internal/engine"
)

const maxTitleRunes = 100

// Path segments that say nothing about the page.
var boilerplateSegments = map[string]bool{
	"index": true, "index.html": true, "index.php": true, "blog": true, "blogs": true,
	"news": true, "article": true, "articles": true, "post": true, "posts": true,
	"p": true, "en": true, "en-us": true, "en-gb": true, "research": true,
	"discover": true, "stories": true, "story": true, "amp": true, "page": true,
	"pages": true, "content": true, "abs": true, "pdf": true, "html": true,
	"www": true, "home": true, "default": true, "updates": true, "press": true,
}

var acronyms = map[string]string{
	"ai": "AI", "llm": "LLM", "llms": "LLMs", "gpt": "GPT", "api": "API", "apis": "APIs",
	"ml": "ML", "nlp": "NLP", "agi": "AGI", "asi": "ASI", "gpu": "GPU", "gpus": "GPUs",
	"tpu": "TPU", "cpu": "CPU", "sdk": "SDK", "ui": "UI", "ux": "UX", "ocr": "OCR",
	"rag": "RAG", "mcp": "MCP", "vr": "VR", "xr": "XR", "us": "US", "uk": "UK", "eu": "EU",
	"ceo": "CEO", "cto": "CTO", "ipo": "IPO", "sota": "SOTA", "oss": "OSS", "rl": "RL",
	"rlhf": "RLHF", "tts": "TTS", "3d": "3D", "2d": "2D", "faq": "FAQ", "pdf": "PDF",
}

var minorWords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true, "but": true, "by": true,
	"for": true, "in": true, "of": true, "on": true, "or": true, "the": true, "to": true,
	"vs": true, "via": true, "with": true,
}

var (
	wordSplitRe = regexp.MustCompile(`[-_+.\s]+`)
	hexIDRe     = regexp.MustCompile(`^[0-9a-f]{8,}$`)
	uuidRe      = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	extRe       = regexp.MustCompile(`\.[A-Za-z][A-Za-z0-9]{0,4}$`)
)

// pathTitle joins the words of every meaningful path segment, in order.
// ok is false when no segment carries meaning.
func pathTitle(tg *target) (string, bool) {
	var kept []string
	for _, raw := range tg.segments {
		seg := decodeSegment(raw)
		if skipSegment(seg) {
			continue
		}
		seg = extRe.ReplaceAllString(seg, "")
		if skipSegment(seg) {
			continue
		}
		kept = append(kept, seg)
	}
	if t := wordsTitle(strings.Join(kept, " ")); t != "" {
		return t, true
	}
	return "", false
}

func decodeSegment(seg string) string {
	if d, err := url.PathUnescape(seg); err == nil {
		seg = d
	}
	return strings.TrimSpace(seg)
}

func skipSegment(seg string) bool {
	lower := strings.ToLower(seg)
	switch {
	case lower == "":
		return true
	case boilerplateSegments[lower]:
		return true
	case isNumeric(lower):
		return true
	case uuidRe.MatchString(lower):
		return true
	case hexIDRe.MatchString(lower) && strings.ContainsAny(lower, "0123456789"):
		return true
	case looksLikeOpaqueID(lower):
		return true
	}
	return false
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' && r != '-' && r != '_' {
			return false
		}
	}
	return true
}

// looksLikeOpaqueID catches long separator-free tokens mixing letters and digits.
func looksLikeOpaqueID(s string) bool {
	if utf8.RuneCountInString(s) < 16 || wordSplitRe.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= 3
}

func wordsTitle(s string) string {
	words := wordSplitRe.Split(s, -1)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		lower := strings.ToLower(w)
		switch {
		case acronyms[lower] != "":
			out = append(out, acronyms[lower])
		case len(out) > 0 && minorWords[lower]:
			out = append(out, lower)
		case hasUpperAfterFirst(w):
			out = append(out, w) // keep camel/brand casing like "ChatGPT"
		default:
			out = append(out, engine.TitleWord(w))
		}
	}
	return capTitle(strings.Join(out, " "))
}

func hasUpperAfterFirst(w string) bool {
	for i, r := range w {
		if i > 0 && unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// capTitle limits a title to maxTitleRunes, cutting at a word boundary.
func capTitle(s string) string {
	if utf8.RuneCountInString(s) <= maxTitleRunes {
		return s
	}
	return engine.ShortenAtWord(s, maxTitleRunes-3, "...")
}
