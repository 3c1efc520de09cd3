package titles

import (
	"fmt"
	"strings"
)

// Mode selects how much network work the resolver may do.
type Mode string

const (
	ModeFast   Mode = "fast"   // no page fetches
	ModeSmart  Mode = "smart"  // fetch every non-avoided page
	ModeHybrid Mode = "hybrid" // fetch only pages from domains known to answer well
)

// ParseMode accepts fast, smart or hybrid (case-insensitive). Empty means hybrid.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeHybrid:
		return ModeHybrid, nil
	case ModeSmart:
		return ModeSmart, nil
	case ModeFast:
		return ModeFast, nil
	}
	return "", fmt.Errorf("unknown mode %q: use fast, smart or hybrid", s)
}

// Hosts never fetched for metadata: social, video and login-walled sites.
var avoidDomains = []string{
	"twitter.com", "x.com", "youtube.com", "youtu.be", "linkedin.com",
	"facebook.com", "instagram.com", "tiktok.com", "reddit.com",
}

// Registrable domains whose pages reliably carry usable metadata.
var safeDomains = map[string]bool{
	// academic and research
	"arxiv.org": true, "paperswithcode.com": true, "neurips.cc": true, "icml.cc": true,
	"iclr.cc": true, "aaai.org": true, "acm.org": true, "ieee.org": true, "nature.com": true,
	"science.org": true, "cell.com": true, "springer.com": true, "elsevier.com": true,
	"mit.edu": true, "stanford.edu": true, "berkeley.edu": true, "cmu.edu": true,
	"yale.edu": true, "harvard.edu": true, "princeton.edu": true, "caltech.edu": true,
	"brookings.edu": true, "rand.org": true, "nber.org": true,
	// AI companies and labs
	"openai.com": true, "anthropic.com": true, "deepmind.google": true, "google.com": true,
	"blog.google": true, "withgoogle.com": true, "research.google": true, "ai.google": true,
	"huggingface.co": true, "stability.ai": true, "midjourney.com": true, "runwayml.com": true,
	"replicate.com": true, "together.ai": true, "cohere.ai": true, "mistral.ai": true,
	"perplexity.ai": true, "claude.ai": true, "chatgpt.com": true, "deepseek.ai": true,
	"metaphysic.ai": true, "artificialanalysis.ai": true, "deepmind.com": true,
	// developer platforms
	"github.com": true, "gitlab.com": true, "bitbucket.org": true, "stackoverflow.com": true,
	"stackexchange.com": true, "dev.to": true, "medium.com": true, "substack.com": true,
	// tech news
	"techcrunch.com": true, "theverge.com": true, "wired.com": true, "reuters.com": true,
	"bloomberg.com": true, "wsj.com": true, "nytimes.com": true, "washingtonpost.com": true,
	"fortune.com": true, "forbes.com": true, "venturebeat.com": true, "zdnet.com": true,
	"cnet.com": true, "engadget.com": true, "arstechnica.com": true, "slashdot.org": true,
	"artificialintelligence-news.com": true,
}

// isAvoided reports whether host belongs to a social or video platform.
func isAvoided(host string) bool {
	for _, d := range avoidDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// ShouldFetch reports whether mode allows a metadata fetch for rawURL.
func ShouldFetch(mode Mode, rawURL string) bool {
	return shouldFetch(mode, parseTarget(rawURL))
}

func shouldFetch(mode Mode, tg *target) bool {
	if tg.host == "" || isAvoided(tg.host) {
		return false
	}
	switch mode {
	case ModeFast:
		return false
	case ModeSmart:
		return true
	}
	if safeDomains[tg.host] || safeDomains[tg.domain] {
		return true
	}
	for _, suffix := range []string{".edu", ".org", ".ai"} {
		if strings.HasSuffix(tg.host, suffix) {
			return true
		}
	}
	return strings.Contains(tg.host, "research") || strings.Contains(tg.host, "lab")
}
