package titles

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/anatolykoptev/go_weekly/internal/engine"
)

// target is a URL reduced to the parts the strategies look at.
type target struct {
	raw      string
	host     string   // lower-case, no "www.", no port; "" if unusable
	domain   string   // registrable domain (eTLD+1), "" if unknown
	segments []string // raw path segments, empty ones dropped
	key      string   // host + path, lower-case, no trailing slash
}

func parseTarget(raw string) *target {
	tg := &target{raw: strings.TrimSpace(raw)}
	if tg.raw == "" {
		return tg
	}

	s := tg.raw
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return tg
	}

	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	host = strings.TrimPrefix(host, "www.")
	if !strings.Contains(host, ".") || strings.ContainsAny(host, " _") {
		return tg
	}
	tg.host = host
	if d, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		tg.domain = d
	}

	for _, seg := range strings.Split(u.EscapedPath(), "/") {
		if seg != "" {
			tg.segments = append(tg.segments, seg)
		}
	}
	tg.key = host
	if len(tg.segments) > 0 {
		tg.key += "/" + strings.ToLower(strings.Join(tg.segments, "/"))
	}
	return tg
}

// label returns the curated name for the most specific matching host,
// walking up parent domains no further than the registrable domain.
func (t Table) label(tg *target) (string, bool) {
	for h := tg.host; strings.Contains(h, "."); {
		if l, ok := t.Labels[h]; ok {
			return l, true
		}
		if h == tg.domain {
			break
		}
		_, h, _ = strings.Cut(h, ".")
	}
	return "", false
}

// cleanDomain is the host without "www." and a trailing .com/.org/.edu/.ai,
// title-cased per label.
func cleanDomain(host string) string {
	for _, tld := range []string{".com", ".org", ".edu", ".ai"} {
		if strings.HasSuffix(host, tld) {
			host = strings.TrimSuffix(host, tld)
			break
		}
	}
	return engine.TitleCaseWords(host)
}
