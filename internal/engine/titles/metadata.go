package titles

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/anatolykoptev/go_weekly/internal/engine"
)

const (
	minMetaTitleRunes  = 6
	genericTitleRunes  = 10
	minDescRunes       = 21
	maxDescTitleRunes  = 80
	companyBlogTimeout = 8 * time.Second
)

var (
	homeSuffixRe   = regexp.MustCompile(`(?i)(\s+[-–—]\s+|\s*\|\s*)(Home|Welcome|Official)\b.*$`)
	domainSuffixRe = regexp.MustCompile(`(?i)(\s+[-–—]\s+|\s*\|\s*)\S*\.(com|org|edu|ai)\b.*$`)
	separatorRe    = regexp.MustCompile(`\s+[-–]\s+|\s*\|\s*`)
)

// Page fetcher used by the metadata strategy; replaced in tests.
type pageFetcher func(ctx context.Context, pageURL string, timeout time.Duration) ([]byte, error)

func defaultPageFetcher(ctx context.Context, pageURL string, timeout time.Duration) ([]byte, error) {
	return engine.FetchHTMLWithin(ctx, pageURL, timeout)
}

// metadataTitle fetches the page and derives a cleaned title from its markup.
func (r *Resolver) metadataTitle(ctx context.Context, tg *target) (string, bool) {
	timeout := r.timeout(tg)
	body, err := r.fetch(ctx, tg.raw, timeout)
	if err != nil {
		slog.Debug("titles: metadata fetch failed", slog.String("url", tg.raw), slog.Any("error", err))
		return "", false
	}
	meta := engine.ParsePageMeta(body, tg.raw)
	t := cleanMetaTitle(meta, tg)
	if t == "" {
		slog.Debug("titles: no usable metadata title", slog.String("url", tg.raw))
		return "", false
	}
	return t, true
}

// timeout is FetchTimeout, raised to companyBlogTimeout for slow company blogs,
// never above the resolver's ceiling.
func (r *Resolver) timeout(tg *target) time.Duration {
	d := engine.Cfg.FetchTimeout
	switch tg.domain {
	case "openai.com", "anthropic.com", "google.com", "deepmind.google":
		d = max(d, companyBlogTimeout)
	}
	if r.opts.MaxTimeout > 0 {
		d = min(d, r.opts.MaxTimeout)
	}
	return d
}

// cleanMetaTitle applies suffix stripping, separator normalisation, the
// description fallback for generic titles and the length bounds.
func cleanMetaTitle(meta engine.PageMeta, tg *target) string {
	t := meta.Title()
	if t == "" {
		return ""
	}
	t = homeSuffixRe.ReplaceAllString(t, "")
	t = domainSuffixRe.ReplaceAllString(t, "")
	t = separatorRe.ReplaceAllString(t, " — ")
	t = engine.CollapseSpace(t)

	bare := strings.ToLower(cleanDomain(tg.host))
	if strings.ToLower(t) == bare || utf8.RuneCountInString(t) < genericTitleRunes {
		desc := meta.Description
		if desc == "" {
			desc = meta.OGDescription
		}
		desc = engine.CollapseSpace(desc)
		if utf8.RuneCountInString(desc) >= minDescRunes {
			t = desc
			if utf8.RuneCountInString(t) > maxDescTitleRunes {
				t = engine.ShortenAtWord(t, maxDescTitleRunes, "...")
			}
		}
	}

	t = capTitle(t)
	if utf8.RuneCountInString(t) < minMetaTitleRunes {
		return ""
	}
	return t
}
