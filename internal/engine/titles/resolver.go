// Package titles resolves a human-readable title for any URL through an
// ordered chain of strategies, from curated entries down to a domain label.
package titles

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/anatolykoptev/go_weekly/internal/engine"
	"github.com/anatolykoptev/go_weekly/internal/engine/social"
	"github.com/anatolykoptev/go_weekly/internal/engine/sources"
)

// DefaultTitle is returned when nothing at all can be derived from the input.
const DefaultTitle = "AI Resource"

// DefaultMaxTimeout bounds a single metadata fetch.
const DefaultMaxTimeout = 10 * time.Second

// Options configures a Resolver.
type Options struct {
	Mode       Mode
	Social     *social.Resolver // nil = handle-only social titles
	Cache      bool             // consult the engine cache when it is enabled
	MaxTimeout time.Duration    // 0 = DefaultMaxTimeout
	Pacer      *engine.Pacer    // spaces metadata fetches; nil = no spacing
}

// Result is a resolved title and the strategy that produced it.
type Result struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Strategy string `json:"strategy"`
}

type strategy struct {
	name string
	fn   func(ctx context.Context, tg *target) (string, bool)
}

// Resolver maps URLs to titles. It is safe for sequential reuse; the table
// it holds is never modified.
type Resolver struct {
	table      Table
	opts       Options
	fetch      pageFetcher
	upstream   upstreamTitler
	strategies []strategy
	tableKey   string
}

// upstreamTitler answers for URL shapes with a dedicated API.
type upstreamTitler interface {
	Title(ctx context.Context, rawURL string) (string, bool, error)
}

// New builds a Resolver over table.
func New(table Table, opts Options) *Resolver {
	if opts.Mode == "" {
		opts.Mode = ModeHybrid
	}
	if opts.MaxTimeout <= 0 {
		opts.MaxTimeout = DefaultMaxTimeout
	}
	if opts.Social == nil {
		opts.Social = social.New(social.Options{})
	}
	r := &Resolver{
		table:    table,
		opts:     opts,
		fetch:    defaultPageFetcher,
		upstream: &sources.Client{},
		tableKey: table.Fingerprint(),
	}
	r.strategies = []strategy{
		{"curated", r.curated},
		{"upstream", r.upstreamTitle},
		{"site-rule", func(_ context.Context, tg *target) (string, bool) { return siteRule(tg) }},
		{"metadata", r.metadata},
		{"path", r.path},
		{"category", func(_ context.Context, tg *target) (string, bool) { return r.category(tg), true }},
	}
	return r
}

// Mode reports the resolution mode in effect.
func (r *Resolver) Mode() Mode { return r.opts.Mode }

// Resolve returns a non-empty title for rawURL. It never fails: every
// network or parse problem falls through to a cheaper strategy.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) string {
	return r.Explain(ctx, rawURL).Title
}

// Explain is Resolve plus the name of the winning strategy.
func (r *Resolver) Explain(ctx context.Context, rawURL string) Result {
	engine.IncrTitleRequests()
	res := Result{URL: strings.TrimSpace(rawURL)}

	var key string
	if r.opts.Cache && engine.CacheEnabled() {
		key = engine.CacheKey("title", string(r.opts.Mode), boolKey(r.opts.Social.Scraping()), r.tableKey, res.URL)
		if cached, ok := engine.CacheLoadJSON[Result](ctx, key); ok && cached.Title != "" {
			cached.Strategy = "cache:" + cached.Strategy
			return cached
		}
	}

	res.Title, res.Strategy = r.resolve(ctx, res.URL)
	if key != "" && cacheable(res.Strategy) {
		engine.CacheStoreJSON(ctx, key, res)
	}
	return res
}

// cacheable reports whether a strategy's title came from the network.
// Fallbacks are never stored.
func cacheable(strategy string) bool {
	switch strategy {
	case "upstream", "metadata", "social-scraped":
		return true
	}
	return false
}

func (r *Resolver) resolve(ctx context.Context, rawURL string) (string, string) {
	if social.IsSocialURL(rawURL) {
		t, scraped := r.opts.Social.ResolveScraped(ctx, rawURL)
		if scraped {
			return t, "social-scraped"
		}
		return t, "social"
	}
	tg := parseTarget(rawURL)
	for _, s := range r.strategies {
		if t, ok := s.fn(ctx, tg); ok && strings.TrimSpace(t) != "" {
			return t, s.name
		}
	}
	return DefaultTitle, "category"
}

func (r *Resolver) curated(_ context.Context, tg *target) (string, bool) {
	if tg.host == "" {
		return "", false
	}
	t, ok := r.table.match(tg)
	if ok {
		engine.IncrCuratedHits()
	}
	return t, ok
}

func (r *Resolver) metadata(ctx context.Context, tg *target) (string, bool) {
	if !shouldFetch(r.opts.Mode, tg) {
		return "", false
	}
	if err := r.opts.Pacer.Wait(ctx); err != nil {
		return "", false
	}
	t, ok := r.metadataTitle(ctx, tg)
	if ok {
		engine.IncrMetadataHits()
	}
	return t, ok
}

func (r *Resolver) upstreamTitle(ctx context.Context, tg *target) (string, bool) {
	if r.opts.Mode == ModeFast || !sources.Handles(tg.raw) {
		return "", false
	}
	if err := r.opts.Pacer.Wait(ctx); err != nil {
		return "", false
	}
	t, ok, err := r.upstream.Title(ctx, tg.raw)
	if err != nil {
		slog.Debug("titles: upstream lookup failed", slog.String("url", tg.raw), slog.Any("error", err))
		return "", false
	}
	if !ok || t == "" {
		return "", false
	}
	engine.IncrMetadataHits()
	return capTitle(t), true
}

func (r *Resolver) path(_ context.Context, tg *target) (string, bool) {
	if tg.host == "" {
		return "", false
	}
	words, ok := pathTitle(tg)
	if !ok {
		return "", false
	}
	engine.IncrPathTitles()
	return r.domainLabel(tg) + ": " + words, true
}

func (r *Resolver) domainLabel(tg *target) string {
	if l, ok := r.table.label(tg); ok {
		return l
	}
	return cleanDomain(tg.host)
}

// category is the last resort: a curated label, or the cleaned domain with
// a coarse kind inferred from the host.
func (r *Resolver) category(tg *target) string {
	engine.IncrCategoryFallbacks()
	if tg.host == "" {
		return DefaultTitle
	}
	if l, ok := r.table.label(tg); ok {
		return l
	}
	name := cleanDomain(tg.host)
	switch {
	case strings.HasSuffix(tg.host, ".ai"):
		return name + ": AI Platform"
	case strings.HasSuffix(tg.host, ".edu"):
		return name + ": Academic Research"
	case strings.HasSuffix(tg.host, ".org"):
		return name + ": Research Organization"
	case strings.Contains(tg.host, "research") || strings.Contains(tg.host, "lab"):
		return name + ": Research Publication"
	}
	return name + ": " + DefaultTitle
}

func boolKey(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
