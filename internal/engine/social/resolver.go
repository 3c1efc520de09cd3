package social

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/anatolykoptev/go_weekly/internal/engine"
)

// Options controls how social titles are built.
type Options struct {
	Scrape       bool              // try Sources before falling back
	Timeout      time.Duration     // per source; 0 = engine SocialTimeout
	DisplayNames bool              // map handles through Names
	Names        map[string]string // nil = DefaultDisplayNames
	Pacer        *engine.Pacer     // spaces lookups; nil = no spacing
}

// Resolver turns a social post URL into "<handle> — <snippet>".
type Resolver struct {
	opts    Options
	sources []Source
}

// New returns a Resolver that consults sources in order when scraping is on.
func New(opts Options, sources ...Source) *Resolver {
	if opts.Names == nil {
		opts.Names = DefaultDisplayNames
	}
	return &Resolver{opts: opts, sources: sources}
}

// NewFromConfig wires the sources available in the engine configuration:
// the Twitter client when present, oEmbed, then the post page.
func NewFromConfig(opts Options) *Resolver {
	var sources []Source
	if tw := engine.Cfg.TwitterClient; tw != nil {
		sources = append(sources, TwitterSource(tw))
	}
	sources = append(sources,
		OEmbedSource(engine.Cfg.OEmbedURL),
		PageSource(DefaultFetcher()),
	)
	return New(opts, sources...)
}

// Scraping reports whether the resolver consults its sources.
func (r *Resolver) Scraping() bool { return r.opts.Scrape }

// Resolve never fails. Without a handle the label is "X Thread".
func (r *Resolver) Resolve(ctx context.Context, rawURL string) string {
	t, _ := r.ResolveScraped(ctx, rawURL)
	return t
}

// ResolveScraped is Resolve; scraped reports whether the title carries
// post text rather than the fallback label.
func (r *Resolver) ResolveScraped(ctx context.Context, rawURL string) (string, bool) {
	engine.IncrSocialRequests()

	post, ok := ParsePost(rawURL)
	if !ok {
		engine.IncrSocialFallbacks()
		return title("X Thread", ""), false
	}

	label := post.Handle
	if r.opts.DisplayNames {
		label = displayName(r.opts.Names, post.Handle)
	}

	if r.opts.Scrape && post.ID != "" && r.opts.Pacer.Wait(ctx) == nil {
		if text := r.lookup(ctx, post); text != "" {
			engine.IncrSocialScraped()
			return title(label, text), true
		}
	}

	engine.IncrSocialFallbacks()
	return title(label, ""), false
}

func (r *Resolver) lookup(ctx context.Context, post Post) string {
	timeout := r.opts.Timeout
	if timeout <= 0 {
		timeout = engine.Cfg.SocialTimeout
	}
	for _, src := range r.sources {
		sctx, cancel := context.WithTimeout(ctx, timeout)
		raw, err := src.Text(sctx, post)
		cancel()
		if err != nil {
			level := slog.LevelDebug
			if errors.Is(err, engine.ErrRateLimited) {
				level = slog.LevelWarn
			}
			slog.Log(ctx, level, "social: source failed",
				slog.String("source", src.Name()),
				slog.String("url", post.URL),
				slog.Any("error", err))
			continue
		}
		if text := cleanText(raw); text != "" {
			slog.Debug("social: text found", slog.String("source", src.Name()), slog.String("url", post.URL))
			return text
		}
	}
	return ""
}
