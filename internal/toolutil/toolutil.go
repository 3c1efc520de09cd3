// Package toolutil builds the engine components shared by the CLI commands
// and the MCP tools from the engine configuration.
package toolutil

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/anatolykoptev/go_weekly/internal/engine"
	"github.com/anatolykoptev/go_weekly/internal/engine/archive"
	"github.com/anatolykoptev/go_weekly/internal/engine/batch"
	"github.com/anatolykoptev/go_weekly/internal/engine/htmlgen"
	"github.com/anatolykoptev/go_weekly/internal/engine/render"
	"github.com/anatolykoptev/go_weekly/internal/engine/social"
	"github.com/anatolykoptev/go_weekly/internal/engine/titles"
)

// ResolverOptions selects how titles are produced.
type ResolverOptions struct {
	Mode         titles.Mode
	Scrape       bool // fetch social post text
	Cache        bool
	DisplayNames bool // map social handles to display names when scraping
}

// DefaultResolverOptions is what the CLI and tools use when nothing is set.
var DefaultResolverOptions = ResolverOptions{
	Mode:         titles.ModeHybrid,
	Scrape:       true,
	Cache:        true,
	DisplayNames: true,
}

// NewResolver loads the curated table and wires a title resolver with a
// social resolver behind it. Both share one pacer so every network fetch
// in a batch is spaced by the configured delay. Fast mode never touches
// the network, social posts included.
func NewResolver(opts ResolverOptions) (*titles.Resolver, error) {
	if opts.Mode == titles.ModeFast {
		opts.Scrape = false
	}
	table, err := titles.LoadTable(engine.Cfg.PatternsFile)
	if err != nil {
		return nil, err
	}
	pacer := engine.NewPacer(engine.Cfg.FetchDelay)
	// Handle-only titles keep the raw handle.
	sr := social.NewFromConfig(social.Options{
		Scrape:       opts.Scrape,
		DisplayNames: opts.DisplayNames && opts.Scrape,
		Pacer:        pacer,
	})
	slog.Debug("toolutil: resolver ready",
		slog.String("mode", string(opts.Mode)),
		slog.Bool("scrape", opts.Scrape),
		slog.Bool("cache", opts.Cache && engine.CacheEnabled()),
		slog.Int("patterns", len(table.Patterns)))
	return titles.New(table, titles.Options{
		Mode:   opts.Mode,
		Social: sr,
		Cache:  opts.Cache,
		Pacer:  pacer,
	}), nil
}

// Renderer returns the link renderer for the configured site host.
func Renderer() render.Renderer {
	return render.New(engine.Cfg.SiteHost)
}

// NewFormatter returns a batch formatter over a fresh resolver.
func NewFormatter(opts ResolverOptions) (*batch.Formatter, error) {
	res, err := NewResolver(opts)
	if err != nil {
		return nil, err
	}
	return batch.New(res, Renderer()), nil
}

// NewIndexer returns the archive indexer for dir ("" = configured dir).
func NewIndexer(dir string, dryRun bool) *archive.Indexer {
	ix := archive.New(Dir(dir), Renderer())
	ix.DryRun = dryRun
	return ix
}

// NewGenerator returns an HTML generator. An empty analyticsID falls back
// to the configured one; "none" disables the snippet.
func NewGenerator(analyticsID string) *htmlgen.Generator {
	switch strings.ToLower(strings.TrimSpace(analyticsID)) {
	case "":
		analyticsID = engine.Cfg.AnalyticsID
	case "none", "off":
		analyticsID = ""
	}
	return htmlgen.New(analyticsID, engine.Cfg.SiteHost)
}

// Dir returns dir, or the configured weekly directory when dir is empty.
func Dir(dir string) string {
	if dir == "" {
		return engine.Cfg.WeeklyDir
	}
	return dir
}

// InDir confines name to the weekly directory: only its base name is kept.
func InDir(name string) string {
	return filepath.Join(engine.Cfg.WeeklyDir, filepath.Base(filepath.Clean("/"+name)))
}
