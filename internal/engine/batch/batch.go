// Package batch formats lists of URLs into rendered link entries and
// rewrites the links section of weekly files.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/anatolykoptev/go_weekly/internal/engine"
	"github.com/anatolykoptev/go_weekly/internal/engine/render"
	"github.com/anatolykoptev/go_weekly/internal/engine/titles"
	"github.com/anatolykoptev/go_weekly/internal/engine/weekly"
)

// Resolver is the title lookup a Formatter drives.
type Resolver interface {
	Explain(ctx context.Context, rawURL string) titles.Result
}

// Formatter resolves URLs one at a time and renders them as list items.
type Formatter struct {
	resolver Resolver
	renderer render.Renderer
}

// Report describes one formatting pass.
type Report struct {
	Path    string          `json:"path,omitempty"`
	Results []titles.Result `json:"results"`
	Content string          `json:"-"`
	Written bool            `json:"written"`
}

// New returns a Formatter.
func New(res Resolver, r render.Renderer) *Formatter {
	return &Formatter{resolver: res, renderer: r}
}

// Resolve titles each distinct URL in order. Spacing between network
// fetches is the resolver's concern; a failed URL still gets a fallback title.
func (f *Formatter) Resolve(ctx context.Context, urls []string) []titles.Result {
	seen := make(map[string]bool, len(urls))
	out := make([]titles.Result, 0, len(urls))
	for i, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		res := f.resolver.Explain(ctx, u)
		slog.Debug("batch: resolved",
			slog.Int("n", i+1),
			slog.String("url", u),
			slog.String("title", res.Title),
			slog.String("strategy", res.Strategy))
		out = append(out, res)
	}
	return out
}

// Render turns results into markdown list lines.
func (f *Formatter) Render(results []titles.Result) string {
	entries := make([]render.Entry, 0, len(results))
	for _, r := range results {
		entries = append(entries, render.Entry{URL: r.URL, Title: r.Title})
	}
	return f.renderer.List(entries)
}

// FormatURLs resolves and renders urls.
func (f *Formatter) FormatURLs(ctx context.Context, urls []string) (string, []titles.Result) {
	results := f.Resolve(ctx, urls)
	return f.Render(results), results
}

// FormatDocument rewrites the links section of doc with titled links.
// A document whose section holds no URLs is returned unchanged.
func (f *Formatter) FormatDocument(ctx context.Context, doc string) (Report, error) {
	urls, err := weekly.ExtractLinks(doc)
	if err != nil {
		return Report{}, err
	}
	if len(urls) == 0 {
		slog.Warn("batch: links section has no URLs")
		return Report{Content: doc}, nil
	}

	var rep Report
	err = engine.TrackOperation(ctx, "format_links", func(ctx context.Context) error {
		body, results := f.FormatURLs(ctx, urls)
		content, err := weekly.ReplaceLinks(doc, body)
		if err != nil {
			return err
		}
		rep = Report{Results: results, Content: content}
		return nil
	})
	return rep, err
}

// FormatFile formats the weekly file at in and writes the result to out
// (in when out is empty) unless dryRun is set.
func (f *Formatter) FormatFile(ctx context.Context, in, out string, dryRun bool) (Report, error) {
	data, err := os.ReadFile(in)
	if err != nil {
		return Report{}, fmt.Errorf("read input %s: %w", in, err)
	}
	rep, err := f.FormatDocument(ctx, string(data))
	if err != nil {
		return Report{}, fmt.Errorf("format %s: %w", in, err)
	}
	if out == "" {
		out = in
	}
	rep.Path = out
	if dryRun || len(rep.Results) == 0 {
		return rep, nil
	}
	if err := os.WriteFile(out, []byte(rep.Content), 0o644); err != nil {
		return rep, fmt.Errorf("write %s: %w", out, err)
	}
	engine.IncrFilesWritten()
	rep.Written = true
	slog.Info("batch: formatted", slog.String("path", out), slog.Int("links", len(rep.Results)))
	return rep, nil
}
