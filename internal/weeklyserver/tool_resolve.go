package weeklyserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_weekly/internal/engine/titles"
	"github.com/anatolykoptev/go_weekly/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// maxURLs caps one tool call; every URL may cost a network fetch.
const maxURLs = 100

type ResolveTitlesInput struct {
	URLs     []string `json:"urls" jsonschema:"URLs to title, in order"`
	Mode     string   `json:"mode,omitempty" jsonschema:"fast (no network), smart (fetch every page) or hybrid (fetch known-safe domains). Default hybrid"`
	NoScrape bool     `json:"no_scrape,omitempty" jsonschema:"Do not fetch social post text"`
}

type ResolveTitlesOutput struct {
	Mode     string          `json:"mode"`
	Results  []titles.Result `json:"results"`
	Markdown string          `json:"markdown"`
}

func registerResolveTitles(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_titles",
		Description: "Resolve human-readable titles for URLs using curated patterns, page metadata, social post text and URL-path heuristics. Returns each title with the strategy that produced it, plus the rendered markdown list.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, handleResolveTitles)
}

func handleResolveTitles(ctx context.Context, _ *mcp.CallToolRequest, input ResolveTitlesInput) (*mcp.CallToolResult, ResolveTitlesOutput, error) {
	urls, err := cleanURLs(input.URLs)
	if err != nil {
		return nil, ResolveTitlesOutput{}, err
	}
	opts, err := resolverOptions(input.Mode, input.NoScrape)
	if err != nil {
		return nil, ResolveTitlesOutput{}, err
	}
	f, err := toolutil.NewFormatter(opts)
	if err != nil {
		return nil, ResolveTitlesOutput{}, fmt.Errorf("build resolver: %w", err)
	}
	md, results := f.FormatURLs(ctx, urls)
	return nil, ResolveTitlesOutput{Mode: string(opts.Mode), Results: results, Markdown: md}, nil
}

func cleanURLs(in []string) ([]string, error) {
	var urls []string
	for _, u := range in {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("urls is required")
	}
	if len(urls) > maxURLs {
		return nil, fmt.Errorf("too many urls: %d (max %d)", len(urls), maxURLs)
	}
	return urls, nil
}

func resolverOptions(mode string, noScrape bool) (toolutil.ResolverOptions, error) {
	opts := toolutil.DefaultResolverOptions
	if mode != "" {
		m, err := titles.ParseMode(mode)
		if err != nil {
			return opts, err
		}
		opts.Mode = m
	}
	opts.Scrape = !noScrape
	return opts, nil
}
