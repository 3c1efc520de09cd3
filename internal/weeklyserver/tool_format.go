package weeklyserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_weekly/internal/engine/titles"
	"github.com/anatolykoptev/go_weekly/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type FormatLinksInput struct {
	File     string `json:"file" jsonschema:"Weekly file name inside the weekly directory (e.g. 2025-01-29-links.md)"`
	Mode     string `json:"mode,omitempty" jsonschema:"fast, smart or hybrid. Default hybrid"`
	NoScrape bool   `json:"no_scrape,omitempty" jsonschema:"Do not fetch social post text"`
	DryRun   bool   `json:"dry_run,omitempty" jsonschema:"Return the formatted section without writing"`
}

type FormatLinksOutput struct {
	Path    string          `json:"path"`
	Results []titles.Result `json:"results"`
	Written bool            `json:"written"`
	Content string          `json:"content,omitempty"`
}

func registerFormatLinks(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "format_links",
		Description: "Rewrite the 'Links from Office Hours' section of a weekly file: every URL gets a resolved title and is rendered as an anchor. Duplicates are dropped, order is kept. Use dry_run to preview.",
	}, handleFormatLinks)
}

func handleFormatLinks(ctx context.Context, _ *mcp.CallToolRequest, input FormatLinksInput) (*mcp.CallToolResult, FormatLinksOutput, error) {
	if input.File == "" {
		return nil, FormatLinksOutput{}, fmt.Errorf("file is required")
	}
	opts, err := resolverOptions(input.Mode, input.NoScrape)
	if err != nil {
		return nil, FormatLinksOutput{}, err
	}
	f, err := toolutil.NewFormatter(opts)
	if err != nil {
		return nil, FormatLinksOutput{}, fmt.Errorf("build resolver: %w", err)
	}
	rep, err := f.FormatFile(ctx, toolutil.InDir(input.File), "", input.DryRun)
	if err != nil {
		return nil, FormatLinksOutput{}, err
	}
	out := FormatLinksOutput{Path: rep.Path, Results: rep.Results, Written: rep.Written}
	if input.DryRun {
		out.Content = rep.Content
	}
	return nil, out, nil
}
