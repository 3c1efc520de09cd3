package weeklyserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_weekly/internal/engine/htmlgen"
	"github.com/anatolykoptev/go_weekly/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type RenderHTMLInput struct {
	File        string `json:"file,omitempty" jsonschema:"Weekly file name inside the weekly directory; empty renders every dated file"`
	AnalyticsID string `json:"analytics_id,omitempty" jsonschema:"Google Analytics measurement ID; 'none' omits the tag"`
	DryRun      bool   `json:"dry_run,omitempty" jsonschema:"Render without writing"`
}

type RenderHTMLOutput struct {
	Pages []htmlgen.Page `json:"pages"`
}

func registerRenderHTML(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_html",
		Description: "Convert weekly markdown files to styled HTML pages with the analytics tag, next to the source file.",
	}, handleRenderHTML)
}

func handleRenderHTML(_ context.Context, _ *mcp.CallToolRequest, input RenderHTMLInput) (*mcp.CallToolResult, RenderHTMLOutput, error) {
	g := toolutil.NewGenerator(input.AnalyticsID)
	if input.File == "" {
		pages, err := g.ConvertAll(toolutil.Dir(""), input.DryRun)
		if err != nil {
			return nil, RenderHTMLOutput{}, err
		}
		return nil, RenderHTMLOutput{Pages: pages}, nil
	}
	p, err := g.ConvertFile(toolutil.InDir(input.File), "", input.DryRun)
	if err != nil {
		return nil, RenderHTMLOutput{}, fmt.Errorf("render_html: %w", err)
	}
	return nil, RenderHTMLOutput{Pages: []htmlgen.Page{p}}, nil
}
