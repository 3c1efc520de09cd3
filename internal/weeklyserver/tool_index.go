package weeklyserver

import (
	"context"

	"github.com/anatolykoptev/go_weekly/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type RebuildIndexInput struct {
	DryRun bool `json:"dry_run,omitempty" jsonschema:"Compute the index without writing it"`
}

type RebuildIndexOutput struct {
	Path    string   `json:"path"`
	Files   []string `json:"files"`
	Written bool     `json:"written"`
}

func registerRebuildIndex(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "rebuild_index",
		Description: "Regenerate the archive index from the dated weekly files on disk, newest first. Idempotent: an unchanged directory leaves the index untouched.",
	}, handleRebuildIndex)
}

func handleRebuildIndex(ctx context.Context, _ *mcp.CallToolRequest, input RebuildIndexInput) (*mcp.CallToolResult, RebuildIndexOutput, error) {
	ix, err := toolutil.NewIndexer("", input.DryRun).Rebuild(ctx)
	if err != nil {
		return nil, RebuildIndexOutput{}, err
	}
	out := RebuildIndexOutput{Path: ix.Path, Files: make([]string, 0, len(ix.Files)), Written: ix.Written}
	for _, f := range ix.Files {
		out.Files = append(out.Files, f.Name)
	}
	return nil, out, nil
}
