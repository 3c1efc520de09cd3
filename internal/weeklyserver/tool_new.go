package weeklyserver

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_weekly/internal/engine/weekly"
	"github.com/anatolykoptev/go_weekly/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type NewWeeklyInput struct {
	Date      string `json:"date,omitempty" jsonschema:"Collection date YYYY-MM-DD (default today)"`
	VideoURL  string `json:"video_url,omitempty" jsonschema:"Episode video URL"`
	VideoText string `json:"video_text,omitempty" jsonschema:"Episode video link text"`
	Force     bool   `json:"force,omitempty" jsonschema:"Overwrite an existing file"`
	DryRun    bool   `json:"dry_run,omitempty" jsonschema:"Return the content without writing"`
}

type NewWeeklyOutput struct {
	Path         string `json:"path"`
	Date         string `json:"date"`
	Written      bool   `json:"written"`
	IndexUpdated bool   `json:"index_updated"`
	Content      string `json:"content,omitempty"`
}

func registerNewWeekly(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "new_weekly",
		Description: "Create the dated weekly links file from the template and refresh the archive index. Fails if the file exists unless force is set.",
	}, handleNewWeekly)
}

func handleNewWeekly(ctx context.Context, _ *mcp.CallToolRequest, input NewWeeklyInput) (*mcp.CallToolResult, NewWeeklyOutput, error) {
	res, err := weekly.Instantiate(weekly.Options{
		Date:      input.Date,
		VideoURL:  input.VideoURL,
		VideoText: input.VideoText,
		Force:     input.Force,
		DryRun:    input.DryRun,
	})
	if err != nil {
		return nil, NewWeeklyOutput{}, err
	}
	out := NewWeeklyOutput{Path: res.Path, Date: res.Date.Format(weekly.DateLayout), Written: res.Written}
	if input.DryRun {
		out.Content = res.Content
		return nil, out, nil
	}
	ix, err := toolutil.NewIndexer("", false).Rebuild(ctx)
	if err != nil {
		slog.Warn("new_weekly: index rebuild failed", slog.Any("error", err))
		return nil, out, nil
	}
	out.IndexUpdated = ix.Written
	return nil, out, nil
}
