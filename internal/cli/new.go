package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_weekly/internal/engine/weekly"
	"github.com/anatolykoptev/go_weekly/internal/toolutil"
)

func newCommand() *cobra.Command {
	var (
		opts    weekly.Options
		noIndex bool
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create this week's links file from the template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Dir = toolutil.Dir("")
			res, err := weekly.Instantiate(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.DryRun {
				fmt.Fprintf(out, "Would create %s:\n\n%s", res.Path, res.Content)
				return nil
			}
			fmt.Fprintf(out, "Created %s\n", res.Path)
			if noIndex {
				return nil
			}
			return rebuildIndex(cmd.Context(), out, false)
		},
	}
	cmd.Flags().StringVar(&opts.Date, "date", "", "collection date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&opts.VideoURL, "video-url", "", "episode video URL")
	cmd.Flags().StringVar(&opts.VideoText, "video-text", "", "episode video link text")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "print the file instead of writing it")
	cmd.Flags().BoolVar(&noIndex, "no-index", false, "do not update the archive index")
	return cmd
}

func rebuildIndex(ctx context.Context, out io.Writer, dryRun bool) error {
	ix, err := toolutil.NewIndexer("", dryRun).Rebuild(ctx)
	if err != nil {
		return fmt.Errorf("update index: %w", err)
	}
	switch {
	case dryRun:
		fmt.Fprintf(out, "Would write %s (%d entries):\n\n%s", ix.Path, len(ix.Files), ix.Content)
	case ix.Written:
		fmt.Fprintf(out, "Updated %s (%d entries)\n", ix.Path, len(ix.Files))
	default:
		fmt.Fprintf(out, "%s is up to date (%d entries)\n", ix.Path, len(ix.Files))
	}
	return nil
}
