package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_weekly/internal/toolutil"
)

func htmlCommand() *cobra.Command {
	var (
		input, output, gaID string
		all, dryRun         bool
	)
	cmd := &cobra.Command{
		Use:   "html",
		Short: "Render weekly markdown files as HTML pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := toolutil.NewGenerator(gaID)
			out := cmd.OutOrStdout()
			if all {
				pages, err := g.ConvertAll(toolutil.Dir(""), dryRun)
				if err != nil {
					return err
				}
				for _, p := range pages {
					fmt.Fprintf(out, "%s -> %s\n", p.Source, p.Path)
				}
				fmt.Fprintf(out, "%d pages\n", len(pages))
				return nil
			}
			p, err := g.ConvertFile(input, output, dryRun)
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprint(out, p.HTML)
				return nil
			}
			fmt.Fprintf(out, "Generated %s (%s)\n", p.Path, p.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "markdown file to convert")
	cmd.Flags().StringVarP(&output, "output", "o", "", "HTML file to write (default: input with .html)")
	cmd.Flags().BoolVar(&all, "all", false, "convert every dated file in the weekly directory")
	cmd.Flags().StringVar(&gaID, "ga-id", "", "analytics measurement ID ('none' to omit)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the page instead of writing it")
	cmd.MarkFlagsMutuallyExclusive("input", "all")
	cmd.MarkFlagsOneRequired("input", "all")
	return cmd
}
