package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_weekly/internal/engine"
	"github.com/anatolykoptev/go_weekly/internal/engine/titles"
	"github.com/anatolykoptev/go_weekly/internal/toolutil"
)

// resolverFlags are shared by every command that titles URLs.
type resolverFlags struct {
	mode     string
	noScrape bool
	noCache  bool
}

func (f *resolverFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mode, "mode", string(titles.ModeHybrid), "title mode: fast, smart or hybrid")
	cmd.Flags().BoolVar(&f.noScrape, "no-scrape", false, "do not fetch social post text")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "bypass the title cache")
}

func (f *resolverFlags) options() (toolutil.ResolverOptions, error) {
	opts := toolutil.DefaultResolverOptions
	m, err := titles.ParseMode(f.mode)
	if err != nil {
		return opts, err
	}
	opts.Mode = m
	opts.Scrape = !f.noScrape
	opts.Cache = !f.noCache
	return opts, nil
}

func resolveCommand() *cobra.Command {
	var (
		rf       resolverFlags
		markdown bool
	)
	cmd := &cobra.Command{
		Use:   "resolve URL...",
		Short: "Show the title each URL resolves to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := rf.options()
			if err != nil {
				return err
			}
			f, err := toolutil.NewFormatter(opts)
			if err != nil {
				return err
			}
			md, results := f.FormatURLs(cmd.Context(), args)
			if markdown {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), md)
				return err
			}
			renderResults(cmd.OutOrStdout(), results)
			return nil
		},
	}
	rf.register(cmd)
	cmd.Flags().BoolVar(&markdown, "markdown", false, "print rendered list items instead of a table")
	return cmd
}

const maxURLColumn = 70

func renderResults(w io.Writer, results []titles.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "URL", "Title", "Strategy"})
	for i, r := range results {
		t.AppendRow(table.Row{i + 1, engine.TruncateRunes(r.URL, maxURLColumn, "…"), r.Title, r.Strategy})
	}
	t.Render()
}
