package cli

import (
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_weekly/internal/engine/htmlgen"
	"github.com/anatolykoptev/go_weekly/internal/engine/weekly"
	"github.com/anatolykoptev/go_weekly/internal/toolutil"
)

func indexCommand() *cobra.Command {
	var dryRun, list bool
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Rebuild the archive index from the dated files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				files, err := weekly.Scan(toolutil.Dir(""))
				if err != nil {
					return err
				}
				renderFiles(cmd.OutOrStdout(), files)
				return nil
			}
			return rebuildIndex(cmd.Context(), cmd.OutOrStdout(), dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the index instead of writing it")
	cmd.Flags().BoolVar(&list, "list", false, "list the dated files without touching the index")
	return cmd
}

func renderFiles(w io.Writer, files []weekly.File) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Date", "File", "Links", "HTML"})
	for _, f := range files {
		links := "-"
		if data, err := os.ReadFile(f.Path); err == nil {
			if urls, err := weekly.ExtractLinks(string(data)); err == nil {
				links = strconv.Itoa(len(urls))
			}
		}
		html := "no"
		if _, err := os.Stat(htmlgen.OutputPath(f.Path)); err == nil {
			html = "yes"
		}
		t.AppendRow(table.Row{f.Date.Format(weekly.DisplayLayout), f.Name, links, html})
	}
	t.AppendFooter(table.Row{"", "Total", len(files), ""})
	t.Render()
}
