package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_weekly/internal/engine/batch"
	"github.com/anatolykoptev/go_weekly/internal/engine/htmlgen"
	"github.com/anatolykoptev/go_weekly/internal/engine/weekly"
	"github.com/anatolykoptev/go_weekly/internal/toolutil"
)

type workflowFlags struct {
	input  string
	latest bool
	all    bool
	noHTML bool
	gaID   string
	dryRun bool
}

func workflowCommand() *cobra.Command {
	var (
		rf resolverFlags
		wf workflowFlags
	)
	cmd := &cobra.Command{
		Use:   "workflow",
		Short: "Format links, render HTML and update the index in one pass",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := rf.options()
			if err != nil {
				return err
			}
			targets, err := wf.targets()
			if err != nil {
				return err
			}
			f, err := toolutil.NewFormatter(opts)
			if err != nil {
				return err
			}
			g := toolutil.NewGenerator(wf.gaID)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Mode %s, %d file(s)\n", opts.Mode, len(targets))

			failed := 0
			for _, path := range targets {
				if err := wf.process(cmd, f, g, path); err != nil {
					// Under --all a broken file is skipped.
					if len(targets) == 1 {
						return err
					}
					failed++
					slog.Warn("workflow: file skipped", slog.String("file", path), slog.Any("error", err))
				}
			}
			if err := rebuildIndex(cmd.Context(), out, wf.dryRun); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(targets))
			}
			return nil
		},
	}
	rf.register(cmd)
	cmd.Flags().StringVarP(&wf.input, "input", "i", "", "weekly file to process")
	cmd.Flags().BoolVar(&wf.latest, "latest", false, "process the most recently modified weekly file")
	cmd.Flags().BoolVar(&wf.all, "all", false, "process every dated weekly file")
	cmd.Flags().BoolVar(&wf.noHTML, "no-html", false, "skip HTML generation")
	cmd.Flags().StringVar(&wf.gaID, "ga-id", "", "analytics measurement ID ('none' to omit)")
	cmd.Flags().BoolVar(&wf.dryRun, "dry-run", false, "report without writing anything")
	cmd.MarkFlagsMutuallyExclusive("input", "latest", "all")
	cmd.MarkFlagsOneRequired("input", "latest", "all")
	return cmd
}

func (wf workflowFlags) targets() ([]string, error) {
	dir := toolutil.Dir("")
	switch {
	case wf.input != "":
		return []string{wf.input}, nil
	case wf.latest:
		f, err := weekly.Latest(dir)
		if err != nil {
			return nil, err
		}
		return []string{f.Path}, nil
	}
	files, err := weekly.Scan(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no weekly files in %s", dir)
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	return paths, nil
}

func (wf workflowFlags) process(cmd *cobra.Command, f *batch.Formatter, g *htmlgen.Generator, path string) error {
	out := cmd.OutOrStdout()
	rep, err := f.FormatFile(cmd.Context(), path, "", wf.dryRun)
	switch {
	case errors.Is(err, weekly.ErrNoLinksSection):
		fmt.Fprintf(out, "%s: no links section, formatting skipped\n", path)
	case err != nil:
		return err
	default:
		reportFormat(out, path, rep, wf.dryRun)
	}
	if wf.noHTML {
		return nil
	}
	p, err := g.ConvertFile(path, "", wf.dryRun)
	if err != nil {
		return err
	}
	if wf.dryRun {
		fmt.Fprintf(out, "%s: would generate %s\n", path, p.Path)
	} else {
		fmt.Fprintf(out, "%s: generated %s\n", path, p.Path)
	}
	return nil
}

func reportFormat(out io.Writer, path string, rep batch.Report, dryRun bool) {
	switch {
	case len(rep.Results) == 0:
		fmt.Fprintf(out, "%s: no URLs to format\n", path)
	case dryRun:
		fmt.Fprintf(out, "%s: would format %d links\n", path, len(rep.Results))
		for _, r := range rep.Results {
			fmt.Fprintf(out, "  %s -> %s\n", r.URL, r.Title)
		}
	default:
		fmt.Fprintf(out, "%s: formatted %d links\n", path, len(rep.Results))
	}
}
