package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_weekly/internal/toolutil"
)

func formatCommand() *cobra.Command {
	var (
		rf               resolverFlags
		input, output    string
		urls, gaID       string
		withHTML, dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "format",
		Short: "Title the links of a weekly file, or of a URL list",
		Long: `Resolve a title for every URL in the "Links from Office Hours" section of
--input and rewrite that section with rendered links. With --urls the
formatted list is printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := rf.options()
			if err != nil {
				return err
			}
			f, err := toolutil.NewFormatter(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if urls != "" {
				list := splitURLs(urls)
				if len(list) == 0 {
					return errors.New("--urls holds no URLs")
				}
				md, _ := f.FormatURLs(cmd.Context(), list)
				fmt.Fprintln(out, md)
				return nil
			}

			rep, err := f.FormatFile(cmd.Context(), input, output, dryRun)
			if err != nil {
				return err
			}
			if len(rep.Results) == 0 {
				fmt.Fprintf(out, "No URLs to format in %s\n", input)
				return nil
			}
			if dryRun {
				fmt.Fprintf(out, "Would write %s:\n\n%s", rep.Path, rep.Content)
				return nil
			}
			fmt.Fprintf(out, "Formatted %d links into %s\n", len(rep.Results), rep.Path)
			if !withHTML {
				return nil
			}
			p, err := toolutil.NewGenerator(gaID).ConvertFile(rep.Path, "", false)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Generated %s\n", p.Path)
			return nil
		},
	}
	rf.register(cmd)
	cmd.Flags().StringVarP(&input, "input", "i", "", "weekly markdown file to format in place")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of --input")
	cmd.Flags().StringVar(&urls, "urls", "", "space or comma separated URLs to format and print")
	cmd.Flags().BoolVar(&withHTML, "html", false, "also generate the HTML page")
	cmd.Flags().StringVar(&gaID, "ga-id", "", "analytics measurement ID for --html ('none' to omit)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the result instead of writing it")
	cmd.MarkFlagsMutuallyExclusive("input", "urls")
	cmd.MarkFlagsOneRequired("input", "urls")
	return cmd
}

func splitURLs(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
}
