package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_weekly/internal/engine/rawlinks"
	"github.com/anatolykoptev/go_weekly/internal/toolutil"
)

func importCommand() *cobra.Command {
	var opts rawlinks.ImportOptions
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy the URLs of a RAW_LINKS notes file into its weekly file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Dir = toolutil.Dir("")
			res, err := rawlinks.Import(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.DryRun {
				fmt.Fprintf(out, "Would write %s:\n\n%s", res.Path, res.Content)
			} else {
				verb := "Updated"
				if res.Created {
					verb = "Created"
				}
				fmt.Fprintf(out, "%s %s with %d URLs\n", verb, res.Path, len(res.URLs))
			}
			if len(res.Searches) > 0 {
				fmt.Fprintf(out, "%d search topics not imported:\n", len(res.Searches))
				for _, s := range res.Searches {
					fmt.Fprintf(out, "  - %s\n", s)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "RAW_LINKS file, usually named YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.Date, "date", "", "collection date when the file name is not one")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "print the result instead of writing it")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
