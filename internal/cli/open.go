package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_weekly/internal/engine/opener"
	"github.com/anatolykoptev/go_weekly/internal/engine/rawlinks"
)

func openCommand() *cobra.Command {
	var (
		category string
		delay    time.Duration
		dryRun   bool
		launcher bool
		browser  opener.BrowserOptions
	)
	cmd := &cobra.Command{
		Use:   "open RAW_FILE",
		Short: "Open the links of a RAW_LINKS file in browser tabs",
		Long: `Open every URL, and a web search for every quoted topic, of a RAW_LINKS
notes file in Chrome, one tab at a time. --launcher-html writes a page with
an "Open All" button next to the notes file instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := rawlinks.ParseFile(args[0], category)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				if category != "" {
					return fmt.Errorf("%w under category %q in %s", rawlinks.ErrNoURLs, category, args[0])
				}
				return fmt.Errorf("%w in %s", rawlinks.ErrNoURLs, args[0])
			}

			if launcher {
				path := opener.LauncherPath(args[0])
				if err := opener.WriteLauncher(path, items); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %s (%d links)\n", path, len(items))
				return nil
			}

			var o opener.Opener = opener.Printer{W: out}
			if !dryRun {
				b, err := opener.NewBrowser(cmd.Context(), browser)
				if err != nil {
					return err
				}
				o = b
			}
			fmt.Fprintf(out, "Opening %d links, %s apart\n", len(items), delay)
			n, err := opener.OpenAll(cmd.Context(), o, items, delay)
			fmt.Fprintf(out, "Opened %d of %d\n", n, len(items))
			return err
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only open items under this header (e.g. HEADLINES)")
	cmd.Flags().DurationVar(&delay, "delay", opener.DefaultDelay, "pause between tabs")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print what would be opened")
	cmd.Flags().BoolVar(&launcher, "launcher-html", false, "write an HTML launcher page instead of opening tabs")
	cmd.Flags().StringVar(&browser.ControlURL, "control-url", "", "DevTools URL of a running Chrome to use")
	cmd.Flags().StringVar(&browser.Bin, "chrome-bin", "", "Chrome binary to launch")
	return cmd
}
