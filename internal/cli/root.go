// Package cli implements the go_weekly command-line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_weekly/internal/engine"
)

// LogLevel is the level of the default logger; --debug lowers it.
var LogLevel = new(slog.LevelVar)

type globalFlags struct {
	dir      string
	siteHost string
	debug    bool
}

// NewRootCommand builds the command tree. Flags are applied on top of the
// engine configuration already initialised from the environment.
func NewRootCommand(version string) *cobra.Command {
	var g globalFlags
	root := &cobra.Command{
		Use:           "go_weekly",
		Short:         "Curate the weekly AI links collection",
		Long:          `Create dated weekly link files, title and format their links, render HTML pages and keep the archive index in order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.apply()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().StringVar(&g.dir, "dir", "", "weekly links directory (default $WEEKLY_DIR or weekly-links)")
	root.PersistentFlags().StringVar(&g.siteHost, "site-host", "", "host treated as same-site when rendering links")
	root.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable debug logging")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "go_weekly version %s\n", version)
		},
	})
	root.AddCommand(
		newCommand(),
		formatCommand(),
		resolveCommand(),
		indexCommand(),
		htmlCommand(),
		importCommand(),
		openCommand(),
		workflowCommand(),
		serveCommand(version),
	)
	return root
}

func (g globalFlags) apply() error {
	if g.debug {
		LogLevel.Set(slog.LevelDebug)
	}
	if g.dir == "" && g.siteHost == "" {
		return nil
	}
	c := *engine.Cfg
	if g.dir != "" {
		c.WeeklyDir = g.dir
	}
	if g.siteHost != "" {
		c.SiteHost = g.siteHost
	}
	engine.Init(c)
	return nil
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context, version string) error {
	return NewRootCommand(version).ExecuteContext(ctx)
}
