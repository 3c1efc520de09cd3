package cli

import (
	"log/slog"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_weekly/internal/engine"
	"github.com/anatolykoptev/go_weekly/internal/weeklyserver"
)

func serveCommand(version string) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server exposing the weekly tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.Info("starting go_weekly",
				slog.String("port", port),
				slog.String("dir", engine.Cfg.WeeklyDir),
			)

			server := mcp.NewServer(&mcp.Implementation{
				Name:    "go_weekly",
				Version: version,
			}, nil)

			weeklyserver.RegisterTools(server)
			slog.Info("tools registered", slog.Int("count", weeklyserver.ToolCount))

			return mcpserver.Run(server, mcpserver.Config{
				Name:         "go_weekly",
				Version:      version,
				Port:         port,
				WriteTimeout: 600 * time.Second,
				Metrics:      engine.FormatMetrics,
			})
		},
	}
	cmd.Flags().StringVar(&port, "port", env.Str("MCP_PORT", "8891"), "HTTP port")
	return cmd
}
