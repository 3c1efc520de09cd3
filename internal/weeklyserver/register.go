// Package weeklyserver exposes the weekly links toolkit as MCP tools.
package weeklyserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolCount is the number of tools RegisterTools adds.
const ToolCount = 5

// RegisterTools registers every weekly-links tool on the given MCP server:
// resolve_titles, format_links, rebuild_index, new_weekly, render_html.
func RegisterTools(server *mcp.Server) {
	registerResolveTitles(server)
	registerFormatLinks(server)
	registerRebuildIndex(server)
	registerNewWeekly(server)
	registerRenderHTML(server)
}
