package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterAll registers all tools with the MCP server.
// This is called from main after server creation but before Run().
func RegisterAll(server *mcp.Server, deps *Dependencies) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "ping",
		Description: "Check the connection and list which ideascope capabilities are available",
	}, NewPingHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_idea",
		Description: "Assess a project idea: feasibility, difficulty, tech stack, roadmap and supporting research",
	}, NewAnalyzeHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "fetch_evidence",
		Description: "Collect up to four research papers related to a project idea",
	}, NewFetchEvidenceHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "classify_idea",
		Description: "Detect the domain and keywords of a project idea",
	}, NewClassifyHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_repositories",
		Description: "Find popular GitHub repositories related to a query",
	}, NewRepoSearchHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_report",
		Description: "Retrieve a saved analysis report by its ID",
	}, NewGetReportHandler(deps))
}
