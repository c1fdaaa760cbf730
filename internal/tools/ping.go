package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// PingInput defines the input schema for the ping tool.
type PingInput struct {
	Echo string `json:"echo,omitempty" jsonschema:"Text returned unchanged in the echo field"`
}

// PingStatus lists the capabilities this server was started with.
type PingStatus struct {
	Status        string `json:"status"`
	Echo          string `json:"echo,omitempty"`
	Analysis      bool   `json:"analysis"`
	Evidence      bool   `json:"evidence"`
	Repositories  bool   `json:"repositories"`
	ReportHistory bool   `json:"reportHistory"`
}

// NewPingHandler creates a ping tool handler that reports which tools have
// a backing service.
func NewPingHandler(deps *Dependencies) mcp.ToolHandlerFor[PingInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input PingInput) (*mcp.CallToolResult, any, error) {
		status := PingStatus{Status: "pong", Echo: input.Echo}
		if deps != nil {
			status.Analysis = deps.Analyzer != nil
			status.Evidence = deps.Evidence != nil
			status.Repositories = deps.Repos != nil
			status.ReportHistory = deps.Reports != nil
			if deps.Logger != nil {
				deps.Logger.Debug("ping", "report_history", status.ReportHistory)
			}
		}
		return JSONResult(status), nil, nil
	}
}
