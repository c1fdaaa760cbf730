package tools

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/ideascope/internal/db"
)

// GetReportInput defines the input schema for the get_report tool.
type GetReportInput struct {
	ID string `json:"id" jsonschema:"required,Report ID returned by analyze_idea with save=true"`
}

// NewGetReportHandler creates the get_report tool handler.
func NewGetReportHandler(deps *Dependencies) mcp.ToolHandlerFor[GetReportInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetReportInput) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(input.ID) == "" {
			return ErrorResult("ID cannot be empty", "Provide a report ID"), nil, nil
		}
		if deps.Reports == nil {
			return ErrorResult("Report history is disabled", ""), nil, nil
		}

		report, err := deps.Reports.Get(ctx, input.ID)
		if errors.Is(err, db.ErrNotFound) {
			return ErrorResult("Report not found: "+input.ID, "Check the ID"), nil, nil
		}
		if err != nil {
			deps.Logger.Error("get report failed", "id", input.ID, "error", err)
			return ErrorResult("Failed to load report", "Database may be unavailable"), nil, nil
		}

		return JSONResult(report), nil, nil
	}
}
