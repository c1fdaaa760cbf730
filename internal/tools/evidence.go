package tools

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/ideascope/internal/classify"
)

// IdeaInput is the input schema for tools that take only an idea.
type IdeaInput struct {
	Idea string `json:"idea" jsonschema:"required,Free-text description of the project idea"`
}

// NewFetchEvidenceHandler creates the fetch_evidence tool handler.
// Returns at most four articles; provider failures degrade to a synthesized article.
func NewFetchEvidenceHandler(deps *Dependencies) mcp.ToolHandlerFor[IdeaInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input IdeaInput) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(input.Idea) == "" {
			return ErrorResult("Idea cannot be empty", "Describe the project idea"), nil, nil
		}

		articles := deps.Evidence.FetchEvidence(ctx, input.Idea)
		deps.Logger.Info("evidence collected", "count", len(articles))
		return JSONResult(map[string]any{"articles": articles, "count": len(articles)}), nil, nil
	}
}

// NewClassifyHandler creates the classify_idea tool handler.
func NewClassifyHandler(deps *Dependencies) mcp.ToolHandlerFor[IdeaInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input IdeaInput) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(input.Idea) == "" {
			return ErrorResult("Idea cannot be empty", "Describe the project idea"), nil, nil
		}
		return JSONResult(classify.Classify(input.Idea)), nil, nil
	}
}
