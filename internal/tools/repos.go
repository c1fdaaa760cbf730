package tools

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/ideascope/internal/github"
)

// RepoSearchInput defines the input schema for the search_repositories tool.
type RepoSearchInput struct {
	Query string `json:"query" jsonschema:"required,GitHub repository search query"`
}

// NewRepoSearchHandler creates the search_repositories tool handler.
func NewRepoSearchHandler(deps *Dependencies) mcp.ToolHandlerFor[RepoSearchInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RepoSearchInput) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(input.Query) == "" {
			return ErrorResult("Query cannot be empty", "Provide a search query"), nil, nil
		}

		repos, err := deps.Repos.SearchRepositories(ctx, input.Query)
		if err != nil {
			deps.Logger.Error("repository search failed", "error", err)
			var apiErr *github.APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden {
				return ErrorResult("GitHub rate limit reached", "Set GITHUB_TOKEN or retry later"), nil, nil
			}
			return ErrorResult("Repository search failed", "GitHub may be unavailable"), nil, nil
		}

		return JSONResult(map[string]any{"repositories": repos, "count": len(repos)}), nil, nil
	}
}
