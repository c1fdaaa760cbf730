// Package tools provides MCP tool handlers and registration.
package tools

import (
	"context"
	"log/slog"

	"github.com/raphaelgruber/ideascope/internal/models"
	"github.com/raphaelgruber/ideascope/internal/service"
)

// Analyzer runs the analysis pipeline.
type Analyzer interface {
	Analyze(ctx context.Context, req service.Request) (*models.Report, error)
}

// RepoSearcher finds public repositories related to a query.
type RepoSearcher interface {
	SearchRepositories(ctx context.Context, query string) ([]models.Repository, error)
}

// Dependencies holds shared services for tool handlers.
// Passed to handler factories via closure capture.
type Dependencies struct {
	Analyzer Analyzer
	Evidence service.EvidenceFetcher
	Repos    RepoSearcher
	Reports  *service.ReportService // nil when report history is disabled
	Logger   *slog.Logger
}
