// Package handler implements the HTTP API handlers.
package handler

import (
	"context"

	"github.com/raphaelgruber/ideascope/internal/models"
	"github.com/raphaelgruber/ideascope/internal/service"
)

// Analyzer runs the analysis pipeline.
type Analyzer interface {
	Analyze(ctx context.Context, req service.Request) (*models.Report, error)
}

// Suggester produces refinement suggestions for an analysis.
type Suggester interface {
	Suggest(ctx context.Context, analysis models.AnalysisResult, title, description string) ([]string, error)
}

// RepoSearcher finds public repositories related to a query.
type RepoSearcher interface {
	SearchRepositories(ctx context.Context, query string) ([]models.Repository, error)
}

var (
	_ Analyzer  = (*service.Orchestrator)(nil)
	_ Suggester = (*service.RefineService)(nil)
)
