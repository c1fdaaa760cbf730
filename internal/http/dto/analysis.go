// Package dto defines the JSON request and response bodies of the HTTP API.
package dto

import "github.com/raphaelgruber/ideascope/internal/models"

// AnalyzeRequest is the body of POST /api/analyze and the first websocket
// message of /api/analyze/stream.
type AnalyzeRequest struct {
	Idea         string `json:"idea"`
	Stage        string `json:"stage,omitempty"`
	Fallback     string `json:"fallback,omitempty"`
	SkipEvidence bool   `json:"skipEvidence,omitempty"`
	Save         bool   `json:"save,omitempty"`
}

// ReportResponse is a report plus its share link when it was stored.
type ReportResponse struct {
	*models.Report
	ShareURL string `json:"shareUrl,omitempty"`
}

// IdeaRequest is the body of endpoints that take only an idea.
type IdeaRequest struct {
	Idea string `json:"idea"`
}

// EvidenceResponse is the body returned by POST /api/research-papers.
type EvidenceResponse struct {
	Articles []models.EvidenceArticle `json:"articles"`
	Source   string                   `json:"source"`
}

// RefineRequest is the body of POST /api/refine.
type RefineRequest struct {
	Analysis           models.AnalysisResult `json:"analysis"`
	ProjectTitle       string                `json:"projectTitle"`
	ProjectDescription string                `json:"projectDescription"`
}

// RefineResponse is the body returned by POST /api/refine.
type RefineResponse struct {
	Suggestions []string `json:"suggestions"`
}

// RepoSearchRequest is the body of POST /api/github-repos.
type RepoSearchRequest struct {
	Query string `json:"query"`
}

// RepoSearchResponse is the body returned by POST /api/github-repos.
type RepoSearchResponse struct {
	Repositories []models.Repository `json:"repositories"`
}

// ReportListResponse is the body returned by GET /api/reports.
type ReportListResponse struct {
	Reports []models.ReportSummary `json:"reports"`
}

// ErrorResponse is the stable error shape of every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
