package models

import "time"

// Report is a completed analysis together with its evidence.
// Reports are persisted so they can be shared by ID.
type Report struct {
	ID        string            `json:"id" yaml:"id"`
	Idea      string            `json:"idea" yaml:"idea"`
	Stage     Stage             `json:"stage" yaml:"stage"`
	Analysis  AnalysisResult    `json:"analysis" yaml:"analysis"`
	Evidence  []EvidenceArticle `json:"evidence" yaml:"evidence"`
	Tier      string            `json:"recoveryTier" yaml:"recoveryTier"`
	CreatedAt time.Time         `json:"createdAt" yaml:"createdAt"`
}

// ReportSummary is the list view of a stored report.
type ReportSummary struct {
	ID               string    `json:"id"`
	ProjectTitle     string    `json:"projectTitle"`
	Stage            Stage     `json:"stage"`
	FeasibilityScore int       `json:"feasibilityScore"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Summary returns the list view of r.
func (r Report) Summary() ReportSummary {
	return ReportSummary{
		ID:               r.ID,
		ProjectTitle:     r.Analysis.ProjectTitle,
		Stage:            r.Stage,
		FeasibilityScore: r.Analysis.FeasibilityScore,
		CreatedAt:        r.CreatedAt,
	}
}
