package db

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/raphaelgruber/ideascope/internal/models"
)

// reportRow is the stored shape of a report.
type reportRow struct {
	ID       surrealmodels.RecordID   `json:"id,omitempty"`
	Idea     string                   `json:"idea"`
	Stage    string                   `json:"stage"`
	Analysis models.AnalysisResult    `json:"analysis"`
	Evidence []models.EvidenceArticle `json:"evidence"`
	Tier     string                   `json:"tier"`
	Created  time.Time                `json:"created"`
}

func (r reportRow) toModel() (models.Report, error) {
	id, err := models.RecordIDString(r.ID)
	if err != nil {
		return models.Report{}, err
	}
	evidence := r.Evidence
	if evidence == nil {
		evidence = []models.EvidenceArticle{}
	}
	return models.Report{
		ID:        id,
		Idea:      r.Idea,
		Stage:     models.Stage(r.Stage),
		Analysis:  r.Analysis,
		Evidence:  evidence,
		Tier:      r.Tier,
		CreatedAt: r.Created,
	}, nil
}

// SaveReport creates a report record under report.ID.
func (c *Client) SaveReport(ctx context.Context, report *models.Report) (err error) {
	defer func(start time.Time) { c.observe(start, err) }(time.Now())

	content := map[string]any{
		"idea":     report.Idea,
		"stage":    string(report.Stage),
		"analysis": report.Analysis,
		"evidence": report.Evidence,
		"tier":     report.Tier,
		"created":  report.CreatedAt,
	}

	_, err = surrealdb.Query[[]reportRow](ctx, c.db, `
		CREATE type::record("report", $id) CONTENT $content
	`, map[string]any{"id": report.ID, "content": content})
	if err != nil {
		return fmt.Errorf("create report: %w", wrapQueryError(err))
	}
	return nil
}

// GetReport returns the report with id or ErrNotFound.
func (c *Client) GetReport(ctx context.Context, id string) (report *models.Report, err error) {
	defer func(start time.Time) { c.observe(start, err) }(time.Now())

	results, err := surrealdb.Query[[]reportRow](ctx, c.db, `
		SELECT * FROM type::record("report", $id)
	`, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, ErrNotFound
	}
	r, err := (*results)[0].Result[0].toModel()
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	return &r, nil
}

// ListReports returns up to limit reports, newest first.
func (c *Client) ListReports(ctx context.Context, limit int) (reports []models.Report, err error) {
	defer func(start time.Time) { c.observe(start, err) }(time.Now())

	results, err := surrealdb.Query[[]reportRow](ctx, c.db, `
		SELECT * FROM report ORDER BY created DESC LIMIT $limit
	`, map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	reports = []models.Report{}
	if results == nil || len(*results) == 0 {
		return reports, nil
	}
	for _, row := range (*results)[0].Result {
		r, convErr := row.toModel()
		if convErr != nil {
			return nil, fmt.Errorf("list reports: %w", convErr)
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// DeleteReport removes the report with id. Deleting a missing report
// returns ErrNotFound.
func (c *Client) DeleteReport(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { c.observe(start, err) }(time.Now())

	results, err := surrealdb.Query[[]reportRow](ctx, c.db, `
		DELETE type::record("report", $id) RETURN BEFORE
	`, map[string]any{"id": id})
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return ErrNotFound
	}
	return nil
}
