package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/ideascope/internal/client"
	"github.com/raphaelgruber/ideascope/internal/http/dto"
	"github.com/raphaelgruber/ideascope/internal/http/router"
	"github.com/raphaelgruber/ideascope/internal/metrics"
	"github.com/raphaelgruber/ideascope/internal/models"
	"github.com/raphaelgruber/ideascope/internal/service"
)

type cannedCompleter struct {
	response string
	err      error
}

func (c cannedCompleter) Complete(context.Context, string, float64) (string, error) {
	return c.response, c.err
}

type cannedEvidence struct{}

func (cannedEvidence) FetchEvidence(context.Context, string) []models.EvidenceArticle {
	return []models.EvidenceArticle{{Title: "Collaborative Learning", Source: "Semantic Scholar (2020)"}}
}

// newServer runs the real router over the real services with a canned model.
func newServer(t *testing.T, completer service.Completer) (*client.Client, *service.ReportService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reports := service.NewReportService(service.NewMemoryStore(), "http://ideascope.test")
	collector := metrics.NewCollector()
	srv := httptest.NewServer(router.New(router.Services{
		Analyzer: service.NewOrchestrator(completer, cannedEvidence{}, service.Options{Reports: reports}),
		Evidence: cannedEvidence{},
		Refiner:  service.NewRefineService(completer, 0),
		Reports:  reports,
		Metrics:  collector,
	}))
	t.Cleanup(srv.Close)
	collector.RecordTiming(metrics.OpEvidence, 30*time.Millisecond)

	return client.New(srv.URL+"/", time.Minute), reports
}

func TestAnalyzeAndReports(t *testing.T) {
	ctx := context.Background()
	c, _ := newServer(t, cannedCompleter{response: `{"feasibilityScore": 6, "successProbability": 55}`})

	resp, err := c.Analyze(ctx, dto.AnalyzeRequest{Idea: "study groups", Save: true})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Analysis.FeasibilityScore)
	require.Len(t, resp.ID, 8)
	assert.Equal(t, "http://ideascope.test/reports/"+resp.ID, resp.ShareURL)

	list, err := c.ListReports(ctx, 5)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, resp.ID, list[0].ID)

	got, err := c.GetReport(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "study groups", got.Idea)

	require.NoError(t, c.DeleteReport(ctx, resp.ID))
	_, err = c.GetReport(ctx, resp.ID)
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestAnalyzeServerErrors(t *testing.T) {
	ctx := context.Background()
	c, _ := newServer(t, cannedCompleter{err: errors.New("connection refused")})

	_, err := c.Analyze(ctx, dto.AnalyzeRequest{Idea: "study groups"})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "Completion service unavailable", apiErr.Message)
	assert.NotErrorIs(t, err, client.ErrNotFound)

	_, err = c.Analyze(ctx, dto.AnalyzeRequest{})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestResearchPapersRefineAndStats(t *testing.T) {
	ctx := context.Background()
	c, _ := newServer(t, cannedCompleter{response: `["Start with one campus", "Add calendar sync"]`})

	articles, err := c.ResearchPapers(ctx, "study groups")
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Collaborative Learning", articles[0].Title)

	suggestions, err := c.Refine(ctx, dto.RefineRequest{ProjectTitle: "Project: study groups"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Start with one campus", "Add calendar sync"}, suggestions)

	snap, err := c.Stats(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap.Evidence)
	assert.Equal(t, int64(1), snap.Evidence.Count)
}

func TestStreamAnalysis(t *testing.T) {
	ctx := context.Background()
	c, _ := newServer(t, cannedCompleter{response: `{"feasibilityScore": 9}`})

	var states []string
	report, err := c.StreamAnalysis(ctx, dto.AnalyzeRequest{Idea: "a basic portfolio site"}, func(s string) error {
		states = append(states, s)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 10, report.Analysis.FeasibilityScore)
	assert.Equal(t, []string{
		string(service.StatePrompting),
		string(service.StateAwaitingCompletion),
		string(service.StateRecovering),
		string(service.StateAdjusting),
		string(service.StateDone),
	}, states)
}

func TestStreamAnalysisErrors(t *testing.T) {
	ctx := context.Background()
	c, _ := newServer(t, cannedCompleter{err: errors.New("quota exceeded")})

	_, err := c.StreamAnalysis(ctx, dto.AnalyzeRequest{Idea: "study groups"}, nil)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)

	abort := errors.New("stop")
	c, _ = newServer(t, cannedCompleter{response: `{}`})
	_, err = c.StreamAnalysis(ctx, dto.AnalyzeRequest{Idea: "study groups"}, func(string) error { return abort })
	assert.ErrorIs(t, err, abort)
}

func TestNonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := client.New(srv.URL, 0).Stats(context.Background())
	assert.EqualError(t, err, "server error: 503 upstream down")
}
