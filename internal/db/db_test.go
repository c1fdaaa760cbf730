//go:build integration

package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/raphaelgruber/ideascope/internal/metrics"
	"github.com/raphaelgruber/ideascope/internal/models"
)

var (
	testDB        *Client
	testMetrics   *metrics.Collector
	testContainer testcontainers.Container
)

// TestMain sets up and tears down the SurrealDB container for all tests.
func TestMain(m *testing.M) {
	// Disable ryuk (cleanup container) as it can cause issues in some environments
	os.Setenv("TESTCONTAINERS_RYUK_DISABLED", "true")

	ctx := context.Background()

	var err error
	testContainer, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "surrealdb/surrealdb:v3.0.0-beta.1",
			ExposedPorts: []string{"8000/tcp"},
			Cmd:          []string{"start", "--log", "info", "--user", "root", "--pass", "root"},
			WaitingFor:   wait.ForLog("Started web server").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		log.Fatalf("Failed to start SurrealDB container: %v", err)
	}

	host, err := testContainer.Host(ctx)
	if err != nil {
		log.Fatalf("Failed to get container host: %v", err)
	}
	// Workaround: testcontainers may return "null" as host in some environments
	if host == "" || host == "null" {
		host = "localhost"
	}
	mappedPort, err := testContainer.MappedPort(ctx, "8000")
	if err != nil {
		log.Fatalf("Failed to get mapped port: %v", err)
	}

	testMetrics = metrics.NewCollector()
	testDB, err = NewClient(ctx, Config{
		URL:       fmt.Sprintf("ws://%s:%s/rpc", host, mappedPort.Port()),
		Namespace: "test",
		Database:  "test",
		Username:  "root",
		Password:  "root",
		AuthLevel: "root",
	}, nil, testMetrics)
	if err != nil {
		log.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := testDB.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	code := m.Run()

	_ = testDB.Close(ctx)
	_ = testContainer.Terminate(ctx)

	os.Exit(code)
}

func testReport(id, idea string, created time.Time) *models.Report {
	return &models.Report{
		ID:    id,
		Idea:  idea,
		Stage: models.StageSnapshot,
		Analysis: models.AnalysisResult{
			FeasibilityScore:   7,
			SuccessProbability: 60,
			ProjectTitle:       models.ProjectTitle(idea),
		},
		Evidence: []models.EvidenceArticle{
			{Title: "Peer Learning at Scale", Source: "Computers & Education (2023)", URL: "https://example.org/p1"},
		},
		Tier:      "direct",
		CreatedAt: created.UTC().Truncate(time.Millisecond),
	}
}

func TestSaveAndGetReport(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, testDB.WipeData(ctx))

	in := testReport("abc12345", "Study group matcher", time.Now())
	require.NoError(t, testDB.SaveReport(ctx, in))

	got, err := testDB.GetReport(ctx, "abc12345")
	require.NoError(t, err)
	assert.Equal(t, "abc12345", got.ID)
	assert.Equal(t, in.Idea, got.Idea)
	assert.Equal(t, models.StageSnapshot, got.Stage)
	assert.Equal(t, 7, got.Analysis.FeasibilityScore)
	assert.Equal(t, 60, got.Analysis.SuccessProbability)
	assert.Equal(t, in.Analysis.ProjectTitle, got.Analysis.ProjectTitle)
	require.Len(t, got.Evidence, 1)
	assert.Equal(t, "Peer Learning at Scale", got.Evidence[0].Title)
	assert.Equal(t, "direct", got.Tier)
	assert.WithinDuration(t, in.CreatedAt, got.CreatedAt, time.Second)
}

func TestSaveReportDuplicateID(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, testDB.WipeData(ctx))

	require.NoError(t, testDB.SaveReport(ctx, testReport("dup00001", "First", time.Now())))
	err := testDB.SaveReport(ctx, testReport("dup00001", "Second", time.Now()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyExists), "got %v", err)
}

func TestGetReportNotFound(t *testing.T) {
	_, err := testDB.GetReport(context.Background(), "missing1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListReportsNewestFirst(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, testDB.WipeData(ctx))

	base := time.Now().Add(-time.Hour)
	require.NoError(t, testDB.SaveReport(ctx, testReport("old00001", "Old idea", base)))
	require.NoError(t, testDB.SaveReport(ctx, testReport("new00001", "New idea", base.Add(30*time.Minute))))
	require.NoError(t, testDB.SaveReport(ctx, testReport("mid00001", "Mid idea", base.Add(10*time.Minute))))

	reports, err := testDB.ListReports(ctx, 10)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, []string{"new00001", "mid00001", "old00001"},
		[]string{reports[0].ID, reports[1].ID, reports[2].ID})

	limited, err := testDB.ListReports(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestDeleteReport(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, testDB.WipeData(ctx))

	require.NoError(t, testDB.SaveReport(ctx, testReport("del00001", "Delete me", time.Now())))
	require.NoError(t, testDB.DeleteReport(ctx, "del00001"))

	_, err := testDB.GetReport(ctx, "del00001")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, testDB.DeleteReport(ctx, "del00001"), ErrNotFound)
}

func TestQueriesRecordMetrics(t *testing.T) {
	ctx := context.Background()
	_, err := testDB.ListReports(ctx, 1)
	require.NoError(t, err)
	before := testMetrics.Snapshot().DBQuery.Count

	_, _ = testDB.ListReports(ctx, 1)
	_, _ = testDB.GetReport(ctx, "metric01")

	assert.Equal(t, before+2, testMetrics.Snapshot().DBQuery.Count)
}
