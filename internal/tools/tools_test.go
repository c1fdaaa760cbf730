//go:build integration

package tools_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/ideascope/internal/models"
	"github.com/raphaelgruber/ideascope/internal/service"
	"github.com/raphaelgruber/ideascope/internal/tools"
)

// testLogger creates a logger for test visibility.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type cannedCompleter struct{}

func (cannedCompleter) Complete(context.Context, string, float64) (string, error) {
	return `{"feasibilityScore": 8, "successProbability": 70, "difficultyLevel": "Beginner"}`, nil
}

type cannedEvidence struct{}

func (cannedEvidence) FetchEvidence(context.Context, string) []models.EvidenceArticle {
	return []models.EvidenceArticle{{Title: "Study Groups and Retention", Source: "OpenAlex (2021)"}}
}

func TestToolsOverInMemoryTransport(t *testing.T) {
	logger := testLogger()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "test-ideascope",
		Version: "0.0.1-test",
	}, nil)

	reports := service.NewReportService(service.NewMemoryStore(), "http://localhost:8484")
	deps := &tools.Dependencies{
		Analyzer: service.NewOrchestrator(cannedCompleter{}, cannedEvidence{}, service.Options{Reports: reports, Logger: logger}),
		Evidence: cannedEvidence{},
		Reports:  reports,
		Logger:   logger,
	}
	tools.RegisterAll(server, deps)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Run(ctx, serverTransport)
	}()

	// Give server time to start
	time.Sleep(50 * time.Millisecond)

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err, "client should connect successfully")
	defer session.Close()

	t.Run("tools/list returns all tools", func(t *testing.T) {
		result, err := session.ListTools(ctx, nil)
		require.NoError(t, err)
		require.Len(t, result.Tools, 6)

		names := make([]string, len(result.Tools))
		for i, tool := range result.Tools {
			names[i] = tool.Name
		}
		for _, want := range []string{"ping", "analyze_idea", "fetch_evidence", "classify_idea", "search_repositories", "get_report"} {
			assert.Contains(t, names, want)
		}
	})

	t.Run("ping reports capabilities", func(t *testing.T) {
		result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "ping", Arguments: map[string]any{}})
		require.NoError(t, err)
		require.Len(t, result.Content, 1)
		assert.False(t, result.IsError)
		text := result.Content[0].(*mcp.TextContent).Text
		assert.Contains(t, text, `"status": "pong"`)
		assert.Contains(t, text, `"reportHistory": true`)
		assert.Contains(t, text, `"repositories": false`)
	})

	t.Run("analyze_idea with save", func(t *testing.T) {
		result, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "analyze_idea",
			Arguments: map[string]any{"idea": "A simple todo app", "save": true},
		})
		require.NoError(t, err)
		assert.False(t, result.IsError)
		text := result.Content[0].(*mcp.TextContent).Text
		assert.Contains(t, text, `"feasibilityScore": 10`)
		assert.Contains(t, text, "Study Groups and Retention")

		listed, err := reports.List(ctx, 10)
		require.NoError(t, err)
		require.Len(t, listed, 1)

		got, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "get_report",
			Arguments: map[string]any{"id": listed[0].ID},
		})
		require.NoError(t, err)
		assert.False(t, got.IsError)
	})

	t.Run("analyze_idea rejects empty idea", func(t *testing.T) {
		result, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "analyze_idea",
			Arguments: map[string]any{"idea": "  "},
		})
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})

	cancel()

	select {
	case err := <-serverErr:
		if err != nil {
			t.Logf("server stopped with: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("server did not stop within timeout")
	}
}
