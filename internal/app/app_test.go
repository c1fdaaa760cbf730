package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/ideascope/internal/config"
	"github.com/raphaelgruber/ideascope/internal/metrics"
	"github.com/raphaelgruber/ideascope/internal/scholar"
)

func testConfig() config.Config {
	return config.Config{
		LLMProvider:         config.ProviderOllama,
		LLMModel:            "llama3.2",
		OllamaHost:          "http://127.0.0.1:1",
		Temperature:         0.2,
		CompletionTimeout:   time.Second,
		ProviderTimeout:     time.Second,
		ProviderConcurrency: 1,
		CacheSize:           8,
		CacheTTL:            time.Minute,
		PublicURL:           "http://ideas.test",
	}
}

func TestNewHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		a, err := New(ctx, testConfig(), HistoryMemory, nil)
		require.NoError(t, err)
		defer a.Close(ctx)

		require.NotNil(t, a.Reports)
		assert.Equal(t, "http://ideas.test/reports/abc", a.Reports.ShareURL("abc"))
		assert.NotNil(t, a.Orchestrator)
		assert.NotNil(t, a.Refiner)
		assert.Equal(t, "llama3.2", a.Model.Model())
	})

	t.Run("none", func(t *testing.T) {
		a, err := New(ctx, testConfig(), HistoryNone, nil)
		require.NoError(t, err)
		defer a.Close(ctx)

		assert.Nil(t, a.Reports)
		assert.Nil(t, a.Services().Reports)
		assert.Nil(t, a.ToolDependencies().Reports)
		assert.Error(t, a.WipeData(ctx))
	})

	t.Run("model error", func(t *testing.T) {
		cfg := testConfig()
		cfg.LLMProvider = config.ProviderOpenAI
		_, err := New(ctx, cfg, HistoryMemory, nil)
		assert.Error(t, err)
	})
}

func TestNewProvider(t *testing.T) {
	for _, name := range scholar.Names() {
		p, err := NewProvider(name, testConfig())
		require.NoError(t, err)
		assert.Equal(t, name, p.Name())
	}

	_, err := NewProvider("scopus", testConfig())
	assert.ErrorIs(t, err, scholar.ErrUnknownProvider)
}

func TestNewEvidenceUsesConfiguredProviders(t *testing.T) {
	var openAlexCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/paper/search"):
			w.WriteHeader(http.StatusServiceUnavailable)
		case strings.HasSuffix(r.URL.Path, "/works"):
			openAlexCalls++
			_ = json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.SemanticScholarURL = srv.URL
	cfg.OpenAlexURL = srv.URL
	mc := metrics.NewCollector()

	articles := NewEvidence(cfg, mc, nil).FetchEvidence(context.Background(), "A budgeting app for students")
	require.Len(t, articles, 1)
	assert.Greater(t, openAlexCalls, 0)

	snap := mc.Snapshot()
	require.NotNil(t, snap.Evidence)
	assert.Contains(t, snap.Providers, scholar.ProviderSemanticScholar)
	assert.Contains(t, snap.Providers, scholar.ProviderOpenAlex)
}

func TestNewRepos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token ghp_x", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.GitHubURL = srv.URL
	cfg.GitHubToken = "ghp_x"
	mc := metrics.NewCollector()

	_, err := NewRepos(cfg, mc).SearchRepositories(context.Background(), "budget")
	require.NoError(t, err)
	require.NotNil(t, mc.Snapshot().RepoSearch)
}
