// Package app wires configuration into the analysis services.
// It serves as dependency injection for the binaries.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/raphaelgruber/ideascope/internal/config"
	"github.com/raphaelgruber/ideascope/internal/db"
	"github.com/raphaelgruber/ideascope/internal/evidence"
	"github.com/raphaelgruber/ideascope/internal/github"
	"github.com/raphaelgruber/ideascope/internal/http/router"
	"github.com/raphaelgruber/ideascope/internal/llm"
	"github.com/raphaelgruber/ideascope/internal/metrics"
	"github.com/raphaelgruber/ideascope/internal/models"
	"github.com/raphaelgruber/ideascope/internal/recovery"
	"github.com/raphaelgruber/ideascope/internal/scholar"
	"github.com/raphaelgruber/ideascope/internal/service"
	"github.com/raphaelgruber/ideascope/internal/tools"
)

// History selects where completed reports are kept.
type History int

const (
	// HistoryNone disables report history unless SurrealDB is enabled.
	HistoryNone History = iota
	// HistoryMemory keeps reports in process memory unless SurrealDB is enabled.
	HistoryMemory
)

// App holds every service built from one configuration.
type App struct {
	Config       config.Config
	Metrics      *metrics.Collector
	Model        *llm.Model
	Evidence     *evidence.Aggregator
	Repos        *github.Client
	Reports      *service.ReportService // nil when history is disabled
	Orchestrator *service.Orchestrator
	Refiner      *service.RefineService

	db     *db.Client
	logger *slog.Logger
}

// New connects to the report store and creates the completion model and
// evidence pipeline.
func New(ctx context.Context, cfg config.Config, history History, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	mc := metrics.NewCollector()

	a := &App{
		Config:   cfg,
		Metrics:  mc,
		Evidence: NewEvidence(cfg, mc, logger),
		Repos:    NewRepos(cfg, mc),
		logger:   logger,
	}

	var store service.Store
	switch {
	case cfg.DBEnabled:
		dbClient, err := db.NewClient(ctx, db.Config{
			URL:       cfg.SurrealDBURL,
			Namespace: cfg.SurrealDBNamespace,
			Database:  cfg.SurrealDBDatabase,
			Username:  cfg.SurrealDBUser,
			Password:  cfg.SurrealDBPass,
			AuthLevel: cfg.SurrealDBAuthLevel,
		}, logger, mc)
		if err != nil {
			return nil, err
		}
		if err := dbClient.InitSchema(ctx); err != nil {
			_ = dbClient.Close(ctx)
			return nil, err
		}
		a.db = dbClient
		store = dbClient
	case history == HistoryMemory:
		store = service.NewMemoryStore()
	}
	if store != nil {
		a.Reports = service.NewReportService(store, cfg.PublicURL)
	}

	model, err := llm.NewModel(ctx, cfg, mc)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	a.Model = model

	a.Orchestrator = service.NewOrchestrator(model, a.Evidence, service.Options{
		Temperature:       cfg.Temperature,
		CompletionTimeout: cfg.CompletionTimeout,
		Policies: map[models.Stage]recovery.Policy{
			models.StageSnapshot:  cfg.SnapshotPolicy,
			models.StageExecutive: cfg.ExecutivePolicy,
		},
		Reports: a.Reports,
		Logger:  logger,
	})
	a.Refiner = service.NewRefineService(model, cfg.Temperature)

	logger.Info("services initialized",
		"llm_provider", cfg.LLMProvider,
		"llm_model", model.Model(),
		"history", a.Reports != nil,
		"surrealdb", cfg.DBEnabled,
	)
	return a, nil
}

// Close closes the database connection when one is open.
func (a *App) Close(ctx context.Context) error {
	if a.db != nil {
		return a.db.Close(ctx)
	}
	return nil
}

// WipeData deletes all stored reports. Use for testing only.
func (a *App) WipeData(ctx context.Context) error {
	if a.db == nil {
		return fmt.Errorf("wipe data: surrealdb is not enabled")
	}
	return a.db.WipeData(ctx)
}

// Services returns the HTTP API collaborators.
func (a *App) Services() router.Services {
	return router.Services{
		Analyzer: a.Orchestrator,
		Evidence: a.Evidence,
		Refiner:  a.Refiner,
		Repos:    a.Repos,
		Reports:  a.Reports,
		Metrics:  a.Metrics,
	}
}

// ToolDependencies returns the MCP tool collaborators.
func (a *App) ToolDependencies() *tools.Dependencies {
	return &tools.Dependencies{
		Analyzer: a.Orchestrator,
		Evidence: a.Evidence,
		Repos:    a.Repos,
		Reports:  a.Reports,
		Logger:   a.logger,
	}
}

// NewEvidence builds the evidence aggregator: Semantic Scholar first, then
// OpenAlex, with arXiv as a supplement when enabled. Every provider is
// wrapped in a result cache.
func NewEvidence(cfg config.Config, mc *metrics.Collector, logger *slog.Logger) *evidence.Aggregator {
	scfg := ScholarConfig(cfg)
	cached := func(p scholar.Provider) scholar.Provider {
		if cfg.CacheSize <= 0 {
			return p
		}
		return scholar.NewCached(p, cfg.CacheSize, cfg.CacheTTL)
	}

	opts := evidence.Options{
		CallTimeout: cfg.ProviderTimeout,
		Concurrency: cfg.ProviderConcurrency,
		Metrics:     mc,
	}
	if cfg.ArxivEnabled {
		opts.Supplement = cached(scholar.NewArxiv(scfg))
		logger.Debug("arxiv supplement enabled", "url", cfg.ArxivURL)
	}

	return evidence.New(
		cached(scholar.NewSemanticScholar(scfg)),
		cached(scholar.NewOpenAlex(scfg)),
		opts,
	)
}

// NewProvider builds a single uncached search provider by name.
func NewProvider(name string, cfg config.Config) (scholar.Provider, error) {
	return scholar.New(name, ScholarConfig(cfg))
}

// ScholarConfig extracts the provider settings from cfg.
func ScholarConfig(cfg config.Config) scholar.Config {
	return scholar.Config{
		SemanticScholarURL: cfg.SemanticScholarURL,
		SemanticScholarKey: cfg.SemanticScholarKey,
		OpenAlexURL:        cfg.OpenAlexURL,
		OpenAlexMailto:     cfg.OpenAlexMailto,
		ArxivURL:           cfg.ArxivURL,
		UserAgent:          cfg.UserAgent,
		HTTPClient:         &http.Client{},
	}
}

// NewRepos builds the GitHub search client.
func NewRepos(cfg config.Config, mc *metrics.Collector) *github.Client {
	opts := []github.Option{
		github.WithBaseURL(cfg.GitHubURL),
		github.WithMetrics(mc),
	}
	if cfg.GitHubToken != "" {
		opts = append(opts, github.WithToken(cfg.GitHubToken))
	}
	return github.NewClient(opts...)
}
