// Command ideascope-mcp exposes the analysis pipeline as MCP tools over stdio.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raphaelgruber/ideascope/internal/app"
	"github.com/raphaelgruber/ideascope/internal/config"
	"github.com/raphaelgruber/ideascope/internal/server"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// stdout carries the protocol, so logs only go to stderr and the file.
	logger, closeLog := config.SetupLogger(cfg.Output())
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("ideascope-mcp starting",
		"version", version,
		"llm_provider", cfg.LLMProvider,
		"surrealdb_enabled", cfg.DBEnabled,
	)

	// Reports live in memory for the session unless SurrealDB is enabled.
	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	a, err := app.New(initCtx, cfg, app.HistoryMemory, logger)
	cancel()
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}
	defer a.Close(context.Background())

	if err := server.New(version, logger, a.ToolDependencies()).Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("serve: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}
