// Command ideascope-server serves the ideascope HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/raphaelgruber/ideascope/internal/app"
	"github.com/raphaelgruber/ideascope/internal/config"
	"github.com/raphaelgruber/ideascope/internal/http/router"
)

const shutdownTimeout = 10 * time.Second

func main() {
	wipe := flag.Bool("wipe", os.Getenv("IDEASCOPE_WIPE_DB") == "true", "delete all stored reports on startup (testing only)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := config.SetupLogger(cfg.Output())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, logger, *wipe)
	stop()
	if err != nil {
		logger.Error("server exited", "error", err)
	}
	_ = closeLog()
	if err != nil {
		os.Exit(1)
	}
}

// run serves HTTP until ctx is cancelled, then drains in-flight requests.
func run(ctx context.Context, cfg config.Config, logger *slog.Logger, wipe bool) error {
	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	a, err := app.New(initCtx, cfg, app.HistoryMemory, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			logger.Warn("close services", "error", err)
		}
	}()

	if wipe {
		if err := a.WipeData(initCtx); err != nil {
			return err
		}
	}

	if cfg.LogLevel > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:        cfg.HTTPAddr,
		Handler:     router.New(a.Services()),
		ReadTimeout: 5 * time.Second,
		// Stage 2 analyses hold the response open for a full completion.
		WriteTimeout: cfg.CompletionTimeout + 30*time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", cfg.HTTPAddr, "api", cfg.PublicURL+"/api", "provider", cfg.LLMProvider)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
