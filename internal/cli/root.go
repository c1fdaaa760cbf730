// Package cli provides the command-line interface for ideascope.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/ideascope/internal/app"
	"github.com/raphaelgruber/ideascope/internal/client"
	"github.com/raphaelgruber/ideascope/internal/config"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose      bool
	outputFormat string

	// Global config and logger
	cfg           config.Config
	logger        *slog.Logger
	loggerCleanup func() error

	// Lazy-initialized services
	application *app.App
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ideascope",
	Short: "Feasibility analysis for project ideas",
	Long: `Ideascope turns a free-text project idea into a structured feasibility
report: scores, difficulty, timeline, tech stack, roadmap and
recommendations, backed by research articles from scholarly search engines.

Analyses run locally against the configured completion model, or on an
ideascope server with --remote.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		if _, err := parseFormat(outputFormat); err != nil {
			return err
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		// The log file keeps the configured level; stderr stays quiet unless -v.
		out := cfg.Output()
		if !verbose {
			out.Terminal = slog.LevelWarn
		}
		logger, loggerCleanup = config.SetupLogger(out)
		slog.SetDefault(logger)
		return nil
	},
}

// getApp creates the analysis services on first use. Commands that only
// classify or search never touch the completion model.
func getApp(ctx context.Context) (*app.App, error) {
	if application == nil {
		a, err := app.New(ctx, cfg, app.HistoryNone, logger)
		if err != nil {
			return nil, fmt.Errorf("init services: %w", err)
		}
		application = a
	}
	return application, nil
}

// apiClient returns a client for the configured ideascope server.
func apiClient() *client.Client {
	return client.New(cfg.ServerURL, cfg.ClientTimeout)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	defer closeResources()
	return rootCmd.Execute()
}

// closeResources closes the services and the log file. Cobra skips post-run
// hooks when a command fails, so this runs from Execute instead.
func closeResources() {
	if application != nil {
		if err := application.Close(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
		}
		application = nil
	}
	if loggerCleanup != nil {
		_ = loggerCleanup()
		loggerCleanup = nil
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", string(formatText), "output format: text, json or yaml")

	// Add subcommands
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(evidenceCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(reposCmd)
	rootCmd.AddCommand(refineCmd)
	rootCmd.AddCommand(reportsCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(usageCmd)
}
