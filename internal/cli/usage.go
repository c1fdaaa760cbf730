package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/ideascope/internal/metrics"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show server usage statistics",
	Long: `Show the ideascope server's runtime statistics: completion latency and
token usage, evidence and provider latency, repository searches and
database queries. Statistics are kept in memory since the last restart.

Examples:
  ideascope usage
  ideascope usage --format json`,
	Args: cobra.NoArgs,
	RunE: runUsage,
}

func runUsage(cmd *cobra.Command, args []string) error {
	stats, err := apiClient().Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("get server stats: %w", err)
	}

	return writeOutput(cmd.OutOrStdout(), stats, func(w io.Writer) {
		printServerStats(w, stats)
	})
}

// printServerStats displays server runtime statistics.
func printServerStats(w io.Writer, stats *metrics.Snapshot) {
	fmt.Fprintf(w, "Server Statistics (in-memory, since restart)\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════\n")
	fmt.Fprintf(w, "Uptime: %.1f seconds\n", stats.UptimeSeconds)

	if stats.Completion != nil {
		fmt.Fprintf(w, "\nCompletions:\n")
		printOpStats(w, stats.Completion)
		printTokenStats(w, stats.Completion)
	}

	if stats.Evidence != nil {
		fmt.Fprintf(w, "\nEvidence:\n")
		printOpStats(w, stats.Evidence)
	}

	if len(stats.Providers) > 0 {
		names := make([]string, 0, len(stats.Providers))
		for name := range stats.Providers {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "\nProvider %s:\n", name)
			printOpStats(w, stats.Providers[name])
		}
	}

	if stats.RepoSearch != nil {
		fmt.Fprintf(w, "\nRepository Search:\n")
		printOpStats(w, stats.RepoSearch)
	}

	if stats.DBQuery != nil {
		fmt.Fprintf(w, "\nDB Query:\n")
		printOpStats(w, stats.DBQuery)
	}
}

// printOpStats displays timing statistics for an operation.
func printOpStats(w io.Writer, op *metrics.OperationSnapshot) {
	fmt.Fprintf(w, "  Calls: %d, Failures: %d, Total: %dms\n", op.Count, op.Failures, op.TotalTimeMs)
	fmt.Fprintf(w, "  Time: avg %.1fms, min %dms, max %dms\n",
		op.AvgTimeMs, op.MinTimeMs, op.MaxTimeMs)
}

// printTokenStats displays token statistics if available.
func printTokenStats(w io.Writer, op *metrics.OperationSnapshot) {
	if op.TotalInputTokens == nil || op.TotalOutputTokens == nil {
		return
	}
	fmt.Fprintf(w, "  Tokens In:  %d total", *op.TotalInputTokens)
	if op.AvgInputTokens != nil {
		fmt.Fprintf(w, ", avg %.0f", *op.AvgInputTokens)
	}
	if op.MinInputTokens != nil && op.MaxInputTokens != nil {
		fmt.Fprintf(w, ", min %d, max %d", *op.MinInputTokens, *op.MaxInputTokens)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Tokens Out: %d total", *op.TotalOutputTokens)
	if op.AvgOutputTokens != nil {
		fmt.Fprintf(w, ", avg %.0f", *op.AvgOutputTokens)
	}
	if op.MinOutputTokens != nil && op.MaxOutputTokens != nil {
		fmt.Fprintf(w, ", min %d, max %d", *op.MinOutputTokens, *op.MaxOutputTokens)
	}
	fmt.Fprintln(w)
}
