package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/ideascope/internal/client"
	"github.com/raphaelgruber/ideascope/internal/http/dto"
)

var reportsLimit int

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List, show or delete stored reports",
	Long: `Manage the reports stored on the ideascope server.

Subcommands:
  list    List the newest reports (default)
  show    Print a stored report
  delete  Delete a stored report

Examples:
  ideascope reports
  ideascope reports list --limit 5
  ideascope reports show 1a2b3c4d
  ideascope reports delete 1a2b3c4d`,
	RunE: runReportsList,
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the newest reports",
	RunE:  runReportsList,
}

var reportsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportsShow,
}

var reportsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportsDelete,
}

func init() {
	reportsCmd.Flags().IntVarP(&reportsLimit, "limit", "n", 20, "max results")
	reportsListCmd.Flags().IntVarP(&reportsLimit, "limit", "n", 20, "max results")

	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsShowCmd)
	reportsCmd.AddCommand(reportsDeleteCmd)
}

func runReportsList(cmd *cobra.Command, args []string) error {
	summaries, err := apiClient().ListReports(cmd.Context(), reportsLimit)
	if err != nil {
		return fmt.Errorf("list reports: %w", err)
	}

	return writeOutput(cmd.OutOrStdout(), dto.ReportListResponse{Reports: summaries}, func(w io.Writer) {
		if len(summaries) == 0 {
			fmt.Fprintln(w, "No reports stored.")
			return
		}
		fmt.Fprintf(w, "Reports (%d):\n\n", len(summaries))
		for _, s := range summaries {
			fmt.Fprintf(w, "- %s [%s] %s\n", s.ID, s.Stage, s.ProjectTitle)
			fmt.Fprintf(w, "  Feasibility %d/10, created %s\n", s.FeasibilityScore,
				s.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
	})
}

func runReportsShow(cmd *cobra.Command, args []string) error {
	resp, err := apiClient().GetReport(cmd.Context(), args[0])
	if err != nil {
		return reportError(args[0], err)
	}

	return writeOutput(cmd.OutOrStdout(), resp, func(w io.Writer) {
		printReport(w, resp.Report, resp.ShareURL)
	})
}

func runReportsDelete(cmd *cobra.Command, args []string) error {
	if err := apiClient().DeleteReport(cmd.Context(), args[0]); err != nil {
		return reportError(args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted report %s\n", args[0])
	return nil
}

func reportError(id string, err error) error {
	if errors.Is(err, client.ErrNotFound) {
		return fmt.Errorf("report %s not found", id)
	}
	return fmt.Errorf("report %s: %w", id, err)
}
