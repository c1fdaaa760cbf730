package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/ideascope/internal/http/dto"
	"github.com/raphaelgruber/ideascope/internal/models"
	"github.com/raphaelgruber/ideascope/internal/service"
)

var (
	refineReport string
	refineRemote bool
)

var refineCmd = &cobra.Command{
	Use:   "refine [idea]",
	Short: "Suggest ways to sharpen a project idea",
	Long: `Suggest 5 to 7 concrete refinements for an idea.

The idea is first analyzed as a quick snapshot without evidence. With
--report the analysis of a stored report on the server is used instead.

Examples:
  ideascope refine "A mobile app that helps students find study groups"
  ideascope refine --report 1a2b3c4d`,
	RunE: runRefine,
}

func init() {
	refineCmd.Flags().StringVar(&refineReport, "report", "", "refine a stored report by ID (uses the server)")
	refineCmd.Flags().BoolVar(&refineRemote, "remote", false, "run on the ideascope server")
}

func runRefine(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	idea := strings.TrimSpace(strings.Join(args, " "))

	var suggestions []string
	var err error
	switch {
	case refineReport != "":
		suggestions, err = refineStored(ctx, refineReport)
	case idea == "":
		return service.ErrEmptyIdea
	case refineRemote:
		suggestions, err = refineOnServer(ctx, idea)
	default:
		suggestions, err = refineLocally(ctx, idea)
	}
	if err != nil {
		return describeAnalysisError(err)
	}

	return writeOutput(cmd.OutOrStdout(), dto.RefineResponse{Suggestions: suggestions}, func(w io.Writer) {
		printSection(w, "Suggestions")
		for i, s := range suggestions {
			fmt.Fprintf(w, "%d. %s\n", i+1, s)
		}
	})
}

func refineLocally(ctx context.Context, idea string) ([]string, error) {
	a, err := getApp(ctx)
	if err != nil {
		return nil, err
	}

	report, err := a.Orchestrator.Analyze(ctx, service.Request{Idea: idea, SkipEvidence: true})
	if err != nil {
		return nil, err
	}
	return a.Refiner.Suggest(ctx, report.Analysis, report.Analysis.ProjectTitle, report.Analysis.ProjectDescription)
}

func refineOnServer(ctx context.Context, idea string) ([]string, error) {
	c := apiClient()
	resp, err := c.Analyze(ctx, dto.AnalyzeRequest{Idea: idea, SkipEvidence: true})
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	return c.Refine(ctx, refineRequest(resp.Report))
}

func refineStored(ctx context.Context, id string) ([]string, error) {
	c := apiClient()
	resp, err := c.GetReport(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	return c.Refine(ctx, refineRequest(resp.Report))
}

func refineRequest(r *models.Report) dto.RefineRequest {
	return dto.RefineRequest{
		Analysis:           r.Analysis,
		ProjectTitle:       r.Analysis.ProjectTitle,
		ProjectDescription: r.Idea,
	}
}
