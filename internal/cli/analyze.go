package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/raphaelgruber/ideascope/internal/http/dto"
	"github.com/raphaelgruber/ideascope/internal/models"
	"github.com/raphaelgruber/ideascope/internal/recovery"
	"github.com/raphaelgruber/ideascope/internal/service"
)

var (
	analyzeStage      string
	analyzeNoEvidence bool
	analyzeFallback   string
	analyzeSave       bool
	analyzeRemote     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <idea>",
	Short: "Analyze the feasibility of a project idea",
	Long: `Analyze a project idea and print a structured feasibility report.

stage1 is a quick snapshot; stage2 adds an executive summary, honest
feedback and quick wins. Research evidence is gathered in parallel unless
--no-evidence is set.

--fallback controls the last-resort synthesized analysis used when the
model's answer cannot be parsed: allow (default), strict (fail instead)
or force (always synthesize).

Examples:
  ideascope analyze "A mobile app that helps students find study groups"
  ideascope analyze "A crypto wallet for kids" --stage stage2
  ideascope analyze "A budgeting tool" --fallback strict --format json
  ideascope analyze "A recipe planner" --remote --save`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeStage, "stage", "s", string(models.StageSnapshot), "analysis stage: stage1 or stage2")
	analyzeCmd.Flags().BoolVar(&analyzeNoEvidence, "no-evidence", false, "skip research evidence")
	analyzeCmd.Flags().StringVar(&analyzeFallback, "fallback", "", "recovery policy: allow, strict or force (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "store the report for sharing")
	analyzeCmd.Flags().BoolVar(&analyzeRemote, "remote", false, "run on the ideascope server")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	idea := strings.TrimSpace(strings.Join(args, " "))
	if idea == "" {
		return service.ErrEmptyIdea
	}

	stage := models.Stage(analyzeStage)
	if !stage.Valid() {
		return fmt.Errorf("invalid stage %q: must be stage1 or stage2", analyzeStage)
	}

	var policy *recovery.Policy
	if analyzeFallback != "" {
		p, err := recovery.ParsePolicy(analyzeFallback)
		if err != nil {
			return err
		}
		policy = &p
	}

	var run analysisRunner
	var shareURL shareFunc
	if analyzeRemote {
		run, shareURL = remoteAnalysis(idea, stage)
	} else {
		var err error
		run, shareURL, err = localAnalysis(ctx, idea, stage, policy)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	var report *models.Report
	var err error
	if f, _ := parseFormat(outputFormat); f == formatText && isTerminal(out) {
		report, err = runWithProgress(ctx, idea, run)
	} else {
		report, err = run(ctx, func(string) {})
	}
	if err != nil {
		return describeAnalysisError(err)
	}

	share := shareURL(ctx, report)
	return writeOutput(out, dto.ReportResponse{Report: report, ShareURL: share}, func(w io.Writer) {
		printReport(w, report, share)
	})
}

// shareFunc returns the share link of a stored report, or "".
type shareFunc func(ctx context.Context, r *models.Report) string

func localAnalysis(ctx context.Context, idea string, stage models.Stage, policy *recovery.Policy) (analysisRunner, shareFunc, error) {
	a, err := getApp(ctx)
	if err != nil {
		return nil, nil, err
	}
	if analyzeSave && a.Reports == nil {
		return nil, nil, errors.New("saving reports locally requires IDEASCOPE_DB_ENABLED=true; use --remote to save on the server")
	}

	run := func(ctx context.Context, onState func(string)) (*models.Report, error) {
		return a.Orchestrator.Analyze(ctx, service.Request{
			Idea:         idea,
			Stage:        stage,
			Policy:       policy,
			SkipEvidence: analyzeNoEvidence,
			Save:         analyzeSave,
			Observer:     func(s service.State) { onState(string(s)) },
		})
	}
	share := func(_ context.Context, r *models.Report) string {
		if a.Reports == nil || r.ID == "" {
			return ""
		}
		return a.Reports.ShareURL(r.ID)
	}
	return run, share, nil
}

func remoteAnalysis(idea string, stage models.Stage) (analysisRunner, shareFunc) {
	c := apiClient()
	run := func(ctx context.Context, onState func(string)) (*models.Report, error) {
		return c.StreamAnalysis(ctx, dto.AnalyzeRequest{
			Idea:         idea,
			Stage:        string(stage),
			Fallback:     analyzeFallback,
			SkipEvidence: analyzeNoEvidence,
			Save:         analyzeSave,
		}, func(state string) error {
			onState(state)
			return nil
		})
	}
	// The stream carries no share link; the stored copy does.
	share := func(ctx context.Context, r *models.Report) string {
		if r.ID == "" {
			return ""
		}
		stored, err := c.GetReport(ctx, r.ID)
		if err != nil {
			logger.Debug("share link unavailable", "id", r.ID, "error", err)
			return ""
		}
		return stored.ShareURL
	}
	return run, share
}

// describeAnalysisError adds a hint to the errors a user can act on.
func describeAnalysisError(err error) error {
	switch {
	case errors.Is(err, service.ErrTransport):
		return fmt.Errorf("%w (is the completion model reachable? check IDEASCOPE_LLM_PROVIDER)", err)
	case errors.Is(err, service.ErrRecovery):
		return fmt.Errorf("%w (retry, or use --fallback allow)", err)
	default:
		return err
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
