package cli

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/ideascope/internal/app"
	"github.com/raphaelgruber/ideascope/internal/models"
	"github.com/raphaelgruber/ideascope/internal/service"
)

var evidenceRemote bool

var evidenceCmd = &cobra.Command{
	Use:   "evidence <idea>",
	Short: "Gather research articles supporting an idea",
	Long: `Search Semantic Scholar and OpenAlex for research related to an idea.

At most four articles are returned. When every provider fails a single
synthesized article pointing at a scholar search is shown instead.

Examples:
  ideascope evidence "A mobile app that helps students find study groups"
  ideascope evidence "Telemedicine for rural clinics" --remote`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEvidence,
}

func init() {
	evidenceCmd.Flags().BoolVar(&evidenceRemote, "remote", false, "search through the ideascope server")
}

func runEvidence(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	idea := strings.TrimSpace(strings.Join(args, " "))
	if idea == "" {
		return service.ErrEmptyIdea
	}

	articles, err := fetchEvidence(ctx, idea)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), articles, func(w io.Writer) {
		printArticles(w, articles)
	})
}

func fetchEvidence(ctx context.Context, idea string) ([]models.EvidenceArticle, error) {
	if evidenceRemote {
		return apiClient().ResearchPapers(ctx, idea)
	}
	// Evidence needs no completion model.
	return app.NewEvidence(cfg, nil, logger).FetchEvidence(ctx, idea), nil
}
