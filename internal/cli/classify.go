package cli

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/ideascope/internal/classify"
	"github.com/raphaelgruber/ideascope/internal/service"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <idea>",
	Short: "Show the detected domain and keywords of an idea",
	Long: `Classify an idea against the keyword taxonomy without calling any
external service.

Examples:
  ideascope classify "A mobile app that helps students find study groups"
  ideascope classify "A crypto wallet" --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	idea := strings.TrimSpace(strings.Join(args, " "))
	if idea == "" {
		return service.ErrEmptyIdea
	}

	c := classify.Classify(idea)
	return writeOutput(cmd.OutOrStdout(), c, func(w io.Writer) {
		printClassification(w, c)
	})
}
