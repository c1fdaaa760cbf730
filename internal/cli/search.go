package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/ideascope/internal/app"
	"github.com/raphaelgruber/ideascope/internal/scholar"
)

var (
	searchProvider string
	searchLimit    int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search a single scholarly provider",
	Long: `Run a raw query against one search provider, bypassing the evidence
cascade and its cache. Useful to check provider reachability.

Providers: ` + strings.Join(scholar.Names(), ", ") + `

Examples:
  ideascope search "collaborative learning"
  ideascope search "federated learning" --provider arxiv --limit 10`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchProvider, "provider", "p", scholar.ProviderOpenAlex, "search provider")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "max results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	provider, err := app.NewProvider(searchProvider, cfg)
	if err != nil {
		return err
	}

	papers, err := provider.Search(cmd.Context(), scholar.Query{Text: query, Limit: searchLimit})
	if err != nil {
		return fmt.Errorf("search %s: %w", provider.Name(), err)
	}

	return writeOutput(cmd.OutOrStdout(), papers, func(w io.Writer) {
		printPapers(w, papers)
	})
}
