package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/ideascope/internal/app"
	"github.com/raphaelgruber/ideascope/internal/github"
)

var reposCmd = &cobra.Command{
	Use:   "repos <query>",
	Short: "Find similar projects on GitHub",
	Long: `Search public GitHub repositories, most starred first.

Set GITHUB_TOKEN for a higher rate limit.

Examples:
  ideascope repos "study group finder"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRepos,
}

func runRepos(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	repos, err := app.NewRepos(cfg, nil).SearchRepositories(cmd.Context(), query)
	if err != nil {
		var apiErr *github.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden {
			return fmt.Errorf("%w (set GITHUB_TOKEN to raise the rate limit)", err)
		}
		return err
	}

	return writeOutput(cmd.OutOrStdout(), repos, func(w io.Writer) {
		printRepositories(w, repos)
	})
}
