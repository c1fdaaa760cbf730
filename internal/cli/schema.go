package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/ideascope/internal/models"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of an analysis result",
	Long: `Print the JSON schema describing the analysis object returned by
analyze, the HTTP API and the MCP tools.

Examples:
  ideascope schema > analysis.schema.json
  ideascope schema --format yaml`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

func runSchema(cmd *cobra.Command, args []string) error {
	schema := models.AnalysisSchema()

	// The schema is JSON either way; YAML output goes through a generic map
	// so key names follow the JSON tags.
	raw, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode schema: %w", err)
	}

	return writeOutput(cmd.OutOrStdout(), doc, func(w io.Writer) {
		out, _ := json.MarshalIndent(schema, "", "  ")
		fmt.Fprintln(w, string(out))
	})
}
