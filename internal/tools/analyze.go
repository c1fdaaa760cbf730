package tools

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/ideascope/internal/models"
	"github.com/raphaelgruber/ideascope/internal/recovery"
	"github.com/raphaelgruber/ideascope/internal/service"
)

// AnalyzeInput defines the input schema for the analyze_idea tool.
type AnalyzeInput struct {
	Idea     string `json:"idea" jsonschema:"required,Free-text description of the project idea"`
	Stage    string `json:"stage,omitempty" jsonschema:"stage1 (quick snapshot, default) or stage2 (executive summary)"`
	Fallback string `json:"fallback,omitempty" jsonschema:"Recovery policy when the model reply is unusable: allow (default), strict or force"`
	Evidence *bool  `json:"evidence,omitempty" jsonschema:"Collect supporting research papers, default true"`
	Save     bool   `json:"save,omitempty" jsonschema:"Store the report so it can be shared by ID"`
}

// NewAnalyzeHandler creates the analyze_idea tool handler.
func NewAnalyzeHandler(deps *Dependencies) mcp.ToolHandlerFor[AnalyzeInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(input.Idea) == "" {
			return ErrorResult("Idea cannot be empty", "Describe the project idea in a sentence or two"), nil, nil
		}

		request := service.Request{
			Idea:         input.Idea,
			Stage:        models.Stage(input.Stage),
			SkipEvidence: input.Evidence != nil && !*input.Evidence,
			Save:         input.Save,
		}
		if input.Fallback != "" {
			policy, err := recovery.ParsePolicy(input.Fallback)
			if err != nil {
				return ErrorResult("Invalid fallback policy", "Use allow, strict or force"), nil, nil
			}
			request.Policy = &policy
		}

		report, err := deps.Analyzer.Analyze(ctx, request)
		if err != nil {
			f := analysisFailure(err)
			if f.expected {
				deps.Logger.Warn("analysis rejected", "stage", input.Stage, "error", err)
			} else {
				deps.Logger.Error("analysis failed", "stage", input.Stage, "error", err)
			}
			return f.result(), nil, nil
		}

		deps.Logger.Info("analysis completed",
			"stage", report.Stage, "feasibility", report.Analysis.FeasibilityScore, "evidence", len(report.Evidence))
		return JSONResult(report), nil, nil
	}
}
