package tools

import (
	"encoding/json"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/ideascope/internal/prompt"
	"github.com/raphaelgruber/ideascope/internal/service"
)

// ErrorResult returns an IsError result the calling model can act on.
// A non-empty hint is appended as "{msg}. {hint}".
func ErrorResult(msg, hint string) *mcp.CallToolResult {
	if hint != "" {
		msg += ". " + hint
	}
	r := TextResult(msg)
	r.IsError = true
	return r
}

// TextResult wraps text in a successful result.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}

// JSONResult renders v as indented JSON.
func JSONResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ErrorResult("Failed to encode result", err.Error())
	}
	return TextResult(string(data))
}

// failure is a tool error message with its recovery hint.
type failure struct {
	msg  string
	hint string
	// expected failures are logged at warn, the rest at error.
	expected bool
}

func (f failure) result() *mcp.CallToolResult {
	return ErrorResult(f.msg, f.hint)
}

// analysisFailure maps an orchestrator error onto the message shown to the model.
func analysisFailure(err error) failure {
	switch {
	case errors.Is(err, service.ErrEmptyIdea):
		return failure{"Idea cannot be empty", "Describe the project idea in a sentence or two", true}
	case errors.Is(err, prompt.ErrUnknownStage):
		return failure{"Unknown stage", "Use stage1 or stage2", true}
	case errors.Is(err, service.ErrTransport):
		return failure{"Completion service unavailable", "Check the LLM provider configuration and retry", false}
	case errors.Is(err, service.ErrRecovery):
		return failure{"Could not parse the model response", "Retry, or use fallback=allow", true}
	default:
		return failure{"Analysis failed", "", false}
	}
}
