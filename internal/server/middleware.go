package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/ideascope/internal/models"
)

// maxParamsLogLen caps the logged request parameters; ideas can be long.
const maxParamsLogLen = 200

// SlowRequestThreshold is the duration above which requests are logged at
// WARN level. Analyses wait on a model, so the bar sits well above a lookup.
const SlowRequestThreshold = 5 * time.Second

// LoggingMiddleware logs every MCP request with its latency. Tool calls that
// return an error result are logged at WARN, transport errors at ERROR.
func LoggingMiddleware(logger *slog.Logger) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			start := time.Now()
			result, err := next(ctx, method, req)
			elapsed := time.Since(start)

			attrs := requestAttrs(method, req, elapsed)
			switch {
			case err != nil:
				logger.ErrorContext(ctx, "request failed", append(attrs, "error", err.Error())...)
			case isToolError(result):
				logger.WarnContext(ctx, "tool returned error", attrs...)
			case elapsed > SlowRequestThreshold:
				logger.WarnContext(ctx, "slow request", attrs...)
			default:
				logger.DebugContext(ctx, "request completed", attrs...)
			}
			return result, err
		}
	}
}

func requestAttrs(method string, req mcp.Request, elapsed time.Duration) []any {
	attrs := []any{"method", method, "duration_ms", elapsed.Milliseconds()}
	if r, ok := req.(*mcp.CallToolRequest); ok && r.Params != nil {
		attrs = append(attrs, "tool", r.Params.Name)
	}
	if params := paramsJSON(req); params != "" {
		attrs = append(attrs, "params", models.Truncate(params, maxParamsLogLen))
	}
	return attrs
}

func isToolError(result mcp.Result) bool {
	r, ok := result.(*mcp.CallToolResult)
	return ok && r != nil && r.IsError
}

// paramsJSON renders the request parameters, or "" when there are none.
func paramsJSON(req mcp.Request) string {
	if req == nil {
		return ""
	}
	params := req.GetParams()
	if params == nil {
		return ""
	}
	data, err := json.Marshal(params)
	if err != nil {
		return ""
	}
	return string(data)
}
