// Package client provides a REST and websocket client for the ideascope server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/raphaelgruber/ideascope/internal/http/dto"
	"github.com/raphaelgruber/ideascope/internal/metrics"
	"github.com/raphaelgruber/ideascope/internal/models"
)

const (
	// DefaultEndpoint is used when no server URL is configured.
	DefaultEndpoint = "http://localhost:8484"
	// DefaultTimeout bounds a single request; analyses wait on a model.
	DefaultTimeout = 2 * time.Minute
)

// ErrNotFound is returned when the server answers 404.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response carrying the server's {"error": msg} body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error: %d %s", e.StatusCode, e.Message)
}

// Is lets errors.Is match ErrNotFound for 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client talks to the ideascope HTTP API.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// New creates a client. Empty endpoint and non-positive timeout select defaults.
func New(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// do sends body as JSON to path and decodes the response into result.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp dto.ErrorResponse
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}

	if result != nil && len(data) > 0 {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// =============================================================================
// ANALYSIS
// =============================================================================

// Analyze runs an analysis on the server.
func (c *Client) Analyze(ctx context.Context, req dto.AnalyzeRequest) (*dto.ReportResponse, error) {
	var resp dto.ReportResponse
	if err := c.do(ctx, http.MethodPost, "/api/analyze", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResearchPapers fetches supporting evidence for an idea.
func (c *Client) ResearchPapers(ctx context.Context, idea string) ([]models.EvidenceArticle, error) {
	var resp dto.EvidenceResponse
	if err := c.do(ctx, http.MethodPost, "/api/research-papers", dto.IdeaRequest{Idea: idea}, &resp); err != nil {
		return nil, err
	}
	return resp.Articles, nil
}

// Refine asks for improvement suggestions.
func (c *Client) Refine(ctx context.Context, req dto.RefineRequest) ([]string, error) {
	var resp dto.RefineResponse
	if err := c.do(ctx, http.MethodPost, "/api/refine", req, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

// =============================================================================
// REPORTS
// =============================================================================

// ListReports returns summaries of the newest stored reports.
func (c *Client) ListReports(ctx context.Context, limit int) ([]models.ReportSummary, error) {
	path := "/api/reports"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var resp dto.ReportListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Reports, nil
}

// GetReport returns a stored report.
func (c *Client) GetReport(ctx context.Context, id string) (*dto.ReportResponse, error) {
	var resp dto.ReportResponse
	if err := c.do(ctx, http.MethodGet, "/api/reports/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteReport removes a stored report.
func (c *Client) DeleteReport(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/reports/"+url.PathEscape(id), nil, nil)
}

// =============================================================================
// STATS
// =============================================================================

// Stats returns the server's runtime statistics.
func (c *Client) Stats(ctx context.Context) (*metrics.Snapshot, error) {
	var snap metrics.Snapshot
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// =============================================================================
// STREAMING
// =============================================================================

// StreamAnalysis runs an analysis over the websocket endpoint. onState is
// invoked for every state transition; return an error from it to abort.
func (c *Client) StreamAnalysis(
	ctx context.Context,
	req dto.AnalyzeRequest,
	onState func(state string) error,
) (*models.Report, error) {
	wsEndpoint := c.endpoint
	wsEndpoint = strings.Replace(wsEndpoint, "http://", "ws://", 1)
	wsEndpoint = strings.Replace(wsEndpoint, "https://", "wss://", 1)

	u, err := url.Parse(wsEndpoint + "/api/analyze/stream")
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("websocket connect: %w", err)
	}

	// Track connection state for proper cleanup
	var mu sync.Mutex
	closed := false
	closeConn := func() {
		mu.Lock()
		defer mu.Unlock()
		if !closed {
			closed = true
			conn.Close()
		}
	}
	defer closeConn()

	if err := conn.WriteJSON(req); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	// Handle context cancellation in a separate goroutine
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			closeConn()
		case <-done:
		}
	}()

	for {
		var ev dto.StreamEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("read event: %w", err)
		}

		switch ev.Type {
		case dto.EventState:
			if onState != nil {
				if err := onState(ev.State); err != nil {
					return nil, err
				}
			}
		case dto.EventResult:
			if ev.Report == nil {
				return nil, errors.New("stream result without report")
			}
			return ev.Report, nil
		case dto.EventError:
			return nil, &APIError{StatusCode: ev.Status, Message: ev.Error}
		default:
			// Ignore unknown event types
			continue
		}
	}
}
