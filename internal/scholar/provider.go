// Package scholar provides clients for public academic search APIs.
package scholar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/raphaelgruber/ideascope/internal/models"
)

// Provider names.
const (
	ProviderSemanticScholar = "semanticscholar"
	ProviderOpenAlex        = "openalex"
	ProviderArxiv           = "arxiv"
)

// DefaultUserAgent identifies this application to search APIs.
const DefaultUserAgent = "ideascope (https://github.com/raphaelgruber/ideascope)"

// maxErrorBody bounds how much of an error response is kept in the error.
const maxErrorBody = 512

var (
	// ErrUnknownProvider is returned by New for an unsupported provider name.
	ErrUnknownProvider = errors.New("unknown search provider")
	// ErrRateLimited indicates the provider answered 429.
	ErrRateLimited = errors.New("rate limited")
)

// Query is a single search request.
type Query struct {
	Text  string
	Limit int
}

// Provider searches a bibliographic index.
type Provider interface {
	// Name returns the provider identifier, e.g. "openalex".
	Name() string

	// Search returns at most q.Limit papers in provider relevance order.
	Search(ctx context.Context, q Query) ([]models.Paper, error)
}

// Config holds configuration for creating providers.
type Config struct {
	SemanticScholarURL string
	// SemanticScholarKey is sent as x-api-key when set.
	SemanticScholarKey string
	OpenAlexURL        string
	// OpenAlexMailto joins OpenAlex's polite pool when set.
	OpenAlexMailto string
	ArxivURL       string
	UserAgent      string

	// HTTPClient is shared by all providers. Defaults to a new client.
	HTTPClient *http.Client
}

// New creates a Provider by name.
func New(name string, cfg Config) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ProviderSemanticScholar:
		return NewSemanticScholar(cfg), nil
	case ProviderOpenAlex:
		return NewOpenAlex(cfg), nil
	case ProviderArxiv:
		return NewArxiv(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}

// Names lists the supported provider names.
func Names() []string {
	return []string{ProviderSemanticScholar, ProviderOpenAlex, ProviderArxiv}
}

func httpClient(cfg Config) *http.Client {
	if cfg.HTTPClient != nil {
		return cfg.HTTPClient
	}
	return &http.Client{}
}

func userAgent(cfg Config) string {
	if cfg.UserAgent != "" {
		return cfg.UserAgent
	}
	return DefaultUserAgent
}

// get performs a GET request and returns the response when the status is 200.
// The caller must close the body.
func get(ctx context.Context, client *http.Client, url string, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("API error (status %d): %w", resp.StatusCode, ErrRateLimited)
		}
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return resp, nil
}

func limitOrDefault(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}
