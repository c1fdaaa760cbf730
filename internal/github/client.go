// Package github searches public GitHub repositories for comparable projects.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/raphaelgruber/ideascope/internal/metrics"
	"github.com/raphaelgruber/ideascope/internal/models"
)

const (
	// DefaultBaseURL is the GitHub REST API base URL.
	DefaultBaseURL = "https://api.github.com"

	// DefaultPerPage is the number of repositories returned per search.
	DefaultPerPage = 6

	noDescription = "No description available"
	noLanguage    = "Not specified"
	userAgent     = "ideascope"
)

// ErrEmptyQuery is returned when SearchRepositories is called without a query.
var ErrEmptyQuery = errors.New("query is required")

// APIError is a non-200 response from GitHub. Message is GitHub's own
// message when the body carried one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API error: %d %s", e.StatusCode, e.Message)
}

// Client is a minimal GitHub search client.
type Client struct {
	baseURL string
	token   string
	perPage int
	client  *http.Client
	metrics *metrics.Collector
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithToken sets a personal access token for higher rate limits.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithMetrics records search latency under metrics.OpRepoSearch.
func WithMetrics(collector *metrics.Collector) Option {
	return func(c *Client) { c.metrics = collector }
}

// NewClient creates a GitHub client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		perPage: DefaultPerPage,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	Items []struct {
		Name            string  `json:"name"`
		Description     *string `json:"description"`
		StargazersCount int     `json:"stargazers_count"`
		ForksCount      int     `json:"forks_count"`
		Language        *string `json:"language"`
		HTMLURL         string  `json:"html_url"`
		Owner           struct {
			Login string `json:"login"`
		} `json:"owner"`
	} `json:"items"`
}

// SearchRepositories returns the most starred repositories matching query.
func (c *Client) SearchRepositories(ctx context.Context, query string) (_ []models.Repository, err error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	defer func(start time.Time) {
		if err != nil {
			c.metrics.RecordFailure(metrics.OpRepoSearch, time.Since(start))
			return
		}
		c.metrics.RecordTiming(metrics.OpRepoSearch, time.Since(start))
	}(time.Now())

	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", "stars")
	params.Set("order", "desc")
	params.Set("per_page", fmt.Sprint(c.perPage))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search/repositories?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	repos := make([]models.Repository, 0, len(body.Items))
	for _, item := range body.Items {
		r := models.Repository{
			Name:        item.Name,
			Description: noDescription,
			Stars:       item.StargazersCount,
			Forks:       item.ForksCount,
			Language:    noLanguage,
			URL:         item.HTMLURL,
			Owner:       item.Owner.Login,
		}
		if item.Description != nil && *item.Description != "" {
			r.Description = *item.Description
		}
		if item.Language != nil && *item.Language != "" {
			r.Language = *item.Language
		}
		repos = append(repos, r)
	}
	return repos, nil
}

func apiError(resp *http.Response) *APIError {
	e := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Message != "" {
		e.Message = body.Message
	}
	return e
}
