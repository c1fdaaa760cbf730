package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/raphaelgruber/ideascope/internal/models"
)

const (
	// DefaultSemanticScholarURL is the Semantic Scholar Graph API base URL.
	DefaultSemanticScholarURL = "https://api.semanticscholar.org/graph/v1"

	semanticScholarFields = "title,abstract,url,venue,year,authors,citationCount"
	semanticScholarPaper  = "https://www.semanticscholar.org/paper/"
)

// SemanticScholar searches the Semantic Scholar Graph API.
type SemanticScholar struct {
	baseURL   string
	apiKey    string
	userAgent string
	client    *http.Client
}

// Compile-time check that SemanticScholar implements Provider.
var _ Provider = (*SemanticScholar)(nil)

// NewSemanticScholar creates a Semantic Scholar client.
func NewSemanticScholar(cfg Config) *SemanticScholar {
	base := cfg.SemanticScholarURL
	if base == "" {
		base = DefaultSemanticScholarURL
	}
	return &SemanticScholar{
		baseURL:   base,
		apiKey:    cfg.SemanticScholarKey,
		userAgent: userAgent(cfg),
		client:    httpClient(cfg),
	}
}

// Name returns "semanticscholar".
func (c *SemanticScholar) Name() string {
	return ProviderSemanticScholar
}

type semanticScholarResponse struct {
	Data []struct {
		PaperID  string `json:"paperId"`
		Title    string `json:"title"`
		Abstract string `json:"abstract"`
		URL      string `json:"url"`
		Venue    string `json:"venue"`
		Year     int    `json:"year"`
		Authors  []struct {
			Name string `json:"name"`
		} `json:"authors"`
		CitationCount int `json:"citationCount"`
	} `json:"data"`
}

// Search queries /paper/search sorted by relevance.
func (c *SemanticScholar) Search(ctx context.Context, q Query) ([]models.Paper, error) {
	params := url.Values{}
	params.Set("query", q.Text)
	params.Set("limit", strconv.Itoa(limitOrDefault(q.Limit, 4)))
	params.Set("fields", semanticScholarFields)
	params.Set("sort", "relevance")

	header := http.Header{}
	header.Set("Accept", "application/json")
	header.Set("User-Agent", c.userAgent)
	if c.apiKey != "" {
		header.Set("x-api-key", c.apiKey)
	}

	resp, err := get(ctx, c.client, c.baseURL+"/paper/search?"+params.Encode(), header)
	if err != nil {
		return nil, fmt.Errorf("semantic scholar search: %w", err)
	}
	defer resp.Body.Close()

	var body semanticScholarResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	papers := make([]models.Paper, 0, len(body.Data))
	for _, d := range body.Data {
		p := models.Paper{
			ID:            d.PaperID,
			Title:         d.Title,
			Abstract:      d.Abstract,
			URL:           d.URL,
			Venue:         d.Venue,
			Year:          d.Year,
			CitationCount: d.CitationCount,
			Provider:      ProviderSemanticScholar,
		}
		if p.Title == "" {
			p.Title = "Research Paper"
		}
		if p.URL == "" {
			p.URL = semanticScholarPaper + d.PaperID
		}
		for _, a := range d.Authors {
			p.Authors = append(p.Authors, a.Name)
		}
		papers = append(papers, p)
	}
	return papers, nil
}
