package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/raphaelgruber/ideascope/internal/models"
)

const (
	// DefaultOpenAlexURL is the OpenAlex API base URL.
	DefaultOpenAlexURL = "https://api.openalex.org"

	openAlexWorkPrefix = "https://openalex.org/"
	openAlexFilter     = "publication_year:>2020"
	openAlexSort       = "cited_by_count:desc"
)

// OpenAlex searches recent, highly cited works on OpenAlex.
type OpenAlex struct {
	baseURL   string
	mailto    string
	userAgent string
	client    *http.Client
}

// Compile-time check that OpenAlex implements Provider.
var _ Provider = (*OpenAlex)(nil)

// NewOpenAlex creates an OpenAlex client.
func NewOpenAlex(cfg Config) *OpenAlex {
	base := cfg.OpenAlexURL
	if base == "" {
		base = DefaultOpenAlexURL
	}
	return &OpenAlex{
		baseURL:   base,
		mailto:    cfg.OpenAlexMailto,
		userAgent: userAgent(cfg),
		client:    httpClient(cfg),
	}
}

// Name returns "openalex".
func (c *OpenAlex) Name() string {
	return ProviderOpenAlex
}

type openAlexResponse struct {
	Results []struct {
		ID                    string           `json:"id"`
		Title                 string           `json:"title"`
		AbstractInvertedIndex map[string][]int `json:"abstract_inverted_index"`
		PrimaryLocation       *struct {
			Source *struct {
				DisplayName string `json:"display_name"`
			} `json:"source"`
		} `json:"primary_location"`
		PublicationYear int `json:"publication_year"`
		Authorships     []struct {
			Author struct {
				DisplayName string `json:"display_name"`
			} `json:"author"`
		} `json:"authorships"`
		CitedByCount int `json:"cited_by_count"`
		OpenAccess   *struct {
			OAURL string `json:"oa_url"`
		} `json:"open_access"`
	} `json:"results"`
}

// Search queries /works restricted to works published after 2020, most
// cited first.
func (c *OpenAlex) Search(ctx context.Context, q Query) ([]models.Paper, error) {
	params := url.Values{}
	params.Set("search", q.Text)
	params.Set("per-page", strconv.Itoa(limitOrDefault(q.Limit, 4)))
	params.Set("sort", openAlexSort)
	params.Set("filter", openAlexFilter)
	if c.mailto != "" {
		params.Set("mailto", c.mailto)
	}

	header := http.Header{}
	header.Set("Accept", "application/json")
	header.Set("User-Agent", c.userAgent)

	resp, err := get(ctx, c.client, c.baseURL+"/works?"+params.Encode(), header)
	if err != nil {
		return nil, fmt.Errorf("openalex search: %w", err)
	}
	defer resp.Body.Close()

	var body openAlexResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	papers := make([]models.Paper, 0, len(body.Results))
	for _, w := range body.Results {
		id := strings.TrimPrefix(w.ID, openAlexWorkPrefix)
		p := models.Paper{
			ID:            id,
			Title:         w.Title,
			Abstract:      InvertedIndexText(w.AbstractInvertedIndex),
			URL:           openAlexWorkPrefix + id,
			Year:          w.PublicationYear,
			CitationCount: w.CitedByCount,
			Provider:      ProviderOpenAlex,
		}
		if p.Title == "" {
			p.Title = "Academic Research"
		}
		if w.OpenAccess != nil && w.OpenAccess.OAURL != "" {
			p.URL = w.OpenAccess.OAURL
		}
		if w.PrimaryLocation != nil && w.PrimaryLocation.Source != nil {
			p.Venue = w.PrimaryLocation.Source.DisplayName
		}
		for _, a := range w.Authorships {
			p.Authors = append(p.Authors, a.Author.DisplayName)
		}
		papers = append(papers, p)
	}
	return papers, nil
}

// InvertedIndexText rebuilds abstract text from an OpenAlex inverted index
// by ordering words on their first position. Each word appears once.
func InvertedIndexText(index map[string][]int) string {
	if len(index) == 0 {
		return ""
	}

	type word struct {
		text  string
		first int
	}
	words := make([]word, 0, len(index))
	for w, positions := range index {
		if len(positions) == 0 {
			continue
		}
		words = append(words, word{text: w, first: slices.Min(positions)})
	}

	sort.Slice(words, func(i, j int) bool {
		if words[i].first != words[j].first {
			return words[i].first < words[j].first
		}
		return words[i].text < words[j].text
	})

	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.text
	}
	return strings.Join(parts, " ")
}
