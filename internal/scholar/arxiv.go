package scholar

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/raphaelgruber/ideascope/internal/models"
)

// DefaultArxivURL is the arXiv export API query endpoint.
const DefaultArxivURL = "https://export.arxiv.org/api/query"

// Arxiv searches arXiv preprints through the Atom export API.
type Arxiv struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// Compile-time check that Arxiv implements Provider.
var _ Provider = (*Arxiv)(nil)

// NewArxiv creates an arXiv client.
func NewArxiv(cfg Config) *Arxiv {
	base := cfg.ArxivURL
	if base == "" {
		base = DefaultArxivURL
	}
	return &Arxiv{
		baseURL:   base,
		userAgent: userAgent(cfg),
		client:    httpClient(cfg),
	}
}

// Name returns "arxiv".
func (c *Arxiv) Name() string {
	return ProviderArxiv
}

// Search queries all fields and returns entries in relevance order.
func (c *Arxiv) Search(ctx context.Context, q Query) ([]models.Paper, error) {
	params := url.Values{}
	params.Set("search_query", "all:"+q.Text)
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(limitOrDefault(q.Limit, 4)))
	params.Set("sortBy", "relevance")

	header := http.Header{}
	header.Set("Accept", "application/atom+xml")
	header.Set("User-Agent", c.userAgent)

	resp, err := get(ctx, c.client, c.baseURL+"?"+params.Encode(), header)
	if err != nil {
		return nil, fmt.Errorf("arxiv search: %w", err)
	}
	defer resp.Body.Close()

	// gofeed.Parser sets its translators lazily, so each call gets its own.
	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	papers := make([]models.Paper, 0, len(feed.Items))
	for _, item := range feed.Items {
		p := models.Paper{
			ID:       arxivID(item.GUID),
			Title:    collapseSpace(item.Title),
			Abstract: collapseSpace(item.Description),
			URL:      item.Link,
			Venue:    "arXiv",
			Provider: ProviderArxiv,
		}
		if p.URL == "" {
			p.URL = item.GUID
		}
		if item.PublishedParsed != nil {
			p.Year = item.PublishedParsed.Year()
		}
		for _, a := range item.Authors {
			if a != nil && a.Name != "" {
				p.Authors = append(p.Authors, a.Name)
			}
		}
		papers = append(papers, p)
	}
	return papers, nil
}

// arxivID turns "http://arxiv.org/abs/2101.00001v2" into "2101.00001v2".
func arxivID(guid string) string {
	if i := strings.LastIndex(guid, "/abs/"); i >= 0 {
		return guid[i+len("/abs/"):]
	}
	return guid
}

// collapseSpace joins the hard-wrapped lines arXiv uses in titles and summaries.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
