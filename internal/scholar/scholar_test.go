// Package scholar_test contains tests for the academic search clients.
package scholar_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/raphaelgruber/ideascope/internal/models"
	"github.com/raphaelgruber/ideascope/internal/scholar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemanticScholarSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/paper/search", r.URL.Path)
		assert.Equal(t, "peer learning", r.URL.Query().Get("query"))
		assert.Equal(t, "4", r.URL.Query().Get("limit"))
		assert.Equal(t, "relevance", r.URL.Query().Get("sort"))
		assert.Contains(t, r.URL.Query().Get("fields"), "citationCount")
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total": 2, "data": [
			{"paperId": "abc", "title": "Peer Learning at Scale", "abstract": "We study peers.",
			 "url": "https://example.org/abc", "venue": "L@S", "year": 2022,
			 "authors": [{"name": "A. Author"}], "citationCount": 12},
			{"paperId": "def", "title": "", "abstract": null, "url": null, "venue": "", "year": null,
			 "authors": [], "citationCount": 0}
		]}`))
	}))
	defer srv.Close()

	c := scholar.NewSemanticScholar(scholar.Config{SemanticScholarURL: srv.URL, SemanticScholarKey: "secret"})
	assert.Equal(t, scholar.ProviderSemanticScholar, c.Name())

	papers, err := c.Search(context.Background(), scholar.Query{Text: "peer learning", Limit: 4})
	require.NoError(t, err)
	require.Len(t, papers, 2)

	assert.Equal(t, models.Paper{
		ID:            "abc",
		Title:         "Peer Learning at Scale",
		Abstract:      "We study peers.",
		URL:           "https://example.org/abc",
		Venue:         "L@S",
		Year:          2022,
		CitationCount: 12,
		Authors:       []string{"A. Author"},
		Provider:      scholar.ProviderSemanticScholar,
	}, papers[0])

	assert.Equal(t, "Research Paper", papers[1].Title)
	assert.Equal(t, "https://www.semanticscholar.org/paper/def", papers[1].URL)
}

func TestOpenAlexSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/works", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "study groups", q.Get("search"))
		assert.Equal(t, "2", q.Get("per-page"))
		assert.Equal(t, "publication_year:>2020", q.Get("filter"))
		assert.Equal(t, "cited_by_count:desc", q.Get("sort"))
		assert.Equal(t, "ideascope-test", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"results": [
			{"id": "https://openalex.org/W1", "title": "Group Study",
			 "abstract_inverted_index": {"groups": [1], "Study": [0], "help": [2, 5], "students": [3]},
			 "primary_location": {"source": {"display_name": "Computers & Education"}},
			 "publication_year": 2023, "authorships": [{"author": {"display_name": "B. Writer"}}],
			 "cited_by_count": 40, "open_access": {"oa_url": "https://oa.example/w1"}},
			{"id": "https://openalex.org/W2", "title": null, "abstract_inverted_index": null,
			 "primary_location": null, "publication_year": 2021, "authorships": [],
			 "cited_by_count": 3, "open_access": {"oa_url": null}}
		]}`))
	}))
	defer srv.Close()

	c := scholar.NewOpenAlex(scholar.Config{OpenAlexURL: srv.URL, UserAgent: "ideascope-test"})
	papers, err := c.Search(context.Background(), scholar.Query{Text: "study groups", Limit: 2})
	require.NoError(t, err)
	require.Len(t, papers, 2)

	assert.Equal(t, "W1", papers[0].ID)
	assert.Equal(t, "Study groups help students", papers[0].Abstract)
	assert.Equal(t, "https://oa.example/w1", papers[0].URL)
	assert.Equal(t, "Computers & Education", papers[0].Venue)
	assert.Equal(t, []string{"B. Writer"}, papers[0].Authors)

	assert.Equal(t, "Academic Research", papers[1].Title)
	assert.Equal(t, "https://openalex.org/W2", papers[1].URL)
	assert.Empty(t, papers[1].Venue)
	assert.Empty(t, papers[1].Abstract)
}

func TestInvertedIndexText(t *testing.T) {
	assert.Equal(t, "", scholar.InvertedIndexText(nil))
	assert.Equal(t, "a b c", scholar.InvertedIndexText(map[string][]int{
		"c": {7},
		"a": {3, 0},
		"b": {1},
		"z": {},
	}))
}

const arxivFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>arXiv Query</title>
  <id>http://arxiv.org/api/query</id>
  <updated>2024-01-01T00:00:00Z</updated>
  <entry>
    <id>http://arxiv.org/abs/2401.00001v1</id>
    <updated>2024-01-02T00:00:00Z</updated>
    <published>2024-01-02T00:00:00Z</published>
    <title>Location-Based
      Matching for Study Groups</title>
    <summary>  We match students
      by proximity.  </summary>
    <author><name>C. Researcher</name></author>
    <link href="http://arxiv.org/abs/2401.00001v1" rel="alternate" type="text/html"/>
  </entry>
</feed>`

func TestArxivSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "all:study groups", r.URL.Query().Get("search_query"))
		assert.Equal(t, "3", r.URL.Query().Get("max_results"))
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(arxivFeed))
	}))
	defer srv.Close()

	c := scholar.NewArxiv(scholar.Config{ArxivURL: srv.URL})
	papers, err := c.Search(context.Background(), scholar.Query{Text: "study groups", Limit: 3})
	require.NoError(t, err)
	require.Len(t, papers, 1)

	p := papers[0]
	assert.Equal(t, "2401.00001v1", p.ID)
	assert.Equal(t, "Location-Based Matching for Study Groups", p.Title)
	assert.Equal(t, "We match students by proximity.", p.Abstract)
	assert.Equal(t, "http://arxiv.org/abs/2401.00001v1", p.URL)
	assert.Equal(t, "arXiv", p.Venue)
	assert.Equal(t, 2024, p.Year)
	assert.Equal(t, []string{"C. Researcher"}, p.Authors)
}

// Run with -race: the aggregator searches one Arxiv instance from several
// goroutines at once.
func TestArxivConcurrentSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(arxivFeed))
	}))
	defer srv.Close()

	c := scholar.NewArxiv(scholar.Config{ArxivURL: srv.URL})
	queries := []string{"study groups", "peer learning", "campus matching"}

	var wg sync.WaitGroup
	errs := make([]error, len(queries))
	found := make([]int, len(queries))
	for i, q := range queries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			papers, err := c.Search(context.Background(), scholar.Query{Text: q, Limit: 3})
			errs[i], found[i] = err, len(papers)
		}()
	}
	wg.Wait()

	for i := range queries {
		require.NoError(t, errs[i], queries[i])
		assert.Equal(t, 1, found[i], queries[i])
	}
}

func TestSearchErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantLimited bool
	}{
		{"rate limited", http.StatusTooManyRequests, `{"message": "slow down"}`, true},
		{"server error", http.StatusInternalServerError, `boom`, false},
		{"bad json", http.StatusOK, `{"data": [`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := scholar.NewSemanticScholar(scholar.Config{SemanticScholarURL: srv.URL})
			_, err := c.Search(context.Background(), scholar.Query{Text: "x"})
			require.Error(t, err)
			assert.Equal(t, tt.wantLimited, errors.Is(err, scholar.ErrRateLimited))
		})
	}
}

func TestSearchHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := scholar.NewOpenAlex(scholar.Config{OpenAlexURL: srv.URL})
	_, err := c.Search(ctx, scholar.Query{Text: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNew(t *testing.T) {
	for _, name := range scholar.Names() {
		p, err := scholar.New(name, scholar.Config{})
		require.NoError(t, err)
		assert.Equal(t, name, p.Name())
	}

	_, err := scholar.New("google", scholar.Config{})
	assert.ErrorIs(t, err, scholar.ErrUnknownProvider)
}

type countingProvider struct {
	calls atomic.Int32
	err   error
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) Search(_ context.Context, q scholar.Query) ([]models.Paper, error) {
	p.calls.Add(1)
	if p.err != nil {
		return nil, p.err
	}
	return []models.Paper{{Title: q.Text}}, nil
}

func TestCached(t *testing.T) {
	inner := &countingProvider{}
	c := scholar.NewCached(inner, 8, time.Minute)
	assert.Equal(t, "counting", c.Name())

	ctx := context.Background()
	first, err := c.Search(ctx, scholar.Query{Text: "a", Limit: 2})
	require.NoError(t, err)
	first[0].Title = "mutated"

	second, err := c.Search(ctx, scholar.Query{Text: "a", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, "a", second[0].Title)
	assert.Equal(t, int32(1), inner.calls.Load())

	_, err = c.Search(ctx, scholar.Query{Text: "a", Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, int32(2), inner.calls.Load())
	assert.Equal(t, 2, c.Len())
}

func TestCachedSkipsErrors(t *testing.T) {
	inner := &countingProvider{err: errors.New("down")}
	c := scholar.NewCached(inner, 8, time.Minute)

	for range 2 {
		_, err := c.Search(context.Background(), scholar.Query{Text: "a"})
		assert.Error(t, err)
	}
	assert.Equal(t, int32(2), inner.calls.Load())
	assert.Equal(t, 0, c.Len())
}
