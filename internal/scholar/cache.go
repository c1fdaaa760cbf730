package scholar

import (
	"context"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/raphaelgruber/ideascope/internal/models"
)

// Cached decorates a Provider with an expiring LRU of search results.
// Errors are never cached.
type Cached struct {
	Provider
	cache *expirable.LRU[string, []models.Paper]
}

// Compile-time check that Cached implements Provider.
var _ Provider = (*Cached)(nil)

// NewCached wraps p with a cache holding up to size queries for ttl.
func NewCached(p Provider, size int, ttl time.Duration) *Cached {
	return &Cached{
		Provider: p,
		cache:    expirable.NewLRU[string, []models.Paper](size, nil, ttl),
	}
}

// Search returns a cached result for q when present, otherwise delegates.
func (c *Cached) Search(ctx context.Context, q Query) ([]models.Paper, error) {
	key := strconv.Itoa(q.Limit) + "\x00" + q.Text
	if papers, ok := c.cache.Get(key); ok {
		return clonePapers(papers), nil
	}

	papers, err := c.Provider.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, clonePapers(papers))
	return papers, nil
}

// Len returns the number of cached queries.
func (c *Cached) Len() int {
	return c.cache.Len()
}

func clonePapers(papers []models.Paper) []models.Paper {
	out := make([]models.Paper, len(papers))
	copy(out, papers)
	return out
}
