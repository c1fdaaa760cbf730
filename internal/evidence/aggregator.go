// Package evidence gathers research articles that support an idea.
//
// The aggregator runs a cascade over two academic search providers and
// degrades step by step: primary provider, secondary provider, curated
// domain search terms, and finally one synthesized article. It never
// returns an error.
package evidence

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/raphaelgruber/ideascope/internal/classify"
	"github.com/raphaelgruber/ideascope/internal/metrics"
	"github.com/raphaelgruber/ideascope/internal/models"
	"github.com/raphaelgruber/ideascope/internal/scholar"
	"github.com/raphaelgruber/ideascope/internal/taxonomy"
)

const (
	// MaxArticles is the number of articles returned to callers.
	MaxArticles = 4
	// collectCap stops a step from accepting more articles.
	collectCap = 6

	maxQueries      = 3
	queriesPerStep  = 2
	minQueryLen     = 4
	itemsPerQuery   = 2
	pageSize        = 4
	termPageSize    = 3
	summaryLen      = 200
	scholarSearch   = "https://scholar.google.com/scholar?q="
	fallbackSource  = "Academic Search (2024)"
	recentYear      = "Recent"
	semanticDefault = "Semantic Scholar"
	openAlexDefault = "OpenAlex"

	// DefaultCallTimeout bounds each provider call.
	DefaultCallTimeout = 8 * time.Second
	// DefaultConcurrency bounds provider calls in flight.
	DefaultConcurrency = 3
)

var punctuation = regexp.MustCompile(`[^\w\s]`)

// Options configures an Aggregator. Zero values select defaults.
type Options struct {
	CallTimeout time.Duration
	Concurrency int
	// Supplement, when set, is searched after the secondary provider with
	// the same queries while fewer than six articles are collected.
	Supplement scholar.Provider
	Metrics    *metrics.Collector
}

// Aggregator collects evidence articles for ideas.
type Aggregator struct {
	primary     scholar.Provider
	secondary   scholar.Provider
	supplement  scholar.Provider
	callTimeout time.Duration
	concurrency int
	metrics     *metrics.Collector
}

// New creates an Aggregator. primary is searched first and again for the
// domain search terms; secondary is searched when primary falls short.
func New(primary, secondary scholar.Provider, opts Options) *Aggregator {
	a := &Aggregator{
		primary:     primary,
		secondary:   secondary,
		supplement:  opts.Supplement,
		callTimeout: opts.CallTimeout,
		concurrency: opts.Concurrency,
		metrics:     opts.Metrics,
	}
	if a.callTimeout <= 0 {
		a.callTimeout = DefaultCallTimeout
	}
	if a.concurrency <= 0 {
		a.concurrency = DefaultConcurrency
	}
	return a
}

// FetchEvidence returns at most four articles in discovery order with
// unique titles. Provider failures are logged and absorbed; when nothing is
// found a single synthesized article is returned.
func (a *Aggregator) FetchEvidence(ctx context.Context, idea string) []models.EvidenceArticle {
	start := time.Now()
	defer func() { a.metrics.RecordTiming(metrics.OpEvidence, time.Since(start)) }()

	c := classify.Classify(idea)
	topic := keywordPhrase(c.PrimaryKeywords)
	queries := Queries(idea, c)
	stepQueries := queries[:min(queriesPerStep, len(queries))]

	slog.Debug("collecting evidence", "domain", c.Domain, "queries", queries)

	acc := newAccumulator()

	a.runStep(ctx, acc, step{
		provider: a.primary,
		queries:  stepQueries,
		limit:    pageSize,
		stopAt:   collectCap,
		article:  func(p models.Paper, _ string) models.EvidenceArticle { return primaryArticle(p, topic) },
	})

	if acc.len() < collectCap && a.secondary != nil {
		a.runStep(ctx, acc, step{
			provider: a.secondary,
			queries:  stepQueries,
			limit:    pageSize,
			stopAt:   collectCap,
			article:  func(p models.Paper, _ string) models.EvidenceArticle { return secondaryArticle(p, topic) },
		})
	}

	if acc.len() < collectCap && a.supplement != nil {
		a.runStep(ctx, acc, step{
			provider: a.supplement,
			queries:  stepQueries,
			limit:    pageSize,
			stopAt:   collectCap,
			article:  func(p models.Paper, _ string) models.EvidenceArticle { return supplementArticle(p, topic) },
		})
	}

	if acc.len() < MaxArticles {
		a.runStep(ctx, acc, step{
			provider: a.primary,
			queries:  taxonomy.SearchTerms(c.Domain, c.PrimaryKeywords),
			limit:    termPageSize,
			stopAt:   MaxArticles,
			article: func(p models.Paper, term string) models.EvidenceArticle {
				return termArticle(p, term, topic)
			},
		})
	}

	articles := acc.articles
	if len(articles) == 0 {
		slog.Warn("all evidence searches failed, using synthesized article", "domain", c.Domain)
		return []models.EvidenceArticle{Synthesized(c)}
	}

	slog.Debug("evidence collected", "count", len(articles))
	return articles[:min(MaxArticles, len(articles))]
}

// Queries builds the candidate search queries for an idea: the primary
// keywords, a mix of primary and secondary keywords, and the idea with
// punctuation removed. Queries shorter than four characters and repeats
// are dropped.
func Queries(idea string, c models.Classification) []string {
	candidates := []string{
		strings.Join(c.PrimaryKeywords, " "),
		strings.Join(c.PrimaryKeywords[:min(3, len(c.PrimaryKeywords))], " ") + " " +
			strings.Join(c.SecondaryKeywords[:min(2, len(c.SecondaryKeywords))], " "),
		strings.Join(strings.Fields(punctuation.ReplaceAllString(idea, " ")), " "),
	}

	out := make([]string, 0, maxQueries)
	for _, q := range candidates {
		q = strings.TrimSpace(q)
		if utf8.RuneCountInString(q) < minQueryLen {
			continue
		}
		if len(out) > 0 && out[len(out)-1] == q {
			continue
		}
		out = append(out, q)
	}
	return out
}

// Synthesized is the single article returned when no provider produced
// anything. It points at a Google Scholar search for the primary keywords.
func Synthesized(c models.Classification) models.EvidenceArticle {
	top := c.PrimaryKeywords[:min(2, len(c.PrimaryKeywords))]
	q := strings.ReplaceAll(url.QueryEscape(strings.Join(c.PrimaryKeywords, " ")), "+", "%20")

	return models.EvidenceArticle{
		Title:  "Research Opportunities in " + strings.ToUpper(strings.Join(top, " and ")),
		URL:    scholarSearch + q,
		Source: fallbackSource,
		Summary: fmt.Sprintf(
			"Comprehensive research opportunities exist in %s with significant potential for innovation and development in the %s domain.",
			strings.Join(c.PrimaryKeywords, ", "), strings.ReplaceAll(c.Domain, "_", " "),
		),
	}
}

// step is one provider pass of the cascade.
type step struct {
	provider scholar.Provider
	queries  []string
	limit    int
	// stopAt ends the step once the accumulator holds this many articles.
	stopAt  int
	article func(p models.Paper, query string) models.EvidenceArticle
}

// runStep searches every query of s concurrently and merges the results in
// query order. Once the step's target is reached, outstanding calls are
// cancelled and their results discarded.
func (a *Aggregator) runStep(ctx context.Context, acc *accumulator, s step) {
	if s.provider == nil || len(s.queries) == 0 || acc.len() >= s.stopAt {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	m := &merger{
		acc:     acc,
		step:    s,
		results: make([][]models.Paper, len(s.queries)),
		done:    make([]bool, len(s.queries)),
		cancel:  cancel,
	}

	for i, q := range s.queries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			papers := a.search(gctx, s.provider, q, s.limit)
			m.deliver(i, papers)
			return nil
		})
	}
	_ = g.Wait()
}

// search performs one bounded provider call. Failures yield no papers.
func (a *Aggregator) search(ctx context.Context, p scholar.Provider, query string, limit int) []models.Paper {
	if ctx.Err() != nil {
		return nil
	}
	callCtx, cancel := context.WithTimeout(ctx, a.callTimeout)
	defer cancel()

	start := time.Now()
	papers, err := p.Search(callCtx, scholar.Query{Text: query, Limit: limit})
	op := metrics.ProviderOp(p.Name())
	switch {
	case err != nil && ctx.Err() != nil:
		// The step reached its target or the caller gave up; not a provider fault.
		slog.Debug("provider search abandoned", "provider", p.Name(), "query", query)
		return nil
	case err != nil:
		a.metrics.RecordFailure(op, time.Since(start))
		slog.Warn("provider search failed", "provider", p.Name(), "query", query, "error", err)
		return nil
	}
	a.metrics.RecordTiming(op, time.Since(start))
	return papers
}

// merger folds concurrently completed query results into the accumulator
// strictly in query order.
type merger struct {
	mu      sync.Mutex
	acc     *accumulator
	step    step
	results [][]models.Paper
	done    []bool
	next    int
	cancel  context.CancelFunc
}

func (m *merger) deliver(i int, papers []models.Paper) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.results[i] = papers
	m.done[i] = true

	for m.next < len(m.done) && m.done[m.next] {
		if m.acc.len() < m.step.stopAt {
			m.mergeQuery(m.next)
		}
		m.results[m.next] = nil
		m.next++
	}

	if m.acc.len() >= m.step.stopAt {
		m.cancel()
	}
}

func (m *merger) mergeQuery(i int) {
	query := m.step.queries[i]
	papers := m.results[i]
	for _, p := range papers[:min(itemsPerQuery, len(papers))] {
		if m.acc.len() >= collectCap {
			return
		}
		m.acc.add(m.step.article(p, query))
	}
}

// accumulator holds articles in discovery order, unique by title.
type accumulator struct {
	articles []models.EvidenceArticle
	seen     map[string]struct{}
}

func newAccumulator() *accumulator {
	return &accumulator{seen: make(map[string]struct{})}
}

func (a *accumulator) len() int {
	return len(a.articles)
}

func (a *accumulator) add(article models.EvidenceArticle) bool {
	if _, dup := a.seen[article.Title]; dup {
		return false
	}
	a.seen[article.Title] = struct{}{}
	a.articles = append(a.articles, article)
	return true
}
