// Package metrics provides in-memory runtime statistics collection.
package metrics

import (
	"strings"
	"sync"
	"time"
)

// OperationSnapshot provides computed stats from raw metrics.
type OperationSnapshot struct {
	Count       int64   `json:"count"`
	Failures    int64   `json:"failures"`
	TotalTimeMs int64   `json:"totalTimeMs"`
	AvgTimeMs   float64 `json:"avgTimeMs"`
	MinTimeMs   int64   `json:"minTimeMs"`
	MaxTimeMs   int64   `json:"maxTimeMs"`

	// Token stats (nil if not applicable)
	TotalInputTokens  *int64   `json:"totalInputTokens,omitempty"`
	TotalOutputTokens *int64   `json:"totalOutputTokens,omitempty"`
	AvgInputTokens    *float64 `json:"avgInputTokens,omitempty"`
	AvgOutputTokens   *float64 `json:"avgOutputTokens,omitempty"`
	MinInputTokens    *int64   `json:"minInputTokens,omitempty"`
	MaxInputTokens    *int64   `json:"maxInputTokens,omitempty"`
	MinOutputTokens   *int64   `json:"minOutputTokens,omitempty"`
	MaxOutputTokens   *int64   `json:"maxOutputTokens,omitempty"`
}

// Snapshot represents the full server statistics at a point in time.
type Snapshot struct {
	UptimeSeconds float64                       `json:"uptimeSeconds"`
	Completion    *OperationSnapshot            `json:"completion,omitempty"`
	Evidence      *OperationSnapshot            `json:"evidence,omitempty"`
	RepoSearch    *OperationSnapshot            `json:"repoSearch,omitempty"`
	DBQuery       *OperationSnapshot            `json:"dbQuery,omitempty"`
	Providers     map[string]*OperationSnapshot `json:"providers,omitempty"`
}

// Operation names for the collector.
const (
	OpCompletion = "completion"
	OpEvidence   = "evidence"
	OpRepoSearch = "repo_search"
	OpDBQuery    = "db_query"

	// ProviderPrefix prefixes per-provider search operations,
	// e.g. "provider_openalex".
	ProviderPrefix = "provider_"
)

// ProviderOp returns the operation name for a scholarly search provider.
func ProviderOp(name string) string {
	return ProviderPrefix + name
}

// span tracks the total and extremes of a quantity across samples.
type span struct {
	n     int64
	total int64
	min   int64
	max   int64
}

func (s *span) add(v int64) {
	if s.n == 0 || v < s.min {
		s.min = v
	}
	if v > s.max {
		s.max = v
	}
	s.n++
	s.total += v
}

func (s span) avg() float64 {
	if s.n == 0 {
		return 0
	}
	return float64(s.total) / float64(s.n)
}

// operation aggregates the calls of one operation name.
type operation struct {
	failures int64
	latency  span // milliseconds
	input    span // tokens, completions only
	output   span
}

func (o *operation) snapshot() *OperationSnapshot {
	if o == nil || o.latency.n == 0 {
		return nil
	}
	snap := &OperationSnapshot{
		Count:       o.latency.n,
		Failures:    o.failures,
		TotalTimeMs: o.latency.total,
		AvgTimeMs:   o.latency.avg(),
		MinTimeMs:   o.latency.min,
		MaxTimeMs:   o.latency.max,
	}
	if o.input.n > 0 {
		in, out := o.input, o.output
		inAvg, outAvg := in.avg(), out.avg()
		snap.TotalInputTokens, snap.TotalOutputTokens = &in.total, &out.total
		snap.AvgInputTokens, snap.AvgOutputTokens = &inAvg, &outAvg
		snap.MinInputTokens, snap.MaxInputTokens = &in.min, &in.max
		snap.MinOutputTokens, snap.MaxOutputTokens = &out.min, &out.max
	}
	return snap
}

// Collector aggregates in-memory runtime statistics.
// All methods are safe for concurrent use. A nil *Collector discards everything.
type Collector struct {
	mu      sync.Mutex
	started time.Time
	ops     map[string]*operation
}

// NewCollector creates an empty collector; uptime counts from now.
func NewCollector() *Collector {
	return &Collector{started: time.Now(), ops: make(map[string]*operation)}
}

// record applies fn to the named operation under the lock.
func (c *Collector) record(op string, fn func(*operation)) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	o, ok := c.ops[op]
	if !ok {
		o = &operation{}
		c.ops[op] = o
	}
	fn(o)
}

// RecordTiming records a successful call.
func (c *Collector) RecordTiming(op string, d time.Duration) {
	c.record(op, func(o *operation) {
		o.latency.add(d.Milliseconds())
	})
}

// RecordFailure records a failed call. Its latency still counts.
func (c *Collector) RecordFailure(op string, d time.Duration) {
	c.record(op, func(o *operation) {
		o.latency.add(d.Milliseconds())
		o.failures++
	})
}

// RecordLLMUsage records a completion with its token usage.
func (c *Collector) RecordLLMUsage(op string, d time.Duration, inputTokens, outputTokens int64) {
	c.record(op, func(o *operation) {
		o.latency.add(d.Milliseconds())
		o.input.add(inputTokens)
		o.output.add(outputTokens)
	})
}

// Snapshot returns the statistics collected so far.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		UptimeSeconds: time.Since(c.started).Seconds(),
		Completion:    c.ops[OpCompletion].snapshot(),
		Evidence:      c.ops[OpEvidence].snapshot(),
		RepoSearch:    c.ops[OpRepoSearch].snapshot(),
		DBQuery:       c.ops[OpDBQuery].snapshot(),
	}
	for op, o := range c.ops {
		name, ok := strings.CutPrefix(op, ProviderPrefix)
		if !ok {
			continue
		}
		if snap.Providers == nil {
			snap.Providers = make(map[string]*OperationSnapshot)
		}
		snap.Providers[name] = o.snapshot()
	}
	return snap
}
