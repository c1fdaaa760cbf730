package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorTiming(t *testing.T) {
	c := NewCollector()
	c.RecordTiming(OpEvidence, 10*time.Millisecond)
	c.RecordTiming(OpEvidence, 30*time.Millisecond)
	c.RecordFailure(OpEvidence, 20*time.Millisecond)

	snap := c.Snapshot()
	require.NotNil(t, snap.Evidence)
	assert.Equal(t, int64(3), snap.Evidence.Count)
	assert.Equal(t, int64(1), snap.Evidence.Failures)
	assert.Equal(t, int64(60), snap.Evidence.TotalTimeMs)
	assert.Equal(t, int64(10), snap.Evidence.MinTimeMs)
	assert.Equal(t, int64(30), snap.Evidence.MaxTimeMs)
	assert.InDelta(t, 20.0, snap.Evidence.AvgTimeMs, 0.001)
	assert.Nil(t, snap.Evidence.TotalInputTokens)
	assert.Nil(t, snap.Completion)
}

func TestCollectorTokens(t *testing.T) {
	c := NewCollector()
	c.RecordLLMUsage(OpCompletion, time.Second, 100, 400)
	c.RecordLLMUsage(OpCompletion, time.Second, 300, 200)

	snap := c.Snapshot()
	require.NotNil(t, snap.Completion)
	require.NotNil(t, snap.Completion.TotalInputTokens)
	assert.Equal(t, int64(400), *snap.Completion.TotalInputTokens)
	assert.Equal(t, int64(600), *snap.Completion.TotalOutputTokens)
	assert.Equal(t, int64(100), *snap.Completion.MinInputTokens)
	assert.Equal(t, int64(400), *snap.Completion.MaxOutputTokens)
	assert.InDelta(t, 200.0, *snap.Completion.AvgInputTokens, 0.001)
}

func TestCollectorProviders(t *testing.T) {
	c := NewCollector()
	c.RecordTiming(ProviderOp("openalex"), time.Millisecond)
	c.RecordFailure(ProviderOp("semanticscholar"), time.Millisecond)

	snap := c.Snapshot()
	require.Len(t, snap.Providers, 2)
	assert.Equal(t, int64(1), snap.Providers["semanticscholar"].Failures)
	assert.Equal(t, int64(0), snap.Providers["openalex"].Failures)
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.RecordTiming(OpDBQuery, time.Millisecond)
		c.RecordFailure(OpDBQuery, time.Millisecond)
		c.RecordLLMUsage(OpCompletion, time.Millisecond, 1, 1)
	})
}

func TestCollectorConcurrent(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RecordTiming(OpRepoSearch, time.Millisecond)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(50), c.Snapshot().RepoSearch.Count)
}

func TestSpan(t *testing.T) {
	var s span
	assert.Zero(t, s.avg())

	for _, v := range []int64{7, 3, 11} {
		s.add(v)
	}
	assert.Equal(t, span{n: 3, total: 21, min: 3, max: 11}, s)
	assert.InDelta(t, 7.0, s.avg(), 0.001)
}

func TestCollectorZeroTokenCompletion(t *testing.T) {
	c := NewCollector()
	c.RecordLLMUsage(OpCompletion, time.Second, 0, 0)

	snap := c.Snapshot().Completion
	require.NotNil(t, snap)
	require.NotNil(t, snap.MinInputTokens)
	assert.Equal(t, int64(0), *snap.MinInputTokens)
	assert.Equal(t, int64(1000), snap.TotalTimeMs)
}
