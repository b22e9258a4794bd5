package oracleutil

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphann/hnsw"
)

// inflightOracle tracks the peak number of concurrent callers.
type inflightOracle struct {
	inner   hnsw.Oracle
	current atomic.Int64
	peak    atomic.Int64
}

func (io *inflightOracle) Distance(query, candidate int) (float32, error) {
	n := io.current.Add(1)
	defer io.current.Add(-1)
	for {
		peak := io.peak.Load()
		if n <= peak || io.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(2 * time.Millisecond) // hold the slot so overlap is observable
	return io.inner.Distance(query, candidate)
}

func TestThrottled_Passthrough(t *testing.T) {
	oracle := Throttled(Vectors(testVectors(), nil), 0, 0)

	d, err := oracle.Distance(0, 1)
	require.NoError(t, err)
	assert.Equal(t, float32(25), d)

	batch, err := oracle.BatchDistances(0, []int{1, 2})
	require.NoError(t, err)
	assert.Len(t, batch, 2)
}

func TestThrottled_BoundsConcurrency(t *testing.T) {
	inner := &inflightOracle{inner: Vectors(testVectors(), nil)}
	oracle := Throttled(inner, 2, 0)

	var wg sync.WaitGroup
	wg.Add(8)
	for range 8 {
		go func() {
			defer wg.Done()
			_, err := oracle.Distance(0, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, inner.peak.Load(), int64(2))
	assert.Positive(t, inner.peak.Load())
}

func TestThrottled_BatchIsOneCall(t *testing.T) {
	inner := &inflightOracle{inner: Vectors(testVectors(), nil)}
	oracle := Throttled(inner, 1, 0)

	// The batch holds one slot; the inner fallback loop runs under it.
	batch, err := oracle.BatchDistances(0, []int{1, 2, 3})
	require.NoError(t, err)
	assert.Len(t, batch, 3)
	assert.Equal(t, int64(1), inner.peak.Load())
}

func TestThrottled_RateLimited(t *testing.T) {
	inner := &countingOracle{inner: Vectors(testVectors(), nil)}
	// A generous rate keeps the test fast while exercising the limiter path.
	oracle := Throttled(inner, 0, 10_000)

	for range 5 {
		_, err := oracle.Distance(0, 1)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(5), inner.calls.Load())
}
