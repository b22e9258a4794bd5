package oracleutil

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/graphann/hnsw"
)

// ThrottledOracle bounds in-flight calls and call rate against the
// underlying oracle. Useful when distances come from a service with quotas
// and insertion fans trim evaluations out over several goroutines.
type ThrottledOracle struct {
	inner   hnsw.Oracle
	sem     *semaphore.Weighted
	limiter *rate.Limiter
}

// Throttled wraps inner, allowing at most maxConcurrent in-flight calls and
// callsPerSecond calls per second. Non-positive values disable the
// corresponding limit. A batch counts as a single call against both limits.
func Throttled(inner hnsw.Oracle, maxConcurrent int64, callsPerSecond float64) *ThrottledOracle {
	to := &ThrottledOracle{inner: inner}
	if maxConcurrent > 0 {
		to.sem = semaphore.NewWeighted(maxConcurrent)
	}
	if callsPerSecond > 0 {
		to.limiter = rate.NewLimiter(rate.Limit(callsPerSecond), 1)
	}
	return to
}

// Distance implements hnsw.Oracle.
func (to *ThrottledOracle) Distance(query, candidate int) (float32, error) {
	if err := to.acquire(); err != nil {
		return 0, err
	}
	defer to.release()
	return to.inner.Distance(query, candidate)
}

// BatchDistances implements hnsw.BatchOracle.
func (to *ThrottledOracle) BatchDistances(query int, candidates []int) ([]float32, error) {
	if err := to.acquire(); err != nil {
		return nil, err
	}
	defer to.release()
	return hnsw.BatchDistances(to.inner, query, candidates)
}

// Oracle calls carry no context, so waits are unbounded. Limits exist to
// smooth bursts, not to time out.
func (to *ThrottledOracle) acquire() error {
	ctx := context.Background()
	if to.sem != nil {
		if err := to.sem.Acquire(ctx, 1); err != nil {
			return err
		}
	}
	if to.limiter != nil {
		if err := to.limiter.Wait(ctx); err != nil {
			if to.sem != nil {
				to.sem.Release(1)
			}
			return err
		}
	}
	return nil
}

func (to *ThrottledOracle) release() {
	if to.sem != nil {
		to.sem.Release(1)
	}
}
