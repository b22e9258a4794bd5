package oracleutil

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/graphann/hnsw"
)

// CachedOracle memoizes pairwise distances in an LRU cache. Distances are
// keyed by the unordered pair, so the underlying metric must be symmetric.
//
// The cache is safe for concurrent use.
type CachedOracle struct {
	inner hnsw.Oracle
	cache *lru.Cache[[2]int, float32]
}

// Cached wraps inner with an LRU of the given size. Size must be positive.
func Cached(inner hnsw.Oracle, size int) (*CachedOracle, error) {
	cache, err := lru.New[[2]int, float32](size)
	if err != nil {
		return nil, err
	}
	return &CachedOracle{inner: inner, cache: cache}, nil
}

// Distance implements hnsw.Oracle.
func (co *CachedOracle) Distance(query, candidate int) (float32, error) {
	key := pairKey(query, candidate)
	if dist, ok := co.cache.Get(key); ok {
		return dist, nil
	}
	dist, err := co.inner.Distance(query, candidate)
	if err != nil {
		return 0, err
	}
	co.cache.Add(key, dist)
	return dist, nil
}

// BatchDistances implements hnsw.BatchOracle. Hits fill from the cache and
// only the misses reach the inner oracle, as one batch.
func (co *CachedOracle) BatchDistances(query int, candidates []int) ([]float32, error) {
	out := make([]float32, len(candidates))
	var misses, missIdx []int
	for i, candidate := range candidates {
		if dist, ok := co.cache.Get(pairKey(query, candidate)); ok {
			out[i] = dist
			continue
		}
		misses = append(misses, candidate)
		missIdx = append(missIdx, i)
	}
	if len(misses) == 0 {
		return out, nil
	}
	dists, err := hnsw.BatchDistances(co.inner, query, misses)
	if err != nil {
		return nil, err
	}
	for j, i := range missIdx {
		out[i] = dists[j]
		co.cache.Add(pairKey(query, misses[j]), dists[j])
	}
	return out, nil
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}
