package hnsw

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// Params controls the shape of the graph. Every field must be strictly
// positive; New panics otherwise, since a malformed configuration is a
// programming error rather than a runtime condition.
type Params struct {
	// MaxConnections bounds the neighbor list of every node on every layer.
	MaxConnections int

	// EfConstruction is the default exploration width for layer sweeps.
	EfConstruction int

	// MaxLevel caps the level a node can be sampled at.
	MaxLevel int
}

func (p Params) validate() {
	if p.MaxConnections < 1 {
		panic("hnsw: MaxConnections must be positive")
	}
	if p.EfConstruction < 1 {
		panic("hnsw: EfConstruction must be positive")
	}
	if p.MaxLevel < 1 {
		panic("hnsw: MaxLevel must be positive")
	}
}

// Index is a hierarchical navigable small world graph over nodes identified
// by caller-chosen integers. Distances come from an Oracle at call time; the
// index never stores vectors.
//
// All methods are safe for concurrent use.
type Index struct {
	params Params
	opts   options

	mu    sync.RWMutex
	graph *graph

	count atomic.Int64

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New creates an empty index. capacityHint pre-sizes the node table for the
// expected number of nodes and may be zero. seed fixes the level sampling
// sequence so runs are reproducible.
func New(params Params, capacityHint int, seed int64, optFns ...Option) *Index {
	params.validate()
	return &Index{
		params: params,
		opts:   applyOptions(optFns),
		graph:  newGraph(params, capacityHint),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Params returns the configuration the index was created with.
func (idx *Index) Params() Params {
	return idx.params
}

// Len reports the number of committed nodes.
func (idx *Index) Len() int {
	return int(idx.count.Load())
}

// IsEmpty reports whether the graph has no nodes.
func (idx *Index) IsEmpty() bool {
	return idx.Len() == 0
}

// Insert adds node to the graph at a freshly sampled level. The oracle must
// be able to answer distances between node and every node already inserted.
func (idx *Index) Insert(ctx context.Context, node int, o Oracle) error {
	start := time.Now()
	level := idx.sampleLevel()
	err := idx.insert(ctx, nodeContext{node: node, level: level}, o)
	duration := time.Since(start)
	idx.opts.metricsCollector.RecordInsert(duration, err)
	idx.opts.logger.LogInsert(ctx, node, level, duration, err)
	return err
}

// InsertBatch inserts nodes in order and stops at the first failure.
func (idx *Index) InsertBatch(ctx context.Context, nodes []int, o Oracle) error {
	start := time.Now()
	inserted := 0
	var err error
	for _, node := range nodes {
		nc := nodeContext{node: node, level: idx.sampleLevel()}
		if err = idx.insert(ctx, nc, o); err != nil {
			break
		}
		inserted++
	}
	duration := time.Since(start)
	idx.opts.metricsCollector.RecordBatchInsert(len(nodes), len(nodes)-inserted, duration)
	idx.opts.logger.LogBatchInsert(ctx, inserted, len(nodes), duration, err)
	return err
}

func (idx *Index) insert(ctx context.Context, nc nodeContext, o Oracle) error {
	idx.mu.RLock()
	empty := idx.graph.entry == nil
	idx.mu.RUnlock()

	if empty {
		// The first node has no candidates to score against, so probe the
		// oracle with a self-distance to surface bad queries up front.
		if _, err := validateDistance(o, nc.node, nc.node); err != nil {
			return err
		}
		idx.mu.Lock()
		if idx.graph.entry == nil {
			err := idx.graph.insertFirst(nc)
			if err == nil {
				idx.count.Store(1)
			}
			idx.mu.Unlock()
			return err
		}
		// Lost the bootstrap race; another goroutine seeded the graph.
		idx.mu.Unlock()
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	if err := idx.graph.insertNode(ctx, nc, o, idx.opts.trimConcurrency); err != nil {
		return err
	}
	idx.count.Add(1)
	return nil
}

// Search returns the k nodes nearest to query, closest first. query is an
// index into the oracle's space and does not have to be an inserted node.
func (idx *Index) Search(ctx context.Context, query, k int, o Oracle, optFns ...SearchOption) ([]Neighbor, error) {
	if k < 1 {
		return nil, invalidParametersf("k must be positive")
	}
	var so searchOptions
	for _, fn := range optFns {
		fn(&so)
	}
	ef := idx.params.EfConstruction
	if so.ef > 0 {
		ef = so.ef
	}

	start := time.Now()
	idx.mu.RLock()
	results, err := idx.graph.search(query, k, ef, o, so.filter)
	idx.mu.RUnlock()
	duration := time.Since(start)
	idx.opts.metricsCollector.RecordSearch(k, duration, err)
	idx.opts.logger.LogSearch(ctx, query, k, len(results), duration, err)
	return results, err
}

// sampleLevel flips a fair coin per level, capped at MaxLevel.
func (idx *Index) sampleLevel() int {
	idx.rngMu.Lock()
	defer idx.rngMu.Unlock()
	level := 0
	for level < idx.params.MaxLevel && idx.rng.Intn(2) == 1 {
		level++
	}
	return level
}
