package hnsw_bench_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/graphann/hnsw"
	"github.com/graphann/hnsw/metric"
	"github.com/graphann/hnsw/oracleutil"
	"github.com/graphann/hnsw/testutil"
)

const benchSeed = 4711

func defaultParams() hnsw.Params {
	return hnsw.Params{MaxConnections: 16, EfConstruction: 64, MaxLevel: 16}
}

// newDataset returns size+queries vectors; the tail vectors serve as held-out
// queries.
func newDataset(size, queries, dim int) [][]float32 {
	rng := testutil.NewRNG(benchSeed)
	return rng.UniformVectors(size+queries, dim)
}

// buildIndex inserts the first size vectors outside the timed section.
func buildIndex(b *testing.B, vectors [][]float32, size int, params hnsw.Params) (*hnsw.Index, *oracleutil.VectorOracle) {
	b.Helper()
	oracle := oracleutil.Vectors(vectors, metric.SquaredL2)
	idx := hnsw.New(params, size, benchSeed)
	ctx := context.Background()
	for node := 0; node < size; node++ {
		if err := idx.Insert(ctx, node, oracle); err != nil {
			b.Fatal(err)
		}
	}
	return idx, oracle
}

func formatCount(n int) string {
	return fmt.Sprintf("n=%d", n)
}

func formatDim(dim int) string {
	return fmt.Sprintf("dim=%d", dim)
}

// derivedOracle computes vectors on demand from the node id, so insert
// benchmarks can grow the graph without a pre-sized matrix.
type derivedOracle struct {
	dim int
}

func (d derivedOracle) vector(id int, out []float32) {
	state := uint64(id)*0x9E3779B97F4A7C15 + 0xD1B54A32D192ED03
	for j := range out {
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		out[j] = float32(state&0xFFFF) / 65536
	}
}

func (d derivedOracle) Distance(query, candidate int) (float32, error) {
	q := make([]float32, d.dim)
	c := make([]float32, d.dim)
	d.vector(query, q)
	d.vector(candidate, c)
	return metric.SquaredL2(q, c), nil
}

func (d derivedOracle) BatchDistances(query int, candidates []int) ([]float32, error) {
	q := make([]float32, d.dim)
	d.vector(query, q)
	c := make([]float32, d.dim)
	out := make([]float32, len(candidates))
	for i, candidate := range candidates {
		d.vector(candidate, c)
		out[i] = metric.SquaredL2(q, c)
	}
	return out, nil
}
