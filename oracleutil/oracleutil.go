// Package oracleutil provides ready-made distance oracles and decorators
// for composing them.
//
// VectorOracle answers from an in-memory matrix and is the common case.
// Cached and Throttled wrap any oracle, which matters mostly when distances
// come from somewhere expensive such as a remote embedding service.
package oracleutil

import (
	"github.com/graphann/hnsw"
	"github.com/graphann/hnsw/metric"
)

// VectorOracle answers distances from an in-memory matrix of vectors. The
// oracle is stateless apart from the matrix and safe for concurrent use as
// long as the vectors are not mutated.
type VectorOracle struct {
	vectors [][]float32
	fn      metric.Func
}

// Vectors creates an oracle over vectors using fn. A nil fn defaults to
// metric.SquaredL2. The slice is retained, not copied.
func Vectors(vectors [][]float32, fn metric.Func) *VectorOracle {
	if fn == nil {
		fn = metric.SquaredL2
	}
	return &VectorOracle{vectors: vectors, fn: fn}
}

// Len returns the number of vectors the oracle can address.
func (vo *VectorOracle) Len() int {
	return len(vo.vectors)
}

// Distance implements hnsw.Oracle.
func (vo *VectorOracle) Distance(query, candidate int) (float32, error) {
	q, err := vo.vector(query)
	if err != nil {
		return 0, err
	}
	c, err := vo.vector(candidate)
	if err != nil {
		return 0, err
	}
	return vo.fn(q, c), nil
}

// BatchDistances implements hnsw.BatchOracle.
func (vo *VectorOracle) BatchDistances(query int, candidates []int) ([]float32, error) {
	q, err := vo.vector(query)
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(candidates))
	for i, candidate := range candidates {
		c, err := vo.vector(candidate)
		if err != nil {
			return nil, err
		}
		out[i] = vo.fn(q, c)
	}
	return out, nil
}

func (vo *VectorOracle) vector(id int) ([]float32, error) {
	if id < 0 || id >= len(vo.vectors) {
		return nil, &hnsw.OutOfBoundsError{Index: id}
	}
	return vo.vectors[id], nil
}
