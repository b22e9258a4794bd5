package hnsw

import (
	"fmt"
	"math"
)

// Oracle supplies metric distances between two node handles. The index never
// computes distances itself; every insertion and search is driven through an
// Oracle supplied by the caller.
//
// Implementations must be safe for concurrent use: trim evaluation calls the
// oracle from multiple goroutines during a single insertion.
type Oracle interface {
	// Distance computes the metric distance between query and candidate.
	Distance(query, candidate int) (float32, error)
}

// BatchOracle is an optional upgrade for oracles that can compute distances
// from a query to many candidates in a single pass. BatchDistances uses it
// when available instead of issuing one Distance call per candidate.
type BatchOracle interface {
	Oracle

	// BatchDistances computes the distance from query to every candidate,
	// in candidate order.
	BatchDistances(query int, candidates []int) ([]float32, error)
}

// BatchDistances computes distances from query to all candidates using o's
// batched form when implemented, falling back to one Distance call per
// candidate otherwise. The fallback short-circuits on the first failing
// candidate and returns its error.
func BatchDistances(o Oracle, query int, candidates []int) ([]float32, error) {
	if bo, ok := o.(BatchOracle); ok {
		return bo.BatchDistances(query, candidates)
	}
	distances := make([]float32, len(candidates))
	for i, candidate := range candidates {
		d, err := o.Distance(query, candidate)
		if err != nil {
			return nil, err
		}
		distances[i] = d
	}
	return distances, nil
}

// OutOfBoundsError reports that an oracle was asked about a node handle it
// cannot resolve.
type OutOfBoundsError struct {
	Index int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("index %d is out of bounds for oracle", e.Index)
}

// OperationError reports an application-defined failure inside an oracle's
// distance computation.
type OperationError struct {
	Message string
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("distance computation failed: %s", e.Message)
}

// Operationf builds an OperationError from a format string.
func Operationf(format string, args ...any) error {
	return &OperationError{Message: fmt.Sprintf(format, args...)}
}

// validateDistance fetches a single distance and rejects non-finite values.
// Oracle errors pass through wrapped; NaN and infinities surface as
// InvalidParametersError regardless of what the oracle reports.
func validateDistance(o Oracle, query, candidate int) (float32, error) {
	d, err := o.Distance(query, candidate)
	if err != nil {
		return 0, fmt.Errorf("oracle distance: %w", err)
	}
	if !isFinite(d) {
		return 0, invalidParametersf("non-finite distance returned for query %d and candidate %d", query, candidate)
	}
	return d, nil
}

// validateBatchDistances fetches a batch of distances and rejects non-finite
// values anywhere in the result.
func validateBatchDistances(o Oracle, query int, candidates []int) ([]float32, error) {
	distances, err := BatchDistances(o, query, candidates)
	if err != nil {
		return nil, fmt.Errorf("oracle batch distances: %w", err)
	}
	if len(distances) != len(candidates) {
		return nil, Operationf("batch returned %d distances for %d candidates", len(distances), len(candidates))
	}
	for _, d := range distances {
		if !isFinite(d) {
			return nil, invalidParametersf("non-finite distance returned in batch for query %d", query)
		}
	}
	return distances, nil
}

func isFinite(f float32) bool {
	f64 := float64(f)
	return !math.IsNaN(f64) && !math.IsInf(f64, 0)
}
