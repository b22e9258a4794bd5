// Package testutil provides deterministic data generators and ground-truth
// helpers for index tests and benchmarks.
//
// This package is intended for use in tests and benchmarks only.
//
// # Vector Generation
//
//	rng := testutil.NewRNG(seed)
//	vectors := rng.UniformVectors(1000, 128)   // uniform [0, 1)
//	vectors = rng.GaussianVectors(1000, 128)   // standard normal
//	vectors = rng.UnitVectors(1000, 128)       // on the hypersphere
//	vectors = rng.ClusteredVectors(1000, 128, 8, 0.05)
//
// # Exact Search (Ground Truth)
//
//	truth := testutil.BruteForceSearch(vectors, query, k, metric.SquaredL2)
//
// # Recall Verification
//
//	recall := testutil.ComputeRecall(truth, approximate)
package testutil
