// Package hnsw provides a hierarchical navigable small world index for
// approximate nearest neighbor search.
//
// The index stores graph topology only. Distances are computed on demand by
// a caller-supplied Oracle, so vectors (or whatever else backs the metric)
// stay wherever they already live and nodes are addressed by plain integers.
//
// # Quick Start
//
//	ctx := context.Background()
//	idx := hnsw.New(hnsw.Params{
//		MaxConnections: 16,
//		EfConstruction: 64,
//		MaxLevel:       12,
//	}, len(vectors), 42)
//
//	oracle := oracleutil.Vectors(vectors, metric.SquaredL2)
//	for id := range vectors {
//		if err := idx.Insert(ctx, id, oracle); err != nil {
//			log.Fatal(err)
//		}
//	}
//
//	results, _ := idx.Search(ctx, 0, 10, oracle)
//	for _, r := range results {
//		fmt.Println(r.ID, r.Distance)
//	}
//
// # Oracles
//
// An Oracle answers Distance(query, candidate) for a pair of integer
// handles. Oracles that can answer many distances at once (a remote
// service, a GPU kernel) implement BatchOracle and the index batches
// automatically. The oracleutil subpackage has ready-made oracles for
// in-memory vectors plus caching and rate-limiting decorators.
//
// # Concurrency
//
// All Index methods are safe for concurrent use. Searches share a read
// lock, insertions serialize on a write lock, and each insertion fans its
// neighbor trims out over a bounded worker group. Oracles must be safe for
// concurrent calls.
//
// # Key Features
//
//   - Distance oracle API, no vector storage
//   - Deterministic level sampling from a caller-supplied seed
//   - Batched distance evaluation wherever candidates group naturally
//   - Filtered search over roaring bitmaps
//   - Structured logging (slog) and pluggable metrics
package hnsw
