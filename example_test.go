package hnsw_test

import (
	"context"
	"fmt"
	"log"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/graphann/hnsw"
	"github.com/graphann/hnsw/metric"
	"github.com/graphann/hnsw/oracleutil"
)

// ExampleNew demonstrates building an index over a small vector set and
// querying it. The index only sees integer handles; vectors stay in the
// oracle.
func ExampleNew() {
	ctx := context.Background()
	vectors := [][]float32{{0}, {1}, {2}, {3}, {4}}
	oracle := oracleutil.Vectors(vectors, metric.SquaredL2)

	params := hnsw.Params{MaxConnections: 2, EfConstruction: 4, MaxLevel: 4}
	idx := hnsw.New(params, len(vectors), 42)

	for node := range vectors {
		if err := idx.Insert(ctx, node, oracle); err != nil {
			log.Fatal(err)
		}
	}

	results, err := idx.Search(ctx, 0, 3, oracle)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Found %d results\n", len(results))
	fmt.Printf("Nearest: node %d at distance %g\n", results[0].ID, results[0].Distance)
	// Output:
	// Found 3 results
	// Nearest: node 0 at distance 0
}

// ExampleIndex_InsertBatch demonstrates inserting many nodes in one call.
func ExampleIndex_InsertBatch() {
	ctx := context.Background()
	vectors := [][]float32{{0}, {1}, {2}, {3}, {4}}
	oracle := oracleutil.Vectors(vectors, metric.SquaredL2)

	idx := hnsw.New(hnsw.Params{MaxConnections: 2, EfConstruction: 4, MaxLevel: 4}, len(vectors), 42)
	if err := idx.InsertBatch(ctx, []int{0, 1, 2, 3, 4}, oracle); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Indexed %d nodes\n", idx.Len())
	// Output: Indexed 5 nodes
}

// ExampleIndex_Search demonstrates widening the exploration on a per-query
// basis with WithEF.
func ExampleIndex_Search() {
	ctx := context.Background()
	vectors := [][]float32{{0}, {1}, {2}, {3}, {4}, {5}, {6}, {7}}
	oracle := oracleutil.Vectors(vectors, metric.SquaredL2)

	idx := hnsw.New(hnsw.Params{MaxConnections: 2, EfConstruction: 2, MaxLevel: 4}, len(vectors), 42)
	for node := range vectors {
		if err := idx.Insert(ctx, node, oracle); err != nil {
			log.Fatal(err)
		}
	}

	results, err := idx.Search(ctx, 3, 4, oracle, hnsw.WithEF(8))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Found %d results\n", len(results))
	fmt.Printf("Nearest: node %d\n", results[0].ID)
	// Output:
	// Found 4 results
	// Nearest: node 3
}

// ExampleBitmapFilter demonstrates restricting results to an allow-list.
func ExampleBitmapFilter() {
	ctx := context.Background()
	vectors := [][]float32{{0}, {1}, {2}, {3}, {4}, {5}}
	oracle := oracleutil.Vectors(vectors, metric.SquaredL2)

	idx := hnsw.New(hnsw.Params{MaxConnections: 2, EfConstruction: 6, MaxLevel: 4}, len(vectors), 42)
	for node := range vectors {
		if err := idx.Insert(ctx, node, oracle); err != nil {
			log.Fatal(err)
		}
	}

	allowed := roaring.BitmapOf(1, 3, 5)
	results, err := idx.Search(ctx, 0, 2, oracle, hnsw.WithFilter(hnsw.BitmapFilter(allowed)))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Nearest allowed: node %d\n", results[0].ID)
	// Output: Nearest allowed: node 1
}

// ExampleWithMetricsCollector demonstrates in-memory operation metrics.
func ExampleWithMetricsCollector() {
	ctx := context.Background()
	vectors := [][]float32{{0}, {1}, {2}}
	oracle := oracleutil.Vectors(vectors, metric.SquaredL2)

	metrics := &hnsw.BasicMetricsCollector{}
	idx := hnsw.New(hnsw.Params{MaxConnections: 2, EfConstruction: 4, MaxLevel: 2}, len(vectors), 42,
		hnsw.WithMetricsCollector(metrics))

	for node := range vectors {
		if err := idx.Insert(ctx, node, oracle); err != nil {
			log.Fatal(err)
		}
	}

	stats := metrics.GetStats()
	fmt.Printf("Inserts: %d, errors: %d\n", stats.InsertCount, stats.InsertErrors)
	// Output: Inserts: 3, errors: 0
}

// ExampleOracle demonstrates implementing the Oracle interface directly, for
// distances that are computed rather than stored.
func ExampleOracle() {
	ctx := context.Background()

	// Distance between handles derived from the handles themselves.
	oracle := handleOracle{}

	idx := hnsw.New(hnsw.Params{MaxConnections: 2, EfConstruction: 4, MaxLevel: 2}, 4, 42)
	for node := range 4 {
		if err := idx.Insert(ctx, node, oracle); err != nil {
			log.Fatal(err)
		}
	}

	results, err := idx.Search(ctx, 2, 1, oracle)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Nearest to 2: node %d\n", results[0].ID)
	// Output: Nearest to 2: node 2
}

type handleOracle struct{}

func (handleOracle) Distance(query, candidate int) (float32, error) {
	d := float32(query - candidate)
	return d * d, nil
}
