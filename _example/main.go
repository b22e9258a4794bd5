package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/graphann/hnsw"
	"github.com/graphann/hnsw/metric"
	"github.com/graphann/hnsw/oracleutil"
	"github.com/graphann/hnsw/testutil"
)

func main() {
	seed := int64(4711)
	dim := 32
	size := 5000
	k := 10

	ctx := context.Background()

	// The last vector doubles as the query; it is never inserted.
	rng := testutil.NewRNG(seed)
	vectors := rng.UniformVectors(size+1, dim)
	query := size

	oracle := oracleutil.Vectors(vectors, metric.SquaredL2)

	params := hnsw.Params{MaxConnections: 16, EfConstruction: 64, MaxLevel: 16}
	idx := hnsw.New(params, size, seed)

	fmt.Println("--- Insert ---")
	fmt.Println("Dimension:", dim)
	fmt.Println("Size:", size)

	start := time.Now()
	for node := range size {
		if err := idx.Insert(ctx, node, oracle); err != nil {
			log.Fatal(err)
		}
	}
	fmt.Printf("Seconds: %.2f\n\n", time.Since(start).Seconds())

	printStats(idx.Stats())

	fmt.Println("--- KNN ---")

	start = time.Now()
	results, err := idx.Search(ctx, query, k, oracle, hnsw.WithEF(80))
	if err != nil {
		log.Fatal(err)
	}
	knnSeconds := time.Since(start).Seconds()

	printResults(results)
	fmt.Printf("Seconds: %.8f\n\n", knnSeconds)

	fmt.Println("--- Brute ---")

	start = time.Now()
	truth := testutil.BruteForceSearch(vectors[:size], vectors[query], k, metric.SquaredL2)
	bruteSeconds := time.Since(start).Seconds()

	for _, r := range truth {
		fmt.Printf("ID: %d, Distance: %.4f\n", r.ID, r.Distance)
	}
	fmt.Printf("Seconds: %.8f\n\n", bruteSeconds)

	approx := make([]testutil.SearchResult, len(results))
	for i, r := range results {
		approx[i] = testutil.SearchResult{ID: r.ID, Distance: r.Distance}
	}
	fmt.Printf("Recall@%d: %.2f\n", k, testutil.ComputeRecall(truth, approx))
}

func printStats(stats hnsw.Stats) {
	fmt.Println("--- Stats ---")
	fmt.Println("Nodes:", stats.Nodes)
	fmt.Printf("Entry: node %d at level %d\n", stats.EntryNode, stats.EntryLevel)
	for _, level := range stats.Levels {
		fmt.Printf("Level %d: %d nodes, avg %.1f connections\n",
			level.Level, level.Nodes, level.AvgConnections)
	}
	fmt.Println()
}

func printResults(results []hnsw.Neighbor) {
	for _, r := range results {
		fmt.Printf("ID: %d, Distance: %.4f\n", r.ID, r.Distance)
	}
}
