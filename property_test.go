package hnsw

import (
	"context"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// randomLineOracle builds a line oracle with n pseudo-random positions.
func randomLineOracle(n int, seed int64) lineOracle {
	rng := rand.New(rand.NewSource(seed))
	positions := make([]float32, n)
	for i := range positions {
		positions[i] = rng.Float32() * 100
	}
	return lineOracle{positions: positions}
}

// checkGraphInvariants reports whether the structural guarantees hold; used
// by the property tests where assertions must reduce to a boolean.
func checkGraphInvariants(idx *Index) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	g := idx.graph
	for id, slot := range g.nodes {
		if slot == nil {
			continue
		}
		for level := 0; level <= slot.maxLevel(); level++ {
			neighbors := slot.neighborsAt(level)
			if len(neighbors) > g.params.MaxConnections {
				return false
			}
			seen := make(map[int]struct{}, len(neighbors))
			for _, nb := range neighbors {
				if nb == id {
					return false
				}
				if _, dup := seen[nb]; dup {
					return false
				}
				seen[nb] = struct{}{}
				target := g.nodeAt(nb)
				if target == nil || target.maxLevel() < level {
					return false
				}
			}
		}
	}
	if g.entry == nil {
		return len(g.nodes) == 0 || idx.Len() == 0
	}
	entryNode := g.nodeAt(g.entry.node)
	return entryNode != nil && entryNode.maxLevel() >= g.entry.level
}

// TestGraphProperties verifies the invariants of §degree-bounded graphs for
// arbitrary parameter combinations and insertion sequences.
func TestGraphProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping property-based tests in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 40
	parameters.Rng = rand.New(rand.NewSource(1234))

	properties := gopter.NewProperties(parameters)

	properties.Property("degree bound, no self-loops, and layer references hold", prop.ForAll(
		func(maxConn, maxLevel, ef, n int, seed int64) bool {
			params := Params{MaxConnections: maxConn, EfConstruction: ef, MaxLevel: maxLevel}
			oracle := randomLineOracle(n, seed)
			idx := New(params, n, seed)
			for node := range n {
				if err := idx.Insert(context.Background(), node, oracle); err != nil {
					return false
				}
			}
			return idx.Len() == n && checkGraphInvariants(idx)
		},
		gen.IntRange(1, 5),
		gen.IntRange(1, 4),
		gen.IntRange(1, 8),
		gen.IntRange(1, 40),
		gen.Int64(),
	))

	properties.Property("entry level is non-decreasing across insertions", prop.ForAll(
		func(n int, seed int64) bool {
			params := Params{MaxConnections: 3, EfConstruction: 4, MaxLevel: 6}
			oracle := randomLineOracle(n, seed)
			idx := New(params, n, seed)

			prev := -1
			for node := range n {
				if err := idx.Insert(context.Background(), node, oracle); err != nil {
					return false
				}
				level := idx.Stats().EntryLevel
				if level < prev {
					return false
				}
				prev = level
			}
			return true
		},
		gen.IntRange(1, 50),
		gen.Int64(),
	))

	properties.Property("search returns at most k results sorted ascending", prop.ForAll(
		func(n, k int, seed int64) bool {
			params := Params{MaxConnections: 4, EfConstruction: 8, MaxLevel: 4}
			oracle := randomLineOracle(n+1, seed)
			idx := New(params, n, seed)
			for node := range n {
				if err := idx.Insert(context.Background(), node, oracle); err != nil {
					return false
				}
			}

			results, err := idx.Search(context.Background(), n, k, oracle)
			if err != nil {
				return false
			}
			if len(results) > k {
				return false
			}
			for i := 1; i < len(results); i++ {
				if results[i-1].Distance > results[i].Distance {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 40),
		gen.IntRange(1, 10),
		gen.Int64(),
	))

	properties.Property("duplicate insertion fails and leaves the graph intact", prop.ForAll(
		func(n int, seed int64) bool {
			params := Params{MaxConnections: 3, EfConstruction: 4, MaxLevel: 4}
			oracle := randomLineOracle(n, seed)
			idx := New(params, n, seed)
			for node := range n {
				if err := idx.Insert(context.Background(), node, oracle); err != nil {
					return false
				}
			}

			dup := int(seed%int64(n) + int64(n)) % n
			if err := idx.Insert(context.Background(), dup, oracle); err == nil {
				return false
			}
			return idx.Len() == n && checkGraphInvariants(idx)
		},
		gen.IntRange(1, 30),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
