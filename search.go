package hnsw

import (
	"sync"

	"github.com/graphann/hnsw/internal/queue"
	"github.com/graphann/hnsw/internal/visited"
)

// visitedPool recycles traversal bitsets across searches. Sets come back
// Reset, sized for the largest graph they have seen.
var visitedPool = sync.Pool{
	New: func() any { return visited.New(0) },
}

// SearchOption configures a single Search call.
type SearchOption func(*searchOptions)

type searchOptions struct {
	ef     int
	filter func(id int) bool
}

// WithEF overrides the exploration width for the layer-zero sweep.
// Higher values improve recall at the cost of latency. Values below 1
// are ignored and the construction ef applies.
func WithEF(ef int) SearchOption {
	return func(o *searchOptions) {
		o.ef = ef
	}
}

// WithFilter restricts results to nodes where fn returns true. The graph is
// still traversed through non-matching nodes so that filtered results keep
// the recall of an unfiltered search.
func WithFilter(fn func(id int) bool) SearchOption {
	return func(o *searchOptions) {
		o.filter = fn
	}
}

// search walks greedily down from the entry point and runs a best-first
// sweep over the base layer. The query is an oracle index and does not have
// to be a node of the graph.
func (g *graph) search(query, k, ef int, o Oracle, filter func(id int) bool) ([]Neighbor, error) {
	if g.entry == nil {
		return nil, nil
	}

	current := g.entry.node
	currentDist, err := validateDistance(o, query, current)
	if err != nil {
		return nil, err
	}

	for level := g.entry.level; level > 0; level-- {
		moved := true
		for moved {
			moved = false
			slot := g.nodeAt(current)
			if slot == nil {
				return nil, graphInvariantf("node %d missing during descent", current)
			}
			neighbors := slot.neighborsAt(level)
			if len(neighbors) == 0 {
				continue
			}
			distances, err := validateBatchDistances(o, query, neighbors)
			if err != nil {
				return nil, err
			}
			for i, id := range neighbors {
				if distances[i] < currentDist {
					currentDist = distances[i]
					current = id
					moved = true
				}
			}
		}
	}

	results, err := g.searchLayer(query, current, 0, ef, o, filter)
	if err != nil {
		return nil, err
	}
	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// searchLayer is the best-first sweep over one layer. It keeps a min-heap
// frontier and a max-heap of the ef best results, and stops once the nearest
// frontier candidate is further than the worst kept result.
func (g *graph) searchLayer(query, entry, level, ef int, o Oracle, filter func(id int) bool) ([]Neighbor, error) {
	entryDist, err := validateDistance(o, query, entry)
	if err != nil {
		return nil, err
	}

	seen := visitedPool.Get().(*visited.VisitedSet)
	seen.EnsureCapacity(len(g.nodes))
	defer func() {
		seen.Reset()
		visitedPool.Put(seen)
	}()
	seen.Visit(entry)

	candidates := queue.NewMin(ef)
	best := queue.NewMax(ef)
	candidates.PushItem(queue.Item{Node: entry, Distance: entryDist})
	if filter == nil || filter(entry) {
		best.PushItem(queue.Item{Node: entry, Distance: entryDist})
	}

	fresh := make([]int, 0, g.params.MaxConnections)
	for {
		candidate, ok := candidates.PopItem()
		if !ok {
			break
		}
		if best.Len() >= ef {
			if furthest, _ := best.TopItem(); candidate.Distance > furthest.Distance {
				break
			}
		}

		slot := g.nodeAt(candidate.Node)
		if slot == nil {
			return nil, graphInvariantf("node %d missing during layer search", candidate.Node)
		}
		fresh = fresh[:0]
		for _, id := range slot.neighborsAt(level) {
			if !seen.Visited(id) {
				seen.Visit(id)
				fresh = append(fresh, id)
			}
		}
		if len(fresh) == 0 {
			continue
		}

		distances, err := validateBatchDistances(o, query, fresh)
		if err != nil {
			return nil, err
		}
		for i, id := range fresh {
			dist := distances[i]
			if best.Len() >= ef {
				if furthest, _ := best.TopItem(); dist >= furthest.Distance {
					continue
				}
			}
			candidates.PushItem(queue.Item{Node: id, Distance: dist})
			if filter == nil || filter(id) {
				best.PushItem(queue.Item{Node: id, Distance: dist})
				if best.Len() > ef {
					best.PopItem()
				}
			}
		}
	}

	out := make([]Neighbor, best.Len())
	for i := len(out) - 1; i >= 0; i-- {
		item, _ := best.PopItem()
		out[i] = Neighbor{ID: item.Node, Distance: item.Distance}
	}
	return out, nil
}
