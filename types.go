package hnsw

// Neighbor is a search or planning result: a node handle together with its
// metric distance from the query.
type Neighbor struct {
	// ID is the node identifier referenced by the neighbor.
	ID int
	// Distance is the metric distance between the query and the neighbor.
	Distance float32
}

// nodeContext identifies a node alongside the highest layer it participates in.
type nodeContext struct {
	node  int
	level int
}

// entryPoint is the node/level pair used as the universal starting position
// for descent and insertion planning.
type entryPoint struct {
	node  int
	level int
}

// edgeContext carries the degree budget for a single layer. The budget is
// uniform across layers, including layer 0.
type edgeContext struct {
	level          int
	maxConnections int
}

func edgeContextForLevel(params Params, level int) edgeContext {
	return edgeContext{level: level, maxConnections: params.MaxConnections}
}

// layerPlan holds the planned candidate neighbors for one layer, sorted
// ascending by distance.
type layerPlan struct {
	level     int
	neighbors []Neighbor
}

// insertionPlan is the full per-layer candidate plan for a node insertion.
// It is produced by planning, consumed by application, and then discarded.
type insertionPlan struct {
	layers []layerPlan
}

// takeForLevel drops layers above the node's sampled level.
func (p insertionPlan) takeForLevel(level int) insertionPlan {
	kept := p.layers[:0]
	for _, layer := range p.layers {
		if layer.level <= level {
			kept = append(kept, layer)
		}
	}
	p.layers = kept
	return p
}

// neighborUpdate is a staged replacement of an existing node's neighbor list
// at one layer. Updates are applied in staging order during commit.
type neighborUpdate struct {
	node      int
	level     int
	neighbors []int
}

// preparedInsertion is the atomic commit unit for one insertion: the new
// node's per-layer lists, the entry promotion decision, and the staged
// updates for existing nodes. Updates superseded by a trim result are
// replaced at commit time.
type preparedInsertion struct {
	node         nodeContext
	promoteEntry bool
	newNeighbors [][]int
	updates      []neighborUpdate
}
