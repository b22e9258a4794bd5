package hnsw

import (
	"context"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// graph owns the node table and the entry point. All methods assume the
// caller holds the index lock: read methods the shared side, mutating
// methods the exclusive side.
type graph struct {
	params Params
	nodes  []*node
	entry  *entryPoint
}

func newGraph(params Params, capacity int) *graph {
	if capacity < 0 {
		capacity = 0
	}
	return &graph{
		params: params,
		nodes:  make([]*node, capacity),
	}
}

// nodeAt returns the node record for id, or nil when the slot is vacant or
// out of range.
func (g *graph) nodeAt(id int) *node {
	if id < 0 || id >= len(g.nodes) {
		return nil
	}
	return g.nodes[id]
}

func (g *graph) ensureCapacity(capacity int) {
	if len(g.nodes) < capacity {
		g.nodes = append(g.nodes, make([]*node, capacity-len(g.nodes))...)
	}
}

// attachNode allocates adjacency storage for a node participating up to
// level. The node table grows as needed; growth is the only side effect when
// attachment fails.
func (g *graph) attachNode(id, level int) error {
	if id < 0 {
		return invalidParametersf("node %d is negative", id)
	}
	if level > g.params.MaxLevel {
		return invalidParametersf("level %d exceeds max level %d", level, g.params.MaxLevel)
	}
	g.ensureCapacity(id + 1)
	if g.nodes[id] != nil {
		return &DuplicateNodeError{Node: id}
	}
	g.nodes[id] = newNode(level)
	return nil
}

// insertFirst bootstraps an empty graph with its first node, which becomes
// the entry point at its sampled level.
func (g *graph) insertFirst(nc nodeContext) error {
	if g.entry != nil {
		return invalidParametersf("graph already has an entry point")
	}
	if err := g.attachNode(nc.node, nc.level); err != nil {
		return err
	}
	g.entry = &entryPoint{node: nc.node, level: nc.level}
	return nil
}

// planInsertion scores every existing node against the new one and keeps the
// best MaxConnections per layer from 0 up to the node's level. The full scan
// is the dominant cost of insertion and scales linearly with graph size.
func (g *graph) planInsertion(nc nodeContext, o Oracle) (insertionPlan, error) {
	if g.entry == nil {
		return insertionPlan{}, invalidParametersf("cannot plan insertion without an entry point")
	}

	candidates := make([]int, 0, len(g.nodes))
	for id, slot := range g.nodes {
		if slot != nil && id != nc.node {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return insertionPlan{}, nil
	}

	distances, err := validateBatchDistances(o, nc.node, candidates)
	if err != nil {
		return insertionPlan{}, err
	}
	scored := make([]Neighbor, len(candidates))
	for i, id := range candidates {
		scored[i] = Neighbor{ID: id, Distance: distances[i]}
	}
	slices.SortFunc(scored, func(a, b Neighbor) int {
		if a.Distance < b.Distance {
			return -1
		}
		if a.Distance > b.Distance {
			return 1
		}
		return 0
	})

	limit := min(g.params.MaxConnections, len(scored))
	layers := make([]layerPlan, 0, nc.level+1)
	for level := 0; level <= nc.level; level++ {
		layers = append(layers, layerPlan{
			level:     level,
			neighbors: slices.Clone(scored[:limit]),
		})
	}
	return insertionPlan{layers: layers}, nil
}

// insertNode runs the full plan, apply, trim, commit sequence for one node.
// Trim jobs fan out on an errgroup bounded by trimLimit; the first failure
// cancels the remaining jobs and aborts before commit. A trimLimit below 1
// falls back to GOMAXPROCS.
func (g *graph) insertNode(ctx context.Context, nc nodeContext, o Oracle, trimLimit int) error {
	if trimLimit < 1 {
		trimLimit = runtime.GOMAXPROCS(0)
	}

	plan, err := g.planInsertion(nc, o)
	if err != nil {
		return err
	}
	plan = plan.takeForLevel(nc.level)

	prepared, jobs, err := g.applyInsertion(nc, plan)
	if err != nil {
		return err
	}

	results := make([]trimResult, len(jobs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(trimLimit)
	for i := range jobs {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			res, err := jobs[i].evaluate(o, nc.node)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	return g.commitInsertion(prepared, results)
}

// commitInsertion applies all staged writes in one pass: the new node's
// per-layer lists, then each staged update in staging order, with trim
// results overriding their (node, level) entries. The entry point is
// promoted last when flagged.
func (g *graph) commitInsertion(prepared preparedInsertion, trims []trimResult) error {
	type trimKey struct{ node, level int }
	trimmed := make(map[trimKey][]int, len(trims))
	for _, tr := range trims {
		trimmed[trimKey{node: tr.node, level: tr.level}] = tr.neighbors
	}

	slot := g.nodeAt(prepared.node.node)
	if slot == nil {
		return graphInvariantf("node %d missing during commit", prepared.node.node)
	}
	for level, ids := range prepared.newNeighbors {
		slot.setNeighbors(level, ids)
	}

	for _, update := range prepared.updates {
		ids := update.neighbors
		if override, ok := trimmed[trimKey{node: update.node, level: update.level}]; ok {
			ids = override
		}
		existing := g.nodeAt(update.node)
		if existing == nil {
			return graphInvariantf("node %d missing during neighbor update", update.node)
		}
		existing.setNeighbors(update.level, ids)
	}

	if prepared.promoteEntry {
		g.entry = &entryPoint{node: prepared.node.node, level: prepared.node.level}
	}
	return nil
}
