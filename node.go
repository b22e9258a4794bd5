package hnsw

import "slices"

// node is the stored representation of a graph vertex: one neighbor-id list
// per layer from 0 up to the node's highest participating layer.
type node struct {
	neighbors [][]int
}

func newNode(level int) *node {
	return &node{neighbors: make([][]int, level+1)}
}

// neighborsAt returns the neighbor list for a layer, or nil when the node
// does not participate at that layer.
func (n *node) neighborsAt(level int) []int {
	if level >= len(n.neighbors) {
		return nil
	}
	return n.neighbors[level]
}

// setNeighbors replaces the neighbor list for a layer, extending the layer
// table when needed.
func (n *node) setNeighbors(level int, ids []int) {
	if level >= len(n.neighbors) {
		grown := make([][]int, level+1)
		copy(grown, n.neighbors)
		n.neighbors = grown
	}
	n.neighbors[level] = ids
}

// maxLevel returns the highest layer the node participates in.
func (n *node) maxLevel() int {
	return len(n.neighbors) - 1
}

// trimJob captures an existing node whose staged candidate list exceeds the
// degree budget at one layer and must be re-trimmed to the best
// maxConnections entries.
type trimJob struct {
	node       int
	ctx        edgeContext
	candidates []int
}

// prioritise moves the newly inserted node to the front of the candidate
// list so it is always part of the evaluated set.
func (j *trimJob) prioritise(newNode int) {
	if i := slices.Index(j.candidates, newNode); i > 0 {
		j.candidates[0], j.candidates[i] = j.candidates[i], j.candidates[0]
	}
}

// evaluate recomputes distances from the job's node to every candidate,
// stable-sorts ascending, and keeps the best maxConnections. It performs no
// graph mutation; results are applied during commit.
func (j *trimJob) evaluate(o Oracle, newNode int) (trimResult, error) {
	j.prioritise(newNode)
	distances, err := validateBatchDistances(o, j.node, j.candidates)
	if err != nil {
		return trimResult{}, err
	}
	scored := make([]Neighbor, len(j.candidates))
	for i, id := range j.candidates {
		scored[i] = Neighbor{ID: id, Distance: distances[i]}
	}
	slices.SortStableFunc(scored, func(a, b Neighbor) int {
		if a.Distance < b.Distance {
			return -1
		}
		if a.Distance > b.Distance {
			return 1
		}
		return 0
	})
	if len(scored) > j.ctx.maxConnections {
		scored = scored[:j.ctx.maxConnections]
	}
	ids := make([]int, len(scored))
	for i, nb := range scored {
		ids[i] = nb.ID
	}
	return trimResult{node: j.node, level: j.ctx.level, neighbors: ids}, nil
}

// trimResult is the outcome of one trim job; it overrides the matching
// (node, level) staged update at commit time.
type trimResult struct {
	node      int
	level     int
	neighbors []int
}

// candidateMap stages reverse-edge candidate lists per (node, level) key in
// first-touch order, so commit applies updates deterministically.
type candidateMap struct {
	entries []neighborUpdate
}

// entry returns the staged list for key, creating an empty one on first use.
// The pointer is invalidated by the next entry call; use it immediately.
func (m *candidateMap) entry(nodeID, level int) *[]int {
	for i := range m.entries {
		if m.entries[i].node == nodeID && m.entries[i].level == level {
			return &m.entries[i].neighbors
		}
	}
	m.entries = append(m.entries, neighborUpdate{node: nodeID, level: level})
	return &m.entries[len(m.entries)-1].neighbors
}

func (m *candidateMap) updates() []neighborUpdate {
	return m.entries
}
