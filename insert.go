package hnsw

import "slices"

// applyInsertion attaches the new node and stages every adjacency write the
// plan implies. Live neighbor lists are read once into the staging map and
// never mutated here; reverse lists that overflow their budget become trim
// jobs for the caller to evaluate before commit.
func (g *graph) applyInsertion(nc nodeContext, plan insertionPlan) (preparedInsertion, []trimJob, error) {
	if err := g.attachNode(nc.node, nc.level); err != nil {
		return preparedInsertion{}, nil, err
	}

	newNeighbors := make([][]int, nc.level+1)
	var staged candidateMap
	var jobs []trimJob

	for _, layer := range plan.layers {
		if layer.level > nc.level {
			continue
		}
		ec := edgeContextForLevel(g.params, layer.level)
		list := newNeighbors[layer.level]
		for _, neighbor := range layer.neighbors {
			if len(list) >= ec.maxConnections {
				break
			}
			if neighbor.ID == nc.node {
				continue
			}
			if slices.Contains(list, neighbor.ID) {
				continue
			}
			list = append(list, neighbor.ID)

			stagedList := staged.entry(neighbor.ID, layer.level)
			if len(*stagedList) == 0 {
				existing := g.nodeAt(neighbor.ID)
				if existing == nil {
					return preparedInsertion{}, nil, graphInvariantf("node %d missing while staging insertion", neighbor.ID)
				}
				// A candidate sampled below this layer contributes an empty
				// list; its layer table is extended at commit.
				*stagedList = append(*stagedList, existing.neighborsAt(layer.level)...)
			}
			if !slices.Contains(*stagedList, nc.node) {
				*stagedList = append(*stagedList, nc.node)
			}
			if len(*stagedList) > ec.maxConnections {
				job := trimJob{
					node:       neighbor.ID,
					ctx:        ec,
					candidates: slices.Clone(*stagedList),
				}
				job.prioritise(nc.node)
				jobs = append(jobs, job)
			}
		}
		newNeighbors[layer.level] = list
	}

	prepared := preparedInsertion{
		node:         nc,
		promoteEntry: g.entry == nil || nc.level > g.entry.level,
		newNeighbors: newNeighbors,
		updates:      staged.updates(),
	}
	return prepared, jobs, nil
}
