package hnsw

// LevelStats describes one layer of the graph.
type LevelStats struct {
	Level          int
	Nodes          int
	Connections    int
	AvgConnections float64
}

// Stats is a point-in-time snapshot of the graph shape. Useful when
// debugging recall or memory issues.
type Stats struct {
	Nodes          int
	Capacity       int
	EntryNode      int
	EntryLevel     int
	MaxConnections int
	EfConstruction int
	MaxLevel       int
	Levels         []LevelStats
}

// Stats collects a snapshot under the read lock. EntryNode and EntryLevel
// are -1 while the graph is empty.
func (idx *Index) Stats() Stats {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	s := Stats{
		Nodes:          idx.Len(),
		Capacity:       len(idx.graph.nodes),
		EntryNode:      -1,
		EntryLevel:     -1,
		MaxConnections: idx.params.MaxConnections,
		EfConstruction: idx.params.EfConstruction,
		MaxLevel:       idx.params.MaxLevel,
	}
	if ep := idx.graph.entry; ep != nil {
		s.EntryNode = ep.node
		s.EntryLevel = ep.level
	}

	var levels []LevelStats
	for _, slot := range idx.graph.nodes {
		if slot == nil {
			continue
		}
		for level := 0; level <= slot.maxLevel(); level++ {
			for len(levels) <= level {
				levels = append(levels, LevelStats{Level: len(levels)})
			}
			levels[level].Nodes++
			levels[level].Connections += len(slot.neighborsAt(level))
		}
	}
	for i := range levels {
		if levels[i].Nodes > 0 {
			levels[i].AvgConnections = float64(levels[i].Connections) / float64(levels[i].Nodes)
		}
	}
	s.Levels = levels
	return s
}
