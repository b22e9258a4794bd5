package hnsw

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats_Empty(t *testing.T) {
	idx := New(testParams(), 8, 1)

	stats := idx.Stats()
	assert.Equal(t, 0, stats.Nodes)
	assert.Equal(t, 8, stats.Capacity)
	assert.Equal(t, -1, stats.EntryNode)
	assert.Equal(t, -1, stats.EntryLevel)
	assert.Equal(t, 2, stats.MaxConnections)
	assert.Equal(t, 2, stats.EfConstruction)
	assert.Equal(t, 2, stats.MaxLevel)
	assert.Empty(t, stats.Levels)
}

func TestStats_Populated(t *testing.T) {
	idx, _ := buildLineIndex(t, testParams(), 7, linePositions(6))

	stats := idx.Stats()
	assert.Equal(t, 6, stats.Nodes)
	assert.GreaterOrEqual(t, stats.Capacity, 6)
	assert.NotEqual(t, -1, stats.EntryNode)
	require.Len(t, stats.Levels, stats.EntryLevel+1,
		"the entry point holds the highest sampled level")

	// Every node participates on layer zero.
	assert.Equal(t, 6, stats.Levels[0].Nodes)

	for i, level := range stats.Levels {
		assert.Equal(t, i, level.Level)
		require.Positive(t, level.Nodes, "level %d has no participants", i)
		assert.InDelta(t, float64(level.Connections)/float64(level.Nodes), level.AvgConnections, 1e-9)
	}
}

func TestStats_LayerParticipationShrinks(t *testing.T) {
	idx := New(Params{MaxLevel: 6, MaxConnections: 4, EfConstruction: 8}, 128, 3)
	oracle := lineOracle{positions: linePositions(128)}
	for node := range 128 {
		require.NoError(t, idx.Insert(context.Background(), node, oracle))
	}

	stats := idx.Stats()
	require.NotEmpty(t, stats.Levels)
	for i := 1; i < len(stats.Levels); i++ {
		assert.LessOrEqual(t, stats.Levels[i].Nodes, stats.Levels[i-1].Nodes,
			"level %d cannot have more nodes than level %d", i, i-1)
	}
}
