package services

import (
	"testing"

	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func depthNodes(counts map[int]int) []*entities.PathwayNode {
	var nodes []*entities.PathwayNode
	for depth, value := range counts {
		nodes = append(nodes, &entities.PathwayNode{Level: depth + 2, Value: value})
	}
	return nodes
}

func TestBuildRetentionFunnel(t *testing.T) {
	stages := BuildRetentionFunnel(depthNodes(map[int]int{1: 1000, 2: 400, 3: 150}))

	require.Len(t, stages, 3)
	assert.Equal(t, entities.FunnelStage{Depth: 1, Patients: 1000, Percentage: 100}, stages[0])
	assert.Equal(t, entities.FunnelStage{Depth: 2, Patients: 400, Percentage: 40}, stages[1])
	assert.Equal(t, entities.FunnelStage{Depth: 3, Patients: 150, Percentage: 15}, stages[2])
}

func TestBuildRetentionFunnel_SumsAcrossRows(t *testing.T) {
	nodes := []*entities.PathwayNode{
		{Level: 3, Value: 600},
		{Level: 3, Value: 400},
		{Level: 4, Value: 400},
		{Level: 2, Value: 9999}, // directorate rows never contribute
	}

	stages := BuildRetentionFunnel(nodes)
	require.Len(t, stages, 2)
	assert.Equal(t, 1000, stages[0].Patients)
	assert.Equal(t, 40.0, stages[1].Percentage)
}

func TestBuildRetentionFunnel_Empty(t *testing.T) {
	assert.Empty(t, BuildRetentionFunnel(nil))
}

func TestBuildStopDepth(t *testing.T) {
	entries := BuildStopDepth(depthNodes(map[int]int{1: 1000, 2: 400, 3: 150}))

	require.Len(t, entries, 3)
	assert.Equal(t, entities.StopDepthEntry{Depth: 1, Stopped: 600, Percentage: 60}, entries[0])
	assert.Equal(t, entities.StopDepthEntry{Depth: 2, Stopped: 250, Percentage: 25}, entries[1])
	assert.Equal(t, entities.StopDepthEntry{Depth: 3, Stopped: 150, Percentage: 15}, entries[2])
}

func TestBuildStopDepth_PercentagesSumToHundred(t *testing.T) {
	entries := BuildStopDepth(depthNodes(map[int]int{1: 997, 2: 401, 3: 149, 4: 31}))

	var total float64
	for _, e := range entries {
		total += e.Percentage
	}
	assert.InDelta(t, 100.0, total, 0.2)
}

func TestBuildStopDepth_ClampsNegativeCounts(t *testing.T) {
	// Depth 2 larger than depth 1 violates the monotonicity contract.
	entries := BuildStopDepth(depthNodes(map[int]int{1: 100, 2: 120}))

	require.Len(t, entries, 2)
	assert.Equal(t, 0, entries[0].Stopped)
	assert.Equal(t, 120, entries[1].Stopped)
}
