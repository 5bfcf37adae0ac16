package services

import (
	"testing"

	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(parents, ids string, level, value int) *entities.PathwayNode {
	return &entities.PathwayNode{Parents: parents, IDs: ids, Level: level, Value: value}
}

func TestPruneAncestors_RemovesChildlessTrust(t *testing.T) {
	// TRUST2 had only ADA pathways; after filtering by ETA its subtree is
	// gone and both its directorate and the trust itself must go.
	nodes := []*entities.PathwayNode{
		node("", "ROOT", 0, 150),
		node("ROOT", "ROOT - TRUST1", 1, 100),
		node("ROOT - TRUST1", "ROOT - TRUST1 - RHEUM", 2, 100),
		node("ROOT - TRUST1 - RHEUM", "ROOT - TRUST1 - RHEUM - ETA", 3, 100),
		node("ROOT", "ROOT - TRUST2", 1, 50),
		node("ROOT - TRUST2", "ROOT - TRUST2 - RHEUM", 2, 50),
	}

	pruned := PruneAncestors(nodes)

	ids := make([]string, 0, len(pruned))
	for _, n := range pruned {
		ids = append(ids, n.IDs)
	}
	assert.Contains(t, ids, "ROOT")
	assert.Contains(t, ids, "ROOT - TRUST1")
	assert.Contains(t, ids, "ROOT - TRUST1 - RHEUM")
	assert.Contains(t, ids, "ROOT - TRUST1 - RHEUM - ETA")
	assert.NotContains(t, ids, "ROOT - TRUST2")
	assert.NotContains(t, ids, "ROOT - TRUST2 - RHEUM")
}

func TestPruneAncestors_SecondPassRemovesOrphanedTrust(t *testing.T) {
	// TRUST2's directorate has no surviving leaf, and the trust's only
	// child is that directorate: pass one removes the directorate, pass two
	// must remove the trust it orphaned. The trust still qualifies in pass
	// one because the doomed directorate references it.
	nodes := []*entities.PathwayNode{
		node("", "ROOT", 0, 150),
		node("ROOT", "ROOT - TRUST2", 1, 50),
		node("ROOT - TRUST2", "ROOT - TRUST2 - GASTRO", 2, 50),
	}

	pruned := PruneAncestors(nodes)

	require.Len(t, pruned, 1)
	assert.Equal(t, "ROOT", pruned[0].IDs)
}

func TestPruneAncestors_RootAlwaysKept(t *testing.T) {
	pruned := PruneAncestors([]*entities.PathwayNode{node("", "ROOT", 0, 0)})
	require.Len(t, pruned, 1)
}

func TestPruneAncestors_Idempotent(t *testing.T) {
	nodes := []*entities.PathwayNode{
		node("", "ROOT", 0, 150),
		node("ROOT", "ROOT - TRUST1", 1, 100),
		node("ROOT - TRUST1", "ROOT - TRUST1 - RHEUM", 2, 100),
		node("ROOT - TRUST1 - RHEUM", "ROOT - TRUST1 - RHEUM - ETA", 3, 100),
		node("ROOT", "ROOT - TRUST2", 1, 50),
	}

	once := PruneAncestors(nodes)
	twice := PruneAncestors(once)
	assert.Equal(t, once, twice)
}

func TestPruneAncestors_Soundness(t *testing.T) {
	// Every kept trust/directorate row must be referenced as a parent by
	// another kept row.
	nodes := []*entities.PathwayNode{
		node("", "ROOT", 0, 300),
		node("ROOT", "ROOT - TRUST1", 1, 200),
		node("ROOT - TRUST1", "ROOT - TRUST1 - RHEUM", 2, 120),
		node("ROOT - TRUST1", "ROOT - TRUST1 - DERM", 2, 80),
		node("ROOT - TRUST1 - RHEUM", "ROOT - TRUST1 - RHEUM - ADA", 3, 120),
		node("ROOT", "ROOT - TRUST2", 1, 100),
		node("ROOT - TRUST2", "ROOT - TRUST2 - DERM", 2, 100),
	}

	pruned := PruneAncestors(nodes)

	referenced := map[string]bool{}
	for _, n := range pruned {
		referenced[n.Parents] = true
	}
	for _, n := range pruned {
		if n.Level == entities.LevelTrust || n.Level == entities.LevelDirectorate {
			assert.True(t, referenced[n.IDs], "kept row %q has no kept child", n.IDs)
		}
	}
}
