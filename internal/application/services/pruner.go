package services

import "github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/entities"

// PruneAncestors removes trust and directorate rows left without surviving
// descendants after filtering. The filter keeps ancestor levels
// unconditionally to preserve tree connectivity; once leaves have been
// dropped that leaves empty shells in hierarchical charts.
//
// Two passes: the first drops trust/directorate rows no surviving row
// points at; the second re-derives the referenced-parents set from the
// survivors, removing intermediates whose only child fell in pass one. The
// tree is bounded at two prunable levels, so two passes reach the fixed
// point.
func PruneAncestors(nodes []*entities.PathwayNode) []*entities.PathwayNode {
	return prunePass(prunePass(nodes))
}

func prunePass(nodes []*entities.PathwayNode) []*entities.PathwayNode {
	referenced := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if n.Parents != "" {
			referenced[n.Parents] = struct{}{}
		}
	}

	kept := make([]*entities.PathwayNode, 0, len(nodes))
	for _, n := range nodes {
		// The root is always kept, and leaf pathway rows are the filter
		// target itself.
		if n.Level == entities.LevelRoot || n.Level >= entities.LevelFirstDrug {
			kept = append(kept, n)
			continue
		}
		if _, ok := referenced[n.IDs]; ok {
			kept = append(kept, n)
		}
	}
	return kept
}
