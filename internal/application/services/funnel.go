package services

import (
	"sort"

	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/entities"
	"github.com/rs/zerolog/log"
)

// depthSums sums patient counts per pathway depth (depth = level - 2) over
// rows at the drug levels.
func depthSums(nodes []*entities.PathwayNode) map[int]int {
	sums := make(map[int]int)
	for _, n := range nodes {
		if n.Level < entities.LevelFirstDrug {
			continue
		}
		sums[n.Depth()] += n.Value
	}
	return sums
}

func sortedDepths(sums map[int]int) []int {
	depths := make([]int, 0, len(sums))
	for d := range sums {
		depths = append(depths, d)
	}
	sort.Ints(depths)
	return depths
}

// BuildRetentionFunnel expresses each depth's patient count as a
// percentage of the depth-1 cohort. The level sums are reported as given;
// the upstream data encodes the cumulative semantics.
func BuildRetentionFunnel(nodes []*entities.PathwayNode) []entities.FunnelStage {
	sums := depthSums(nodes)
	depths := sortedDepths(sums)
	if len(depths) == 0 {
		return []entities.FunnelStage{}
	}

	cohort := sums[depths[0]]
	stages := make([]entities.FunnelStage, 0, len(depths))
	for _, d := range depths {
		pct := 0.0
		if cohort > 0 {
			pct = round1(100 * float64(sums[d]) / float64(cohort))
		}
		stages = append(stages, entities.FunnelStage{
			Depth:      d,
			Patients:   sums[d],
			Percentage: pct,
		})
	}
	return stages
}

// BuildStopDepth derives the exclusive stop-depth distribution: patients
// who progressed to depth N but not N+1. The last depth keeps its own sum.
// Depth sums are expected to be monotonically non-increasing; a negative
// difference means the upstream data broke that contract, so it is clamped
// to zero and reported.
func BuildStopDepth(nodes []*entities.PathwayNode) []entities.StopDepthEntry {
	sums := depthSums(nodes)
	depths := sortedDepths(sums)
	if len(depths) == 0 {
		return []entities.StopDepthEntry{}
	}

	cohort := sums[depths[0]]
	entries := make([]entities.StopDepthEntry, 0, len(depths))
	for i, d := range depths {
		stopped := sums[d]
		next := 0
		if i+1 < len(depths) {
			next = sums[depths[i+1]]
			stopped -= next
		}
		if stopped < 0 {
			log.Warn().
				Int("depth", d).
				Int("patients", sums[d]).
				Int("next_depth_patients", next).
				Msg("depth sums are not monotonically non-increasing; clamping stop count to zero")
			stopped = 0
		}
		pct := 0.0
		if cohort > 0 {
			pct = round1(100 * float64(stopped) / float64(cohort))
		}
		entries = append(entries, entities.StopDepthEntry{
			Depth:      d,
			Stopped:    stopped,
			Percentage: pct,
		})
	}
	return entries
}
