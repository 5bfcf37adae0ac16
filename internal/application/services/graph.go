package services

import (
	"fmt"
	"sort"

	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/entities"
)

// Graph builders derive drug graphs from pathway rows with at least two
// drugs and a positive patient count. The directed transition graph keys
// nodes by (drug, treatment line) because a drug's role differs by line;
// the co-occurrence graph collapses lines to emphasize joint use.

// ordinal renders a 1-based treatment line ("1st", "2nd", ...).
func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}

// positionedDrug is the transition-graph node identity for a drug at a
// treatment line.
func positionedDrug(drug string, line int) string {
	return fmt.Sprintf("%s (%s)", drug, ordinal(line))
}

// BuildTransitionGraph builds the directed, line-position-aware transition
// graph for flow diagrams. Edge weight accumulates patient counts across
// all pathways sharing the adjacent pair at that position.
func BuildTransitionGraph(nodes []*entities.PathwayNode) ([]entities.GraphNode, []entities.GraphLink) {
	nodeWeights := make(map[string]int)
	linkWeights := make(map[[2]string]int)

	for _, n := range nodes {
		if n.Value <= 0 {
			continue
		}
		drugs := n.DrugPath()
		if len(drugs) < 2 {
			continue
		}
		for i, drug := range drugs {
			nodeWeights[positionedDrug(drug, i+1)] += n.Value
		}
		for i := 0; i+1 < len(drugs); i++ {
			key := [2]string{positionedDrug(drugs[i], i+1), positionedDrug(drugs[i+1], i+2)}
			linkWeights[key] += n.Value
		}
	}

	return sortedGraph(nodeWeights, linkWeights)
}

// BuildCoOccurrenceGraph builds the undirected co-occurrence graph. Edges
// are keyed by the sorted unordered drug pair regardless of position.
func BuildCoOccurrenceGraph(nodes []*entities.PathwayNode) ([]entities.GraphNode, []entities.GraphLink) {
	nodeWeights := make(map[string]int)
	linkWeights := make(map[[2]string]int)

	for _, n := range nodes {
		if n.Value <= 0 {
			continue
		}
		drugs := n.DrugPath()
		if len(drugs) < 2 {
			continue
		}
		for _, drug := range drugs {
			nodeWeights[drug] += n.Value
		}
		for i := 0; i+1 < len(drugs); i++ {
			a, b := drugs[i], drugs[i+1]
			if b < a {
				a, b = b, a
			}
			linkWeights[[2]string{a, b}] += n.Value
		}
	}

	return sortedGraph(nodeWeights, linkWeights)
}

// sortedGraph converts accumulated weights into weight-descending node and
// link lists so charts render largest-first without re-sorting.
func sortedGraph(nodeWeights map[string]int, linkWeights map[[2]string]int) ([]entities.GraphNode, []entities.GraphLink) {
	graphNodes := make([]entities.GraphNode, 0, len(nodeWeights))
	for id, weight := range nodeWeights {
		graphNodes = append(graphNodes, entities.GraphNode{ID: id, Weight: weight})
	}
	sort.Slice(graphNodes, func(i, j int) bool {
		if graphNodes[i].Weight != graphNodes[j].Weight {
			return graphNodes[i].Weight > graphNodes[j].Weight
		}
		return graphNodes[i].ID < graphNodes[j].ID
	})

	graphLinks := make([]entities.GraphLink, 0, len(linkWeights))
	for key, weight := range linkWeights {
		graphLinks = append(graphLinks, entities.GraphLink{Source: key[0], Target: key[1], Weight: weight})
	}
	sort.Slice(graphLinks, func(i, j int) bool {
		if graphLinks[i].Weight != graphLinks[j].Weight {
			return graphLinks[i].Weight > graphLinks[j].Weight
		}
		if graphLinks[i].Source != graphLinks[j].Source {
			return graphLinks[i].Source < graphLinks[j].Source
		}
		return graphLinks[i].Target < graphLinks[j].Target
	})

	return graphNodes, graphLinks
}
