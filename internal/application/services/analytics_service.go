package services

import (
	"context"
	"errors"
	"sort"

	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/entities"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/repositories"
	apperrors "github.com/andrewcharlwood/HighCostDrugsPathways-sub001/pkg/errors"
	"github.com/rs/zerolog/log"
)

// AnalyticsService answers the analytical questions over the pathway tree.
// Every operation is a self-contained read: it loads the scoped node set,
// optionally prunes it, and aggregates in memory. Store failures degrade to
// empty results carrying the error message; nothing here ever raises to the
// transport layer because of store state.
type AnalyticsService struct {
	pathways    repositories.PathwayRepository
	refreshLog  repositories.RefreshLogRepository
	indications repositories.DrugIndicationRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	pathways repositories.PathwayRepository,
	refreshLog repositories.RefreshLogRepository,
	indications repositories.DrugIndicationRepository,
) *AnalyticsService {
	return &AnalyticsService{
		pathways:    pathways,
		refreshLog:  refreshLog,
		indications: indications,
	}
}

// loadNodes retrieves the scoped, filtered node set, pruning ancestors when
// the filter can leave empty shells. The returned message is empty on
// success.
func (s *AnalyticsService) loadNodes(ctx context.Context, scope entities.QueryScope, filter repositories.NodeFilter) ([]*entities.PathwayNode, string) {
	nodes, err := s.pathways.ListNodes(ctx, scope, filter)
	if err != nil {
		msg := storeMessage(err)
		log.Warn().Err(err).Int("date_filter_id", scope.DateFilterID).Str("chart_type", scope.ChartType).Msg("pathway query failed")
		return nil, msg
	}
	if filter.NeedsPruning() {
		nodes = PruneAncestors(nodes)
	}
	return nodes, ""
}

// storeMessage extracts the human-readable message a degraded result
// carries.
func storeMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "query failed"
}

// Hierarchy returns the filtered and pruned node set for hierarchical
// charts.
func (s *AnalyticsService) Hierarchy(ctx context.Context, scope entities.QueryScope, filter repositories.NodeFilter) entities.HierarchyResult {
	nodes, errMsg := s.loadNodes(ctx, scope, filter)
	if errMsg != "" {
		return entities.HierarchyResult{Nodes: []*entities.PathwayNode{}, Error: errMsg}
	}
	if nodes == nil {
		nodes = []*entities.PathwayNode{}
	}
	return entities.HierarchyResult{Nodes: nodes}
}

// MarketShare returns each drug's share of its directorate's patients,
// aggregated across organizations from the first-drug level.
func (s *AnalyticsService) MarketShare(ctx context.Context, scope entities.QueryScope, filter repositories.NodeFilter) entities.MarketShareResult {
	nodes, errMsg := s.loadNodes(ctx, scope, filter)
	if errMsg != "" {
		return entities.MarketShareResult{Entries: []entities.MarketShareEntry{}, Error: errMsg}
	}

	type key struct {
		directory string
		drug      string
	}
	patients := make(map[key]int)
	groupTotals := make(map[string]int)
	for _, n := range nodes {
		if n.Level != entities.LevelFirstDrug {
			continue
		}
		k := key{directory: n.Directory, drug: n.Labels}
		patients[k] += n.Value
		groupTotals[n.Directory] += n.Value
	}

	entries := make([]entities.MarketShareEntry, 0, len(patients))
	for k, v := range patients {
		entries = append(entries, entities.MarketShareEntry{
			Directory:  k.directory,
			Drug:       k.drug,
			Patients:   v,
			Proportion: proportion(v, groupTotals[k.directory]),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		gi, gj := groupTotals[entries[i].Directory], groupTotals[entries[j].Directory]
		if gi != gj {
			return gi > gj
		}
		if entries[i].Directory != entries[j].Directory {
			return entries[i].Directory < entries[j].Directory
		}
		if entries[i].Patients != entries[j].Patients {
			return entries[i].Patients > entries[j].Patients
		}
		return entries[i].Drug < entries[j].Drug
	})

	return entities.MarketShareResult{Entries: entries}
}

// DirectoryShare returns each directorate's share of the whole cohort.
func (s *AnalyticsService) DirectoryShare(ctx context.Context, scope entities.QueryScope, filter repositories.NodeFilter) entities.DirectoryShareResult {
	nodes, errMsg := s.loadNodes(ctx, scope, filter)
	if errMsg != "" {
		return entities.DirectoryShareResult{Entries: []entities.ShareEntry{}, Error: errMsg}
	}

	patients := make(map[string]int)
	total := 0
	for _, n := range nodes {
		if n.Level != entities.LevelDirectorate {
			continue
		}
		patients[n.Labels] += n.Value
		total += n.Value
	}

	entries := make([]entities.ShareEntry, 0, len(patients))
	for name, v := range patients {
		entries = append(entries, entities.ShareEntry{
			Name:       name,
			Patients:   v,
			Proportion: proportion(v, total),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Patients != entries[j].Patients {
			return entries[i].Patients > entries[j].Patients
		}
		return entries[i].Name < entries[j].Name
	})

	return entities.DirectoryShareResult{Entries: entries}
}

// Transitions returns the directed line-position-aware transition graph.
func (s *AnalyticsService) Transitions(ctx context.Context, scope entities.QueryScope, filter repositories.NodeFilter) entities.GraphResult {
	nodes, errMsg := s.loadNodes(ctx, scope, filter)
	if errMsg != "" {
		return entities.GraphResult{Nodes: []entities.GraphNode{}, Links: []entities.GraphLink{}, Error: errMsg}
	}
	graphNodes, graphLinks := BuildTransitionGraph(nodes)
	return entities.GraphResult{Nodes: graphNodes, Links: graphLinks}
}

// CoOccurrence returns the undirected co-occurrence graph.
func (s *AnalyticsService) CoOccurrence(ctx context.Context, scope entities.QueryScope, filter repositories.NodeFilter) entities.GraphResult {
	nodes, errMsg := s.loadNodes(ctx, scope, filter)
	if errMsg != "" {
		return entities.GraphResult{Nodes: []entities.GraphNode{}, Links: []entities.GraphLink{}, Error: errMsg}
	}
	graphNodes, graphLinks := BuildCoOccurrenceGraph(nodes)
	return entities.GraphResult{Nodes: graphNodes, Links: graphLinks}
}

// Retention returns the cumulative retention funnel across pathway depths.
func (s *AnalyticsService) Retention(ctx context.Context, scope entities.QueryScope, filter repositories.NodeFilter) entities.FunnelResult {
	nodes, errMsg := s.loadNodes(ctx, scope, filter)
	if errMsg != "" {
		return entities.FunnelResult{Stages: []entities.FunnelStage{}, Error: errMsg}
	}
	return entities.FunnelResult{Stages: BuildRetentionFunnel(nodes)}
}

// StopDepth returns the exclusive stop-depth distribution.
func (s *AnalyticsService) StopDepth(ctx context.Context, scope entities.QueryScope, filter repositories.NodeFilter) entities.StopDepthResult {
	nodes, errMsg := s.loadNodes(ctx, scope, filter)
	if errMsg != "" {
		return entities.StopDepthResult{Entries: []entities.StopDepthEntry{}, Error: errMsg}
	}
	return entities.StopDepthResult{Entries: BuildStopDepth(nodes)}
}

// Pivot returns the directorate x drug patient-count matrix from the
// first-drug level, both axes ordered by total patients descending.
func (s *AnalyticsService) Pivot(ctx context.Context, scope entities.QueryScope, filter repositories.NodeFilter) entities.PivotResult {
	nodes, errMsg := s.loadNodes(ctx, scope, filter)
	if errMsg != "" {
		return entities.PivotResult{Directories: []string{}, Drugs: []string{}, Matrix: [][]int{}, Error: errMsg}
	}

	type key struct {
		directory string
		drug      string
	}
	counts := make(map[key]int)
	dirTotals := make(map[string]int)
	drugTotals := make(map[string]int)
	for _, n := range nodes {
		if n.Level != entities.LevelFirstDrug {
			continue
		}
		counts[key{n.Directory, n.Labels}] += n.Value
		dirTotals[n.Directory] += n.Value
		drugTotals[n.Labels] += n.Value
	}

	directories := sortedByTotal(dirTotals)
	drugs := sortedByTotal(drugTotals)

	matrix := make([][]int, len(directories))
	for i, dir := range directories {
		row := make([]int, len(drugs))
		for j, drug := range drugs {
			row[j] = counts[key{dir, drug}]
		}
		matrix[i] = row
	}

	return entities.PivotResult{Directories: directories, Drugs: drugs, Matrix: matrix}
}

// sortedByTotal orders names by their totals descending, then by name.
func sortedByTotal(totals map[string]int) []string {
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if totals[names[i]] != totals[names[j]] {
			return totals[names[i]] > totals[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// FilterOptions enumerates the selectable filter values present in the
// scoped node set, plus the static indication list. A failing indication
// lookup degrades to an empty list without failing the whole result.
func (s *AnalyticsService) FilterOptions(ctx context.Context, scope entities.QueryScope) entities.FilterOptionsResult {
	result := entities.FilterOptionsResult{
		Trusts:       []string{},
		Directorates: []string{},
		Drugs:        []string{},
		Indications:  []string{},
	}

	nodes, errMsg := s.loadNodes(ctx, scope, repositories.NodeFilter{})
	if errMsg != "" {
		result.Error = errMsg
		return result
	}

	trusts := make(map[string]struct{})
	directorates := make(map[string]struct{})
	drugs := make(map[string]struct{})
	for _, n := range nodes {
		switch n.Level {
		case entities.LevelTrust:
			trusts[n.Labels] = struct{}{}
		case entities.LevelDirectorate:
			directorates[n.Labels] = struct{}{}
		case entities.LevelFirstDrug:
			drugs[n.Labels] = struct{}{}
		}
	}
	result.Trusts = sortedKeys(trusts)
	result.Directorates = sortedKeys(directorates)
	result.Drugs = sortedKeys(drugs)

	indications, err := s.indications.ListIndications(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("indication lookup failed")
	} else if indications != nil {
		result.Indications = indications
	}

	return result
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RefreshStatus reports the most recent data refresh.
func (s *AnalyticsService) RefreshStatus(ctx context.Context) entities.RefreshStatusResult {
	entry, err := s.refreshLog.Latest(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("refresh log query failed")
		return entities.RefreshStatusResult{Error: storeMessage(err)}
	}
	return entities.RefreshStatusResult{
		Status:         entry.Status,
		SourceRowCount: entry.SourceRowCount,
		StartedAt:      entry.StartedAt,
		CompletedAt:    entry.CompletedAt,
	}
}
