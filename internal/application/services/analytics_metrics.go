package services

import (
	"context"
	"sort"

	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/entities"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/repositories"
)

// Cost, dosing, duration and timeline operations. All of them read the
// first-drug level: each row there carries the metrics of the cohort that
// started on that drug, and rows from different organizations combine per
// the aggregation rules in aggregate.go.

// CostBreakdown returns the per-drug cost waterfall: total spend, cost per
// patient and patient-weighted cost-pp-pa.
func (s *AnalyticsService) CostBreakdown(ctx context.Context, scope entities.QueryScope, filter repositories.NodeFilter) entities.CostBreakdownResult {
	nodes, errMsg := s.loadNodes(ctx, scope, filter)
	if errMsg != "" {
		return entities.CostBreakdownResult{Entries: []entities.CostEntry{}, Error: errMsg}
	}

	type accum struct {
		patients int
		costSum  float64
		costPPPA []weightedSample
	}
	byDrug := make(map[string]*accum)
	for _, n := range nodes {
		if n.Level != entities.LevelFirstDrug {
			continue
		}
		a := byDrug[n.Labels]
		if a == nil {
			a = &accum{}
			byDrug[n.Labels] = a
		}
		a.patients += n.Value
		a.costSum += metricValue(n.Cost)
		a.costPPPA = append(a.costPPPA, weightedSample{value: metricValue(n.CostPPPA), weight: n.Value})
	}

	entries := make([]entities.CostEntry, 0, len(byDrug))
	for drug, a := range byDrug {
		entry := entities.CostEntry{
			Drug:      drug,
			Patients:  a.patients,
			TotalCost: round2(a.costSum),
		}
		if a.patients > 0 {
			entry.CostPerPatient = round2(a.costSum / float64(a.patients))
		}
		if mean, ok := weightedMean(a.costPPPA); ok {
			entry.CostPPPA = round2(mean)
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalCost != entries[j].TotalCost {
			return entries[i].TotalCost > entries[j].TotalCost
		}
		if entries[i].Patients != entries[j].Patients {
			return entries[i].Patients > entries[j].Patients
		}
		return entries[i].Drug < entries[j].Drug
	})

	return entities.CostBreakdownResult{Entries: entries}
}

// CostPerPatient compares cost-pp-pa for each drug across organizations.
// Organizations with the highest total spend sort first.
func (s *AnalyticsService) CostPerPatient(ctx context.Context, scope entities.QueryScope, filter repositories.NodeFilter) entities.CostPerPatientResult {
	nodes, errMsg := s.loadNodes(ctx, scope, filter)
	if errMsg != "" {
		return entities.CostPerPatientResult{Entries: []entities.TrustCostEntry{}, Error: errMsg}
	}

	type key struct {
		trust string
		drug  string
	}
	type accum struct {
		patients int
		costPPPA []weightedSample
	}
	byKey := make(map[key]*accum)
	trustTotals := make(map[string]int)
	for _, n := range nodes {
		if n.Level != entities.LevelFirstDrug {
			continue
		}
		k := key{trust: n.TrustName, drug: n.Labels}
		a := byKey[k]
		if a == nil {
			a = &accum{}
			byKey[k] = a
		}
		a.patients += n.Value
		a.costPPPA = append(a.costPPPA, weightedSample{value: metricValue(n.CostPPPA), weight: n.Value})
		trustTotals[n.TrustName] += n.Value
	}

	entries := make([]entities.TrustCostEntry, 0, len(byKey))
	for k, a := range byKey {
		entry := entities.TrustCostEntry{
			Trust:    k.trust,
			Drug:     k.drug,
			Patients: a.patients,
		}
		if mean, ok := weightedMean(a.costPPPA); ok {
			entry.CostPPPA = round2(mean)
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		ti, tj := trustTotals[entries[i].Trust], trustTotals[entries[j].Trust]
		if ti != tj {
			return ti > tj
		}
		if entries[i].Trust != entries[j].Trust {
			return entries[i].Trust < entries[j].Trust
		}
		if entries[i].Patients != entries[j].Patients {
			return entries[i].Patients > entries[j].Patients
		}
		return entries[i].Drug < entries[j].Drug
	})

	return entities.CostPerPatientResult{Entries: entries}
}

// DosingIntervals returns the patient-weighted dosing cadence per drug,
// decoded from the dosing description text. Rows whose text does not parse
// contribute nothing.
func (s *AnalyticsService) DosingIntervals(ctx context.Context, scope entities.QueryScope, filter repositories.NodeFilter) entities.DosingResult {
	nodes, errMsg := s.loadNodes(ctx, scope, filter)
	if errMsg != "" {
		return entities.DosingResult{Entries: []entities.DosingEntry{}, Error: errMsg}
	}

	type accum struct {
		patients       int
		doseCount      []weightedSample
		weeklyInterval []weightedSample
		totalWeeks     []weightedSample
	}
	byDrug := make(map[string]*accum)
	for _, n := range nodes {
		if n.Level < entities.LevelFirstDrug || n.Value <= 0 {
			continue
		}
		for _, iv := range ParseDosingText(n.AverageSpacing) {
			a := byDrug[iv.Drug]
			if a == nil {
				a = &accum{}
				byDrug[iv.Drug] = a
			}
			a.patients += n.Value
			a.doseCount = append(a.doseCount, weightedSample{value: iv.DoseCount, weight: n.Value})
			a.weeklyInterval = append(a.weeklyInterval, weightedSample{value: iv.WeeklyInterval, weight: n.Value})
			a.totalWeeks = append(a.totalWeeks, weightedSample{value: iv.TotalWeeks, weight: n.Value})
		}
	}

	entries := make([]entities.DosingEntry, 0, len(byDrug))
	for drug, a := range byDrug {
		entry := entities.DosingEntry{Drug: drug, Patients: a.patients}
		if mean, ok := weightedMean(a.doseCount); ok {
			entry.DoseCount = round2(mean)
		}
		if mean, ok := weightedMean(a.weeklyInterval); ok {
			entry.WeeklyInterval = round2(mean)
		}
		if mean, ok := weightedMean(a.totalWeeks); ok {
			entry.TotalWeeks = round2(mean)
		}
		entries = append(entries, entry)
	}
	sortByPatients(entries, func(e entities.DosingEntry) (int, string) { return e.Patients, e.Drug })

	return entities.DosingResult{Entries: entries}
}

// AdministeredDoses returns the patient-weighted administered-dose average
// per drug, decoded from the numeric array column.
func (s *AnalyticsService) AdministeredDoses(ctx context.Context, scope entities.QueryScope, filter repositories.NodeFilter) entities.AdministeredResult {
	nodes, errMsg := s.loadNodes(ctx, scope, filter)
	if errMsg != "" {
		return entities.AdministeredResult{Entries: []entities.AdministeredEntry{}, Error: errMsg}
	}

	type accum struct {
		patients int
		doses    []weightedSample
	}
	byDrug := make(map[string]*accum)
	for _, n := range nodes {
		if n.Level != entities.LevelFirstDrug || n.Value <= 0 {
			continue
		}
		doses, ok := ParseAdministered(n.AverageAdministered)
		if !ok {
			continue
		}
		a := byDrug[n.Labels]
		if a == nil {
			a = &accum{}
			byDrug[n.Labels] = a
		}
		a.patients += n.Value
		a.doses = append(a.doses, weightedSample{value: doses, weight: n.Value})
	}

	entries := make([]entities.AdministeredEntry, 0, len(byDrug))
	for drug, a := range byDrug {
		entry := entities.AdministeredEntry{Drug: drug, Patients: a.patients}
		if mean, ok := weightedMean(a.doses); ok {
			entry.AverageDoses = round2(mean)
		}
		entries = append(entries, entry)
	}
	sortByPatients(entries, func(e entities.AdministeredEntry) (int, string) { return e.Patients, e.Drug })

	return entities.AdministeredResult{Entries: entries}
}

// TreatmentDuration returns the patient-weighted mean treatment duration
// per drug in days.
func (s *AnalyticsService) TreatmentDuration(ctx context.Context, scope entities.QueryScope, filter repositories.NodeFilter) entities.DurationResult {
	nodes, errMsg := s.loadNodes(ctx, scope, filter)
	if errMsg != "" {
		return entities.DurationResult{Entries: []entities.DurationEntry{}, Error: errMsg}
	}

	type accum struct {
		patients int
		days     []weightedSample
	}
	byDrug := make(map[string]*accum)
	for _, n := range nodes {
		if n.Level != entities.LevelFirstDrug || n.Value <= 0 || n.AvgDays == nil {
			continue
		}
		a := byDrug[n.Labels]
		if a == nil {
			a = &accum{}
			byDrug[n.Labels] = a
		}
		a.patients += n.Value
		a.days = append(a.days, weightedSample{value: *n.AvgDays, weight: n.Value})
	}

	entries := make([]entities.DurationEntry, 0, len(byDrug))
	for drug, a := range byDrug {
		entry := entities.DurationEntry{Drug: drug, Patients: a.patients}
		if mean, ok := weightedMean(a.days); ok {
			entry.AvgDays = round1(mean)
		}
		entries = append(entries, entry)
	}
	sortByPatients(entries, func(e entities.DurationEntry) (int, string) { return e.Patients, e.Drug })

	return entities.DurationResult{Entries: entries}
}

// Timeline returns the cohort time window per organization and drug: the
// earliest first-seen and latest last-seen timestamps across the merged
// rows. Timestamps are lexicographically comparable ISO text and are passed
// through untouched.
func (s *AnalyticsService) Timeline(ctx context.Context, scope entities.QueryScope, filter repositories.NodeFilter) entities.TimelineResult {
	nodes, errMsg := s.loadNodes(ctx, scope, filter)
	if errMsg != "" {
		return entities.TimelineResult{Entries: []entities.TimelineEntry{}, Error: errMsg}
	}

	type key struct {
		trust string
		drug  string
	}
	type window struct {
		patients  int
		firstSeen string
		lastSeen  string
	}
	byKey := make(map[key]*window)
	for _, n := range nodes {
		if n.Level != entities.LevelFirstDrug {
			continue
		}
		k := key{trust: n.TrustName, drug: n.Labels}
		w := byKey[k]
		if w == nil {
			w = &window{}
			byKey[k] = w
		}
		w.patients += n.Value
		if n.FirstSeen != "" && (w.firstSeen == "" || n.FirstSeen < w.firstSeen) {
			w.firstSeen = n.FirstSeen
		}
		if n.LastSeen > w.lastSeen {
			w.lastSeen = n.LastSeen
		}
	}

	entries := make([]entities.TimelineEntry, 0, len(byKey))
	for k, w := range byKey {
		entries = append(entries, entities.TimelineEntry{
			Trust:     k.trust,
			Drug:      k.drug,
			Patients:  w.patients,
			FirstSeen: w.firstSeen,
			LastSeen:  w.lastSeen,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Patients != entries[j].Patients {
			return entries[i].Patients > entries[j].Patients
		}
		if entries[i].Trust != entries[j].Trust {
			return entries[i].Trust < entries[j].Trust
		}
		return entries[i].Drug < entries[j].Drug
	})

	return entities.TimelineResult{Entries: entries}
}

// sortByPatients orders per-drug entries by patient count descending, then
// by drug name.
func sortByPatients[T any](entries []T, keyOf func(T) (int, string)) {
	sort.Slice(entries, func(i, j int) bool {
		pi, ni := keyOf(entries[i])
		pj, nj := keyOf(entries[j])
		if pi != pj {
			return pi > pj
		}
		return ni < nj
	})
}
