package entities

import "strings"

// PathSeparator joins the segment labels of a materialized path in the
// parents/ids columns.
const PathSeparator = " - "

// SequenceSeparator joins drug names in the denormalized drug_sequence column.
const SequenceSeparator = "|"

// Chart variants. Rows for both variants coexist in the store and every
// query must be scoped to exactly one of them.
const (
	ChartTypeTrust       = "trust"
	ChartTypeDirectorate = "directorate"
)

// Tree levels of the materialized pathway tree.
const (
	LevelRoot        = 0
	LevelTrust       = 1
	LevelDirectorate = 2
	LevelFirstDrug   = 3
)

// QueryScope selects which slice of the node table a query reads.
type QueryScope struct {
	DateFilterID int    `json:"date_filter_id"`
	ChartType    string `json:"chart_type"`
}

// PathwayNode is one row of the materialized pathway tree: a cohort of
// patients sharing an organization, directorate and (at levels >= 3) an
// ordered drug sequence. All rows are produced by the upstream refresh and
// are read-only here.
type PathwayNode struct {
	DateFilterID int    `json:"date_filter_id"`
	ChartType    string `json:"chart_type"`

	Parents string `json:"parents"`
	IDs     string `json:"ids"`
	Labels  string `json:"labels"`
	Level   int    `json:"level"`
	Value   int    `json:"value"`

	// Monetary and duration metrics may be absent for some levels; the
	// store encodes absence as a non-numeric sentinel, decoded to nil.
	Cost     *float64 `json:"cost,omitempty"`
	CostPP   *float64 `json:"costpp,omitempty"`
	CostPPPA *float64 `json:"cost_pp_pa,omitempty"`
	AvgDays  *float64 `json:"avg_days,omitempty"`

	FirstSeen       string `json:"first_seen,omitempty"`
	LastSeen        string `json:"last_seen,omitempty"`
	FirstSeenParent string `json:"first_seen_parent,omitempty"`
	LastSeenParent  string `json:"last_seen_parent,omitempty"`

	AverageSpacing      string `json:"average_spacing,omitempty"`
	AverageAdministered string `json:"average_administered,omitempty"`

	TrustName    string `json:"trust_name,omitempty"`
	Directory    string `json:"directory,omitempty"`
	DrugSequence string `json:"drug_sequence,omitempty"`
}

// Depth is the number of drugs reached on this node's pathway. Nodes above
// the first drug level have no depth.
func (n *PathwayNode) Depth() int {
	if n.Level < LevelFirstDrug {
		return 0
	}
	return n.Level - 2
}

// DrugPath returns the ordered drug names of the node's pathway, decoded
// from segments 3+ of the materialized path. Levels below the first drug
// level have no drugs yet.
func (n *PathwayNode) DrugPath() []string {
	if n.Level < LevelFirstDrug {
		return nil
	}
	segments := strings.Split(n.IDs, PathSeparator)
	if len(segments) <= LevelFirstDrug {
		return nil
	}
	return segments[LevelFirstDrug:]
}
