package entities

// Result types for the analytical query surface. Every result carries an
// Error string instead of failing the request: a missing or broken store
// degrades to an empty, well-formed result so the dashboard always has
// something to render.

// HierarchyResult is the filtered (and, when a drug or directorate filter
// is active, pruned) node set for hierarchical charts.
type HierarchyResult struct {
	Nodes []*PathwayNode `json:"nodes"`
	Error string         `json:"error,omitempty"`
}

// MarketShareEntry is one drug's share of a directorate's patients.
type MarketShareEntry struct {
	Directory  string  `json:"directory"`
	Drug       string  `json:"drug"`
	Patients   int     `json:"patients"`
	Proportion float64 `json:"proportion"`
}

// MarketShareResult lists drug shares per directorate, largest groups first.
type MarketShareResult struct {
	Entries []MarketShareEntry `json:"entries"`
	Error   string             `json:"error,omitempty"`
}

// ShareEntry is one entity's share of the whole cohort.
type ShareEntry struct {
	Name       string  `json:"name"`
	Patients   int     `json:"patients"`
	Proportion float64 `json:"proportion"`
}

// DirectoryShareResult lists each directorate's share of all patients.
type DirectoryShareResult struct {
	Entries []ShareEntry `json:"entries"`
	Error   string       `json:"error,omitempty"`
}

// CostEntry is the aggregated cost picture for one drug.
type CostEntry struct {
	Drug           string  `json:"drug"`
	Patients       int     `json:"patients"`
	TotalCost      float64 `json:"total_cost"`
	CostPerPatient float64 `json:"cost_per_patient"`
	CostPPPA       float64 `json:"cost_pp_pa"`
}

// CostBreakdownResult is the per-drug cost waterfall.
type CostBreakdownResult struct {
	Entries []CostEntry `json:"entries"`
	Error   string      `json:"error,omitempty"`
}

// TrustCostEntry compares per-patient-per-annum cost for one drug at one
// organization.
type TrustCostEntry struct {
	Trust    string  `json:"trust"`
	Drug     string  `json:"drug"`
	Patients int     `json:"patients"`
	CostPPPA float64 `json:"cost_pp_pa"`
}

// CostPerPatientResult compares cost-pp-pa across organizations.
type CostPerPatientResult struct {
	Entries []TrustCostEntry `json:"entries"`
	Error   string           `json:"error,omitempty"`
}

// GraphNode is one node of a derived drug graph. For the directed
// transition graph the ID carries the treatment line ("ADA (1st)"); for the
// co-occurrence graph it is the bare drug name.
type GraphNode struct {
	ID     string `json:"id"`
	Weight int    `json:"weight"`
}

// GraphLink is one weighted edge of a derived drug graph.
type GraphLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// GraphResult is a {nodes, links} structure ready for flow and network
// visualizations.
type GraphResult struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
	Error string      `json:"error,omitempty"`
}

// DosingEntry is the patient-weighted dosing cadence for one drug.
type DosingEntry struct {
	Drug           string  `json:"drug"`
	DoseCount      float64 `json:"dose_count"`
	WeeklyInterval float64 `json:"weekly_interval"`
	TotalWeeks     float64 `json:"total_weeks"`
	Patients       int     `json:"patients"`
}

// DosingResult lists dosing cadences per drug.
type DosingResult struct {
	Entries []DosingEntry `json:"entries"`
	Error   string        `json:"error,omitempty"`
}

// AdministeredEntry is the patient-weighted administered-dose count for one
// drug.
type AdministeredEntry struct {
	Drug         string  `json:"drug"`
	AverageDoses float64 `json:"average_doses"`
	Patients     int     `json:"patients"`
}

// AdministeredResult lists administered-dose averages per drug.
type AdministeredResult struct {
	Entries []AdministeredEntry `json:"entries"`
	Error   string              `json:"error,omitempty"`
}

// DurationEntry is the patient-weighted mean treatment duration for one drug.
type DurationEntry struct {
	Drug     string  `json:"drug"`
	AvgDays  float64 `json:"avg_days"`
	Patients int     `json:"patients"`
}

// DurationResult lists treatment durations per drug.
type DurationResult struct {
	Entries []DurationEntry `json:"entries"`
	Error   string          `json:"error,omitempty"`
}

// FunnelStage is one depth of the cumulative retention funnel.
type FunnelStage struct {
	Depth      int     `json:"depth"`
	Patients   int     `json:"patients"`
	Percentage float64 `json:"percentage"`
}

// FunnelResult is the retention funnel across pathway depths.
type FunnelResult struct {
	Stages []FunnelStage `json:"stages"`
	Error  string        `json:"error,omitempty"`
}

// StopDepthEntry is the exclusive count of patients whose pathway stopped
// at a given depth.
type StopDepthEntry struct {
	Depth      int     `json:"depth"`
	Stopped    int     `json:"stopped"`
	Percentage float64 `json:"percentage"`
}

// StopDepthResult is the exclusive stop-depth distribution.
type StopDepthResult struct {
	Entries []StopDepthEntry `json:"entries"`
	Error   string           `json:"error,omitempty"`
}

// TimelineEntry is the cohort time window for one drug at one organization.
type TimelineEntry struct {
	Trust     string `json:"trust"`
	Drug      string `json:"drug"`
	Patients  int    `json:"patients"`
	FirstSeen string `json:"first_seen"`
	LastSeen  string `json:"last_seen"`
}

// TimelineResult lists cohort time windows per trust and drug.
type TimelineResult struct {
	Entries []TimelineEntry `json:"entries"`
	Error   string          `json:"error,omitempty"`
}

// PivotResult is a directorate x drug patient-count matrix. Matrix[i][j]
// holds the patients of Directories[i] on Drugs[j].
type PivotResult struct {
	Directories []string `json:"directories"`
	Drugs       []string `json:"drugs"`
	Matrix      [][]int  `json:"matrix"`
	Error       string   `json:"error,omitempty"`
}

// FilterOptionsResult enumerates the selectable filter values present in
// the scoped node set, plus the static indication reference list.
type FilterOptionsResult struct {
	Trusts       []string `json:"trusts"`
	Directorates []string `json:"directorates"`
	Drugs        []string `json:"drugs"`
	Indications  []string `json:"indications"`
	Error        string   `json:"error,omitempty"`
}

// RefreshStatusResult reports the most recent data refresh.
type RefreshStatusResult struct {
	Status         string `json:"status"`
	SourceRowCount int    `json:"source_row_count"`
	StartedAt      string `json:"started_at"`
	CompletedAt    string `json:"completed_at"`
	Error          string `json:"error,omitempty"`
}
