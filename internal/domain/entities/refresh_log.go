package entities

// RefreshStatusCompleted is the status written by the upstream refresh when
// a data load finished successfully.
const RefreshStatusCompleted = "completed"

// RefreshLogEntry is one row of the pathway_refresh_log table, written by
// the upstream batch refresh and consumed read-only to report freshness.
type RefreshLogEntry struct {
	ID             int    `json:"id"`
	Status         string `json:"status"`
	SourceRowCount int    `json:"source_row_count"`
	StartedAt      string `json:"started_at"`
	CompletedAt    string `json:"completed_at"`
}

// DrugIndicationCluster maps a drug to the indication it is clustered
// under; static reference data used to enumerate available indications.
type DrugIndicationCluster struct {
	Drug       string `json:"drug"`
	Indication string `json:"indication"`
}
