package repositories

import (
	"context"

	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/entities"
)

// NodeFilter selects subtrees of the pathway tree. A dimension with no
// values is not filtered. Ancestor levels of a filtered dimension always
// pass so the tree stays connected for rendering.
type NodeFilter struct {
	Trusts       []string
	Directorates []string
	Drugs        []string
}

// Empty reports whether no dimension is filtered
func (f NodeFilter) Empty() bool {
	return len(f.Trusts) == 0 && len(f.Directorates) == 0 && len(f.Drugs) == 0
}

// NeedsPruning reports whether the filter can leave trust or directorate
// nodes without surviving descendants. Trust-only filtering never does:
// trusts sit above everything filterable.
func (f NodeFilter) NeedsPruning() bool {
	return len(f.Directorates) > 0 || len(f.Drugs) > 0
}

// PathwayRepository defines the read-only interface to the pathway node table
type PathwayRepository interface {
	// ListNodes retrieves all nodes in scope matching the filter, ordered
	// by level then materialized path
	ListNodes(ctx context.Context, scope entities.QueryScope, filter NodeFilter) ([]*entities.PathwayNode, error)
}

// RefreshLogRepository defines the read-only interface to the refresh log
type RefreshLogRepository interface {
	// Latest retrieves the most recent refresh attempt
	Latest(ctx context.Context) (*entities.RefreshLogEntry, error)
}

// DrugIndicationRepository defines the read-only interface to the static
// drug-to-indication reference table
type DrugIndicationRepository interface {
	// ListIndications retrieves the distinct indications, sorted
	ListIndications(ctx context.Context) ([]string, error)
}
