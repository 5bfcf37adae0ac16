package database

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/entities"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/repositories"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/infrastructure/clients/sqlite"
	apperrors "github.com/andrewcharlwood/HighCostDrugsPathways-sub001/pkg/errors"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
)

var nodeColumns = []interface{}{
	"date_filter_id", "chart_type", "parents", "ids", "labels", "level", "value",
	"cost", "costpp", "cost_pp_pa", "avg_days",
	"first_seen", "last_seen", "first_seen_parent", "last_seen_parent",
	"average_spacing", "average_administered",
	"trust_name", "directory", "drug_sequence",
}

// PathwayAdapter implements PathwayRepository over the SQLite store. The
// store file is opened read-only per call and closed on every exit path.
type PathwayAdapter struct {
	path    string
	dialect goqu.DialectWrapper
}

// NewPathwayAdapter creates a new pathway adapter for the given store file
func NewPathwayAdapter(storePath string) repositories.PathwayRepository {
	return &PathwayAdapter{
		path:    storePath,
		dialect: goqu.Dialect("sqlite3"),
	}
}

// ListNodes retrieves all nodes in scope matching the filter
func (a *PathwayAdapter) ListNodes(ctx context.Context, scope entities.QueryScope, filter repositories.NodeFilter) ([]*entities.PathwayNode, error) {
	client, err := sqlite.Open(a.path)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	ds := a.dialect.From("pathway_nodes").
		Select(nodeColumns...).
		Where(goqu.Ex{
			"date_filter_id": scope.DateFilterID,
			"chart_type":     scope.ChartType,
		})

	for _, expr := range filterExpressions(filter) {
		ds = ds.Where(expr)
	}

	ds = ds.Order(goqu.I("level").Asc(), goqu.I("ids").Asc())

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewQueryError("failed to build node query", err)
	}

	rows, err := client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewQueryError("failed to query pathway nodes", err)
	}
	defer rows.Close()

	var nodes []*entities.PathwayNode
	for rows.Next() {
		node := &entities.PathwayNode{}
		var parents, labels sql.NullString
		var cost, costPP, costPPPA, avgDays sql.NullString
		var firstSeen, lastSeen, firstSeenParent, lastSeenParent sql.NullString
		var averageSpacing, averageAdministered sql.NullString
		var trustName, directory, drugSequence sql.NullString

		err := rows.Scan(
			&node.DateFilterID,
			&node.ChartType,
			&parents,
			&node.IDs,
			&labels,
			&node.Level,
			&node.Value,
			&cost,
			&costPP,
			&costPPPA,
			&avgDays,
			&firstSeen,
			&lastSeen,
			&firstSeenParent,
			&lastSeenParent,
			&averageSpacing,
			&averageAdministered,
			&trustName,
			&directory,
			&drugSequence,
		)
		if err != nil {
			return nil, apperrors.NewQueryError("failed to scan pathway node", err)
		}

		node.Parents = parents.String
		node.Labels = labels.String
		node.Cost = nullableMetric(cost)
		node.CostPP = nullableMetric(costPP)
		node.CostPPPA = nullableMetric(costPPPA)
		node.AvgDays = nullableMetric(avgDays)
		node.FirstSeen = firstSeen.String
		node.LastSeen = lastSeen.String
		node.FirstSeenParent = firstSeenParent.String
		node.LastSeenParent = lastSeenParent.String
		node.AverageSpacing = averageSpacing.String
		node.AverageAdministered = averageAdministered.String
		node.TrustName = trustName.String
		node.Directory = directory.String
		node.DrugSequence = drugSequence.String

		nodes = append(nodes, node)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.NewQueryError("error iterating pathway nodes", err)
	}

	return nodes, nil
}

// nullableMetric decodes an optional numeric column. The upstream refresh
// writes a non-numeric sentinel for levels where a metric has no meaning;
// anything unparseable is treated as absent rather than failing the row.
func nullableMetric(s sql.NullString) *float64 {
	if !s.Valid {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s.String), 64)
	if err != nil {
		return nil
	}
	return &v
}
