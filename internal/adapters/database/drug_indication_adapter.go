package database

import (
	"context"

	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/repositories"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/infrastructure/clients/sqlite"
	apperrors "github.com/andrewcharlwood/HighCostDrugsPathways-sub001/pkg/errors"
	"github.com/doug-martin/goqu/v9"
)

// DrugIndicationAdapter implements DrugIndicationRepository over the static
// drug-to-indication reference table
type DrugIndicationAdapter struct {
	path    string
	dialect goqu.DialectWrapper
}

// NewDrugIndicationAdapter creates a new drug indication adapter
func NewDrugIndicationAdapter(storePath string) repositories.DrugIndicationRepository {
	return &DrugIndicationAdapter{
		path:    storePath,
		dialect: goqu.Dialect("sqlite3"),
	}
}

// ListIndications retrieves the distinct indications, sorted
func (a *DrugIndicationAdapter) ListIndications(ctx context.Context) ([]string, error) {
	client, err := sqlite.Open(a.path)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	query, args, err := a.dialect.From("drug_indication_clusters").
		Select(goqu.DISTINCT("indication")).
		Order(goqu.I("indication").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewQueryError("failed to build indication query", err)
	}

	rows, err := client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewQueryError("failed to list indications", err)
	}
	defer rows.Close()

	var indications []string
	for rows.Next() {
		var indication string
		if err := rows.Scan(&indication); err != nil {
			return nil, apperrors.NewQueryError("failed to scan indication", err)
		}
		indications = append(indications, indication)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.NewQueryError("error iterating indications", err)
	}

	return indications, nil
}
