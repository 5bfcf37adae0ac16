package database

import (
	"context"
	"database/sql"

	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/entities"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/repositories"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/infrastructure/clients/sqlite"
	apperrors "github.com/andrewcharlwood/HighCostDrugsPathways-sub001/pkg/errors"
	"github.com/doug-martin/goqu/v9"
)

// RefreshLogAdapter implements RefreshLogRepository over the SQLite store
type RefreshLogAdapter struct {
	path    string
	dialect goqu.DialectWrapper
}

// NewRefreshLogAdapter creates a new refresh log adapter
func NewRefreshLogAdapter(storePath string) repositories.RefreshLogRepository {
	return &RefreshLogAdapter{
		path:    storePath,
		dialect: goqu.Dialect("sqlite3"),
	}
}

// Latest retrieves the most recent refresh attempt
func (a *RefreshLogAdapter) Latest(ctx context.Context) (*entities.RefreshLogEntry, error) {
	client, err := sqlite.Open(a.path)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	query, args, err := a.dialect.From("pathway_refresh_log").
		Select("id", "status", "source_row_count", "started_at", "completed_at").
		Order(goqu.I("started_at").Desc()).
		Limit(1).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewQueryError("failed to build refresh log query", err)
	}

	entry := &entities.RefreshLogEntry{}
	var sourceRowCount sql.NullInt64
	var startedAt, completedAt sql.NullString

	err = client.DB().QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&entry.Status,
		&sourceRowCount,
		&startedAt,
		&completedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("no refresh has been recorded")
	}
	if err != nil {
		return nil, apperrors.NewQueryError("failed to get latest refresh", err)
	}

	entry.SourceRowCount = int(sourceRowCount.Int64)
	entry.StartedAt = startedAt.String
	entry.CompletedAt = completedAt.String

	return entry, nil
}
