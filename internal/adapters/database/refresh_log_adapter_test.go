package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	apperrors "github.com/andrewcharlwood/HighCostDrugsPathways-sub001/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newRefreshStore(t *testing.T) (string, *sql.DB) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pathways.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE pathway_refresh_log (
		id INTEGER PRIMARY KEY,
		status TEXT,
		source_row_count INTEGER,
		started_at TEXT,
		completed_at TEXT
	)`)
	require.NoError(t, err)

	_, err = db.Exec(`CREATE TABLE drug_indication_clusters (drug TEXT, indication TEXT)`)
	require.NoError(t, err)

	return path, db
}

func TestLatest_ReturnsNewestEntry(t *testing.T) {
	path, db := newRefreshStore(t)
	_, err := db.Exec(`INSERT INTO pathway_refresh_log (status, source_row_count, started_at, completed_at) VALUES
		('completed', 100000, '2026-08-01T02:00:00', '2026-08-01T02:30:00'),
		('completed', 104211, '2026-08-20T02:00:00', '2026-08-20T02:28:00')`)
	require.NoError(t, err)

	adapter := NewRefreshLogAdapter(path)
	entry, err := adapter.Latest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "completed", entry.Status)
	assert.Equal(t, 104211, entry.SourceRowCount)
	assert.Equal(t, "2026-08-20T02:00:00", entry.StartedAt)
}

func TestLatest_EmptyLog(t *testing.T) {
	path, _ := newRefreshStore(t)

	adapter := NewRefreshLogAdapter(path)
	_, err := adapter.Latest(context.Background())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestListIndications_DistinctSorted(t *testing.T) {
	path, db := newRefreshStore(t)
	_, err := db.Exec(`INSERT INTO drug_indication_clusters (drug, indication) VALUES
		('ADA', 'Rheumatoid arthritis'),
		('ETA', 'Rheumatoid arthritis'),
		('UST', 'Psoriasis')`)
	require.NoError(t, err)

	adapter := NewDrugIndicationAdapter(path)
	indications, err := adapter.ListIndications(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Psoriasis", "Rheumatoid arthritis"}, indications)
}

func TestLatest_MissingStoreFile(t *testing.T) {
	adapter := NewRefreshLogAdapter(filepath.Join(t.TempDir(), "missing.db"))
	_, err := adapter.Latest(context.Background())
	assert.True(t, apperrors.IsStoreUnavailable(err))
}
