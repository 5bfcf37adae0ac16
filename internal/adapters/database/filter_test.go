package database

import (
	"testing"

	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/repositories"
	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderFilter(t *testing.T, f repositories.NodeFilter) string {
	t.Helper()
	ds := goqu.Dialect("sqlite3").From("pathway_nodes")
	for _, expr := range filterExpressions(f) {
		ds = ds.Where(expr)
	}
	sql, _, err := ds.ToSQL()
	require.NoError(t, err)
	return sql
}

func TestFilterExpressions_Empty(t *testing.T) {
	sql := renderFilter(t, repositories.NodeFilter{})
	assert.NotContains(t, sql, "WHERE")
}

func TestFilterExpressions_AncestorLevelsAlwaysPass(t *testing.T) {
	sql := renderFilter(t, repositories.NodeFilter{Drugs: []string{"ETA"}})

	// A level-1 trust node must pass a drug filter: the predicate admits
	// everything below the drug level.
	assert.Contains(t, sql, `"level" < 3`)
	assert.Contains(t, sql, `"drug_sequence" IS NULL`)
	assert.Contains(t, sql, `"drug_sequence" = ''`)
}

func TestFilterExpressions_DrugUsesSubstringContainment(t *testing.T) {
	sql := renderFilter(t, repositories.NodeFilter{Drugs: []string{"ETA", "ADA"}})

	assert.Contains(t, sql, `"drug_sequence" LIKE '%ETA%'`)
	assert.Contains(t, sql, `"drug_sequence" LIKE '%ADA%'`)
}

func TestFilterExpressions_TrustUsesExactMatch(t *testing.T) {
	sql := renderFilter(t, repositories.NodeFilter{Trusts: []string{"TRUST1"}})

	assert.Contains(t, sql, `"level" < 1`)
	assert.Contains(t, sql, `"trust_name" IN ('TRUST1')`)
}

func TestFilterExpressions_DimensionsCompose(t *testing.T) {
	sql := renderFilter(t, repositories.NodeFilter{
		Trusts:       []string{"TRUST1"},
		Directorates: []string{"RHEUM"},
		Drugs:        []string{"ETA"},
	})

	assert.Contains(t, sql, `"trust_name" IN ('TRUST1')`)
	assert.Contains(t, sql, `"directory" IN ('RHEUM')`)
	assert.Contains(t, sql, `"drug_sequence" LIKE '%ETA%'`)
	assert.Contains(t, sql, " AND ")
}
