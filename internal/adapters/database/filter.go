package database

import (
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/entities"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/repositories"
	"github.com/doug-martin/goqu/v9"
)

// Each dimension filter keeps ancestor levels unconditionally: a level-1
// trust node must survive a drug filter (a level-3+ concept) or the tree
// loses its connectivity for rendering. Nodes left childless by this rule
// are removed afterwards by the ancestor pruner, not here.

// dimensionPredicate builds the predicate for a dimension whose identity
// lives in a single column: pass when the node sits above the dimension's
// natural level, has no value for the column, or matches a selected value.
func dimensionPredicate(column string, naturalLevel int, values []string) goqu.Expression {
	vals := make([]interface{}, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return goqu.Or(
		goqu.C("level").Lt(naturalLevel),
		goqu.C(column).IsNull(),
		goqu.C(column).Eq(""),
		goqu.C(column).In(vals...),
	)
}

// sequencePredicate builds the drug predicate. Drug identity can appear at
// any position of a multi-drug pathway, so matching is substring
// containment over the denormalized drug_sequence column rather than
// equality.
func sequencePredicate(naturalLevel int, drugs []string) goqu.Expression {
	matches := make([]goqu.Expression, 0, len(drugs))
	for _, d := range drugs {
		matches = append(matches, goqu.C("drug_sequence").Like("%"+d+"%"))
	}
	return goqu.Or(
		goqu.C("level").Lt(naturalLevel),
		goqu.C("drug_sequence").IsNull(),
		goqu.C("drug_sequence").Eq(""),
		goqu.Or(matches...),
	)
}

// filterExpressions composes the conjunctive predicate for a node filter.
func filterExpressions(f repositories.NodeFilter) []goqu.Expression {
	var exprs []goqu.Expression
	if len(f.Trusts) > 0 {
		exprs = append(exprs, dimensionPredicate("trust_name", entities.LevelTrust, f.Trusts))
	}
	if len(f.Directorates) > 0 {
		exprs = append(exprs, dimensionPredicate("directory", entities.LevelDirectorate, f.Directorates))
	}
	if len(f.Drugs) > 0 {
		exprs = append(exprs, sequencePredicate(entities.LevelFirstDrug, f.Drugs))
	}
	return exprs
}
