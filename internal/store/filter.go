package store

import (
	"strings"
)

// Filter narrows a query-log listing. The zero value selects everything.
type Filter struct {
	// PatternContains keeps queries whose pattern rendering contains
	// this substring. Empty means no constraint.
	PatternContains string

	// SubjectContains keeps queries whose subject rendering contains
	// this substring. Empty means no constraint.
	SubjectContains string

	// MinMatches keeps queries with at least this many reports.
	MinMatches int

	// Limit caps the number of rows returned. Zero means no cap.
	Limit int
}

// compile renders the filter as a SQL clause tail with parameter
// placeholders. Values are always parameterized, never interpolated,
// and every listing carries an ORDER BY so results are deterministic.
func (f Filter) compile() (string, []any) {
	var conds []string
	var params []any

	if f.PatternContains != "" {
		conds = append(conds, `pattern LIKE ? ESCAPE '\'`)
		params = append(params, "%"+escapeLike(f.PatternContains)+"%")
	}
	if f.SubjectContains != "" {
		conds = append(conds, `subject LIKE ? ESCAPE '\'`)
		params = append(params, "%"+escapeLike(f.SubjectContains)+"%")
	}
	if f.MinMatches > 0 {
		conds = append(conds, "match_count >= ?")
		params = append(params, f.MinMatches)
	}

	var b strings.Builder
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY id ASC")
	if f.Limit > 0 {
		b.WriteString(" LIMIT ?")
		params = append(params, f.Limit)
	}
	return b.String(), params
}

// escapeLike neutralizes LIKE metacharacters so a literal "%" in a
// pattern rendering does not widen the filter.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
