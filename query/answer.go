package query

import (
	"fmt"
	"sort"

	"github.com/anusornc/dlreason/abox"
)

// Answer translates q to a Plan, evaluates it against tbl, and applies
// projection, DISTINCT/REDUCED, ORDER BY and LIMIT/OFFSET in that order.
func Answer(q *Query, tbl *abox.SaturatedABox) ([]Row, error) {
	if err := validateOrderBy(q); err != nil {
		return nil, err
	}
	plan, err := Translate(q)
	if err != nil {
		return nil, err
	}
	rows := plan.Evaluate(tbl)

	projVars := q.Projection
	if len(projVars) == 0 {
		projVars = plan.Vars
	}
	rows = project(rows, projVars)

	if q.Distinct || q.Reduced {
		rows = dedup(rows, projVars)
	}
	if len(q.OrderBy) > 0 {
		sortRows(rows, q.OrderBy)
	}
	return applyLimitOffset(rows, q.Limit, q.Offset), nil
}

func validateOrderBy(q *Query) error {
	if len(q.OrderBy) == 0 {
		return nil
	}
	known := make(map[string]bool)
	for _, tp := range q.Triples {
		for _, t := range []Term{tp.Subject, tp.Predicate, tp.Object} {
			if v, ok := t.(Variable); ok {
				known[v.Name] = true
			}
		}
	}
	for _, ob := range q.OrderBy {
		if !known[ob.Variable] {
			return fmt.Errorf("%w: %q", ErrUnsupportedOrderBy, ob.Variable)
		}
	}
	return nil
}

func project(rows []Row, vars []string) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		nr := Row{}
		for _, v := range vars {
			nr[v] = r[v]
		}
		out[i] = nr
	}
	return out
}

func dedup(rows []Row, vars []string) []Row {
	seen := make(map[string]bool, len(rows))
	out := rows[:0]
	for _, r := range rows {
		key := rowKey(r, vars)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

func rowKey(r Row, vars []string) string {
	key := ""
	for _, v := range vars {
		key += v + "=" + r[v] + "\x00"
	}
	return key
}

func sortRows(rows []Row, by []OrderTerm) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, ob := range by {
			vi, vj := rows[i][ob.Variable], rows[j][ob.Variable]
			if vi == vj {
				continue
			}
			if ob.Desc {
				return vi > vj
			}
			return vi < vj
		}
		return false
	})
}

func applyLimitOffset(rows []Row, limit, offset int) []Row {
	if offset > 0 {
		if offset >= len(rows) {
			return nil
		}
		rows = rows[offset:]
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
