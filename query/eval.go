package query

import "github.com/anusornc/dlreason/abox"

type tableRow = map[string]string

// columnIndex maps a column value to the row indices that hold it. A
// scan builds one on a single equality-filtered column to pick its
// candidate rows, then checks any remaining filters row by row; join
// predicates are compared per candidate in the nested loop.
type columnIndex map[string][]int

func buildIndex(rows []tableRow, col string) columnIndex {
	idx := make(columnIndex, len(rows))
	for i, r := range rows {
		idx[r[col]] = append(idx[r[col]], i)
	}
	return idx
}

func scanRows(tbl *abox.SaturatedABox, s scan) []tableRow {
	var base []tableRow
	switch s.table {
	case "ClassAssertion":
		base = make([]tableRow, len(tbl.ClassAssertions))
		for i, r := range tbl.ClassAssertions {
			base[i] = tableRow{"individual": r.Individual, "className": r.ClassName}
		}
	default:
		base = make([]tableRow, len(tbl.ObjectPropertyAssertions))
		for i, r := range tbl.ObjectPropertyAssertions {
			base[i] = tableRow{"objectProperty": r.Property, "leftIndividual": r.Left, "rightIndividual": r.Right}
		}
	}
	if len(s.filters) == 0 {
		return base
	}

	var firstCol string
	for col := range s.filters {
		firstCol = col
		break
	}
	idx := buildIndex(base, firstCol)
	candidates := idx[s.filters[firstCol]]

	out := make([]tableRow, 0, len(candidates))
	for _, ri := range candidates {
		row := base[ri]
		match := true
		for col, val := range s.filters {
			if row[col] != val {
				match = false
				break
			}
		}
		if match {
			out = append(out, row)
		}
	}
	return out
}

// Evaluate runs the plan's nested-loop join over tbl, producing one Row
// per matching combination of scan rows, keyed by the variable name bound
// to each joined column.
func (p *Plan) Evaluate(tbl *abox.SaturatedABox) []Row {
	candidates := make([][]tableRow, len(p.Scans))
	for i, s := range p.Scans {
		candidates[i] = scanRows(tbl, s)
	}

	chosen := make([]tableRow, len(p.Scans))
	var out []Row

	var rec func(i int)
	rec = func(i int) {
		if i == len(p.Scans) {
			row := Row{}
			for si, s := range p.Scans {
				for col, varName := range s.varcol {
					row[varName] = chosen[si][col]
				}
			}
			out = append(out, row)
			return
		}
		for _, cand := range candidates[i] {
			ok := true
			for _, j := range p.Joins {
				if j.ScanB == i && chosen[j.ScanA][j.ColA] != cand[j.ColB] {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			chosen[i] = cand
			rec(i + 1)
		}
	}
	rec(0)
	return out
}
