package query

import (
	"gonum.org/v1/gonum/graph/formats/rdf"
)

// Translation to relational algebra follows the node vocabulary of a
// full SQL planner (TableScan, Filter, Join, Project) in spirit, without
// importing one: a two-table query engine has no use for a general
// relational optimizer, so the plan here is the minimal tree that
// vocabulary would produce — one scan per triple pattern, equality
// filters baked into the scan, and join predicates collected
// separately for the nested-loop evaluator.

// scan is one TableScan-with-Filter node: a single triple pattern
// resolved to either table, with IRIRef positions turned into equality
// filters on a column and Variable positions recorded for both join
// predicates and final projection.
type scan struct {
	table   string // "ClassAssertion" or "ObjectPropertyAssertion"
	filters map[string]string
	varcol  map[string]string // column -> variable name
}

type joinPred struct {
	ScanA, ScanB int
	ColA, ColB   string
}

// Plan is the translated query: one scan per triple pattern plus the
// equi-join predicates linking repeated variables across scans.
type Plan struct {
	Scans []scan
	Joins []joinPred
	Vars  []string // distinct variables, in first-occurrence order
}

type firstOccurrence struct {
	scan int
	col  string
}

// Translate turns a Query's triple patterns into a Plan, or an error if
// a pattern uses a literal term or an unresolvable position.
func Translate(q *Query) (*Plan, error) {
	plan := &Plan{}
	first := make(map[string]firstOccurrence)

	for i, tp := range q.Triples {
		s := scan{filters: make(map[string]string), varcol: make(map[string]string)}

		predVar, predErr := classifyPredicate(tp.Predicate, &s)
		if predErr != nil {
			return nil, predErr
		}

		subjectCol := "individual"
		objectCol := "className"
		if s.table == "ObjectPropertyAssertion" {
			subjectCol = "leftIndividual"
			objectCol = "rightIndividual"
		}

		if err := bindPosition(plan, &s, i, &first, tp.Subject, subjectCol); err != nil {
			return nil, err
		}
		if predVar != "" {
			if err := bindPosition(plan, &s, i, &first, tp.Predicate, "objectProperty"); err != nil {
				return nil, err
			}
		}
		if err := bindPosition(plan, &s, i, &first, tp.Object, objectCol); err != nil {
			return nil, err
		}

		plan.Scans = append(plan.Scans, s)
	}
	return plan, nil
}

// classifyPredicate resolves which table a triple pattern targets. A
// bound rdf:type predicate selects the class-assertion table; any other
// bound IRI selects the object-property-assertion table and is baked in
// as an equality filter; an unbound predicate also selects the
// object-property-assertion table, with the predicate itself returned
// as a variable name to bind.
func classifyPredicate(pred Term, s *scan) (varName string, err error) {
	switch p := pred.(type) {
	case Bound:
		text, err := iriText(p.Term)
		if err != nil {
			return "", err
		}
		if text == rdfTypeIRI {
			s.table = "ClassAssertion"
			return "", nil
		}
		s.table = "ObjectPropertyAssertion"
		s.filters["objectProperty"] = text
		return "", nil
	case Variable:
		s.table = "ObjectPropertyAssertion"
		return p.Name, nil
	}
	return "", nil
}

func bindPosition(plan *Plan, s *scan, scanIdx int, first *map[string]firstOccurrence, t Term, col string) error {
	switch v := t.(type) {
	case Bound:
		text, err := iriText(v.Term)
		if err != nil {
			return err
		}
		s.filters[col] = text
	case Variable:
		if f, ok := (*first)[v.Name]; ok {
			plan.Joins = append(plan.Joins, joinPred{ScanA: f.scan, ColA: f.col, ScanB: scanIdx, ColB: col})
		} else {
			(*first)[v.Name] = firstOccurrence{scan: scanIdx, col: col}
			plan.Vars = append(plan.Vars, v.Name)
		}
		s.varcol[col] = v.Name
	}
	return nil
}

func iriText(t rdf.Term) (string, error) {
	text, _, kind, err := t.Parts()
	if err != nil {
		return "", err
	}
	if kind == rdf.Literal {
		return "", ErrLiteralsUnsupported
	}
	return text, nil
}
