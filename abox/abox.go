// Package abox saturates a normalized ontology's ClassAssertion and
// ObjectPropertyAssertion statements against the computed subsumers_C and
// subsumers_R relations, producing the two output tables the query engine
// reads. The saturated facts are held as github.com/google/mangle/ast.Atom
// values in a factstore.SimpleInMemoryStore — the same Datalog-style fact
// representation this codebase's sibling reasoner uses for queried fact
// tables — and that store, not the fixpoint loops themselves, is the
// source of truth for ClassAssertions/ObjectPropertyAssertions: both
// slices are read back out of the store via GetFacts rather than carried
// along as a second copy, so the store is load-bearing instead of a
// write-only shadow of the computation. The fixpoint itself still runs
// over the same generic TripletStore this module's class-subsumption
// engine uses, since repeated composition needs dual-keyed lookups the
// fact store does not provide.
package abox

import (
	"sort"

	"github.com/google/mangle/ast"
	"github.com/google/mangle/factstore"

	"github.com/anusornc/dlreason/ontology"
	"github.com/anusornc/dlreason/rolehierarchy"
)

const (
	classAssertionPredicate         = "class_assertion"
	objectPropertyAssertionPredicate = "object_property_assertion"
)

// ClassAssertionRow is one row of the saturated class-assertion table.
type ClassAssertionRow struct {
	Individual string
	ClassName  string
}

// ObjectPropertyAssertionRow is one row of the saturated
// object-property-assertion table.
type ObjectPropertyAssertionRow struct {
	Property string
	Left     string
	Right    string
}

// SaturatedABox holds both output tables, read back out of the durable
// mangle fact store that is their actual source of truth.
type SaturatedABox struct {
	ClassAssertions          []ClassAssertionRow
	ObjectPropertyAssertions []ObjectPropertyAssertionRow

	facts *factstore.SimpleInMemoryStore
}

// Facts returns the mangle fact store backing this ABox, for callers
// that want to query it directly (e.g. by predicate) rather than through
// the ClassAssertions/ObjectPropertyAssertions slices.
func (ab *SaturatedABox) Facts() *factstore.SimpleInMemoryStore { return ab.facts }

// Saturate closes a normalized ontology's ABox under subsumersC and the
// role hierarchy, filtering minted auxiliary entities out of the
// resulting tables against original (the pre-normalization ontology).
func Saturate(
	arena *ontology.Arena,
	norm *ontology.Ontology,
	original *ontology.Ontology,
	hier *rolehierarchy.Hierarchy,
	subsumersC *ontology.PairStore[ontology.ClassID],
) *SaturatedABox {
	facts := factstore.NewSimpleInMemoryStore()

	for _, row := range saturateClassAssertions(arena, norm, original, subsumersC) {
		facts.Add(ast.NewAtom(classAssertionPredicate, ast.String(row.Individual), ast.String(row.ClassName)))
	}
	for _, row := range saturatePropertyAssertions(arena, norm, original, hier) {
		facts.Add(ast.NewAtom(objectPropertyAssertionPredicate, ast.String(row.Property), ast.String(row.Left), ast.String(row.Right)))
	}

	return &SaturatedABox{
		facts:                    facts,
		ClassAssertions:          readClassAssertions(facts),
		ObjectPropertyAssertions: readObjectPropertyAssertions(facts),
	}
}

// readClassAssertions and readObjectPropertyAssertions are the only
// places either output table is built: both query the mangle store
// rather than re-deriving rows from the fixpoint's own intermediate
// state, so a fact missing from the store is a row missing from the
// table the query engine sees.
func readClassAssertions(facts *factstore.SimpleInMemoryStore) []ClassAssertionRow {
	sym := ast.PredicateSym{Symbol: classAssertionPredicate, Arity: 2}
	var rows []ClassAssertionRow
	facts.GetFacts(ast.NewQuery(sym), func(atom ast.Atom) error {
		rows = append(rows, ClassAssertionRow{
			Individual: constantString(atom.Args[0]),
			ClassName:  constantString(atom.Args[1]),
		})
		return nil
	})
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Individual != rows[j].Individual {
			return rows[i].Individual < rows[j].Individual
		}
		return rows[i].ClassName < rows[j].ClassName
	})
	return rows
}

func readObjectPropertyAssertions(facts *factstore.SimpleInMemoryStore) []ObjectPropertyAssertionRow {
	sym := ast.PredicateSym{Symbol: objectPropertyAssertionPredicate, Arity: 3}
	var rows []ObjectPropertyAssertionRow
	facts.GetFacts(ast.NewQuery(sym), func(atom ast.Atom) error {
		rows = append(rows, ObjectPropertyAssertionRow{
			Property: constantString(atom.Args[0]),
			Left:     constantString(atom.Args[1]),
			Right:    constantString(atom.Args[2]),
		})
		return nil
	})
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Property != rows[j].Property {
			return rows[i].Property < rows[j].Property
		}
		if rows[i].Left != rows[j].Left {
			return rows[i].Left < rows[j].Left
		}
		return rows[i].Right < rows[j].Right
	})
	return rows
}

func constantString(t ast.BaseTerm) string {
	c, ok := t.(ast.Constant)
	if !ok {
		return ""
	}
	return c.Symbol
}

func saturateClassAssertions(
	arena *ontology.Arena,
	norm *ontology.Ontology,
	original *ontology.Ontology,
	subsumersC *ontology.PairStore[ontology.ClassID],
) []ClassAssertionRow {
	originalClasses := original.Arena.ClassNames()
	var rows []ClassAssertionRow
	for _, st := range norm.Statements {
		ca, ok := st.(ontology.ClassAssertion)
		if !ok {
			continue
		}
		atomic, ok := ca.Class.(ontology.AtomicClass)
		if !ok {
			continue // normalizer guarantees NF-G; defensive skip otherwise.
		}
		individualIRI := arena.IndividualIRI(ca.Individual)
		for _, b := range subsumersC.PairsWithFirst(atomic.ID) {
			className := arena.ClassIRI(b)
			if !originalClasses[className] {
				continue
			}
			rows = append(rows, ClassAssertionRow{Individual: individualIRI, ClassName: className})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Individual != rows[j].Individual {
			return rows[i].Individual < rows[j].Individual
		}
		return rows[i].ClassName < rows[j].ClassName
	})
	return dedupClassRows(rows)
}

func dedupClassRows(rows []ClassAssertionRow) []ClassAssertionRow {
	out := rows[:0]
	var prev *ClassAssertionRow
	for i := range rows {
		r := rows[i]
		if prev != nil && *prev == r {
			continue
		}
		out = append(out, r)
		prev = &rows[i]
	}
	return out
}

// saturatePropertyAssertions implements the closure of §4.5: seed the
// working store S with each asserted property generalized through every
// subsuming role, then repeatedly compose S with every normalized
// role-chain axiom (NF-F) until nothing new is derived. The two
// individuals on either side of a composed chain are always held in
// distinct named variables (a, m, b below), which is what keeps this
// correct: a documented hazard in the reasoner this grew from was
// conflating the two individuals on the right of a chain when only one
// local was kept for both.
func saturatePropertyAssertions(
	arena *ontology.Arena,
	norm *ontology.Ontology,
	original *ontology.Ontology,
	hier *rolehierarchy.Hierarchy,
) []ObjectPropertyAssertionRow {
	S := ontology.NewTripletStore[ontology.PropertyID, ontology.IndividualID, ontology.IndividualID]()

	for _, st := range norm.Statements {
		pa, ok := st.(ontology.ObjectPropertyAssertion)
		if !ok {
			continue
		}
		for _, q := range hier.Subsumers.PairsWithFirst(pa.Property) {
			S.Add(q, pa.Subject, pa.Object)
		}
	}

	type chainAxiom struct {
		r, s, q ontology.PropertyID
	}
	var chains []chainAxiom
	for _, st := range norm.Statements {
		sop, ok := st.(ontology.SubObjectPropertyOf)
		if !ok {
			continue
		}
		chain, ok := sop.LHS.(ontology.PropertyChain)
		if !ok || len(chain.Args) != 2 {
			continue
		}
		chains = append(chains, chainAxiom{r: chain.Args[0], s: chain.Args[1], q: sop.RHS})
	}

	for {
		changed := false
		for _, ax := range chains {
			for _, am := range S.WithFirst(ax.r) {
				a, m := am.First, am.Second
				for _, b := range S.WithFirstTwo(ax.s, m) {
					for _, qPrime := range hier.Subsumers.PairsWithFirst(ax.q) {
						if S.Add(qPrime, a, b) {
							changed = true
						}
					}
				}
			}
		}
		if !changed {
			break
		}
	}

	originalProps := original.Arena.PropertyNames()
	var rows []ObjectPropertyAssertionRow
	for _, t := range S.All() {
		propIRI := arena.PropertyIRI(t.A)
		if !originalProps[propIRI] {
			continue
		}
		rows = append(rows, ObjectPropertyAssertionRow{
			Property: propIRI,
			Left:     arena.IndividualIRI(t.B),
			Right:    arena.IndividualIRI(t.C),
		})
	}
	return rows
}
