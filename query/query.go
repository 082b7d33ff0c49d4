// Package query answers basic graph pattern queries over a saturated
// ABox. Bound terms are backed by gonum's RDF term package instead of a
// bespoke IRI/literal union; the owlxml package does not use it and
// produces ontology statements directly.
package query

import (
	"errors"

	"gonum.org/v1/gonum/graph/formats/rdf"
)

// rdfTypeIRI is the predicate position recognized as a class-assertion
// triple (?s rdf:type ?o) rather than an object-property-assertion
// triple.
const rdfTypeIRI = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

// Term is the sealed sum type of a query triple-pattern position:
// Variable or Bound.
type Term interface {
	isTerm()
}

// Variable names an unbound position to be returned in the result rows.
type Variable struct {
	Name string
}

// Bound wraps a concrete gonum rdf.Term (an IRI or a literal).
type Bound struct {
	Term rdf.Term
}

func (Variable) isTerm() {}
func (Bound) isTerm()    {}

// IRIRef is a convenience constructor for a Bound IRI term.
func IRIRef(iri string) Bound {
	t, _ := rdf.NewIRITerm(iri)
	return Bound{Term: t}
}

// TriplePattern is one line of a basic graph pattern.
type TriplePattern struct {
	Subject, Predicate, Object Term
}

// OrderTerm is one ORDER BY key.
type OrderTerm struct {
	Variable string
	Desc     bool
}

// Query is a basic graph pattern query plus its result-shaping clauses.
type Query struct {
	Projection []string
	Distinct   bool
	Reduced    bool
	Triples    []TriplePattern
	OrderBy    []OrderTerm
	Limit      int // 0 means unbounded.
	Offset     int
}

var (
	// ErrLiteralsUnsupported is returned when a triple pattern places a
	// literal in a position this engine does not evaluate over (data
	// properties are out of scope; only individuals and classes appear
	// in the saturated tables).
	ErrLiteralsUnsupported = errors.New("query: literal terms are not supported in triple patterns")

	// ErrUnsupportedOrderBy is returned when ORDER BY names a variable
	// never bound by the query's triple patterns.
	ErrUnsupportedOrderBy = errors.New("query: order by references a variable not bound by the query")

	// ErrUnknownPrefix is returned by callers that resolve a prefixed
	// name before constructing a Query and fail to find the prefix.
	ErrUnknownPrefix = errors.New("query: unknown prefix")
)

// Row is one result row, keyed by projected variable name.
type Row map[string]string
