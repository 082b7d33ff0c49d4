package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/anusornc/dlreason/abox"
)

func sampleTable() *abox.SaturatedABox {
	return &abox.SaturatedABox{
		ClassAssertions: []abox.ClassAssertionRow{
			{Individual: "alice", ClassName: "Person"},
			{Individual: "alice", ClassName: "Student"},
			{Individual: "bob", ClassName: "Person"},
		},
		ObjectPropertyAssertions: []abox.ObjectPropertyAssertionRow{
			{Property: "hasParent", Left: "alice", Right: "carol"},
			{Property: "hasParent", Left: "bob", Right: "carol"},
		},
	}
}

// TestBGPQueryTyped matches spec.md §8 scenario 5: SELECT ?x WHERE
// { ?x rdf:type Person } over an ABox where Student ⊑ Person has already
// been materialized, returning exactly the individuals typed Person.
func TestBGPQueryTyped(t *testing.T) {
	q := &Query{
		Triples: []TriplePattern{
			{Subject: Variable{Name: "x"}, Predicate: IRIRef(rdfTypeIRI), Object: IRIRef("Person")},
		},
	}
	rows, err := Answer(q, sampleTable())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	var xs []string
	for _, r := range rows {
		xs = append(xs, r["x"])
	}
	assert.ElementsMatch(t, []string{"alice", "bob"}, xs)
}

func TestBGPQueryWithJoin(t *testing.T) {
	q := &Query{
		Triples: []TriplePattern{
			{Subject: Variable{Name: "x"}, Predicate: IRIRef(rdfTypeIRI), Object: IRIRef("Student")},
			{Subject: Variable{Name: "x"}, Predicate: IRIRef("hasParent"), Object: Variable{Name: "p"}},
		},
	}
	rows, err := Answer(q, sampleTable())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "alice", rows[0]["x"])
	assert.Equal(t, "carol", rows[0]["p"])
}

func TestVariablePredicateBindsObjectProperty(t *testing.T) {
	q := &Query{
		Triples: []TriplePattern{
			{Subject: Variable{Name: "s"}, Predicate: Variable{Name: "p"}, Object: Variable{Name: "o"}},
		},
	}
	rows, err := Answer(q, sampleTable())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, "hasParent", r["p"])
	}
}

func TestDistinctDedupsRows(t *testing.T) {
	tbl := &abox.SaturatedABox{
		ClassAssertions: []abox.ClassAssertionRow{
			{Individual: "alice", ClassName: "Person"},
			{Individual: "alice", ClassName: "Student"},
		},
	}
	q := &Query{
		Distinct: true,
		Triples: []TriplePattern{
			{Subject: Variable{Name: "x"}, Predicate: IRIRef(rdfTypeIRI), Object: Variable{Name: "c"}},
		},
		Projection: []string{"x"},
	}
	rows, err := Answer(q, tbl)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestOrderByLimitOffset(t *testing.T) {
	q := &Query{
		Triples: []TriplePattern{
			{Subject: Variable{Name: "x"}, Predicate: IRIRef(rdfTypeIRI), Object: IRIRef("Person")},
		},
		OrderBy: []OrderTerm{{Variable: "x"}},
		Limit:   1,
		Offset:  1,
	}
	rows, err := Answer(q, sampleTable())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "bob", rows[0]["x"])
}

func TestUnknownOrderByVariableIsAnError(t *testing.T) {
	q := &Query{
		Triples: []TriplePattern{
			{Subject: Variable{Name: "x"}, Predicate: IRIRef(rdfTypeIRI), Object: IRIRef("Person")},
		},
		OrderBy: []OrderTerm{{Variable: "nope"}},
	}
	_, err := Answer(q, sampleTable())
	require.ErrorIs(t, err, ErrUnsupportedOrderBy)
}

func TestLiteralTermIsUnsupported(t *testing.T) {
	lit, err := rdf.NewLiteralTerm("hello", "")
	require.NoError(t, err)
	q := &Query{
		Triples: []TriplePattern{
			{Subject: Variable{Name: "x"}, Predicate: IRIRef(rdfTypeIRI), Object: Bound{Term: lit}},
		},
	}
	_, err = Answer(q, sampleTable())
	require.ErrorIs(t, err, ErrLiteralsUnsupported)
}
