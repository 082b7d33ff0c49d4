package reasoner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anusornc/dlreason/ontology"
	"github.com/anusornc/dlreason/query"
)

func buildOnt(build func(a *ontology.Arena, o *ontology.Ontology)) *ontology.Ontology {
	a := ontology.NewArena()
	o := ontology.New(a)
	build(a, o)
	return o
}

func TestReasonerSubclassTransitivity(t *testing.T) {
	src := buildOnt(func(a *ontology.Arena, o *ontology.Ontology) {
		A := ontology.AtomicClass{ID: a.InternClass("A")}
		B := ontology.AtomicClass{ID: a.InternClass("B")}
		C := ontology.AtomicClass{ID: a.InternClass("C")}
		o.AddStatement(ontology.SubClassOf{LHS: A, RHS: B})
		o.AddStatement(ontology.SubClassOf{LHS: B, RHS: C})
	})
	r, err := New(src)
	require.NoError(t, err)

	ok, err := r.IsSubclass("A", "C")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.IsSubclass("C", "A")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReasonerUnknownClassError(t *testing.T) {
	src := buildOnt(func(a *ontology.Arena, o *ontology.Ontology) {
		a.InternClass("A")
	})
	r, err := New(src)
	require.NoError(t, err)

	_, err = r.IsSubclass("A", "NoSuchClass")
	require.ErrorIs(t, err, ErrUnknownClass)

	_, err = r.IsSubclass("NoSuchClass", "A")
	require.ErrorIs(t, err, ErrUnknownClass)
}

func TestReasonerUnknownPropertyError(t *testing.T) {
	src := buildOnt(func(a *ontology.Arena, o *ontology.Ontology) {
		a.InternProperty("r")
	})
	r, err := New(src)
	require.NoError(t, err)

	_, err = r.IsSubproperty("r", "nope")
	require.ErrorIs(t, err, ErrUnknownProperty)
}

func TestReasonerRoleChainEndToEnd(t *testing.T) {
	src := buildOnt(func(a *ontology.Arena, o *ontology.Ontology) {
		r := a.InternProperty("r")
		s := a.InternProperty("s")
		tProp := a.InternProperty("t")
		indA := a.InternIndividual("a")
		indB := a.InternIndividual("b")
		indC := a.InternIndividual("c")
		o.AddStatement(ontology.SubObjectPropertyOf{
			LHS: ontology.PropertyChain{Args: []ontology.PropertyID{r, s}},
			RHS: tProp,
		})
		o.AddStatement(ontology.ObjectPropertyAssertion{Property: r, Subject: indA, Object: indB})
		o.AddStatement(ontology.ObjectPropertyAssertion{Property: s, Subject: indB, Object: indC})
	})
	r, err := New(src)
	require.NoError(t, err)

	var found bool
	for _, row := range r.SaturatedABox().ObjectPropertyAssertions {
		if row.Property == "t" && row.Left == "a" && row.Right == "c" {
			found = true
		}
	}
	assert.True(t, found, "saturated ABox must contain the chain-derived (t, a, c)")
}

// TestReasonerBGPQuery matches spec.md §8 scenario 5 end to end, through
// the public façade rather than the query package directly.
func TestReasonerBGPQuery(t *testing.T) {
	src := buildOnt(func(a *ontology.Arena, o *ontology.Ontology) {
		person := ontology.AtomicClass{ID: a.InternClass("Person")}
		student := ontology.AtomicClass{ID: a.InternClass("Student")}
		alice := a.InternIndividual("alice")
		o.AddStatement(ontology.ClassAssertion{Class: person, Individual: alice})
		o.AddStatement(ontology.ClassAssertion{Class: student, Individual: alice})
		o.AddStatement(ontology.SubClassOf{LHS: student, RHS: person})
	})
	r, err := New(src)
	require.NoError(t, err)

	q := &query.Query{
		Triples: []query.TriplePattern{
			{Subject: query.Variable{Name: "x"}, Predicate: query.IRIRef("http://www.w3.org/1999/02/22-rdf-syntax-ns#type"), Object: query.IRIRef("Person")},
		},
	}
	rows, err := r.AnswerQuery(q)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "alice", rows[0]["x"])
}

func TestReasonerTimingsPopulated(t *testing.T) {
	src := buildOnt(func(a *ontology.Arena, o *ontology.Ontology) {
		a.InternClass("A")
	})
	r, err := New(src)
	require.NoError(t, err)
	timings := r.Timings()
	assert.GreaterOrEqual(t, timings.Total, timings.Normalize)
}
