package abox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anusornc/dlreason/ontology"
	"github.com/anusornc/dlreason/rolehierarchy"
)

func buildOntology(build func(a *ontology.Arena, o *ontology.Ontology)) (*ontology.Arena, *ontology.Ontology) {
	a := ontology.NewArena()
	o := ontology.New(a)
	build(a, o)
	return a, o
}

func contains(rows []ObjectPropertyAssertionRow, prop, left, right string) bool {
	for _, r := range rows {
		if r.Property == prop && r.Left == left && r.Right == right {
			return true
		}
	}
	return false
}

// TestRoleChainSaturation matches spec.md §8 scenario 4: r∘s⊑t plus
// ObjectPropertyAssertion(r,a,b) and ObjectPropertyAssertion(s,b,c) must
// saturate to contain (t,a,c), (r,a,b) and (s,b,c).
func TestRoleChainSaturation(t *testing.T) {
	a, norm := buildOntology(func(a *ontology.Arena, o *ontology.Ontology) {
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
	hier := rolehierarchy.Build(norm)
	subsumersC := ontology.NewPairStore[ontology.ClassID]()

	sat := Saturate(a, norm, norm, hier, subsumersC)

	assert.True(t, contains(sat.ObjectPropertyAssertions, "t", "a", "c"), "chain-derived triple (t,a,c) must be present")
	assert.True(t, contains(sat.ObjectPropertyAssertions, "r", "a", "b"), "the original assertion must survive saturation")
	assert.True(t, contains(sat.ObjectPropertyAssertions, "s", "b", "c"), "the original assertion must survive saturation")
}

// TestSaturationIsIdempotent re-saturates the same normalized ontology and
// expects identical output tables, per spec.md §8 invariants.
func TestSaturationIsIdempotent(t *testing.T) {
	a, norm := buildOntology(func(a *ontology.Arena, o *ontology.Ontology) {
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
	hier := rolehierarchy.Build(norm)
	subsumersC := ontology.NewPairStore[ontology.ClassID]()

	first := Saturate(a, norm, norm, hier, subsumersC)
	second := Saturate(a, norm, norm, hier, subsumersC)

	require.Equal(t, len(first.ObjectPropertyAssertions), len(second.ObjectPropertyAssertions))
	assert.ElementsMatch(t, first.ObjectPropertyAssertions, second.ObjectPropertyAssertions)
	assert.ElementsMatch(t, first.ClassAssertions, second.ClassAssertions)
}

func TestClassAssertionClosureFiltersAuxiliaryClasses(t *testing.T) {
	// original only ever knows "Student"; norm is a clone that additionally
	// mints an auxiliary class, the way normalize.Normalize's output would,
	// and that auxiliary must never leak into the saturated table.
	origArena := ontology.NewArena()
	student := origArena.InternClass("Student")
	original := ontology.New(origArena)

	normArena := origArena.Clone()
	alice := normArena.InternIndividual("alice")
	norm := ontology.New(normArena)
	norm.AddStatement(ontology.ClassAssertion{Class: ontology.AtomicClass{ID: student}, Individual: alice})
	aux := normArena.MintClass()

	hier := rolehierarchy.Build(norm)
	subsumersC := ontology.NewPairStore[ontology.ClassID]()
	subsumersC.Add(student, student)
	subsumersC.Add(student, aux)

	sat := Saturate(normArena, norm, original, hier, subsumersC)
	require.Len(t, sat.ClassAssertions, 1)
	assert.Equal(t, "Student", sat.ClassAssertions[0].ClassName)
}
