package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anusornc/dlreason/ontology"
)

func newOnt() (*ontology.Arena, *ontology.Ontology) {
	a := ontology.NewArena()
	return a, ontology.New(a)
}

func cls(a *ontology.Arena, iri string) ontology.AtomicClass {
	return ontology.AtomicClass{ID: a.InternClass(iri)}
}

func prop(a *ontology.Arena, iri string) ontology.PropertyID {
	return a.InternProperty(iri)
}

// classify classifies every statement of out into the eight normal
// forms by the same discriminants checkNormalForm uses, so tests can
// assert on shape counts without reaching into package-private helpers.
func classify(t *testing.T, stmts []ontology.Statement) map[string]int {
	t.Helper()
	counts := map[string]int{}
	for _, st := range stmts {
		switch s := st.(type) {
		case ontology.SubClassOf:
			switch lhs := s.LHS.(type) {
			case ontology.AtomicClass:
				switch s.RHS.(type) {
				case ontology.AtomicClass:
					counts["NF-A"]++
				case ontology.SomeValuesFrom:
					counts["NF-C"]++
				}
			case ontology.ClassIntersection:
				_ = lhs
				counts["NF-B"]++
			case ontology.SomeValuesFrom:
				counts["NF-D"]++
			}
		case ontology.SubObjectPropertyOf:
			switch s.LHS.(type) {
			case ontology.AtomicProperty:
				counts["NF-E"]++
			case ontology.PropertyChain:
				counts["NF-F"]++
			}
		case ontology.ClassAssertion:
			counts["NF-G"]++
		case ontology.ObjectPropertyAssertion:
			counts["NF-H"]++
		}
	}
	return counts
}

func TestNormalizeAlreadyNormalStatementsPassThrough(t *testing.T) {
	a, ont := newOnt()
	A, B := cls(a, "A"), cls(a, "B")
	ont.AddStatement(ontology.SubClassOf{LHS: A, RHS: B})

	out, err := Normalize(ont)
	require.NoError(t, err)
	require.Len(t, out.Statements, 1)
	assert.Equal(t, map[string]int{"NF-A": 1}, classify(t, out.Statements))
}

func TestRuleConjunctionOnRHS(t *testing.T) {
	a, ont := newOnt()
	A, B, C := cls(a, "A"), cls(a, "B"), cls(a, "C")
	ont.AddStatement(ontology.SubClassOf{LHS: A, RHS: ontology.ClassIntersection{Args: []ontology.ClassExpr{B, C}}})

	out, err := Normalize(ont)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"NF-A": 2}, classify(t, out.Statements))
}

func TestRuleComplexToComplex(t *testing.T) {
	a, ont := newOnt()
	r := prop(a, "r")
	// (A ⊓ B) ⊑ ∃r.(B ⊓ C): LHS complex, RHS complex (isAtomic rejects every
	// SomeValuesFrom, atomic filler or not); the intersection filler also
	// exercises rule 7 after rule 4 fires.
	A, B, C := cls(a, "A"), cls(a, "B"), cls(a, "C")
	lhs := ontology.ClassIntersection{Args: []ontology.ClassExpr{A, B}}
	rhs := ontology.SomeValuesFrom{Property: r, Filler: ontology.ClassIntersection{Args: []ontology.ClassExpr{B, C}}}
	ont.AddStatement(ontology.SubClassOf{LHS: lhs, RHS: rhs})

	out, err := Normalize(ont)
	require.NoError(t, err)
	// Rule 4 fires first: LHS is a ClassIntersection (complex) and RHS is a
	// SomeValuesFrom (complex, since isAtomic only accepts AtomicClass),
	// producing "(A⊓B) ⊑ X" (already NF-B, atomic conjuncts) and
	// "X ⊑ ∃r.(B⊓C)". Rule 7 then strips the complex filler from the
	// latter, producing "(B⊓C) ⊑ Y" (NF-B) and "X ⊑ ∃r.Y" (NF-C).
	counts := classify(t, out.Statements)
	assert.Equal(t, 2, counts["NF-B"], "both the split LHS and the atomized filler are NF-B axioms")
	assert.Equal(t, 1, counts["NF-C"], "the fresh intermediate's existential becomes NF-C once its filler is atomized")
}

func TestRuleConjunctionOnLHSWithComplexConjuncts(t *testing.T) {
	a, ont := newOnt()
	r := prop(a, "r")
	A, D := cls(a, "A"), cls(a, "D")
	complexConjunct := ontology.SomeValuesFrom{Property: r, Filler: cls(a, "E")}
	ont.AddStatement(ontology.SubClassOf{
		LHS: ontology.ClassIntersection{Args: []ontology.ClassExpr{A, complexConjunct}},
		RHS: D,
	})

	out, err := Normalize(ont)
	require.NoError(t, err)
	counts := classify(t, out.Statements)
	assert.Equal(t, 1, counts["NF-C"], "the complex conjunct's own axiom, X ⊑ ∃r.E, is NF-C")
	assert.Equal(t, 1, counts["NF-B"], "the rewritten conjunction A ⊓ X ⊑ D is NF-B")
}

func TestRuleComplexFillerOnLHSExistential(t *testing.T) {
	a, ont := newOnt()
	r := prop(a, "r")
	D := cls(a, "D")
	B, C := cls(a, "B"), cls(a, "C")
	lhs := ontology.SomeValuesFrom{Property: r, Filler: ontology.ClassIntersection{Args: []ontology.ClassExpr{B, C}}}
	ont.AddStatement(ontology.SubClassOf{LHS: lhs, RHS: D})

	out, err := Normalize(ont)
	require.NoError(t, err)
	counts := classify(t, out.Statements)
	assert.Equal(t, 1, counts["NF-B"])
	assert.Equal(t, 1, counts["NF-D"])
}

func TestRuleComplexFillerOnRHSExistential(t *testing.T) {
	a, ont := newOnt()
	r := prop(a, "r")
	A := cls(a, "A")
	B, C := cls(a, "B"), cls(a, "C")
	rhs := ontology.SomeValuesFrom{Property: r, Filler: ontology.ClassIntersection{Args: []ontology.ClassExpr{B, C}}}
	ont.AddStatement(ontology.SubClassOf{LHS: A, RHS: rhs})

	out, err := Normalize(ont)
	require.NoError(t, err)
	counts := classify(t, out.Statements)
	assert.Equal(t, 1, counts["NF-B"], "the filler's own intersection axiom")
	assert.Equal(t, 1, counts["NF-C"], "A ⊑ ∃r.X is now atomic-fillered")
}

func TestRuleComplexClassAssertion(t *testing.T) {
	a, ont := newOnt()
	B, C := cls(a, "B"), cls(a, "C")
	alice := a.InternIndividual("alice")
	ont.AddStatement(ontology.ClassAssertion{
		Class:      ontology.ClassIntersection{Args: []ontology.ClassExpr{B, C}},
		Individual: alice,
	})

	out, err := Normalize(ont)
	require.NoError(t, err)
	counts := classify(t, out.Statements)
	assert.Equal(t, 1, counts["NF-G"])
	// Rule 8 rewrites the assertion into "X ⊑ (B⊓C)" plus "ClassAssertion(X, alice)";
	// rule 3 (conjunction-on-RHS) then splits "X ⊑ (B⊓C)" into "X ⊑ B" and
	// "X ⊑ C", both NF-A, since rule 3 is checked before rule 4/5 regardless
	// of LHS shape.
	assert.Equal(t, 2, counts["NF-A"])
}

func TestRuleEquivalenceSplitClasses(t *testing.T) {
	a, ont := newOnt()
	A, B := cls(a, "A"), cls(a, "B")
	ont.AddStatement(ontology.EquivalentClasses{Args: []ontology.ClassExpr{A, B}})

	out, err := Normalize(ont)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"NF-A": 2}, classify(t, out.Statements))
}

func TestRuleEquivalenceSplitPropertiesNeverEmitsSubClassOf(t *testing.T) {
	a, ont := newOnt()
	r, s := prop(a, "r"), prop(a, "s")
	ont.AddStatement(ontology.EquivalentObjectProperties{Args: []ontology.PropertyID{r, s}})

	out, err := Normalize(ont)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"NF-E": 2}, classify(t, out.Statements))
}

// TestChainNormalizationScenario6 matches spec.md §8 scenario 6: a
// four-role chain axiom must normalize into exactly three length-2 chain
// axioms plus two fresh roles.
func TestChainNormalizationScenario6(t *testing.T) {
	a, ont := newOnt()
	p, q, r, s, t2 := prop(a, "p"), prop(a, "q"), prop(a, "r"), prop(a, "s"), prop(a, "t")
	ont.AddStatement(ontology.SubObjectPropertyOf{
		LHS: ontology.PropertyChain{Args: []ontology.PropertyID{p, q, r, s}},
		RHS: t2,
	})
	propCountBefore := a.PropertyCount()

	out, err := Normalize(ont)
	require.NoError(t, err)

	counts := classify(t, out.Statements)
	assert.Equal(t, 3, counts["NF-F"])
	assert.Equal(t, propCountBefore+2, out.Arena.PropertyCount(), "exactly two fresh roles minted")

	// Every emitted chain axiom must be length-2, per NF-F.
	for _, st := range out.Statements {
		sop := st.(ontology.SubObjectPropertyOf)
		chain := sop.LHS.(ontology.PropertyChain)
		assert.Len(t, chain.Args, 2)
	}
}

func TestNormalizeDoesNotMutateSource(t *testing.T) {
	a, ont := newOnt()
	A, B, C := cls(a, "A"), cls(a, "B"), cls(a, "C")
	ont.AddStatement(ontology.SubClassOf{LHS: A, RHS: ontology.ClassIntersection{Args: []ontology.ClassExpr{B, C}}})

	classCountBefore := a.ClassCount()
	stmtCountBefore := len(ont.Statements)

	_, err := Normalize(ont)
	require.NoError(t, err)

	assert.Equal(t, classCountBefore, a.ClassCount(), "source arena must not gain minted auxiliaries")
	assert.Equal(t, stmtCountBefore, len(ont.Statements), "source statement list must be untouched")
}
