// Package normalize rewrites an Ontology's statements to the eight normal
// forms (NF-A..NF-H) the rest of the reasoner consumes, by draining a
// work queue of statements through a fixed rule order until nothing
// further fires. It generalizes the two-pass register-then-normalize
// shape this reasoner's OBO intersection handling used, from "walk a
// fixed set of OBO term fields once" to "drain a queue of arbitrary
// statements to a rule fixpoint".
package normalize

import (
	"errors"
	"fmt"

	"github.com/anusornc/dlreason/ontology"
)

// ErrNormalizationInvariant reports a statement that, after the rule
// fixpoint, does not match any of the eight normal forms. It should never
// be observed in practice: the rule set is exhaustive over every
// statement shape the ontology model can produce.
var ErrNormalizationInvariant = errors.New("normalization invariant violation")

// Normalize rewrites src's statements to normal form, returning a new
// Ontology that shares src's entities (via a cloned Arena, so minted
// auxiliaries never become visible in src) plus any freshly minted
// auxiliary entities. src is never mutated.
func Normalize(src *ontology.Ontology) (*ontology.Ontology, error) {
	arena := src.Arena.Clone()
	out := ontology.New(arena)
	for name, base := range src.Prefixes {
		out.Prefixes[name] = base
	}

	queue := append([]ontology.Statement(nil), src.Statements...)
	for len(queue) > 0 {
		stmt := queue[0]
		queue = queue[1:]

		rewritten, matched, err := applyRules(arena, stmt)
		if err != nil {
			return nil, err
		}
		if matched {
			queue = append(queue, rewritten...)
			continue
		}
		if err := checkNormalForm(stmt); err != nil {
			return nil, fmt.Errorf("normalize: %w: %v", ErrNormalizationInvariant, err)
		}
		out.AddStatement(stmt)
	}
	return out, nil
}

// applyRules tries each of the eight rules in spec order against stmt and
// returns the first one that fires. matched is false when stmt is already
// in normal form.
func applyRules(arena *ontology.Arena, stmt ontology.Statement) (rewritten []ontology.Statement, matched bool, err error) {
	switch s := stmt.(type) {
	case ontology.SubObjectPropertyOf:
		return ruleChainSplit(arena, s)
	case ontology.EquivalentClasses:
		return ruleEquivalenceSplitClasses(s), true, nil
	case ontology.EquivalentObjectProperties:
		return ruleEquivalenceSplitProperties(s), true, nil
	case ontology.SubClassOf:
		return applySubClassOfRules(arena, s)
	case ontology.ClassAssertion:
		return ruleComplexClassAssertion(arena, s)
	default:
		return nil, false, nil
	}
}

func isAtomic(e ontology.ClassExpr) bool {
	_, ok := e.(ontology.AtomicClass)
	return ok
}

// applySubClassOfRules implements rules 3-7, tried in that order, against
// a single SubClassOf statement.
func applySubClassOfRules(arena *ontology.Arena, s ontology.SubClassOf) ([]ontology.Statement, bool, error) {
	// Rule 3: conjunction-on-RHS.
	if inter, ok := s.RHS.(ontology.ClassIntersection); ok {
		out := make([]ontology.Statement, 0, len(inter.Args))
		for _, b := range inter.Args {
			out = append(out, ontology.SubClassOf{LHS: s.LHS, RHS: b})
		}
		return out, true, nil
	}

	lhsComplex := !isAtomic(s.LHS)
	rhsComplex := !isAtomic(s.RHS)

	// Rule 4: complex-to-complex. By this point RHS can only be atomic or
	// SomeValuesFrom (rule 3 already stripped any ClassIntersection RHS).
	if lhsComplex && rhsComplex {
		x := ontology.AtomicClass{ID: arena.MintClass()}
		return []ontology.Statement{
			ontology.SubClassOf{LHS: s.LHS, RHS: x},
			ontology.SubClassOf{LHS: x, RHS: s.RHS},
		}, true, nil
	}

	// Rule 5: conjunction-on-LHS with complex conjuncts.
	if inter, ok := s.LHS.(ontology.ClassIntersection); ok {
		anyComplex := false
		for _, c := range inter.Args {
			if !isAtomic(c) {
				anyComplex = true
				break
			}
		}
		if anyComplex {
			var out []ontology.Statement
			newArgs := make([]ontology.ClassExpr, len(inter.Args))
			for i, c := range inter.Args {
				if isAtomic(c) {
					newArgs[i] = c
					continue
				}
				x := ontology.AtomicClass{ID: arena.MintClass()}
				out = append(out, ontology.SubClassOf{LHS: x, RHS: c})
				newArgs[i] = x
			}
			out = append(out, ontology.SubClassOf{LHS: ontology.ClassIntersection{Args: newArgs}, RHS: s.RHS})
			return out, true, nil
		}
	}

	// Rule 6: complex filler on LHS existential.
	if some, ok := s.LHS.(ontology.SomeValuesFrom); ok && !isAtomic(some.Filler) {
		x := ontology.AtomicClass{ID: arena.MintClass()}
		return []ontology.Statement{
			ontology.SubClassOf{LHS: some.Filler, RHS: x},
			ontology.SubClassOf{LHS: ontology.SomeValuesFrom{Property: some.Property, Filler: x}, RHS: s.RHS},
		}, true, nil
	}

	// Rule 7: complex filler on RHS existential.
	if some, ok := s.RHS.(ontology.SomeValuesFrom); ok && !isAtomic(some.Filler) {
		x := ontology.AtomicClass{ID: arena.MintClass()}
		return []ontology.Statement{
			ontology.SubClassOf{LHS: some.Filler, RHS: x},
			ontology.SubClassOf{LHS: s.LHS, RHS: ontology.SomeValuesFrom{Property: some.Property, Filler: x}},
		}, true, nil
	}

	return nil, false, nil
}

// ruleChainSplit implements rule 1: a role-chain axiom with more than two
// roles on the left is rewritten into a cascade of binary chain axioms
// through freshly minted intermediate roles.
func ruleChainSplit(arena *ontology.Arena, s ontology.SubObjectPropertyOf) ([]ontology.Statement, bool, error) {
	chain, ok := s.LHS.(ontology.PropertyChain)
	if !ok || len(chain.Args) <= 2 {
		return nil, false, nil
	}
	n := len(chain.Args)
	us := make([]ontology.PropertyID, n-2)
	for i := range us {
		us[i] = arena.MintProperty()
	}
	out := make([]ontology.Statement, 0, n-1)
	out = append(out, ontology.SubObjectPropertyOf{
		LHS: ontology.PropertyChain{Args: []ontology.PropertyID{chain.Args[0], chain.Args[1]}},
		RHS: us[0],
	})
	for i := 0; i < n-3; i++ {
		out = append(out, ontology.SubObjectPropertyOf{
			LHS: ontology.PropertyChain{Args: []ontology.PropertyID{us[i], chain.Args[i+2]}},
			RHS: us[i+1],
		})
	}
	out = append(out, ontology.SubObjectPropertyOf{
		LHS: ontology.PropertyChain{Args: []ontology.PropertyID{us[n-3], chain.Args[n-1]}},
		RHS: s.RHS,
	})
	return out, true, nil
}

// ruleEquivalenceSplitClasses implements rule 2 for class equivalence: a
// full cross product of SubClassOf axioms, never anything else.
func ruleEquivalenceSplitClasses(s ontology.EquivalentClasses) []ontology.Statement {
	var out []ontology.Statement
	for i, a := range s.Args {
		for j, b := range s.Args {
			if i == j {
				continue
			}
			out = append(out, ontology.SubClassOf{LHS: a, RHS: b})
		}
	}
	return out
}

// ruleEquivalenceSplitProperties implements rule 2 for role equivalence.
// It emits only SubObjectPropertyOf axioms, never SubClassOf: conflating
// role and class equivalence splitting is a documented source of
// confusion this implementation avoids by keeping the two as separate
// functions operating on separate statement types.
func ruleEquivalenceSplitProperties(s ontology.EquivalentObjectProperties) []ontology.Statement {
	var out []ontology.Statement
	for i, a := range s.Args {
		for j, b := range s.Args {
			if i == j {
				continue
			}
			out = append(out, ontology.SubObjectPropertyOf{LHS: ontology.AtomicProperty{ID: a}, RHS: b})
		}
	}
	return out
}

// ruleComplexClassAssertion implements rule 8.
func ruleComplexClassAssertion(arena *ontology.Arena, s ontology.ClassAssertion) ([]ontology.Statement, bool, error) {
	if isAtomic(s.Class) {
		return nil, false, nil
	}
	x := ontology.AtomicClass{ID: arena.MintClass()}
	return []ontology.Statement{
		ontology.SubClassOf{LHS: x, RHS: s.Class},
		ontology.ClassAssertion{Class: x, Individual: s.Individual},
	}, true, nil
}

// checkNormalForm is the defensive check run on every statement the rule
// fixpoint declares final, guarding the invariant that every emitted
// statement matches one of NF-A..NF-H.
func checkNormalForm(stmt ontology.Statement) error {
	switch s := stmt.(type) {
	case ontology.SubClassOf:
		switch lhs := s.LHS.(type) {
		case ontology.AtomicClass:
			switch rhs := s.RHS.(type) {
			case ontology.AtomicClass:
				return nil // NF-A
			case ontology.SomeValuesFrom:
				if isAtomic(rhs.Filler) {
					return nil // NF-C
				}
			}
		case ontology.ClassIntersection:
			if isAtomic(s.RHS) {
				for _, c := range lhs.Args {
					if !isAtomic(c) {
						return fmt.Errorf("non-atomic conjunct in %#v", s)
					}
				}
				return nil // NF-B
			}
		case ontology.SomeValuesFrom:
			if isAtomic(lhs.Filler) && isAtomic(s.RHS) {
				return nil // NF-D
			}
		}
		return fmt.Errorf("unrecognized SubClassOf shape %#v", s)
	case ontology.SubObjectPropertyOf:
		switch lhs := s.LHS.(type) {
		case ontology.AtomicProperty:
			return nil // NF-E
		case ontology.PropertyChain:
			if len(lhs.Args) == 2 {
				return nil // NF-F
			}
		}
		return fmt.Errorf("unrecognized SubObjectPropertyOf shape %#v", s)
	case ontology.ClassAssertion:
		if isAtomic(s.Class) {
			return nil // NF-G
		}
		return fmt.Errorf("unrecognized ClassAssertion shape %#v", s)
	case ontology.ObjectPropertyAssertion:
		return nil // NF-H
	default:
		return fmt.Errorf("unexpected statement type %T", stmt)
	}
}
