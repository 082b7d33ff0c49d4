package subsumption

import "github.com/anusornc/dlreason/ontology"

// nfBAxiom is a normalized NF-B axiom C1 ⊓ ... ⊓ Cn ⊑ D (n >= 1: NF-A
// axioms A ⊑ B are stored as the degenerate single-conjunct case, which
// unifies CR1 and CR2 into the same seeding function).
type nfBAxiom struct {
	Conjuncts []ontology.ClassID
	Target    ontology.ClassID
}

// otherConjuncts returns every conjunct of ax other than the first
// occurrence of b, used to build a LabelNode's Requires list.
func (ax *nfBAxiom) otherConjuncts(b ontology.ClassID) []ontology.ClassID {
	out := make([]ontology.ClassID, 0, len(ax.Conjuncts))
	skipped := false
	for _, c := range ax.Conjuncts {
		if !skipped && c == b {
			skipped = true
			continue
		}
		out = append(out, c)
	}
	return out
}

type nfCEdge struct {
	Role   ontology.PropertyID
	Target ontology.ClassID
}

// axiomIndex indexes a normalized ontology's NF-A..NF-D statements for the
// lookups the seeding functions need: seed-node-if by conjunct, seed-edge
// by left-hand class, seed-node by (role, filler).
type axiomIndex struct {
	nfBByConjunct map[ontology.ClassID][]*nfBAxiom
	nfCByLHS      map[ontology.ClassID][]nfCEdge
	nfD           map[ontology.PropertyID]map[ontology.ClassID][]ontology.ClassID
}

func buildAxiomIndex(norm *ontology.Ontology) *axiomIndex {
	idx := &axiomIndex{
		nfBByConjunct: make(map[ontology.ClassID][]*nfBAxiom),
		nfCByLHS:      make(map[ontology.ClassID][]nfCEdge),
		nfD:           make(map[ontology.PropertyID]map[ontology.ClassID][]ontology.ClassID),
	}
	for _, st := range norm.Statements {
		sc, ok := st.(ontology.SubClassOf)
		if !ok {
			continue
		}
		switch lhs := sc.LHS.(type) {
		case ontology.AtomicClass:
			switch rhs := sc.RHS.(type) {
			case ontology.AtomicClass:
				// NF-A, degenerate single-conjunct NF-B.
				ax := &nfBAxiom{Conjuncts: []ontology.ClassID{lhs.ID}, Target: rhs.ID}
				idx.nfBByConjunct[lhs.ID] = append(idx.nfBByConjunct[lhs.ID], ax)
			case ontology.SomeValuesFrom:
				filler := rhs.Filler.(ontology.AtomicClass)
				idx.nfCByLHS[lhs.ID] = append(idx.nfCByLHS[lhs.ID], nfCEdge{Role: rhs.Property, Target: filler.ID})
			}
		case ontology.ClassIntersection:
			rhs := sc.RHS.(ontology.AtomicClass)
			conjuncts := make([]ontology.ClassID, len(lhs.Args))
			for i, c := range lhs.Args {
				conjuncts[i] = c.(ontology.AtomicClass).ID
			}
			ax := &nfBAxiom{Conjuncts: conjuncts, Target: rhs.ID}
			for _, cid := range conjuncts {
				idx.nfBByConjunct[cid] = append(idx.nfBByConjunct[cid], ax)
			}
		case ontology.SomeValuesFrom:
			filler := lhs.Filler.(ontology.AtomicClass)
			rhs := sc.RHS.(ontology.AtomicClass)
			if idx.nfD[lhs.Property] == nil {
				idx.nfD[lhs.Property] = make(map[ontology.ClassID][]ontology.ClassID)
			}
			idx.nfD[lhs.Property][filler.ID] = append(idx.nfD[lhs.Property][filler.ID], rhs.ID)
		}
	}
	return idx
}
