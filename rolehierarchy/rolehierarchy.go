// Package rolehierarchy builds the reflexive-transitive role subsumption
// closure (subsumers_R) and the two role-chain indexes (L and R) that the
// class-subsumption engine consults when propagating across an edge.
package rolehierarchy

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/anusornc/dlreason/ontology"
)

// Hierarchy holds the RBox closure computed from a normalized ontology.
type Hierarchy struct {
	// Subsumers is subsumers_R: (r, s) is present when r ⊑ s, including
	// the reflexive (r, r) pair for every role seen.
	Subsumers *ontology.PairStore[ontology.PropertyID]

	// L indexes role-chain axioms r1 ∘ r2 ⊑ q by left partner: L.WithFirst(r1)
	// yields (r2, q) pairs.
	L *ontology.TripletStore[ontology.PropertyID, ontology.PropertyID, ontology.PropertyID]

	// R indexes the same axioms by right partner: R.WithFirst(r2) yields
	// (r1, q) pairs.
	R *ontology.TripletStore[ontology.PropertyID, ontology.PropertyID, ontology.PropertyID]
}

// roleNode adapts a PropertyID to gonum's graph.Node interface.
type roleNode int64

func (n roleNode) ID() int64 { return int64(n) }

// Build closes the role hierarchy of a normalized ontology (one already
// rewritten to NF-E/NF-F by the normalizer) and indexes its chain axioms.
// Every property known to norm.Arena gets at least the reflexive (p, p)
// pair in Subsumers, not only those mentioned by a SubObjectPropertyOf
// axiom: a property asserted only in the ABox, with no RBox axiom of its
// own, must still subsume itself for edge propagation in subsumption to
// see it at all.
func Build(norm *ontology.Ontology) *Hierarchy {
	h := &Hierarchy{
		Subsumers: ontology.NewPairStore[ontology.PropertyID](),
		L:         ontology.NewTripletStore[ontology.PropertyID, ontology.PropertyID, ontology.PropertyID](),
		R:         ontology.NewTripletStore[ontology.PropertyID, ontology.PropertyID, ontology.PropertyID](),
	}

	g := simple.NewDirectedGraph()
	seen := make(map[ontology.PropertyID]bool)
	ensureNode := func(p ontology.PropertyID) {
		if seen[p] {
			return
		}
		seen[p] = true
		g.AddNode(roleNode(p))
	}

	for _, st := range norm.Statements {
		sop, ok := st.(ontology.SubObjectPropertyOf)
		if !ok {
			continue
		}
		switch lhs := sop.LHS.(type) {
		case ontology.AtomicProperty:
			ensureNode(lhs.ID)
			ensureNode(sop.RHS)
			if lhs.ID != sop.RHS {
				g.SetEdge(simple.Edge{F: roleNode(lhs.ID), T: roleNode(sop.RHS)})
			}
		case ontology.PropertyChain:
			if len(lhs.Args) != 2 {
				continue
			}
			r1, r2 := lhs.Args[0], lhs.Args[1]
			ensureNode(r1)
			ensureNode(r2)
			ensureNode(sop.RHS)
			h.L.Add(r1, r2, sop.RHS)
			h.R.Add(r2, r1, sop.RHS)
		}
	}

	for p := range seen {
		h.Subsumers.Add(p, p)
		for _, reached := range closure(g, int64(p)) {
			h.Subsumers.Add(p, ontology.PropertyID(reached))
		}
	}
	for i := 0; i < norm.Arena.PropertyCount(); i++ {
		h.Subsumers.Add(ontology.PropertyID(i), ontology.PropertyID(i))
	}
	return h
}

// closure runs a breadth-first traversal of g from start and returns every
// node reachable from it (not including start itself), giving the
// transitive closure of the direct role-inclusion edges.
func closure(g graph.Directed, start int64) []int64 {
	visited := map[int64]bool{start: true}
	queue := []int64{start}
	var out []int64
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		it := g.From(id)
		for it.Next() {
			n := it.Node().ID()
			if !visited[n] {
				visited[n] = true
				out = append(out, n)
				queue = append(queue, n)
			}
		}
	}
	return out
}
