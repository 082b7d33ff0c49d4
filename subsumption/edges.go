package subsumption

import "github.com/anusornc/dlreason/ontology"

// edgeRelation is the engine's (A, B, p) edge set, layered as two
// differently-keyed TripletStores over the same triples so both forward
// ("successors of A via p") and reverse ("predecessors of B via p", "all
// edges into B regardless of role") lookups are available without a
// linear scan. It is a concrete specialization of the generic
// ontology.TripletStore, not a replacement for it.
type edgeRelation struct {
	byFromRole *ontology.TripletStore[ontology.ClassID, ontology.PropertyID, ontology.ClassID] // (from, role, to)
	byToRole   *ontology.TripletStore[ontology.ClassID, ontology.PropertyID, ontology.ClassID] // (to, role, from)
}

func newEdgeRelation() *edgeRelation {
	return &edgeRelation{
		byFromRole: ontology.NewTripletStore[ontology.ClassID, ontology.PropertyID, ontology.ClassID](),
		byToRole:   ontology.NewTripletStore[ontology.ClassID, ontology.PropertyID, ontology.ClassID](),
	}
}

// Add inserts (a, b, p), returning true if it was not already present.
func (e *edgeRelation) Add(a, b ontology.ClassID, p ontology.PropertyID) bool {
	added := e.byFromRole.Add(a, p, b)
	e.byToRole.Add(b, p, a)
	return added
}

// Contains reports whether (a, b, p) is in the relation.
func (e *edgeRelation) Contains(a, b ontology.ClassID, p ontology.PropertyID) bool {
	return e.byFromRole.Contains(a, p, b)
}

// SuccessorsVia returns every c such that (a, c, p) is in the relation.
func (e *edgeRelation) SuccessorsVia(a ontology.ClassID, p ontology.PropertyID) []ontology.ClassID {
	return e.byFromRole.WithFirstTwo(a, p)
}

// PredecessorsVia returns every c such that (c, b, p) is in the relation.
func (e *edgeRelation) PredecessorsVia(b ontology.ClassID, p ontology.PropertyID) []ontology.ClassID {
	return e.byToRole.WithFirstTwo(b, p)
}

// AllPredecessors returns every (role, from) pair of an edge (from, b, role).
func (e *edgeRelation) AllPredecessors(b ontology.ClassID) []ontology.Pair2[ontology.PropertyID, ontology.ClassID] {
	return e.byToRole.WithFirst(b)
}
