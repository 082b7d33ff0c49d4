// Package ontology holds the entity arena, the class/property expression
// and statement sum types, and the tuple-store containers shared by the
// rest of the reasoner.
package ontology

import "fmt"

// ClassID, PropertyID and IndividualID are opaque handles into an Arena.
// Each is a dense index into its own kind's name table, minted either by
// interning an IRI seen in a parsed ontology or by Arena.MintClass and
// friends during normalization.
type ClassID uint32
type PropertyID uint32
type IndividualID uint32

// ThingID is owl:Thing, always entity 0 of kind Class in every Arena.
const ThingID ClassID = 0

const thingIRI = "http://www.w3.org/2002/07/owl#Thing"

// table interns names for a single entity kind and mints fresh auxiliary
// names on demand, following the arena pattern of the symbol table this
// reasoner grew out of: dense integer IDs backed by a name slice plus a
// reverse lookup map.
type table struct {
	toID   map[string]uint32
	names  []string
	prefix string
	nextAux int
}

func newTable(prefix string) *table {
	return &table{toID: make(map[string]uint32), prefix: prefix, nextAux: 1}
}

func (t *table) intern(name string) uint32 {
	if id, ok := t.toID[name]; ok {
		return id
	}
	id := uint32(len(t.names))
	t.names = append(t.names, name)
	t.toID[name] = id
	return id
}

func (t *table) lookup(name string) (uint32, bool) {
	id, ok := t.toID[name]
	return id, ok
}

// mint creates a fresh auxiliary name using the smallest suffix not yet
// taken by any entity of this kind, named kind-prefix plus an integer
// (e.g. "C_7"), per the auxiliary-entity naming convention.
func (t *table) mint() uint32 {
	for {
		name := fmt.Sprintf("%s%d", t.prefix, t.nextAux)
		t.nextAux++
		if _, exists := t.toID[name]; !exists {
			return t.intern(name)
		}
	}
}

func (t *table) clone() *table {
	c := &table{
		toID:    make(map[string]uint32, len(t.toID)),
		names:   append([]string(nil), t.names...),
		prefix:  t.prefix,
		nextAux: t.nextAux,
	}
	for k, v := range t.toID {
		c.toID[k] = v
	}
	return c
}

// Arena interns and mints Class, ObjectProperty and Individual entities.
// owl:Thing is always entity 0 of kind Class.
type Arena struct {
	classes     *table
	properties  *table
	individuals *table
}

// NewArena returns an Arena with owl:Thing already interned as ClassID 0.
func NewArena() *Arena {
	a := &Arena{
		classes:     newTable("C_"),
		properties:  newTable("OP_"),
		individuals: newTable("I_"),
	}
	a.classes.intern(thingIRI)
	return a
}

// Clone returns a deep copy of the arena. Used by the normalizer to mint
// auxiliary entities without mutating the ontology it was built from: IDs
// of entities already present keep their numeric position, so ClassIDs,
// PropertyIDs and IndividualIDs obtained against the original arena stay
// valid against the clone.
func (a *Arena) Clone() *Arena {
	return &Arena{
		classes:     a.classes.clone(),
		properties:  a.properties.clone(),
		individuals: a.individuals.clone(),
	}
}

func (a *Arena) InternClass(iri string) ClassID       { return ClassID(a.classes.intern(iri)) }
func (a *Arena) InternProperty(iri string) PropertyID { return PropertyID(a.properties.intern(iri)) }
func (a *Arena) InternIndividual(iri string) IndividualID {
	return IndividualID(a.individuals.intern(iri))
}

func (a *Arena) LookupClass(iri string) (ClassID, bool) {
	id, ok := a.classes.lookup(iri)
	return ClassID(id), ok
}

func (a *Arena) LookupProperty(iri string) (PropertyID, bool) {
	id, ok := a.properties.lookup(iri)
	return PropertyID(id), ok
}

func (a *Arena) LookupIndividual(iri string) (IndividualID, bool) {
	id, ok := a.individuals.lookup(iri)
	return IndividualID(id), ok
}

func (a *Arena) MintClass() ClassID             { return ClassID(a.classes.mint()) }
func (a *Arena) MintProperty() PropertyID       { return PropertyID(a.properties.mint()) }
func (a *Arena) MintIndividual() IndividualID   { return IndividualID(a.individuals.mint()) }

func (a *Arena) ClassIRI(id ClassID) string           { return a.classes.names[id] }
func (a *Arena) PropertyIRI(id PropertyID) string     { return a.properties.names[id] }
func (a *Arena) IndividualIRI(id IndividualID) string { return a.individuals.names[id] }

func (a *Arena) ClassCount() int      { return len(a.classes.names) }
func (a *Arena) PropertyCount() int   { return len(a.properties.names) }
func (a *Arena) IndividualCount() int { return len(a.individuals.names) }

// ClassNames returns the set of class IRIs known to this arena, keyed by
// IRI, used by ABox saturation to filter minted auxiliaries out of the
// emitted class-assertion table.
func (a *Arena) ClassNames() map[string]bool {
	out := make(map[string]bool, len(a.classes.names))
	for _, n := range a.classes.names {
		out[n] = true
	}
	return out
}

// PropertyNames returns the set of object-property IRIs known to this
// arena, mirroring ClassNames.
func (a *Arena) PropertyNames() map[string]bool {
	out := make(map[string]bool, len(a.properties.names))
	for _, n := range a.properties.names {
		out[n] = true
	}
	return out
}
