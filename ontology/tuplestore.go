package ontology

import (
	"cmp"
	"slices"
)

// PairStore is a set of ordered pairs (a, b) over a single ordered domain,
// the generic container behind subsumers_C and subsumers_R. It generalizes
// the map-of-sets pattern this reasoner used for its per-concept superclass
// sets, parameterized with Go generics so the same container serves every
// kind of entity ID.
type PairStore[T cmp.Ordered] struct {
	byFirst map[T]map[T]struct{}
}

// NewPairStore returns an empty PairStore.
func NewPairStore[T cmp.Ordered]() *PairStore[T] {
	return &PairStore[T]{byFirst: make(map[T]map[T]struct{})}
}

// Add inserts (a, b), returning true if it was not already present.
func (s *PairStore[T]) Add(a, b T) bool {
	m := s.byFirst[a]
	if m == nil {
		m = make(map[T]struct{})
		s.byFirst[a] = m
	}
	if _, ok := m[b]; ok {
		return false
	}
	m[b] = struct{}{}
	return true
}

// Contains reports whether (a, b) is in the store.
func (s *PairStore[T]) Contains(a, b T) bool {
	m, ok := s.byFirst[a]
	if !ok {
		return false
	}
	_, ok = m[b]
	return ok
}

// ContainsAll reports whether (a, b) holds for every b in bs.
func (s *PairStore[T]) ContainsAll(a T, bs []T) bool {
	for _, b := range bs {
		if !s.Contains(a, b) {
			return false
		}
	}
	return true
}

// PairsWithFirst returns every b such that (a, b) is in the store, sorted
// for deterministic iteration.
func (s *PairStore[T]) PairsWithFirst(a T) []T {
	m := s.byFirst[a]
	out := make([]T, 0, len(m))
	for b := range m {
		out = append(out, b)
	}
	slices.Sort(out)
	return out
}

// Pair2 is an ordered pair of possibly differing types, returned by
// TripletStore's lookup methods.
type Pair2[A, B any] struct {
	First  A
	Second B
}

// Triple is a single (a, b, c) tuple, returned by TripletStore.All.
type Triple[A, B, C any] struct {
	A A
	B B
	C C
}

// TripletStore is a set of ordered triples (a, b, c), the generic container
// behind role-chain indexes, class-subsumption edges and ABox property
// assertions. Unlike PairStore, its three positions may be distinct
// ordered types.
type TripletStore[A, B, C cmp.Ordered] struct {
	idx    map[A]map[B]map[C]struct{}
	idxTwo map[twoKey[A, B]]map[C]struct{}
}

type twoKey[A, B comparable] struct {
	a A
	b B
}

// NewTripletStore returns an empty TripletStore.
func NewTripletStore[A, B, C cmp.Ordered]() *TripletStore[A, B, C] {
	return &TripletStore[A, B, C]{
		idx:    make(map[A]map[B]map[C]struct{}),
		idxTwo: make(map[twoKey[A, B]]map[C]struct{}),
	}
}

// Add inserts (a, b, c), returning true if it was not already present.
func (s *TripletStore[A, B, C]) Add(a A, b B, c C) bool {
	mb := s.idx[a]
	if mb == nil {
		mb = make(map[B]map[C]struct{})
		s.idx[a] = mb
	}
	mc := mb[b]
	if mc == nil {
		mc = make(map[C]struct{})
		mb[b] = mc
	}
	if _, ok := mc[c]; ok {
		return false
	}
	mc[c] = struct{}{}

	k := twoKey[A, B]{a, b}
	mc2 := s.idxTwo[k]
	if mc2 == nil {
		mc2 = make(map[C]struct{})
		s.idxTwo[k] = mc2
	}
	mc2[c] = struct{}{}
	return true
}

// Contains reports whether (a, b, c) is in the store.
func (s *TripletStore[A, B, C]) Contains(a A, b B, c C) bool {
	mc, ok := s.idxTwo[twoKey[A, B]{a, b}]
	if !ok {
		return false
	}
	_, ok = mc[c]
	return ok
}

// WithFirst returns every (b, c) pair such that (a, b, c) is in the store,
// sorted by (b, c) for deterministic iteration.
func (s *TripletStore[A, B, C]) WithFirst(a A) []Pair2[B, C] {
	mb := s.idx[a]
	out := make([]Pair2[B, C], 0, len(mb))
	for b, mc := range mb {
		for c := range mc {
			out = append(out, Pair2[B, C]{b, c})
		}
	}
	slices.SortFunc(out, func(x, y Pair2[B, C]) int {
		if n := cmp.Compare(x.First, y.First); n != 0 {
			return n
		}
		return cmp.Compare(x.Second, y.Second)
	})
	return out
}

// WithFirstTwo returns every c such that (a, b, c) is in the store, sorted
// for deterministic iteration.
func (s *TripletStore[A, B, C]) WithFirstTwo(a A, b B) []C {
	mc := s.idxTwo[twoKey[A, B]{a, b}]
	out := make([]C, 0, len(mc))
	for c := range mc {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// All returns every triple in the store, sorted by (a, b, c).
func (s *TripletStore[A, B, C]) All() []Triple[A, B, C] {
	var out []Triple[A, B, C]
	for a, mb := range s.idx {
		for b, mc := range mb {
			for c := range mc {
				out = append(out, Triple[A, B, C]{a, b, c})
			}
		}
	}
	slices.SortFunc(out, func(x, y Triple[A, B, C]) int {
		if n := cmp.Compare(x.A, y.A); n != 0 {
			return n
		}
		if n := cmp.Compare(x.B, y.B); n != 0 {
			return n
		}
		return cmp.Compare(x.C, y.C)
	})
	return out
}
