// Package reasoner is the public façade: load a normalized, classified,
// saturated view of an Ontology once, then answer is-subclass,
// is-subproperty and conjunctive-query requests against it cheaply.
package reasoner

import (
	"errors"
	"fmt"
	"time"

	"github.com/anusornc/dlreason/abox"
	"github.com/anusornc/dlreason/normalize"
	"github.com/anusornc/dlreason/ontology"
	"github.com/anusornc/dlreason/query"
	"github.com/anusornc/dlreason/rolehierarchy"
	"github.com/anusornc/dlreason/subsumption"
)

// Timings records how long each pipeline stage took during New.
type Timings struct {
	Normalize      time.Duration
	RoleHierarchy  time.Duration
	Subsumption    time.Duration
	ABoxSaturation time.Duration
	Total          time.Duration
}

// Reasoner is a saturated, queryable view of an Ontology. It is read-only
// after construction: every field below is fixed once New returns.
type Reasoner struct {
	original   *ontology.Ontology
	normalized *ontology.Ontology
	hier       *rolehierarchy.Hierarchy
	subsumers  *subsumption.Result
	abox       *abox.SaturatedABox
	timings    Timings
}

var (
	// ErrUnknownClass is returned when an IsSubclass argument is not a
	// class of the original (pre-normalization) ontology.
	ErrUnknownClass = errors.New("reasoner: unknown class")
	// ErrUnknownProperty is returned when an IsSubproperty argument is
	// not an object property of the original ontology.
	ErrUnknownProperty = errors.New("reasoner: unknown object property")
)

// New runs the full pipeline — normalize, build the role hierarchy,
// saturate class subsumption, saturate the ABox — over src and returns a
// Reasoner ready to answer queries. src is never mutated.
func New(src *ontology.Ontology) (*Reasoner, error) {
	start := time.Now()

	t0 := time.Now()
	norm, err := normalize.Normalize(src)
	if err != nil {
		return nil, fmt.Errorf("reasoner: %w", err)
	}
	tNorm := time.Since(t0)

	t0 = time.Now()
	hier := rolehierarchy.Build(norm)
	tHier := time.Since(t0)

	t0 = time.Now()
	subs := subsumption.Build(norm.Arena, hier, norm)
	tSub := time.Since(t0)

	t0 = time.Now()
	saturatedABox := abox.Saturate(norm.Arena, norm, src, hier, subs.SubsumersC)
	tABox := time.Since(t0)

	return &Reasoner{
		original:   src,
		normalized: norm,
		hier:       hier,
		subsumers:  subs,
		abox:       saturatedABox,
		timings: Timings{
			Normalize:      tNorm,
			RoleHierarchy:  tHier,
			Subsumption:    tSub,
			ABoxSaturation: tABox,
			Total:          time.Since(start),
		},
	}, nil
}

// Timings returns the per-phase durations measured during construction.
func (r *Reasoner) Timings() Timings { return r.timings }

// ClassSubsumers returns subsumers_C over the normalized arena's
// ClassIDs, auxiliary classes included. The CLI's classify command reads
// it directly; tests reach it through IsSubclass.
func (r *Reasoner) ClassSubsumers() *ontology.PairStore[ontology.ClassID] {
	return r.subsumers.SubsumersC
}

// ObjectPropertySubsumers returns subsumers_R.
func (r *Reasoner) ObjectPropertySubsumers() *ontology.PairStore[ontology.PropertyID] {
	return r.hier.Subsumers
}

// SaturatedABox returns the saturated ClassAssertion/ObjectPropertyAssertion tables.
func (r *Reasoner) SaturatedABox() *abox.SaturatedABox { return r.abox }

// IsSubclass reports whether a is a subclass of b in the classified
// ontology. Both must name classes present in the original ontology;
// auxiliary classes minted during normalization are never queryable
// through this API.
func (r *Reasoner) IsSubclass(a, b string) (bool, error) {
	aID, ok := r.original.Arena.LookupClass(a)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownClass, a)
	}
	bID, ok := r.original.Arena.LookupClass(b)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownClass, b)
	}
	return r.subsumers.SubsumersC.Contains(aID, bID), nil
}

// IsSubproperty reports whether a is a subproperty of b.
func (r *Reasoner) IsSubproperty(a, b string) (bool, error) {
	aID, ok := r.original.Arena.LookupProperty(a)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownProperty, a)
	}
	bID, ok := r.original.Arena.LookupProperty(b)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownProperty, b)
	}
	return r.hier.Subsumers.Contains(aID, bID), nil
}

// AnswerQuery evaluates q against the saturated ABox.
func (r *Reasoner) AnswerQuery(q *query.Query) ([]query.Row, error) {
	return query.Answer(q, r.abox)
}
