package subsumption

import (
	"github.com/anusornc/dlreason/ontology"
	"github.com/anusornc/dlreason/rolehierarchy"
)

// Result is the output of a completed subsumption run.
type Result struct {
	SubsumersC *ontology.PairStore[ontology.ClassID]
	edges      *edgeRelation
}

// HasEdge reports whether (a, b, p) survived into the final edge set.
// Exposed chiefly for tests; nothing outside this package consumes edges.
func (r *Result) HasEdge(a, b ontology.ClassID, p ontology.PropertyID) bool {
	return r.edges.Contains(a, b, p)
}

type engine struct {
	hier *rolehierarchy.Hierarchy
	idx  *axiomIndex

	subsumersC *ontology.PairStore[ontology.ClassID]
	edges      *edgeRelation

	queues []queue
	active *nodeQueue
}

// Build runs class-subsumption completion over a normalized ontology and
// returns the saturated subsumers_C relation.
func Build(arena *ontology.Arena, hier *rolehierarchy.Hierarchy, norm *ontology.Ontology) *Result {
	n := arena.ClassCount()
	e := &engine{
		hier:       hier,
		idx:        buildAxiomIndex(norm),
		subsumersC: ontology.NewPairStore[ontology.ClassID](),
		edges:      newEdgeRelation(),
		queues:     make([]queue, n),
		active:     newNodeQueue(n),
	}
	e.run()
	return &Result{SubsumersC: e.subsumersC, edges: e.edges}
}

func (e *engine) enqueue(target ontology.ClassID, instr Instruction) {
	e.queues[target].push(instr)
	e.active.push(target)
}

// seedNodeIf generalizes CR1 (B atomic, single-conjunct NF-B axiom) and
// CR2 (B a true conjunct of a multi-conjunct NF-B axiom): whenever B is
// newly added as a subsumer of A, every NF-B axiom mentioning B as a
// conjunct may now fire for A.
func (e *engine) seedNodeIf(b, a ontology.ClassID) {
	for _, ax := range e.idx.nfBByConjunct[b] {
		e.enqueue(a, LabelNode{Target: a, NewLabel: ax.Target, Requires: ax.otherConjuncts(b)})
	}
}

// seedNode generalizes CR4: whenever B becomes a subsumer reachable via
// role q at A, every NF-D axiom ∃q.B ⊑ D fires for A.
func (e *engine) seedNode(q ontology.PropertyID, b, a ontology.ClassID) {
	for _, d := range e.idx.nfD[q][b] {
		e.enqueue(a, LabelNode{Target: a, NewLabel: d})
	}
}

// seedEdge generalizes CR3: whenever B is newly added as a subsumer of A,
// every NF-C axiom B ⊑ ∃p.C produces an edge instruction for A.
func (e *engine) seedEdge(b, a ontology.ClassID) {
	for _, ec := range e.idx.nfCByLHS[b] {
		e.enqueue(a, LabelEdge{From: a, To: ec.Target, Label: ec.Role})
	}
}

func (e *engine) init() {
	n := len(e.queues)
	thing := ontology.ThingID
	for i := 0; i < n; i++ {
		c := ontology.ClassID(i)
		e.subsumersC.Add(c, c)
		e.seedNodeIf(c, c)
		e.seedEdge(c, c)
		if c != thing {
			e.subsumersC.Add(c, thing)
			e.seedNodeIf(thing, c)
			e.seedEdge(thing, c)
		}
	}
}

// run drains instructions in deterministic order: nodes are visited in
// FIFO order of becoming active (initialization activates them in
// ascending ClassID order), one instruction per visit, with a node that
// still has work going to the back of the line; within a node,
// instructions are applied in the order they were enqueued.
func (e *engine) run() {
	e.init()
	for c := 0; c < len(e.queues); c++ {
		if !e.queues[c].empty() {
			e.active.push(ontology.ClassID(c))
		}
	}
	for {
		c, ok := e.active.pop()
		if !ok {
			break
		}
		instr, ok := e.queues[c].pop()
		if !ok {
			continue
		}
		e.apply(instr)
		if !e.queues[c].empty() {
			e.active.push(c)
		}
	}
}

func (e *engine) apply(instr Instruction) {
	switch in := instr.(type) {
	case LabelNode:
		e.applyLabelNode(in)
	case LabelEdge:
		e.applyLabelEdge(in)
	}
}

func (e *engine) applyLabelNode(in LabelNode) {
	a, b := in.Target, in.NewLabel
	if e.subsumersC.Contains(a, b) {
		return
	}
	if !e.subsumersC.ContainsAll(a, in.Requires) {
		return
	}
	e.subsumersC.Add(a, b)
	e.seedNodeIf(b, a)
	e.seedEdge(b, a)
	for _, pred := range e.edges.AllPredecessors(a) {
		e.seedNode(pred.First, b, pred.Second)
	}
}

// applyLabelEdge processes one LabelEdge instruction to fixpoint using an
// explicit work stack rather than recursion: the chain-interaction steps
// of completion can cascade arbitrarily deep, and this reasoner avoids
// unbounded native call-stack growth by keeping that cascade as data.
func (e *engine) applyLabelEdge(seed LabelEdge) {
	stack := []LabelEdge{seed}
	for len(stack) > 0 {
		in := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		a, b, p := in.From, in.To, in.Label
		if e.edges.Contains(a, b, p) {
			continue
		}
		for _, q := range e.hier.Subsumers.PairsWithFirst(p) {
			if !e.edges.Add(a, b, q) {
				continue
			}
			for _, c := range e.subsumersC.PairsWithFirst(b) {
				e.seedNode(q, c, a)
			}
			// Right-chain interaction: r ∘ q ⊑ s, predecessor of A via r.
			for _, rs := range e.hier.R.WithFirst(q) {
				r, s := rs.First, rs.Second
				for _, c := range e.edges.PredecessorsVia(a, r) {
					if !e.edges.Contains(c, b, s) {
						stack = append(stack, LabelEdge{From: c, To: b, Label: s})
					}
				}
			}
			// Left-chain interaction: q ∘ r ⊑ s, successor of B via r.
			for _, rs := range e.hier.L.WithFirst(q) {
				r, s := rs.First, rs.Second
				for _, c := range e.edges.SuccessorsVia(b, r) {
					if !e.edges.Contains(a, c, s) {
						stack = append(stack, LabelEdge{From: a, To: c, Label: s})
					}
				}
			}
		}
	}
}
