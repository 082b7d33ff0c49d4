// Package subsumption implements class-subsumption completion: a single
// instruction per node per step, drained from a per-node FIFO queue,
// exactly the concept/link worklist this reasoner's saturation pass used,
// restructured into the two named instruction shapes the completion
// rules actually produce and a deterministic FIFO node order (seeded in
// ascending ClassID order) so the result does not depend on Go map
// iteration order.
package subsumption

import "github.com/anusornc/dlreason/ontology"

// Instruction is the sealed sum type processed by the engine: LabelNode
// or LabelEdge.
type Instruction interface {
	isInstruction()
}

// LabelNode says: if every class in Requires is already a subsumer of
// Target, add NewLabel as a subsumer of Target.
type LabelNode struct {
	Target   ontology.ClassID
	NewLabel ontology.ClassID
	Requires []ontology.ClassID
}

// LabelEdge says: ensure the edge (From, To) labeled Label exists.
type LabelEdge struct {
	From, To ontology.ClassID
	Label    ontology.PropertyID
}

func (LabelNode) isInstruction() {}
func (LabelEdge) isInstruction() {}

// queue is a per-node FIFO of pending instructions.
type queue struct {
	items []Instruction
}

func (q *queue) push(i Instruction) { q.items = append(q.items, i) }

func (q *queue) pop() (Instruction, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	it := q.items[0]
	q.items = q.items[1:]
	return it, true
}

func (q *queue) empty() bool { return len(q.items) == 0 }

// nodeQueue is a deduplicating FIFO of node IDs with pending work,
// letting the engine avoid both native recursion and repeated full sweeps
// over every node: a node is enqueued at most once at a time, regardless
// of how many instructions are pushed to it before it is next drained.
type nodeQueue struct {
	items []ontology.ClassID
	inQ   []bool
}

func newNodeQueue(n int) *nodeQueue {
	return &nodeQueue{inQ: make([]bool, n)}
}

func (q *nodeQueue) push(c ontology.ClassID) {
	if q.inQ[c] {
		return
	}
	q.inQ[c] = true
	q.items = append(q.items, c)
}

func (q *nodeQueue) pop() (ontology.ClassID, bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	c := q.items[0]
	q.items = q.items[1:]
	q.inQ[c] = false
	return c, true
}
