// Package enumerate implements the coupled multi-DAWG backtracking
// search (spec §4.6) and the parallel driver that partitions it by
// first letter (spec §4.7).
package enumerate

import (
	"github.com/boblucas/wordsquares/dawg"
	"github.com/boblucas/wordsquares/letterset"
	"github.com/boblucas/wordsquares/topology"
)

// Enumerator is a single-threaded, resumable depth-first search over
// one coupled set of per-slot DAWG cursors. Call Reset once, then
// Next repeatedly; each true return means Assignment() holds a fresh
// full label assignment.
//
// Grounded directly on the original exhaustiveIterative: an explicit
// iterative stack, the same count-trailing-zeros letter advance, and
// the same parent-snapshot backtrack. Exposed here as a pull iterator
// per spec §9's "coroutine-style enumeration" note, rather than the
// original's single recursive-looking while loop with an inline print
// call, so the parallel driver (driver.go) can interleave the dup-word
// check and the mutex-guarded emit between Next calls.
type Enumerator struct {
	arena    *dawg.Arena
	touching [][]int // per label, slot indices (constraints.Table.TouchingSlots)

	labelCount int
	slotCount  int
	last       int // labelCount - 1

	roots  []dawg.Handle // shared, read-only: each slot's post-minimization root
	cursor []dawg.Handle // this worker's private cursor per slot

	stack     []int            // tentative letter (0..25) per label
	maskStack []letterset.Mask // remaining legal mask per label
	parents   [][]dawg.Handle  // dense L x S plane: parents[label][slot]

	result []int // snapshot of stack at the moment a solution is found

	depth     int
	exhausted bool
}

// New builds an Enumerator over a shared, already-minimized arena.
// touching is the label -> slot-index table from constraints.Invert;
// roots is the post-minimization root handle of each slot, in slot
// index order. The returned Enumerator owns no state from roots
// beyond copying it on each Reset, so one roots/arena pair may back
// any number of Enumerators running concurrently.
func New(arena *dawg.Arena, labelCount, slotCount int, touching [][]int, roots []dawg.Handle) *Enumerator {
	e := &Enumerator{
		arena:      arena,
		touching:   touching,
		labelCount: labelCount,
		slotCount:  slotCount,
		last:       labelCount - 1,
		roots:      roots,
		cursor:     make([]dawg.Handle, slotCount),
		stack:      make([]int, labelCount),
		maskStack:  make([]letterset.Mask, labelCount),
		result:     make([]int, labelCount),
	}
	e.parents = make([][]dawg.Handle, labelCount)
	for i := range e.parents {
		e.parents[i] = make([]dawg.Handle, slotCount)
	}
	return e
}

// Reset rewinds the Enumerator to depth 0 against a fresh copy of
// roots. If seed is non-nil, the search explores only that one letter
// for label 0 — the seed entry point spec §4.6 describes for the
// parallel driver. If seed is nil, label 0's full legal mask is
// explored, as the unseeded entry point.
func (e *Enumerator) Reset(seed *letterset.Letter) {
	copy(e.cursor, e.roots)
	e.depth = 0
	e.exhausted = e.labelCount == 0
	if e.exhausted {
		return
	}

	e.stack[0] = 0
	e.maskStack[0] = e.maskAt(0)
	if seed != nil {
		if !e.maskStack[0].Set(*seed) {
			// "abort immediately if bit c is clear in mask_stack[0]"
			e.exhausted = true
			return
		}
		e.maskStack[0] = seed.Bit()
	}
	if e.maskStack[0].Empty() {
		// "If the initial root-mask intersection is empty, terminate
		// immediately with no results."
		e.exhausted = true
	}
}

// Assignment returns the letter chosen for each label in the most
// recently found solution (valid only after Next returns true).
func (e *Enumerator) Assignment() []int {
	return e.result
}

// Next advances the search to the next full label assignment. It
// returns false once every branch has been explored; subsequent calls
// keep returning false.
//
// This is exactly the original's single `while(i)` loop body,
// generalized so the top-level termination test is "depth 0 and its
// mask exhausted" (spec §4.6 point 5) rather than "depth 0", which is
// what lets the unseeded entry point explore every letter at label 0
// instead of just the first one it tries — see DESIGN.md.
func (e *Enumerator) Next() bool {
	if e.exhausted {
		return false
	}
	for e.alive() {
		shifted := e.maskStack[e.depth] >> uint(e.stack[e.depth])
		e.stack[e.depth] += shifted.TrailingZeros()

		if e.depth != e.last {
			e.descend()
			e.depth++
			e.stack[e.depth] = 0
			e.maskStack[e.depth] = e.maskAt(e.depth)
			e.backtrackIfDead()
			continue
		}

		copy(e.result, e.stack)
		e.stack[e.depth]++
		e.backtrackIfDead()
		return true
	}
	e.exhausted = true
	return false
}

// alive reports whether there is still a branch to explore: either
// we're below the root, or the root's own mask still has a candidate
// at or after the current stack value.
func (e *Enumerator) alive() bool {
	if e.depth > 0 {
		return true
	}
	return !(e.maskStack[0] >> uint(e.stack[0])).Empty()
}

// backtrackIfDead pops depths whose mask is exhausted at the current
// stack value, restoring each popped slot's cursor and advancing the
// parent depth's stack value by one, per spec §4.6 step 4.
func (e *Enumerator) backtrackIfDead() {
	for (e.maskStack[e.depth]>>uint(e.stack[e.depth])).Empty() && e.depth > 0 {
		e.depth--
		e.restore(e.depth)
		e.stack[e.depth]++
	}
}

// descend saves, then advances, the cursor of every slot touching the
// current depth's label, per spec §4.6 step 2.
//
// A slot for which this depth's label is its last (highest) label has
// already reached its terminal DAWG node by the time we get here: its cursor
// still carries the final letter's mask, but ChildrenOffset is 0 (the
// builder allocates no children past the last letter of a word). Child
// reports !ok for such a cursor; that slot is simply not touched at
// any deeper label, so its cursor is left as-is rather than advanced.
func (e *Enumerator) descend() {
	letter := letterset.Letter(e.stack[e.depth])
	for _, s := range e.touching[e.depth] {
		e.parents[e.depth][s] = e.cursor[s]
		if child, ok := e.arena.Child(e.cursor[s], letter); ok {
			e.cursor[s] = child
		}
	}
}

// restore undoes descend's effect on every slot touching depth.
func (e *Enumerator) restore(depth int) {
	for _, s := range e.touching[depth] {
		e.cursor[s] = e.parents[depth][s]
	}
}

// maskAt intersects the DAWG mask at every slot touching depth's
// current cursor, per spec §4.6's mask_stack invariant.
func (e *Enumerator) maskAt(depth int) letterset.Mask {
	m := letterset.Full
	for _, s := range e.touching[depth] {
		m &= e.arena.At(e.cursor[s]).Mask
	}
	return m
}

// WordsFromAssignment reads out, for each slot in t in slot-index
// order, the word formed by substituting assignment[label] for every
// occurrence of label in that slot's original label order — spec §6's
// output contract.
func WordsFromAssignment(t topology.Topology, assignment []int) []string {
	words := make([]string, len(t.Slots))
	for i, slot := range t.Slots {
		b := make([]byte, len(slot.Labels))
		for j, label := range slot.Labels {
			b[j] = letterset.Letter(assignment[label]).Byte()
		}
		words[i] = string(b)
	}
	return words
}
