package dawg

import "github.com/boblucas/wordsquares/letterset"

// Handle is an absolute index into an Arena.
type Handle uint32

// Node is the compact, read-only DAWG node: a 26-bit mask of legal
// next letters plus a self-relative offset to where its children
// begin (0 means no children). Navigation is
// child = self + ChildrenOffset + mask.Rank(letter).
type Node struct {
	ChildrenOffset uint32
	Mask           letterset.Mask
}

// Arena is a dense, contiguous array of compact Nodes. Handles are
// absolute indices into this slice; because ChildrenOffset is
// self-relative, arenas can be concatenated by simple append without
// rewriting any existing node — only the root Handle of each appended
// arena needs to be recorded (see Concat).
type Arena struct {
	Nodes []Node
}

// Len returns the number of nodes in the arena.
func (a *Arena) Len() int { return len(a.Nodes) }

// Node returns the node at h.
func (a *Arena) At(h Handle) Node { return a.Nodes[h] }

// Child navigates from h along letter, returning the zero Handle (0)
// paired with false if h has no children or letter is not legal at h.
//
// Handle 0 is never a valid non-root child target once concatenated
// into a shared arena with other slots before it, so callers that
// need a sentinel should check the returned ok instead of comparing
// against 0.
func (a *Arena) Child(h Handle, l letterset.Letter) (Handle, bool) {
	n := a.Nodes[h]
	if n.ChildrenOffset == 0 || !n.Mask.Set(l) {
		return 0, false
	}
	return h + Handle(n.ChildrenOffset) + Handle(n.Mask.Rank(l)), true
}

// Flatten emits a fresh single-DAWG Arena from a mutable trie root in
// breadth-first order.
//
// Grounded on gaddagmaker.serializeElements (BFS emission into a flat
// []uint32, letter-sets resolved immediately, child indices resolved
// via a deferred map once all nodes have been assigned a position)
// and the original dawgToArray, which uses an explicit std::queue and
// takes q.size() at dequeue time as the child offset — exactly the
// "offset equals queue length at dequeue" rule spec §4.2 states.
func Flatten(root *mutableNode) (Arena, Handle) {
	if root == nil {
		return Arena{}, 0
	}
	order := []*mutableNode{root}
	queue := []*mutableNode{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, c := range n.children {
			order = append(order, c)
			queue = append(queue, c)
		}
	}

	nodes := make([]Node, len(order))
	// Re-walk in the same BFS order, tracking how many nodes have
	// been enqueued-but-not-yet-emitted so each node's children_offset
	// equals the queue length at the moment it was dequeued, per the
	// original's q.size() rule.
	queued := 1 // root is "queued" before the loop starts
	for i, n := range order {
		nodes[i] = Node{Mask: letterset.Mask(n.mask)}
		if len(n.children) > 0 {
			nodes[i].ChildrenOffset = uint32(queued)
		}
		queued--      // this node has now been dequeued
		queued += len(n.children) // and its children enqueued
	}

	return Arena{Nodes: nodes}, 0
}

// Concat appends every arena in arenas into one shared Arena,
// returning the root Handle each slot's arena now lives at. Because
// every offset inside a compact Node is self-relative, concatenation
// never needs to rewrite any existing node — it only has to remember
// where each appended arena's root landed.
func Concat(arenas []Arena) (Arena, []Handle) {
	var out Arena
	roots := make([]Handle, len(arenas))
	for i, a := range arenas {
		roots[i] = Handle(len(out.Nodes))
		out.Nodes = append(out.Nodes, a.Nodes...)
	}
	return out, roots
}
