package dawg

import (
	"encoding/binary"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"

	"github.com/boblucas/wordsquares/letterset"
)

// maxCanonicalSignatureWords bounds how long a node's signature may
// be before it is no longer eligible to become a canonical node,
// capping the cost of installing it as a map value. This mirrors the
// original compress()'s "x.size() < 100" heuristic; per spec §9 the
// exact value is not load-bearing.
const maxCanonicalSignatureWords = 100

// signature computes the (mask<<6)|depth pre-order sequence described
// in spec §4.3: a node's signature is that value followed by the
// signature of each child in letter order, so two subgraphs collide
// only if they are structurally identical at every depth.
//
// depths must already be populated (see computeDepths) before calling
// this; signature itself does not recompute depth, mirroring
// gaddagmaker's split between calculateDepth/calculateSums (run once,
// up front) and the minimizer's O(1)-per-node lookups during the main
// pass.
func signature(a *Arena, depths []uint32, h Handle, out []uint32) []uint32 {
	n := a.Nodes[h]
	out = append(out, uint32(n.Mask)<<6|depths[h])
	if n.ChildrenOffset != 0 {
		for bit := 0; bit < letterset.Size; bit++ {
			l := letterset.Letter(bit)
			if n.Mask.Set(l) {
				child := h + Handle(n.ChildrenOffset) + Handle(n.Mask.Rank(l))
				out = signature(a, depths, child, out)
			}
		}
	}
	return out
}

func encodeSignature(words []uint32) []byte {
	b := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(b[i*4:], w)
	}
	return b
}

// computeDepths fills depths[h] with 1 + the longest path from h to
// a childless node, for every h in [0, a.Len()). Arena nodes are laid
// out BFS-parent-before-child, so a node's children always have a
// smaller or equal depth computed before we need it only if we visit
// in reverse index order — which is exactly what Minimize does for
// the main pass too (spec §9, "Graph minimization without cycles").
func computeDepths(a *Arena) []uint32 {
	depths := make([]uint32, a.Len())
	for h := a.Len() - 1; h >= 0; h-- {
		n := a.Nodes[h]
		if n.ChildrenOffset == 0 {
			depths[h] = 1
			continue
		}
		var maxChildDepth uint32
		for bit := 0; bit < letterset.Size; bit++ {
			l := letterset.Letter(bit)
			if n.Mask.Set(l) {
				child := Handle(h) + Handle(n.ChildrenOffset) + Handle(n.Mask.Rank(l))
				if depths[child] > maxChildDepth {
					maxChildDepth = depths[child]
				}
			}
		}
		depths[h] = 1 + maxChildDepth
	}
	return depths
}

// canonicalTable buckets candidate canonical nodes by a cheap hash of
// their encoded signature before doing an exact byte compare, the
// same two-phase "cheap filter, then exact check" shape as
// gaddagmaker's depth/letterSum bucketing, but built on a real hash
// (cespare/xxhash, already part of this codebase's dependency stack)
// instead of an ad hoc checksum.
type canonicalTable struct {
	buckets map[uint64][]canonicalEntry
}

type canonicalEntry struct {
	sigBytes []byte
	node     Handle
}

func newCanonicalTable() *canonicalTable {
	return &canonicalTable{buckets: make(map[uint64][]canonicalEntry)}
}

func (t *canonicalTable) find(sigBytes []byte) (Handle, bool) {
	key := xxhash.Sum64(sigBytes)
	for _, e := range t.buckets[key] {
		if bytesEqual(e.sigBytes, sigBytes) {
			return e.node, true
		}
	}
	return 0, false
}

func (t *canonicalTable) install(sigBytes []byte, node Handle) {
	key := xxhash.Sum64(sigBytes)
	t.buckets[key] = append(t.buckets[key], canonicalEntry{sigBytes: sigBytes, node: node})
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Minimize collapses isomorphic subgraphs of arena bottom-up and
// re-lays the array, rewriting every handle in roots to its new
// position.
//
// Grounded on gaddagmaker.Minimize/Node.Equals (bucket by depth and a
// letter-sum, then pairwise compare within a bucket) and the original
// compress() (a std::map<vector<uint32_t>, CompactDawg*> keyed by the
// exact recursive signature, size-capped). This implementation walks
// nodes in reverse arena-index order exactly as gaddagmaker's
// traverseTreeAndExecute-in-reverse does, relying on the same
// invariant spec §9 names: BFS layout guarantees a node's children
// sit at strictly larger indices, so reverse iteration sees fully
// settled children before their parents.
func Minimize(arena Arena, roots []Handle) (Arena, []Handle) {
	log.Debug().Int("nodes", arena.Len()).Msg("minimizing dawg arena")

	depths := computeDepths(&arena)
	canon := newCanonicalTable()

	// childrenOffset[h] is the (possibly rewritten) children_offset
	// for node h; removed[h] marks a node whose subtree has been
	// orphaned in favor of a canonical twin further down the arena.
	childrenOffset := make([]uint32, arena.Len())
	removed := make([]bool, arena.Len())
	for h := range arena.Nodes {
		childrenOffset[h] = arena.Nodes[h].ChildrenOffset
	}

	for h := arena.Len() - 1; h >= 0; h-- {
		if childrenOffset[h] == 0 {
			// A childless (terminal) node has no subtree to share
			// or remove: every real saving happens one level up,
			// when an internal node's own signature — which already
			// recurses into this leaf's (mask, depth) — matches
			// another internal node's and gets its children_offset
			// redirected wholesale. Registering this leaf itself in
			// the canonical table would never be consulted by a
			// rewrite (rewriting a leaf's own offset to nonzero
			// would violate the "0 means no children" invariant for
			// no minimization benefit), so it is skipped entirely.
			continue
		}
		handle := Handle(h)
		sig := signature(&arena, depths, handle, nil)
		sigBytes := encodeSignature(sig)

		if canonicalNode, found := canon.find(sigBytes); found {
			selfChildren := handle + Handle(childrenOffset[h])
			canonChildren := canonicalNode + Handle(childrenOffset[canonicalNode])
			if selfChildren != canonChildren {
				markSubtreeRemoved(&arena, removed, handle)
				childrenOffset[h] = uint32(canonChildren - handle)
			}
			continue
		}
		if len(sig) < maxCanonicalSignatureWords {
			canon.install(sigBytes, handle)
		}
	}

	// Compact: drop removed nodes, remap surviving handles.
	newIndex := make([]int, arena.Len())
	survivors := make([]Node, 0, arena.Len())
	for h := 0; h < arena.Len(); h++ {
		if removed[h] {
			newIndex[h] = -1
			continue
		}
		newIndex[h] = len(survivors)
		survivors = append(survivors, Node{Mask: arena.Nodes[h].Mask})
	}
	for h := 0; h < arena.Len(); h++ {
		if removed[h] {
			continue
		}
		ni := newIndex[h]
		if childrenOffset[h] == 0 {
			survivors[ni].ChildrenOffset = 0
			continue
		}
		oldChild := h + int(childrenOffset[h])
		newChild := newIndex[oldChild]
		if newChild == -1 {
			panic("dawg: minimizer pointed a surviving node at a removed child")
		}
		survivors[ni].ChildrenOffset = uint32(newChild - ni)
	}

	newRoots := make([]Handle, len(roots))
	for i, r := range roots {
		ni := newIndex[int(r)]
		if ni == -1 {
			panic("dawg: minimizer removed a root node")
		}
		newRoots[i] = Handle(ni)
	}

	log.Debug().
		Int("before", arena.Len()).
		Int("after", len(survivors)).
		Msg("minimized dawg arena")

	return Arena{Nodes: survivors}, newRoots
}

// markSubtreeRemoved marks every node reachable from handle's
// children (but not handle itself — its parents may still reference
// it) as removed, per spec §4.3 step 2's "do not remark the node
// itself" rule.
//
// Traversal follows the arena's original, never-rewritten
// ChildrenOffset (the same source signature and computeDepths read),
// not the in-progress childrenOffset[] rewrite table: a child already
// redirected to a shared canonical block is itself still a live node
// with its own original children, and following the rewritten offset
// here would walk into — and wrongly orphan — that canonical block.
func markSubtreeRemoved(a *Arena, removed []bool, handle Handle) {
	n := a.Nodes[handle]
	if n.ChildrenOffset == 0 {
		return
	}
	for bit := 0; bit < letterset.Size; bit++ {
		l := letterset.Letter(bit)
		if !n.Mask.Set(l) {
			continue
		}
		child := handle + Handle(n.ChildrenOffset) + Handle(n.Mask.Rank(l))
		if removed[child] {
			continue
		}
		removed[child] = true
		markSubtreeRemoved(a, removed, child)
	}
}
