// Package dawg implements the mutable trie builder, the compact
// flat-array encoding, and the isomorphic-subgraph minimizer for
// fixed-length-word directed acyclic word graphs.
//
// The three pieces mirror gaddagmaker's addArc/addFinalArc,
// serializeElements, and Minimize, generalized from a GADDAG (which
// indexes every rotation of a word around a separation token) down to
// the plain prefix DAWG this module needs: one path per word and no
// separation token. All words in one Builder share a single length;
// Insert rejects a word whose length differs from the first one.
package dawg

import "fmt"

// mutableNode is a node in the tree-shaped trie built directly from
// inserted words, before any sharing has happened. Its shape mirrors
// gaddagmaker.Node / the original Dawg struct: a mask of legal next
// letters plus one child per set bit, in letter order.
type mutableNode struct {
	mask     uint32
	children []*mutableNode
}

func (n *mutableNode) rank(letter int) int {
	below := uint32((1 << uint(letter)) - 1)
	return popcount32(n.mask & below)
}

func (n *mutableNode) childFor(letter int) *mutableNode {
	return n.children[n.rank(letter)]
}

func popcount32(v uint32) int {
	// mirrors letterset.Mask.PopCount without importing letterset,
	// so the builder can operate on raw letter indices during
	// construction before an Arena exists.
	v = v - ((v >> 1) & 0x55555555)
	v = (v & 0x33333333) + ((v >> 2) & 0x33333333)
	v = (v + (v >> 4)) & 0x0f0f0f0f
	return int((v * 0x01010101) >> 24)
}

// Builder accumulates words into a mutable trie. Call Insert for each
// word, then Flatten to produce an immutable Arena.
type Builder struct {
	root      *mutableNode
	wordLen   int
	wordCount int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{root: &mutableNode{}}
}

// Insert adds one word, given as 0-25 letter indices, to the trie.
//
// Per the builder's shape contract (spec §4.1): at each position, if
// the bit for the next letter is clear, the bit is set and, if the
// word is not yet exhausted past this letter, a fresh empty child is
// inserted at the index dictated by popcount; traversal continues
// into the child. At the final letter the bit is set but no child is
// allocated.
//
// All words inserted into one Builder must have equal length; a
// mismatch is returned as an error rather than panicking (unlike
// gaddagmaker's own panic-on-misuse style) because callers drive this
// from dictionary files, where one malformed line should not abort
// the whole load. See SPEC_FULL.md §4.1.
func (b *Builder) Insert(word []int) error {
	if len(word) == 0 {
		return fmt.Errorf("dawg: cannot insert an empty word")
	}
	if b.wordCount > 0 && len(word) != b.wordLen {
		return fmt.Errorf("dawg: word length %d does not match established length %d", len(word), b.wordLen)
	}
	for _, l := range word {
		if l < 0 || l >= 26 {
			return fmt.Errorf("dawg: letter index %d out of range [0,26)", l)
		}
	}
	b.wordLen = len(word)
	b.wordCount++

	node := b.root
	for i, letter := range word {
		bit := uint32(1) << uint(letter)
		last := i == len(word)-1
		if node.mask&bit == 0 {
			idx := node.rank(letter)
			node.mask |= bit
			if !last {
				child := &mutableNode{}
				node.children = append(node.children[:idx], append([]*mutableNode{child}, node.children[idx:]...)...)
			}
		}
		if !last {
			node = node.childFor(letter)
		}
	}
	return nil
}

// WordLen returns the established word length, or 0 if no word has
// been inserted yet.
func (b *Builder) WordLen() int {
	return b.wordLen
}

// Flatten emits this builder's trie as a fresh compact Arena, per
// spec §4.2. The returned Handle is always 0: Flatten always places
// the root first in its breadth-first emission order.
func (b *Builder) Flatten() (Arena, Handle) {
	return Flatten(b.root)
}

// WordCount returns the number of words inserted so far (including
// duplicates; the trie itself naturally collapses duplicate prefixes).
func (b *Builder) WordCount() int {
	return b.wordCount
}
