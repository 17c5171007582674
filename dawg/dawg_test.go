package dawg

import (
	"testing"

	"github.com/boblucas/wordsquares/letterset"
	"github.com/stretchr/testify/require"
)

func word(s string) []int {
	out := make([]int, len(s))
	for i, c := range s {
		out[i] = int(c - 'a')
	}
	return out
}

func buildArena(t *testing.T, words ...string) (Arena, Handle) {
	t.Helper()
	b := NewBuilder()
	for _, w := range words {
		require.NoError(t, b.Insert(word(w)))
	}
	arena, root := Flatten(b.root)
	return arena, root
}

func readWords(t *testing.T, a Arena, root Handle, length int) []string {
	t.Helper()
	var out []string
	var walk func(h Handle, prefix []byte)
	walk = func(h Handle, prefix []byte) {
		if len(prefix) == length {
			out = append(out, string(prefix))
			return
		}
		n := a.At(h)
		for bit := 0; bit < letterset.Size; bit++ {
			l := letterset.Letter(bit)
			if !n.Mask.Set(l) {
				continue
			}
			if len(prefix) == length-1 {
				out = append(out, string(append(append([]byte{}, prefix...), l.Byte())))
				continue
			}
			child, ok := a.Child(h, l)
			require.True(t, ok)
			walk(child, append(append([]byte{}, prefix...), l.Byte()))
		}
	}
	walk(root, nil)
	return out
}

func TestBuilderInsertRejectsMixedLengths(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Insert(word("cat")))
	require.Error(t, b.Insert(word("ab")))
}

func TestBuilderInsertRejectsEmptyWord(t *testing.T) {
	b := NewBuilder()
	require.Error(t, b.Insert(nil))
}

func TestBuilderInsertRejectsOutOfRangeLetter(t *testing.T) {
	b := NewBuilder()
	require.Error(t, b.Insert([]int{0, 26, 1}))
}

func TestFlattenPreservesWords(t *testing.T) {
	arena, root := buildArena(t, "cat", "car", "bar", "bat")
	got := readWords(t, arena, root, 3)
	require.ElementsMatch(t, []string{"cat", "car", "bar", "bat"}, got)
}

func TestFlattenSingleLetterWord(t *testing.T) {
	arena, root := buildArena(t, "a", "b")
	n := arena.At(root)
	require.True(t, n.Mask.Set(letterset.Letter(0)))
	require.True(t, n.Mask.Set(letterset.Letter(1)))
	require.Equal(t, uint32(0), n.ChildrenOffset, "leaf words allocate no children")
}

func TestMinimizeIsFixedPoint(t *testing.T) {
	arena, root := buildArena(t, "cat", "car", "rat", "rag", "tar", "tan")
	before := readWords(t, arena, root, 3)

	minimized, roots := Minimize(arena, []Handle{root})
	after := readWords(t, minimized, roots[0], 3)
	require.ElementsMatch(t, before, after)

	twiceMinimized, roots2 := Minimize(minimized, roots)
	require.Equal(t, len(minimized.Nodes), len(twiceMinimized.Nodes),
		"minimizing an already-minimized arena must be a fixed point")
	again := readWords(t, twiceMinimized, roots2[0], 3)
	require.ElementsMatch(t, before, again)
}

func TestMinimizeSharesIsomorphicSuffixes(t *testing.T) {
	// "bat" and "cat" share an identical two-node suffix subgraph
	// ('a' followed by a leaf 't'). A leaf node itself is never a
	// merge target (it has no subtree to remove, and rewriting its
	// own children_offset away from 0 would violate the "0 means no
	// children" invariant for no benefit); the real saving shows up
	// one level up, when "cat"'s 'a' node is kept canonical and
	// "bat"'s 'a' node has its children_offset redirected to "cat"'s
	// shared 't', dropping "bat"'s own 't' node entirely.
	arena, root := buildArena(t, "bat", "cat")
	minimized, roots := Minimize(arena, []Handle{root})
	require.Less(t, len(minimized.Nodes), len(arena.Nodes))

	bNode, ok := minimized.Child(roots[0], letterset.Letter('b'-'a'))
	require.True(t, ok)
	cNode, ok := minimized.Child(roots[0], letterset.Letter('c'-'a'))
	require.True(t, ok)

	aFromB, ok := minimized.Child(bNode, letterset.Letter('a'-'a'))
	require.True(t, ok)
	aFromC, ok := minimized.Child(cNode, letterset.Letter('a'-'a'))
	require.True(t, ok)

	leaf := minimized.At(aFromB)
	require.True(t, leaf.Mask.Set(letterset.Letter('t'-'a')))
	require.Equal(t, uint32(0), leaf.ChildrenOffset, "the final letter 't' allocates no node of its own")
	require.Equal(t, aFromB, aFromC, "the shared 't' leaf is reached through one physical node")
}

func TestConcatPreservesEachSlotIndependently(t *testing.T) {
	arenaA, _ := buildArena(t, "foo", "bar")
	arenaB, _ := buildArena(t, "ab")

	shared, roots := Concat([]Arena{arenaA, arenaB})
	require.Equal(t, Handle(0), roots[0])
	require.Equal(t, Handle(len(arenaA.Nodes)), roots[1])

	wordsA := readWords(t, shared, roots[0], 3)
	require.ElementsMatch(t, []string{"foo", "bar"}, wordsA)
	wordsB := readWords(t, shared, roots[1], 2)
	require.ElementsMatch(t, []string{"ab"}, wordsB)
}

func TestBuildSharedMinimizesAcrossSlots(t *testing.T) {
	arenaA, _ := buildArena(t, "cat", "car")
	arenaB, _ := buildArena(t, "cat", "car")

	shared, roots := BuildShared([]Arena{arenaA, arenaB})
	wordsA := readWords(t, shared, roots[0], 3)
	wordsB := readWords(t, shared, roots[1], 3)
	require.ElementsMatch(t, []string{"cat", "car"}, wordsA)
	require.ElementsMatch(t, []string{"cat", "car"}, wordsB)
}
