package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/boblucas/wordsquares/letterset"
)

func writeDict(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadKeepsOnlyMatchingLengthAndForm(t *testing.T) {
	path := writeDict(t, "cat", "car", "ab", "c-t", "CAT")
	loader := NewLoader()

	b, err := loader.Load(path, []int{0, 1, 2})
	require.NoError(t, err)
	require.Equal(t, 2, b.WordCount(), "only cat and car match length 3 and a-z form")
}

func TestLoadAppliesFormConstraintForRepeatedLabels(t *testing.T) {
	path := writeDict(t, "eve", "ada", "bob", "cat")
	loader := NewLoader()

	b, err := loader.Load(path, []int{0, 1, 0})
	require.NoError(t, err)
	require.Equal(t, 3, b.WordCount(), "eve/ada/bob are palindromic, cat is not")
	require.Equal(t, 2, b.WordLen(), "compressed word has one letter per distinct label")
}

func TestLoadCachesByPathAndNormalizedShape(t *testing.T) {
	path := writeDict(t, "cat", "car")
	loader := NewLoader()

	b1, err := loader.Load(path, []int{0, 1, 2})
	require.NoError(t, err)
	b2, err := loader.Load(path, []int{5, 6, 7}) // same normalized shape, different raw labels
	require.NoError(t, err)
	require.Same(t, b1, b2, "same (path, normalized shape) must hit the cache")

	b3, err := loader.Load(path, []int{0, 1, 0}) // different shape
	require.NoError(t, err)
	require.NotSame(t, b1, b3)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	loader := NewLoader()
	_, err := loader.Load(filepath.Join(t.TempDir(), "missing.txt"), []int{0, 1})
	require.Error(t, err)
}

func TestFollowsFormRejectsMismatchedRepeat(t *testing.T) {
	require.False(t, followsForm([]int{0, 1, 0}, "cat"))
	require.True(t, followsForm([]int{0, 1, 0}, "ada"))
}

func TestCompressReducesToOneLetterPerDistinctLabel(t *testing.T) {
	out, ok := compress([]int{0, 1, 0}, 2, "ada")
	require.True(t, ok)
	require.Equal(t, []int{int(mustLetter('a')), int(mustLetter('d'))}, out)
}

func mustLetter(b byte) letterset.Letter {
	l, err := letterset.ByteToLetter(b)
	if err != nil {
		panic(err)
	}
	return l
}
