package enumerate

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/boblucas/wordsquares/constraints"
	"github.com/boblucas/wordsquares/dawg"
	"github.com/boblucas/wordsquares/dictionary"
	"github.com/boblucas/wordsquares/topology"
)

func writeDictFile(t *testing.T, words ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dict.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(words, "\n")+"\n"), 0o644))
	return path
}

// runTopology parses a topology source, builds the shared arena and
// driver for it, and runs the driver to completion, collecting every
// emitted solution line (space-joined words, no leading space, for
// easy comparison) under the given worker count and dedup policy.
func runTopology(t *testing.T, topologySrc, dictPath string, allowDuplicateWords bool, threads int) []string {
	t.Helper()
	top, err := topology.Parse(strings.NewReader(topologySrc), dictPath)
	require.NoError(t, err)

	loader := dictionary.NewLoader()
	arenas := make([]dawg.Arena, len(top.Slots))
	for i, slot := range top.Slots {
		b, err := loader.Load(slot.DictionaryPath, slot.Labels)
		require.NoError(t, err)
		arenas[i], _ = b.Flatten()
	}
	shared, roots := dawg.BuildShared(arenas)
	touching := constraints.Invert(top).TouchingSlots

	driver := NewDriver(top, &shared, roots, touching, Config{
		AllowDuplicateWords: allowDuplicateWords,
		Threads:             threads,
	})

	var mu sync.Mutex
	var lines []string
	err = driver.Run(context.Background(), func(sol Solution) {
		mu.Lock()
		lines = append(lines, strings.Join(sol.Words, " "))
		mu.Unlock()
	})
	require.NoError(t, err)
	sort.Strings(lines)
	return lines
}

func TestDriverDuplicateWordSuppression(t *testing.T) {
	dict := writeDictFile(t, "cat", "car")
	top := "0,1,2:" + dict + "\n0,1,2:" + dict + "\n"

	suppressed := runTopology(t, top, dict, false, 2)
	require.Empty(t, suppressed, "every solution repeats a word across the two identical slots")

	allowed := runTopology(t, top, dict, true, 2)
	require.ElementsMatch(t, []string{"cat cat", "car car"}, allowed)
}

func TestDriverDisjointSlotsCrossProduct(t *testing.T) {
	dict := writeDictFile(t, "ab", "cd")
	top := "0,1:" + dict + "\n2,3:" + dict + "\n"

	got := runTopology(t, top, dict, true, 3)
	require.ElementsMatch(t, []string{"ab ab", "ab cd", "cd ab", "cd cd"}, got)
}

func TestDriverIndependentOfWorkerCount(t *testing.T) {
	dict := writeDictFile(t, "cat", "car", "rat", "rag", "tar", "tan")
	top := "0,1,2:" + dict + "\n2,3,4:" + dict + "\n"

	withOneWorker := runTopology(t, top, dict, false, 1)
	withManyWorkers := runTopology(t, top, dict, false, 8)
	require.Equal(t, withOneWorker, withManyWorkers)
	require.ElementsMatch(t, []string{"cat tar", "car rag", "car rat"}, withOneWorker)
}

func TestDriverEmptyTopologyCleanExit(t *testing.T) {
	got := runTopology(t, "", "", false, 2)
	require.Empty(t, got)
}

func TestDriverSingleSlotOneWordDictionary(t *testing.T) {
	dict := writeDictFile(t, "zzz")
	top := "0,1,2:" + dict + "\n"
	got := runTopology(t, top, dict, false, 2)
	require.Equal(t, []string{"zzz"}, got)
}
