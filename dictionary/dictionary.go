// Package dictionary loads word list files into dawg.Builder values,
// applying the form constraint (spec §6) and caching by (path,
// normalized slot shape) the way the original's dictionaryCache does.
package dictionary

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/boblucas/wordsquares/dawg"
	"github.com/boblucas/wordsquares/letterset"
	"github.com/boblucas/wordsquares/topology"
)

// Loader caches a dawg.Builder per (dictionary path, normalized slot
// shape), so topologies that reuse the same shape against the same
// file only pay the scan cost once — mirroring the original's global
// `std::map<std::string, std::map<Path, Dawg*>> dictionaryCache`,
// generalized from a package-level global to an instance callers can
// scope per run (or share, as the CLI entrypoint does across every
// topology file on the command line).
type Loader struct {
	mu    sync.Mutex
	cache map[string]map[string]*dawg.Builder
}

// NewLoader returns an empty Loader.
func NewLoader() *Loader {
	return &Loader{cache: make(map[string]map[string]*dawg.Builder)}
}

// Load returns the Builder for path's words matching the shape of
// labels (spec §6's form constraint), building and caching it on
// first request for this (path, normalized shape) pair.
func (l *Loader) Load(path string, labels []int) (*dawg.Builder, error) {
	shape := topology.NormalizedShape(labels)
	key := shapeKey(shape)

	l.mu.Lock()
	if byShape, ok := l.cache[path]; ok {
		if b, ok := byShape[key]; ok {
			l.mu.Unlock()
			return b, nil
		}
	}
	l.mu.Unlock()

	b, err := load(path, shape)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	if l.cache[path] == nil {
		l.cache[path] = make(map[string]*dawg.Builder)
	}
	l.cache[path][key] = b
	l.mu.Unlock()
	return b, nil
}

func load(path string, shape []int) (*dawg.Builder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: opening %q: %w", path, err)
	}
	defer f.Close()

	distinct := 0
	for _, s := range shape {
		if s+1 > distinct {
			distinct = s + 1
		}
	}

	b := dawg.NewBuilder()
	scanner := bufio.NewScanner(f)
	kept, total := 0, 0
	for scanner.Scan() {
		total++
		line := scanner.Text()
		if len(line) != len(shape) || !followsForm(shape, line) {
			continue
		}
		word, ok := compress(shape, distinct, line)
		if !ok {
			continue
		}
		if err := b.Insert(word); err != nil {
			continue
		}
		kept++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dictionary: reading %q: %w", path, err)
	}
	log.Debug().Str("path", path).Int("kept", kept).Int("scanned", total).Msg("loaded dictionary")
	return b, nil
}

// followsForm reports whether w satisfies spec §6's form constraint
// for a slot normalized to shape: for every i < j with shape[i] ==
// shape[j], w[i] must equal w[j].
func followsForm(shape []int, w string) bool {
	for i := range shape {
		for j := i + 1; j < len(shape); j++ {
			if shape[i] == shape[j] && w[i] != w[j] {
				return false
			}
		}
	}
	return true
}

// compress reduces w to one letter per distinct label, per spec §6:
// "the p[i]-th output position gets w[i]". Returns !ok if w contains a
// byte outside a-z, per the dictionary file contract's "only lines
// ... are included; other lines are silently discarded."
func compress(shape []int, distinct int, w string) ([]int, bool) {
	out := make([]int, distinct)
	for i, s := range shape {
		l, err := letterset.ByteToLetter(w[i])
		if err != nil {
			return nil, false
		}
		out[s] = int(l)
	}
	return out, true
}

func shapeKey(shape []int) string {
	parts := make([]string, len(shape))
	for i, s := range shape {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ",")
}
