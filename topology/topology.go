// Package topology models the crossword-style constraint grid: an
// ordered sequence of fixed-length slots whose letter positions are
// identified by integer labels shared across slots wherever two
// positions must spell the same letter.
//
// This package owns per-slot normalization (spec §3) and cross-slot
// renumbering (spec §4.4) but knows nothing about file formats or
// dictionaries; the file parser lives in parse.go, and the dictionary
// loader consumes the normalized shape this package exposes.
package topology

import (
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Slot is one word position: an ordered sequence of labels (which may
// repeat within the slot) plus the dictionary path it draws words
// from.
type Slot struct {
	Labels         []int
	DictionaryPath string
}

// DistinctLabelCount returns the number of distinct labels in the
// slot, i.e. the word length of the DAWG this slot is matched against.
func (s Slot) DistinctLabelCount() int {
	return len(lo.Uniq(s.Labels))
}

// Topology is an ordered sequence of slots plus the derived label
// count. Slot index in Slots defines the output order (spec §6).
type Topology struct {
	Slots      []Slot
	LabelCount int
}

// NormalizedShape replaces each label in labels with its rank in
// sorted(unique(labels)), per spec §3's per-slot normalization. Two
// slots with equal normalized shape share a dictionary DAWG.
func NormalizedShape(labels []int) []int {
	uniq := append([]int{}, lo.Uniq(labels)...)
	sort.Ints(uniq)
	shape := make([]int, len(labels))
	for i, l := range labels {
		shape[i] = lo.IndexOf(uniq, l)
	}
	return shape
}

// Normalize renumbers the union of labels used across every slot in
// raw to a dense {0, ..., L-1}, preserving the ascending order of the
// original labels (spec §4.4's cross-slot renumbering), and returns
// the resulting Topology. raw itself is left untouched.
func Normalize(raw Topology) Topology {
	var all []int
	for _, s := range raw.Slots {
		all = append(all, s.Labels...)
	}
	uniq := append([]int{}, lo.Uniq(all)...)
	sort.Ints(uniq)

	rank := make(map[int]int, len(uniq))
	for i, l := range uniq {
		rank[l] = i
	}

	slots := make([]Slot, len(raw.Slots))
	for i, s := range raw.Slots {
		labels := make([]int, len(s.Labels))
		for j, l := range s.Labels {
			labels[j] = rank[l]
		}
		slots[i] = Slot{Labels: labels, DictionaryPath: s.DictionaryPath}
		log.Debug().Int("slot", i).Ints("labels", labels).Msg("normalized slot")
	}

	return Topology{Slots: slots, LabelCount: len(uniq)}
}
