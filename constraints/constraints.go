// Package constraints builds the inverted label -> slot index table
// the enumerator walks during backtracking (spec §4.5).
package constraints

import "github.com/boblucas/wordsquares/topology"

// Table holds, for each label, the ordered list of slot indices that
// reference it, plus — in parallel, kept for diagnostics and test
// assertions per spec §4.5's parenthetical even though the enumerator
// itself never reads it — the position(s) within each of those slots
// at which the label occurs.
type Table struct {
	// TouchingSlots[label] is the ordered list of slot indices whose
	// Labels contain label, in slot-index order.
	TouchingSlots [][]int
	// Positions[label][i] is the list of positions within slot
	// TouchingSlots[label][i] at which label occurs.
	Positions [][][]int
}

// Invert builds a Table from a normalized Topology. t's labels must
// already be dense in [0, t.LabelCount) (see topology.Normalize).
//
// Grounded directly on the original invertTopology: a
// vector<vector<unsigned char>> indexed by label, appended to as each
// slot's label list is walked in slot order.
func Invert(t topology.Topology) Table {
	touching := make([][]int, t.LabelCount)
	positions := make([][][]int, t.LabelCount)

	for slotIdx, slot := range t.Slots {
		slotEntryIndex := make(map[int]int)
		for pos, label := range slot.Labels {
			if idx, seen := slotEntryIndex[label]; seen {
				positions[label][idx] = append(positions[label][idx], pos)
				continue
			}
			slotEntryIndex[label] = len(touching[label])
			touching[label] = append(touching[label], slotIdx)
			positions[label] = append(positions[label], []int{pos})
		}
	}

	return Table{TouchingSlots: touching, Positions: positions}
}
