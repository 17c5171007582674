package enumerate

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/boblucas/wordsquares/dawg"
	"github.com/boblucas/wordsquares/letterset"
	"github.com/boblucas/wordsquares/topology"
)

// DefaultThreads falls back to a small constant when the platform
// reports zero usable cores, exactly as spec §5 requires.
const DefaultThreads = 4

// Config carries the parallel driver's tunables: spec §4.7's
// allow_duplicate_words flag plus the worker count.
type Config struct {
	// AllowDuplicateWords, when false, suppresses any solution that
	// repeats the same word across two slots (spec §4.7). This
	// specification's resolution of the open "default" question is
	// false; see DESIGN.md.
	AllowDuplicateWords bool
	// Threads is the worker count. Zero or negative selects
	// runtime.NumCPU(), falling back to DefaultThreads when that
	// reports zero.
	Threads int
}

// Solution is one emitted label assignment, already read out into
// per-slot words in slot-index order.
type Solution struct {
	Words []string
}

// Driver partitions the top-level search by first letter and runs one
// Enumerator per worker over a disjoint seed range, serializing output
// through a single mutex (spec §4.7).
type Driver struct {
	top      topology.Topology
	arena    *dawg.Arena
	roots    []dawg.Handle
	touching [][]int
	cfg      Config
}

// NewDriver builds a Driver. arena and roots must already be the
// minimized, shared arena and per-slot root handles produced by
// dawg.BuildShared; touching is constraints.Invert(top).TouchingSlots.
func NewDriver(top topology.Topology, arena *dawg.Arena, roots []dawg.Handle, touching [][]int, cfg Config) *Driver {
	return &Driver{top: top, arena: arena, roots: roots, touching: touching, cfg: cfg}
}

func (d *Driver) threadCount() int {
	return ResolveThreads(d.cfg.Threads)
}

// ResolveThreads applies spec §5's worker-count policy: the configured
// value if positive, else runtime.NumCPU(), falling back to
// DefaultThreads when the platform reports zero usable cores. Exported
// so the CLI host can log the thread count it's about to run with
// without duplicating this fallback chain.
func ResolveThreads(configured int) int {
	if configured > 0 {
		return configured
	}
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return DefaultThreads
}

// Run launches one worker per thread, each pulling single starting
// letters off a shared atomic counter (spec §4.7's option (a)) and
// running a private Enumerator seeded at that letter to exhaustion.
// emit is called once per surviving solution, holding Driver's output
// mutex for the duration of the call — spec §4.7's "single
// process-wide mutex wraps the result sink so each emitted solution
// appears as one atomic line."
//
// Run returns nil once every seed letter has been explored (each by
// exactly one worker), or the first error surfaced by ctx (e.g. SIGINT at the CLI
// layer, wired via errgroup.WithContext exactly as
// endgame/negamax/solver.go wires its own helper-thread cancellation).
func (d *Driver) Run(ctx context.Context, emit func(Solution)) error {
	if d.top.LabelCount == 0 || len(d.top.Slots) == 0 {
		// "Empty topology -> zero solutions, clean exit."
		return nil
	}

	var nextLetter atomic.Int32
	var outMu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < d.threadCount(); w++ {
		g.Go(func() error {
			e := New(d.arena, d.top.LabelCount, len(d.top.Slots), d.touching, d.roots)
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				next := nextLetter.Add(1) - 1
				if next >= int32(letterset.Size) {
					return nil
				}
				seed := letterset.Letter(next)
				e.Reset(&seed)
				for e.Next() {
					words := WordsFromAssignment(d.top, e.Assignment())
					if !d.cfg.AllowDuplicateWords && hasDuplicateWord(words) {
						continue
					}
					outMu.Lock()
					emit(Solution{Words: words})
					outMu.Unlock()
				}
			}
		})
	}
	return g.Wait()
}

// hasDuplicateWord reports whether the same word appears in more than
// one slot of this single solution — spec §4.7's dedup check, "local
// to the single solution being emitted."
func hasDuplicateWord(words []string) bool {
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			return true
		}
		seen[w] = struct{}{}
	}
	return false
}
