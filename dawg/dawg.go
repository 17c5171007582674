package dawg

// BuildShared concatenates one already-flattened Arena per slot into
// a single shared arena and minimizes the result, returning the
// minimized arena and each slot's (possibly now-shared) root Handle.
//
// This is the glue for spec §3's lifecycle steps 2-4: "Each mutable
// DAWG is flattened into a compact arena. All slot arenas are
// concatenated into one global arena. Minimization rewrites the
// arena and remaps all slot handles." Grounded on
// gaddagmaker.GenerateDawg's flatten-then-optionally-minimize
// sequencing, generalized from one DAWG to N concatenated ones.
func BuildShared(perSlotArenas []Arena) (Arena, []Handle) {
	shared, roots := Concat(perSlotArenas)
	return Minimize(shared, roots)
}
