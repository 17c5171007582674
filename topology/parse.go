package topology

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// MaxLabel bounds the raw label values accepted from a topology file.
// Unlike the original implementation's fixed-size stack arrays, this
// module's per-label state is dynamically sized, so nothing here
// technically requires a cap — this one guards against a malformed
// file accidentally requesting an absurd label space (spec §7's
// "Oversize-label" kind), which would otherwise silently allocate a
// huge LxS parents plane.
const MaxLabel = 1 << 20

// ParseFile reads a topology file (spec §6): UTF-8, line-oriented,
// '#'-prefixed or empty lines ignored, each remaining line of the form
// "labels[:dictionary_path]". defaultDictionaryPath is substituted
// when a line omits the dictionary path.
//
// Malformed lines (empty, non-integer or negative label) are skipped
// with a logged warning rather than aborting the file — the
// documented, deterministic resolution of spec §7's open
// "Malformed-topology-line" policy; see DESIGN.md. A label at or above
// MaxLabel is spec §7's "Oversize-label" kind and fails the whole
// parse with an error.
func ParseFile(path, defaultDictionaryPath string) (Topology, error) {
	f, err := os.Open(path)
	if err != nil {
		return Topology{}, fmt.Errorf("topology: opening %q: %w", path, err)
	}
	defer f.Close()
	return Parse(f, defaultDictionaryPath)
}

// Parse is the io.Reader-driven core of ParseFile, split out so tests
// can exercise the line format without touching the filesystem.
func Parse(r io.Reader, defaultDictionaryPath string) (Topology, error) {
	var raw Topology
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || line[0] == '#' {
			continue
		}
		slot, ok, err := parseLine(line, defaultDictionaryPath, lineNo)
		if err != nil {
			return Topology{}, err
		}
		if !ok {
			continue
		}
		raw.Slots = append(raw.Slots, slot)
	}
	if err := scanner.Err(); err != nil {
		return Topology{}, fmt.Errorf("topology: reading: %w", err)
	}
	return Normalize(raw), nil
}

func parseLine(line, defaultDictionaryPath string, lineNo int) (Slot, bool, error) {
	numbers, dictPath, hasPath := strings.Cut(line, ":")
	if !hasPath || dictPath == "" {
		dictPath = defaultDictionaryPath
	}

	fields := strings.Split(numbers, ",")
	labels := make([]int, 0, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			log.Warn().Int("line", lineNo).Str("text", line).Msg("topology: empty label, skipping line")
			return Slot{}, false, nil
		}
		label, err := strconv.Atoi(field)
		if err != nil {
			log.Warn().Int("line", lineNo).Str("text", line).Msg("topology: non-integer label, skipping line")
			return Slot{}, false, nil
		}
		if label < 0 {
			log.Warn().Int("line", lineNo).Str("text", line).Msg("topology: negative label, skipping line")
			return Slot{}, false, nil
		}
		if label >= MaxLabel {
			return Slot{}, false, fmt.Errorf("topology: line %d: label %d is not below the limit %d", lineNo, label, MaxLabel)
		}
		labels = append(labels, label)
	}
	if len(labels) == 0 {
		return Slot{}, false, nil
	}
	return Slot{Labels: labels, DictionaryPath: dictPath}, true, nil
}
