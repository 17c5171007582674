// Command wordsquares is the CLI surface for the coupled-prefix
// word-square enumerator (spec §6): it loads one or more topology
// files, builds and minimizes the DAWGs each references, and prints
// one line per solution.
//
// Thin and flag-parsed, in the shape of cmd/make_gaddag (parse flags,
// delegate to library packages) combined with cmd/shell's
// logger-setup and signal-handling shape.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/boblucas/wordsquares/config"
	"github.com/boblucas/wordsquares/constraints"
	"github.com/boblucas/wordsquares/dawg"
	"github.com/boblucas/wordsquares/dictionary"
	"github.com/boblucas/wordsquares/enumerate"
	"github.com/boblucas/wordsquares/topology"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := &config.Config{}
	topologyPaths, err := cfg.Load(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "wordsquares: ", err)
		return 1
	}
	setupLogging(cfg.Debug)

	if len(topologyPaths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: wordsquares [flags] topology-file...")
		return 1
	}

	log.Info().
		Uint64("total-memory", memory.TotalMemory()).
		Int("threads", enumerate.ResolveThreads(cfg.Threads)).
		Msg("startup")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("got quit signal, cancelling run")
		cancel()
	}()

	loader := dictionary.NewLoader()
	exitCode := 0
	for _, path := range topologyPaths {
		if err := processTopology(ctx, path, cfg, loader); err != nil {
			log.Error().Err(err).Str("path", path).Msg("failed to process topology file")
			exitCode = 1
		}
	}
	return exitCode
}

func processTopology(ctx context.Context, path string, cfg *config.Config, loader *dictionary.Loader) error {
	top, err := topology.ParseFile(path, cfg.DefaultDictionaryPath)
	if err != nil {
		return fmt.Errorf("loading topology: %w", err)
	}

	arenas := make([]dawg.Arena, len(top.Slots))
	for i, slot := range top.Slots {
		b, err := loader.Load(slot.DictionaryPath, slot.Labels)
		if err != nil {
			return fmt.Errorf("loading dictionary for slot %d: %w", i, err)
		}
		arenas[i], _ = b.Flatten()
	}

	shared, roots := dawg.BuildShared(arenas)
	touching := constraints.Invert(top).TouchingSlots

	driver := enumerate.NewDriver(top, &shared, roots, touching, enumerate.Config{
		AllowDuplicateWords: cfg.AllowDuplicateWords,
		Threads:             cfg.Threads,
	})

	return driver.Run(ctx, func(sol enumerate.Solution) {
		fmt.Println(formatLine(sol.Words))
	})
}

// formatLine renders a solution per spec §6: one word per slot, in
// slot-index order, space-separated with a leading space.
func formatLine(words []string) string {
	return " " + strings.Join(words, " ")
}

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
}
