// Package config parses the CLI flags/environment into the knobs the
// rest of this module needs, mirroring macondo/config's combined
// flag+env Load pattern built on github.com/namsral/flag.
package config

import "github.com/namsral/flag"

// Config holds the run-wide tunables. None of these are required per
// spec §6 ("No flags are required by this specification"); every
// field has a sensible default.
type Config struct {
	// AllowDuplicateWords defaults to false: this specification's
	// resolution of the open question in spec §9, promoted to an
	// explicit flag. See DESIGN.md.
	AllowDuplicateWords bool
	// Threads is the worker count; 0 defers to enumerate.Driver's own
	// runtime.NumCPU()-with-fallback default.
	Threads int
	// DefaultDictionaryPath is substituted for topology lines that
	// omit a dictionary path.
	DefaultDictionaryPath string
	// Debug raises the zerolog global level, mirroring cmd/shell's
	// own -debug flag.
	Debug bool
}

// Load parses args (typically os.Args[1:]) into c, returning the
// positional arguments (topology file paths) left over after flag
// parsing.
func (c *Config) Load(args []string) ([]string, error) {
	fs := flag.NewFlagSet("wordsquares", flag.ContinueOnError)
	fs.BoolVar(&c.AllowDuplicateWords, "allow-duplicate-words", false,
		"emit every solution even if it repeats a word across slots")
	fs.IntVar(&c.Threads, "threads", 0,
		"worker thread count; 0 selects the number of CPUs")
	fs.StringVar(&c.DefaultDictionaryPath, "default-dictionary", "",
		"dictionary path used by topology lines that omit one")
	fs.BoolVar(&c.Debug, "debug", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}
