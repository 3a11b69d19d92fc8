// internal/cli/common.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"alnkit-core/alnio"
	"alnkit-core/taxa"
	"alnkit/internal/version"
)

// Common holds the CLI fields shared by every alnkit tool.
type Common struct {
	// Input
	InDir  string
	Format string

	// Symbols
	Gap     string
	Missing string

	// Taxon selection (mutually exclusive; folded by Selection())
	Include []string
	Exclude []string

	// Performance
	Threads int

	// Logging
	Quiet   bool
	Verbose bool
	LogPath string

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name, blurb string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: %s

Version: %s

Usage of %s:
`, name, blurb, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }

// Slice registers a repeatable string flag bound to dst.
func Slice(fs *flag.FlagSet, dst *[]string, name, usage string) {
	fs.Var((*stringSlice)(dst), name, usage)
}

// Register wires the shared flags onto fs.
func Register(fs *flag.FlagSet, c *Common) {
	fs.StringVar(&c.InDir, "in", "", "input directory of alignment files [*]")
	fs.StringVar(&c.Format, "format", "fasta", "alignment format: "+strings.Join(alnio.Names(), " | ")+" [fasta]")
	fs.StringVar(&c.Gap, "gap", "-", "gap symbol [-]")
	fs.StringVar(&c.Missing, "missing", "?", "missing-data symbol [?]")
	Slice(fs, &c.Include, "include", "taxon to keep (repeatable; conflicts with --exclude)")
	Slice(fs, &c.Exclude, "exclude", "taxon to drop (repeatable; conflicts with --include)")
	fs.IntVar(&c.Threads, "threads", 1, "number of worker threads (0 = all CPUs) [1]")
	fs.BoolVar(&c.Quiet, "quiet", false, "suppress warnings [false]")
	fs.BoolVar(&c.Verbose, "verbose", false, "per-file progress logging [false]")
	fs.StringVar(&c.LogPath, "log", "", "also write log lines to this file")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
}

// Validate checks the shared flags after parsing.
func (c *Common) Validate() error {
	if c.InDir == "" {
		return errors.New("--in directory is required")
	}
	if len(c.Gap) != 1 || len(c.Missing) != 1 {
		return errors.New("--gap and --missing must be single characters")
	}
	if c.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if _, err := alnio.Lookup(c.Format); err != nil {
		return err
	}
	return nil
}

// Symbols returns the configured gap and missing bytes.
func (c *Common) Symbols() (gap, missing byte) { return c.Gap[0], c.Missing[0] }

// Selection folds --include/--exclude into one taxon selection.
func (c *Common) Selection() (taxa.Selection, error) {
	return taxa.NewSelection(c.Include, c.Exclude)
}
