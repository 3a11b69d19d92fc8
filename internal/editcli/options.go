// internal/editcli/options.go
package editcli

import (
	"errors"
	"flag"

	"alnkit/internal/cli"
)

// Options holds all alned flags.
type Options struct {
	cli.Common

	OutDir     string
	RemoveList string

	Trim       string
	TrimTarget string

	KeepGapCols bool
	MinTaxa     int
	MinLength   int
}

// NewFlagSet returns the alned FlagSet with usage text.
func NewFlagSet() *flag.FlagSet {
	return cli.NewFlagSet("alned", "batch alignment-matrix editor")
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	cli.Register(fs, &opt.Common)
	fs.StringVar(&opt.OutDir, "out", "", "output directory for edited alignments [*]")
	fs.StringVar(&opt.RemoveList, "remove-list", "", "per-locus deletion list (locus taxon...)")
	fs.StringVar(&opt.Trim, "trim", "", "end-trim reference: taxon label or proportion in (0,0.5)")
	fs.StringVar(&opt.TrimTarget, "trim-target", "ALL", "taxon to trim, or ALL [ALL]")
	fs.BoolVar(&opt.KeepGapCols, "keep-gap-cols", false, "keep columns that are gap/missing in every taxon [false]")
	fs.IntVar(&opt.MinTaxa, "min-taxa", 0, "drop loci with fewer taxa after editing (0 = keep all) [0]")
	fs.IntVar(&opt.MinLength, "min-length", 0, "drop loci shorter than this after editing (0 = keep all) [0]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	if err := opt.Common.Validate(); err != nil {
		return opt, err
	}
	if opt.OutDir == "" {
		return opt, errors.New("--out directory is required")
	}
	if opt.MinTaxa < 0 {
		return opt, errors.New("--min-taxa must be ≥ 0")
	}
	if opt.MinLength < 0 {
		return opt, errors.New("--min-length must be ≥ 0")
	}
	if opt.TrimTarget == "" {
		return opt, errors.New("--trim-target must not be empty")
	}
	if _, err := opt.Selection(); err != nil {
		return opt, err
	}
	return opt, nil
}
