// internal/subsetcli/options.go
package subsetcli

import (
	"errors"
	"flag"

	"alnkit/internal/cli"
)

// Options holds all alnsubset flags.
type Options struct {
	cli.Common

	OutDir  string
	Sets    string
	MinProp float64
}

// NewFlagSet returns the alnsubset FlagSet with usage text.
func NewFlagSet() *flag.FlagSet {
	return cli.NewFlagSet("alnsubset", "project alignments into named taxon subsets")
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	cli.Register(fs, &opt.Common)
	fs.StringVar(&opt.OutDir, "out", "", "output directory (one subdirectory per subset) [*]")
	fs.StringVar(&opt.Sets, "sets", "", "sectioned taxon-set configuration file [*]")
	fs.Float64Var(&opt.MinProp, "min-prop", 0, "minimum retained proportion of a subset's taxa (0 = just the floor of 4) [0]")
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
	if opt.Sets == "" {
		return opt, errors.New("--sets configuration file is required")
	}
	if opt.MinProp < 0 || opt.MinProp > 1 {
		return opt, errors.New("--min-prop must be within [0, 1]")
	}
	if len(opt.Include) > 0 || len(opt.Exclude) > 0 {
		return opt, errors.New("--include/--exclude do not apply; membership comes from --sets")
	}
	return opt, nil
}
