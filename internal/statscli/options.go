// internal/statscli/options.go
package statscli

import (
	"errors"
	"flag"

	"alnkit/internal/cli"
)

// Options holds all alnstats flags.
type Options struct {
	cli.Common

	OutFile string
}

// NewFlagSet returns the alnstats FlagSet with usage text.
func NewFlagSet() *flag.FlagSet {
	return cli.NewFlagSet("alnstats", "per-locus and aggregate missing-data report")
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	cli.Register(fs, &opt.Common)
	fs.StringVar(&opt.OutFile, "out", "-", "report file ('-' for stdout) [-]")
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
	if opt.OutFile == "" {
		return opt, errors.New("--out must not be empty")
	}
	if _, err := opt.Selection(); err != nil {
		return opt, err
	}
	return opt, nil
}
