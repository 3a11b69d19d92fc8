// internal/catcli/options.go
package catcli

import (
	"errors"
	"flag"

	"alnkit/internal/cli"
	"alnkit/internal/writers"
)

// Options holds all alncat flags.
type Options struct {
	cli.Common

	OutFile    string
	Partitions string
	SetsSyntax string
}

// NewFlagSet returns the alncat FlagSet with usage text.
func NewFlagSet() *flag.FlagSet {
	return cli.NewFlagSet("alncat", "concatenate per-locus alignments into a supermatrix")
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	cli.Register(fs, &opt.Common)
	fs.StringVar(&opt.OutFile, "out", "", "output supermatrix file ('-' for stdout) [*]")
	fs.StringVar(&opt.Partitions, "partitions", "", "charset sidecar file to write")
	fs.StringVar(&opt.SetsSyntax, "sets-syntax", "raxml", "charset sidecar syntax: "+writers.SetsSyntaxes()+" [raxml]")
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
		return opt, errors.New("--out file is required")
	}
	if _, ok := writers.SetsWriters[opt.SetsSyntax]; !ok {
		return opt, errors.New("--sets-syntax must be one of: " + writers.SetsSyntaxes())
	}
	if _, err := opt.Selection(); err != nil {
		return opt, err
	}
	return opt, nil
}
