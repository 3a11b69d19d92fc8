// internal/catapp/app.go
package catapp

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"alnkit-core/align"
	"alnkit-core/alnio"
	"alnkit-core/concat"
	"alnkit/internal/batch"
	"alnkit/internal/catcli"
	"alnkit/internal/cmdutil"
	"alnkit/internal/version"
	"alnkit/internal/writers"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := catcli.NewFlagSet()
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(stdout)
		fs.Usage()
		return 0
	}
	opts, err := catcli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(stdout)
			fs.Usage()
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}
	if opts.Version {
		fmt.Fprintf(stdout, "alncat version %s\n", version.Version)
		return 0
	}

	log, err := cmdutil.NewLogger(stderr, opts.Quiet, opts.Verbose, opts.LogPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}
	defer func() { _ = log.Close() }()

	format, err := alnio.Lookup(opts.Format)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	sel, err := opts.Selection()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	// batch.List sorts by path, so the concatenation order — and the
	// resulting supermatrix bytes — are identical across runs.
	jobs, err := batch.List(opts.InDir, format)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	gap, missing := opts.Symbols()
	outcomes := batch.Map(parent, opts.Threads, jobs, func(_ context.Context, j batch.Job) (*align.Matrix, error) {
		m, err := alnio.ReadPath(j.Path, format, gap, missing)
		if err != nil {
			return nil, err
		}
		if del := sel.DeleteSet(m.Names()); len(del) > 0 {
			return m.CropDelete(del)
		}
		return m, nil
	})

	var (
		sum  batch.Summary
		loci []concat.Locus
	)
	for _, o := range outcomes {
		if o.Err != nil {
			var empty *align.EmptyResultError
			if errors.As(o.Err, &empty) {
				sum.Processed++
				sum.Drop(o.Job.Locus)
				log.Debugf("%s: dropped: no taxa retained", o.Job.Locus)
				continue
			}
			sum.Failed++
			log.Warnf("%s: skipped: %v", o.Job.Path, o.Err)
			continue
		}
		sum.Processed++
		loci = append(loci, concat.Locus{Name: o.Job.Locus, Matrix: o.Value})
	}
	if len(loci) == 0 {
		fmt.Fprintln(stderr, sum.Line())
		return 1
	}

	sm, err := concat.Concatenate(loci)
	if err != nil {
		// Duplicate locus names abort before any output is written.
		fmt.Fprintln(stderr, err)
		return 2
	}

	if err := alnio.WritePath(opts.OutFile, format, sm.Matrix); err != nil {
		if writers.IsBrokenPipe(err) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 3
	}
	if opts.Partitions != "" {
		fh, err := os.Create(opts.Partitions)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 3
		}
		if err := writers.WriteSets(opts.SetsSyntax, fh, sm.Charsets); err != nil {
			_ = fh.Close()
			fmt.Fprintln(stderr, err)
			return 3
		}
		if err := fh.Close(); err != nil {
			fmt.Fprintln(stderr, err)
			return 3
		}
	}

	log.Infof("supermatrix: %d taxa, %d characters, %d charsets",
		sm.Matrix.NumTaxa(), sm.Matrix.NumChars(), len(sm.Charsets))
	fmt.Fprintln(stderr, sum.Line())
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
