// internal/subsetapp/app.go
package subsetapp

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"alnkit-core/alnio"
	"alnkit-core/subset"
	"alnkit-core/taxa"
	"alnkit/internal/batch"
	"alnkit/internal/cmdutil"
	"alnkit/internal/subsetcli"
	"alnkit/internal/version"
	"alnkit/internal/writers"
)

// DropReportName lists "subset/locus" pairs that fell below the
// retention gate, one per line, in the output directory.
const DropReportName = "dropped_loci.txt"

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := subsetcli.NewFlagSet()
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(stdout)
		fs.Usage()
		return 0
	}
	opts, err := subsetcli.ParseArgs(fs, argv)
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
		fmt.Fprintf(stdout, "alnsubset version %s\n", version.Version)
		return 0
	}

	log, err := cmdutil.NewLogger(stderr, opts.Quiet, opts.Verbose, opts.LogPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}
	defer func() { _ = log.Close() }()

	// Subset configuration is validated in full before any file is
	// opened; bad configuration never half-processes a batch.
	sets, err := taxa.LoadSets(opts.Sets)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	part, err := subset.New(sets, opts.MinProp)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	format, err := alnio.Lookup(opts.Format)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	jobs, err := batch.List(opts.InDir, format)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	for _, s := range part.Sets() {
		if err := os.MkdirAll(filepath.Join(opts.OutDir, s.Name), 0o755); err != nil {
			fmt.Fprintln(stderr, err)
			return 3
		}
	}

	gap, missing := opts.Symbols()
	outcomes := batch.Map(parent, opts.Threads, jobs, func(_ context.Context, j batch.Job) ([]subset.Result, error) {
		m, err := alnio.ReadPath(j.Path, format, gap, missing)
		if err != nil {
			return nil, err
		}
		return part.Project(m)
	})

	// Aggregation after the join barrier is single-threaded: it owns
	// the drop accounting and all file writes.
	var sum batch.Summary
	ext := format.Exts()[0]
	wrote := 0
	for _, o := range outcomes {
		if o.Err != nil {
			sum.Failed++
			log.Warnf("%s: skipped: %v", o.Job.Path, o.Err)
			continue
		}
		sum.Processed++
		for _, r := range o.Value {
			if !r.Kept {
				sum.Drop(r.Subset + "/" + o.Job.Locus)
				log.Debugf("%s: %s: %d taxa < %d", o.Job.Locus, r.Subset, r.Retained, r.MinRequired)
				continue
			}
			p := filepath.Join(opts.OutDir, r.Subset, o.Job.Locus+ext)
			if err := alnio.WritePath(p, format, r.Matrix); err != nil {
				fmt.Fprintln(stderr, err)
				return 3
			}
			wrote++
		}
	}

	fh, err := os.Create(filepath.Join(opts.OutDir, DropReportName))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}
	if err := writers.WriteList(fh, sum.Dropped); err != nil {
		_ = fh.Close()
		fmt.Fprintln(stderr, err)
		return 3
	}
	if err := fh.Close(); err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}

	fmt.Fprintln(stderr, sum.Line())
	if wrote == 0 {
		return 1
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
