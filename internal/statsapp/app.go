// internal/statsapp/app.go
package statsapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"alnkit-core/align"
	"alnkit-core/alnio"
	"alnkit-core/missing"
	"alnkit/internal/batch"
	"alnkit/internal/cmdutil"
	"alnkit/internal/statscli"
	"alnkit/internal/version"
	"alnkit/internal/writers"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := statscli.NewFlagSet()
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(stdout)
		fs.Usage()
		return 0
	}
	opts, err := statscli.ParseArgs(fs, argv)
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
		fmt.Fprintf(stdout, "alnstats version %s\n", version.Version)
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
	jobs, err := batch.List(opts.InDir, format)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	gap, missingSym := opts.Symbols()
	outcomes := batch.Map(parent, opts.Threads, jobs, func(_ context.Context, j batch.Job) (*align.Matrix, error) {
		m, err := alnio.ReadPath(j.Path, format, gap, missingSym)
		if err != nil {
			return nil, err
		}
		if del := sel.DeleteSet(m.Names()); len(del) > 0 {
			return m.CropDelete(del)
		}
		return m, nil
	})

	// Aggregation runs after the join, in job order, so taxon columns
	// come out in a stable first-seen order.
	var sum batch.Summary
	summary := missing.Collect(nil)
	for _, o := range outcomes {
		if o.Err != nil {
			sum.Failed++
			log.Warnf("%s: skipped: %v", o.Job.Path, o.Err)
			continue
		}
		sum.Processed++
		summary.Add(o.Job.Locus, o.Value)
	}
	if sum.Processed == 0 {
		fmt.Fprintln(stderr, sum.Line())
		return 1
	}

	out := io.Writer(stdout)
	var fh *os.File
	if opts.OutFile != "-" {
		fh, err = os.Create(opts.OutFile)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 3
		}
		out = fh
	}
	bw := bufio.NewWriter(out)
	werr := writers.WriteMissingTSV(bw, summary)
	if werr == nil {
		werr = bw.Flush()
	}
	if werr == nil && fh != nil {
		werr = fh.Close()
	}
	if werr != nil {
		if writers.IsBrokenPipe(werr) {
			return 0
		}
		fmt.Fprintln(stderr, werr)
		return 3
	}

	fmt.Fprintln(stderr, sum.Line())
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
