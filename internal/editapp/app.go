// internal/editapp/app.go
package editapp

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"alnkit-core/align"
	"alnkit-core/alnio"
	"alnkit-core/strip"
	"alnkit-core/taxa"
	"alnkit-core/trim"
	"alnkit/internal/batch"
	"alnkit/internal/cmdutil"
	"alnkit/internal/editcli"
	"alnkit/internal/version"
	"alnkit/internal/writers"
)

// DropReportName is the per-batch list of filtered-out loci, written
// into the output directory.
const DropReportName = "dropped_loci.txt"

type result struct {
	wrote   bool
	dropped string // non-empty: drop reason, a filtering outcome
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := editcli.NewFlagSet()
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(stdout)
		fs.Usage()
		return 0
	}
	opts, err := editcli.ParseArgs(fs, argv)
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
		fmt.Fprintf(stdout, "alned version %s\n", version.Version)
		return 0
	}

	log, err := cmdutil.NewLogger(stderr, opts.Quiet, opts.Verbose, opts.LogPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}
	defer func() { _ = log.Close() }()

	// Resolve all configuration before touching any file.
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
	var ref *trim.Reference
	if opts.Trim != "" {
		r, err := trim.ParseReference(opts.Trim)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		ref = &r
	}
	removeList := map[string][]string{}
	if opts.RemoveList != "" {
		removeList, err = taxa.LoadRemoveList(opts.RemoveList)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
	}

	jobs, err := batch.List(opts.InDir, format)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}

	gap, missing := opts.Symbols()
	ext := format.Exts()[0]

	outcomes := batch.Map(parent, opts.Threads, jobs, func(_ context.Context, j batch.Job) (result, error) {
		m, err := alnio.ReadPath(j.Path, format, gap, missing)
		if err != nil {
			return result{}, err
		}
		edited, res, err := editOne(m, j.Locus, sel, removeList, ref, opts)
		if err != nil || res.dropped != "" {
			return res, err
		}
		if err := alnio.WritePath(filepath.Join(opts.OutDir, j.Locus+ext), format, edited); err != nil {
			return result{}, err
		}
		res.wrote = true
		return res, nil
	})

	// Join done; assemble the batch summary and the drop report.
	var sum batch.Summary
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			sum.Failed++
			log.Warnf("%s: skipped: %v", o.Job.Path, o.Err)
		case o.Value.dropped != "":
			sum.Processed++
			sum.Drop(o.Job.Locus)
			log.Debugf("%s: dropped: %s", o.Job.Locus, o.Value.dropped)
		default:
			sum.Processed++
			log.Debugf("%s: written", o.Job.Locus)
		}
	}
	if err := writeDropReport(opts.OutDir, sum.Dropped); err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}

	fmt.Fprintln(stderr, sum.Line())
	if sum.Processed == 0 {
		return 1
	}
	return 0
}

// editOne applies the per-locus pipeline: taxon filtering first, then
// trimming, then gap-only column stripping, then the size gates.
func editOne(m *align.Matrix, locus string, sel taxa.Selection, removeList map[string][]string, ref *trim.Reference, opts editcli.Options) (*align.Matrix, result, error) {
	del := sel.DeleteSet(m.Names())
	for _, t := range removeList[locus] {
		if m.Has(t) {
			del[t] = true
		}
	}
	if len(del) > 0 {
		cropped, err := m.CropDelete(del)
		if err != nil {
			var empty *align.EmptyResultError
			if errors.As(err, &empty) {
				return nil, result{dropped: "no taxa retained"}, nil
			}
			return nil, result{}, err
		}
		m = cropped
	}

	if ref != nil {
		l, r, err := ref.Extents(m)
		if err != nil {
			return nil, result{}, err
		}
		if err := trim.Apply(m, opts.TrimTarget, l, r); err != nil {
			return nil, result{}, err
		}
	}
	if !opts.KeepGapCols {
		strip.Strip(m, true)
	}

	if opts.MinTaxa > 0 && m.NumTaxa() < opts.MinTaxa {
		return nil, result{dropped: fmt.Sprintf("%d taxa < min-taxa %d", m.NumTaxa(), opts.MinTaxa)}, nil
	}
	if opts.MinLength > 0 && m.NumChars() < opts.MinLength {
		return nil, result{dropped: fmt.Sprintf("%d characters < min-length %d", m.NumChars(), opts.MinLength)}, nil
	}
	return m, result{}, nil
}

func writeDropReport(dir string, dropped []string) error {
	fh, err := os.Create(filepath.Join(dir, DropReportName))
	if err != nil {
		return err
	}
	if err := writers.WriteList(fh, dropped); err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
