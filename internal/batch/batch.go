// internal/batch/batch.go
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"alnkit-core/alnio"
)

// Job is one input alignment file. Locus is the filename with format
// (and .gz) extensions stripped; it keys every downstream report.
type Job struct {
	Path  string
	Locus string
}

// Outcome is one job's result after the pool joins. Err is per-file
// and never aborts the batch.
type Outcome[T any] struct {
	Job   Job
	Value T
	Err   error
}

// LocusName derives the locus identifier from a file path.
func LocusName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".gz")
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// List enumerates dir for files matching the format's extensions, in
// sorted order so every run sees the same loci in the same sequence.
func List(dir string, f alnio.Format) ([]Job, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var jobs []Job
	for _, e := range ents {
		if e.IsDir() || !alnio.Matches(f, e.Name()) {
			continue
		}
		p := filepath.Join(dir, e.Name())
		jobs = append(jobs, Job{Path: p, Locus: LocusName(p)})
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Path < jobs[j].Path })
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no %s files in %s", f.Name(), dir)
	}
	return jobs, nil
}

// Map runs work over jobs on a fixed pool of threads workers
// (0 = all CPUs) and joins before returning, so callers observe the
// complete result set. Outcomes keep job order regardless of worker
// scheduling. Each worker owns its outcome slots; there is no other
// shared state until the join.
func Map[T any](ctx context.Context, threads int, jobs []Job, work func(context.Context, Job) (T, error)) []Outcome[T] {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	if threads > len(jobs) {
		threads = len(jobs)
	}

	out := make([]Outcome[T], len(jobs))
	idx := make(chan int, len(jobs))
	for i := range jobs {
		idx <- i
	}
	close(idx)

	var wg sync.WaitGroup
	wg.Add(threads)
	for w := 0; w < threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-idx:
					if !ok {
						return
					}
					v, err := work(ctx, jobs[i])
					out[i] = Outcome[T]{Job: jobs[i], Value: v, Err: err}
				}
			}
		}()
	}
	wg.Wait()

	if ctx.Err() != nil {
		for i := range out {
			if out[i].Job.Path == "" {
				out[i] = Outcome[T]{Job: jobs[i], Err: ctx.Err()}
			}
		}
	}
	return out
}

// Summary is the end-of-batch accounting, emitted even when single
// files failed.
type Summary struct {
	Processed int
	Failed    int
	Dropped   []string
}

// Drop records one filtered-out locus.
func (s *Summary) Drop(locus string) { s.Dropped = append(s.Dropped, locus) }

// Line renders the one-line batch summary.
func (s *Summary) Line() string {
	if len(s.Dropped) == 0 {
		return fmt.Sprintf("batch: processed=%d failed=%d dropped=0", s.Processed, s.Failed)
	}
	return fmt.Sprintf("batch: processed=%d failed=%d dropped=%d (%s)",
		s.Processed, s.Failed, len(s.Dropped), strings.Join(s.Dropped, ", "))
}
