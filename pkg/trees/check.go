package trees

import (
	"context"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/matzehuels/chromatic/pkg/csf"
	"github.com/matzehuels/chromatic/pkg/graph"
)

// Cohort is a set of free trees sharing a degree sequence.
type Cohort struct {
	DegreeSequence []int
	Trees          []*graph.Graph
}

// Cohorts groups trees by degree sequence. Cohorts are ordered by degree
// sequence, largest first; trees keep their input order.
func Cohorts(trees []*graph.Graph) []Cohort {
	index := make(map[string]int)
	var out []Cohort
	for _, t := range trees {
		seq := t.DegreeSequence()
		key := seqKey(seq)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, Cohort{DegreeSequence: seq})
		}
		out[i].Trees = append(out[i].Trees, t)
	}
	slices.SortFunc(out, func(a, b Cohort) int { return slices.Compare(b.DegreeSequence, a.DegreeSequence) })
	return out
}

func seqKey(seq []int) string {
	b := make([]byte, 0, 3*len(seq))
	for _, d := range seq {
		b = append(b, byte(d), ',')
	}
	return string(b)
}

// Collision is a pair of non-isomorphic trees with the same chromatic
// symmetric function.
type Collision struct {
	A, B  *graph.Graph
	Table *csf.Table
}

// Report summarizes a run of [Check].
type Report struct {
	Order      int           // vertices per tree
	Trees      int           // free trees on Order vertices
	Cohorts    int           // distinct degree sequences
	Candidates int           // trees in cohorts with more than one tree
	Pairs      int           // tree pairs compared
	Collisions []Collision   // empty when the conjecture holds for Order
	Duration   time.Duration // wall time
}

// Holds reports whether no collision was found.
func (r *Report) Holds() bool { return len(r.Collisions) == 0 }

type checkOptions struct {
	workers  int
	progress func(done, total int)
}

// Option configures [Check].
type Option func(*checkOptions)

// WithWorkers sets the number of goroutines computing tables. The default
// is runtime.NumCPU().
func WithWorkers(k int) Option {
	return func(o *checkOptions) { o.workers = k }
}

// WithProgress registers a callback invoked after each tree's table is
// computed. Calls are serialized.
func WithProgress(fn func(done, total int)) Option {
	return func(o *checkOptions) { o.progress = fn }
}

type job struct {
	cohort, index int
	tree          *graph.Graph
}

type result struct {
	job
	table *csf.Table
	err   error
}

// Check enumerates the free trees on n vertices and compares the chromatic
// symmetric functions of every two trees sharing a degree sequence.
func Check(ctx context.Context, n int, opts ...Option) (*Report, error) {
	o := checkOptions{workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(&o)
	}
	start := time.Now()

	free := Free(n)
	cohorts := Cohorts(free)
	report := &Report{Order: n, Trees: len(free), Cohorts: len(cohorts)}

	var jobs []job
	tables := make([][]*csf.Table, len(cohorts))
	for ci, c := range cohorts {
		if len(c.Trees) < 2 {
			continue
		}
		tables[ci] = make([]*csf.Table, len(c.Trees))
		report.Pairs += len(c.Trees) * (len(c.Trees) - 1) / 2
		for ti, t := range c.Trees {
			jobs = append(jobs, job{cohort: ci, index: ti, tree: t})
		}
	}
	report.Candidates = len(jobs)

	if err := runJobs(ctx, jobs, max(o.workers, 1), func(r result) {
		tables[r.cohort][r.index] = r.table
	}, o.progress); err != nil {
		return nil, err
	}

	report.Collisions = collisions(cohorts, tables)
	report.Duration = time.Since(start)
	return report, nil
}

// collisions compares the tables of every two trees inside each cohort.
// tables[i][j] belongs to cohorts[i].Trees[j].
func collisions(cohorts []Cohort, tables [][]*csf.Table) []Collision {
	var out []Collision
	for ci, c := range cohorts {
		ts := tables[ci]
		for i := range ts {
			for j := i + 1; j < len(ts); j++ {
				if ts[i].Equal(ts[j]) {
					out = append(out, Collision{A: c.Trees[i], B: c.Trees[j], Table: ts[i]})
				}
			}
		}
	}
	return out
}

// runJobs computes a table per job in a fixed pool of workers and hands each
// result to collect on the calling goroutine.
func runJobs(ctx context.Context, jobs []job, workers int, collect func(result), progress func(done, total int)) error {
	if len(jobs) == 0 {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := make(chan job)
	results := make(chan result, workers)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				t, err := csf.Compute(ctx, j.tree)
				results <- result{job: j, table: t, err: err}
			}
		}()
	}
	go func() {
		defer close(queue)
		for _, j := range jobs {
			select {
			case queue <- j:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	done := 0
	var firstErr error
	for r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
				cancel()
			}
			continue
		}
		collect(r)
		done++
		if progress != nil {
			progress(done, len(jobs))
		}
	}
	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
