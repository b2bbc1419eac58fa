package cluster

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/neurotopo/trisect/pkg/graph"
)

// Search evaluates every candidate seed pair of g and returns the
// retained solutions per opts.
//
// Candidates are processed in [Pairs] order: each is grown with
// [Workspace.Grow], optionally filtered with [Workspace.FilterInter],
// skipped entirely if either cluster came out empty, and scored. All
// selection comparisons are strict, so the earliest candidate wins ties.
// A graph with no candidate pairs completes successfully with an empty
// result.
//
// Invalid options fail with an INVALID_CONFIGURATION error before any
// work begins. Cancelling ctx aborts between candidates and returns the
// context error.
func Search(ctx context.Context, g graph.Directed, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	threshold, thresholdMode, _ := opts.threshold()

	pairs := Pairs(g)
	res := &Result{
		R:          []string{},
		B:          []string{},
		Criterion:  opts.Criterion,
		Parameter:  opts.Parameter,
		Nodes:      g.NodeCount(),
		Candidates: len(pairs),
	}
	if len(pairs) == 0 {
		if opts.Progress != nil {
			opts.Progress(0, 0)
		}
		return res, nil
	}

	var (
		sel *selector
		err error
	)
	if opts.Workers > 1 {
		sel, err = searchParallel(ctx, g, opts, pairs, threshold, thresholdMode)
	} else {
		sel = newSelector(opts.Criterion, threshold, thresholdMode)
		var done atomic.Int64
		err = sel.scan(ctx, g, opts, pairs, 0, len(pairs), &done)
	}
	if err != nil {
		return nil, err
	}

	if opts.Progress != nil {
		opts.Progress(len(pairs), len(pairs))
	}

	res.Best = sel.best
	res.Qualifiers = sel.qualifiers
	if sel.best != nil {
		res.R = sel.best.R
		res.B = sel.best.B
	}
	return res, nil
}

// searchParallel shards the candidate list into contiguous chunks, scans
// them concurrently, and merges the per-worker selectors in ascending
// candidate order. Strict comparisons during the merge reproduce the
// sequential tie-break exactly.
func searchParallel(ctx context.Context, g graph.Directed, opts Options, pairs []Pair, threshold float64, thresholdMode bool) (*selector, error) {
	workers := min(opts.Workers, len(pairs))
	chunkSize := (len(pairs) + workers - 1) / workers

	var sels []*selector
	var done atomic.Int64
	eg, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(pairs); start += chunkSize {
		end := min(start+chunkSize, len(pairs))
		sel := newSelector(opts.Criterion, threshold, thresholdMode)
		sels = append(sels, sel)
		chunk := pairs[start:end]
		offset := start
		eg.Go(func() error {
			return sel.scan(ctx, g, opts, chunk, offset, len(pairs), &done)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	merged := sels[0]
	for _, sel := range sels[1:] {
		merged.merge(sel)
	}
	return merged, nil
}

// selector applies the selection policy of one (criterion, parameter)
// configuration as candidates stream through it.
type selector struct {
	criterion     Criterion
	threshold     float64
	thresholdMode bool

	best       *Solution
	bestPower  float64
	bestSize   int
	qualifiers []*Solution
}

func newSelector(criterion Criterion, threshold float64, thresholdMode bool) *selector {
	return &selector{criterion: criterion, threshold: threshold, thresholdMode: thresholdMode}
}

// scan evaluates a contiguous candidate chunk. offset is the chunk's
// position in the full candidate list, done the shared completion
// counter driving progress callbacks.
func (sel *selector) scan(ctx context.Context, g graph.Directed, opts Options, chunk []Pair, offset, total int, done *atomic.Int64) error {
	ws := NewWorkspace(g)
	for i, p := range chunk {
		if err := ctx.Err(); err != nil {
			return err
		}

		r, b := ws.Grow(p.U, p.V)
		if opts.ExcludeInter {
			r, b = ws.FilterInter()
		}
		if len(r) > 0 && len(b) > 0 {
			sel.consider(g, offset+i, p, r, b, Power(g.NodeCount(), len(r), len(b)))
		}

		n := done.Add(1)
		if opts.Progress != nil && n%int64(opts.ProgressEvery) == 0 {
			opts.Progress(int(n), total)
		}
	}
	return nil
}

// consider applies the selection policy to one evaluated candidate with
// non-empty clusters. r and b are live workspace buffers; labels are
// materialized only when the candidate is retained.
func (sel *selector) consider(g graph.Directed, idx int, p Pair, r, b []int, power float64) {
	switch {
	case sel.criterion == CriterionSize && !sel.thresholdMode:
		if len(r)+len(b) > sel.bestSize {
			sel.bestSize = len(r) + len(b)
			sel.bestPower = power
			sel.best = newSolution(g, idx, p, r, b, power)
		}

	case sel.criterion == CriterionSize && sel.thresholdMode:
		if float64(len(r)+len(b)) > sel.threshold {
			s := newSolution(g, idx, p, r, b, power)
			sel.qualifiers = append(sel.qualifiers, s)
			if power > sel.bestPower {
				sel.bestPower = power
				sel.best = s
			}
		}

	case sel.thresholdMode: // power threshold
		if power > sel.threshold {
			s := newSolution(g, idx, p, r, b, power)
			sel.qualifiers = append(sel.qualifiers, s)
			if power > sel.bestPower {
				sel.bestPower = power
				sel.best = s
			}
		}

	default: // power max
		if power > sel.bestPower {
			sel.bestPower = power
			sel.best = newSolution(g, idx, p, r, b, power)
		}
	}
}

// merge folds another selector into sel. The other selector must cover a
// candidate range strictly after sel's; strict comparisons then keep the
// earlier candidate on ties, matching the sequential scan.
func (sel *selector) merge(other *selector) {
	sel.qualifiers = append(sel.qualifiers, other.qualifiers...)
	if other.best == nil {
		return
	}
	if sel.best == nil {
		sel.best, sel.bestPower, sel.bestSize = other.best, other.bestPower, other.bestSize
		return
	}

	better := other.best.Power > sel.best.Power
	if sel.criterion == CriterionSize && !sel.thresholdMode {
		better = other.best.Size() > sel.best.Size()
	}
	if better {
		sel.best, sel.bestPower, sel.bestSize = other.best, other.bestPower, other.bestSize
	}
}

func newSolution(g graph.Directed, idx int, p Pair, r, b []int, power float64) *Solution {
	return &Solution{
		Seed1:     g.Label(p.U),
		Seed2:     g.Label(p.V),
		R:         labelsOf(g, r),
		B:         labelsOf(g, b),
		Power:     power,
		Candidate: idx,
	}
}

func labelsOf(g graph.Directed, ids []int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = g.Label(id)
	}
	return out
}
