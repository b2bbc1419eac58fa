package cluster

import (
	"strconv"

	"github.com/neurotopo/trisect/pkg/errors"
)

// Criterion selects the objective the search optimizes.
type Criterion string

const (
	// CriterionPower scores partitions by the power-saving percentage.
	CriterionPower Criterion = "power"

	// CriterionSize scores partitions by the combined cluster size r+b.
	CriterionSize Criterion = "size"
)

// ParameterMax requests the single best solution instead of a threshold
// collection.
const ParameterMax = "max"

// DefaultProgressEvery is the candidate cadence for progress callbacks
// when [Options.ProgressEvery] is zero.
const DefaultProgressEvery = 40

// ProgressFunc observes search progress. It receives the number of
// candidates processed so far and the total candidate count. When the
// search runs with multiple workers the callback may be invoked from
// several goroutines; implementations must be safe for that.
type ProgressFunc func(done, total int)

// Options configures a cluster search. The zero value runs a sequential
// power/max search with no progress reporting.
type Options struct {
	// Criterion is the objective to optimize. Defaults to [CriterionPower].
	Criterion Criterion

	// Parameter is either [ParameterMax] for best-only selection or a
	// numeric threshold string. With a threshold, every candidate whose
	// score strictly exceeds it is collected. Defaults to [ParameterMax].
	Parameter string

	// ExcludeInter applies the interconnection filter to every grown
	// candidate before scoring.
	ExcludeInter bool

	// Workers is the number of goroutines evaluating candidates.
	// Values below 2 run the reference sequential search.
	Workers int

	// Progress, when non-nil, is invoked every ProgressEvery candidates
	// and once at completion.
	Progress ProgressFunc

	// ProgressEvery is the candidate cadence for Progress calls.
	// Defaults to [DefaultProgressEvery].
	ProgressEvery int
}

// withDefaults returns a copy of o with empty fields set to their
// documented defaults.
func (o Options) withDefaults() Options {
	if o.Criterion == "" {
		o.Criterion = CriterionPower
	}
	if o.Parameter == "" {
		o.Parameter = ParameterMax
	}
	if o.ProgressEvery <= 0 {
		o.ProgressEvery = DefaultProgressEvery
	}
	return o
}

// threshold parses the numeric parameter. The second return is false when
// the parameter requests max mode.
func (o Options) threshold() (float64, bool, error) {
	if o.Parameter == "" || o.Parameter == ParameterMax {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(o.Parameter, 64)
	if err != nil {
		return 0, false, errors.New(errors.ErrCodeInvalidConfiguration,
			"parameter must be %q or numeric, got %q", ParameterMax, o.Parameter)
	}
	return v, true, nil
}

// Validate checks the options for configuration errors. Search calls this
// before any work begins; callers that build options from user input can
// call it earlier for prompt feedback.
func (o Options) Validate() error {
	switch o.Criterion {
	case "", CriterionPower, CriterionSize:
	default:
		return errors.New(errors.ErrCodeInvalidConfiguration,
			"criterion must be %q or %q, got %q", CriterionPower, CriterionSize, o.Criterion)
	}
	_, _, err := o.threshold()
	return err
}
