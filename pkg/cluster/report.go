package cluster

// Solution is one retained candidate: the seed pair it grew from, the
// final cluster membership as node labels, and the power-saving score.
type Solution struct {
	Seed1 string   `json:"seed1"`
	Seed2 string   `json:"seed2"`
	R     []string `json:"r"`
	B     []string `json:"b"`
	Power float64  `json:"power"`

	// Candidate is the pair's position in [Pairs] order, useful for
	// reproducing a single solution without re-running the search.
	Candidate int `json:"candidate"`
}

// Size returns the combined cluster size r+b.
func (s *Solution) Size() int { return len(s.R) + len(s.B) }

// Result is the outcome of a [Search].
//
// R and B hold the primary partition: the best solution's clusters, or
// empty lists when no candidate qualified. In threshold mode Qualifiers
// holds every solution that cleared the threshold, in candidate order,
// and Best is the highest-power qualifier; in max mode Best is the single
// retained solution and Qualifiers is nil.
type Result struct {
	R []string `json:"r"`
	B []string `json:"b"`

	Best       *Solution   `json:"best,omitempty"`
	Qualifiers []*Solution `json:"qualifiers,omitempty"`

	Criterion  Criterion `json:"criterion"`
	Parameter  string    `json:"parameter"`
	Nodes      int       `json:"nodes"`
	Candidates int       `json:"candidates"`
}

// GSize returns the connector count of the primary partition:
// nodes not assigned to either cluster.
func (r *Result) GSize() int { return r.Nodes - len(r.R) - len(r.B) }

// Info returns the descriptive record sequence for the result.
//
// In max mode it is a flat sequence describing the best solution:
//
//	["Node1:", seed1, "Node2:", seed2, "R size:", r, "B size:", b, <metric>, value, ...]
//
// In threshold mode it is a sequence of such records, one per qualifier.
// An empty result yields an empty sequence. Scores are rounded to two
// decimals; full precision lives on [Solution.Power].
func (r *Result) Info() []any {
	threshold := r.Parameter != "" && r.Parameter != ParameterMax

	if !threshold {
		if r.Best == nil {
			return []any{}
		}
		return r.maxRecord(r.Best)
	}

	records := make([]any, 0, len(r.Qualifiers))
	for _, q := range r.Qualifiers {
		records = append(records, r.thresholdRecord(q))
	}
	return records
}

func (r *Result) maxRecord(s *Solution) []any {
	rec := []any{
		"Node1:", s.Seed1,
		"Node2:", s.Seed2,
		"R size:", len(s.R),
		"B size:", len(s.B),
	}
	if r.Criterion == CriterionSize {
		return append(rec,
			"Size R+B(max):", s.Size(),
			"P saving:", round2(s.Power),
		)
	}
	return append(rec, "P saving (max):", round2(s.Power))
}

func (r *Result) thresholdRecord(s *Solution) []any {
	rec := []any{
		"Node1:", s.Seed1,
		"Node2:", s.Seed2,
		"R size:", len(s.R),
		"B size:", len(s.B),
	}
	if r.Criterion == CriterionSize {
		rec = append(rec, "Size R+B:", s.Size())
	}
	return append(rec, "P saving:", round2(s.Power))
}
