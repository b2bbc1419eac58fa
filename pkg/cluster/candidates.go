package cluster

import "github.com/neurotopo/trisect/pkg/graph"

// Pair is a candidate seed pair: two distinct nodes with no edge between
// them in either direction.
type Pair struct {
	U, V int
}

// Pairs enumerates all candidate seed pairs of g in ascending (U, V)
// order with U < V. The order is stable for a given graph and is the
// tie-break order of the search: when two candidates score equally, the
// earlier pair wins.
//
// A graph with fewer than two nodes, or one where every node pair is
// adjacent, yields no candidates. Cost is O(n^2) edge tests.
func Pairs(g graph.Directed) []Pair {
	n := g.NodeCount()
	var pairs []Pair
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if !g.HasEdge(u, v) && !g.HasEdge(v, u) {
				pairs = append(pairs, Pair{U: u, V: v})
			}
		}
	}
	return pairs
}
