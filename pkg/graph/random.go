package graph

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// Gnm generates a directed G(n,m) random graph: n nodes labelled "0"
// through "n-1" and m distinct directed edges drawn uniformly from all
// ordered pairs of distinct nodes. Self-loops are never generated.
//
// The same seed always produces the same graph, which keeps randomized
// experiments reproducible. Returns an error if n is negative or m
// exceeds n*(n-1), the number of possible directed edges.
func Gnm(n, m int, seed uint64) (*Dense, error) {
	if n < 0 {
		return nil, fmt.Errorf("node count must not be negative: %d", n)
	}
	maxEdges := n * (n - 1)
	if m < 0 || m > maxEdges {
		return nil, fmt.Errorf("edge count %d out of range [0, %d] for %d nodes", m, maxEdges, n)
	}

	b := NewBuilder()
	for v := range n {
		if _, err := b.AddNode(strconv.Itoa(v)); err != nil {
			return nil, err
		}
	}
	d := b.Build()

	// Dense graphs sample poorly by rejection; above half capacity, sample
	// the complement edge set and invert the membership test below.
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	complement := m > maxEdges/2
	count := m
	if complement {
		count = maxEdges - m
	}

	sampled := newBitrow(n * n)
	for picked := 0; picked < count; {
		u := rng.IntN(n)
		v := rng.IntN(n)
		if u == v || sampled.has(u*n+v) {
			continue
		}
		sampled.set(u*n + v)
		picked++
	}

	// Emit in ascending (u, v) order so adjacency lists come out sorted.
	for u := range n {
		for v := range n {
			if u == v || sampled.has(u*n+v) == complement {
				continue
			}
			d.fwd[u].set(v)
			d.rev[v].set(u)
			d.succ[u] = append(d.succ[u], v)
			d.pred[v] = append(d.pred[v], u)
			d.edges++
		}
	}

	return d, nil
}
