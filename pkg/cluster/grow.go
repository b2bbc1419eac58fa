package cluster

import (
	"math/bits"

	"github.com/neurotopo/trisect/pkg/graph"
)

// maxGrowthRounds caps the number of growth rounds per candidate.
// Growth usually reaches a fixed point in a handful of rounds; the cap
// bounds runtime on graphs where cluster sizes oscillate.
const maxGrowthRounds = 15

// bitset is a fixed-width bitset over node indices.
type bitset []uint64

func newBitset(n int) bitset { return make(bitset, (n+63)/64) }

func (s bitset) set(i int)   { s[i>>6] |= 1 << (i & 63) }
func (s bitset) unset(i int) { s[i>>6] &^= 1 << (i & 63) }

func (s bitset) clear() {
	for i := range s {
		s[i] = 0
	}
}

// intersects reports whether a and b share any set bit.
func intersects(a, b bitset) bool {
	for i := range a {
		if a[i]&b[i] != 0 {
			return true
		}
	}
	return false
}

// Workspace provides reusable buffers for growing and filtering
// candidate clusters, avoiding repeated allocations across the O(n^2)
// candidates of a search. Create with [NewWorkspace] and reuse across
// calls to [Workspace.Grow] and [Workspace.FilterInter].
//
// The workspace densifies the graph's adjacency into bitset rows once at
// construction, making the quadratic conflict scans word-parallel
// regardless of how the underlying graph stores its edges.
//
// A workspace is not safe for concurrent use - each goroutine needs its
// own.
type Workspace struct {
	n   int
	adj []bitset // forward adjacency, one row per node

	rmask, bmask bitset // current cluster membership
	succR, succB bitset // successor unions for the running round
	r, b         []int  // cluster members in assignment order
	marked       []bool // sweep marks, cleaned after each use
	marks        []int  // nodes marked in the running scan
}

// NewWorkspace creates a workspace sized for g. The graph must not
// change for the lifetime of the workspace.
func NewWorkspace(g graph.Directed) *Workspace {
	n := g.NodeCount()
	ws := &Workspace{
		n:      n,
		adj:    make([]bitset, n),
		rmask:  newBitset(n),
		bmask:  newBitset(n),
		succR:  newBitset(n),
		succB:  newBitset(n),
		marked: make([]bool, n),
	}
	for v := range n {
		row := newBitset(n)
		for _, succ := range g.Successors(v) {
			row.set(succ)
		}
		ws.adj[v] = row
	}
	return ws
}

// Grow expands the seed pair (u, v) into clusters R and B.
//
// Both clusters start as single-element seed sets. Each round first
// assigns unique successors: a node reachable from exactly one cluster
// and not yet assigned anywhere joins that cluster. Nodes reachable from
// both sides stay unassigned, they behave as connectors. The round then
// prunes every member with an edge into its own cluster and an edge into
// the opposite cluster, again a connector signature. Rounds repeat while
// a round pushes either cluster past its previously recorded size, up to
// [maxGrowthRounds] rounds.
//
// The returned slices are sorted ascending and remain valid until the
// next Grow call on this workspace.
func (ws *Workspace) Grow(u, v int) (r, b []int) {
	return ws.grow(u, v, nil)
}

// grow is Grow with an optional per-round observer receiving the cluster
// state after each round's prune. The observer sees live buffers and must
// not retain or modify them.
func (ws *Workspace) grow(u, v int, observe func(r, b []int)) ([]int, []int) {
	ws.reset()
	ws.r = append(ws.r, u)
	ws.rmask.set(u)
	ws.b = append(ws.b, v)
	ws.bmask.set(v)

	sizeR, sizeB := 0, 0
	for round := 1; ; round++ {
		ws.growRound()
		if observe != nil {
			observe(ws.r, ws.b)
		}

		noGrowth := len(ws.r) <= sizeR && len(ws.b) <= sizeB
		if !noGrowth {
			sizeR, sizeB = len(ws.r), len(ws.b)
		}
		if noGrowth || round >= maxGrowthRounds {
			break
		}
	}

	sortInts(ws.r)
	sortInts(ws.b)
	return ws.r, ws.b
}

// growRound performs one expansion round: unique-successor assignment
// followed by the embedded conflict prune.
func (ws *Workspace) growRound() {
	ws.succR.clear()
	ws.succB.clear()
	for _, x := range ws.r {
		orInto(ws.succR, ws.adj[x])
	}
	for _, x := range ws.b {
		orInto(ws.succB, ws.adj[x])
	}

	// Unique successors of one side join that side; nodes reachable from
	// both sides or already assigned stay put.
	for wi := range ws.succR {
		add := ws.succR[wi] &^ ws.succB[wi] &^ ws.rmask[wi] &^ ws.bmask[wi]
		for add != 0 {
			i := wi<<6 + bits.TrailingZeros64(add)
			add &= add - 1
			ws.r = append(ws.r, i)
			ws.rmask.set(i)
		}
	}
	for wi := range ws.succB {
		add := ws.succB[wi] &^ ws.succR[wi] &^ ws.rmask[wi] &^ ws.bmask[wi]
		for add != 0 {
			i := wi<<6 + bits.TrailingZeros64(add)
			add &= add - 1
			ws.b = append(ws.b, i)
			ws.bmask.set(i)
		}
	}

	// Prune members connected into both clusters. Marks are computed
	// against the post-assignment snapshot, then swept in one pass.
	ws.marks = ws.marks[:0]
	for _, x := range ws.r {
		if intersects(ws.adj[x], ws.rmask) && intersects(ws.adj[x], ws.bmask) {
			ws.marked[x] = true
			ws.marks = append(ws.marks, x)
		}
	}
	for _, x := range ws.b {
		if intersects(ws.adj[x], ws.bmask) && intersects(ws.adj[x], ws.rmask) {
			ws.marked[x] = true
			ws.marks = append(ws.marks, x)
		}
	}
	ws.sweep()
}

// FilterInter strips members whose only directional signal points at the
// opposite cluster: no edge into their own cluster but at least one edge
// into the other. It operates on the workspace's current clusters,
// typically the state left by the preceding [Workspace.Grow] call, and
// returns the filtered clusters, sorted ascending and valid until the
// next Grow call.
//
// Applied to grown clusters the filter is idempotent: growth already
// removed every member connected into both sides, so filter survivors
// have no edges into the opposite cluster at all and a second pass finds
// nothing to remove.
func (ws *Workspace) FilterInter() (r, b []int) {
	ws.marks = ws.marks[:0]
	for _, x := range ws.r {
		if !intersects(ws.adj[x], ws.rmask) && intersects(ws.adj[x], ws.bmask) {
			ws.marked[x] = true
			ws.marks = append(ws.marks, x)
		}
	}
	for _, x := range ws.b {
		if !intersects(ws.adj[x], ws.bmask) && intersects(ws.adj[x], ws.rmask) {
			ws.marked[x] = true
			ws.marks = append(ws.marks, x)
		}
	}
	ws.sweep()

	sortInts(ws.r)
	sortInts(ws.b)
	return ws.r, ws.b
}

// sweep removes every marked node from both clusters and resets the
// marks.
func (ws *Workspace) sweep() {
	if len(ws.marks) == 0 {
		return
	}
	keepR := ws.r[:0]
	for _, x := range ws.r {
		if ws.marked[x] {
			ws.rmask.unset(x)
			continue
		}
		keepR = append(keepR, x)
	}
	ws.r = keepR

	keepB := ws.b[:0]
	for _, x := range ws.b {
		if ws.marked[x] {
			ws.bmask.unset(x)
			continue
		}
		keepB = append(keepB, x)
	}
	ws.b = keepB

	for _, x := range ws.marks {
		ws.marked[x] = false
	}
	ws.marks = ws.marks[:0]
}

// reset clears cluster state from the previous candidate.
func (ws *Workspace) reset() {
	for _, x := range ws.r {
		ws.rmask.unset(x)
	}
	for _, x := range ws.b {
		ws.bmask.unset(x)
	}
	ws.r = ws.r[:0]
	ws.b = ws.b[:0]
}

// load seeds the workspace with existing clusters, used by the package
// level FilterInter.
func (ws *Workspace) load(r, b []int) {
	ws.reset()
	for _, x := range r {
		ws.r = append(ws.r, x)
		ws.rmask.set(x)
	}
	for _, x := range b {
		ws.b = append(ws.b, x)
		ws.bmask.set(x)
	}
}

// orInto ors src into dst word by word.
func orInto(dst, src bitset) {
	for i := range dst {
		dst[i] |= src[i]
	}
}

func sortInts(s []int) {
	// Insertion sort: cluster lists are short and mostly ordered after
	// ascending bit iteration.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// Grow expands the seed pair (u, v) into clusters using a fresh
// workspace. Use a [Workspace] directly when evaluating many candidates.
// The seeds should be distinct and mutually non-adjacent, as produced by
// [Pairs].
func Grow(g graph.Directed, u, v int) (r, b []int) {
	ws := NewWorkspace(g)
	gr, gb := ws.Grow(u, v)
	return append([]int(nil), gr...), append([]int(nil), gb...)
}

// FilterInter applies the interconnection filter to existing clusters
// using a fresh workspace. Use [Workspace.FilterInter] when evaluating
// many candidates.
func FilterInter(g graph.Directed, r, b []int) (fr, fb []int) {
	ws := NewWorkspace(g)
	ws.load(r, b)
	gr, gb := ws.FilterInter()
	return append([]int(nil), gr...), append([]int(nil), gb...)
}
