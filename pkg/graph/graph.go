package graph

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Directed is the capability surface the cluster search consumes.
// Nodes are dense integer indices in [0, NodeCount()). Implementations
// must be immutable for the duration of a search.
type Directed interface {
	// NodeCount returns the number of nodes in the graph.
	NodeCount() int

	// Label returns the external identifier of a node.
	// The id must be in [0, NodeCount()).
	Label(id int) string

	// HasEdge reports whether the directed edge from->to exists.
	HasEdge(from, to int) bool

	// Successors returns the targets of all edges leaving id, in
	// ascending index order. The returned slice is a read-only view.
	Successors(id int) []int

	// Predecessors returns the sources of all edges entering id, in
	// ascending index order. The returned slice is a read-only view.
	Predecessors(id int) []int
}

// bitrow is a fixed-width bitset over node indices.
type bitrow []uint64

func newBitrow(n int) bitrow { return make(bitrow, (n+63)/64) }

func (r bitrow) set(i int)      { r[i>>6] |= 1 << (i & 63) }
func (r bitrow) has(i int) bool { return r[i>>6]&(1<<(i&63)) != 0 }

// Dense is an immutable directed graph over dense integer node indices.
// Adjacency is stored twice: as bitset rows for O(1) edge tests and as
// sorted index slices for iteration. Parallel edges are collapsed at
// build time, so Dense is always a simple graph.
//
// The zero value is an empty graph; use [Builder], [ReadJSON], [Gnm], or
// [FromDirected] to construct populated instances. Dense is safe for
// concurrent readers.
type Dense struct {
	labels []string
	index  map[string]int
	fwd    []bitrow
	rev    []bitrow
	succ   [][]int
	pred   [][]int
	edges  int
}

// NodeCount returns the number of nodes in the graph.
func (d *Dense) NodeCount() int { return len(d.labels) }

// EdgeCount returns the number of logical edges (parallel edges count once).
func (d *Dense) EdgeCount() int { return d.edges }

// Label returns the external identifier of the node with the given index.
// The id must be in [0, NodeCount()).
func (d *Dense) Label(id int) string { return d.labels[id] }

// Index returns the dense index for an external label and whether the
// label exists in the graph.
func (d *Dense) Index(label string) (int, bool) {
	id, ok := d.index[label]
	return id, ok
}

// Labels returns a copy of all node labels in index order.
func (d *Dense) Labels() []string {
	out := make([]string, len(d.labels))
	copy(out, d.labels)
	return out
}

// HasEdge reports whether the directed edge from->to exists.
// Both ids must be in [0, NodeCount()).
func (d *Dense) HasEdge(from, to int) bool { return d.fwd[from].has(to) }

// Successors returns the targets of all edges leaving id in ascending
// index order. The returned slice is a read-only view into the graph.
func (d *Dense) Successors(id int) []int { return d.succ[id] }

// Predecessors returns the sources of all edges entering id in ascending
// index order. The returned slice is a read-only view into the graph.
func (d *Dense) Predecessors(id int) []int { return d.pred[id] }

// Reverse returns the graph with every edge direction flipped. Labels and
// indices are shared with the receiver; the operation is O(1) because a
// Dense already stores both adjacency directions.
func (d *Dense) Reverse() *Dense {
	return &Dense{
		labels: d.labels,
		index:  d.index,
		fwd:    d.rev,
		rev:    d.fwd,
		succ:   d.pred,
		pred:   d.succ,
		edges:  d.edges,
	}
}

// SelfLoopCount returns the number of v->v edges in the graph.
func (d *Dense) SelfLoopCount() int {
	count := 0
	for v := range d.labels {
		if d.fwd[v].has(v) {
			count++
		}
	}
	return count
}

// StripSelfLoops returns a copy of the graph without v->v edges.
// If the graph has no self-loops the receiver itself is returned.
// The cluster search treats self-loops as same-set edges, which distorts
// the conflict filters; loaders strip them before analysis.
func (d *Dense) StripSelfLoops() *Dense {
	if d.SelfLoopCount() == 0 {
		return d
	}

	n := len(d.labels)
	out := &Dense{
		labels: d.labels,
		index:  d.index,
		fwd:    make([]bitrow, n),
		rev:    make([]bitrow, n),
		succ:   make([][]int, n),
		pred:   make([][]int, n),
	}
	for v := range n {
		out.fwd[v] = newBitrow(n)
		out.rev[v] = newBitrow(n)
	}
	for u := range n {
		for _, v := range d.succ[u] {
			if u == v {
				continue
			}
			out.fwd[u].set(v)
			out.rev[v].set(u)
			out.succ[u] = append(out.succ[u], v)
			out.pred[v] = append(out.pred[v], u)
			out.edges++
		}
	}
	return out
}

// Fingerprint returns a stable hex digest of the graph structure: node
// count, labels in index order, and edges in ascending (from, to) order.
// Two graphs have equal fingerprints exactly when they have the same
// labelled structure. Used for cache keys and stored run records.
func (d *Dense) Fingerprint() string {
	h := sha256.New()
	var buf [8]byte

	binary.BigEndian.PutUint64(buf[:], uint64(len(d.labels)))
	h.Write(buf[:])
	for _, label := range d.labels {
		h.Write([]byte(label))
		h.Write([]byte{0})
	}
	for u := range d.succ {
		for _, v := range d.succ[u] {
			binary.BigEndian.PutUint64(buf[:], uint64(u))
			h.Write(buf[:])
			binary.BigEndian.PutUint64(buf[:], uint64(v))
			h.Write(buf[:])
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}
