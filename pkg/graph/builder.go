package graph

import (
	"errors"
	"slices"
)

var (
	// ErrEmptyLabel is returned by [Builder.AddNode], [Builder.Ensure], and
	// [Builder.AddEdge] when a node label is empty. All nodes must have
	// non-empty labels.
	ErrEmptyLabel = errors.New("node label must not be empty")

	// ErrDuplicateLabel is returned by [Builder.AddNode] when a node with
	// the same label was already added. Labels must be unique.
	ErrDuplicateLabel = errors.New("duplicate node label")

	// ErrUnknownLabel is returned by [Builder.AddEdge] when an endpoint
	// label has not been added to the builder.
	ErrUnknownLabel = errors.New("unknown node label")
)

// Builder assembles a [Dense] from labelled nodes and edges.
// Parallel edges collapse into a single logical edge; self-loops are kept
// as given (use [Dense.StripSelfLoops] after building to drop them).
//
// The zero value is not usable - use [NewBuilder]. Builder is not safe
// for concurrent use.
type Builder struct {
	labels []string
	index  map[string]int
	adj    []map[int]struct{}
}

// NewBuilder creates an empty graph builder.
func NewBuilder() *Builder {
	return &Builder{index: make(map[string]int)}
}

// NodeCount returns the number of nodes added so far.
func (b *Builder) NodeCount() int { return len(b.labels) }

// AddNode adds a node with the given label and returns its dense index.
// Returns ErrEmptyLabel for an empty label or ErrDuplicateLabel if the
// label was already added.
func (b *Builder) AddNode(label string) (int, error) {
	if label == "" {
		return 0, ErrEmptyLabel
	}
	if _, exists := b.index[label]; exists {
		return 0, ErrDuplicateLabel
	}
	id := len(b.labels)
	b.labels = append(b.labels, label)
	b.index[label] = id
	b.adj = append(b.adj, nil)
	return id, nil
}

// Ensure returns the index for label, adding the node first if needed.
// Returns ErrEmptyLabel for an empty label. Loaders that discover nodes
// implicitly from edge lines use Ensure instead of AddNode.
func (b *Builder) Ensure(label string) (int, error) {
	if label == "" {
		return 0, ErrEmptyLabel
	}
	if id, exists := b.index[label]; exists {
		return id, nil
	}
	return b.AddNode(label)
}

// AddEdge records the directed edge from->to between two existing nodes.
// Adding the same edge twice is a no-op. Returns ErrUnknownLabel if either
// endpoint has not been added.
func (b *Builder) AddEdge(from, to string) error {
	if from == "" || to == "" {
		return ErrEmptyLabel
	}
	u, ok := b.index[from]
	if !ok {
		return ErrUnknownLabel
	}
	v, ok := b.index[to]
	if !ok {
		return ErrUnknownLabel
	}
	if b.adj[u] == nil {
		b.adj[u] = make(map[int]struct{})
	}
	b.adj[u][v] = struct{}{}
	return nil
}

// Build freezes the builder into an immutable [Dense].
// Successor and predecessor lists come out in ascending index order
// regardless of insertion order, so a Build result is deterministic for a
// given node and edge set. The builder remains usable afterwards; later
// additions do not affect graphs built earlier.
func (b *Builder) Build() *Dense {
	n := len(b.labels)
	d := &Dense{
		labels: slices.Clone(b.labels),
		index:  make(map[string]int, n),
		fwd:    make([]bitrow, n),
		rev:    make([]bitrow, n),
		succ:   make([][]int, n),
		pred:   make([][]int, n),
	}
	for label, id := range b.index {
		d.index[label] = id
	}
	for v := range n {
		d.fwd[v] = newBitrow(n)
		d.rev[v] = newBitrow(n)
	}
	for u := range n {
		for v := range b.adj[u] {
			d.fwd[u].set(v)
			d.rev[v].set(u)
			d.succ[u] = append(d.succ[u], v)
			d.pred[v] = append(d.pred[v], u)
			d.edges++
		}
	}
	for v := range n {
		slices.Sort(d.succ[v])
		slices.Sort(d.pred[v])
	}
	return d
}
