package graph

import (
	"fmt"
	"slices"
	"strconv"

	gonumgraph "gonum.org/v1/gonum/graph"
)

// FromDirected converts a gonum directed graph into a [Dense].
//
// Node IDs are sorted ascending before indexing, so the resulting dense
// indices (and with them candidate order and tie-breaking in the search)
// are deterministic even though gonum node iteration order is not. The
// label function maps gonum IDs to external labels; pass nil to use the
// decimal ID string. Duplicate labels from a non-injective label function
// are an error.
//
// Self-loops and parallel edges survive the same way they do in the
// builder: parallel edges collapse, self-loops are kept.
func FromDirected(src gonumgraph.Directed, label func(id int64) string) (*Dense, error) {
	if label == nil {
		label = func(id int64) string { return strconv.FormatInt(id, 10) }
	}

	var ids []int64
	it := src.Nodes()
	for it.Next() {
		ids = append(ids, it.Node().ID())
	}
	slices.Sort(ids)

	b := NewBuilder()
	for _, id := range ids {
		if _, err := b.AddNode(label(id)); err != nil {
			return nil, fmt.Errorf("node %d: %w", id, err)
		}
	}
	for _, id := range ids {
		from := label(id)
		to := src.From(id)
		for to.Next() {
			if err := b.AddEdge(from, label(to.Node().ID())); err != nil {
				return nil, fmt.Errorf("edge %d->%d: %w", id, to.Node().ID(), err)
			}
		}
	}

	return b.Build(), nil
}
