// Package graph provides the directed graph model consumed by the
// cluster search.
//
// # Overview
//
// Trisect partitions a directed graph into two mutually non-interconnected
// node sets plus a connector remainder. The search layer only needs a small
// capability surface: node count, edge existence, successor and predecessor
// lookups, and a label mapping back to the caller's identifiers. That surface
// is the [Directed] interface; any representation that implements it can be
// analyzed.
//
// The concrete implementation is [Dense]: nodes are dense integer indices,
// adjacency is stored both as bitset rows (O(1) edge tests, the inner filters
// of the search are quadratic in cluster size) and as sorted index slices
// (cheap successor iteration in a stable order). A built [Dense] is immutable,
// which is what makes the candidate search trivially shardable across
// goroutines.
//
// # Building Graphs
//
// Use [Builder] to assemble a graph from labelled nodes and edges. The
// builder collapses parallel edges into one logical edge and freezes into a
// [Dense] with [Builder.Build]:
//
//	b := graph.NewBuilder()
//	b.AddNode("a")
//	b.AddNode("b")
//	b.AddEdge("a", "b")
//	g := b.Build()
//
// Graphs can also come from JSON documents ([ReadJSON], [ImportJSON]), from
// a seeded random model ([Gnm]), or from any gonum directed graph
// ([FromDirected]).
//
// # Derived Graphs
//
// [Dense.Reverse] returns the edge-flipped view of a graph and
// [Dense.StripSelfLoops] removes v->v edges. Both leave the receiver
// untouched; connectome-style inputs are analyzed reversed and without
// self-loops.
//
// # Concurrency
//
// A [Dense] is immutable after construction and safe for concurrent readers.
// [Builder] instances are not safe for concurrent use.
package graph
