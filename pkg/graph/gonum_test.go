package graph

import (
	"testing"

	"gonum.org/v1/gonum/graph/simple"
)

func TestFromDirected(t *testing.T) {
	src := simple.NewDirectedGraph()
	src.SetEdge(src.NewEdge(simple.Node(2), simple.Node(0)))
	src.SetEdge(src.NewEdge(simple.Node(0), simple.Node(1)))
	src.SetEdge(src.NewEdge(simple.Node(1), simple.Node(2)))

	g, err := FromDirected(src, nil)
	if err != nil {
		t.Fatalf("FromDirected() error = %v", err)
	}

	if g.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", g.NodeCount())
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", g.EdgeCount())
	}

	// Default labelling is the decimal gonum ID, indexed in ascending
	// ID order regardless of iteration order.
	want := mustBuild(t,
		[]string{"0", "1", "2"},
		[][2]string{{"2", "0"}, {"0", "1"}, {"1", "2"}},
	)
	if got := g.Fingerprint(); got != want.Fingerprint() {
		t.Errorf("Fingerprint() = %s, want %s", got, want.Fingerprint())
	}
}

func TestFromDirectedCustomLabels(t *testing.T) {
	src := simple.NewDirectedGraph()
	src.SetEdge(src.NewEdge(simple.Node(10), simple.Node(20)))

	names := map[int64]string{10: "left", 20: "right"}
	g, err := FromDirected(src, func(id int64) string { return names[id] })
	if err != nil {
		t.Fatalf("FromDirected() error = %v", err)
	}

	u, ok := g.Index("left")
	if !ok {
		t.Fatal("Index(left) not found")
	}
	v, ok := g.Index("right")
	if !ok {
		t.Fatal("Index(right) not found")
	}
	if !g.HasEdge(u, v) {
		t.Error("HasEdge(left, right) = false, want true")
	}
}

func TestFromDirectedDuplicateLabels(t *testing.T) {
	src := simple.NewDirectedGraph()
	src.SetEdge(src.NewEdge(simple.Node(1), simple.Node(2)))

	if _, err := FromDirected(src, func(int64) string { return "same" }); err == nil {
		t.Error("FromDirected() with non-injective labels error = nil, want error")
	}
}
