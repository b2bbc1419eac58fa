package cluster_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/neurotopo/trisect/pkg/cluster"
	"github.com/neurotopo/trisect/pkg/graph"
)

func exampleGraph() *graph.Dense {
	b := graph.NewBuilder()
	for _, label := range []string{"a", "b", "c", "d", "e", "f"} {
		_, _ = b.AddNode(label)
	}
	for _, e := range [][2]string{
		{"a", "b"}, {"c", "d"}, {"e", "a"}, {"e", "c"}, {"f", "b"}, {"f", "d"},
	} {
		_ = b.AddEdge(e[0], e[1])
	}
	return b.Build()
}

func ExampleSearch() {
	res, err := cluster.Search(context.Background(), exampleGraph(), cluster.Options{})
	if err != nil {
		fmt.Println("search:", err)
		return
	}
	fmt.Println("R:", strings.Join(res.R, " "))
	fmt.Println("B:", strings.Join(res.B, " "))
	fmt.Printf("saving: %.2f%%\n", res.Best.Power)
	// Output:
	// R: a c e
	// B: b d f
	// saving: 50.00%
}

func ExampleSearch_threshold() {
	res, err := cluster.Search(context.Background(), exampleGraph(), cluster.Options{
		Criterion: cluster.CriterionSize,
		Parameter: "3",
	})
	if err != nil {
		fmt.Println("search:", err)
		return
	}
	for _, q := range res.Qualifiers {
		fmt.Printf("%s+%s r+b=%d saving=%.2f%%\n", q.Seed1, q.Seed2, q.Size(), q.Power)
	}
	// Output:
	// a+c r+b=4 saving=22.22%
	// b+e r+b=5 saving=22.22%
	// d+e r+b=5 saving=22.22%
	// e+f r+b=6 saving=50.00%
}

func ExampleWorkspace() {
	g := exampleGraph()
	ws := cluster.NewWorkspace(g)
	for _, p := range cluster.Pairs(g) {
		r, b := ws.Grow(p.U, p.V)
		fmt.Printf("(%s, %s) -> %d+%d\n", g.Label(p.U), g.Label(p.V), len(r), len(b))
	}
	// Output:
	// (a, c) -> 2+2
	// (a, d) -> 2+1
	// (a, f) -> 1+2
	// (b, c) -> 1+2
	// (b, d) -> 1+1
	// (b, e) -> 1+4
	// (c, f) -> 1+2
	// (d, e) -> 1+4
	// (e, f) -> 3+3
}
