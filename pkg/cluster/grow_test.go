package cluster

import (
	"fmt"
	"slices"
	"testing"
)

func TestGrow(t *testing.T) {
	g := fanGraph(t)
	tests := []struct {
		name  string
		u, v  int
		wantR []int
		wantB []int
	}{
		{name: "parallel chains", u: 0, v: 2, wantR: []int{0, 1}, wantB: []int{2, 3}},
		{name: "seed absorbs fan", u: 1, v: 4, wantR: []int{1}, wantB: []int{0, 2, 3, 4}},
		{name: "source pair splits everything", u: 4, v: 5, wantR: []int{0, 2, 4}, wantB: []int{1, 3, 5}},
		{name: "source against source", u: 0, v: 5, wantR: []int{0}, wantB: []int{3, 5}},
		{name: "sinks stay put", u: 1, v: 3, wantR: []int{1}, wantB: []int{3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, b := Grow(g, tt.u, tt.v)
			if !slices.Equal(r, tt.wantR) || !slices.Equal(b, tt.wantB) {
				t.Errorf("Grow(%d, %d) = %v, %v, want %v, %v", tt.u, tt.v, r, b, tt.wantR, tt.wantB)
			}
		})
	}
}

func TestGrowTwoNodes(t *testing.T) {
	g := mustBuild(t, []string{"a", "b"}, nil)
	r, b := Grow(g, 0, 1)
	if !slices.Equal(r, []int{0}) || !slices.Equal(b, []int{1}) {
		t.Errorf("Grow(0, 1) = %v, %v, want [0], [1]", r, b)
	}
}

func TestGrowConflictPrune(t *testing.T) {
	// x joins the first cluster in round one but points back into it and
	// across to the second, so the same round removes it again. w mirrors
	// this on the other side. Growth therefore stops after one round with
	// the bare seeds.
	g := mustBuild(t,
		[]string{"u", "v", "x", "w"},
		[][2]string{{"u", "x"}, {"x", "u"}, {"x", "v"}, {"v", "w"}, {"w", "v"}, {"w", "u"}},
	)
	ws := NewWorkspace(g)
	rounds := 0
	r, b := ws.grow(0, 1, func(_, _ []int) { rounds++ })
	if rounds != 1 {
		t.Errorf("growth ran %d rounds, want 1", rounds)
	}
	if !slices.Equal(r, []int{0}) || !slices.Equal(b, []int{1}) {
		t.Errorf("grow(0, 1) = %v, %v, want [0], [1]", r, b)
	}
}

func TestGrowRoundCap(t *testing.T) {
	// Two disjoint 21-node chains grow by one node per round, so the cap
	// stops them after round 15 with 16 nodes per cluster.
	var nodes []string
	var edges [][2]string
	for _, prefix := range []string{"a", "b"} {
		for i := range 21 {
			nodes = append(nodes, fmt.Sprintf("%s%02d", prefix, i))
		}
	}
	for _, prefix := range []string{"a", "b"} {
		for i := range 20 {
			edges = append(edges, [2]string{
				fmt.Sprintf("%s%02d", prefix, i),
				fmt.Sprintf("%s%02d", prefix, i+1),
			})
		}
	}
	g := mustBuild(t, nodes, edges)

	ws := NewWorkspace(g)
	rounds := 0
	r, b := ws.grow(0, 21, func(_, _ []int) { rounds++ })
	if rounds != 15 {
		t.Errorf("growth ran %d rounds, want 15", rounds)
	}
	if len(r) != 16 || len(b) != 16 {
		t.Errorf("cluster sizes = %d, %d, want 16, 16", len(r), len(b))
	}
}

func TestGrowDisjointThroughout(t *testing.T) {
	g := mustGnm(t, 24, 90, 11)
	ws := NewWorkspace(g)
	for _, p := range Pairs(g) {
		r, b := ws.grow(p.U, p.V, func(r, b []int) {
			seen := make(map[int]bool, len(r))
			for _, x := range r {
				seen[x] = true
			}
			for _, x := range b {
				if seen[x] {
					t.Fatalf("node %d in both clusters growing from (%d, %d)", x, p.U, p.V)
				}
			}
		})
		if !slices.IsSorted(r) || !slices.IsSorted(b) {
			t.Errorf("grow(%d, %d) returned unsorted clusters %v, %v", p.U, p.V, r, b)
		}
	}
}

func TestGrowWorkspaceReuse(t *testing.T) {
	g := fanGraph(t)
	ws := NewWorkspace(g)
	ws.Grow(4, 5)
	r, b := ws.Grow(0, 2)
	if !slices.Equal(r, []int{0, 1}) || !slices.Equal(b, []int{2, 3}) {
		t.Errorf("Grow(0, 2) after reuse = %v, %v, want [0 1], [2 3]", r, b)
	}
}

func TestFilterInter(t *testing.T) {
	// In the e/f split a and c feed only the opposite cluster, so the
	// filter drops them and keeps everything that also feeds its own.
	g := fanGraph(t)
	ws := NewWorkspace(g)
	ws.Grow(4, 5)
	r, b := ws.FilterInter()
	if !slices.Equal(r, []int{4}) || !slices.Equal(b, []int{1, 3, 5}) {
		t.Errorf("FilterInter() = %v, %v, want [4], [1 3 5]", r, b)
	}
}

func TestFilterInterStandalone(t *testing.T) {
	g := fanGraph(t)
	r, b := FilterInter(g, []int{0, 2, 4}, []int{1, 3, 5})
	if !slices.Equal(r, []int{4}) || !slices.Equal(b, []int{1, 3, 5}) {
		t.Errorf("FilterInter(r, b) = %v, %v, want [4], [1 3 5]", r, b)
	}
}

func TestFilterInterIdempotent(t *testing.T) {
	g := fanGraph(t)
	ws := NewWorkspace(g)
	for _, p := range Pairs(g) {
		ws.Grow(p.U, p.V)
		r1, b1 := ws.FilterInter()
		r1, b1 = slices.Clone(r1), slices.Clone(b1)
		r2, b2 := ws.FilterInter()
		if !slices.Equal(r1, r2) || !slices.Equal(b1, b2) {
			t.Errorf("second filter pass on (%d, %d) changed %v, %v to %v, %v",
				p.U, p.V, r1, b1, r2, b2)
		}
	}
}
