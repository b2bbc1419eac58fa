package graph

import "testing"

func TestGnm(t *testing.T) {
	tests := []struct {
		name string
		n, m int
	}{
		{"sparse", 20, 40},
		{"dense beyond half capacity", 10, 85},
		{"empty", 5, 0},
		{"full", 6, 30},
		{"single node", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Gnm(tt.n, tt.m, 42)
			if err != nil {
				t.Fatalf("Gnm(%d, %d) error = %v", tt.n, tt.m, err)
			}
			if g.NodeCount() != tt.n {
				t.Errorf("NodeCount() = %d, want %d", g.NodeCount(), tt.n)
			}
			if g.EdgeCount() != tt.m {
				t.Errorf("EdgeCount() = %d, want %d", g.EdgeCount(), tt.m)
			}
			if got := g.SelfLoopCount(); got != 0 {
				t.Errorf("SelfLoopCount() = %d, want 0", got)
			}
		})
	}
}

func TestGnmDeterminism(t *testing.T) {
	a, err := Gnm(25, 150, 7)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Gnm(25, 150, 7)
	if err != nil {
		t.Fatal(err)
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("same seed produced different graphs")
	}

	c, err := Gnm(25, 150, 8)
	if err != nil {
		t.Fatal(err)
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("different seeds produced identical graphs")
	}
}

func TestGnmErrors(t *testing.T) {
	tests := []struct {
		name string
		n, m int
	}{
		{"negative nodes", -1, 0},
		{"negative edges", 5, -1},
		{"too many edges", 5, 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Gnm(tt.n, tt.m, 1); err == nil {
				t.Errorf("Gnm(%d, %d) error = nil, want error", tt.n, tt.m)
			}
		})
	}
}
