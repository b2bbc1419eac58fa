package graph

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadJSON(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		doc := `{
			"nodes": [{"id": "a"}, {"id": "b"}, {"id": "c"}],
			"edges": [{"from": "a", "to": "b"}, {"from": "b", "to": "c"}]
		}`
		g, err := ReadJSON(strings.NewReader(doc))
		if err != nil {
			t.Fatalf("ReadJSON() error = %v", err)
		}
		if g.NodeCount() != 3 {
			t.Errorf("NodeCount() = %d, want 3", g.NodeCount())
		}
		if g.EdgeCount() != 2 {
			t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
		}
		if !g.HasEdge(0, 1) || !g.HasEdge(1, 2) {
			t.Error("ReadJSON() missing expected edges")
		}
	})

	t.Run("parallel edges collapse", func(t *testing.T) {
		doc := `{
			"nodes": [{"id": "a"}, {"id": "b"}],
			"edges": [{"from": "a", "to": "b"}, {"from": "a", "to": "b"}]
		}`
		g, err := ReadJSON(strings.NewReader(doc))
		if err != nil {
			t.Fatalf("ReadJSON() error = %v", err)
		}
		if g.EdgeCount() != 1 {
			t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
		}
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name string
			doc  string
		}{
			{"malformed json", `{"nodes": [`},
			{"duplicate node", `{"nodes": [{"id": "a"}, {"id": "a"}], "edges": []}`},
			{"empty node id", `{"nodes": [{"id": ""}], "edges": []}`},
			{"unknown edge source", `{"nodes": [{"id": "a"}], "edges": [{"from": "x", "to": "a"}]}`},
			{"unknown edge target", `{"nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "x"}]}`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := ReadJSON(strings.NewReader(tt.doc)); err == nil {
					t.Error("ReadJSON() error = nil, want error")
				}
			})
		}
	})
}

func TestWriteJSONRoundTrip(t *testing.T) {
	g := mustBuild(t,
		[]string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"c", "a"}, {"b", "c"}},
	)

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if got, want := back.Fingerprint(), g.Fingerprint(); got != want {
		t.Errorf("round-trip fingerprint = %s, want %s", got, want)
	}
}

func TestImportExportJSON(t *testing.T) {
	g := mustBuild(t, []string{"a", "b"}, [][2]string{{"a", "b"}})
	path := filepath.Join(t.TempDir(), "graph.json")

	if err := ExportJSON(g, path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("exported file missing: %v", err)
	}

	back, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if got, want := back.Fingerprint(), g.Fingerprint(); got != want {
		t.Errorf("imported fingerprint = %s, want %s", got, want)
	}

	if _, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ImportJSON(missing) error = nil, want error")
	}
}
