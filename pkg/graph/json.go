package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type jsonGraph struct {
	Nodes []jsonNode `json:"nodes"`
	Edges []jsonEdge `json:"edges"`
}

type jsonNode struct {
	ID string `json:"id"`
}

type jsonEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ReadJSON decodes a JSON graph from r.
//
// The input must be a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [{"id": "a"}, {"id": "b"}],
//	  "edges": [{"from": "a", "to": "b"}]
//	}
//
// Each node must have a non-empty "id" field. Each edge must have "from"
// and "to" fields that reference node IDs. Parallel edges collapse into a
// single logical edge; self-loops are kept (strip them afterwards with
// [Dense.StripSelfLoops] if the analysis should ignore them).
//
// ReadJSON returns an error if the JSON is malformed, a node has a
// duplicate or empty ID, or an edge references an unknown node ID. Errors
// are wrapped with the node or edge that caused the problem.
//
// The returned graph is independent of r. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Dense, error) {
	var data jsonGraph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	b := NewBuilder()
	for _, n := range data.Nodes {
		if _, err := b.AddNode(n.ID); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
	}
	for _, e := range data.Edges {
		if err := b.AddEdge(e.From, e.To); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}

	return b.Build(), nil
}

// ImportJSON reads a JSON graph file at path.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportJSON(path string) (*Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes a graph as JSON and writes it to w.
// Nodes appear in index order and edges in ascending (from, to) index
// order, so the output is canonical for a given graph and can be
// re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(d *Dense, w io.Writer) error {
	out := jsonGraph{
		Nodes: make([]jsonNode, d.NodeCount()),
		Edges: make([]jsonEdge, 0, d.EdgeCount()),
	}

	for id := range d.NodeCount() {
		out.Nodes[id] = jsonNode{ID: d.Label(id)}
	}
	for u := range d.NodeCount() {
		for _, v := range d.Successors(u) {
			out.Edges = append(out.Edges, jsonEdge{From: d.Label(u), To: d.Label(v)})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(d *Dense, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}
