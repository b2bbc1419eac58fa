// Package connectome loads connectivity maps stored as whitespace
// adjacency lists, the format the C. elegans wiring datasets ship in.
package connectome

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/neurotopo/trisect/pkg/graph"
)

// Read parses a whitespace adjacency list from r.
//
// Each non-empty line names a node followed by its successors:
//
//	ADAL ADAR AIBL RICR
//	ADAR ADAL AIBR
//
// Text after '#' is a comment. A node may appear as a successor before
// its own line; a line with no successors declares an isolated node.
// Repeated edges collapse into one. Self-loops are kept as written;
// [Load] strips them.
func Read(r io.Reader) (*graph.Dense, error) {
	b := graph.NewBuilder()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		src := fields[0]
		if _, err := b.Ensure(src); err != nil {
			return nil, fmt.Errorf("line %d: node %q: %w", line, src, err)
		}
		for _, dst := range fields[1:] {
			if _, err := b.Ensure(dst); err != nil {
				return nil, fmt.Errorf("line %d: node %q: %w", line, dst, err)
			}
			if err := b.AddEdge(src, dst); err != nil {
				return nil, fmt.Errorf("line %d: edge %s->%s: %w", line, src, dst, err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	return b.Build(), nil
}

// Import reads an adjacency-list file at path.
func Import(path string) (*graph.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Load imports the file at path and returns the analysis-ready graph:
// self-loops removed and every edge reversed, the orientation the
// partition search runs on.
func Load(path string) (*graph.Dense, error) {
	g, err := Import(path)
	if err != nil {
		return nil, err
	}
	return g.StripSelfLoops().Reverse(), nil
}
