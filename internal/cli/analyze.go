package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neurotopo/trisect/pkg/connectome"
	"github.com/neurotopo/trisect/pkg/errors"
	"github.com/neurotopo/trisect/pkg/graph"
	"github.com/neurotopo/trisect/pkg/pipeline"
	"github.com/neurotopo/trisect/pkg/store"
)

// Input formats accepted by analyze.
const (
	formatAuto  = "auto"
	formatEdges = "edges"
	formatJSON  = "json"
)

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		format        string
		reverse       bool
		keepSelfLoops bool
		jsonOut       bool
		noCache       bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "analyze [graph file]",
		Short: "Partition a graph into R/B clusters and G connectors",
		Long: `Partition a directed graph into two clusters, R and B, leaving the
remaining nodes as G connectors.

The input is either a JSON graph ({"nodes": [...], "edges": [...]}) or a
whitespace adjacency list where each line names a node followed by its
successors ('#' starts a comment). By default the format is chosen from
the file extension.

Self-loops are stripped before the search; pass --keep-self-loops to keep
them. Connectivity datasets are often analyzed against the reversed edge
direction, which --reverse applies after loading.

Results are cached locally, keyed by graph content and search options.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applySearchConfig(cmd, c.Config.Search, &opts)

			g, err := loadGraph(args[0], format, reverse, keepSelfLoops)
			if err != nil {
				return err
			}

			view := analysisView{json: jsonOut, noCache: noCache, source: args[0]}
			return c.runAnalysis(cmd.Context(), g, opts, view)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatAuto, "input format: auto, edges, json")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "reverse edge direction before analysis")
	cmd.Flags().BoolVar(&keepSelfLoops, "keep-self-loops", false, "keep self-loops instead of stripping them")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the run record as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addSearchFlags(cmd, &opts)

	return cmd
}

// analysisView carries the output preferences for one analysis run.
type analysisView struct {
	json    bool
	noCache bool
	source  string
}

// runAnalysis executes the pipeline on g and renders the result.
func (c *CLI) runAnalysis(ctx context.Context, g *graph.Dense, opts pipeline.Options, view analysisView) error {
	runner, err := c.newRunner(view.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	result, err := c.runSearch(ctx, runner, g, opts, fmt.Sprintf("Analyzing %s...", view.source))
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	prog.done(fmt.Sprintf("Scanned %d candidate pairs", result.Stats.CandidateCount))

	if view.json {
		return writeRunJSON(os.Stdout, result.Run)
	}

	printReport(result)
	return nil
}

// writeRunJSON prints the stored run record as indented JSON.
func writeRunJSON(w io.Writer, run *store.Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}

// loadGraph reads path in the requested format and applies the prep flags.
func loadGraph(path, format string, reverse, keepSelfLoops bool) (*graph.Dense, error) {
	format = strings.ToLower(format)
	if format == formatAuto {
		format = detectFormat(path)
	}

	var (
		g   *graph.Dense
		err error
	)
	switch format {
	case formatJSON:
		g, err = graph.ImportJSON(path)
	case formatEdges:
		g, err = connectome.Import(path)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q", format)
	}
	if err != nil {
		return nil, err
	}

	if !keepSelfLoops {
		g = g.StripSelfLoops()
	}
	if reverse {
		g = g.Reverse()
	}
	return g, nil
}

// detectFormat guesses the input format from the file extension.
func detectFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return formatJSON
	}
	return formatEdges
}
