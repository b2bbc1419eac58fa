package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurotopo/trisect/pkg/graph"
	"github.com/neurotopo/trisect/pkg/pipeline"
)

// randomCommand creates the random command.
func (c *CLI) randomCommand() *cobra.Command {
	var (
		nodes   int
		edges   int
		seed    uint64
		output  string
		jsonOut bool
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Generate and analyze a seeded G(n,m) random graph",
		Long: `Generate a directed G(n,m) random graph and run the partition search
on it. The same seed always yields the same graph, so experiments are
reproducible across machines.

With --output the generated graph is also written as JSON, ready to be
re-analyzed with different search options.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applySearchConfig(cmd, c.Config.Search, &opts)

			g, err := graph.Gnm(nodes, edges, seed)
			if err != nil {
				return err
			}

			if output != "" {
				if err := graph.ExportJSON(g, output); err != nil {
					return fmt.Errorf("write graph %s: %w", output, err)
				}
				printFile(output)
				printNextStep("Re-analyze it", fmt.Sprintf("trisect analyze %s", output))
				printNewline()
			}

			view := analysisView{
				json:    jsonOut,
				noCache: noCache,
				source:  fmt.Sprintf("G(%d,%d) seed %d", nodes, edges, seed),
			}
			return c.runAnalysis(cmd.Context(), g, opts, view)
		},
	}

	cmd.Flags().IntVar(&nodes, "nodes", 50, "node count")
	cmd.Flags().IntVar(&edges, "edges", 400, "edge count")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().StringVarP(&output, "output", "o", "", "also write the generated graph as JSON")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the run record as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addSearchFlags(cmd, &opts)

	return cmd
}
