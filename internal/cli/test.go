package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planark/planark/pkg/graph"
	"github.com/planark/planark/pkg/pipeline"
)

// testCommand creates the test command for planarity verdicts.
func (c *CLI) testCommand() *cobra.Command {
	var noCache, refresh bool

	cmd := &cobra.Command{
		Use:   "test [file]",
		Short: "Test a graph for planarity",
		Long: `Test whether a graph can be drawn in the plane without edge crossings.

The graph is read as JSON from the given file, or from stdin when no file is
given. The exit code is 0 for planar graphs and 1 for non-planar graphs.`,
		Example: `  # Test a graph file
  planark test graph.json

  # Test a graph from stdin
  cat graph.json | planark test`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGraphArg(args)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("create runner: %w", err)
			}
			defer runner.Close()

			result, err := runner.Execute(cmd.Context(), g, pipeline.Options{
				SkipEmbed: true,
				Refresh:   refresh,
			})
			if err != nil {
				return err
			}

			if result.Planar {
				printSuccess("Graph is planar")
			} else {
				printError("Graph is not planar")
			}
			printStats(result.Stats.VertexCount, result.Stats.EdgeCount, result.CacheInfo.PlanarityHit)

			if !result.Planar {
				// Verdict, not a failure of the command itself.
				cmd.SilenceErrors = true
				return fmt.Errorf("graph is not planar")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the result cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute and overwrite cached results")

	return cmd
}

// readGraphArg reads a graph from the file named in args, or from stdin when
// args is empty.
func readGraphArg(args []string) (*graph.Graph, error) {
	if len(args) == 0 {
		g, err := graph.ReadGraph(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read graph from stdin: %w", err)
		}
		return g, nil
	}
	g, err := graph.ReadGraphFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read graph: %w", err)
	}
	return g, nil
}
