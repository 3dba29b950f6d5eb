package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planark/planark/pkg/pipeline"
)

// embedCommand creates the embed command for computing embeddings.
func (c *CLI) embedCommand() *cobra.Command {
	var (
		output  string
		formats string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "embed [file]",
		Short: "Compute a combinatorial embedding of a planar graph",
		Long: `Compute a combinatorial embedding: the cyclic order of edges around every
vertex of a planar graph. The graph is read as JSON from the given file, or
from stdin when no file is given.

With --output, one file per format is written using the format as extension.
Without it, the first format is written to stdout.`,
		Example: `  # Embedding as JSON on stdout
  planark embed graph.json

  # Write graph.svg and graph.dot
  planark embed graph.json -f svg,dot -o graph

  # Recompute, ignoring cached results
  planark embed graph.json --refresh`,
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

			formatList := parseFormats(formats)

			spin := newSpinner(cmd.Context(), "Computing embedding...")
			spin.Start()
			track := newProgress(c.Logger)
			result, err := runner.Execute(cmd.Context(), g, pipeline.Options{
				Formats: formatList,
				Refresh: refresh,
			})
			if err != nil {
				spin.StopWithError("Embedding failed")
				return err
			}
			spin.Stop()

			if !result.Planar {
				printError("Graph is not planar, no embedding exists")
				printStats(result.Stats.VertexCount, result.Stats.EdgeCount, result.CacheInfo.PlanarityHit)
				cmd.SilenceErrors = true
				return errors.New("graph is not planar")
			}
			track.done(fmt.Sprintf("Embedded %d vertices", result.Stats.VertexCount))

			if output == "" {
				return writeOutput(result.Artifacts[formatList[0]], "")
			}

			printSuccess("Embedding computed")
			printStats(result.Stats.VertexCount, result.Stats.EdgeCount, result.CacheInfo.EmbeddingHit)
			for _, format := range formatList {
				path := output + "." + format
				if err := writeOutput(result.Artifacts[format], path); err != nil {
					return err
				}
				printFile(path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (stdout if empty)")
	cmd.Flags().StringVarP(&formats, "format", "f", "json", "comma-separated output formats (json, dot, svg)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the result cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute and overwrite cached results")

	return cmd
}
