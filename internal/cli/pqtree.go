package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/planark/planark/pkg/pq"
)

// pqtreeCommand creates the pqtree command for inspecting PQ-tree reductions.
func (c *CLI) pqtreeCommand() *cobra.Command {
	var output string
	var labels string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "pqtree [constraints...]",
		Short: "Reduce a PQ-tree with adjacency constraints (debug tool)",
		Long: `Build a PQ-tree over the given labels and apply adjacency constraints.

Each constraint is a comma-separated list of labels that must appear
consecutively in every permutation the tree represents. The reduced tree is
printed with P-node children in braces and Q-node children in brackets.`,
		Example: `  # Universal tree over four labels
  planark pqtree --labels a,b,c,d

  # a and b must be adjacent, rendered to SVG
  planark pqtree --labels a,b,c,d -o tree.svg a,b

  # Multiple constraints
  planark pqtree --labels a,b,c,d a,b c,d

  # Step through the constraints interactively
  planark pqtree --labels a,b,c,d --tui a,b c,d b,c`,
		RunE: func(cmd *cobra.Command, args []string) error {
			labelList := splitLabels(labels)
			if len(labelList) == 0 {
				return fmt.Errorf("at least one label required")
			}

			constraints := make([][]string, len(args))
			for i, arg := range args {
				constraint, err := parseConstraint(arg, labelList)
				if err != nil {
					return fmt.Errorf("invalid constraint %q: %w", arg, err)
				}
				constraints[i] = constraint
			}

			if interactive {
				model := newPQTreeModel(labelList, constraints)
				_, err := tea.NewProgram(model).Run()
				return err
			}

			tree, keys, err := buildTree(labelList)
			if err != nil {
				return err
			}
			for i, constraint := range constraints {
				if err := applyConstraint(tree, keys, constraint); err != nil {
					return fmt.Errorf("constraint %q: %w", args[i], err)
				}
			}

			printSuccess("PQ-tree reduced")
			printKeyValue("Tree", tree.String())
			printKeyValue("Permutations", fmt.Sprintf("%d", tree.PermutationCount()))

			if output != "" {
				svg, err := tree.RenderSVG()
				if err != nil {
					return fmt.Errorf("render: %w", err)
				}
				if err := writeOutput(svg, output); err != nil {
					return err
				}
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the tree as SVG to this file")
	cmd.Flags().StringVar(&labels, "labels", "a,b,c,d", "comma-separated leaf labels")
	cmd.Flags().BoolVar(&interactive, "tui", false, "step through the constraints interactively")

	return cmd
}

// buildTree creates the universal PQ-tree over the labels and returns the
// leaf key for each label.
func buildTree(labels []string) (*pq.Tree[string, string], map[string]*pq.LeafKey[string, string], error) {
	keys := make([]*pq.LeafKey[string, string], len(labels))
	byLabel := make(map[string]*pq.LeafKey[string, string], len(labels))
	for i, label := range labels {
		keys[i] = pq.NewLeafKey[string, string](label)
		byLabel[label] = keys[i]
	}
	tree := pq.NewTree[string, string]()
	if err := tree.Initialize(keys); err != nil {
		return nil, nil, err
	}
	return tree, byLabel, nil
}

// applyConstraint reduces the tree so that the labeled leaves become
// consecutive, discarding the replacement step.
func applyConstraint(tree *pq.Tree[string, string], keys map[string]*pq.LeafKey[string, string], constraint []string) error {
	reduceKeys := make([]*pq.LeafKey[string, string], len(constraint))
	for i, label := range constraint {
		reduceKeys[i] = keys[label]
	}
	red, err := tree.Reduction(reduceKeys)
	if err != nil {
		return err
	}
	red.Discard()
	return nil
}

// parseConstraint parses a constraint string like "a,b,c" and checks every
// label against the known set.
func parseConstraint(s string, labels []string) ([]string, error) {
	parts := splitLabels(s)
	if len(parts) < 2 {
		return nil, fmt.Errorf("need at least 2 labels")
	}
	known := make(map[string]bool, len(labels))
	for _, l := range labels {
		known[l] = true
	}
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		if !known[p] {
			return nil, fmt.Errorf("unknown label %q", p)
		}
		if seen[p] {
			return nil, fmt.Errorf("duplicate label %q", p)
		}
		seen[p] = true
	}
	return parts, nil
}

// splitLabels splits a comma-separated list, trimming whitespace and
// dropping empty entries.
func splitLabels(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
