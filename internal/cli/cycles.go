package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/ontograph/pkg/io"
)

// cyclesCommand creates the cycles command.
func (c *CLI) cyclesCommand() *cobra.Command {
	var (
		opts      graphOpts
		relations []string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "cycles <ontology>",
		Short: "Report entities that are their own ancestors",
		Long: `Report every strongly connected component of more than one entity in the
ancestor relation restricted to the given relation patterns. Without
--relation every relation is followed.`,
		Example: `  ontograph cycles anatomy.toml --relation is_a
  ontograph cycles anatomy.toml --relation is_a,part_of`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(args[0], &opts)
			if err != nil {
				return err
			}
			var patterns []string
			if cmd.Flags().Changed("relation") {
				patterns = relations
			}
			rels, err := pkgio.ParsePatterns(patterns, g.Facade())
			if err != nil {
				return err
			}

			spinner := newSpinnerWithContext(cmd.Context(), "Scanning for cycles...")
			spinner.Start()
			cycles, err := g.FindCycles(cmd.Context(), rels)
			if err != nil {
				spinner.StopWithError("Cycle scan interrupted")
				return err
			}
			spinner.Stop()

			if asJSON {
				return pkgio.WriteJSON(cmd.OutOrStdout(), pkgio.NewEncoder(g.Facade()).Cycles(cycles))
			}
			if len(cycles) == 0 {
				printSuccess("No cycles")
				return nil
			}
			printWarning("%d cycles", len(cycles))
			for _, cyc := range cycles {
				names := make([]string, len(cyc))
				for i, n := range cyc {
					names[i] = g.Name(n)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "  "+StyleHighlight.Render(strings.Join(names, " ↔ ")))
			}
			return nil
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringSliceVar(&relations, "relation", nil, "relation patterns to follow (default all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}
