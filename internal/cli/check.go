package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ontograph/pkg/errors"
	"github.com/matzehuels/ontograph/pkg/graph"
	pkgio "github.com/matzehuels/ontograph/pkg/io"
	"github.com/matzehuels/ontograph/pkg/ontology"
)

// checkCommand creates the check command, which lists axiom shapes the
// edge extractor skipped.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		opts   graphOpts
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "check <ontology>",
		Short: "List axioms that yield no edges",
		Long: `List every axiom whose shape the edge extractor skips, such as unions
or restrictions over anonymous fillers. Skipped axioms never fail a query;
with --strict they fail this command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(args[0], &opts)
			if err != nil {
				return err
			}
			diags := g.Diagnostics()
			if len(diags) == 0 {
				printSuccess("All axioms yield edges")
				return nil
			}

			printWarning("%d axioms skipped", len(diags))
			for _, d := range diags {
				fmt.Fprintln(cmd.OutOrStdout(), describeMalformed(g, d))
			}
			if strict {
				return errors.New(errors.ErrCodeMalformedAxiom, "%d axioms skipped", len(diags))
			}
			return nil
		},
	}
	opts.bind(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any axiom is skipped")
	return cmd
}

// describeMalformed renders a skipped axiom as "node Kind expr: reason".
func describeMalformed(g *graph.Graph, d *graph.MalformedAxiom) string {
	f := g.Facade()
	expr := ""
	for _, a := range f.AxiomsAbout(d.Node) {
		if a.ID != d.Axiom {
			continue
		}
		switch a.Kind {
		case ontology.AxiomSubClassOf, ontology.AxiomEquivalentClasses, ontology.AxiomClassAssertion:
			expr = pkgio.FormatExpr(a.Super, f)
		}
		break
	}
	return fmt.Sprintf("  %s %s %s %s",
		StyleHighlight.Render(g.Name(d.Node)),
		StyleDim.Render(d.Kind.String()),
		StyleValue.Render(expr),
		StyleWarning.Render(d.Reason))
}
