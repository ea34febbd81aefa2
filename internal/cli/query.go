package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ontograph/pkg/graph"
	pkgio "github.com/matzehuels/ontograph/pkg/io"
)

// queryOpts holds the flags of the closure commands.
type queryOpts struct {
	graphOpts
	reflexive bool   // include the identity self-edge
	json      bool   // print JSON instead of a table
	output    string // write the closure as JSON to this file
}

func (o *queryOpts) bind(cmd *cobra.Command) {
	o.graphOpts.bind(cmd)
	cmd.Flags().BoolVar(&o.reflexive, "reflexive", false, "include the identity self-edge")
	cmd.Flags().BoolVar(&o.json, "json", false, "print JSON instead of a table")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "write the closure as JSON to a file")
}

// ancestorsCommand creates the ancestors command.
func (c *CLI) ancestorsCommand() *cobra.Command {
	var opts queryOpts
	cmd := &cobra.Command{
		Use:   "ancestors <ontology> <entity>",
		Short: "Print the outgoing closure of an entity",
		Example: `  ontograph ancestors anatomy.toml finger
  ontograph ancestors anatomy.toml finger --include part_of --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runClosure(cmd, args[0], args[1], graph.Outgoing, &opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

// descendantsCommand creates the descendants command.
func (c *CLI) descendantsCommand() *cobra.Command {
	var opts queryOpts
	cmd := &cobra.Command{
		Use:   "descendants <ontology> <entity>",
		Short: "Print the incoming closure of an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runClosure(cmd, args[0], args[1], graph.Incoming, &opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func (c *CLI) runClosure(cmd *cobra.Command, path, ref string, dir graph.Direction, opts *queryOpts) error {
	g, err := c.loadGraph(path, &opts.graphOpts)
	if err != nil {
		return err
	}
	n, err := c.resolve(g.Facade(), ref, opts.pick)
	if err != nil {
		return err
	}

	cl := g.Edges(n, dir, opts.reflexive)
	if cl.Truncated {
		c.Logger.Warn("closure truncated", "max_edges", g.Config().MaxEdges)
	}

	if opts.output != "" {
		if err := pkgio.ExportClosureJSON(opts.output, g.Facade(), cl); err != nil {
			return err
		}
		printSuccess("Wrote %d edges", len(cl.Edges))
		printFile(opts.output)
		return nil
	}
	if opts.json {
		return pkgio.WriteClosureJSON(cmd.OutOrStdout(), g.Facade(), cl)
	}
	printClosure(cmd.OutOrStdout(), g, cl)
	return nil
}

// edgesCommand creates the edges command for direct (primitive) edges.
func (c *CLI) edgesCommand() *cobra.Command {
	var (
		opts     graphOpts
		incoming bool
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "edges <ontology> <entity>",
		Short: "Print the direct edges of an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(args[0], &opts)
			if err != nil {
				return err
			}
			n, err := c.resolve(g.Facade(), args[1], opts.pick)
			if err != nil {
				return err
			}

			edges := g.OutgoingEdges(n)
			far := func(e graph.Edge) string { return g.Name(e.Target) }
			if incoming {
				edges = g.IncomingEdges(n)
				far = func(e graph.Edge) string { return g.Name(e.Source) }
			}
			if asJSON {
				return pkgio.WriteJSON(cmd.OutOrStdout(), pkgio.NewEncoder(g.Facade()).Edges(edges))
			}
			fmt.Fprintln(cmd.OutOrStdout(), edgeTable(g, edges, nil, far))
			return nil
		},
	}
	opts.bind(cmd)
	cmd.Flags().BoolVar(&incoming, "incoming", false, "print incoming instead of outgoing edges")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// betweenCommand creates the between command.
func (c *CLI) betweenCommand() *cobra.Command {
	var (
		opts   graphOpts
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "between <ontology> <from> <to>",
		Short: "Print the closure edges leading from one entity to another",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(args[0], &opts)
			if err != nil {
				return err
			}
			from, err := c.resolve(g.Facade(), args[1], opts.pick)
			if err != nil {
				return err
			}
			to, err := c.resolve(g.Facade(), args[2], opts.pick)
			if err != nil {
				return err
			}

			edges := g.EdgesBetween(from, to)
			if asJSON {
				return pkgio.WriteJSON(cmd.OutOrStdout(), pkgio.NewEncoder(g.Facade()).Edges(edges))
			}
			if len(edges) == 0 {
				printInfo("No path from %s to %s", g.Name(from), g.Name(to))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), edgeTable(g, edges, nil, func(e graph.Edge) string { return g.Name(e.Target) }))
			return nil
		},
	}
	opts.bind(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
