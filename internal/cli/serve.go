package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/ontograph/internal/metrics"
	"github.com/matzehuels/ontograph/internal/server"
)

// serveCommand creates the serve command, which exposes closure queries
// over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		opts        graphOpts
		addr        string
		withMetrics bool
	)
	cmd := &cobra.Command{
		Use:   "serve <ontology>",
		Short: "Serve closure queries over HTTP",
		Example: `  ontograph serve anatomy.toml
  ontograph serve anatomy.toml --addr :9000 --include part_of`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(args[0], &opts)
			if err != nil {
				return err
			}

			sopts := server.Options{Addr: addr}
			if withMetrics {
				m := metrics.New()
				m.Install()
				sopts.Metrics = m.Handler()
			}

			printSuccess("Serving %s on %s", args[0], addr)
			printNextStep("Try", "curl 'http://localhost"+addr+"/v1/ancestors?id=<entity>'")
			return server.New(g, c.Logger, sopts).ListenAndServe(cmd.Context())
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&withMetrics, "metrics", true, "expose Prometheus metrics on /metrics")
	return cmd
}
