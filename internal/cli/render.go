package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ontograph/pkg/dag/transform"
	"github.com/matzehuels/ontograph/pkg/graph"
	"github.com/matzehuels/ontograph/pkg/render/nodelink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	graphOpts
	output      string   // output file path (or base path for multiple outputs)
	formats     []string // output formats: "svg", "pdf", "png", "dot"
	incoming    bool     // render descendants instead of ancestors
	detailed    bool     // show IRIs under node labels
	boundary    bool     // draw unextended hops as dashed edges
	scale       float64  // PNG scale factor
	noReduction bool     // keep transitively implied arrows
}

// renderCommand creates the render command for closure diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: 2}

	cmd := &cobra.Command{
		Use:   "render <ontology> <entity>",
		Short: "Render the closure of an entity as a diagram",
		Example: `  ontograph render anatomy.toml finger
  ontograph render anatomy.toml limb --incoming -f svg,png -o limb`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], args[1], &opts)
		},
	}

	opts.graphOpts.bind(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), pdf, png, dot (comma-separated)")
	cmd.Flags().BoolVar(&opts.incoming, "incoming", false, "render descendants instead of ancestors")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show IRIs under node labels")
	cmd.Flags().BoolVar(&opts.boundary, "boundary", false, "draw unextended hops as dashed edges")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noReduction, "no-reduction", false, "keep arrows implied by longer paths")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"svg": true, "pdf": true, "png": true, "dot": true}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'svg', 'pdf', 'png' or 'dot')", f)
		}
	}
	return nil
}

// outputPath returns the file for one format. With a single format the
// output flag is used as is; otherwise it is a base path.
func outputPath(output, base, format string, multiple bool) string {
	switch {
	case output == "":
		return base + "." + format
	case multiple:
		return strings.TrimSuffix(output, filepath.Ext(output)) + "." + format
	}
	return output
}

func (c *CLI) runRender(ctx context.Context, path, ref string, opts *renderOpts) error {
	g, err := c.loadGraph(path, &opts.graphOpts)
	if err != nil {
		return err
	}
	n, err := c.resolve(g.Facade(), ref, opts.pick)
	if err != nil {
		return err
	}

	dir := graph.Outgoing
	if opts.incoming {
		dir = graph.Incoming
	}
	cl := g.Edges(n, dir, false)

	diagOpts := nodelink.Options{Detailed: opts.detailed, Boundary: opts.boundary}
	d := nodelink.FromClosure(g, cl, diagOpts)
	if opts.noReduction {
		transform.AssignLayers(d)
	} else {
		d = transform.Prepare(d)
	}
	dot := nodelink.ToDOT(d, diagOpts)

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + "_" + sanitize(g.Name(n))
	var written []string
	for _, format := range opts.formats {
		data, err := renderFormat(ctx, dot, format, opts.scale)
		if err != nil {
			spinner.StopWithError(fmt.Sprintf("Render %s failed", format))
			return err
		}
		out := outputPath(opts.output, base, format, len(opts.formats) > 1)
		if err := os.WriteFile(out, data, 0o644); err != nil {
			spinner.StopWithError("Write failed")
			return fmt.Errorf("write %s: %w", out, err)
		}
		written = append(written, out)
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered %s (%d nodes, %d edges)", g.Name(n), len(d.Nodes()), len(d.Edges())))
	for _, out := range written {
		printFile(out)
	}
	if !opts.incoming {
		printNextStep("Descendants", fmt.Sprintf("%s render %s %s --incoming", appName, path, ref))
	}
	return nil
}

func renderFormat(ctx context.Context, dot, format string, scale float64) ([]byte, error) {
	switch format {
	case "dot":
		return []byte(dot), nil
	case "pdf":
		return nodelink.RenderPDF(ctx, dot)
	case "png":
		return nodelink.RenderPNG(ctx, dot, scale)
	default:
		return nodelink.RenderSVG(ctx, dot)
	}
}

// sanitize makes a display name safe for use in a file name.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, name)
}
