// Package nodelink renders closures as node-link diagrams.
//
// # Overview
//
// A closure is a star around its start node. [FromClosure] turns it into a
// [dag.DAG] whose arrows are the direct ontology edges among the nodes the
// closure reached, so the drawing shows how each ancestor was reached.
// Arrows carry the relation name; plain subsumption arrows are unlabeled.
//
// # Usage
//
// Render a closure straight to SVG:
//
//	svg, err := nodelink.Render(ctx, g, g.Ancestors(finger, false), nodelink.Options{})
//
// Or go through DOT to customise the diagram first:
//
//	d := transform.Prepare(nodelink.FromClosure(g, closure, opts))
//	dot := nodelink.ToDOT(d, opts)
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels include the IRI and entity kind
//   - Boundary: hops where chaining stopped are drawn dashed
//
// # DOT Format
//
// The generated DOT uses bottom-to-top layout (rankdir=BT) with rounded box
// nodes, so superclasses and wholes sit above the focus node.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
//
// [dag.DAG]: github.com/matzehuels/ontograph/pkg/dag.DAG
package nodelink
