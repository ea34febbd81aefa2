// Package render converts rendered diagrams between output formats.
//
// # Format Conversion
//
// [Convert] turns an SVG into PDF or PNG with the external rsvg-convert
// tool (from librsvg). When the tool is missing it fails with an
// UNSUPPORTED error.
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.Convert(ctx, svg, render.PDF, 0)
//	png, err := render.Convert(ctx, svg, render.PNG, 2)
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage draws closures as directed graph diagrams using
// Graphviz.
//
// [nodelink]: github.com/matzehuels/ontograph/pkg/render/nodelink
package render
