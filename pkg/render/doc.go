// Package render turns a friendship network into pictures.
//
// The [nodelink] subpackage builds Graphviz DOT source for a network and
// renders it to SVG in-process. This package converts that SVG to PDF or
// PNG with the external rsvg-convert tool (from librsvg):
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Highlight: path})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [nodelink]: github.com/matzehuels/friendgraph/pkg/render/nodelink
package render
