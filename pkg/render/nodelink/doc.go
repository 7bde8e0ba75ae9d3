// Package nodelink renders friendship networks as node-link diagrams.
//
// Users are drawn as ellipses joined by undirected edges, one per
// friendship, laid out by Graphviz's neato engine. A path of users, usually
// a shortest path, can be highlighted:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Highlight: []string{"a", "b", "c"}})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// PDF and PNG output go through [render.ToPDF] and [render.ToPNG].
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
//
// [render.ToPDF]: github.com/matzehuels/friendgraph/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/friendgraph/pkg/render.ToPNG
package nodelink
