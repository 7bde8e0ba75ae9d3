package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/friendgraph/pkg/network"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds each user's friend count to its label.
	Detailed bool

	// Highlight is a path of users, such as a shortest path, drawn in
	// accent colors. Consecutive users mark the highlighted friendships.
	Highlight []string
}

// ToDOT converts a network to an undirected Graphviz graph. Users appear in
// ascending order and each friendship is drawn once, from the name that
// sorts first. The result can be rendered with [RenderSVG].
func ToDOT(g *network.Graph, opts Options) string {
	onPath := make(map[string]bool, len(opts.Highlight))
	pathEdges := make(map[[2]string]bool)
	for i, u := range opts.Highlight {
		onPath[u] = true
		if i > 0 {
			pathEdges[edgeKey(opts.Highlight[i-1], u)] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fillcolor=white, fontsize=18];\n")
	buf.WriteString("  edge [color=grey40];\n")
	buf.WriteString("\n")

	users := g.Users()
	for _, u := range users {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(g, u, opts.Detailed))}
		if onPath[u] {
			attrs = append(attrs, "fillcolor=gold", "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", u, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	drawn := make(map[[2]string]bool)
	for _, u := range users {
		for _, f := range g.Neighbors(u) {
			key := edgeKey(u, f)
			if drawn[key] || !g.HasUser(f) || u == f {
				continue
			}
			drawn[key] = true
			if pathEdges[key] {
				fmt.Fprintf(&buf, "  %q -- %q [color=firebrick, penwidth=3];\n", key[0], key[1])
				continue
			}
			fmt.Fprintf(&buf, "  %q -- %q;\n", key[0], key[1])
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *network.Graph, user string, detailed bool) string {
	if !detailed {
		return user
	}
	n := g.Degree(user)
	if n == 1 {
		return user + "\n1 friend"
	}
	return fmt.Sprintf("%s\n%d friends", user, n)
}

func edgeKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg tag so the drawing scales from a
// zero origin at its natural size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
