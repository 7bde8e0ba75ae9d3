package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/friendgraph/pkg/network/query"
	"github.com/matzehuels/friendgraph/pkg/render"
	"github.com/matzehuels/friendgraph/pkg/render/nodelink"
	"github.com/matzehuels/friendgraph/pkg/social"
)

// defaultPNGScale renders PNGs at 2x for high-DPI displays.
const defaultPNGScale = 2.0

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file; stdout when empty
	format   string // dot, svg, pdf or png; guessed from output when empty
	path     string // "a,b": highlight the shortest path from a to b
	detailed bool   // add friend counts to labels
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the network as a Graphviz diagram",
		Long: `Render draws every user and friendship. The output format is taken from
--format, else from the extension of --output, else DOT.

With --path alice,carol the shortest path between the two users is
highlighted.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := opts.resolveFormat()
			if err != nil {
				return invalid("%v", err)
			}
			return c.withService(cmd, func(ctx context.Context, svc *social.Service) error {
				return c.runRender(ctx, svc, opts, format)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, pdf or png")
	cmd.Flags().StringVar(&opts.path, "path", "", "highlight the shortest path between two users (a,b)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show friend counts in labels")

	return cmd
}

func (o renderOpts) resolveFormat() (render.Format, error) {
	switch {
	case o.format != "":
		return render.ParseFormat(o.format)
	case o.output != "":
		if ext := filepath.Ext(o.output); ext != "" {
			return render.ParseFormat(ext)
		}
	}
	return render.FormatDOT, nil
}

func (c *CLI) runRender(ctx context.Context, svc *social.Service, opts renderOpts, format render.Format) error {
	g, err := svc.Snapshot(ctx)
	if err != nil {
		return err
	}

	var highlight []string
	if opts.path != "" {
		highlight, err = c.highlightPath(ctx, svc, opts.path)
		if err != nil || highlight == nil {
			return err
		}
	}

	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: opts.detailed, Highlight: highlight})
	data, err := c.renderFormat(ctx, dot, format, opts.output != "")
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := c.Out.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	c.printSuccess("Rendered %d users as %s", g.UserCount(), format)
	c.printFile(opts.output)
	return nil
}

// highlightPath resolves the --path flag. When either user is unknown or
// the two are not connected it prints the usual message and returns nil,
// and nothing is rendered.
func (c *CLI) highlightPath(ctx context.Context, svc *social.Service, pair string) ([]string, error) {
	ends := strings.Split(pair, ",")
	if len(ends) != 2 {
		return nil, invalid("--path takes two users separated by a comma, got %q", pair)
	}
	start, end := strings.TrimSpace(ends[0]), strings.TrimSpace(ends[1])
	path, err := svc.ShortestPath(ctx, start, end)
	switch {
	case errors.Is(err, query.ErrNoPath):
		c.printLine(social.MsgNoConnection)
		return nil, nil
	case err != nil:
		return nil, c.queryFailed(err)
	}
	return path, nil
}

func (c *CLI) renderFormat(ctx context.Context, dot string, format render.Format, showSpinner bool) ([]byte, error) {
	if format == render.FormatDOT {
		return []byte(dot), nil
	}

	if showSpinner {
		spin := newSpinnerWithContext(ctx, c.Err, "Rendering "+string(format)+"...")
		spin.Start()
		defer spin.Stop()
	}

	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	switch format {
	case render.FormatPDF:
		return render.ToPDF(ctx, svg)
	case render.FormatPNG:
		return render.ToPNG(ctx, svg, defaultPNGScale)
	default:
		return svg, nil
	}
}
