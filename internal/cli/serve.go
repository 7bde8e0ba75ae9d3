package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/friendgraph/internal/server"
	"github.com/matzehuels/friendgraph/pkg/social"
)

// serveCommand creates the "serve" command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the network over HTTP",
		Long: `Serve runs the HTTP wrapper until interrupted. Each request is one
transaction against the configured store, as with the CLI commands.
Prometheus metrics are served on /metrics.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			return c.withService(cmd, func(ctx context.Context, svc *social.Service) error {
				srv := server.New(svc, server.Config{
					Addr:            cfg.Addr,
					Timeout:         cfg.Timeout,
					ShutdownTimeout: cfg.ShutdownTimeout,
				}, c.Logger)
				return srv.Run(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
