package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ribbonpack/internal/server"
	"github.com/matzehuels/ribbonpack/pkg/observability"
)

// serveCommand runs the HTTP API until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		timeout time.Duration
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pipeline over HTTP",
		Long: `Serve the pipeline over HTTP.

Endpoints:
  GET  /healthz
  GET  /api/catalog, /api/catalog/{name}, /api/functions
  POST /api/pack             JSON options in, JSON summary out
  POST /api/render/{format}  JSON options in, raw svg/png/pdf/json out
  GET  /api/stats            build, pack, cache and request counters

Use --cache redis://... or mongodb://... to share packings between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			stats := observability.NewCounters()
			stats.Register()
			defer observability.Reset()

			srv := server.New(runner, c.Logger, server.WithTimeout(timeout), server.WithStats(stats))
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultTimeout, "per-request pipeline deadline")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
