package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Keksclan/goRawrLambda/server"
	"github.com/spf13/cobra"
)

// serveCmd runs the demo API behind a local HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the demo API over HTTP",
	Long: `Serve the demo API on RAWR_ADDR, translating each HTTP request into an
API Gateway proxy event. Metrics are exposed on /metrics when RAWR_METRICS is set.

Examples:
  # Serve on the default address
  rawrlambda serve

  # Serve on another port with debug logs
  RAWR_ADDR=:9000 RAWR_DEVELOPMENT=true RAWR_LOG_LEVEL=debug rawrlambda serve`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	rt, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer rt.close(context.Background())

	opts := []server.Option{server.WithLogger(rt.log)}
	if rt.cfg.Metrics {
		opts = append(opts, server.WithMetrics("/metrics", rt.app.MetricsHandler()))
	}
	srv := server.New(rt.app.Wrap(demoRoutes().handle), opts...)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx, rt.cfg.Addr)
}
