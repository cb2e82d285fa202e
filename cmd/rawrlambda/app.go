package main

import (
	"context"
	"fmt"
	"io"

	gorawrlambda "github.com/Keksclan/goRawrLambda"
	"github.com/Keksclan/goRawrLambda/breaker"
	"github.com/Keksclan/goRawrLambda/internal/envconfig"
	"github.com/Keksclan/goRawrLambda/ping"
	"github.com/Keksclan/goRawrLambda/security"
	"github.com/Keksclan/goRawrLambda/tracing"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

// deps bundles everything a subcommand needs and how to release it.
type deps struct {
	cfg     envconfig.Config
	log     *zap.Logger
	app     *gorawrlambda.App
	closers []func(context.Context) error
}

func (r *deps) close(ctx context.Context) {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](ctx); err != nil {
			r.log.Warn("shutdown", zap.Error(err))
		}
	}
	_ = r.log.Sync()
}

// setup loads configuration and builds the demo App. Traces, when enabled,
// are written to traceOut.
func setup(traceOut io.Writer) (*deps, error) {
	cfg, err := envconfig.Load(envFiles...)
	if err != nil {
		return nil, err
	}
	log, err := cfg.Logger()
	if err != nil {
		return nil, err
	}
	rt := &deps{cfg: cfg, log: log}

	opts := append(gorawrlambda.DefaultOptions(),
		gorawrlambda.WithLogger(log),
		gorawrlambda.WithAccessLog(),
		gorawrlambda.WithHealth(cfg.HealthPath, ping.FunHandler(nil)),
		gorawrlambda.WithPolicies(demoPolicies()),
		gorawrlambda.WithCircuitBreaker(breaker.DefaultConfig()),
		gorawrlambda.WithCacheTTL(cfg.CacheTTL),
	)
	if cfg.RateLimitRPS > 0 {
		opts = append(opts, gorawrlambda.WithRateLimitGlobal(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}
	if len(cfg.AllowCIDRs) > 0 {
		b, err := security.NewIPBlocker(security.Config{
			Mode:           security.AllowList,
			CIDRs:          cfg.AllowCIDRs,
			TrustedProxies: cfg.TrustedProxies,
		})
		if err != nil {
			return nil, fmt.Errorf("ip allow list: %w", err)
		}
		opts = append(opts, gorawrlambda.WithIPBlock(b))
	}
	if cfg.CacheL1MaxCost > 0 {
		opts = append(opts, gorawrlambda.WithCacheL1(cfg.CacheL1MaxCost))
	}
	if cfg.RedisAddr != "" {
		opts = append(opts, gorawrlambda.WithCacheL2(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB))
	}
	if cfg.Metrics {
		opts = append(opts, gorawrlambda.WithMetrics(nil))
	}
	if cfg.Tracing {
		exp, err := stdouttrace.New(stdouttrace.WithWriter(traceOut))
		if err != nil {
			return nil, fmt.Errorf("trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
		rt.closers = append(rt.closers, tp.Shutdown)
		opts = append(opts, gorawrlambda.WithOpenTelemetry(&tracing.TracingConfig{
			TracerProvider: tp,
			Propagators:    propagation.TraceContext{},
		}))
	}

	app, err := gorawrlambda.New(opts...)
	if err != nil {
		rt.close(context.Background())
		return nil, err
	}
	rt.app = app
	rt.closers = append(rt.closers, func(context.Context) error { return app.Close() })
	return rt, nil
}
