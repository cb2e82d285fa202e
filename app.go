// Package gorawrlambda composes AWS Lambda HTTP handlers from ordered hook
// phases (before, after, on-error, finally) and layers optional gates on top:
// request ids, health checks, IP blocking, rate limiting, authentication,
// circuit breaking, response caching, tracing and metrics.
//
// The building blocks live in the composer and hooks packages; this package
// wires them from functional options:
//
//	app, err := gorawrlambda.New(
//		gorawrlambda.WithRecovery(),
//		gorawrlambda.WithJSONBody(),
//		gorawrlambda.WithErrorHandler(),
//		gorawrlambda.WithCORS(hooks.DefaultCORSConfig),
//	)
//	if err != nil { ... }
//	app.Start(handler)
package gorawrlambda

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Keksclan/goRawrLambda/cache"
	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/Keksclan/goRawrLambda/internal/core"
	"github.com/Keksclan/goRawrLambda/metrics"
	"github.com/Keksclan/goRawrLambda/tracing"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App is a configured composer plus the resources its hooks use.
//
// Execution order of the built-in hooks is fixed (see the slot constants) and
// does not depend on the order options are passed to New.
type App struct {
	composer *composer.Composer
	cache    cache.Store
	metrics  *metrics.Collector
	closers  []func() error
}

// New creates an App by applying the supplied options.
func New(opts ...Option) (*App, error) {
	cfg := config{logger: zap.NewNop()}
	for _, o := range opts {
		o(&cfg)
	}

	app := &App{}

	store, err := app.buildCache(&cfg)
	if err != nil {
		return nil, err
	}
	app.cache = store
	cfg.assemble(store)

	var copts []composer.Option
	if cfg.recovery {
		copts = append(copts, composer.WithRecovery())
	}
	if cfg.tracing != nil {
		copts = append(copts, composer.WithObserver(tracing.NewObserver(cfg.tracing)))
	}
	if cfg.metrics {
		app.metrics = metrics.New(cfg.metricsReg)
		copts = append(copts, composer.WithObserver(app.metrics))
	}
	for _, o := range cfg.observers {
		copts = append(copts, composer.WithObserver(o))
	}
	copts = append(copts, composer.WithLogger(cfg.logger))

	c := composer.New(copts...)
	cfg.stack.Build(func(p core.Phase, h composer.Hook) {
		switch p {
		case core.PhaseBefore:
			c.Before(h)
		case core.PhaseAfter:
			c.After(h)
		case core.PhaseOnError:
			c.OnError(h)
		case core.PhaseFinally:
			c.Finally(h)
		}
	})
	app.composer = c
	return app, nil
}

// buildCache combines the configured cache tiers. When both L1 and L2 are
// configured they form a tiered cache.
func (a *App) buildCache(cfg *config) (cache.Store, error) {
	var l1 *cache.Memory
	if cfg.l1MaxCost > 0 {
		m, err := cache.NewMemory(cfg.l1MaxCost)
		if err != nil {
			return nil, fmt.Errorf("gorawrlambda: cache l1: %w", err)
		}
		l1 = m
		a.closers = append(a.closers, func() error { m.Close(); return nil })
	}

	var l2 *cache.Redis
	if cfg.l2 != nil {
		l2 = cache.NewRedis(cfg.l2.addr, cfg.l2.password, cfg.l2.db)
		a.closers = append(a.closers, l2.Close)
	}

	switch {
	case l1 != nil && l2 != nil:
		return cache.NewTiered(l1, l2, cfg.cacheTTL), nil
	case l1 != nil:
		return l1, nil
	case l2 != nil:
		return l2, nil
	default:
		return nil, nil
	}
}

// Composer returns the underlying composer so callers can register
// additional hooks before wrapping handlers.
func (a *App) Composer() *composer.Composer {
	return a.composer
}

// Wrap runs h inside the configured hooks.
func (a *App) Wrap(h composer.Handler) composer.Handler {
	return a.composer.Wrap(h)
}

// Lambda wraps h and adapts it to the aws-lambda-go handler shape.
func (a *App) Lambda(h composer.Handler) composer.LambdaHandler {
	return a.Wrap(h).Lambda()
}

// Start wraps h and hands it to the Lambda runtime. It does not return.
func (a *App) Start(h composer.Handler) {
	lambda.Start(a.Lambda(h))
}

// Cache returns the response cache configured via WithCacheL1/WithCacheL2,
// or nil.
func (a *App) Cache() cache.Store {
	return a.cache
}

// MetricsHandler serves the metrics configured via WithMetrics, or the
// default Prometheus registry when metrics are disabled.
func (a *App) MetricsHandler() http.Handler {
	if a.metrics != nil {
		return a.metrics.Handler()
	}
	return promhttp.Handler()
}

// Close releases cache connections and background goroutines.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
