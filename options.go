package gorawrlambda

import (
	"time"

	"github.com/Keksclan/goRawrLambda/auth"
	"github.com/Keksclan/goRawrLambda/breaker"
	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/Keksclan/goRawrLambda/hooks"
	"github.com/Keksclan/goRawrLambda/internal/core"
	"github.com/Keksclan/goRawrLambda/ping"
	"github.com/Keksclan/goRawrLambda/policy"
	"github.com/Keksclan/goRawrLambda/ratelimit"
	"github.com/Keksclan/goRawrLambda/security"
	"github.com/Keksclan/goRawrLambda/tracing"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures an App.
type Option func(*config)

// WithRecovery converts panics in hooks and the handler into
// *composer.PanicError failures so they reach the on-error phase.
func WithRecovery() Option {
	return func(c *config) { c.recovery = true }
}

// WithLogger sets the logger used for lifecycle debugging, the error handler
// and the access log. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver adds a custom composer.Observer.
func WithObserver(o composer.Observer) Option {
	return func(c *config) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

// WithJSONBody decodes JSON request bodies into Request.Payload.
func WithJSONBody() Option {
	return func(c *config) { c.jsonBody = true }
}

// WithCORS adds CORS headers to every response and answers OPTIONS requests
// that produced no response.
func WithCORS(cfg hooks.CORSConfig) Option {
	return func(c *config) { c.cors = &cfg }
}

// WithErrorHandler renders failures as JSON responses.
func WithErrorHandler() Option {
	return func(c *config) { c.errorHandler = true }
}

// WithRequestID settles a request id per invocation and echoes it in the
// X-Request-Id response header.
func WithRequestID() Option {
	return func(c *config) { c.requestID = true }
}

// WithAccessLog writes one log line per invocation.
func WithAccessLog() Option {
	return func(c *config) { c.accessLog = true }
}

// WithHealth answers GET requests for path with h. A nil h uses
// ping.DefaultHandler.
func WithHealth(path string, h ping.Handler) Option {
	return func(c *config) {
		c.healthPath = path
		c.health = h
	}
}

// WithIPBlock rejects requests whose source address b denies.
func WithIPBlock(b *security.IPBlocker) Option {
	return func(c *config) { c.ipBlocker = b }
}

// WithRateLimitGlobal limits all requests to rps with the given burst.
// Route groups with their own RateLimit policy use a separate limiter.
func WithRateLimitGlobal(rps float64, burst int) Option {
	return func(c *config) { c.limiter = ratelimit.NewLimiter(rps, burst) }
}

// WithPolicies configures per-route-group policies used by the rate limit,
// authentication, circuit breaker and cache hooks.
func WithPolicies(r *policy.Resolver) Option {
	return func(c *config) { c.resolver = r }
}

// WithAuth authenticates requests with fn.
func WithAuth(fn auth.AuthFunc) Option {
	return func(c *config) { c.authFn = fn }
}

// WithCircuitBreaker guards every route group with its own breaker.
func WithCircuitBreaker(cfg breaker.Config) Option {
	return func(c *config) { c.breakers = breaker.NewSet(cfg) }
}

// WithCacheL1 enables the in-process response cache holding about maxCost
// bytes of response bodies.
func WithCacheL1(maxCost int64) Option {
	return func(c *config) { c.l1MaxCost = maxCost }
}

// WithCacheL2 enables the Redis response cache. Combined with WithCacheL1 the
// two form a tiered cache.
func WithCacheL2(addr, password string, db int) Option {
	return func(c *config) { c.l2 = &redisConfig{addr: addr, password: password, db: db} }
}

// WithCacheTTL sets the TTL for cached GET responses of routes whose policy
// has no CacheTTL. Zero (the default) caches only routes with a policy TTL.
func WithCacheTTL(d time.Duration) Option {
	return func(c *config) { c.cacheTTL = d }
}

// WithOpenTelemetry traces every invocation. A nil cfg uses the global
// provider and propagator.
func WithOpenTelemetry(cfg *tracing.TracingConfig) Option {
	return func(c *config) {
		if cfg == nil {
			cfg = &tracing.TracingConfig{}
		}
		c.tracing = cfg
	}
}

// WithMetrics records Prometheus metrics into reg. A nil reg uses a fresh
// registry served by App.MetricsHandler.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(c *config) {
		c.metrics = true
		c.metricsReg = reg
	}
}

// WithBefore appends a hook to the before phase, after the built-in gates.
func WithBefore(h composer.Hook) Option {
	return userHook(core.PhaseBefore, h)
}

// WithAfter appends a hook to the after phase, before the cache store.
func WithAfter(h composer.Hook) Option {
	return userHook(core.PhaseAfter, h)
}

// WithOnError appends a hook to the on-error phase, ahead of the error
// handler.
func WithOnError(h composer.Hook) Option {
	return userHook(core.PhaseOnError, h)
}

// WithFinally appends a hook to the finally phase, ahead of the response
// header hooks.
func WithFinally(h composer.Hook) Option {
	return userHook(core.PhaseFinally, h)
}

func userHook(p core.Phase, h composer.Hook) Option {
	return func(c *config) {
		if h != nil {
			c.stack.Add(p, slotUser, h)
		}
	}
}
