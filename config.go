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

// config holds the internal configuration assembled via functional options.
type config struct {
	stack core.StackBuilder[composer.Hook]

	recovery  bool
	logger    *zap.Logger
	observers []composer.Observer

	jsonBody     bool
	cors         *hooks.CORSConfig
	errorHandler bool
	requestID    bool
	accessLog    bool

	healthPath string
	health     ping.Handler

	ipBlocker *security.IPBlocker
	limiter   *ratelimit.Limiter
	resolver  *policy.Resolver
	authFn    auth.AuthFunc
	breakers  *breaker.Set

	l1MaxCost int64
	l2        *redisConfig
	cacheTTL  time.Duration

	tracing    *tracing.TracingConfig
	metrics    bool
	metricsReg *prometheus.Registry
}

type redisConfig struct {
	addr     string
	password string
	db       int
}
