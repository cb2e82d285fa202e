package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// config holds the internal configuration assembled via functional options.
type config struct {
	logger          *zap.Logger
	metrics         http.Handler
	metricsPath     string
	maxBodyBytes    int64
	stage           string
	shutdownTimeout time.Duration
}

func defaultConfig() config {
	return config{
		logger:          zap.NewNop(),
		metricsPath:     "/metrics",
		maxBodyBytes:    6 << 20,
		stage:           "local",
		shutdownTimeout: 5 * time.Second,
	}
}

// Option configures a Server.
type Option func(*config)

// WithLogger logs handler failures and server lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics mounts h at path (default "/metrics" when path is empty). The
// request never reaches the wrapped handler.
func WithMetrics(path string, h http.Handler) Option {
	return func(c *config) {
		if path != "" {
			c.metricsPath = path
		}
		c.metrics = h
	}
}

// WithMaxBodyBytes caps request bodies. Larger bodies are answered with 413.
// The default matches the Lambda synchronous payload limit of 6 MiB.
func WithMaxBodyBytes(n int64) Option {
	return func(c *config) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// WithStage sets requestContext.stage on generated events.
func WithStage(stage string) Option {
	return func(c *config) { c.stage = stage }
}

// WithShutdownTimeout bounds graceful shutdown in ListenAndServe.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}
