// Package metrics exposes Prometheus metrics for composed handlers.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "rawr"
	subsystem = "lambda"
)

// Collector is a composer.Observer that counts invocations by path, records
// their duration, and counts responses by status code.
type Collector struct {
	gatherer prometheus.Gatherer

	inFlight    prometheus.Gauge
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	responses   *prometheus.CounterVec
}

var _ composer.Observer = (*Collector)(nil)

// New registers the collector's metrics with reg. A nil reg uses a fresh
// registry, which keeps separate Apps (and tests) from colliding.
func New(reg *prometheus.Registry) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)

	return &Collector{
		gatherer: reg,
		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "invocations_in_flight",
			Help:      "Number of invocations currently being processed",
		}),
		// Labels: path (success, short_circuit, handled_error, unhandled_error)
		invocations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "invocations_total",
			Help:      "Total number of invocations by execution path",
		}, []string{"path"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "invocation_duration_seconds",
			Help:      "Duration of invocations in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
		responses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "responses_total",
			Help:      "Total number of responses by HTTP status code",
		}, []string{"status"}),
	}
}

// Begin marks an invocation as in flight.
func (c *Collector) Begin(ctx context.Context, _ *composer.Request, _ *composer.Invocation) context.Context {
	c.inFlight.Inc()
	return ctx
}

// Transition is a no-op.
func (c *Collector) Transition(context.Context, *composer.Invocation, composer.State) {}

// End records the outcome of an invocation.
func (c *Collector) End(_ context.Context, inv *composer.Invocation, path composer.Path, resp *composer.Response, _ error) {
	c.inFlight.Dec()
	c.invocations.WithLabelValues(path.String()).Inc()
	if !inv.StartedAt.IsZero() {
		c.duration.WithLabelValues(path.String()).Observe(time.Since(inv.StartedAt).Seconds())
	}
	if resp != nil {
		c.responses.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
	}
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
