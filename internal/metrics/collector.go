// Package metrics exposes Prometheus metrics for remote calls, balance
// refreshes and session housekeeping.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wallet"

// Collector owns a private registry with all service metrics.
type Collector struct {
	registry *prometheus.Registry

	remoteRequests *prometheus.CounterVec
	remoteDuration *prometheus.HistogramVec
	enrichRuns     *prometheus.CounterVec
	sessionsReaped prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics together with
// the Go runtime and process collectors.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,

		remoteRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_requests_total",
			Help:      "Remote API calls by service and outcome",
		}, []string{"service", "outcome"}),

		remoteDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "remote_request_duration_seconds",
			Help:      "Latency of remote API calls",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~20s
		}, []string{"service"}),

		enrichRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrich_runs_total",
			Help:      "Balance refreshes by outcome",
		}, []string{"outcome"}),

		sessionsReaped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_reaped_total",
			Help:      "Expired sessions removed by the reaper",
		}),
	}

	registry.MustRegister(
		c.remoteRequests,
		c.remoteDuration,
		c.enrichRuns,
		c.sessionsReaped,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// ObserveRemote records one remote call.
func (c *Collector) ObserveRemote(service, outcome string, elapsed time.Duration) {
	c.remoteRequests.WithLabelValues(service, outcome).Inc()
	c.remoteDuration.WithLabelValues(service).Observe(elapsed.Seconds())
}

// ObserveEnrich records one balance refresh.
func (c *Collector) ObserveEnrich(outcome string) {
	c.enrichRuns.WithLabelValues(outcome).Inc()
}

// ObserveReaped records a reaper sweep.
func (c *Collector) ObserveReaped(n int) {
	c.sessionsReaped.Add(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
