// Package prometheus exposes the gateway's metrics on a private registry,
// keeping the default global registry untouched.
package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles every gateway metric. It implements the dispatch
// Recorder contract (BackendCall, Fallback) and feeds the HTTP middleware.
type Metrics struct {
	registry *prometheus.Registry

	chatRequests    *prometheus.CounterVec
	backendCalls    *prometheus.CounterVec
	backendFailures *prometheus.CounterVec
	fallbacks       *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// NewMetrics registers the gateway metric set under namespace on a fresh
// registry, plus the standard process and Go runtime collectors.
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	registry.MustRegister(prometheus.NewGoCollector())

	factory := promauto.With(registry)
	return &Metrics{
		registry: registry,
		chatRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_requests_total",
			Help:      "Chat questions received, by classified category.",
		}, []string{"category"}),
		backendCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_calls_total",
			Help:      "Calls dispatched to a specialised backend, by tool.",
		}, []string{"tool"}),
		backendFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_failures_total",
			Help:      "Backend calls that returned an error, by tool.",
		}, []string{"tool"}),
		fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_total",
			Help:      "Completions served by the fallback model, by reason.",
		}, []string{"reason"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests handled, by method, path and status.",
		}, []string{"method", "path", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "path"}),
	}
}

// ChatRequest counts one classified chat question.
func (m *Metrics) ChatRequest(category string) {
	m.chatRequests.WithLabelValues(category).Inc()
}

// BackendCall counts one backend dispatch and, when failed, the failure.
func (m *Metrics) BackendCall(tool string, failed bool) {
	m.backendCalls.WithLabelValues(tool).Inc()
	if failed {
		m.backendFailures.WithLabelValues(tool).Inc()
	}
}

// Fallback counts one completion-service answer.
func (m *Metrics) Fallback(reason string) {
	m.fallbacks.WithLabelValues(reason).Inc()
}

// ObserveHTTP records one handled HTTP request.
func (m *Metrics) ObserveHTTP(method, path string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
