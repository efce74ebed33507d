// Package metrics собирает метрики запросов клиента к удалённому API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "research_assistant"

// Recorder реализует api.Observer поверх собственного реестра Prometheus.
type Recorder struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New создаёт Recorder и регистрирует коллекторы.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Requests to the remote API by endpoint and status code.",
		}, []string{"endpoint", "code"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_unavailable_total",
			Help:      "Requests that got no response from the remote API.",
		}, []string{"endpoint"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Remote API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
	r.registry.MustRegister(
		r.requests,
		r.failures,
		r.duration,
		collectors.NewGoCollector(),
	)
	return r
}

// ObserveRequest учитывает один запрос. code == 0 означает отсутствие ответа.
func (r *Recorder) ObserveRequest(endpoint string, code int, d time.Duration) {
	r.duration.WithLabelValues(endpoint).Observe(d.Seconds())
	if code == 0 {
		r.failures.WithLabelValues(endpoint).Inc()
		return
	}
	r.requests.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
}

// Handler отдаёт метрики в формате Prometheus.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
