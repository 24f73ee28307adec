// Package metrics holds the Prometheus collectors for the geo-tracking API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector the service records into.
type Registry struct {
	// HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Geo-tracking
	RecordsCreatedTotal       prometheus.Counter
	RecordsUpdatedTotal       prometheus.Counter
	ValidationRejectionsTotal *prometheus.CounterVec
	EventPublishFailuresTotal prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewRegistry registers all collectors on reg. Pass a fresh
// prometheus.NewRegistry() per process (or per test) to avoid duplicate
// registration panics.
func NewRegistry(reg *prometheus.Registry) *Registry {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Registry{
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geotracking_http_requests_total",
				Help: "Total HTTP requests processed by route, method, and status code",
			},
			[]string{"route", "method", "status_code"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "geotracking_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"route", "method"},
		),
		HTTPRequestsInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "geotracking_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),

		RecordsCreatedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "geotracking_records_created_total",
			Help: "Geo-tracking records ingested",
		}),
		RecordsUpdatedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "geotracking_records_updated_total",
			Help: "Geo-tracking records mutated by partial update",
		}),
		ValidationRejectionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geotracking_validation_rejections_total",
				Help: "Payloads rejected by validation, by operation",
			},
			[]string{"operation"},
		),
		EventPublishFailuresTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "geotracking_event_publish_failures_total",
			Help: "Record events that could not be written to the event stream",
		}),

		gatherer: reg,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
