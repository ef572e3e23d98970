// Package metrics owns the Prometheus registry served on /metrics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated registry for the dispatch service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, route and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "dispatch_http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dispatch_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// NotificationsCreated counts pings recorded in the ledger.
	NotificationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "dispatch_notifications_created_total", Help: "Confirmation pings sent."},
	)
	// NotificationsResolved counts ledger entries leaving pending, by outcome
	// (yes, no, timed_out).
	NotificationsResolved = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "dispatch_notifications_resolved_total", Help: "Ledger entries leaving pending."},
		[]string{"outcome"},
	)

	// ExpiryTicks counts scheduler entries by result (expired, raced, failed).
	ExpiryTicks = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "dispatch_expiry_entries_total", Help: "Expired ledger entries processed by the scheduler."},
		[]string{"result"},
	)
	// ExpiryTickDuration records how long a scheduler tick takes.
	ExpiryTickDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dispatch_expiry_tick_duration_seconds",
			Help:    "Duration of one expiry sweep.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	// OptimizationRequests counts provider calls by outcome (ok, retry, error).
	OptimizationRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "dispatch_optimization_requests_total", Help: "Route optimization attempts."},
		[]string{"outcome"},
	)
	// OptimizationDuration records end-to-end optimization latency including retries.
	OptimizationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dispatch_optimization_duration_seconds",
			Help:    "Route optimization latency in seconds.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)

	// MessagesSent counts SMS sends by outcome (ok, error).
	MessagesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "dispatch_messages_sent_total", Help: "Outgoing SMS by outcome."},
		[]string{"outcome"},
	)

	// EventsPublished counts published domain events by name and outcome.
	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "dispatch_events_published_total", Help: "Domain events published."},
		[]string{"event", "outcome"},
	)
)

var regOnce sync.Once

// RegisterDefault registers every collector on Registry. It is safe to call
// more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(
			HTTPRequests,
			HTTPDuration,
			NotificationsCreated,
			NotificationsResolved,
			ExpiryTicks,
			ExpiryTickDuration,
			OptimizationRequests,
			OptimizationDuration,
			MessagesSent,
			EventsPublished,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	})
}
