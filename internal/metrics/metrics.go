// Package metrics holds the Prometheus collectors of the dispatch service.
// Collectors are created and registered by New against an explicit registerer
// so that tests can use an isolated registry.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dispatch"

// Archive transfer outcomes.
const (
	ArchiveArchived = "archived"
	ArchiveSkipped  = "skipped"
	ArchiveFailed   = "failed"
)

// Event publish outcomes.
const (
	EventDelivered = "delivered"
	EventDropped   = "dropped"
	EventOverflow  = "overflow"
)

type Metrics struct {
	AssignmentsCreated prometheus.Counter
	Transitions        *prometheus.CounterVec
	ArchiveTransfers   *prometheus.CounterVec
	SweepRuns          prometheus.Counter
	EventsPublished    *prometheus.CounterVec
	Subscribers        prometheus.Gauge
	EffectFailures     *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
}

// New creates every collector and registers it on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		AssignmentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assignments_created_total",
			Help:      "Total number of delivery assignments created",
		}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assignment_transitions_total",
			Help:      "Total number of committed status transitions",
		}, []string{"from", "to"}),
		ArchiveTransfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "archive_transfers_total",
			Help:      "Archive transfers by outcome",
		}, []string{"outcome"}),
		SweepRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "archive_sweeps_total",
			Help:      "Total number of archive sweep runs",
		}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Real-time events by type and delivery outcome",
		}, []string{"type", "outcome"}),
		Subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "event_subscribers",
			Help:      "Number of open event subscriptions",
		}),
		EffectFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "effect_failures_total",
			Help:      "Post-commit effects that failed",
		}, []string{"effect"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}

	collectors := map[string]prometheus.Collector{
		"assignments_created_total":     m.AssignmentsCreated,
		"assignment_transitions_total":  m.Transitions,
		"archive_transfers_total":       m.ArchiveTransfers,
		"archive_sweeps_total":          m.SweepRuns,
		"events_published_total":        m.EventsPublished,
		"event_subscribers":             m.Subscribers,
		"effect_failures_total":         m.EffectFailures,
		"http_requests_total":           m.HTTPRequests,
		"http_request_duration_seconds": m.HTTPDuration,
	}
	for name, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register %s: %w", name, err)
		}
	}

	return m, nil
}

// NewUnregistered returns collectors that are not exposed anywhere. Useful in
// tests that only read values through testutil.
func NewUnregistered() *Metrics {
	m, _ := New(prometheus.NewRegistry())
	return m
}
