// Package observability holds the prometheus instruments exposed on /metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EventsPublishedTotal counts lifecycle events handed to the broker, by type.
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "freightmatch", Name: "events_published_total", Help: "Lifecycle events published"},
		[]string{"type"},
	)

	// EventPublishFailuresTotal counts publish attempts that the broker rejected.
	// Publishing is fire-and-forget, so failures show up here and in the log only.
	EventPublishFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "freightmatch", Name: "event_publish_failures_total", Help: "Failed event publish attempts"},
		[]string{"type"},
	)

	// SweepProcessedTotal counts records the expiration sweeps moved to a
	// terminal state, by sweep kind.
	SweepProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "freightmatch", Name: "sweep_processed_total", Help: "Records expired by the sweeper"},
		[]string{"sweep"},
	)

	// SweepDuration observes how long one sweeper pass takes.
	SweepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "freightmatch",
			Name:      "sweep_duration_seconds",
			Help:      "Expiration sweep pass latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"sweep"},
	)
)
