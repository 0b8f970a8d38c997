package router

import (
	// Packages
	prometheus "github.com/prometheus/client_golang/prometheus"
	promauto "github.com/prometheus/client_golang/prometheus/promauto"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Metrics are the query counters and latencies, labelled by provider family
type Metrics struct {
	Queries  *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	Clamped  *prometheus.CounterVec
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	namespace = "llmquery"
	subsystem = "router"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewMetrics creates the metrics and registers them with reg. When reg is
// nil the metrics are not registered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Queries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "queries_total",
				Help:      "Total number of queries by family and outcome",
			},
			[]string{"family", "outcome"},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "query_duration_seconds",
				Help:      "Duration of provider calls",
				Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"family"},
		),
		Clamped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "max_tokens_clamped_total",
				Help:      "Total number of queries whose max tokens exceeded the model limit",
			},
			[]string{"family"},
		),
	}
}
