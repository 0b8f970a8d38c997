package router

import (
	"time"

	// Packages
	trace "go.opentelemetry.io/otel/trace"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt sets an option on the router
type Opt func(*Router)

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Opt {
	return func(r *Router) {
		if log != nil {
			r.log = log
		}
	}
}

// WithTracer sets the tracer for query spans
func WithTracer(tracer trace.Tracer) Opt {
	return func(r *Router) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// WithMetrics sets the metrics which are updated on each query
func WithMetrics(metrics *Metrics) Opt {
	return func(r *Router) {
		if metrics != nil {
			r.metrics = metrics
		}
	}
}

// WithClock sets the clock used to expand placeholders in the system prompt
func WithClock(now func() time.Time) Opt {
	return func(r *Router) {
		if now != nil {
			r.now = now
		}
	}
}
