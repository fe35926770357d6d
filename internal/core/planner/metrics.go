package planner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_engine_operations_total",
			Help: "Total number of engine operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pantry_engine_operation_duration_seconds",
			Help:    "Engine operation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"operation"},
	)

	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_engine_cache_lookups_total",
			Help: "Result cache lookups by operation and result",
		},
		[]string{"operation", "result"},
	)

	shortfallsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pantry_engine_consume_shortfalls_total",
			Help: "Requirements left partly unconsumed after a consume call",
		},
	)

	degradedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pantry_engine_degraded_availability_total",
			Help: "Availability results that summed unconvertible quantities",
		},
	)
)
