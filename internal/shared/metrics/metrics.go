// Package metrics provides Prometheus metrics for catalog queries and ingestion
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Query metrics
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toolcat_queries_total",
			Help: "Total number of finder queries",
		},
		[]string{"strategy", "status"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "toolcat_query_duration_seconds",
			Help:    "Time taken to run a finder query including schema assembly",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"strategy"},
	)

	SchemasAssembled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toolcat_schemas_assembled_total",
			Help: "Schemas built from tool rows, by outcome",
		},
		[]string{"group", "outcome"},
	)

	// Ingestion metrics
	RowsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toolcat_rows_ingested_total",
			Help: "Rows written or skipped by the loaders",
		},
		[]string{"table", "outcome"},
	)
)

const (
	StatusOK    = "ok"
	StatusError = "error"

	OutcomeBuilt    = "built"
	OutcomeFallback = "fallback"
	OutcomeSkipped  = "skipped"
	OutcomeLoaded   = "loaded"
)
