package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the ingestion jobs

var (
	// API call metrics
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hrderby_api_calls_total",
			Help: "Total number of MLB Stats API calls",
		},
		[]string{"endpoint", "status"},
	)

	APICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hrderby_api_call_duration_seconds",
			Help:    "Duration of MLB Stats API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// Database metrics
	UpsertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hrderby_upserts_total",
			Help: "Total number of upsert operations",
		},
		[]string{"table", "status"},
	)

	// Cache metrics
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hrderby_cache_hits_total",
			Help: "Total number of box score cache hits",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hrderby_cache_misses_total",
			Help: "Total number of box score cache misses",
		},
	)

	// Job metrics
	JobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hrderby_job_runs_total",
			Help: "Total number of import job runs",
		},
		[]string{"job", "status"},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hrderby_job_duration_seconds",
			Help:    "Duration of import job runs in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"job"},
	)

	EligiblePlayers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hrderby_eligible_players",
			Help: "Number of eligible players found by the last season import",
		},
	)

	DailyHomeRuns = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hrderby_daily_home_runs",
			Help: "League-wide home runs counted by the last daily update",
		},
	)
)
