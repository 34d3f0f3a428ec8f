package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quorum_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quorum_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// VoteOperations counts vote ledger operations by target kind and outcome.
	// Outcome is one of: applied, swapped, noop, removed.
	VoteOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quorum_vote_operations_total",
		Help: "Total vote ledger operations by target kind and outcome",
	}, []string{"target_kind", "outcome"})

	// TopicTransitions counts topic lifecycle transitions by target status.
	TopicTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quorum_topic_transitions_total",
		Help: "Total topic status transitions by target status",
	}, []string{"status"})

	// ModerationActions counts recorded moderation log entries by action type.
	ModerationActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quorum_moderation_actions_total",
		Help: "Total moderation ledger entries by action type",
	}, []string{"action"})

	// CounterRecomputeRuns counts counter repair runs and whether drift was found.
	CounterRecomputeRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quorum_counter_recompute_runs_total",
		Help: "Total counter recomputation runs by result",
	}, []string{"result"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
