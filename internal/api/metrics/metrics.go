// Package metrics defines all custom Prometheus metrics for the storefront
// gateway. It is the single source of truth for metric names, labels, and
// help strings; everything registers with the default registry at init via
// promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Guard metrics ─────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts access-guard outcomes.
// Labels:
//   - decision: "allow", "redirect_login", "redirect_home"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of access guard decisions, by outcome.",
	},
	[]string{"decision"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionOperationsTotal counts session lifecycle operations.
// Labels:
//   - op: "login", "logout", "refresh"
//   - result: "ok" or "error"
var SessionOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_operations_total",
		Help:      "Total number of session lifecycle operations, by result.",
	},
	[]string{"op", "result"},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartOperationsTotal counts cart mutations.
// Label:
//   - op: "add", "update", "remove", "clear", "checkout"
var CartOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_operations_total",
		Help:      "Total number of cart operations, by kind.",
	},
	[]string{"op"},
)

// ── Upstream boundary metrics ─────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls to the marketplace API boundary.
// Labels:
//   - resource: logical resource ("shops", "products", "orders", …)
//   - result: "ok", "auth", "not_found", "error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests to the marketplace API boundary.",
	},
	[]string{"resource", "result"},
)

// ── Activity pipeline metrics ─────────────────────────────────────────────────

// ActivityProcessedTotal counts activity events that completed processing.
// Label:
//   - kind: the event kind ("login", "cart_updated", …)
var ActivityProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_processed_total",
		Help:      "Total number of activity events successfully processed.",
	},
	[]string{"kind"},
)

// ActivityErrorsTotal counts activity events that failed processing.
// Label:
//   - reason: short description ("unknown_kind", "insert_failed", "queue_full")
var ActivityErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of activity events that failed processing.",
	},
	[]string{"reason"},
)

// ActivityDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new event, processed)
var ActivityDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dedup_total",
		Help:      "Total number of deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ActivityQueueDepth tracks the current number of events waiting in each
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityProcessingDuration measures how long a single event takes to
// process end-to-end.
// Label:
//   - kind: the event kind
var ActivityProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_processing_duration_seconds",
		Help:      "Duration of activity event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)
