// Package metrics defines all custom Prometheus metrics for the notes API.
// It is the single source of truth for metric names, labels, and help
// strings. Metrics register with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "notes"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - operation: "register" or "login"
//   - result: "success", "invalid", "conflict", "rejected" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by operation and result.",
	},
	[]string{"operation", "result"},
)

// ── Note metrics ──────────────────────────────────────────────────────────────

// NoteOperationsTotal counts note operations that reached the service.
// Labels:
//   - operation: "create", "get", "update", "delete", "list" or "render"
//   - result: "success", "not_found", "forbidden", "invalid" or "error"
var NoteOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "note_operations_total",
		Help:      "Total number of note operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// RenderCacheTotal counts render cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var RenderCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "render_cache_total",
		Help:      "Total number of render cache lookups, labelled by result.",
	},
	[]string{"result"},
)

// RenderQueueDropsTotal counts warm-up requests dropped because a worker was busy.
var RenderQueueDropsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "render_queue_drops_total",
		Help:      "Total number of render warm-ups dropped on a full queue.",
	},
)

// ── AI metrics ────────────────────────────────────────────────────────────────

// AIRequestDuration measures assist calls end to end.
// Labels:
//   - task: "autocomplete", "grammar", "translate" or "health"
//   - result: "success" or "error"
var AIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ai_request_duration_seconds",
		Help:      "Duration of AI assist requests.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
	},
	[]string{"task", "result"},
)
