// Package metrics defines and registers the custom Prometheus collectors of
// the account service. Every collector is registered with the default
// registry on package initialisation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthRequestsTotal counts signup and signin attempts.
// Labels:
//   - operation: "signup" or "signin"
//   - outcome: "success", "validation_failed", "conflict", "invalid_credentials", "internal_error"
var AuthRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_requests_total",
		Help:      "Total number of signup and signin attempts, by outcome.",
	},
	[]string{"operation", "outcome"},
)

// SigninFailureThresholdTotal counts how often an email reached the
// consecutive failed-signin threshold.
var SigninFailureThresholdTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signin_failure_threshold_total",
		Help:      "Total number of times an account reached the failed signin threshold.",
	},
)

// PasswordHashDuration measures bcrypt hash derivation time.
var PasswordHashDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of password hash derivation.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1},
	},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsTotal counts audit events by what happened to them.
// Label:
//   - result: "written", "failed" or "dropped" (queue full)
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of authentication audit events, by result.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
