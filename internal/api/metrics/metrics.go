// Package metrics defines the custom Prometheus metrics for the book catalog
// API. It is the single source of truth for metric names, labels, and help
// strings; request-level metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookcatalog"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "failure", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successfully created accounts via /api/register.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful user registrations.",
	},
)

// TokenRejectionsTotal counts requests rejected by the access guard.
// Label:
//   - reason: "missing" (no Authorization header) or "invalid" (bad
//     signature, malformed, or expired token)
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of requests rejected by token verification.",
	},
	[]string{"reason"},
)

// BookMutationsTotal counts successful write operations on the catalog.
// Label:
//   - operation: "create", "update", or "delete"
var BookMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "book_mutations_total",
		Help:      "Total number of successful book mutations, by operation.",
	},
	[]string{"operation"},
)

// AuditQueueDepth tracks events waiting in each audit writer channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each writer channel.",
	},
	[]string{"worker_id"},
)
