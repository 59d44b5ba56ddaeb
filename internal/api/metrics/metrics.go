// Package metrics defines and registers all custom Prometheus metrics for the
// identity server. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default registry at import time via promauto; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// ── Sign-in metrics ───────────────────────────────────────────────────────────

// SignInsTotal counts sign-in attempts by outcome.
// Label:
//   - outcome: "succeeded", "invalid_credentials", "token_failed",
//     "throttled" or "error"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersCreatedTotal counts successful signups.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created.",
	},
)

// PasswordResetsTotal counts successful password resets.
var PasswordResetsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of successful password resets.",
	},
)

// ── Role metrics ──────────────────────────────────────────────────────────────

// RoleMutationsTotal counts role catalogue changes.
// Label:
//   - op: "create", "update" or "delete"
var RoleMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_mutations_total",
		Help:      "Total number of successful role create/update/delete operations.",
	},
	[]string{"op"},
)

// RoleAssignmentsTotal counts successful user-role link operations, repeats
// included.
var RoleAssignmentsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_assignments_total",
		Help:      "Total number of successful role assignments.",
	},
)
