// Package metrics defines and registers the custom Prometheus metrics of the
// user API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default registry on package load, so
// importing the package is enough; /metrics exposes them via promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric of the service, including the HTTP metrics
// recorded by the echoprometheus middleware.
const Namespace = "user_api"

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersCreatedTotal counts users persisted through CreateUser.
// Label:
//   - role: the stored role ("user", "admin", ...)
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created, by role.",
	},
	[]string{"role"},
)

// RequestErrorsTotal counts failed use case invocations as seen by the API.
// Labels:
//   - operation: "create_user", "get_all_users" or "get_user_by_id"
//   - kind: "validation", "not_found", "conflict" or "unexpected"
var RequestErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "request_errors_total",
		Help:      "Total number of failed user operations, by operation and error kind.",
	},
	[]string{"operation", "kind"},
)

// ── Repository metrics ────────────────────────────────────────────────────────

// RepositoryOperationDuration measures each port call.
// Labels:
//   - adapter: "memory", "mongo" or "redis"
//   - operation: "create", "find_all" or "find_by_id"
var RepositoryOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "repository_operation_duration_seconds",
		Help:      "Duration of user repository operations.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"adapter", "operation"},
)

// RepositoryErrorsTotal counts port calls that returned an error.
var RepositoryErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "repository_errors_total",
		Help:      "Total number of failed user repository operations.",
	},
	[]string{"adapter", "operation"},
)
