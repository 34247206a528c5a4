// Package metrics defines and registers the custom Prometheus metrics of the
// users API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry through
// promauto when the package is first imported.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "users"

// Login outcomes used as the result label of LoginAttemptsTotal.
const (
	LoginSuccess      = "success"
	LoginInvalid      = "invalid_credentials"
	LoginBadRequest   = "bad_request"
	LoginServiceError = "error"
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts POST /auth/login calls.
// Label:
//   - result: "success", "invalid_credentials", "bad_request" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthorizationDenialsTotal counts requests rejected for lack of privilege.
// Label:
//   - action: the denied operation (e.g. "update", "assign_admin", "delete")
var AuthorizationDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_denials_total",
		Help:      "Total number of requests denied by the authorization policy.",
	},
	[]string{"action"},
)

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersCreatedTotal counts newly registered accounts.
// Label:
//   - type: "admin" or "user"
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of user accounts created, by type.",
	},
	[]string{"type"},
)

// UsersDeletedTotal counts removed accounts.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deleted_total",
		Help:      "Total number of user accounts deleted.",
	},
)
