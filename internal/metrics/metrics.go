// Package metrics is the single source of truth for custom Prometheus metric
// names, labels, and help strings. Request-level latency and status counts
// come from the echoprometheus middleware; only domain counters live here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "userhub"

// SecurityDenialsTotal counts guard denials.
// Labels:
//   - reason: "bot", "shield" or "rate_limit"
//   - tier: "guest", "user" or "admin"
//   - enforced: "true" when the request was blocked, "false" in dry-run
var SecurityDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "security_denials_total",
		Help:      "Total number of deny verdicts from the abuse-decision engine.",
	},
	[]string{"reason", "tier", "enforced"},
)

// AuthFailuresTotal counts rejected credential verifications (missing,
// malformed or expired tokens).
var AuthFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of failed authentication attempts.",
	},
)

// GuardErrorsTotal counts internal guard failures (engine unreachable).
// Label:
//   - outcome: "fail_open" (development) or "fail_closed" (production)
var GuardErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_errors_total",
		Help:      "Total number of internal security middleware errors.",
	},
	[]string{"outcome"},
)
