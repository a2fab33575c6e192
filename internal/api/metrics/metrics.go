// Package metrics defines and registers all custom Prometheus metrics for
// the store ratings API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storeratings"

// RatingsSubmittedTotal counts rating submissions that completed.
// Label:
//   - result: "created" for a first rating, "updated" for an upsert that
//     replaced an existing score
var RatingsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_submitted_total",
		Help:      "Total number of rating submissions, by upsert result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AccountsCreatedTotal counts accounts created through registration or
// admin provisioning.
// Label:
//   - role: "admin", "user", or "store_owner"
var AccountsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_created_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// StoresCreatedTotal counts stores created by admins.
var StoresCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stores_created_total",
		Help:      "Total number of stores created.",
	},
)
