// Package metrics defines and registers all custom Prometheus metrics for
// the user service. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package init via promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "users"

// CreatedTotal counts successfully created users.
var CreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of users created.",
	},
)

// DeletedTotal counts successfully deleted users.
var DeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deleted_total",
		Help:      "Total number of users deleted.",
	},
)

// DuplicateEmailRejectionsTotal counts writes rejected by the email
// uniqueness invariant.
// Label:
//   - operation: "create" or "update"
var DuplicateEmailRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "duplicate_email_rejections_total",
		Help:      "Total number of create/update requests rejected because the email was already in use.",
	},
	[]string{"operation"},
)

// EmailCacheTotal counts email-lookup cache decisions.
// Label:
//   - result: "hit" or "miss"
var EmailCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "email_cache_total",
		Help:      "Total number of email lookup cache checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
