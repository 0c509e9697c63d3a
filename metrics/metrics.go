// Package metrics exposes the process-wide Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SalesCreated counts successful sale insertions.
	SalesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salestrack_sales_created_total",
		Help: "Number of sales added to the store.",
	})

	// SalesDeleted counts successful sale deletions.
	SalesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salestrack_sales_deleted_total",
		Help: "Number of sales deleted from the store.",
	})

	// SalesRestored counts undo restorations.
	SalesRestored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salestrack_sales_restored_total",
		Help: "Number of deleted sales restored via undo.",
	})

	// AuthorizationFailures counts denied record mutations and reads.
	AuthorizationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salestrack_authorization_failures_total",
		Help: "Number of operations denied by the access-control layer.",
	})

	// LoginFailures counts rejected login attempts.
	LoginFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salestrack_login_failures_total",
		Help: "Number of failed login attempts.",
	})
)

// Handler returns the HTTP handler serving the metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
