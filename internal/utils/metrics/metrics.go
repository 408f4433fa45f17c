package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, path and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketplace_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// RegistrationAttempts counts registrations by result
	// (success, conflict, invalid, error).
	RegistrationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_registration_attempts_total",
			Help: "Total number of registration attempts.",
		},
		[]string{"result"},
	)

	// LoginAttempts counts logins by result (success, invalid_credentials,
	// error). Unknown email and wrong password share one label so the
	// metric cannot leak what the API hides.
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_login_attempts_total",
			Help: "Total number of login attempts.",
		},
		[]string{"result"},
	)

	// SessionsReplaced counts sessions invalidated by a later login.
	SessionsReplaced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marketplace_sessions_replaced_total",
			Help: "Sessions invalidated because the user logged in again.",
		},
	)

	// ExpiredSessionsDeleted counts lazily reaped expired sessions.
	ExpiredSessionsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marketplace_expired_sessions_deleted_total",
			Help: "Expired sessions deleted on access.",
		},
	)

	// OrdersCreated counts completed checkouts.
	OrdersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marketplace_orders_created_total",
			Help: "Total number of orders created.",
		},
	)
)
