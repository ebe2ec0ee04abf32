package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UsersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pantry_users_registered_total",
			Help: "Total number of registered users",
		},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_login_attempts_total",
			Help: "Total number of login attempts by outcome",
		},
		[]string{"outcome"},
	)

	SessionsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pantry_sessions_issued_total",
			Help: "Total number of session tokens issued",
		},
	)

	SessionsRevoked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pantry_sessions_revoked_total",
			Help: "Total number of session tokens revoked on logout",
		},
	)

	SessionValidationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pantry_session_validations_total",
			Help: "Total number of session token validations",
		},
	)

	SessionValidationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_session_validations_failed_total",
			Help: "Total number of failed session token validations by reason",
		},
		[]string{"reason"},
	)

	RevokedSessionsPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pantry_revoked_sessions_pruned_total",
			Help: "Total number of expired revoked session rows deleted",
		},
	)
)
