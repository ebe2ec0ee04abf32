package service

import (
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/observability/metrics"
)

func incrementUsersRegistered() {
	metrics.UsersRegistered.Inc()
}

func incrementLoginAttempts(outcome string) {
	metrics.LoginAttempts.WithLabelValues(outcome).Inc()
}

func incrementSessionsIssued() {
	metrics.SessionsIssued.Inc()
}

func incrementSessionsRevoked() {
	metrics.SessionsRevoked.Inc()
}

func incrementSessionValidations() {
	metrics.SessionValidationsTotal.Inc()
}

func incrementSessionValidationFailed(reason string) {
	metrics.SessionValidationsFailed.WithLabelValues(reason).Inc()
}

func addRevokedSessionsPruned(n int64) {
	metrics.RevokedSessionsPruned.Add(float64(n))
}
