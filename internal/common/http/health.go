package http

import (
	"context"
	"net/http"

	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/constants"
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/logger"
)

type healthResponse struct {
	Status  string `json:"status"`
	App     string `json:"app"`
	Version string `json:"version"`
}

func HealthHandler(log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debugf("health check request")
		WriteJSON(w, http.StatusOK, healthResponse{
			Status:  "healthy",
			App:     constants.AppName,
			Version: constants.AppVersion,
		})
	}
}

func ReadinessHandler(check func(context.Context) error, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := check(r.Context()); err != nil {
			log.WithFields(r.Context(), logger.Fields{
				"action": "readiness_failed",
			}).Warnf("readiness check failed: %v", err)
			WriteErrorEnvelope(w, http.StatusServiceUnavailable, CodeNotReady, "database unavailable", nil, TraceIDFromContext(r.Context()))
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
