package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/ExerciseTracker/internal/core/ports"
)

// Health — GET /healthz, проверяет доступность хранилища.
func Health(checker ports.HealthChecker, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.Ping(ctx); err != nil {
			logger.Error("health check failed", "error", err)
			respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"}, logger)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	}
}
