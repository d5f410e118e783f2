package server

import (
	"log/slog"
	"net/http"

	"github.com/playperu/questhunt/internal/engine"
)

type LocationCheckResponse struct {
	LocationCheck bool `json:"locationCheck"`
}

func handleLocationCheckStatus(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, LocationCheckResponse{LocationCheck: eng.LocationCheckEnabled()})
	}
}

// handleToggleLocationCheck flips the process-wide proximity check.
// Used for demos and rehearsals where nobody wants to walk the course.
func handleToggleLocationCheck(logger *slog.Logger, eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		enabled := eng.ToggleLocationCheck()
		logger.Info("location check toggled", "enabled", enabled)
		writeJSON(w, http.StatusOK, LocationCheckResponse{LocationCheck: enabled})
	}
}
