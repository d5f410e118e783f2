package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeFailure renders the one opaque failure body used for every
// rejected progression request. The diagnostic goes to the log only;
// the client must not be able to tell a bad secret from a bad token
// from a failed proximity check.
func writeFailure(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	logger.Warn("progression request refused",
		"path", r.URL.Path,
		"error", err,
	)
	writeError(w, http.StatusConflict, "technical error")
}
