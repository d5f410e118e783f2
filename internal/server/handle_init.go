package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/questhunt/internal/engine"
	"github.com/playperu/questhunt/internal/token"
)

// handleInit starts (or restarts) a scenario. The URL comes out of the
// QR code at the scenario's start line. A missing or garbled state
// cookie is fine here: that is simply a fresh player.
func handleInit(logger *slog.Logger, eng *engine.Engine, tokens *token.Codec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scenario := chi.URLParam(r, "scenario")
		secret := chi.URLParam(r, "secret")

		prior := tokens.DecodeLenient(stateTokenFromRequest(r))

		out, state, err := eng.InitScenario(prior, scenario, secret)
		if err != nil {
			writeFailure(w, r, logger, err)
			return
		}

		tok, err := tokens.Encode(state)
		if err != nil {
			logger.Error("encoding state token", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		setStateCookie(w, tok)

		writeJSON(w, http.StatusOK, outcomeResponse(out, secret))
	}
}
