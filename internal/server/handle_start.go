package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/questhunt/internal/engine"
	"github.com/playperu/questhunt/internal/token"
)

// handleStartQuest moves the player onto the next quest. Unlike init
// and complete, prior progress is mandatory: a missing or undecryptable
// state cookie is a hard failure, not a fresh start.
func handleStartQuest(logger *slog.Logger, eng *engine.Engine, tokens *token.Codec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scenario := chi.URLParam(r, "scenario")
		secret := chi.URLParam(r, "secret")
		locTransport := chi.URLParam(r, "location")

		order, err := strconv.Atoi(chi.URLParam(r, "order"))
		if err != nil {
			writeFailure(w, r, logger, err)
			return
		}

		state, err := tokens.Decode(stateTokenFromRequest(r))
		if err != nil {
			writeFailure(w, r, logger, err)
			return
		}

		out, next, err := eng.StartQuest(state, scenario, order, secret, locTransport)
		if err != nil {
			writeFailure(w, r, logger, err)
			return
		}

		tok, err := tokens.Encode(next)
		if err != nil {
			logger.Error("encoding state token", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		setStateCookie(w, tok)

		writeJSON(w, http.StatusOK, outcomeResponse(out, secret))
	}
}
