package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/questhunt/internal/engine"
	"github.com/playperu/questhunt/internal/questhunt"
	"github.com/playperu/questhunt/internal/token"
)

// handleCompleteInit is the redirect step before completion: it
// re-checks the secret and tells the client to obtain a GPS fix, then
// call the completion endpoint. No state is read or written.
func handleCompleteInit(logger *slog.Logger, eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scenario := chi.URLParam(r, "scenario")
		secret := chi.URLParam(r, "secret")

		order, err := strconv.Atoi(chi.URLParam(r, "order"))
		if err != nil {
			writeFailure(w, r, logger, err)
			return
		}

		out, err := eng.InitComplete(scenario, order, secret)
		if err != nil {
			writeFailure(w, r, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, outcomeResponse(out, secret))
	}
}

// handleComplete evaluates quest completion. The state cookie is read
// leniently: a garbled token degrades to a fresh player, whose request
// then fails the scenario check like any other mismatch. The cookie is
// re-issued unchanged either way, since completion never advances
// progression.
func handleComplete(logger *slog.Logger, eng *engine.Engine, tokens *token.Codec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scenario := chi.URLParam(r, "scenario")
		secret := chi.URLParam(r, "secret")
		locTransport := chi.URLParam(r, "location")

		order, err := strconv.Atoi(chi.URLParam(r, "order"))
		if err != nil {
			writeFailure(w, r, logger, err)
			return
		}

		var state questhunt.State
		if prior := tokens.DecodeLenient(stateTokenFromRequest(r)); prior != nil {
			state = *prior
		}

		out, err := eng.Complete(state, scenario, order, secret, locTransport)
		if err != nil {
			writeFailure(w, r, logger, err)
			return
		}

		// Same state, fresh seal.
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
