package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/questhunt/internal/catalog"
	"github.com/playperu/questhunt/internal/ledger"
	"github.com/playperu/questhunt/internal/questhunt"
	"github.com/playperu/questhunt/internal/token"
)

const leaderboardSize = 20

type SubmitResultRequest struct {
	Nickname       string `json:"nickname"`
	ElapsedSeconds int64  `json:"elapsedSeconds"`
}

type SubmitResultResponse struct {
	Recorded bool `json:"recorded"`
}

type LeaderboardEntry struct {
	Nickname       string `json:"nickname"`
	ElapsedSeconds int64  `json:"elapsedSeconds"`
}

type LeaderboardResponse struct {
	Scenario string             `json:"scenario"`
	Entries  []LeaderboardEntry `json:"entries"`
}

// handleSubmitResult stores a finished run. The elapsed figure comes
// from the scenario-complete outcome; together with the token's player
// id and restart count it forms the idempotency key, so double-submits
// are harmless.
func handleSubmitResult(logger *slog.Logger, tokens *token.Codec, led *ledger.Ledger, cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scenario := chi.URLParam(r, "scenario")

		state, err := tokens.Decode(stateTokenFromRequest(r))
		if err != nil {
			writeFailure(w, r, logger, err)
			return
		}
		if state.Scenario != scenario || !cat.HasScenario(scenario) {
			writeError(w, http.StatusConflict, "technical error")
			return
		}

		var req SubmitResultRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Nickname = strings.TrimSpace(req.Nickname)
		if req.Nickname == "" || req.ElapsedSeconds <= 0 {
			writeError(w, http.StatusBadRequest, "nickname and elapsedSeconds are required")
			return
		}

		recorded, err := led.Record(r.Context(), questhunt.Result{
			PlayerID:       state.PlayerID,
			Scenario:       scenario,
			Restarts:       state.Restarts,
			ElapsedSeconds: req.ElapsedSeconds,
			Nickname:       req.Nickname,
		})
		if err != nil {
			logger.Error("recording result", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, SubmitResultResponse{Recorded: recorded})
	}
}

func handleLeaderboard(logger *slog.Logger, led *ledger.Ledger, cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scenario := chi.URLParam(r, "scenario")
		if !cat.HasScenario(scenario) {
			writeError(w, http.StatusNotFound, "scenario not found")
			return
		}

		results, err := led.Top(r.Context(), scenario, leaderboardSize)
		if err != nil {
			logger.Error("listing results", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp := LeaderboardResponse{Scenario: scenario, Entries: []LeaderboardEntry{}}
		for _, res := range results {
			resp.Entries = append(resp.Entries, LeaderboardEntry{
				Nickname:       res.Nickname,
				ElapsedSeconds: res.ElapsedSeconds,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
