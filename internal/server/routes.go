package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("QuestHunt API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, deps.DB))

	// Player routes. init and the two completion endpoints are GETs
	// because their URLs come out of QR codes and device redirects.
	r.Route("/api/scenarios/{scenario}", func(r chi.Router) {
		r.Get("/init/{secret}", handleInit(logger, deps.Engine, deps.Tokens))
		r.Get("/quests/{order}/start/{secret}/{location}", handleStartQuest(logger, deps.Engine, deps.Tokens))
		r.Get("/quests/{order}/complete/init/{secret}", handleCompleteInit(logger, deps.Engine))
		r.Get("/quests/{order}/complete/{secret}/{location}", handleComplete(logger, deps.Engine, deps.Tokens))

		r.Post("/leaderboard", handleSubmitResult(logger, deps.Tokens, deps.Ledger, deps.Catalog))
		r.Get("/leaderboard", handleLeaderboard(logger, deps.Ledger, deps.Catalog))
	})

	// Operator routes are off unless a password hash is configured.
	if deps.OperatorPasswordHash != "" {
		r.Route("/api/operator", func(r chi.Router) {
			r.Use(operatorAuthMiddleware(deps.OperatorPasswordHash))
			r.Get("/location-check", handleLocationCheckStatus(deps.Engine))
			r.Post("/location-check/toggle", handleToggleLocationCheck(logger, deps.Engine))
		})
	}
}
