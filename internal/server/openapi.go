package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "QuestHunt API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Stateless progression backend for QR-and-GPS scavenger hunts. " +
		"All player progress rides in an encrypted cookie; the server stores only the leaderboard.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/scenarios/{scenario}/init/{secret}
	getInit, _ := r.NewOperationContext(http.MethodGet, "/api/scenarios/{scenario}/init/{secret}")
	getInit.SetSummary("Initialize scenario")
	getInit.SetDescription("Begins (or restarts) a scenario at quest 0. The URL is carried by the QR code " +
		"at the start line. Sets a fresh state cookie and returns an acquire_location outcome.")
	getInit.AddRespStructure(OutcomeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getInit.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(getInit)

	// GET /api/scenarios/{scenario}/quests/{order}/start/{secret}/{location}
	getStart, _ := r.NewOperationContext(http.MethodGet, "/api/scenarios/{scenario}/quests/{order}/start/{secret}/{location}")
	getStart.SetSummary("Start quest")
	getStart.SetDescription("Advances from the previous quest using fresh location evidence. Requires a valid " +
		"state cookie; returns the countdown outcome and a new state cookie.")
	getStart.AddRespStructure(OutcomeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getStart.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(getStart)

	// GET /api/scenarios/{scenario}/quests/{order}/complete/init/{secret}
	getCompleteInit, _ := r.NewOperationContext(http.MethodGet, "/api/scenarios/{scenario}/quests/{order}/complete/init/{secret}")
	getCompleteInit.SetSummary("Prepare completion")
	getCompleteInit.SetDescription("Redirect step before completion: tells the client to obtain a GPS fix and " +
		"then call the completion endpoint. Reads and writes no state.")
	getCompleteInit.AddRespStructure(OutcomeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getCompleteInit.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(getCompleteInit)

	// GET /api/scenarios/{scenario}/quests/{order}/complete/{secret}/{location}
	getComplete, _ := r.NewOperationContext(http.MethodGet, "/api/scenarios/{scenario}/quests/{order}/complete/{secret}/{location}")
	getComplete.SetSummary("Complete quest")
	getComplete.SetDescription("Evaluates quest completion against the state cookie and fresh location evidence. " +
		"Returns a success, failure, or scenario-complete outcome; the cookie is re-issued unchanged.")
	getComplete.AddRespStructure(OutcomeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getComplete.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(getComplete)

	// POST /api/scenarios/{scenario}/leaderboard
	postResult, _ := r.NewOperationContext(http.MethodPost, "/api/scenarios/{scenario}/leaderboard")
	postResult.SetSummary("Submit result")
	postResult.SetDescription("Stores a finished run on the leaderboard. Requires the state cookie of the " +
		"completed run; resubmission is idempotent.")
	postResult.AddReqStructure(SubmitResultRequest{})
	postResult.AddRespStructure(SubmitResultResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postResult.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postResult.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postResult)

	// GET /api/scenarios/{scenario}/leaderboard
	getBoard, _ := r.NewOperationContext(http.MethodGet, "/api/scenarios/{scenario}/leaderboard")
	getBoard.SetSummary("Leaderboard")
	getBoard.SetDescription("Returns the fastest runs for a scenario.")
	getBoard.AddRespStructure(LeaderboardResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getBoard.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getBoard)

	// GET /api/operator/location-check
	getCheck, _ := r.NewOperationContext(http.MethodGet, "/api/operator/location-check")
	getCheck.SetSummary("Location check status")
	getCheck.SetDescription("Reports whether proximity checks are applied. Operator-only.")
	getCheck.AddRespStructure(LocationCheckResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getCheck.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getCheck)

	// POST /api/operator/location-check/toggle
	postToggle, _ := r.NewOperationContext(http.MethodPost, "/api/operator/location-check/toggle")
	postToggle.SetSummary("Toggle location check")
	postToggle.SetDescription("Flips the process-wide proximity check and returns the new value. Operator-only.")
	postToggle.AddRespStructure(LocationCheckResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postToggle.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postToggle)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
