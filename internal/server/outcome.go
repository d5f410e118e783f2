package server

import (
	"fmt"
	"time"

	"github.com/playperu/questhunt/internal/engine"
)

// TargetInfo is a quest target coordinate as shown to the client.
type TargetInfo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// OutcomeResponse is the client-visible result of a progression
// request. Which fields are present depends on kind.
type OutcomeResponse struct {
	Kind     string `json:"kind"`
	Scenario string `json:"scenario"`
	Quest    int    `json:"quest"`
	Page     string `json:"page,omitempty"`

	// CompletePath is set for acquire_location outcomes: the endpoint
	// to call once a GPS fix is obtained, with "{location}" left for
	// the client to substitute.
	CompletePath string `json:"completePath,omitempty"`

	// Countdown fields.
	Deadline         *time.Time  `json:"deadline,omitempty"`
	FictionalSeconds int64       `json:"fictionalSeconds,omitempty"`
	Target           *TargetInfo `json:"target,omitempty"`

	NextQuest      *int   `json:"nextQuest,omitempty"`
	ElapsedSeconds *int64 `json:"elapsedSeconds,omitempty"`
}

// outcomeResponse flattens an engine outcome for the wire. secret is
// needed to rebuild the completion path for acquire_location outcomes;
// the client already holds it (it came out of the scanned QR code).
func outcomeResponse(out engine.Outcome, secret string) OutcomeResponse {
	resp := OutcomeResponse{
		Kind:     string(out.Kind),
		Scenario: out.Scenario,
		Quest:    out.Quest,
		Page:     out.Page,
	}

	switch out.Kind {
	case engine.KindAcquireLocation:
		resp.CompletePath = fmt.Sprintf("/api/scenarios/%s/quests/%d/complete/%s/{location}",
			out.Scenario, out.Quest, secret)
	case engine.KindCountdown:
		resp.Deadline = out.Deadline
		resp.FictionalSeconds = int64(out.FictionalCountdown.Seconds())
		if out.Target != nil {
			resp.Target = &TargetInfo{Lat: out.Target.Lat, Lon: out.Target.Lon}
		}
	case engine.KindQuestEnd:
		next := out.NextQuest
		resp.NextQuest = &next
	case engine.KindScenarioComplete:
		elapsed := out.ElapsedSeconds
		resp.ElapsedSeconds = &elapsed
	}
	return resp
}
