package engine

import (
	"time"

	"github.com/playperu/questhunt/internal/questhunt"
)

// Kind discriminates the client-visible result of an engine operation.
type Kind string

const (
	// KindAcquireLocation tells the client to obtain a GPS fix and then
	// call the completion endpoint for the named quest.
	KindAcquireLocation Kind = "acquire_location"

	// KindCountdown shows the running-quest view with its deadline.
	KindCountdown Kind = "countdown"

	// KindQuestEnd shows a success or failure page and names the next
	// quest to start.
	KindQuestEnd Kind = "quest_end"

	// KindScenarioComplete ends the run; the elapsed figure feeds the
	// leaderboard.
	KindScenarioComplete Kind = "scenario_complete"
)

// Outcome is the immutable result of one engine operation. Which fields
// are meaningful depends on Kind.
type Outcome struct {
	Kind     Kind
	Scenario string
	Quest    int

	// Page is the outcome page to render (countdown, quest end,
	// scenario complete).
	Page string

	// Countdown fields.
	Deadline           *time.Time
	FictionalCountdown time.Duration
	Target             *questhunt.Coordinates

	// NextQuest is set for KindQuestEnd.
	NextQuest int

	// ElapsedSeconds is set for KindScenarioComplete.
	ElapsedSeconds int64
}
