// Package questhunt defines the core domain types of the progression engine.
// It has zero external dependencies — everything here is pure Go.
package questhunt

import "time"

// Coordinates is an immutable geographic position (WGS 84).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Quest is one step of a scenario. A quest is unlocked by scanning a QR
// code carrying its secret, optionally bounded by a countdown, and
// optionally confirmed by a GPS reading near its target.
type Quest struct {
	Order  int
	Name   string
	Secret string

	// Target is nil when the quest has no proximity check.
	Target *Coordinates

	// Countdown is the time limit for the quest; zero means no deadline.
	Countdown time.Duration

	// FictionalCountdown is shown to the player instead of the real one.
	// Cosmetic only; zero means none.
	FictionalCountdown time.Duration

	SuccessPage    string
	FailurePage    string
	InProgressPage string
}

// Scenario is a named, ordered quest sequence representing one complete
// game run. Quest orders are dense and zero-based.
type Scenario struct {
	Name   string
	Quests []Quest
}

// State is the progression record carried inside the client token. Each
// accepted transition produces a new value; a State is never mutated.
type State struct {
	Scenario string
	Quest    int

	// Deadline is the absolute completion deadline for the current quest.
	// Nil when the quest has no countdown.
	Deadline *time.Time

	StartedAt time.Time

	// PlayerID is generated once per player and survives restarts.
	PlayerID string

	// Restarts counts how many times this player re-initialized the same
	// scenario from scratch.
	Restarts int
}

// LocationReading is a GPS fix plus its capture time, submitted as
// evidence of physical presence. Constructed fresh per request, never
// persisted.
type LocationReading struct {
	Position   Coordinates
	CapturedAt time.Time
}

// Result is a finished scenario run, as stored on the leaderboard.
type Result struct {
	PlayerID       string
	Scenario       string
	Restarts       int
	ElapsedSeconds int64
	Nickname       string
}
