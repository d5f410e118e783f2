// Package engine implements the quest progression state machine. It is
// stateless per request: all durable data arrives in the caller-supplied
// state and leaves in the returned state. The only process-wide mutable
// piece is the location-check toggle.
package engine

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/playperu/questhunt/internal/catalog"
	"github.com/playperu/questhunt/internal/geo"
	"github.com/playperu/questhunt/internal/location"
	"github.com/playperu/questhunt/internal/questhunt"
)

// ErrTechnical covers every unmet precondition: bad secret, state/path
// mismatch, stale or malformed location evidence, proximity failure.
// The boundary renders all of them as one opaque failure page; the
// wrapped message is for the log.
var ErrTechnical = errors.New("technical error")

const (
	// FreshnessWindow is the maximum age of a location reading. Older
	// readings are treated as replays.
	FreshnessWindow = 30 * time.Second

	// ProximityTolerance is the maximum accepted distance to a quest
	// target, in meters.
	ProximityTolerance = 100.0

	// initDeadlineYears makes quest 0 effectively unlimited: the player
	// is already standing at the start when they scan the initiating
	// code.
	initDeadlineYears = 10
)

type Engine struct {
	catalog       *catalog.Catalog
	locationCheck atomic.Bool

	// now is replaceable in tests.
	now func() time.Time
}

func New(c *catalog.Catalog, locationCheck bool) *Engine {
	e := &Engine{catalog: c, now: time.Now}
	e.locationCheck.Store(locationCheck)
	return e
}

// LocationCheckEnabled reports whether proximity checks are applied.
func (e *Engine) LocationCheckEnabled() bool {
	return e.locationCheck.Load()
}

// ToggleLocationCheck flips the process-wide proximity check and
// returns the new value. Operator-only; per-player state never carries
// this flag.
func (e *Engine) ToggleLocationCheck() bool {
	for {
		old := e.locationCheck.Load()
		if e.locationCheck.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func technicalf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrTechnical, fmt.Sprintf(format, args...))
}

// InitScenario begins (or restarts) a scenario at quest 0. prior is the
// leniently decoded previous state, nil for a fresh player. The player
// id survives restarts; the restart counter increments only when the
// same scenario is re-initialized.
//
// The outcome funnels the player straight into the completion path for
// quest 0, so location-permission or device problems surface at the
// start line instead of out in the field.
func (e *Engine) InitScenario(prior *questhunt.State, scenario, secret string) (Outcome, questhunt.State, error) {
	if _, err := e.catalog.FindQuestWithSecret(scenario, 0, secret); err != nil {
		return Outcome{}, questhunt.State{}, fmt.Errorf("%w: init %q: %w", ErrTechnical, scenario, err)
	}

	playerID := uuid.NewString()
	restarts := 0
	if prior != nil {
		playerID = prior.PlayerID
		if prior.Scenario == scenario {
			restarts = prior.Restarts + 1
		}
	}

	now := e.now()
	deadline := now.AddDate(initDeadlineYears, 0, 0)
	state := questhunt.State{
		Scenario:  scenario,
		Quest:     0,
		Deadline:  &deadline,
		StartedAt: now,
		PlayerID:  playerID,
		Restarts:  restarts,
	}

	return Outcome{
		Kind:     KindAcquireLocation,
		Scenario: scenario,
		Quest:    0,
	}, state, nil
}

// StartQuest moves the player from quest order-1 to quest order. The
// secret gates the quest being entered; leaving the previous quest
// needs none. Retrying the quest already active replays the countdown
// view without touching state or evidence.
func (e *Engine) StartQuest(state questhunt.State, scenario string, order int, secret, locTransport string) (Outcome, questhunt.State, error) {
	q, err := e.catalog.FindQuestWithSecret(scenario, order, secret)
	if err != nil {
		return Outcome{}, questhunt.State{}, fmt.Errorf("%w: start %q/%d: %w", ErrTechnical, scenario, order, err)
	}

	if state.Scenario != scenario {
		return Outcome{}, questhunt.State{}, technicalf("state token is for scenario %q, not %q", state.Scenario, scenario)
	}

	if order == state.Quest {
		// The player reloaded the countdown screen of the quest already
		// running.
		return countdownOutcome(scenario, q, state.Deadline), state, nil
	}

	if state.Quest != order-1 {
		return Outcome{}, questhunt.State{}, technicalf("state token is at quest %d, cannot start quest %d", state.Quest, order)
	}

	prev, err := e.catalog.FindQuest(scenario, order-1)
	if err != nil {
		return Outcome{}, questhunt.State{}, fmt.Errorf("%w: previous quest %q/%d: %w", ErrTechnical, scenario, order-1, err)
	}

	now := e.now()
	if prev.Target != nil {
		reading, err := location.Decode(locTransport)
		if err != nil {
			return Outcome{}, questhunt.State{}, fmt.Errorf("%w: location evidence: %w", ErrTechnical, err)
		}
		if err := e.checkEvidence(reading, prev.Target, now); err != nil {
			return Outcome{}, questhunt.State{}, err
		}
	}

	next := questhunt.State{
		Scenario:  scenario,
		Quest:     order,
		StartedAt: now,
		PlayerID:  state.PlayerID,
		Restarts:  state.Restarts,
	}
	if q.Countdown > 0 {
		deadline := now.Add(q.Countdown)
		next.Deadline = &deadline
	}

	return countdownOutcome(scenario, q, next.Deadline), next, nil
}

// InitComplete is a pure redirect step: it re-checks the secret and
// sends the player off to acquire a location reading before calling the
// completion endpoint. No state is read or written: obtaining a GPS
// fix is an asynchronous permission flow that has to round-trip through
// the device first.
func (e *Engine) InitComplete(scenario string, order int, secret string) (Outcome, error) {
	if _, err := e.catalog.FindQuestWithSecret(scenario, order, secret); err != nil {
		return Outcome{}, fmt.Errorf("%w: complete-init %q/%d: %w", ErrTechnical, scenario, order, err)
	}
	return Outcome{
		Kind:     KindAcquireLocation,
		Scenario: scenario,
		Quest:    order,
	}, nil
}

// Complete evaluates the completion of the quest the player is on.
// Missing the deadline shows the failure page but does not block
// progression; the state is returned to the caller unchanged either
// way; advancing happens in StartQuest when the player clicks through.
func (e *Engine) Complete(state questhunt.State, scenario string, order int, secret, locTransport string) (Outcome, error) {
	q, err := e.catalog.FindQuestWithSecret(scenario, order, secret)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: complete %q/%d: %w", ErrTechnical, scenario, order, err)
	}

	reading, err := location.Decode(locTransport)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: location evidence: %w", ErrTechnical, err)
	}

	now := e.now()
	if age := now.Sub(reading.CapturedAt); age < -FreshnessWindow || age > FreshnessWindow {
		return Outcome{}, technicalf("location reading is not fresh (captured %s ago)", age)
	}

	if state.Scenario != scenario {
		return Outcome{}, technicalf("state token is for scenario %q, not %q", state.Scenario, scenario)
	}
	if state.Quest != order {
		return Outcome{}, technicalf("state token is at quest %d, cannot complete quest %d", state.Quest, order)
	}

	if q.Target != nil && e.locationCheck.Load() {
		if d := geo.Distance(reading.Position, *q.Target); d > ProximityTolerance {
			return Outcome{}, technicalf("bad gps accuracy: %.0f m from target", d)
		}
	}

	page := q.SuccessPage
	if q.Countdown > 0 && state.Deadline != nil && now.After(*state.Deadline) {
		page = q.FailurePage
	}

	if e.catalog.IsLastQuest(scenario, order) {
		return Outcome{
			Kind:           KindScenarioComplete,
			Scenario:       scenario,
			Quest:          order,
			Page:           page,
			ElapsedSeconds: int64(now.Sub(state.StartedAt).Seconds()),
		}, nil
	}
	return Outcome{
		Kind:      KindQuestEnd,
		Scenario:  scenario,
		Quest:     order,
		Page:      page,
		NextQuest: order + 1,
	}, nil
}

// checkEvidence validates freshness unconditionally and proximity when
// the toggle is on.
func (e *Engine) checkEvidence(reading questhunt.LocationReading, target *questhunt.Coordinates, now time.Time) error {
	if age := now.Sub(reading.CapturedAt); age < -FreshnessWindow || age > FreshnessWindow {
		return technicalf("location reading is not fresh (captured %s ago)", age)
	}
	if target != nil && e.locationCheck.Load() {
		if d := geo.Distance(reading.Position, *target); d > ProximityTolerance {
			return technicalf("bad gps accuracy: %.0f m from target", d)
		}
	}
	return nil
}

func countdownOutcome(scenario string, q questhunt.Quest, deadline *time.Time) Outcome {
	return Outcome{
		Kind:               KindCountdown,
		Scenario:           scenario,
		Quest:              q.Order,
		Page:               q.InProgressPage,
		Deadline:           deadline,
		FictionalCountdown: q.FictionalCountdown,
		Target:             q.Target,
	}
}
