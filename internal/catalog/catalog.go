// Package catalog holds the immutable quest catalog. It is loaded once
// at startup and never written afterwards, so concurrent reads need no
// synchronization.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/playperu/questhunt/internal/questhunt"
)

// ErrNotFound covers every failed lookup, including a wrong secret.
// A caller (and therefore a player) cannot tell a missing quest from a
// bad secret; that would be a guessing oracle.
var ErrNotFound = errors.New("quest not found")

type Catalog struct {
	scenarios map[string]questhunt.Scenario
}

type fileSpec struct {
	Scenarios []scenarioSpec `yaml:"scenarios"`
}

type scenarioSpec struct {
	Name   string      `yaml:"name"`
	Quests []questSpec `yaml:"quests"`
}

type questSpec struct {
	Name   string `yaml:"name"`
	Secret string `yaml:"secret"`
	Target *struct {
		Lat float64 `yaml:"lat"`
		Lon float64 `yaml:"lon"`
	} `yaml:"target"`
	CountdownSeconds          int `yaml:"countdown_seconds"`
	FictionalCountdownSeconds int `yaml:"fictional_countdown_seconds"`
	Pages                     struct {
		Success    string `yaml:"success"`
		Failure    string `yaml:"failure"`
		InProgress string `yaml:"in_progress"`
	} `yaml:"pages"`
}

// Parse reads a YAML catalog definition. Quest orders are assigned from
// list position, which makes the dense zero-based ordering invariant
// hold by construction.
func Parse(data []byte) (*Catalog, error) {
	var spec fileSpec
	if err := yaml.UnmarshalStrict(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if len(spec.Scenarios) == 0 {
		return nil, errors.New("catalog defines no scenarios")
	}

	scenarios := make(map[string]questhunt.Scenario, len(spec.Scenarios))
	for _, sc := range spec.Scenarios {
		if sc.Name == "" {
			return nil, errors.New("scenario without a name")
		}
		if _, dup := scenarios[sc.Name]; dup {
			return nil, fmt.Errorf("duplicate scenario %q", sc.Name)
		}
		if len(sc.Quests) == 0 {
			return nil, fmt.Errorf("scenario %q has no quests", sc.Name)
		}

		quests := make([]questhunt.Quest, 0, len(sc.Quests))
		for i, q := range sc.Quests {
			if q.Secret == "" {
				return nil, fmt.Errorf("scenario %q quest %d has no secret", sc.Name, i)
			}
			if q.Pages.Success == "" || q.Pages.Failure == "" {
				return nil, fmt.Errorf("scenario %q quest %d is missing outcome pages", sc.Name, i)
			}
			quest := questhunt.Quest{
				Order:              i,
				Name:               q.Name,
				Secret:             q.Secret,
				Countdown:          time.Duration(q.CountdownSeconds) * time.Second,
				FictionalCountdown: time.Duration(q.FictionalCountdownSeconds) * time.Second,
				SuccessPage:        q.Pages.Success,
				FailurePage:        q.Pages.Failure,
				InProgressPage:     q.Pages.InProgress,
			}
			if q.Target != nil {
				quest.Target = &questhunt.Coordinates{Lat: q.Target.Lat, Lon: q.Target.Lon}
			}
			quests = append(quests, quest)
		}
		scenarios[sc.Name] = questhunt.Scenario{Name: sc.Name, Quests: quests}
	}

	return &Catalog{scenarios: scenarios}, nil
}

// LoadFile parses the catalog at path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// FindQuest resolves a quest by scenario name and order.
func (c *Catalog) FindQuest(scenario string, order int) (questhunt.Quest, error) {
	sc, ok := c.scenarios[scenario]
	if !ok || order < 0 || order >= len(sc.Quests) {
		return questhunt.Quest{}, ErrNotFound
	}
	return sc.Quests[order], nil
}

// FindQuestWithSecret resolves a quest and additionally requires the
// supplied secret to match exactly.
func (c *Catalog) FindQuestWithSecret(scenario string, order int, secret string) (questhunt.Quest, error) {
	q, err := c.FindQuest(scenario, order)
	if err != nil {
		return questhunt.Quest{}, err
	}
	if q.Secret != secret {
		return questhunt.Quest{}, ErrNotFound
	}
	return q, nil
}

// IsLastQuest reports whether order is the final quest of the scenario.
// False for unknown scenarios.
func (c *Catalog) IsLastQuest(scenario string, order int) bool {
	sc, ok := c.scenarios[scenario]
	return ok && order == len(sc.Quests)-1
}

// HasScenario reports whether the catalog defines the named scenario.
func (c *Catalog) HasScenario(scenario string) bool {
	_, ok := c.scenarios[scenario]
	return ok
}
