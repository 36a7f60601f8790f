package domain

import (
	"fmt"
	"time"
)

// RecommendationOption is one of up to three mutually exclusive choices a
// recommendation offers. Options with ActionApplyModification carry a
// modification template; the template has no identity until applied.
type RecommendationOption struct {
	Key          string            `json:"key"`
	Label        string            `json:"label"`
	Description  string            `json:"description"`
	Impact       string            `json:"impact,omitempty"`
	ActionType   OptionActionType  `json:"actionType"`
	Modification *PlanModification `json:"modification,omitempty"`
}

// Recommendation is a coaching suggestion surfaced to the runner. Status
// starts at active and moves exactly once to dismissed, accepted, or
// expired.
type Recommendation struct {
	ID                string
	Scenario          ScenarioTag
	Type              RecommendationType
	Priority          Priority
	Status            RecommendationStatus
	Confidence        int
	Title             string
	Message           string
	Reasoning         string
	Options           []RecommendationOption
	Dismissible       bool
	CreatedAt         time.Time
	ExpiresAt         time.Time
	SelectedOptionKey *string
}

// Option returns the option with the given key, or nil.
func (r *Recommendation) Option(key string) *RecommendationOption {
	for i := range r.Options {
		if r.Options[i].Key == key {
			return &r.Options[i]
		}
	}
	return nil
}

// Transition moves the recommendation out of the active state. Terminal
// states are never revisited.
func (r *Recommendation) Transition(to RecommendationStatus) error {
	if r.Status != StatusActive {
		return fmt.Errorf("recommendation %s is %s, not active", r.ID, r.Status)
	}
	switch to {
	case StatusDismissed, StatusAccepted, StatusExpired:
		r.Status = to
		return nil
	default:
		return fmt.Errorf("invalid recommendation status %q", to)
	}
}

// Expired reports whether the recommendation's expiry horizon has passed.
func (r *Recommendation) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
