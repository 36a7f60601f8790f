package domain

import "time"

// AnalyticsEvent records one lifecycle transition for later tuning of the
// detection rules. The engine only ever appends; nothing reads the log on
// the hot path.
type AnalyticsEvent struct {
	ID               string
	RecommendationID string
	Scenario         ScenarioTag
	Type             RecommendationType
	Action           AnalyticsAction
	OptionKey        *string
	OccurredAt       time.Time
}
