package contract

import (
	"time"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/analysis"
	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
)

// AnalysisResult is what one analysis pass returns to the caller. A pass
// that stopped at a no-op gate (advisor disabled, rate limit, no plan,
// insufficient data) returns no result at all rather than an empty one.
type AnalysisResult struct {
	GeneratedAt time.Time
	PlanID      string
	PlanName    string
	CurrentWeek int

	Stats     analysis.Stats
	Scenarios []analysis.DetectedScenario

	// Emitted are the recommendations this pass created; Active is the
	// full active set after the pass, expiry sweep included.
	Emitted []*domain.Recommendation
	Active  []*domain.Recommendation

	// Suppressed records scenarios that qualified but produced no
	// recommendation, keyed by scenario with the gate that stopped them.
	Suppressed map[domain.ScenarioTag]string
}

type AnalysisErrorCode string

const (
	ErrRecommendationNotFound AnalysisErrorCode = "RECOMMENDATION_NOT_FOUND"
	ErrOptionNotFound         AnalysisErrorCode = "OPTION_NOT_FOUND"
	ErrNotActionable          AnalysisErrorCode = "NOT_ACTIONABLE"
	ErrInternal               AnalysisErrorCode = "INTERNAL_ERROR"
)

// AnalysisError is the typed error surfaced on the advisor boundary.
type AnalysisError struct {
	Code    AnalysisErrorCode
	Message string
}

func (e *AnalysisError) Error() string {
	return string(e.Code) + ": " + e.Message
}
