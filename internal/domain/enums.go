package domain

type ScenarioTag string

const (
	ScenarioAheadOfSchedule      ScenarioTag = "ahead_of_schedule"
	ScenarioBehindSchedule       ScenarioTag = "behind_schedule"
	ScenarioOvertraining         ScenarioTag = "overtraining"
	ScenarioInconsistentExec     ScenarioTag = "inconsistent_execution"
	ScenarioRaceWeekOptimization ScenarioTag = "race_week_optimization"
)

type RecommendationType string

const (
	RecommendationUpgrade      RecommendationType = "upgrade"
	RecommendationReduce       RecommendationType = "reduce"
	RecommendationRest         RecommendationType = "rest"
	RecommendationAdjustPacing RecommendationType = "adjust_pacing"
	RecommendationTaper        RecommendationType = "taper"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type RecommendationStatus string

const (
	StatusActive    RecommendationStatus = "active"
	StatusDismissed RecommendationStatus = "dismissed"
	StatusAccepted  RecommendationStatus = "accepted"
	StatusExpired   RecommendationStatus = "expired"
)

type OptionActionType string

const (
	ActionApplyModification OptionActionType = "apply_modification"
	ActionDismiss           OptionActionType = "dismiss"
)

type ModificationType string

const (
	ModMileageIncrease  ModificationType = "mileage_increase"
	ModMileageReduction ModificationType = "mileage_reduction"
)

type DayType string

const (
	DayRun   DayType = "run"
	DayRest  DayType = "rest"
	DayCross DayType = "cross"
)

// Key workout notes. Any other note marks an easy or recovery effort.
const (
	NoteEasy  = "easy"
	NoteLong  = "long"
	NoteTempo = "tempo"
	NoteSpeed = "speed"
)

// KeyWorkoutNotes is the canonical set of notes that mark key workouts.
var KeyWorkoutNotes = map[string]bool{
	NoteLong: true, NoteTempo: true, NoteSpeed: true,
}

type AnalysisFrequency string

const (
	FrequencyDaily             AnalysisFrequency = "daily"
	FrequencyWeekly            AnalysisFrequency = "weekly"
	FrequencyBeforeKeyWorkouts AnalysisFrequency = "before_key_workouts"
)

type Aggressiveness string

const (
	AggressivenessAggressive   Aggressiveness = "aggressive"
	AggressivenessBalanced     Aggressiveness = "balanced"
	AggressivenessConservative Aggressiveness = "conservative"
)

// ThresholdFactor scales scenario thresholds per risk preference:
// aggressive runners trip "push harder" rules earlier, conservative later.
func (a Aggressiveness) ThresholdFactor() float64 {
	switch a {
	case AggressivenessAggressive:
		return 0.8
	case AggressivenessConservative:
		return 1.2
	default:
		return 1.0
	}
}

type AnalyticsAction string

const (
	AnalyticsAccepted  AnalyticsAction = "accepted"
	AnalyticsDismissed AnalyticsAction = "dismissed"
	AnalyticsExpired   AnalyticsAction = "expired"
)
