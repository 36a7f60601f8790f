package domain

import (
	"fmt"
	"math"
	"time"
)

// RunRecord is one synced activity matched to a plan slot. Records are
// produced by the external activity-matching pipeline; the engine only
// reads them.
type RunRecord struct {
	ID              string
	PlanID          string
	WeekIndex       int
	DayIndex        int
	PlannedDistance float64 // miles
	ActualDistance  float64 // miles
	ActualPace      float64 // minutes per mile
	MovingTimeSec   int
	SyncedAt        time.Time
}

// DistanceRatio is actual over planned distance; 0 when nothing was planned.
func (r RunRecord) DistanceRatio() float64 {
	if r.PlannedDistance <= 0 {
		return 0
	}
	return r.ActualDistance / r.PlannedDistance
}

// ScoreKind names an auxiliary score series produced by the external
// calculators.
type ScoreKind string

const (
	ScoreReadiness ScoreKind = "readiness"
	ScoreAdherence ScoreKind = "adherence"
)

// FormatPace renders a decimal minutes-per-mile pace as m:ss, e.g. 9.5
// becomes "9:30".
func FormatPace(pace float64) string {
	if pace <= 0 {
		return "-"
	}
	min := int(pace)
	sec := int(math.Round((pace - float64(min)) * 60))
	if sec == 60 {
		min++
		sec = 0
	}
	return fmt.Sprintf("%d:%02d", min, sec)
}

// WeekMileage is a per-week planned-vs-actual mileage summary.
type WeekMileage struct {
	WeekIndex int
	Planned   float64
	Actual    float64
}
