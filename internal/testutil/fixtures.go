package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
)

// NewTestPlan builds a plan with the standard test week: rest, easy 5,
// tempo 6, easy 5, rest, speed 5, long 10. Weekly target is 31 miles.
func NewTestPlan(name string, startDate time.Time, totalWeeks int) *domain.Plan {
	now := time.Now().UTC()
	plan := &domain.Plan{
		ID:         uuid.NewString(),
		Name:       name,
		StartDate:  startDate,
		TotalWeeks: totalWeeks,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for w := 0; w < totalWeeks; w++ {
		plan.Weeks = append(plan.Weeks, NewTestWeek(w))
	}
	return plan
}

// NewTestWeek builds the standard test week at the given index.
func NewTestWeek(index int) domain.PlanWeek {
	return domain.PlanWeek{
		Index: index,
		Days: []domain.PlanDay{
			{DayIndex: 0, Type: domain.DayRest, Label: "Rest"},
			{DayIndex: 1, Type: domain.DayRun, Label: "5.0 mi easy", Distance: 5, Note: domain.NoteEasy},
			{DayIndex: 2, Type: domain.DayRun, Label: "6.0 mi tempo", Distance: 6, Note: domain.NoteTempo},
			{DayIndex: 3, Type: domain.DayRun, Label: "5.0 mi easy", Distance: 5, Note: domain.NoteEasy},
			{DayIndex: 4, Type: domain.DayRest, Label: "Rest"},
			{DayIndex: 5, Type: domain.DayRun, Label: "5.0 mi speed", Distance: 5, Note: domain.NoteSpeed},
			{DayIndex: 6, Type: domain.DayRun, Label: "10.0 mi long", Distance: 10, Note: domain.NoteLong},
		},
	}
}

// NewTestRecord builds a run record for a plan slot.
func NewTestRecord(planID string, weekIndex, dayIndex int, planned, actual, pace float64, syncedAt time.Time) *domain.RunRecord {
	return &domain.RunRecord{
		ID:              uuid.NewString(),
		PlanID:          planID,
		WeekIndex:       weekIndex,
		DayIndex:        dayIndex,
		PlannedDistance: planned,
		ActualDistance:  actual,
		ActualPace:      pace,
		MovingTimeSec:   int(actual * pace * 60),
		SyncedAt:        syncedAt,
	}
}

// Midnight returns the start of the day n days before now, in UTC.
func Midnight(now time.Time, daysAgo int) time.Time {
	d := now.AddDate(0, 0, -daysAgo)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
