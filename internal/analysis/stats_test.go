package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
)

var statsNow = time.Date(2026, 5, 20, 7, 0, 0, 0, time.UTC)

// day builds a resolved schedule slot dated daysAgo before statsNow.
func day(weekIndex, dayIndex, daysAgo int, dayType domain.DayType, note string, completed bool) ScheduledDay {
	d := statsNow.AddDate(0, 0, -daysAgo)
	return ScheduledDay{
		WeekIndex: weekIndex,
		DayIndex:  dayIndex,
		Date:      time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
		Type:      dayType,
		Note:      note,
		Completed: completed,
	}
}

func record(weekIndex, dayIndex int, pace float64, daysAgo int) domain.RunRecord {
	return domain.RunRecord{
		ID: "r", WeekIndex: weekIndex, DayIndex: dayIndex,
		PlannedDistance: 5, ActualDistance: 5, ActualPace: pace,
		SyncedAt: statsNow.AddDate(0, 0, -daysAgo),
	}
}

func TestAvgPaceFor_WindowsAndGrouping(t *testing.T) {
	in := Input{
		Now: statsNow,
		Schedule: []ScheduledDay{
			day(0, 0, 30, domain.DayRun, domain.NoteLong, true),
			day(0, 1, 28, domain.DayRun, domain.NoteLong, true),
			day(0, 2, 21, domain.DayRun, domain.NoteLong, true),
			day(0, 3, 14, domain.DayRun, domain.NoteLong, true),
			day(0, 4, 7, domain.DayRun, domain.NoteLong, true),
			day(0, 5, 3, domain.DayRun, domain.NoteEasy, true),
		},
		Records: []domain.RunRecord{
			record(0, 0, 12.0, 30), // oldest long run, outside the window of 4
			record(0, 1, 10.0, 28),
			record(0, 2, 10.0, 21),
			record(0, 3, 9.0, 14),
			record(0, 4, 9.0, 7),
			record(0, 5, 10.5, 3), // easy run, different group
		},
	}

	s := ComputeStats(in)
	assert.InDelta(t, 9.5, s.AvgLongRunPace, 0.001)
	assert.InDelta(t, 10.5, s.AvgEasyPace, 0.001)
	assert.Zero(t, s.AvgHardPace)
}

func TestWeekOverWeekChange_UsesLargerOfPlannedAndActual(t *testing.T) {
	in := Input{
		Now:         statsNow,
		CurrentWeek: 5,
		WeeklyMileage: []domain.WeekMileage{
			{WeekIndex: 4, Planned: 30, Actual: 20},
			{WeekIndex: 5, Planned: 26, Actual: 14},
		},
	}
	// Projected load is max(26, 14) = 26 against last week's actual 20.
	s := ComputeStats(in)
	assert.InDelta(t, 30.0, s.WeekOverWeekChangePct, 0.001)

	// When actual already exceeds planned, actual wins.
	in.WeeklyMileage[1].Actual = 28
	s = ComputeStats(in)
	assert.InDelta(t, 40.0, s.WeekOverWeekChangePct, 0.001)
}

func TestWeekOverWeekChange_NoPriorWeek(t *testing.T) {
	in := Input{
		Now:           statsNow,
		CurrentWeek:   0,
		WeeklyMileage: []domain.WeekMileage{{WeekIndex: 0, Planned: 30, Actual: 10}},
	}
	assert.Zero(t, ComputeStats(in).WeekOverWeekChangePct)
}

func TestConsecutiveTrainingDays(t *testing.T) {
	in := Input{
		Now: statsNow,
		Schedule: []ScheduledDay{
			day(0, 0, 5, domain.DayRest, "", true), // completed rest day ends the streak
			day(0, 1, 4, domain.DayRun, domain.NoteEasy, true),
			day(0, 2, 3, domain.DayRun, domain.NoteTempo, true),
			day(0, 3, 2, domain.DayRun, domain.NoteEasy, true),
			day(0, 4, 1, domain.DayRun, domain.NoteEasy, true),
			day(0, 5, 0, domain.DayRun, domain.NoteLong, true),
			day(0, 6, -1, domain.DayRun, domain.NoteEasy, false), // tomorrow, skipped
		},
	}
	assert.Equal(t, 5, ComputeStats(in).ConsecutiveTrainingDays)
}

func TestConsecutiveTrainingDays_StopsAtIncompleteDay(t *testing.T) {
	in := Input{
		Now: statsNow,
		Schedule: []ScheduledDay{
			day(0, 0, 3, domain.DayRun, domain.NoteEasy, true),
			day(0, 1, 2, domain.DayRun, domain.NoteEasy, false), // missed run breaks it
			day(0, 2, 1, domain.DayRun, domain.NoteEasy, true),
			day(0, 3, 0, domain.DayRun, domain.NoteEasy, true),
		},
	}
	assert.Equal(t, 2, ComputeStats(in).ConsecutiveTrainingDays)
}

func TestMissedKeyWorkouts(t *testing.T) {
	in := Input{
		Now: statsNow,
		Schedule: []ScheduledDay{
			day(0, 0, 20, domain.DayRun, domain.NoteLong, false),  // too old
			day(0, 1, 10, domain.DayRun, domain.NoteLong, false),  // counts
			day(0, 2, 8, domain.DayRun, domain.NoteTempo, false),  // counts
			day(0, 3, 6, domain.DayRun, domain.NoteEasy, false),   // easy, not key
			day(0, 4, 4, domain.DayRun, domain.NoteSpeed, true),   // completed
			day(0, 5, 0, domain.DayRun, domain.NoteTempo, false),  // today, not yet missed
			day(0, 6, -2, domain.DayRun, domain.NoteLong, false),  // future
		},
	}
	assert.Equal(t, 2, ComputeStats(in).MissedKeyWorkouts)
}

func TestRecentPaceSlowdown(t *testing.T) {
	var records []domain.RunRecord
	// Six runs at 9:00 pace, then three at 9:54 (10% slower).
	for i := 0; i < 6; i++ {
		records = append(records, record(0, i, 9.0, 20-i))
	}
	for i := 0; i < 3; i++ {
		records = append(records, record(1, i, 9.9, 5-i))
	}
	s := ComputeStats(Input{Now: statsNow, Records: records})
	assert.InDelta(t, 10.0, s.RecentPaceSlowdownPct, 0.001)
}

func TestRecentPaceSlowdown_NeedsNineRuns(t *testing.T) {
	var records []domain.RunRecord
	for i := 0; i < 8; i++ {
		records = append(records, record(0, i, 9.0, 10-i))
	}
	assert.Zero(t, ComputeStats(Input{Now: statsNow, Records: records}).RecentPaceSlowdownPct)
}

func TestPacingFlags(t *testing.T) {
	in := Input{
		Now: statsNow,
		Schedule: []ScheduledDay{
			day(0, 0, 4, domain.DayRun, domain.NoteEasy, true),
			day(0, 1, 2, domain.DayRun, domain.NoteTempo, true),
		},
		Records: []domain.RunRecord{
			record(0, 0, 8.0, 4), // easy day under the 8:30 ceiling
			record(0, 1, 7.8, 2), // hard day within 5% of easy pace
		},
	}
	s := ComputeStats(in)
	assert.True(t, s.EasyDaysTooFast)
	assert.True(t, s.HardDaysTooSlow)

	in.Records[0].ActualPace = 9.5
	in.Records[1].ActualPace = 7.5
	s = ComputeStats(in)
	assert.False(t, s.EasyDaysTooFast)
	assert.False(t, s.HardDaysTooSlow)
}

func TestInsufficientData(t *testing.T) {
	in := Input{Records: nil, DaysSinceLastSync: 10}
	assert.True(t, in.InsufficientData())

	in.DaysSinceLastSync = 3
	assert.False(t, in.InsufficientData())

	in.DaysSinceLastSync = 10
	in.Records = make([]domain.RunRecord, 3)
	assert.False(t, in.InsufficientData())
}
