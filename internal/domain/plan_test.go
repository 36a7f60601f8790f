package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testPlan(start time.Time, weeks int) *Plan {
	p := &Plan{ID: "p1", Name: "Test", StartDate: start, TotalWeeks: weeks}
	for w := 0; w < weeks; w++ {
		p.Weeks = append(p.Weeks, PlanWeek{Index: w, Days: []PlanDay{
			{DayIndex: 0, Type: DayRest, Label: "Rest"},
			{DayIndex: 1, Type: DayRun, Label: "5.0 mi easy", Distance: 5, Note: NoteEasy},
			{DayIndex: 6, Type: DayRun, Label: "10.0 mi long", Distance: 10, Note: NoteLong},
		}})
	}
	return p
}

func TestCurrentWeekIndex(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	p := testPlan(start, 16)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"first day", start, 0},
		{"last day of week 0", start.AddDate(0, 0, 6), 0},
		{"first day of week 1", start.AddDate(0, 0, 7), 1},
		{"mid plan", start.AddDate(0, 0, 5*7+3), 5},
		{"before start clamps to 0", start.AddDate(0, 0, -10), 0},
		{"past end clamps to last week", start.AddDate(0, 0, 16*7+30), 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.CurrentWeekIndex(tt.now))
		})
	}
}

func TestWeeksRemaining(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	p := testPlan(start, 16)

	assert.Equal(t, 15, p.WeeksRemaining(start))
	assert.Equal(t, 0, p.WeeksRemaining(start.AddDate(0, 0, 15*7)))
	assert.Equal(t, 0, p.WeeksRemaining(start.AddDate(0, 0, 20*7)))
}

func TestDayDate(t *testing.T) {
	start := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	p := testPlan(start, 4)

	got := p.DayDate(2, 3)
	assert.Equal(t, time.Date(2026, 3, 19, 0, 0, 0, 0, time.UTC), got)
}

func TestTargetMileage(t *testing.T) {
	p := testPlan(time.Now(), 1)
	assert.InDelta(t, 15.0, p.Weeks[0].TargetMileage(), 0.001)
}

func TestRunLabel(t *testing.T) {
	assert.Equal(t, "5.5 mi easy", RunLabel(5.5, NoteEasy))
	assert.Equal(t, "3.0 mi run", RunLabel(3, ""))
}

func TestFormatPace(t *testing.T) {
	assert.Equal(t, "9:30", FormatPace(9.5))
	assert.Equal(t, "8:00", FormatPace(7.9999))
	assert.Equal(t, "10:05", FormatPace(10.083333))
	assert.Equal(t, "-", FormatPace(0))
}
