package domain

import (
	"fmt"
	"time"
)

// PlanDay is one calendar slot of a training plan week. Days are value
// types: modifications build new day values instead of mutating shared
// state, so a retained copy of a week is already a faithful snapshot.
type PlanDay struct {
	DayIndex  int     `json:"dayIndex"` // 0 = first day of the week
	Type      DayType `json:"type"`
	Label     string  `json:"label"`
	Distance  float64 `json:"distance"` // miles, 0 for rest days
	Note      string  `json:"note"`
	Completed bool    `json:"completed"`
}

// PlanWeek is one week of scheduled days, value-typed for the same reason.
type PlanWeek struct {
	Index int       `json:"index"` // 0-based week number
	Days  []PlanDay `json:"days"`
}

// TargetMileage sums planned distance over the week's run days.
type Plan struct {
	ID         string
	Name       string
	StartDate  time.Time // first day of week 0
	TotalWeeks int
	Active     bool
	Weeks      []PlanWeek
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (w PlanWeek) TargetMileage() float64 {
	var total float64
	for _, d := range w.Days {
		if d.Type == DayRun {
			total += d.Distance
		}
	}
	return total
}

// Clone returns a deep copy of the week; the day slice is not shared.
func (w PlanWeek) Clone() PlanWeek {
	days := make([]PlanDay, len(w.Days))
	copy(days, w.Days)
	return PlanWeek{Index: w.Index, Days: days}
}

// Week returns the week with the given index, or nil if out of range.
func (p *Plan) Week(index int) *PlanWeek {
	for i := range p.Weeks {
		if p.Weeks[i].Index == index {
			return &p.Weeks[i]
		}
	}
	return nil
}

// CurrentWeekIndex resolves the 0-based week containing now, clamped to
// [0, TotalWeeks-1]. All calendar-to-index math lives here and in DayDate;
// analysis code only ever sees resolved indices.
func (p *Plan) CurrentWeekIndex(now time.Time) int {
	days := int(now.Sub(startOfDay(p.StartDate)).Hours() / 24)
	if days < 0 {
		return 0
	}
	week := days / 7
	if week >= p.TotalWeeks {
		return p.TotalWeeks - 1
	}
	return week
}

// WeeksRemaining counts full weeks between the current week and race week.
func (p *Plan) WeeksRemaining(now time.Time) int {
	return p.TotalWeeks - 1 - p.CurrentWeekIndex(now)
}

// DayDate resolves the calendar date of a (week, day) slot.
func (p *Plan) DayDate(weekIndex, dayIndex int) time.Time {
	return startOfDay(p.StartDate).AddDate(0, 0, weekIndex*7+dayIndex)
}

// RunLabel regenerates the display label for a run day after its distance
// changes, e.g. "5.0 mi easy".
func RunLabel(distance float64, note string) string {
	if note == "" {
		return fmt.Sprintf("%.1f mi run", distance)
	}
	return fmt.Sprintf("%.1f mi %s", distance, note)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
