package analysis

import (
	"time"

	"github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"
)

// ScheduledDay is one plan slot with its calendar date already resolved.
// The aggregator owns all date arithmetic; stats and detection only ever
// see pre-resolved slots.
type ScheduledDay struct {
	WeekIndex int
	DayIndex  int
	Date      time.Time
	Type      domain.DayType
	Label     string
	Distance  float64
	Note      string
	Completed bool
}

// Input is the immutable snapshot one analysis pass works from. It is
// rebuilt from collaborator reads on every pass and never mutated in
// place; a collaborator that fails to load leaves its field at the zero
// value.
type Input struct {
	PlanID     string
	PlanName   string
	StartDate  time.Time
	TotalWeeks int

	CurrentWeek    int // 0-based
	WeeksRemaining int

	RecentCompletionRate  float64 // scheduled run days completed, last 14 days
	OverallCompletionRate float64 // scheduled run days completed, plan to date

	WeeklyMileage []domain.WeekMileage
	Records       []domain.RunRecord // ascending by synced-at
	Schedule      []ScheduledDay     // chronological, whole plan, dates resolved

	Readiness int // 0-100, 0 = unknown
	Adherence int // 0-100, 0 = unknown

	DaysSinceLastSync int
	SourceConnected   bool

	Aggressiveness domain.Aggressiveness
	Now            time.Time
}

// InsufficientData reports whether the snapshot is too thin to analyze:
// fewer than 3 synced records and more than a week since the last sync.
// This is a correctness gate, not throttling; force never bypasses it.
func (in *Input) InsufficientData() bool {
	return len(in.Records) < 3 && in.DaysSinceLastSync > 7
}

// scheduleNote resolves the planned note for a record's slot, so pace
// averages can group records into long/easy/hard efforts.
func (in *Input) scheduleNote(weekIndex, dayIndex int) string {
	for _, s := range in.Schedule {
		if s.WeekIndex == weekIndex && s.DayIndex == dayIndex {
			return s.Note
		}
	}
	return ""
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
