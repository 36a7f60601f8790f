package analysis

import "github.com/LetsLearntocodeforfun/Apollo-Running-sub000/internal/domain"

// paceWindow is how many recent matching runs feed each pace average.
const paceWindow = 4

// Stats holds the second-order metrics derived from one input snapshot.
type Stats struct {
	AvgLongRunPace float64 // min/mi over the most recent 4 long runs
	AvgEasyPace    float64 // min/mi over the most recent 4 easy runs
	AvgHardPace    float64 // min/mi over the most recent 4 tempo/speed runs

	WeekOverWeekChangePct float64 // projected current-week load vs last week's actual

	ConsecutiveTrainingDays int
	MissedKeyWorkouts       int // past-dated long/tempo/speed slots, last 2 weeks

	RecentPaceSlowdownPct float64 // last 3 runs vs the prior 6-run window, positive = slower

	EasyDaysTooFast bool
	HardDaysTooSlow bool
}

// ComputeStats is a pure, total function of the input snapshot. Metrics
// whose inputs are absent stay at zero rather than erroring.
func ComputeStats(in Input) Stats {
	s := Stats{
		AvgLongRunPace:          avgPaceFor(in, func(note string) bool { return note == domain.NoteLong }),
		AvgEasyPace:             avgPaceFor(in, func(note string) bool { return note == domain.NoteEasy }),
		AvgHardPace:             avgPaceFor(in, func(note string) bool { return note == domain.NoteTempo || note == domain.NoteSpeed }),
		WeekOverWeekChangePct:   weekOverWeekChange(in),
		ConsecutiveTrainingDays: consecutiveTrainingDays(in),
		MissedKeyWorkouts:       missedKeyWorkouts(in),
		RecentPaceSlowdownPct:   recentPaceSlowdown(in.Records),
	}

	// An easy-day average under 8:30/mi means easy days are being raced.
	s.EasyDaysTooFast = s.AvgEasyPace > 0 && s.AvgEasyPace < 8.5
	// Hard days within 5% of easy pace means quality sessions lack contrast.
	s.HardDaysTooSlow = s.AvgHardPace > 0 && s.AvgEasyPace > 0 &&
		s.AvgHardPace >= 0.95*s.AvgEasyPace

	return s
}

// avgPaceFor takes the unweighted mean pace of the most recent paceWindow
// records whose scheduled note matches.
func avgPaceFor(in Input, match func(note string) bool) float64 {
	var sum float64
	var n int
	for i := len(in.Records) - 1; i >= 0 && n < paceWindow; i-- {
		r := in.Records[i]
		if r.ActualPace <= 0 {
			continue
		}
		if !match(in.scheduleNote(r.WeekIndex, r.DayIndex)) {
			continue
		}
		sum += r.ActualPace
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// weekOverWeekChange compares the current week's projected load (actual
// miles logged plus the remainder of the planned week, i.e. the larger of
// planned and actual) against last week's actual mileage.
func weekOverWeekChange(in Input) float64 {
	var cur, prev *domain.WeekMileage
	for i := range in.WeeklyMileage {
		switch in.WeeklyMileage[i].WeekIndex {
		case in.CurrentWeek:
			cur = &in.WeeklyMileage[i]
		case in.CurrentWeek - 1:
			prev = &in.WeeklyMileage[i]
		}
	}
	if cur == nil || prev == nil || prev.Actual <= 0 {
		return 0
	}
	load := cur.Planned
	if cur.Actual > load {
		load = cur.Actual
	}
	return (load - prev.Actual) / prev.Actual * 100
}

// consecutiveTrainingDays walks backward from today through the resolved
// schedule, stopping at the first completed rest day or the first
// incomplete day.
func consecutiveTrainingDays(in Input) int {
	today := startOfDay(in.Now)
	count := 0
	for i := len(in.Schedule) - 1; i >= 0; i-- {
		d := in.Schedule[i]
		if d.Date.After(today) {
			continue
		}
		if d.Type == domain.DayRest && d.Completed {
			break
		}
		if !d.Completed {
			break
		}
		count++
	}
	return count
}

// missedKeyWorkouts counts key slots whose scheduled date is strictly in
// the past, within the last two weeks, and which were never completed.
func missedKeyWorkouts(in Input) int {
	today := startOfDay(in.Now)
	cutoff := today.AddDate(0, 0, -14)
	missed := 0
	for _, d := range in.Schedule {
		if !domain.KeyWorkoutNotes[d.Note] || d.Completed {
			continue
		}
		if d.Date.Before(today) && !d.Date.Before(cutoff) {
			missed++
		}
	}
	return missed
}

// recentPaceSlowdown compares the mean pace of the last 3 runs against the
// 6 runs before them. Positive values mean the runner is slowing down.
func recentPaceSlowdown(records []domain.RunRecord) float64 {
	var paces []float64
	for _, r := range records {
		if r.ActualPace > 0 {
			paces = append(paces, r.ActualPace)
		}
	}
	if len(paces) < 9 {
		return 0
	}
	recent := mean(paces[len(paces)-3:])
	prior := mean(paces[len(paces)-9 : len(paces)-3])
	if prior <= 0 {
		return 0
	}
	return (recent - prior) / prior * 100
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
